package cli

import (
	"fmt"
	"io"
	"strings"

	"proompter/config"

	"github.com/spf13/pflag"
)

// Options holds the parsed command line.
type Options struct {
	Help        bool
	Editor      bool
	Interactive bool
	Model       string
	Temperature float64
	Provider    string
	ListStyles  bool
	NoColor     bool
	Style       string
	Contextual  bool
	NoContext   bool
	History     string
	Reset       bool
	Template    string
	NoTemplate  bool
	System      string
	Prefix      string
	Postfix     string
	Code        bool
	Copy        bool
	Debug       bool
	Version     bool

	// Prompt is the positional arguments joined by spaces.
	Prompt string
}

// UseContext reports whether the session dialog is loaded and saved.
// Interactive mode always keeps context.
func (o *Options) UseContext() bool {
	return (o.Contextual && !o.NoContext) || o.Interactive
}

// flagAliases maps alternate long names onto their canonical flag.
var flagAliases = map[string]string{
	"temp":            "temperature",
	"reset-context":   "reset",
	"proompt":         "template",
	"no-proompt":      "no-template",
	"prefix-proompt":  "prefix",
	"suffix":          "postfix",
	"postfix-proompt": "postfix",
}

func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// NewFlagSet binds every flag to opts. Defaults that come from settings are
// left empty here and resolved by the caller.
func NewFlagSet(opts *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(config.AppName, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.BoolVarP(&opts.Help, "help", "h", false, "Show this help.")
	fs.BoolVarP(&opts.Editor, "editor", "e", false, "Open $EDITOR to edit prompt.")
	fs.BoolVarP(&opts.Interactive, "interactive", "i", false, "Interactive mode. (Implies --contextual, ignores --no-context)")
	fs.StringVarP(&opts.Model, "model", "m", "", "Model to use (defaults to the provider's default model).")
	fs.Float64Var(&opts.Temperature, "temperature", 1.0, "Temperature. Alias: --temp")
	fs.StringVar(&opts.Provider, "provider", "", "Provider: openai, openrouter, anthropic or ollama.")
	fs.BoolVar(&opts.ListStyles, "list-styles", false, "List available syntax-highlight styles.")
	fs.BoolVar(&opts.NoColor, "no-color", false, "Disable color output.")
	fs.StringVar(&opts.Style, "style", "", "Syntax-highlight style (defaults to '"+config.DefaultStyle+"').")
	fs.BoolVarP(&opts.Contextual, "contextual", "c", false, "Maintain context for conversation.")
	fs.BoolVarP(&opts.NoContext, "no-context", "C", false, "Disable context for conversation (overrides -c).")
	fs.StringVar(&opts.History, "history", "", "Show context history. Use `--history json` to show as json.")
	fs.Lookup("history").NoOptDefVal = "text"
	fs.BoolVar(&opts.Reset, "reset", false, "Reset context. Alias: --reset-context")
	fs.StringVarP(&opts.Template, "template", "t", "", "Prompt template name (defaults to '"+config.DefaultTemplate+"'). Alias: --proompt")
	fs.BoolVarP(&opts.NoTemplate, "no-template", "T", false, "Disable prompt templates (overrides -t only). Alias: --no-proompt")
	fs.StringVarP(&opts.System, "system-proompt", "p", "", "<path> or <str> System prompt file or string override. (overrides --template for system prompt only)")
	fs.StringVar(&opts.Prefix, "prefix", "", "<path> or <str> Prefix prompt file or string override. (overrides --template for prefix prompt only) Alias: --prefix-proompt")
	fs.StringVar(&opts.Postfix, "postfix", "", "<path> or <str> Postfix (user suffix) prompt file or string override. (overrides --template for postfix prompt only) Aliases: --suffix, --postfix-proompt")
	fs.BoolVarP(&opts.Code, "code", "x", false, "Code formatter: strips non-code from output when possible.")
	fs.BoolVar(&opts.Copy, "copy", false, "Copy the formatted response (without color) to the clipboard.")
	fs.BoolVar(&opts.Debug, "debug", false, "Write a debug log and telemetry next to the settings file.")
	fs.BoolVar(&opts.Version, "version", false, "Print the version and exit.")

	fs.SetNormalizeFunc(normalizeFlag)
	return fs
}

// Parse parses args into Options.
func Parse(args []string) (*Options, *pflag.FlagSet, error) {
	opts := &Options{}
	fs := NewFlagSet(opts)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(joinHistoryValue(args)); err != nil {
		return nil, fs, fmt.Errorf("invalid arguments: %w", err)
	}

	opts.Prompt = strings.Join(fs.Args(), " ")
	opts.History = strings.ToLower(strings.TrimSpace(opts.History))
	return opts, fs, nil
}

// joinHistoryValue rewrites "--history json" to "--history=json" so the
// optional value may be given as a separate argument.
func joinHistoryValue(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if arg == "--history" && i+1 < len(args) {
			if next := strings.ToLower(args[i+1]); next == "json" || next == "text" {
				out = append(out, "--history="+next)
				i++
				continue
			}
		}
		out = append(out, arg)
	}
	return out
}

// ExpandEnvOptions prepends the whitespace-separated options in value to args.
func ExpandEnvOptions(args []string, value string) []string {
	extra := strings.Fields(value)
	if len(extra) == 0 {
		return args
	}
	return append(extra, args...)
}

// Usage renders the flag help.
func Usage(fs *pflag.FlagSet) string {
	return fmt.Sprintf("Usage: %s [OPTIONS] [PROMPT]\n\n  %s - the cli proompter\n\nOptions:\n%s",
		config.AppName, config.AppName, fs.FlagUsages())
}
