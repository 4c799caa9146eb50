// Package cli implements the proompter command: option handling, the
// one-shot and interactive request loop, and exit status mapping.
package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"proompter/config"
	"proompter/editor"
	"proompter/format"
	"proompter/model"
	"proompter/prompts"
	"proompter/provider"
	"proompter/storage"
	"proompter/telemetry"
	"proompter/tokens"
	"proompter/ui"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
)

// Counter estimates token counts for a single model.
type Counter interface {
	Count(text string) int
	tokens.DialogCounter
}

// App wires the command to its collaborators. NewApp fills every field for a
// real process; tests construct App directly.
type App struct {
	Config     *config.Config
	Store      *storage.DialogStore
	SessionKey string
	Prompts    *prompts.Loader

	NewProvider func(cfg provider.Config) (model.Provider, error)
	NewCounter  func(modelName string) (Counter, error)
	LineReader  func(color bool) ui.LineReader
	Edit        func(ctx context.Context, initial string) (string, error)
	Clipboard   func(text string) error
	// Intn picks the maintenance roll; nil disables pruning.
	Intn   func(n int) int
	Getenv func(key string) string

	Stdin     io.Reader
	StdinTTY  bool
	Stdout    io.Writer
	Stderr    io.Writer
	StdoutTTY bool
	Profile   termenv.Profile
	Width     int

	Telemetry *telemetry.Telemetry
	Version   string

	out *ui.Output
}

// NewApp returns an App attached to the current process.
func NewApp(cfg *config.Config, version string) *App {
	ed := editor.New()
	return &App{
		Config:      cfg,
		Store:       storage.NewDialogStore(cfg.ContextDir),
		SessionKey:  storage.SessionKey(),
		Prompts:     prompts.NewLoader(config.GetProomptsDir(), prompts.DetectParams()),
		NewProvider: provider.NewProvider,
		NewCounter: func(modelName string) (Counter, error) {
			return tokens.NewEstimator(modelName)
		},
		Edit:      ed.Edit,
		Clipboard: clipboard.WriteAll,
		Intn:      rand.IntN,
		Getenv:    os.Getenv,
		Stdin:     os.Stdin,
		StdinTTY:  ui.IsTerminal(os.Stdin),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		StdoutTTY: ui.IsTerminal(os.Stdout),
		Profile:   termenv.NewOutput(os.Stdout).EnvColorProfile(),
		Width:     ui.TerminalWidth(os.Getenv, os.Stdout),
		Version:   version,
	}
}

func (a *App) defaults() {
	if a.Getenv == nil {
		a.Getenv = os.Getenv
	}
	if a.Stdout == nil {
		a.Stdout = io.Discard
	}
	if a.Stderr == nil {
		a.Stderr = io.Discard
	}
	if a.NewProvider == nil {
		a.NewProvider = provider.NewProvider
	}
	if a.NewCounter == nil {
		a.NewCounter = func(modelName string) (Counter, error) {
			return tokens.NewEstimator(modelName)
		}
	}
	if a.LineReader == nil {
		a.LineReader = func(color bool) ui.LineReader {
			return ui.NewLineReader(a.Stdin, a.Stdout, a.StdinTTY, color)
		}
	}
	if a.Width <= 0 {
		a.Width = ui.TerminalWidth(a.Getenv, nil)
	}
	a.out = ui.NewOutput(a.Stdout, a.Stderr, false)
}

// Main runs the command, reports any error and returns the exit status.
func (a *App) Main(ctx context.Context, args []string) int {
	err := a.Run(ctx, args)
	if err != nil {
		config.Debugf("[CLI] exiting with error: %v", err)
		Report(a.out, err)
	}
	return ExitCode(err)
}

// Run executes one invocation.
func (a *App) Run(ctx context.Context, args []string) error {
	a.defaults()

	opts, fs, err := Parse(ExpandEnvOptions(args, a.Getenv("PROOMPTER_OPTIONS")))
	if err != nil {
		return err
	}

	if opts.Version {
		a.out.Print(config.AppName + " " + a.Version)
		return nil
	}

	if opts.Debug && !config.Debug {
		closeLog := config.InitDebugLog(config.GetConfigDir(), true)
		defer closeLog()
	}
	if a.Telemetry == nil {
		tel, err := telemetry.Init(ctx, filepath.Join(config.GetConfigDir(), "telemetry"), a.Version, config.Debug)
		if err != nil {
			config.Debugf("[CLI] telemetry disabled: %v", err)
			tel = telemetry.Noop()
		}
		a.Telemetry = tel
		defer a.Telemetry.Shutdown(context.Background())
	}

	color := !opts.NoColor && a.StdoutTTY
	a.out.Color = color

	styleName := firstNonEmpty(opts.Style, a.Config.Style, config.DefaultStyle)
	if !format.StyleExists(styleName) {
		a.out.Warning("Unknown style %q, using %q.", styleName, config.DefaultStyle)
		styleName = config.DefaultStyle
	}
	hl := format.NewHighlighter(color, styleName, a.Profile)

	if opts.History != "" && opts.History != "text" && opts.History != "json" {
		return &model.UnimplementedError{Feature: fmt.Sprintf("history format %q", opts.History)}
	}

	a.maybePrune()

	prompt := opts.Prompt
	if prompt == "" && !a.StdinTTY && a.Stdin != nil {
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		prompt = string(data)
	}
	prompt = strings.TrimSpace(prompt)

	if opts.Help {
		a.out.Print(Usage(fs))
		a.out.Info("\n%s", ui.HelpAddendum(color, a.Prompts.Dir(), config.GetSettingsFilePath(), editor.Default(a.Getenv)))
	}

	if opts.ListStyles {
		a.out.Raw(ui.StyleGrid(format.StyleNames(), a.Width))
	}

	if opts.History != "" {
		if err := a.showHistory(opts.History == "json", hl); err != nil {
			return err
		}
	}

	if opts.Reset {
		removed, err := a.Store.Reset(a.SessionKey)
		if err != nil {
			return fmt.Errorf("failed to reset context: %w", err)
		}
		if removed {
			a.out.Info("Context reset.")
		} else {
			a.out.Info("No context to reset.")
		}
	}

	if prompt == "" && (opts.Reset || opts.ListStyles || opts.Help || opts.History != "") {
		return nil
	}

	if opts.Editor {
		if a.Edit == nil {
			return &model.UnimplementedError{Feature: "editor"}
		}
		prompt, err = a.Edit(ctx, prompt)
		if err != nil {
			return err
		}
	}

	if prompt == "" && !opts.Interactive {
		return model.ErrPromptNotProvided
	}

	s, err := a.newSession(opts, hl)
	if err != nil {
		return err
	}
	return s.run(ctx, prompt)
}

func (a *App) maybePrune() {
	if a.Intn == nil || a.Intn(config.PruneChance) != 0 {
		return
	}
	removed, err := a.Store.PruneAll(a.SessionKey)
	if err != nil {
		config.Debugf("[CLI] context prune failed: %v", err)
		return
	}
	config.Debugf("[CLI] context prune removed %d file(s)", removed)
}

func (a *App) showHistory(asJSON bool, hl *format.Highlighter) error {
	dialog, err := a.Store.Load(a.SessionKey)
	if err != nil {
		return err
	}
	rendered, err := ui.RenderHistory(dialog, asJSON, hl)
	if err != nil {
		return err
	}
	if rendered == "" {
		a.out.Info("No context history.")
		return nil
	}
	a.out.Print(rendered)
	return nil
}

// newSession resolves the provider, credentials, stored context and
// templates. Every error here is fatal in both modes.
func (a *App) newSession(opts *Options, hl *format.Highlighter) (*session, error) {
	providerID := strings.ToLower(firstNonEmpty(opts.Provider, a.Config.Provider, config.DefaultProvider))
	providerType := provider.MapProviderIDToType(providerID)

	modelName := opts.Model
	if modelName == "" && (opts.Provider == "" || strings.EqualFold(opts.Provider, a.Config.Provider)) {
		modelName = a.Config.Model
	}
	if modelName == "" {
		modelName = provider.DefaultModel(providerType)
	}

	var apiKey string
	if envVar := provider.APIKeyEnv(providerType); envVar != "" {
		apiKey = a.Getenv(envVar)
		if apiKey == "" {
			return nil, &model.MissingCredentialError{EnvVar: envVar}
		}
	}

	p, err := a.NewProvider(provider.Config{
		Type:    providerType,
		BaseURL: a.Config.BaseURL(providerID),
		Model:   modelName,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, err
	}

	counter, err := a.NewCounter(p.GetModel())
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}

	contextual := opts.UseContext()
	dialog := []model.Message{}
	if contextual {
		dialog, err = a.Store.Load(a.SessionKey)
		if err != nil {
			return nil, err
		}
	}

	templates, err := a.loadTemplates(opts)
	if err != nil {
		return nil, err
	}

	config.Debugf("[CLI] session: provider=%s model=%s endpoint=%q contextual=%t interactive=%t history=%d",
		providerType, p.GetModel(), provider.Endpoint(p), contextual, opts.Interactive, len(dialog))

	return &session{
		app:          a,
		provider:     a.Telemetry.Instrument(string(providerType), p),
		providerName: string(providerType),
		counter:      counter,
		formatter:    format.New(opts.Code, hl),
		plain:        format.New(opts.Code, nil),
		templates:    templates,
		dialog:       dialog,
		temperature:  opts.Temperature,
		contextual:   contextual,
		interactive:  opts.Interactive,
		copy:         opts.Copy,
	}, nil
}

func (a *App) loadTemplates(opts *Options) (prompts.Set, error) {
	name := firstNonEmpty(opts.Template, a.Config.Template, config.DefaultTemplate)
	if opts.NoTemplate {
		name = ""
	}

	set, err := a.Prompts.LoadSet(name)
	if err != nil {
		return prompts.Set{}, err
	}

	overrides := []struct {
		value string
		dst   *string
	}{
		{opts.System, &set.System},
		{opts.Prefix, &set.Prefix},
		{opts.Postfix, &set.Postfix},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		text, err := prompts.ResolveOverride(o.value)
		if err != nil {
			return prompts.Set{}, err
		}
		*o.dst = text
	}
	return set, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
