package format

import (
	"strings"

	"proompter/config"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// Highlighter applies chroma syntax highlighting with a terminal formatter.
// A nil or disabled Highlighter passes text through unchanged.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewHighlighter returns nil when color is off, so callers never colorize
// output that is not going to a color-capable terminal.
func NewHighlighter(color bool, styleName string, profile termenv.Profile) *Highlighter {
	if !color {
		return nil
	}
	name := FormatterForProfile(profile)
	if name == "noop" {
		return nil
	}
	return &Highlighter{
		style:     styles.Get(styleName),
		formatter: formatters.Get(name),
	}
}

// FormatterForProfile picks the chroma terminal formatter matching a color profile.
func FormatterForProfile(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "noop"
	}
}

func (h *Highlighter) Enabled() bool {
	return h != nil
}

// Highlight colorizes code using the lexer for language, falling back to
// content analysis and then plain text.
func (h *Highlighter) Highlight(code, language string) string {
	if !h.Enabled() {
		return code
	}

	lexer := lexerFor(language, code)
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		config.Debugf("[Format] tokenise failed for %q: %v", language, err)
		return code
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		config.Debugf("[Format] highlight failed for %q: %v", language, err)
		return code
	}
	return sb.String()
}

func lexerFor(language, code string) chroma.Lexer {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// StyleNames lists the available highlight styles, sorted.
func StyleNames() []string {
	return styles.Names()
}

// StyleExists reports whether name is a registered chroma style.
func StyleExists(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}
