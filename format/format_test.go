package format

import (
	"regexp"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiRe = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func colorHighlighter(t *testing.T) *Highlighter {
	t.Helper()
	hl := NewHighlighter(true, "monokai", termenv.ANSI256)
	require.NotNil(t, hl)
	return hl
}

func TestNewSelectsPolicy(t *testing.T) {
	assert.IsType(t, &Default{}, New(false, nil))
	assert.IsType(t, &Code{}, New(true, nil))
}

func TestDefaultPlainText(t *testing.T) {
	f := &Default{}
	in := "Just some prose.\nWith two lines.  \n\n"
	assert.Equal(t, strings.TrimSpace(in), f.Format(in))
}

func TestDefaultStripsWholeFencedBlock(t *testing.T) {
	f := &Default{}
	in := "```python\nprint('hi')\n```\n"
	assert.Equal(t, "print('hi')", f.Format(in))
}

func TestDefaultKeepsFencesAroundProse(t *testing.T) {
	f := &Default{}
	in := "Run this:\n```bash\nls -la\n```\nThen check the output."
	assert.Equal(t, in, f.Format(in))
}

func TestDefaultHighlightsOnlyInsideFences(t *testing.T) {
	f := &Default{Highlighter: colorHighlighter(t)}
	in := "Run this:\n```go\nfmt.Println(\"hi\")\n```\nDone."

	out := f.Format(in)
	assert.Contains(t, out, "\x1b[")
	assert.True(t, strings.HasPrefix(out, "Run this:\n```go\n"), "prose before fence must be untouched: %q", out)
	assert.True(t, strings.HasSuffix(out, "```\nDone."), "prose after fence must be untouched: %q", out)
	assert.Equal(t, in, stripANSI(out))
}

func TestDefaultHighlightedWholeBlockIsUnfenced(t *testing.T) {
	f := &Default{Highlighter: colorHighlighter(t)}
	out := f.Format("```python\nx = 1\n```")

	assert.NotContains(t, out, "```")
	assert.Equal(t, "x = 1", strings.TrimSpace(stripANSI(out)))
}

func TestCodeExtractsTaggedBlocksInOrder(t *testing.T) {
	f := &Code{}
	in := strings.Join([]string{
		"First install:",
		"```bash",
		"pip install requests",
		"```",
		"An untagged block:",
		"```",
		"not code we want",
		"```",
		"Then run:",
		"```python",
		"import requests",
		"```",
		"Good luck!",
	}, "\n")

	out := f.Format(in)
	assert.Equal(t, "pip install requests\n\nimport requests", out)
	assert.NotContains(t, out, "not code we want")
	assert.NotContains(t, out, "Good luck")
}

func TestCodeFallsBackToWholeContent(t *testing.T) {
	f := &Code{}
	in := "```\nuntagged\n```\n"
	assert.Equal(t, strings.TrimSpace(in), f.Format(in))

	assert.Equal(t, "echo hi", f.Format("  echo hi\n"))
}

func TestCodeHighlightsWithLanguage(t *testing.T) {
	f := &Code{Highlighter: colorHighlighter(t)}
	out := f.Format("Here:\n```python\ndef f():\n    return 1\n```\n")

	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, "def f():\n    return 1", strings.TrimSpace(stripANSI(out)))
}

func TestCodeFallbackHighlightsWholeResponse(t *testing.T) {
	f := &Code{Highlighter: colorHighlighter(t)}
	out := f.Format("#!/bin/bash\necho hello\n")

	assert.Equal(t, "#!/bin/bash\necho hello", strings.TrimSpace(stripANSI(out)))
}

func TestUnknownLanguageDoesNotFail(t *testing.T) {
	hl := colorHighlighter(t)
	out := hl.Highlight("some text\n", "no-such-language")
	assert.Equal(t, "some text\n", stripANSI(out))
}

func TestNewHighlighterDisabled(t *testing.T) {
	assert.Nil(t, NewHighlighter(false, "monokai", termenv.TrueColor))
	assert.Nil(t, NewHighlighter(true, "monokai", termenv.Ascii))

	var hl *Highlighter
	assert.False(t, hl.Enabled())
	assert.Equal(t, "x", hl.Highlight("x", "go"))
}

func TestFormatterForProfile(t *testing.T) {
	tests := []struct {
		profile termenv.Profile
		want    string
	}{
		{termenv.TrueColor, "terminal16m"},
		{termenv.ANSI256, "terminal256"},
		{termenv.ANSI, "terminal16"},
		{termenv.Ascii, "noop"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatterForProfile(tt.profile))
	}
}

func TestStyles(t *testing.T) {
	names := StyleNames()
	assert.Contains(t, names, "monokai")
	assert.True(t, StyleExists("monokai"))
	assert.False(t, StyleExists("definitely-not-a-style"))
}
