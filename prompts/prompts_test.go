package prompts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"proompter/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestLoadSetRendersAllSlots(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shell.tmpl", "You are a {{.Shell}} expert on {{.Platform}}.\n")
	writeFile(t, dir, "shell.prefix.tmpl", "Answer briefly.")
	writeFile(t, dir, "shell.postfix.tmpl", "  Use {{.Shell}} syntax.  ")

	loader := NewLoader(dir, Params{Platform: "Linux 6.1", Shell: "zsh"})
	set, err := loader.LoadSet("shell")
	require.NoError(t, err)

	assert.Equal(t, "You are a zsh expert on Linux 6.1.", set.System)
	assert.Equal(t, "Answer briefly.", set.Prefix)
	assert.Equal(t, "Use zsh syntax.", set.Postfix)
}

func TestLoadSetMissingSlotIsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "brief.prefix.tmpl", "Be brief.")

	set, err := NewLoader(dir, Params{}).LoadSet("brief")
	require.NoError(t, err)
	assert.Equal(t, Set{Prefix: "Be brief."}, set)
}

func TestLoadSetJinjaFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "legacy.jinja2", "platform={{ platform }} shell={{shell}}")

	set, err := NewLoader(dir, Params{Platform: "Darwin 23.0", Shell: "fish"}).LoadSet("legacy")
	require.NoError(t, err)
	assert.Equal(t, "platform=Darwin 23.0 shell=fish", set.System)
}

func TestLoadSetPrefersTmpl(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dup.tmpl", "new")
	writeFile(t, dir, "dup.jinja2", "old")

	set, err := NewLoader(dir, Params{}).LoadSet("dup")
	require.NoError(t, err)
	assert.Equal(t, "new", set.System)
}

func TestLoadSetNotFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "python.tmpl", "py")
	writeFile(t, dir, "python.prefix.tmpl", "py")
	writeFile(t, dir, "shell.tmpl", "sh")

	_, err := NewLoader(dir, Params{}).LoadSet("pyth")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrTemplateNotFound))

	var notFound *model.TemplateNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "pyth", notFound.Name)
	assert.Equal(t, []string{"python"}, notFound.Suggestions)
}

func TestLoadSetDefaultTemplateIsOptional(t *testing.T) {
	set, err := NewLoader(t.TempDir(), Params{}).LoadSet("system")
	require.NoError(t, err)
	assert.Equal(t, Set{}, set)
}

func TestLoadSetEmptyName(t *testing.T) {
	set, err := NewLoader(t.TempDir(), Params{}).LoadSet("  ")
	require.NoError(t, err)
	assert.Equal(t, Set{}, set)
}

func TestLoadRejectsPaths(t *testing.T) {
	_, err := NewLoader(t.TempDir(), Params{}).Load("../etc/passwd", System)
	assert.Error(t, err)
}

func TestLoadBadTemplate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.tmpl", "{{.Shell")

	_, err := NewLoader(dir, Params{}).Load("broken", System)
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.tmpl", "")
	writeFile(t, dir, "a.prefix.tmpl", "")
	writeFile(t, dir, "b.postfix.jinja2", "")
	writeFile(t, dir, "notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.tmpl"), 0700))

	assert.Equal(t, []string{"a", "b"}, NewLoader(dir, Params{}).Names())
}

func TestNamesMissingDir(t *testing.T) {
	assert.Empty(t, NewLoader(filepath.Join(t.TempDir(), "nope"), Params{}).Names())
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want string
	}{
		{"none", Set{}, "hi"},
		{"prefix", Set{Prefix: "P"}, "P\n\nhi"},
		{"postfix", Set{Postfix: "Q"}, "hi\n\nQ"},
		{"both", Set{Prefix: "P", Postfix: "Q"}, "P\n\nhi\n\nQ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.Wrap("hi"))
		})
	}
}

func TestResolveOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sys.txt")
	writeFile(t, dir, "sys.txt", "\n  from file \n")

	got, err := ResolveOverride(path)
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	got, err = ResolveOverride("  just a string  ")
	require.NoError(t, err)
	assert.Equal(t, "just a string", got)

	got, err = ResolveOverride(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestDetectShell(t *testing.T) {
	env := map[string]string{"SHELL": "/usr/bin/zsh"}
	assert.Equal(t, "zsh", detectShell(func(k string) string { return env[k] }))

	if os.PathSeparator == '/' {
		assert.Equal(t, "bash", detectShell(func(string) string { return "" }))
	}
}

func TestPlatformName(t *testing.T) {
	assert.Equal(t, "Linux", platformName("linux"))
	assert.Equal(t, "Darwin", platformName("darwin"))
	assert.Equal(t, "Windows", platformName("windows"))
	assert.Equal(t, "plan9", platformName("plan9"))
}

func TestDetectParams(t *testing.T) {
	params := DetectParams()
	assert.NotEmpty(t, params.Platform)
	assert.NotEmpty(t, params.Shell)
}
