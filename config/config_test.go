package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("OLLAMA_HOST", "")
	t.Setenv("PROOMPTER_CONTEXT_DIR", "")
	return home
}

func TestLoadCreatesDefaultSettings(t *testing.T) {
	home := setHome(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultProvider, cfg.Provider)
	assert.Equal(t, DefaultStyle, cfg.Style)
	assert.Equal(t, DefaultTemplate, cfg.Template)
	assert.Equal(t, filepath.Join(home, ".config", AppName, "context"), cfg.ContextDir)
	assert.FileExists(t, filepath.Join(home, ".config", AppName, "settings.toml"))

	// The generated template must parse back to the same defaults.
	cfg2, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Provider, cfg2.Provider)
	assert.Equal(t, cfg.Style, cfg2.Style)
}

func TestLoadReadsSettingsFile(t *testing.T) {
	home := setHome(t)

	content := `
default_provider = "anthropic"
default_model = "claude-3-5-haiku-latest"
default_style = "dracula"
context_dir = "~/ctx"

[providers.anthropic]
base_url = "http://localhost:9999"
`
	dir := filepath.Join(home, ".config", AppName)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.Model)
	assert.Equal(t, "dracula", cfg.Style)
	assert.Equal(t, DefaultTemplate, cfg.Template)
	assert.Equal(t, filepath.Join(home, "ctx"), cfg.ContextDir)
	assert.Equal(t, "http://localhost:9999", cfg.BaseURL("anthropic"))
	assert.Equal(t, "", cfg.BaseURL("openai"))
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	home := setHome(t)

	dir := filepath.Join(home, ".config", AppName)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("default_provider = ["), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	home := setHome(t)
	t.Setenv("OLLAMA_HOST", "http://gpu-box:11434")
	t.Setenv("PROOMPTER_CONTEXT_DIR", "~/elsewhere")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://gpu-box:11434", cfg.BaseURL("ollama"))
	assert.Equal(t, filepath.Join(home, "elsewhere"), cfg.ContextDir)
}

func TestExpandPath(t *testing.T) {
	home := setHome(t)
	t.Setenv("PROOMPTER_TEST_VAR", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/a/b", filepath.Join(home, "a", "b")},
		{"/tmp/$PROOMPTER_TEST_VAR", filepath.Clean("/tmp/value")},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandPath(tt.in), "ExpandPath(%q)", tt.in)
	}
}

func TestInitDebugLog(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROOMPTER_DEBUG", "")
	t.Cleanup(func() {
		Debug = false
		DebugLog = nil
	})

	closeLog := InitDebugLog(dir, false)
	closeLog()
	assert.False(t, Debug)
	assert.NoFileExists(t, filepath.Join(dir, "debug.log"))

	closeLog = InitDebugLog(dir, true)
	Debugf("hello %s", "log")
	closeLog()

	assert.True(t, Debug)
	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello log")
}
