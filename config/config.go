package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const AppName = "proompter"

// Not user-configurable.
const (
	ConnectTimeout     = 60 * time.Second
	ReadTimeout        = 60 * time.Second
	MaxRequestTokens   = 4096
	MaxHistoryMessages = 500
	MaxRequestMessages = 20
	PruneAfterDays     = 10
	PruneChance        = 10 // maintenance runs on 1 in PruneChance invocations
	DefaultTemplate    = "system"
	DefaultStyle       = "monokai"
	DefaultProvider    = "openai"
)

// Config is the resolved configuration after applying defaults, the settings
// file, and environment overrides.
type Config struct {
	Provider   string
	Model      string
	Style      string
	Template   string
	ContextDir string
	BaseURLs   map[string]string
}

var Debug = false
var DebugLog *log.Logger

// BaseURL returns the configured base URL for a provider, or "" for the SDK default.
func (c *Config) BaseURL(providerID string) string {
	if c.BaseURLs == nil {
		return ""
	}
	return c.BaseURLs[providerID]
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		if c.BaseURLs == nil {
			c.BaseURLs = make(map[string]string)
		}
		c.BaseURLs["ollama"] = host
	}
	if dir := os.Getenv("PROOMPTER_CONTEXT_DIR"); dir != "" {
		c.ContextDir = ExpandPath(dir)
	}
}

func CheckDebug() bool {
	debug := os.Getenv("PROOMPTER_DEBUG")
	return debug == "true" || debug == "1"
}

// InitDebugLog enables debug logging to <dir>/debug.log when force is set or
// PROOMPTER_DEBUG is enabled. It is a no-op otherwise, leaving DebugLog nil.
func InitDebugLog(dir string, force bool) func() {
	if !force && !CheckDebug() {
		return func() {}
	}

	if err := EnsureDir(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not create debug log directory %s: %v\n", dir, err)
		return func() {}
	}

	Debug = true
	logPath := filepath.Join(dir, "debug.log")

	writer := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     PruneAfterDays,
	}

	DebugLog = log.New(writer, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (pid %d, ppid %d) ===", os.Getpid(), os.Getppid())
	DebugLog.Printf("Log path: %s", logPath)

	return func() {
		DebugLog.Printf("=== Debug logging stopped ===")
		_ = writer.Close()
	}
}

// Debugf writes to the debug log when debug logging is enabled.
func Debugf(format string, args ...any) {
	if Debug && DebugLog != nil {
		DebugLog.Output(2, fmt.Sprintf(format, args...))
	}
}

// Load resolves the configuration. A missing settings file is created from
// the commented template and defaults are used.
func Load() (*Config, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	cfg := &Config{
		Provider:   settings.DefaultProvider,
		Model:      settings.DefaultModel,
		Style:      settings.DefaultStyle,
		Template:   settings.DefaultTemplate,
		ContextDir: GetContextDir(),
		BaseURLs:   make(map[string]string),
	}
	if settings.ContextDir != "" {
		cfg.ContextDir = ExpandPath(settings.ContextDir)
	}
	for id, p := range settings.Providers {
		if p.BaseURL != "" {
			cfg.BaseURLs[id] = p.BaseURL
		}
	}

	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	if cfg.Style == "" {
		cfg.Style = DefaultStyle
	}
	if cfg.Template == "" {
		cfg.Template = DefaultTemplate
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}
