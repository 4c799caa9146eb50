package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// GetConfigDir returns the configuration directory.
// Linux/Mac: ~/.config/proompter
// Windows: C:\Users\username\.config\proompter
func GetConfigDir() string {
	return filepath.Join(GetHomeDir(), ".config", AppName)
}

// GetContextDir returns the directory holding one dialog file per session key.
func GetContextDir() string {
	return filepath.Join(GetConfigDir(), "context")
}

// GetProomptsDir returns the directory holding named prompt templates.
func GetProomptsDir() string {
	return filepath.Join(GetConfigDir(), "proompts")
}

// GetCacheDir returns the platform-specific cache directory.
// This is where temporary files should live (never synced to cloud)
// Linux/Mac: ~/.cache/proompter
// Windows: C:\Users\username\AppData\Local\proompter
func GetCacheDir() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(GetHomeDir(), "AppData", "Local")
		}
		return filepath.Join(localAppData, AppName)
	}
	return filepath.Join(GetHomeDir(), ".cache", AppName)
}

// GetTempDir returns the path to the secure temp directory used by the editor.
func GetTempDir() string {
	return filepath.Join(GetCacheDir(), "tmp")
}

// GetSettingsFilePath returns the path to settings.toml
func GetSettingsFilePath() string {
	return filepath.Join(GetConfigDir(), "settings.toml")
}

// GetHomeDir returns the user's home directory across platforms
// Windows: %USERPROFILE% (C:\Users\username)
// Linux/Mac: $HOME (/home/username)
func GetHomeDir() string {
	if runtime.GOOS == "windows" {
		home := os.Getenv("USERPROFILE")
		if home == "" {
			home = os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
		}
		if home == "" {
			home = "C:\\"
		}
		return home
	}
	home := os.Getenv("HOME")
	if home == "" {
		home = "/"
	}
	return home
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" {
		return GetHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(GetHomeDir(), path[2:])
	}

	path = os.ExpandEnv(path)

	return filepath.Clean(path)
}

// EnsureDir creates a directory if it doesn't exist (0700 - user-only access)
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0700)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
