package prompts

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DetectParams describes the running platform and the user's shell.
func DetectParams() Params {
	platform := platformName(runtime.GOOS)
	if release := osRelease(); release != "" {
		platform += " " + release
	}
	return Params{
		Platform: platform,
		Shell:    detectShell(os.Getenv),
	}
}

func platformName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	case "freebsd":
		return "FreeBSD"
	default:
		return goos
	}
}

func detectShell(getenv func(string) string) string {
	if shell := getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	if runtime.GOOS == "windows" {
		if getenv("PSModulePath") != "" {
			return "powershell"
		}
		if comspec := getenv("ComSpec"); comspec != "" {
			return strings.TrimSuffix(strings.ToLower(filepath.Base(comspec)), ".exe")
		}
	}
	return "bash"
}
