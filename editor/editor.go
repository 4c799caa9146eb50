// Package editor composes prompts in the user's text editor.
package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"proompter/config"
)

// Editor runs an external editor command on a temporary file.
type Editor struct {
	// Command is the editor invocation, split on whitespace before running.
	Command string
	// Dir holds the temporary file. Empty means config.GetTempDir().
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Editor for the user's preferred editor attached to the
// process's terminal.
func New() *Editor {
	return &Editor{
		Command: Default(os.Getenv),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Default returns the user's preferred editor from environment variables
func Default(getenv func(string) string) string {
	// Application override first
	if editor := getenv("PROOMPTER_EDITOR"); editor != "" {
		return editor
	}

	editor := getenv("EDITOR")
	if editor == "" {
		editor = getenv("VISUAL")
	}
	if editor != "" {
		return editor
	}

	if runtime.GOOS == "windows" {
		return "notepad"
	}

	for _, ed := range []string{"nano", "nvim", "vim", "vi", "emacs"} {
		if _, err := exec.LookPath(ed); err == nil {
			return ed
		}
	}

	// vi is POSIX standard
	return "vi"
}

// Edit opens initial in the editor and returns the trimmed result once the
// editor exits.
func (e *Editor) Edit(ctx context.Context, initial string) (string, error) {
	args := strings.Fields(e.Command)
	if len(args) == 0 {
		return "", fmt.Errorf("no editor configured")
	}

	dir := e.Dir
	if dir == "" {
		dir = config.GetTempDir()
	}
	if err := config.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "prompt-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := tmpFile.Chmod(0600); err != nil && runtime.GOOS != "windows" {
		tmpFile.Close()
		return "", fmt.Errorf("failed to secure temp file: %w", err)
	}
	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			tmpFile.Close()
			return "", fmt.Errorf("failed to write temp file: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	config.Debugf("[Editor] launching %q on %s", e.Command, tmpPath)

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], tmpPath)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %q failed: %w", args[0], err)
	}

	content, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to read edited prompt: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}
