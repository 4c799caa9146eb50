package ui

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

const defaultWidth = 80

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width in columns: $COLUMNS if set and valid,
// then the size of stdout, then 80.
func TerminalWidth(getenv func(string) string, out *os.File) int {
	if cols, err := strconv.Atoi(getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	if out != nil {
		if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}
