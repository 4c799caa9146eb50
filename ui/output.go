package ui

import (
	"fmt"
	"io"
	"strings"
)

// Output writes user-facing feedback. Info goes to stdout, warnings and errors
// to stderr. Styling is applied only when Color is set.
type Output struct {
	Stdout io.Writer
	Stderr io.Writer
	Color  bool
}

func NewOutput(stdout, stderr io.Writer, color bool) *Output {
	return &Output{Stdout: stdout, Stderr: stderr, Color: color}
}

func (o *Output) Info(format string, args ...any) {
	fmt.Fprintln(o.Stdout, fmt.Sprintf(format, args...))
}

func (o *Output) Warning(format string, args ...any) {
	fmt.Fprintln(o.Stderr, paint(o.Color, WarningStyle, fmt.Sprintf(format, args...)))
}

func (o *Output) Error(format string, args ...any) {
	fmt.Fprintln(o.Stderr, paint(o.Color, ErrorStyle, fmt.Sprintf(format, args...)))
}

// Print writes s to stdout followed by a newline, unstyled.
func (o *Output) Print(s string) {
	fmt.Fprintln(o.Stdout, s)
}

// Raw writes s to stdout as-is, adding a trailing newline if missing.
func (o *Output) Raw(s string) {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	io.WriteString(o.Stdout, s)
}
