package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LinePrompt is the interactive prompt marker.
const LinePrompt = "> "

// LineReader reads one line of user input per call. It returns io.EOF when
// the user ends input.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// NewLineReader returns a bubbletea-backed reader when in is a terminal and a
// plain line scanner otherwise.
func NewLineReader(in io.Reader, out io.Writer, tty, color bool) LineReader {
	if tty {
		return &TeaReader{In: in, Out: out, Color: color}
	}
	return NewScannerReader(in, out)
}

// ScannerReader reads newline-terminated lines, echoing the prompt marker.
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &ScannerReader{scanner: scanner, out: out}
}

func (r *ScannerReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r.out != nil {
		fmt.Fprint(r.out, LinePrompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// TeaReader reads a line with a bubbles text input. Entered lines are kept
// for up/down recall within the session.
type TeaReader struct {
	In    io.Reader
	Out   io.Writer
	Color bool

	history []string
}

func (r *TeaReader) ReadLine(ctx context.Context) (string, error) {
	m := newLineModel(r.history, r.Color)
	p := tea.NewProgram(m,
		tea.WithInput(r.In),
		tea.WithOutput(r.Out),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	result := final.(lineModel)
	if result.eof {
		return "", io.EOF
	}
	line := result.input.Value()
	if strings.TrimSpace(line) != "" {
		r.history = append(r.history, line)
	}
	return line, nil
}

type lineModel struct {
	input   textinput.Model
	history []string
	cursor  int // index into history; len(history) means the fresh line
	done    bool
	eof     bool
}

func newLineModel(history []string, color bool) lineModel {
	ti := textinput.New()
	ti.Prompt = LinePrompt
	if color {
		ti.PromptStyle = PromptStyle
	}
	ti.Focus()
	return lineModel{input: ti, history: history, cursor: len(history)}
}

func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			m.done = true
			m.eof = true
			return m, tea.Quit
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				m.input.SetValue(m.history[m.cursor])
				m.input.CursorEnd()
			}
			return m, nil
		case tea.KeyDown:
			if m.cursor < len(m.history) {
				m.cursor++
				if m.cursor == len(m.history) {
					m.input.SetValue("")
				} else {
					m.input.SetValue(m.history[m.cursor])
				}
				m.input.CursorEnd()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m lineModel) View() string {
	if m.done {
		if m.eof {
			return ""
		}
		// Leave the entered line in the scrollback
		return m.input.Prompt + m.input.Value() + "\n"
	}
	return m.input.View()
}
