package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"proompter/config"
	"proompter/format"
	"proompter/model"
	"proompter/prompts"
	"proompter/telemetry"
	"proompter/tokens"
	"proompter/ui"
)

type state int

const (
	stateReadingInput state = iota
	stateAssembling
	stateAwaiting
	stateRendering
	stateIdle
	stateDone
)

func (s state) String() string {
	switch s {
	case stateReadingInput:
		return "reading-input"
	case stateAssembling:
		return "assembling-request"
	case stateAwaiting:
		return "awaiting-response"
	case stateRendering:
		return "rendering-output"
	case stateIdle:
		return "idle-prompt"
	default:
		return "done"
	}
}

var exitKeywords = map[string]bool{
	"exit": true, "quit": true, "stop": true,
	"q": true, "x": true, ":q": true, ":q!": true,
}

func isExitKeyword(line string) bool {
	return exitKeywords[strings.ToLower(strings.TrimSpace(line))]
}

// session is the request loop for one invocation. In one-shot mode it runs a
// single turn; in interactive mode it reads prompts until an exit keyword or
// EOF, reporting per-turn errors and carrying on.
type session struct {
	app          *App
	provider     model.Provider
	providerName string
	counter      Counter
	formatter    format.Formatter
	plain        format.Formatter
	templates    prompts.Set

	dialog      []model.Message
	temperature float64
	contextual  bool
	interactive bool
	copy        bool

	state  state
	reader ui.LineReader
}

func (s *session) enter(next state) {
	config.Debugf("[CLI] %s -> %s", s.state, next)
	s.state = next
}

func (s *session) run(ctx context.Context, prompt string) error {
	if s.interactive {
		s.reader = s.app.LineReader(s.app.out.Color)
	}

	for {
		if s.interactive && prompt == "" {
			s.enter(stateReadingInput)
			line, err := s.readPrompt(ctx)
			if errors.Is(err, io.EOF) {
				s.enter(stateDone)
				return nil
			}
			if err != nil {
				return err
			}
			if isExitKeyword(line) {
				s.enter(stateDone)
				return nil
			}
			prompt = line
		}

		err := s.turn(ctx, prompt)
		prompt = ""

		if !s.interactive {
			s.enter(stateDone)
			return err
		}
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			s.reportTurnError(err)
		}
		s.enter(stateIdle)
	}
}

// readPrompt returns the next non-blank line.
func (s *session) readPrompt(ctx context.Context) (string, error) {
	for {
		line, err := s.reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
}

func (s *session) reportTurnError(err error) {
	out := s.app.out
	if errors.Is(err, model.ErrPromptTooLong) {
		out.Warning("%v", err)
		return
	}
	out.Error("%v", err)
	out.Error("An error occurred. Please try again.")
}

// turn sends one prompt and renders the reply. The stored user message is
// the prompt as typed; the request carries it wrapped in the template prefix
// and postfix, after the pinned system prompt.
func (s *session) turn(ctx context.Context, prompt string) (err error) {
	ctx, span := s.app.Telemetry.StartTurn(ctx, s.interactive)
	defer func() { telemetry.EndSpan(span, err) }()

	s.enter(stateAssembling)
	wrapped := s.templates.Wrap(prompt)
	if n := s.counter.Count(wrapped); n > config.MaxRequestTokens {
		return &model.PromptTooLongError{Tokens: n, Budget: config.MaxRequestTokens}
	}

	var pinned []model.Message
	if s.templates.System != "" {
		pinned = []model.Message{model.SystemMessage(s.templates.System)}
	}
	history := append(model.WithoutSystem(s.dialog), model.UserMessage(wrapped))
	request, err := tokens.FitPinned(pinned, history, config.MaxRequestTokens, s.counter)
	if err != nil {
		return err
	}
	s.app.Telemetry.RecordTokens(ctx, s.providerName, s.provider.GetModel(), s.counter.DialogCount(request), len(request))

	s.enter(stateAwaiting)
	reply, err := s.provider.Chat(ctx, request, s.temperature)
	if err != nil {
		return err
	}

	s.enter(stateRendering)
	s.app.out.Print(s.formatter.Format(reply))

	if s.copy && s.app.Clipboard != nil {
		if err := s.app.Clipboard(s.plain.Format(reply)); err != nil {
			s.app.out.Warning("Could not copy to clipboard: %v", err)
		}
	}

	s.dialog = append(s.dialog, model.UserMessage(prompt), model.AssistantMessage(reply))
	if s.contextual {
		if err := s.app.Store.Save(s.app.SessionKey, s.dialog); err != nil {
			return fmt.Errorf("failed to save context: %w", err)
		}
	}
	return nil
}
