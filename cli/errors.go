package cli

import (
	"context"
	"errors"

	"proompter/model"
	"proompter/ui"
)

// Exit statuses.
const (
	ExitOK = iota
	ExitError
	ExitTemplateNotFound
	ExitUpstream
	ExitUnimplemented
	ExitMissingCredential
	ExitPromptNotProvided
	ExitPromptTooLong
	ExitCorruptSession
)

// ExitCode maps an error returned by App.Run to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, model.ErrTemplateNotFound):
		return ExitTemplateNotFound
	case errors.Is(err, model.ErrUpstream):
		return ExitUpstream
	case errors.Is(err, model.ErrUnimplemented):
		return ExitUnimplemented
	case errors.Is(err, model.ErrMissingCredential):
		return ExitMissingCredential
	case errors.Is(err, model.ErrPromptNotProvided):
		return ExitPromptNotProvided
	case errors.Is(err, model.ErrPromptTooLong):
		return ExitPromptTooLong
	case errors.Is(err, model.ErrCorruptSession):
		return ExitCorruptSession
	default:
		return ExitError
	}
}

// Report prints the user-facing message for err.
func Report(out *ui.Output, err error) {
	switch {
	case err == nil:
	case errors.Is(err, model.ErrPromptTooLong):
		out.Warning("%v.", err)
	case errors.Is(err, model.ErrPromptNotProvided):
		out.Warning("No prompt provided.")
	case errors.Is(err, model.ErrMissingCredential):
		out.Warning("%v.", err)
	case errors.Is(err, model.ErrUnimplemented):
		out.Warning("This feature is not implemented: %v", err)
	case errors.Is(err, model.ErrUpstream):
		out.Error("%v", err)
		out.Error("Invalid API request.")
	case errors.Is(err, model.ErrTemplateNotFound):
		out.Error("%v", err)
		out.Warning("Template not found.")
	case errors.Is(err, model.ErrCorruptSession):
		out.Error("%v", err)
		out.Warning("Run with --reset to discard the saved context.")
	case errors.Is(err, context.Canceled):
		out.Warning("Interrupted.")
	default:
		out.Error("An unexpected error occurred.")
		out.Error("%v", err)
	}
}
