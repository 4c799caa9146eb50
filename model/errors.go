package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced to the user. Each maps to a distinct exit status in the cli package.
var (
	ErrPromptNotProvided = errors.New("no prompt provided")
	ErrPromptTooLong     = errors.New("prompt too long")
	ErrMissingCredential = errors.New("missing credential")
	ErrUnimplemented     = errors.New("feature not implemented")
	ErrUpstream          = errors.New("upstream request failed")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrCorruptSession    = errors.New("corrupt session state")
)

// PromptTooLongError reports the estimated size of a request that cannot fit the budget.
type PromptTooLongError struct {
	Tokens int
	Budget int
}

func (e *PromptTooLongError) Error() string {
	return fmt.Sprintf("prompt too long (%d tokens > %d)", e.Tokens, e.Budget)
}

func (e *PromptTooLongError) Unwrap() error { return ErrPromptTooLong }

// MissingCredentialError names the environment variable that must be set.
type MissingCredentialError struct {
	EnvVar string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s environment variable must be set", e.EnvVar)
}

func (e *MissingCredentialError) Unwrap() error { return ErrMissingCredential }

// UpstreamError is returned when the remote API rejects a request.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() []error { return []error{ErrUpstream, e.Err} }

// TemplateNotFoundError names a missing template and the closest known names.
type TemplateNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *TemplateNotFoundError) Error() string {
	msg := fmt.Sprintf("template %q not found", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *TemplateNotFoundError) Unwrap() error { return ErrTemplateNotFound }

// CorruptSessionError is returned when a persisted dialog exists but cannot be parsed.
type CorruptSessionError struct {
	Path string
	Err  error
}

func (e *CorruptSessionError) Error() string {
	return fmt.Sprintf("corrupt session file %s: %v", e.Path, e.Err)
}

func (e *CorruptSessionError) Unwrap() []error { return []error{ErrCorruptSession, e.Err} }

// UnimplementedError names a requested feature that does not exist.
type UnimplementedError struct {
	Feature string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%s is not implemented", e.Feature)
}

func (e *UnimplementedError) Unwrap() error { return ErrUnimplemented }
