package model

import (
	"errors"
	"testing"
)

func TestWithoutSystem(t *testing.T) {
	dialog := []Message{
		SystemMessage("be terse"),
		UserMessage("hi"),
		AssistantMessage("hello"),
		SystemMessage("again"),
	}

	got := WithoutSystem(dialog)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Role != RoleUser || got[1].Role != RoleAssistant {
		t.Errorf("unexpected roles: %v", got)
	}
	if len(dialog) != 4 {
		t.Error("input dialog was modified")
	}
}

func TestTail(t *testing.T) {
	dialog := []Message{UserMessage("1"), AssistantMessage("2"), UserMessage("3")}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"fewer than n", 5, []string{"1", "2", "3"}},
		{"exactly n", 3, []string{"1", "2", "3"}},
		{"more than n", 2, []string{"2", "3"}},
		{"zero", 0, []string{}},
		{"negative", -1, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tail(dialog, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Content != tt.want[i] {
					t.Errorf("message %d = %q, want %q", i, got[i].Content, tt.want[i])
				}
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"prompt too long", &PromptTooLongError{Tokens: 5000, Budget: 4096}, ErrPromptTooLong},
		{"missing credential", &MissingCredentialError{EnvVar: "OPENAI_API_KEY"}, ErrMissingCredential},
		{"upstream", &UpstreamError{Provider: "openai", StatusCode: 400, Err: errors.New("bad")}, ErrUpstream},
		{"template", &TemplateNotFoundError{Name: "cod"}, ErrTemplateNotFound},
		{"corrupt", &CorruptSessionError{Path: "x.json", Err: errors.New("eof")}, ErrCorruptSession},
		{"unimplemented", &UnimplementedError{Feature: "yaml history"}, ErrUnimplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
		})
	}
}

func TestTemplateNotFoundErrorSuggestions(t *testing.T) {
	err := &TemplateNotFoundError{Name: "cod", Suggestions: []string{"code", "codex"}}
	want := `template "cod" not found (did you mean: code, codex?)`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
