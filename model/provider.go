package model

import "context"

// Provider abstracts the remote completion API (OpenAI, OpenRouter, Anthropic, Ollama)
// using provider-agnostic types from the model layer.
//
// This interface is defined in the model package (not provider package) so that
// the cli package and test doubles can depend on it without importing any SDK.
type Provider interface {
	// Chat sends the dialog in a single attempt and returns the generated
	// assistant content. It blocks until the response arrives, the request
	// fails, or the transport times out.
	Chat(ctx context.Context, messages []Message, temperature float64) (string, error)

	// GetModel returns the model name used for API calls.
	GetModel() string

	// SetModel changes the active model.
	SetModel(model string)
}
