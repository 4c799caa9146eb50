package provider

import (
	"context"
	"fmt"

	"proompter/config"
	"proompter/model"
	"proompter/ollama"
)

// OllamaProvider wraps ollama.Client to implement the Provider interface.
//
// This provider handles the conversion from model.Message to Ollama's
// api.Message. A local server needs no API key.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a new Ollama provider instance.
//
// Parameters:
//   - baseURL: The Ollama server URL (e.g., "http://localhost:11434").
//     If empty, defaults to "http://localhost:11434".
//   - model: The model name to use (e.g., "llama3.1:latest").
//     If empty, defaults to "llama3.1:latest".
//
// Returns an error if the baseURL is invalid.
func NewOllamaProvider(baseURL, model string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, model, newHTTPClient())
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{
		client: client,
	}, nil
}

// Chat implements Provider.Chat by converting messages and sending a single
// non-streaming request.
func (p *OllamaProvider) Chat(ctx context.Context, messages []model.Message, temperature float64) (string, error) {
	config.Debugf("[Ollama] chat request: model=%s messages=%d temperature=%.2f", p.client.GetModel(), len(messages), temperature)
	if config.Debug {
		if err := p.client.Ping(ctx); err != nil {
			config.Debugf("[Ollama] server %s not reachable: %v", p.client.BaseURL(), err)
		}
	}

	content, err := p.client.Chat(ctx, ConvertToOllamaMessages(messages), temperature)
	if err != nil {
		return "", wrapAPIError("Ollama", err)
	}
	return content, nil
}

// GetModel implements Provider.GetModel (direct passthrough).
func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

// SetModel implements Provider.SetModel (direct passthrough).
func (p *OllamaProvider) SetModel(model string) {
	p.client.SetModel(model)
}

func (p *OllamaProvider) BaseURL() string {
	return p.client.BaseURL()
}
