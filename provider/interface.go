// Package provider implements model.Provider for the supported completion APIs.
//
// Every provider performs exactly one non-streaming request per Chat call,
// with no retries, and with the connect and read timeouts from the config
// package. API status errors are reported as *model.UpstreamError; transport
// failures (DNS, refused connections, timeouts) are returned as plain wrapped
// errors.
//
// # Architecture
//
//   - model.Provider defines the contract (interface)
//   - provider.OpenAIProvider talks to OpenAI's chat completions API
//   - provider.OpenRouterProvider reuses the OpenAI SDK against OpenRouter
//   - provider.AnthropicProvider talks to Anthropic's messages API
//   - provider.OllamaProvider wraps ollama.Client for a local server
//   - provider.NewProvider() factory creates providers from config
//
// # Usage
//
//	cfg := provider.Config{
//	    Type:   provider.ProviderTypeOpenAI,
//	    Model:  "gpt-4o-mini",
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	}
//	p, err := provider.NewProvider(cfg)
//	if err != nil {
//	    // handle error
//	}
//	reply, err := p.Chat(ctx, messages, 0.7)
package provider

import "proompter/model"

// Note: The Provider interface is defined in the model package
// (model/provider.go) to avoid import cycles. This package implements model.Provider.

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOllama     ProviderType = "ollama"
	ProviderTypeOpenRouter ProviderType = "openrouter"
	ProviderTypeOpenAI     ProviderType = "openai"
	ProviderTypeAnthropic  ProviderType = "anthropic"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // Unused for Ollama
}

// Endpoint returns the resolved base URL of p, or "" for providers that do
// not expose one.
func Endpoint(p model.Provider) string {
	if e, ok := p.(interface{ BaseURL() string }); ok {
		return e.BaseURL()
	}
	return ""
}
