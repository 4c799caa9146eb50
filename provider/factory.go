package provider

import (
	"fmt"

	"proompter/model"
	"proompter/ollama"
)

// NewProvider creates a provider based on configuration.
//
// This is the centralized factory function for creating any provider type.
// It handles dispatching to the appropriate provider constructor based on
// the Config.Type field.
//
// Returns an error if:
//   - The provider type is unknown (*model.UnimplementedError)
//   - A cloud provider has no API key (*model.MissingCredentialError)
//   - The provider-specific constructor fails (e.g., invalid URL)
func NewProvider(cfg Config) (model.Provider, error) {
	switch cfg.Type {
	case ProviderTypeOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model)
	case ProviderTypeOpenRouter:
		return NewOpenRouterProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case ProviderTypeOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case ProviderTypeAnthropic:
		return NewAnthropicProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	default:
		return nil, &model.UnimplementedError{Feature: fmt.Sprintf("provider %q", cfg.Type)}
	}
}

// MapProviderIDToType converts config provider ID to factory ProviderType.
//
// For unknown IDs, returns the ID cast as ProviderType (factory will error).
func MapProviderIDToType(id string) ProviderType {
	switch id {
	case "ollama":
		return ProviderTypeOllama
	case "openrouter":
		return ProviderTypeOpenRouter
	case "openai":
		return ProviderTypeOpenAI
	case "anthropic", "claude":
		return ProviderTypeAnthropic
	default:
		return ProviderType(id)
	}
}

// APIKeyEnv returns the environment variable holding the API key for a
// provider type, or "" when the provider needs none.
func APIKeyEnv(t ProviderType) string {
	switch t {
	case ProviderTypeOpenAI:
		return "OPENAI_API_KEY"
	case ProviderTypeOpenRouter:
		return "OPENROUTER_API_KEY"
	case ProviderTypeAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(t ProviderType) string {
	switch t {
	case ProviderTypeOpenAI:
		return defaultOpenAIModel
	case ProviderTypeOpenRouter:
		return defaultOpenRouterModel
	case ProviderTypeAnthropic:
		return defaultAnthropicModel
	case ProviderTypeOllama:
		return ollama.DefaultModel
	default:
		return ""
	}
}

// Types lists the supported provider types in display order.
func Types() []ProviderType {
	return []ProviderType{
		ProviderTypeOpenAI,
		ProviderTypeOpenRouter,
		ProviderTypeAnthropic,
		ProviderTypeOllama,
	}
}
