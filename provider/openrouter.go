package provider

import (
	"context"

	"proompter/config"
	"proompter/model"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "meta-llama/llama-3.2-90b-instruct"
)

// OpenRouterProvider implements the Provider interface using OpenAI's official Go SDK.
// It connects to OpenRouter's API which is 100% OpenAI-compatible.
type OpenRouterProvider struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenRouterProvider creates a new OpenRouter provider instance.
//
// Parameters:
//   - baseURL: OpenRouter API base URL ("https://openrouter.ai/api/v1")
//   - apiKey: OpenRouter API key
//   - model: Initial model to use (can be changed with SetModel)
func NewOpenRouterProvider(baseURL, apiKey, model string) (*OpenRouterProvider, error) {
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	if apiKey == "" {
		return nil, missingKey(ProviderTypeOpenRouter)
	}
	if model == "" {
		model = defaultOpenRouterModel
	}

	// OpenRouter ranks apps by these headers
	client := newOpenAIClient(baseURL, apiKey,
		option.WithHeader("X-Title", config.AppName),
	)

	return &OpenRouterProvider{
		client:  client,
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Chat implements Provider.Chat with a single chat completion request.
func (p *OpenRouterProvider) Chat(ctx context.Context, messages []model.Message, temperature float64) (string, error) {
	return chatCompletion(ctx, &p.client, "OpenRouter", p.model, messages, temperature)
}

// GetModel implements Provider.GetModel.
// Returns the full model name (with vendor prefix) for API calls.
func (p *OpenRouterProvider) GetModel() string {
	return p.model
}

// SetModel implements Provider.SetModel.
func (p *OpenRouterProvider) SetModel(model string) {
	p.model = model
}

func (p *OpenRouterProvider) BaseURL() string {
	return p.baseURL
}
