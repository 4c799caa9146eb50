package provider

import (
	"context"
	"fmt"

	"proompter/config"
	"proompter/model"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// OpenAIProvider implements the Provider interface using OpenAI's official API.
// It uses the official OpenAI Go SDK for direct OpenAI API access.
type OpenAIProvider struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenAIProvider creates a new OpenAI provider instance.
//
// Parameters:
//   - baseURL: OpenAI API base URL (default: "https://api.openai.com/v1")
//   - apiKey: OpenAI API key (required)
//   - model: Initial model to use (default: "gpt-4o-mini")
//
// Returns a *model.MissingCredentialError if the API key is missing.
func NewOpenAIProvider(baseURL, apiKey, model string) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if apiKey == "" {
		return nil, missingKey(ProviderTypeOpenAI)
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIProvider{
		client:  newOpenAIClient(baseURL, apiKey),
		model:   model,
		baseURL: baseURL,
	}, nil
}

func newOpenAIClient(baseURL, apiKey string, extra ...option.RequestOption) openai.Client {
	opts := append([]option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(newHTTPClient()),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(config.ConnectTimeout + config.ReadTimeout),
	}, extra...)
	return openai.NewClient(opts...)
}

// Chat implements Provider.Chat with a single chat completion request.
func (p *OpenAIProvider) Chat(ctx context.Context, messages []model.Message, temperature float64) (string, error) {
	return chatCompletion(ctx, &p.client, "OpenAI", p.model, messages, temperature)
}

// chatCompletion is the request path shared by every OpenAI-compatible API.
func chatCompletion(ctx context.Context, client *openai.Client, providerName, modelName string, messages []model.Message, temperature float64) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages:    ConvertToOpenAIMessages(messages),
		Model:       openai.ChatModel(modelName),
		Temperature: openai.Float(temperature),
	}

	config.Debugf("[%s] chat request: model=%s messages=%d temperature=%.2f", providerName, modelName, len(messages), temperature)

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", wrapAPIError(providerName, err)
	}
	if len(completion.Choices) == 0 {
		return "", &model.UpstreamError{Provider: providerName, Err: fmt.Errorf("response contained no choices")}
	}

	config.Debugf("[%s] chat response: finish_reason=%s", providerName, completion.Choices[0].FinishReason)
	return completion.Choices[0].Message.Content, nil
}

// GetModel implements Provider.GetModel.
func (p *OpenAIProvider) GetModel() string {
	return p.model
}

// SetModel implements Provider.SetModel.
func (p *OpenAIProvider) SetModel(model string) {
	p.model = model
}

func (p *OpenAIProvider) BaseURL() string {
	return p.baseURL
}

func missingKey(t ProviderType) error {
	return &model.MissingCredentialError{EnvVar: APIKeyEnv(t)}
}
