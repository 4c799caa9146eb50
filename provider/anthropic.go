package provider

import (
	"context"
	"fmt"
	"strings"

	"proompter/config"
	"proompter/model"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = string(anthropic.ModelClaudeSonnet4_5_20250929)
)

// AnthropicProvider implements the Provider interface using Anthropic's official API.
type AnthropicProvider struct {
	client  *anthropic.Client
	model   anthropic.Model
	baseURL string
}

// NewAnthropicProvider creates a new Anthropic provider instance.
//
// Parameters:
//   - baseURL: Anthropic API base URL (default: "https://api.anthropic.com")
//   - apiKey: Anthropic API key (required)
//   - model: Initial model to use (default: "claude-sonnet-4-5-20250929")
func NewAnthropicProvider(baseURL, apiKey, model string) (*AnthropicProvider, error) {
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	if apiKey == "" {
		return nil, missingKey(ProviderTypeAnthropic)
	}
	if model == "" {
		model = defaultAnthropicModel
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(newHTTPClient()),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(config.ConnectTimeout+config.ReadTimeout),
	)

	return &AnthropicProvider{
		client:  &client,
		model:   anthropic.Model(model),
		baseURL: baseURL,
	}, nil
}

// Chat implements Provider.Chat with a single messages request.
func (p *AnthropicProvider) Chat(ctx context.Context, messages []model.Message, temperature float64) (string, error) {
	anthropicMessages, systemPrompt := convertToAnthropicMessages(messages)

	params := anthropic.MessageNewParams{
		Model:       p.model,
		Messages:    anthropicMessages,
		MaxTokens:   config.MaxRequestTokens, // Required by Anthropic API
		Temperature: anthropic.Float(temperature),
	}
	// Anthropic uses a separate system parameter, not in messages array
	if len(systemPrompt) > 0 {
		params.System = systemPrompt
	}

	config.Debugf("[Anthropic] chat request: model=%s messages=%d temperature=%.2f", p.model, len(anthropicMessages), temperature)

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", wrapAPIError("Anthropic", err)
	}

	var content strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			content.WriteString(text.Text)
		}
	}
	if len(msg.Content) == 0 {
		return "", &model.UpstreamError{Provider: "Anthropic", Err: fmt.Errorf("response contained no content")}
	}

	config.Debugf("[Anthropic] chat response: stop_reason=%s", msg.StopReason)
	return content.String(), nil
}

// GetModel implements Provider.GetModel.
func (p *AnthropicProvider) GetModel() string {
	return string(p.model)
}

// SetModel implements Provider.SetModel.
func (p *AnthropicProvider) SetModel(model string) {
	p.model = anthropic.Model(model)
}

func (p *AnthropicProvider) BaseURL() string {
	return p.baseURL
}
