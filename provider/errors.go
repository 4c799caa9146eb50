package provider

import (
	"errors"
	"fmt"

	"proompter/model"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// wrapAPIError classifies a failed request. Errors carrying an HTTP status
// from the remote API become *model.UpstreamError; anything else (transport
// failures, cancellation) is wrapped as-is.
func wrapAPIError(providerName string, err error) error {
	if err == nil {
		return nil
	}

	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return &model.UpstreamError{Provider: providerName, StatusCode: openaiErr.StatusCode, Err: err}
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return &model.UpstreamError{Provider: providerName, StatusCode: anthropicErr.StatusCode, Err: err}
	}

	var ollamaErr api.StatusError
	if errors.As(err, &ollamaErr) {
		return &model.UpstreamError{Provider: providerName, StatusCode: ollamaErr.StatusCode, Err: err}
	}

	return fmt.Errorf("%s request failed: %w", providerName, err)
}
