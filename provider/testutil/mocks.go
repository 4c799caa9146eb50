package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"proompter/model"
)

// MockProvider implements model.Provider for testing
type MockProvider struct {
	// Configurable response
	ChatFunc func(ctx context.Context, messages []model.Message, temperature float64) (string, error)

	mu           sync.Mutex
	calls        []ChatCall
	currentModel string
}

// ChatCall records one Chat invocation.
type ChatCall struct {
	Messages    []model.Message
	Temperature float64
}

// NewMockProvider creates a mock provider with default implementations
func NewMockProvider(modelName string) *MockProvider {
	mock := &MockProvider{
		currentModel: modelName,
	}
	mock.ChatFunc = mock.defaultChat
	return mock
}

// NewStaticProvider returns a mock that always replies with content.
func NewStaticProvider(modelName, content string) *MockProvider {
	mock := NewMockProvider(modelName)
	mock.ChatFunc = func(context.Context, []model.Message, float64) (string, error) {
		return content, nil
	}
	return mock
}

// NewFailingProvider returns a mock whose every call fails with err.
func NewFailingProvider(modelName string, err error) *MockProvider {
	mock := NewMockProvider(modelName)
	mock.ChatFunc = func(context.Context, []model.Message, float64) (string, error) {
		return "", err
	}
	return mock
}

func (m *MockProvider) defaultChat(ctx context.Context, messages []model.Message, temperature float64) (string, error) {
	if len(messages) > 0 {
		return "Mock response", nil
	}
	return "", nil
}

func (m *MockProvider) Chat(ctx context.Context, messages []model.Message, temperature float64) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ChatCall{
		Messages:    append([]model.Message(nil), messages...),
		Temperature: temperature,
	})
	m.mu.Unlock()
	return m.ChatFunc(ctx, messages, temperature)
}

// Calls returns a copy of the recorded Chat invocations.
func (m *MockProvider) Calls() []ChatCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ChatCall(nil), m.calls...)
}

// LastCall returns the most recent Chat invocation.
func (m *MockProvider) LastCall() (ChatCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return ChatCall{}, false
	}
	return m.calls[len(m.calls)-1], true
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

func (m *MockProvider) SetModel(model string) {
	m.currentModel = model
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
