package testutil

import "proompter/model"

// TestMessages returns a sample conversation for testing
func TestMessages() []model.Message {
	return []model.Message{
		model.UserMessage("Hello, how are you?"),
		model.AssistantMessage("I'm doing well, thank you!"),
		model.UserMessage("Can you help me with a task?"),
	}
}

// SingleUserMessage returns a single user message for simple tests
func SingleUserMessage(content string) []model.Message {
	return []model.Message{model.UserMessage(content)}
}

// WithSystem prepends a system message to a dialog
func WithSystem(system string, dialog []model.Message) []model.Message {
	return append([]model.Message{model.SystemMessage(system)}, dialog...)
}

// EmptyMessages returns an empty message slice for edge case testing
func EmptyMessages() []model.Message {
	return []model.Message{}
}

// FencedPythonResponse is a canned assistant reply consisting of a single
// tagged code block.
const FencedPythonResponse = "```python\nprint(\"hello\")\n```"

// OpenAIChatResponse is a minimal chat completion body returning content.
func OpenAIChatResponse(content string) string {
	return `{"id":"chatcmpl-test","object":"chat.completion","created":1700000000,"model":"gpt-4o-mini",` +
		`"choices":[{"index":0,"message":{"role":"assistant","content":` + quote(content) + `},"finish_reason":"stop"}],` +
		`"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`
}

// AnthropicMessageResponse is a minimal messages API body returning content.
func AnthropicMessageResponse(content string) string {
	return `{"id":"msg_test","type":"message","role":"assistant","model":"claude-sonnet-4-5-20250929",` +
		`"content":[{"type":"text","text":` + quote(content) + `}],` +
		`"stop_reason":"end_turn","stop_sequence":null,"usage":{"input_tokens":1,"output_tokens":1}}`
}

// OllamaChatResponse is a minimal non-streaming /api/chat body returning content.
func OllamaChatResponse(content string) string {
	return `{"model":"llama3.1:latest","created_at":"2024-01-01T00:00:00Z",` +
		`"message":{"role":"assistant","content":` + quote(content) + `},"done":true}` + "\n"
}
