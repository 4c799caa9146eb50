package model

// Role identifies the author of a message in a dialog.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single chat message in the conversation.
// The JSON shape is the on-disk session format: {"role": ..., "content": ...}.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// WithoutSystem returns a copy of dialog with all system-role messages removed.
func WithoutSystem(dialog []Message) []Message {
	result := make([]Message, 0, len(dialog))
	for _, msg := range dialog {
		if msg.Role == RoleSystem {
			continue
		}
		result = append(result, msg)
	}
	return result
}

// Tail returns a copy of the last n messages of dialog.
func Tail(dialog []Message, n int) []Message {
	if n < 0 {
		n = 0
	}
	if len(dialog) > n {
		dialog = dialog[len(dialog)-n:]
	}
	result := make([]Message, len(dialog))
	copy(result, dialog)
	return result
}
