package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"proompter/format"
	"proompter/model"
)

// RenderHistory renders a stored dialog for --history. JSON mode emits the
// same document the dialog store persists; text mode labels each message with
// its role and formats assistant replies with the default policy.
func RenderHistory(dialog []model.Message, asJSON bool, hl *format.Highlighter) (string, error) {
	if asJSON {
		data, err := json.MarshalIndent(dialog, "", "    ")
		if err != nil {
			return "", fmt.Errorf("failed to encode history: %w", err)
		}
		out := string(data)
		if hl.Enabled() {
			out = strings.TrimRight(hl.Highlight(out+"\n", "json"), "\n")
		}
		return out, nil
	}

	color := hl.Enabled()
	formatter := format.New(false, hl)

	var blocks []string
	for _, msg := range dialog {
		content := msg.Content
		if msg.Role == model.RoleAssistant {
			content = formatter.Format(content)
		}
		label := paint(color, RoleStyle(string(msg.Role)), string(msg.Role)+":")
		blocks = append(blocks, label+"\n"+content)
	}
	return strings.Join(blocks, "\n\n"), nil
}
