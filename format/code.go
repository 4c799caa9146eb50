package format

import "strings"

// Code keeps only fenced blocks that declare a language, in order. With no
// such block, the whole response is treated as code.
type Code struct {
	Highlighter *Highlighter
}

func (f *Code) Format(content string) string {
	var tagged []fencedBlock
	for _, b := range findFences(content) {
		if b.lang != "" {
			tagged = append(tagged, b)
		}
	}

	if len(tagged) == 0 {
		if f.Highlighter.Enabled() {
			content = f.Highlighter.Highlight(content, "")
		}
		return strings.TrimSpace(content)
	}

	var sb strings.Builder
	for _, b := range tagged {
		body := b.body
		if f.Highlighter.Enabled() {
			body = f.Highlighter.Highlight(body, b.lang)
		}
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
