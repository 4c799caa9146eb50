package format

import "strings"

// Default leaves prose untouched and highlights fenced code in place. When
// the whole response is fenced, the fence lines and language tags are removed.
type Default struct {
	Highlighter *Highlighter
}

func (f *Default) Format(content string) string {
	content = strings.TrimSpace(content)
	wholeFenced := strings.HasPrefix(content, fence) && strings.HasSuffix(content, fence)

	if f.Highlighter.Enabled() {
		content = replaceFences(content, func(b fencedBlock) string {
			return fence + b.lang + "\n" + f.Highlighter.Highlight(b.body, b.lang) + fence
		})
	}

	if wholeFenced {
		content = replaceFences(content, func(b fencedBlock) string {
			return b.body
		})
	}

	return strings.TrimSpace(content)
}
