// Package format post-processes raw model output for the terminal.
//
// Two policies exist: Default keeps prose and highlights fenced code in
// place, Code keeps only language-tagged fenced code. Highlighting is only
// applied when the Highlighter is enabled; fence stripping and extraction
// happen either way.
package format

import (
	"regexp"
	"strings"
)

// Formatter renders a raw model response.
type Formatter interface {
	Format(content string) string
}

// New returns the Code formatter when codeOnly is set, otherwise Default.
func New(codeOnly bool, hl *Highlighter) Formatter {
	if codeOnly {
		return &Code{Highlighter: hl}
	}
	return &Default{Highlighter: hl}
}

// fenceRe matches ```lang\n body ``` with a non-greedy body.
var fenceRe = regexp.MustCompile("(?s)```([^\n]*)\n(.*?)```")

const fence = "```"

type fencedBlock struct {
	start, end int
	lang       string
	body       string
}

func findFences(content string) []fencedBlock {
	matches := fenceRe.FindAllStringSubmatchIndex(content, -1)
	blocks := make([]fencedBlock, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, fencedBlock{
			start: m[0],
			end:   m[1],
			lang:  strings.TrimSpace(content[m[2]:m[3]]),
			body:  content[m[4]:m[5]],
		})
	}
	return blocks
}

// replaceFences rebuilds content with each fenced block replaced by fn's result.
func replaceFences(content string, fn func(b fencedBlock) string) string {
	blocks := findFences(content)
	if len(blocks) == 0 {
		return content
	}

	var sb strings.Builder
	last := 0
	for _, b := range blocks {
		sb.WriteString(content[last:b.start])
		sb.WriteString(fn(b))
		last = b.end
	}
	sb.WriteString(content[last:])
	return sb.String()
}
