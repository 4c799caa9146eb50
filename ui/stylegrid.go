package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StyleGrid lays names out in columns that fit width. Every column is as wide
// as the longest name plus two spaces; rows are filled left to right.
func StyleGrid(names []string, width int) string {
	if len(names) == 0 {
		return ""
	}

	longest := 0
	for _, name := range names {
		longest = max(longest, runewidth.StringWidth(name))
	}
	colWidth := longest + 2
	cols := max(1, width/colWidth)

	var b strings.Builder
	for i := 0; i < len(names); i += cols {
		end := min(i+cols, len(names))
		var line strings.Builder
		for _, name := range names[i:end] {
			line.WriteString(runewidth.FillRight(name, colWidth))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
