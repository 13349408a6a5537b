package toc

import (
	"fmt"
	"strings"
)

// MarkdownRenderer renders entries as an indented bullet list with Markdown
// links. Entries are emitted in input order, depth purely controls
// indentation.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Render(entries []Entry, indent int) string {
	var (
		lines = []string{"## Table of Contents", ""}
		pad   = strings.Repeat(" ", indent)
	)
	for _, e := range entries {
		text := e.Heading
		if len(e.Link) > 0 {
			text = fmt.Sprintf("[%s](%s)", e.Heading, e.Link)
		}
		lines = append(lines, strings.Repeat(pad, e.Depth)+"* "+text)
	}
	return strings.Join(lines, "\n")
}
