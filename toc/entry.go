// Package toc extracts heading structure from Markdown and HTML documents
// and renders it as a table of contents - a nested list of links pointing to
// in-document anchors. Parsers and renderers are independent, so input and
// output formats can be mixed and matched.
package toc

import "io"

// Entry is one parsed heading. Depth is the semantic nesting level,
// zero-based from the first TOC-eligible heading level. Link is the anchor
// reference including the leading '#'; when empty the entry is rendered as
// plain text.
type Entry struct {
	Depth   int
	Heading string
	Link    string
}

// Parser produces the ordered sequence of TOC entries from a single
// document. Entries are returned in document order, never sorted. All parser
// state is local to one Parse call.
type Parser interface {
	Parse(r io.Reader) ([]Entry, error)
}

// Renderer turns a flat entry sequence into table of contents text, using
// indent spaces per nesting level.
type Renderer interface {
	Render(entries []Entry, indent int) string
}
