package toc

import "strings"

// The set of tags a TOC needs is closed and known at compile time.
type tagKind int

const (
	tagH2 tagKind = iota
	tagUL
	tagLI
	tagA
)

func (t tagKind) String() string {
	switch t {
	case tagH2:
		return "h2"
	case tagUL:
		return "ul"
	case tagLI:
		return "li"
	case tagA:
		return "a"
	default:
		// this should never happen
		panic("unsupported tag requested")
	}
}

type tagAttr struct {
	name, value string
}

// wrapTag surrounds content with the given tag. With newline set, open and
// close tags are separated from the content by line breaks and both tags are
// left padded with indent.
func wrapTag(t tagKind, content string, attrs []tagAttr, newline bool, indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(t.String())
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(a.value)
		b.WriteString(`"`)
	}
	b.WriteByte('>')
	if newline {
		b.WriteByte('\n')
	}
	b.WriteString(content)
	if newline {
		b.WriteByte('\n')
	}
	b.WriteString(indent)
	b.WriteString("</")
	b.WriteString(t.String())
	b.WriteByte('>')
	return b.String()
}

// HTMLRenderer renders entries as nested <ul>/<li> markup, wrapping linked
// headings in anchor tags. Nesting is built by grouping consecutive runs of
// entries at the same depth, a deeper run becomes a nested <ul> spliced in
// place. The recursion descends one level per call, so a depth jump of more
// than one level produces one <ul> wrapper per skipped level.
type HTMLRenderer struct{}

func (r HTMLRenderer) Render(entries []Entry, indent int) string {
	return wrapTag(tagH2, "Table of Contents", nil, false, "") + "\n" +
		r.list(entries, 0, strings.Repeat(" ", indent))
}

// list builds a potentially nested unordered list from a flat run of
// entries. Runs matching the current depth emit one <li> per entry, any
// other run is rendered one level deeper.
func (r HTMLRenderer) list(entries []Entry, depth int, pad string) string {
	var blocks []string
	for i := 0; i < len(entries); {
		j := i + 1
		matches := entries[i].Depth == depth
		for j < len(entries) && (entries[j].Depth == depth) == matches {
			j++
		}
		if matches {
			for _, e := range entries[i:j] {
				blocks = append(blocks, strings.Repeat(pad, depth+1)+wrapTag(tagLI, r.item(e), nil, false, ""))
			}
		} else {
			blocks = append(blocks, r.list(entries[i:j], depth+1, pad))
		}
		i = j
	}
	return wrapTag(tagUL, strings.Join(blocks, "\n"), nil, true, strings.Repeat(pad, depth))
}

func (HTMLRenderer) item(e Entry) string {
	if len(e.Link) > 0 {
		return wrapTag(tagA, e.Heading, []tagAttr{{name: "href", value: e.Link}}, false, "")
	}
	return e.Heading
}
