//go:generate go tool go-enum -f $GOFILE --marshal

package config

// Specification of requested TOC output type. Input format is derived from
// the document file extension and is not configurable.
// ENUM(markdown, html)
type OutputFmt int

// Ext returns the conventional file extension for documents of this format.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtMarkdown:
		return ".md"
	case OutputFmtHtml:
		return ".html"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
