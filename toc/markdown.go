package toc

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const fenceMarker = "```"

var (
	reHeadingLine  = regexp.MustCompile(`^(#+)(.*)$`)
	reHTMLComment  = regexp.MustCompile(`(?s)<!--.*?-->`)
	reCustomAnchor = regexp.MustCompile(`^(.*?)\s*\{(#.+?)\}$`)
)

// MarkdownParser extracts TOC entries from heading lines ("## Foo",
// "### Bar") of a Markdown document. Top level headings ("# Main title") are
// excluded from the TOC and reported through the logger. Heading lines
// inside code fences are ignored - code blocks may legitimately contain
// comment characters that look like headings.
type MarkdownParser struct {
	useCustomAnchors bool
	log              *zap.Logger
}

// NewMarkdownParser creates a Markdown heading parser. When useCustomAnchors
// is set, a heading ending in "{#anchor}" keeps the author supplied anchor
// verbatim instead of a derived slug.
func NewMarkdownParser(useCustomAnchors bool, log *zap.Logger) *MarkdownParser {
	return &MarkdownParser{useCustomAnchors: useCustomAnchors, log: log}
}

func (p *MarkdownParser) Parse(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}

	var (
		entries []Entry
		inFence bool
		slugs   = newSlugger()
	)

	// Comment spans may cross line boundaries, strip them before splitting.
	for _, line := range strings.Split(reHTMLComment.ReplaceAllString(string(data), ""), "\n") {
		if strings.HasPrefix(line, fenceMarker) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		m := reHeadingLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		depth := len(m[1]) - 2
		heading := strings.TrimSpace(m[2])
		if depth < 0 {
			p.log.Warn("Top level headings are ignored, skipping", zap.String("heading", heading))
			continue
		}

		if p.useCustomAnchors {
			if cm := reCustomAnchor.FindStringSubmatch(heading); cm != nil {
				// author pinned the anchor, slug de-duplication does not apply
				entries = append(entries, Entry{Depth: depth, Heading: cm[1], Link: cm[2]})
				continue
			}
		}
		entries = append(entries, Entry{Depth: depth, Heading: heading, Link: "#" + slugs.derive(heading)})
	}
	return entries, nil
}
