package toc

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var reHeadingTag = regexp.MustCompile(`^h[0-9]+$`)

// HTMLParser extracts TOC entries from heading elements ("<h2>Foo</h2>",
// "<h3>Bar</h3>") of an HTML document. An explicit id attribute becomes the
// anchor link, headings without one get an empty link - no slug synthesis is
// attempted for HTML input. Malformed markup is tolerated best-effort, the
// parser degrades to skipping fragments it cannot interpret.
type HTMLParser struct{}

func NewHTMLParser() *HTMLParser {
	return &HTMLParser{}
}

func (p *HTMLParser) Parse(r io.Reader) ([]Entry, error) {
	var (
		entries   []Entry
		inHeading bool
		depth     int
		link      string
		heading   strings.Builder
	)

	// The tokenizer lower-cases tag names, so the heading pattern does not
	// need to be case-insensitive.
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("unable to tokenize document: %w", err)
			}
			return entries, nil
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if inHeading || !reHeadingTag.Match(name) {
				// nested heading tags are not expected by the input grammar,
				// stay with the currently open heading
				continue
			}
			number, err := strconv.Atoi(string(name[1:]))
			if err != nil {
				continue
			}
			inHeading = true
			depth = number - 1
			link = ""
			heading.Reset()
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "id" {
					link = "#" + string(val)
					break
				}
			}
		case html.TextToken:
			if inHeading {
				// multi-line markup collapses to one line of text
				heading.Write(bytesWithoutNewlines(z.Text()))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if inHeading && reHeadingTag.Match(name) {
				entries = append(entries, Entry{Depth: depth, Heading: strings.TrimSpace(heading.String()), Link: link})
				inHeading = false
			}
		}
	}
}

func bytesWithoutNewlines(text []byte) []byte {
	out := make([]byte, 0, len(text))
	for _, b := range text {
		if b != '\n' && b != '\r' {
			out = append(out, b)
		}
	}
	return out
}
