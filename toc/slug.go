package toc

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Reserved punctuation is stripped from anchor candidates, hyphens, letters,
// digits and underscores survive.
const reservedPunct = "!@#$%^&*()+;:'\"[]{}|\\<>,./?`~"

// slugger derives URL-fragment-safe anchor identifiers from heading text.
// Identical candidates are disambiguated with a numeric suffix, so anchors
// are unique within one parsed document. Not safe for reuse across
// documents - create a fresh one per parse.
type slugger struct {
	seen map[string]int
}

func newSlugger() *slugger {
	return &slugger{seen: make(map[string]int)}
}

// derive maps heading display text to its final escaped slug: lowercase,
// spaces to hyphens, reserved punctuation removed, then "-N" appended for
// the N-th duplicate of the same candidate. An empty heading produces an
// empty candidate which is tracked like any other.
func (s *slugger) derive(heading string) string {
	candidate := strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '-'
		case strings.ContainsRune(reservedPunct, r):
			return -1
		}
		return r
	}, strings.ToLower(heading))

	n := s.seen[candidate]
	s.seen[candidate]++
	if n > 0 {
		candidate += "-" + strconv.Itoa(n)
	}
	return html.EscapeString(candidate)
}
