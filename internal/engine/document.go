// Package engine matches compiled rule sets against input text, growing
// a chart of derivations until no rule can add anything new.
package engine

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/QtravelPL/duckling/internal/model"
)

// Document is one parse's input plus its memoized lexical layer: each
// distinct pattern runs against the text exactly once and the hits are
// shared across rules, positions and passes.
type Document struct {
	text    string
	matches map[string][]lexMatch
}

// lexMatch is one regex hit with its capture groups materialized.
// Group 0 is the whole match.
type lexMatch struct {
	span   model.Span
	groups []string
}

// NewDocument wraps input text for parsing.
func NewDocument(text string) *Document {
	return &Document{text: text, matches: make(map[string][]lexMatch)}
}

// Text returns the raw input.
func (d *Document) Text() string { return d.text }

// lexical returns every word-bounded hit of re in position order,
// memoized under the pattern source.
func (d *Document) lexical(re *regexp.Regexp) []lexMatch {
	key := re.String()
	if ms, ok := d.matches[key]; ok {
		return ms
	}
	ms := []lexMatch{}
	for _, idx := range re.FindAllStringSubmatchIndex(d.text, -1) {
		span := model.Span{Start: idx[0], End: idx[1]}
		if span.Len() == 0 || !d.wordBounded(span) {
			continue
		}
		groups := make([]string, 0, len(idx)/2)
		for g := 0; g < len(idx)/2; g++ {
			s, e := idx[2*g], idx[2*g+1]
			if s < 0 {
				groups = append(groups, "")
			} else {
				groups = append(groups, d.text[s:e])
			}
		}
		ms = append(ms, lexMatch{span: span, groups: groups})
	}
	d.matches[key] = ms
	return ms
}

// wordBounded rejects hits that start or end inside a word, so "nine"
// never matches into "ninety" and "2" never matches into "2025".
func (d *Document) wordBounded(s model.Span) bool {
	if s.Start > 0 {
		prev, _ := utf8.DecodeLastRuneInString(d.text[:s.Start])
		first, _ := utf8.DecodeRuneInString(d.text[s.Start:])
		if isWordRune(prev) && isWordRune(first) {
			return false
		}
	}
	if s.End < len(d.text) {
		last, _ := utf8.DecodeLastRuneInString(d.text[:s.End])
		next, _ := utf8.DecodeRuneInString(d.text[s.End:])
		if isWordRune(last) && isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isSeparator reports whether a byte may sit between two pattern items.
func isSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '-':
		return true
	}
	return false
}

// sepRun returns how many separator bytes follow pos.
func (d *Document) sepRun(pos int) int {
	n := 0
	for pos+n < len(d.text) && isSeparator(d.text[pos+n]) {
		n++
	}
	return n
}
