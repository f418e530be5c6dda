package rules

import "github.com/QtravelPL/duckling/internal/model"

// PatternItem is one matcher in a rule's pattern: either a regex over
// the raw text or a predicate over tokens other rules have produced.
type PatternItem struct {
	regex string
	pred  func(model.Token) bool
}

// Regex builds a lexical item from an uncompiled pattern source. The
// source is compiled case-insensitively when the rule table is built, so
// a malformed pattern fails configuration, never an individual parse.
func Regex(src string) PatternItem { return PatternItem{regex: src} }

// Predicate builds an item matching any produced token fn accepts.
func Predicate(fn func(model.Token) bool) PatternItem {
	return PatternItem{pred: fn}
}

// DimensionIs matches any produced token of the given dimension.
func DimensionIs(s model.Seal) PatternItem {
	return Predicate(func(t model.Token) bool { return t.Is(s) })
}

// IsRegex reports whether the item is a lexical matcher.
func (it PatternItem) IsRegex() bool { return it.regex != "" }

// Source returns the regex source of a lexical item, "" otherwise.
func (it PatternItem) Source() string { return it.regex }

// Accepts applies a predicate item to a token. Lexical items accept
// nothing here; they are matched against the document instead.
func (it PatternItem) Accepts(t model.Token) bool {
	return it.pred != nil && it.pred(t)
}
