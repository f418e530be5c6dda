package rules

import "github.com/QtravelPL/duckling/internal/model"

// Production builds the composite token for a full pattern match. It
// receives one token per pattern item in pattern order, lexical items
// contributing Match tokens. Returning ok=false declines the match; that
// is the normal way to reject values the pattern alone cannot exclude,
// not an error.
type Production func(toks []model.Token) (model.Token, bool)

// Rule pairs a pattern with the production applied on a full match.
// Rule names appear in derivation traces and in configuration errors.
type Rule struct {
	Name    string
	Pattern []PatternItem
	Produce Production
}
