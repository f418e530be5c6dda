package model

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Lang is a lowercase ISO 639-1 language code.
type Lang string

// Region is an uppercase ISO 3166-1 alpha-2 country code.
type Region string

const (
	LangEN Lang = "en"

	RegionUS Region = "US"
	RegionGB Region = "GB"
)

// Locale selects a rule vocabulary: a language plus an optional region
// refinement, rendered as "en" or "en_US".
type Locale struct {
	Lang   Lang
	Region Region
}

// ParseLocale parses "en" and "en_US" style locale strings.
func ParseLocale(s string) (Locale, error) {
	if s == "" {
		return Locale{}, errors.New("empty locale")
	}
	parts := strings.SplitN(s, "_", 2)
	loc := Locale{Lang: Lang(strings.ToLower(parts[0]))}
	if len(loc.Lang) != 2 {
		return Locale{}, errors.Newf("invalid locale %q: language must be a two-letter code", s)
	}
	if len(parts) == 2 {
		loc.Region = Region(strings.ToUpper(parts[1]))
		if len(loc.Region) != 2 {
			return Locale{}, errors.Newf("invalid locale %q: region must be a two-letter code", s)
		}
	}
	return loc, nil
}

func (l Locale) String() string {
	if l.Region == "" {
		return string(l.Lang)
	}
	return string(l.Lang) + "_" + string(l.Region)
}

// Context carries everything resolution is allowed to depend on.
// Resolving the same token against the same context always yields the
// same value.
type Context struct {
	// ReferenceTime is the instant treated as "now" by relative
	// expressions such as "tomorrow" or "next friday".
	ReferenceTime time.Time
	// Locale selects the vocabulary the input was parsed with.
	Locale Locale
}

// DefaultMaxPasses bounds rule application per layer. Well-formed rule
// sets saturate within a handful of passes; hitting the bound means a
// rule keeps producing novel tokens for the same span.
const DefaultMaxPasses = 64

// Options are per-parse caller choices.
type Options struct {
	// Targets restricts output to the named dimensions. Empty means
	// every registered dimension.
	Targets []Seal
	// WithLatent keeps latent candidates even when a confident one
	// overlaps them.
	WithLatent bool
	// MaxPasses overrides DefaultMaxPasses when positive.
	MaxPasses int
}

// TargetSet returns Targets as a set. An empty map means no restriction.
func (o Options) TargetSet() map[Seal]bool {
	if len(o.Targets) == 0 {
		return nil
	}
	set := make(map[Seal]bool, len(o.Targets))
	for _, s := range o.Targets {
		set[s] = true
	}
	return set
}
