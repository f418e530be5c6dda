package rules

import (
	"regexp"

	"github.com/cockroachdb/errors"

	"github.com/QtravelPL/duckling/internal/model"
)

// CompiledItem is a pattern item ready for matching: exactly one of
// Regex and Pred is set.
type CompiledItem struct {
	Regex *regexp.Regexp
	Pred  func(model.Token) bool
}

// CompiledRule is an executable rule. Dimension records the owner for
// traces and diagnostics.
type CompiledRule struct {
	Name      string
	Dimension model.Seal
	Items     []CompiledItem
	Produce   Production
}

// Layer groups the compiled rules of dimensions that saturate together.
type Layer struct {
	Rules []CompiledRule
}

// Set is an immutable compiled rule table for one locale. Layers run in
// dependency order: every dimension's dependencies live in an earlier
// layer than the dimension itself.
type Set struct {
	Locale model.Locale
	Layers []Layer
}

// Compile compiles one dimension's rules. Patterns are matched
// case-insensitively. Any malformed rule fails the whole build with an
// error naming the rule, so misconfiguration surfaces before the first
// parse rather than during one.
func Compile(dim model.Seal, rs []Rule) ([]CompiledRule, error) {
	out := make([]CompiledRule, 0, len(rs))
	for _, r := range rs {
		if r.Name == "" {
			return nil, errors.Newf("dimension %s: rule with no name", dim)
		}
		if len(r.Pattern) == 0 {
			return nil, errors.Newf("rule %q of %s: empty pattern", r.Name, dim)
		}
		if r.Produce == nil {
			return nil, errors.Newf("rule %q of %s: nil production", r.Name, dim)
		}
		cr := CompiledRule{Name: r.Name, Dimension: dim, Produce: r.Produce}
		for _, it := range r.Pattern {
			if it.IsRegex() {
				re, err := regexp.Compile("(?i)" + it.Source())
				if err != nil {
					return nil, errors.Wrapf(err, "rule %q of %s: pattern %q", r.Name, dim, it.Source())
				}
				cr.Items = append(cr.Items, CompiledItem{Regex: re})
			} else {
				if it.pred == nil {
					return nil, errors.Newf("rule %q of %s: empty pattern item", r.Name, dim)
				}
				cr.Items = append(cr.Items, CompiledItem{Pred: it.pred})
			}
		}
		out = append(out, cr)
	}
	return out, nil
}
