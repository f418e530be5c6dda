// Package dims defines the dimension interface and the registry that
// assembles dimensions into the rule table a parse executes.
package dims

import (
	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Dimension describes one extraction category. A dimension owns a
// payload type (identified by its seal), contributes composition rules
// per locale, may depend on other dimensions' tokens, and knows how to
// resolve its matched tokens into final values.
type Dimension interface {
	// Seal is the dimension's identity.
	Seal() model.Seal

	// Rules returns the dimension's rules for a locale. An empty slice
	// means the dimension is inactive there.
	Rules(loc model.Locale) []rules.Rule

	// Dependencies lists dimensions whose tokens this dimension's rules
	// consume. Dependencies saturate in an earlier layer.
	Dependencies() []model.Seal

	// Resolve converts a matched token into its final value against the
	// context, or reports that the token has no valid resolution. A
	// failed resolution silently drops the candidate.
	Resolve(t model.Token, ctx model.Context) (model.Resolution, bool)
}
