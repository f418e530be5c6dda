// Package resolve grounds chart tokens in a reference context.
//
// Parsing leaves the chart full of context-free tokens: "friday" is a
// weekday, not yet a date. Resolution turns each produced node into a
// concrete value relative to the request's reference time and locale,
// or drops it when the dimension declines (a date that normalizes to a
// different month, for example).
package resolve

import (
	"github.com/QtravelPL/duckling/internal/dims"
	"github.com/QtravelPL/duckling/internal/engine"
	"github.com/QtravelPL/duckling/internal/model"
)

// Resolver looks up each token's dimension and asks it for a value.
type Resolver struct {
	registry *dims.Registry
}

func New(reg *dims.Registry) *Resolver {
	return &Resolver{registry: reg}
}

// All resolves every produced node the options admit. Nodes whose
// dimension is outside the target set, unknown to the registry, or
// unwilling to resolve are skipped. The result preserves chart order.
func (r *Resolver) All(chart *engine.Chart, ctx model.Context, opts model.Options) []model.ResolvedToken {
	targets := opts.TargetSet()

	var out []model.ResolvedToken
	for _, id := range chart.Produced() {
		n := chart.Node(id)
		seal := n.Token.Seal()
		if targets != nil && !targets[seal] {
			continue
		}
		dim, ok := r.registry.Find(seal)
		if !ok {
			continue
		}
		res, ok := dim.Resolve(n.Token, ctx)
		if !ok {
			continue
		}
		out = append(out, model.ResolvedToken{
			Span:   n.Span,
			Node:   id,
			Seal:   seal,
			Value:  res.Value,
			Latent: res.Latent,
		})
	}
	return out
}
