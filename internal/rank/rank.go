// Package rank picks the candidates worth reporting.
//
// A saturated chart derives every reading of the input, so resolution
// hands us overlapping fragments: "two hundred" arrives as 2, 100 and
// 200. Ranking keeps the longest derivation per dimension, collapses
// duplicate spans and decides which latent readings deserve to
// surface.
package rank

import (
	"sort"

	"github.com/QtravelPL/duckling/internal/model"
)

type spanSeal struct {
	span model.Span
	seal model.Seal
}

// Winners filters resolved candidates down to the reportable set.
//
// Within a dimension the longest span wins: a candidate strictly inside
// another candidate of the same dimension is a fragment of a bigger
// reading and is dropped. Candidates sharing a span and dimension
// collapse to the first in rank order. Latent candidates survive only
// when nothing non-latent overlaps them, unless withLatent keeps them
// all. The result is ordered by position.
func Winners(cands []model.ResolvedToken, withLatent bool) []model.ResolvedToken {
	if len(cands) == 0 {
		return nil
	}

	sorted := make([]model.ResolvedToken, len(cands))
	copy(sorted, cands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	var kept []model.ResolvedToken
	for _, c := range sorted {
		if subsumed(c, sorted) {
			continue
		}
		kept = append(kept, c)
	}

	seen := make(map[spanSeal]bool, len(kept))
	uniq := kept[:0]
	for _, c := range kept {
		k := spanSeal{span: c.Span, seal: c.Seal}
		if seen[k] {
			continue
		}
		seen[k] = true
		uniq = append(uniq, c)
	}

	if withLatent {
		return uniq
	}
	var out []model.ResolvedToken
	for _, c := range uniq {
		if c.Latent && shadowed(c, uniq) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// subsumed reports whether a same-dimension candidate strictly contains
// c. Containment is transitive, so checking against the full candidate
// list gives the same survivors as checking against prior winners.
func subsumed(c model.ResolvedToken, all []model.ResolvedToken) bool {
	for _, other := range all {
		if other.Seal == c.Seal && other.Span.StrictlyContains(c.Span) {
			return true
		}
	}
	return false
}

// shadowed reports whether any non-latent candidate overlaps c.
func shadowed(c model.ResolvedToken, all []model.ResolvedToken) bool {
	for _, other := range all {
		if !other.Latent && other.Span.Overlaps(c.Span) {
			return true
		}
	}
	return false
}

// Entities materializes winners against the input text. The slice is
// never nil so an empty result marshals as [].
func Entities(text string, winners []model.ResolvedToken) []model.Entity {
	out := make([]model.Entity, 0, len(winners))
	for _, w := range winners {
		out = append(out, model.NewEntity(text, w))
	}
	return out
}
