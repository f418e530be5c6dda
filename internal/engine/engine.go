package engine

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// ErrExpansionBound reports that rule application failed to reach a
// fixpoint within the pass bound. A well-formed rule set saturates in a
// handful of passes; hitting the bound means some rule keeps producing
// novel tokens for the same span.
var ErrExpansionBound = errors.New("rule expansion exceeded pass bound")

// Engine matches compiled rule sets against documents. It holds no
// per-parse state and is safe for concurrent use.
type Engine struct {
	logger *zap.SugaredLogger
}

// New returns an engine with a no-op logger.
func New() *Engine {
	return &Engine{logger: zap.NewNop().Sugar()}
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		e.logger = l
	}
}

// Stats summarizes one parse's expansion.
type Stats struct {
	Passes int // Rule application passes across all layers
	Nodes  int // Arena size at fixpoint, leaves included
}

// Parse runs the rule set against the document to saturation and
// returns the chart of every derivation found. Parse is deterministic
// and side-effect free: the same document, set and options always yield
// an identical chart.
func (e *Engine) Parse(doc *Document, set *rules.Set, opts model.Options) (*Chart, Stats, error) {
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = model.DefaultMaxPasses
	}
	chart := newChart()
	var stats Stats

	// Layers run in dependency order; the outer loop re-sweeps until a
	// full sweep adds nothing, which settles rules that reach across
	// layers without a declared dependency.
	for sweep := 0; ; sweep++ {
		if sweep >= maxPasses {
			return nil, stats, errors.Wrapf(ErrExpansionBound, "no fixpoint after %d sweeps", sweep)
		}
		grew := false
		for li := range set.Layers {
			added, err := e.saturateLayer(doc, chart, &set.Layers[li], maxPasses, &stats)
			if err != nil {
				return nil, stats, err
			}
			if added > 0 {
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	stats.Nodes = chart.Len()
	e.logger.Debugw("parse saturated",
		"text_len", len(doc.text),
		"passes", stats.Passes,
		"nodes", stats.Nodes,
		"produced", len(chart.order))
	return chart, stats, nil
}

// saturateLayer runs one layer's rules to fixpoint. The first pass
// considers every placement; later passes only accept placements that
// touch a node produced in the previous pass, since anything else was
// already tried.
func (e *Engine) saturateLayer(doc *Document, chart *Chart, layer *rules.Layer, maxPasses int, stats *Stats) (int, error) {
	total := 0
	var frontier map[model.NodeID]bool

	for pass := 0; ; pass++ {
		if pass >= maxPasses {
			return total, errors.Wrapf(ErrExpansionBound, "layer not saturated after %d passes", pass)
		}
		stats.Passes++

		// Candidates are gathered against the chart as it stood at the
		// start of the pass and inserted afterwards, so rule order
		// within a layer cannot influence what a pass can see.
		var pending []candidate
		for ri := range layer.Rules {
			e.matchRule(doc, chart, &layer.Rules[ri], frontier, &pending)
		}

		added := 0
		next := make(map[model.NodeID]bool)
		for _, cand := range pending {
			if id, ok := insertCandidate(chart, cand); ok {
				added++
				next[id] = true
			}
		}
		total += added
		if added == 0 {
			return total, nil
		}
		frontier = next
	}
}

// leafSpec is a lexical hit that becomes an arena leaf only if its
// candidate is accepted.
type leafSpec struct {
	span   model.Span
	groups []string
}

// childRef points at either a produced chart node or a pending leaf.
type childRef struct {
	id   model.NodeID
	leaf *leafSpec
}

// candidate is a fully matched rule application awaiting insertion.
type candidate struct {
	rule     *rules.CompiledRule
	span     model.Span
	token    model.Token
	children []childRef
}

// partial is a matched prefix of a rule's pattern.
type partial struct {
	children    []childRef
	start       int
	end         int
	sawFrontier bool
}

// matchRule finds every placement of the rule's pattern and runs the
// production on the complete ones. Items must follow each other with
// only separator bytes between them.
func (e *Engine) matchRule(doc *Document, chart *Chart, rule *rules.CompiledRule, frontier map[model.NodeID]bool, out *[]candidate) {
	var partials []partial
	for i := range rule.Items {
		var next []partial
		if i == 0 {
			next = e.seedItem(doc, chart, &rule.Items[i], frontier)
		} else {
			for _, p := range partials {
				e.extendItem(doc, chart, &rule.Items[i], p, frontier, &next)
			}
		}
		partials = next
		if len(partials) == 0 {
			return
		}
	}

	for _, p := range partials {
		if frontier != nil && !p.sawFrontier {
			continue
		}
		tok, ok := rule.Produce(materialize(chart, p.children))
		if !ok {
			continue
		}
		*out = append(*out, candidate{
			rule:     rule,
			span:     model.Span{Start: p.start, End: p.end},
			token:    tok,
			children: p.children,
		})
	}
}

// seedItem starts partials anywhere in the document.
func (e *Engine) seedItem(doc *Document, chart *Chart, item *rules.CompiledItem, frontier map[model.NodeID]bool) []partial {
	var out []partial
	if item.Regex != nil {
		for _, m := range doc.lexical(item.Regex) {
			out = append(out, partial{
				children: []childRef{{leaf: &leafSpec{span: m.span, groups: m.groups}}},
				start:    m.span.Start,
				end:      m.span.End,
			})
		}
		return out
	}
	for _, id := range chart.order {
		n := chart.arena[id]
		if !item.Pred(n.Token) {
			continue
		}
		out = append(out, partial{
			children:    []childRef{{id: id}},
			start:       n.Span.Start,
			end:         n.Span.End,
			sawFrontier: frontier[id],
		})
	}
	return out
}

// extendItem grows a partial with matches adjacent to its end.
func (e *Engine) extendItem(doc *Document, chart *Chart, item *rules.CompiledItem, p partial, frontier map[model.NodeID]bool, out *[]partial) {
	lo := p.end
	hi := p.end + doc.sepRun(p.end)

	if item.Regex != nil {
		for _, m := range doc.lexical(item.Regex) {
			if m.span.Start < lo {
				continue
			}
			if m.span.Start > hi {
				break // hits are position ordered
			}
			np := p
			np.children = appendChild(p.children, childRef{leaf: &leafSpec{span: m.span, groups: m.groups}})
			np.end = m.span.End
			*out = append(*out, np)
		}
		return
	}

	for s := lo; s <= hi; s++ {
		for _, id := range chart.byStart[s] {
			n := chart.arena[id]
			if !item.Pred(n.Token) {
				continue
			}
			np := p
			np.children = appendChild(p.children, childRef{id: id})
			np.end = n.Span.End
			np.sawFrontier = p.sawFrontier || frontier[id]
			*out = append(*out, np)
		}
	}
}

// appendChild copies before appending: sibling partials share prefixes.
func appendChild(children []childRef, ch childRef) []childRef {
	out := make([]childRef, len(children), len(children)+1)
	copy(out, children)
	return append(out, ch)
}

// materialize turns child references into the tokens a production sees.
func materialize(chart *Chart, children []childRef) []model.Token {
	toks := make([]model.Token, len(children))
	for i, ch := range children {
		if ch.leaf != nil {
			toks[i] = model.NewToken(rules.Match{Groups: ch.leaf.groups})
		} else {
			toks[i] = chart.arena[ch.id].Token
		}
	}
	return toks
}

// insertCandidate commits a candidate: duplicates are dropped before
// any leaf touches the arena, so rejected candidates leave no trace.
func insertCandidate(chart *Chart, cand candidate) (model.NodeID, bool) {
	if id, dup := chart.lookup(cand.span, cand.token); dup {
		return id, false
	}
	children := make([]model.NodeID, len(cand.children))
	for i, ch := range cand.children {
		if ch.leaf != nil {
			children[i] = chart.appendLeaf(model.Node{
				Span:  ch.leaf.span,
				Token: model.NewToken(rules.Match{Groups: ch.leaf.groups}),
			})
		} else {
			children[i] = ch.id
		}
	}
	return chart.insert(model.Node{
		Span:     cand.span,
		Token:    cand.token,
		Children: children,
		Rule:     cand.rule.Name,
	})
}
