package engine

import "github.com/QtravelPL/duckling/internal/model"

// cellKey addresses a chart cell by exact span.
type cellKey struct{ start, end int }

// Chart is the working state of one parse: an append-only node arena
// plus indices over the produced nodes. Lexical leaves enter the arena
// only as children of an accepted production and are never indexed;
// predicates match produced tokens alone.
type Chart struct {
	arena   []model.Node
	order   []model.NodeID // produced nodes, insertion order
	byCell  map[cellKey][]model.NodeID
	byStart map[int][]model.NodeID
}

func newChart() *Chart {
	return &Chart{
		byCell:  make(map[cellKey][]model.NodeID),
		byStart: make(map[int][]model.NodeID),
	}
}

// Node returns the node for an id previously handed out by this chart.
func (c *Chart) Node(id model.NodeID) model.Node { return c.arena[id] }

// Produced returns the ids of all produced nodes in insertion order.
func (c *Chart) Produced() []model.NodeID {
	out := make([]model.NodeID, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the total number of arena nodes, leaves included.
func (c *Chart) Len() int { return len(c.arena) }

// lookup finds a produced node with the same span and an equal token.
func (c *Chart) lookup(span model.Span, tok model.Token) (model.NodeID, bool) {
	for _, id := range c.byCell[cellKey{span.Start, span.End}] {
		if c.arena[id].Token.Equal(tok) {
			return id, true
		}
	}
	return 0, false
}

// appendLeaf adds a lexical leaf to the arena.
func (c *Chart) appendLeaf(n model.Node) model.NodeID {
	id := model.NodeID(len(c.arena))
	c.arena = append(c.arena, n)
	return id
}

// insert adds a produced node unless an equal token already covers the
// same span, which makes re-running a rule a no-op.
func (c *Chart) insert(n model.Node) (model.NodeID, bool) {
	if id, dup := c.lookup(n.Span, n.Token); dup {
		return id, false
	}
	id := model.NodeID(len(c.arena))
	c.arena = append(c.arena, n)
	c.order = append(c.order, id)
	key := cellKey{n.Span.Start, n.Span.End}
	c.byCell[key] = append(c.byCell[key], id)
	c.byStart[n.Span.Start] = append(c.byStart[n.Span.Start], id)
	return id, true
}
