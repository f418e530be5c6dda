package model

// NodeID is a handle into a parse's node arena. Nodes reference children
// by id instead of by pointer, which lets derivations share subtrees
// freely and keeps the whole tree in one flat allocation.
type NodeID int

// Node is one step of a derivation: the span it covers, the token it
// carries, the children it was assembled from, and the name of the rule
// that produced it. Lexical leaves have no children and an empty rule
// name. Nodes are never mutated after insertion.
type Node struct {
	Span     Span
	Token    Token
	Children []NodeID
	Rule     string
}

// IsLeaf reports whether the node is a direct lexical match rather than
// the product of a rule.
func (n Node) IsLeaf() bool { return len(n.Children) == 0 }
