package model

// ResolvedValue is a dimension's final, context-resolved value. Concrete
// values are plain structs that marshal to the dimension's wire JSON;
// String returns the canonical text used when ordering candidates.
type ResolvedValue interface {
	String() string
}

// Resolution is the outcome of a successful resolve: the value plus
// whether it is latent. A latent value was recognized but not confirmed
// by surrounding context, e.g. a bare month name that may just be a word.
type Resolution struct {
	Value  ResolvedValue
	Latent bool
}

// ResolvedToken is one output candidate: where it matched, which node
// derived it, and what it resolved to.
type ResolvedToken struct {
	Span   Span
	Node   NodeID // Root of this candidate's derivation
	Seal   Seal
	Value  ResolvedValue
	Latent bool
}

// Less defines the total order used to rank candidates: position first,
// then the serialized value text, then confidence (non-latent before
// latent), then dimension name. Equal candidates compare false both
// ways; everything else is strictly ordered, so ranking is deterministic
// regardless of discovery order.
func (r ResolvedToken) Less(other ResolvedToken) bool {
	if r.Span != other.Span {
		return r.Span.Less(other.Span)
	}
	rv, ov := r.Value.String(), other.Value.String()
	if rv != ov {
		return rv < ov
	}
	if r.Latent != other.Latent {
		return !r.Latent
	}
	return r.Seal.Name() < other.Seal.Name()
}
