package model

import "encoding/json"

// Entity is the externally visible result of a parse. Value marshals to
// the dimension-specific JSON shape. The provenance node id stays
// in-memory only; wire output never round-trips back into the engine.
type Entity struct {
	Dim    string        `json:"dim"`
	Body   string        `json:"body"`
	Value  ResolvedValue `json:"value"`
	Start  int           `json:"start"`
	End    int           `json:"end"`
	Latent bool          `json:"latent"`

	Node NodeID `json:"-"` // Derivation root inside the parse arena
}

// NewEntity materializes a ranked candidate against the input text.
func NewEntity(text string, r ResolvedToken) Entity {
	return Entity{
		Dim:    r.Seal.Name(),
		Body:   text[r.Span.Start:r.Span.End],
		Value:  r.Value,
		Start:  r.Span.Start,
		End:    r.Span.End,
		Latent: r.Latent,
		Node:   r.Node,
	}
}

// Span returns the entity's position as a Span.
func (e Entity) Span() Span { return Span{Start: e.Start, End: e.End} }

// RawValue is a resolved value reconstructed from wire JSON, used when
// entities come back out of a cache rather than a live parse. It
// re-marshals byte for byte.
type RawValue json.RawMessage

// MarshalJSON returns the stored JSON unchanged.
func (v RawValue) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return json.RawMessage(v).MarshalJSON()
}

// UnmarshalJSON keeps the raw bytes as-is.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	*v = append((*v)[0:0], data...)
	return nil
}

func (v RawValue) String() string { return string(v) }
