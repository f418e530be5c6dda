package model

import (
	"fmt"
	"hash/fnv"
)

// Payload is the dimension-specific content of a token. Every dimension
// declares exactly one payload type, and the payload names its dimension
// through Seal, so a token can never pair a dimension tag with another
// dimension's data.
//
// Implementations must be plain comparable data. Equal must be reflexive
// and symmetric, and String must be deterministic with equal payloads
// rendering identically: token hashing is built on it.
type Payload interface {
	// Seal names the dimension this payload belongs to.
	Seal() Seal
	// Equal reports whether other carries the same dimension and value.
	Equal(other Payload) bool
	// String renders a stable, human-readable form of the payload.
	String() string
}

// Token is one matched value: a payload plus the dimension identity the
// payload itself declares. Comparing tokens of different dimensions is
// well defined and simply false, never an error.
type Token struct {
	payload Payload
}

// NewToken wraps a payload into a token.
func NewToken(p Payload) Token { return Token{payload: p} }

// Seal returns the token's dimension tag.
func (t Token) Seal() Seal {
	if t.payload == nil {
		return Seal{}
	}
	return t.payload.Seal()
}

// Payload returns the dimension-specific content, nil for the zero token.
func (t Token) Payload() Payload { return t.payload }

// Is reports whether the token belongs to the given dimension.
func (t Token) Is(s Seal) bool {
	return t.payload != nil && t.payload.Seal() == s
}

// Equal reports whether both tokens carry the same dimension and an
// equal payload.
func (t Token) Equal(other Token) bool {
	if t.payload == nil || other.payload == nil {
		return t.payload == nil && other.payload == nil
	}
	if t.Seal() != other.Seal() {
		return false
	}
	return t.payload.Equal(other.payload)
}

// Hash returns a 64-bit hash consistent with Equal: equal tokens always
// hash to the same value.
func (t Token) Hash() uint64 {
	h := fnv.New64a()
	if t.payload == nil {
		return h.Sum64()
	}
	h.Write([]byte(t.Seal().Name()))
	h.Write([]byte{0})
	h.Write([]byte(t.payload.String()))
	return h.Sum64()
}

func (t Token) String() string {
	if t.payload == nil {
		return "token(none)"
	}
	return fmt.Sprintf("%s(%s)", t.Seal().Name(), t.payload)
}
