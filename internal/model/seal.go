package model

import "reflect"

// Seal identifies a dimension. It pairs the wire name with the runtime
// type of the dimension's payload, so seals are comparable and usable as
// map keys without the payload type leaking into every signature.
//
// The registry enforces that a payload type binds to exactly one name,
// which makes seal equality the same thing as dimension identity: the
// seals of two dimensions are equal exactly when the dimensions are the
// same one.
type Seal struct {
	name string
	typ  reflect.Type
}

// NewSeal builds the seal for a dimension whose payload type is P.
// Dimension packages call this once into a package-level variable.
func NewSeal[P Payload](name string) Seal {
	return Seal{name: name, typ: reflect.TypeOf((*P)(nil)).Elem()}
}

// Name returns the dimension name used in wire output, e.g. "numeral".
func (s Seal) Name() string { return s.name }

// PayloadType returns the payload type bound to the dimension.
func (s Seal) PayloadType() reflect.Type { return s.typ }

// IsZero reports whether the seal names no dimension at all.
func (s Seal) IsZero() bool { return s.typ == nil && s.name == "" }

func (s Seal) String() string { return s.name }
