// Package ordinal implements ordinal number extraction ("3rd",
// "twenty-first").
package ordinal

import (
	"fmt"
	"strconv"

	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Data is the ordinal payload.
type Data struct {
	Value int
}

var seal = model.NewSeal[Data]("ordinal")

// Seal returns the ordinal dimension's seal.
func Seal() model.Seal { return seal }

func (d Data) Seal() model.Seal { return seal }

func (d Data) Equal(other model.Payload) bool {
	o, ok := other.(Data)
	return ok && o == d
}

func (d Data) String() string { return fmt.Sprintf("ordinal{%d}", d.Value) }

// Value is the ordinal wire value.
type Value struct {
	Value int `json:"value"`
}

func (v Value) String() string { return strconv.Itoa(v.Value) }

// Dim is the ordinal dimension.
type Dim struct{}

// New returns the ordinal dimension.
func New() *Dim { return &Dim{} }

func (*Dim) Seal() model.Seal { return seal }

func (*Dim) Dependencies() []model.Seal { return nil }

func (*Dim) Rules(loc model.Locale) []rules.Rule {
	if loc.Lang != model.LangEN {
		return nil
	}
	return enRules
}

func (*Dim) Resolve(t model.Token, _ model.Context) (model.Resolution, bool) {
	d, ok := t.Payload().(Data)
	if !ok {
		return model.Resolution{}, false
	}
	return model.Resolution{Value: Value{Value: d.Value}}, true
}

// ValueOf extracts the position of an ordinal token.
func ValueOf(t model.Token) (int, bool) {
	d, ok := t.Payload().(Data)
	if !ok {
		return 0, false
	}
	return d.Value, true
}

// IsBetween returns a predicate accepting ordinal tokens in [lo, hi].
func IsBetween(lo, hi int) func(model.Token) bool {
	return func(t model.Token) bool {
		d, ok := t.Payload().(Data)
		return ok && d.Value >= lo && d.Value <= hi
	}
}
