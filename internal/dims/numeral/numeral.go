// Package numeral implements cardinal number extraction: digit strings,
// number words and their compositions ("two hundred", "twenty-three",
// "1.5 million").
package numeral

import (
	"fmt"
	"math"
	"strconv"

	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Data is the numeral payload. Grain and Multipliable drive composition:
// Grain is the power of ten a word form occupies ("hundred" is 2,
// "twenty" is 1), and Multipliable marks bare scale words that multiply
// a preceding number.
type Data struct {
	Value        float64
	Grain        int
	Multipliable bool
}

var seal = model.NewSeal[Data]("numeral")

// Seal returns the numeral dimension's seal.
func Seal() model.Seal { return seal }

func (d Data) Seal() model.Seal { return seal }

func (d Data) Equal(other model.Payload) bool {
	o, ok := other.(Data)
	return ok && o == d
}

func (d Data) String() string {
	return fmt.Sprintf("numeral{%s g%d m%t}", Format(d.Value), d.Grain, d.Multipliable)
}

// Value is the numeral wire value.
type Value struct {
	Value float64 `json:"value"`
}

func (v Value) String() string { return Format(v.Value) }

// Format renders a float the way wire values do: plain decimal notation,
// no exponent, no trailing zeros.
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Dim is the numeral dimension.
type Dim struct{}

// New returns the numeral dimension.
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

// ValueOf extracts the numeric value of a numeral token.
func ValueOf(t model.Token) (float64, bool) {
	d, ok := t.Payload().(Data)
	if !ok {
		return 0, false
	}
	return d.Value, true
}

// IsIntegerBetween returns a predicate accepting numeral tokens whose
// value is an integer in [lo, hi].
func IsIntegerBetween(lo, hi int) func(model.Token) bool {
	return func(t model.Token) bool {
		d, ok := t.Payload().(Data)
		if !ok {
			return false
		}
		return isInt(d.Value) && d.Value >= float64(lo) && d.Value <= float64(hi)
	}
}

// IsPositive accepts numeral tokens with a value greater than zero.
func IsPositive(t model.Token) bool {
	d, ok := t.Payload().(Data)
	return ok && d.Value > 0
}

// IsNonNegative accepts numeral tokens with a value of zero or more.
func IsNonNegative(t model.Token) bool {
	d, ok := t.Payload().(Data)
	return ok && d.Value >= 0
}

func isInt(f float64) bool { return f == math.Trunc(f) }
