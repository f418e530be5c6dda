// Package duration implements duration extraction ("3 days", "half an
// hour", "2 hours and a half").
package duration

import (
	"fmt"

	"github.com/QtravelPL/duckling/internal/dims/grain"
	"github.com/QtravelPL/duckling/internal/dims/numeral"
	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Data is the duration payload: a quantity of one grain.
type Data struct {
	Value float64
	Grain grain.Grain
}

var seal = model.NewSeal[Data]("duration")

// Seal returns the duration dimension's seal.
func Seal() model.Seal { return seal }

func (d Data) Seal() model.Seal { return seal }

func (d Data) Equal(other model.Payload) bool {
	o, ok := other.(Data)
	return ok && o == d
}

func (d Data) String() string {
	return fmt.Sprintf("duration{%s %s}", numeral.Format(d.Value), d.Grain)
}

// Normalized is a duration re-expressed in seconds.
type Normalized struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Value is the duration wire value.
type Value struct {
	Value      float64    `json:"value"`
	Unit       string     `json:"unit"`
	Normalized Normalized `json:"normalized"`
}

func (v Value) String() string {
	return numeral.Format(v.Value) + " " + v.Unit
}

// Dim is the duration dimension.
type Dim struct{}

// New returns the duration dimension.
func New() *Dim { return &Dim{} }

func (*Dim) Seal() model.Seal { return seal }

func (*Dim) Dependencies() []model.Seal {
	return []model.Seal{numeral.Seal(), grain.Seal()}
}

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
	seconds := d.Value * d.Grain.Duration().Seconds()
	return model.Resolution{Value: Value{
		Value:      d.Value,
		Unit:       d.Grain.String(),
		Normalized: Normalized{Value: seconds, Unit: "second"},
	}}, true
}

func isDuration(t model.Token) bool {
	_, ok := t.Payload().(Data)
	return ok
}

var enRules = []rules.Rule{
	{
		Name: "<number> <grain>",
		Pattern: []rules.PatternItem{
			rules.Predicate(numeral.IsNonNegative),
			rules.Predicate(grain.IsGrain),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			v, _ := numeral.ValueOf(toks[0])
			g, _ := grain.GrainOf(toks[1])
			return model.NewToken(Data{Value: v, Grain: g}), true
		},
	},
	{
		Name: "a|an <grain>",
		Pattern: []rules.PatternItem{
			rules.Regex(`an?`),
			rules.Predicate(grain.IsGrain),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			g, _ := grain.GrainOf(toks[1])
			return model.NewToken(Data{Value: 1, Grain: g}), true
		},
	},
	{
		Name: "half a|an <grain>",
		Pattern: []rules.PatternItem{
			rules.Regex(`half an?|half`),
			rules.Predicate(grain.IsGrain),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			g, _ := grain.GrainOf(toks[1])
			return model.NewToken(Data{Value: 0.5, Grain: g}), true
		},
	},
	{
		Name: "<duration> and a half",
		Pattern: []rules.PatternItem{
			rules.Predicate(isDuration),
			rules.Regex(`and a half`),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			d := toks[0].Payload().(Data)
			return model.NewToken(Data{Value: d.Value + 0.5, Grain: d.Grain}), true
		},
	},
}
