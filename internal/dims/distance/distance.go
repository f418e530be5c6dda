// Package distance implements distance extraction ("5 miles", "3.2 km").
package distance

import (
	"fmt"
	"strings"

	"github.com/QtravelPL/duckling/internal/dims/numeral"
	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Data is the distance payload with a canonical unit name.
type Data struct {
	Value float64
	Unit  string
}

var seal = model.NewSeal[Data]("distance")

// Seal returns the distance dimension's seal.
func Seal() model.Seal { return seal }

func (d Data) Seal() model.Seal { return seal }

func (d Data) Equal(other model.Payload) bool {
	o, ok := other.(Data)
	return ok && o == d
}

func (d Data) String() string {
	return fmt.Sprintf("distance{%s %s}", numeral.Format(d.Value), d.Unit)
}

// Value is the distance wire value.
type Value struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

func (v Value) String() string {
	return numeral.Format(v.Value) + " " + v.Unit
}

// Dim is the distance dimension.
type Dim struct{}

// New returns the distance dimension.
func New() *Dim { return &Dim{} }

func (*Dim) Seal() model.Seal { return seal }

func (*Dim) Dependencies() []model.Seal {
	return []model.Seal{numeral.Seal()}
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
	return model.Resolution{Value: Value{Value: d.Value, Unit: d.Unit}}, true
}

// Longer alternatives first, and no bare "in": as a preposition it is
// far too common to read as inches.
const unitPattern = `miles?|mi|kilometers?|kilometres?|km|centimeters?|centimetres?|cm|meters?|metres?|m|feet|foot|ft|inches|inch|yards?|yds?`

var canonicalUnits = map[string]string{
	"mile": "mile", "mi": "mile",
	"kilometer": "kilometre", "kilometre": "kilometre", "km": "kilometre",
	"centimeter": "centimetre", "centimetre": "centimetre", "cm": "centimetre",
	"meter": "metre", "metre": "metre", "m": "metre",
	"feet": "foot", "foot": "foot", "ft": "foot",
	"inches": "inch", "inch": "inch",
	"yard": "yard", "yd": "yard",
}

var enRules = []rules.Rule{
	{
		Name: "<amount> <unit-of-distance>",
		Pattern: []rules.PatternItem{
			rules.Predicate(numeral.IsNonNegative),
			rules.Regex(`(` + unitPattern + `)`),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			word := strings.ToLower(rules.Group(toks[1], 1))
			unit, ok := canonicalUnits[word]
			if !ok {
				unit, ok = canonicalUnits[strings.TrimSuffix(word, "s")]
			}
			if !ok {
				return model.Token{}, false
			}
			v, _ := numeral.ValueOf(toks[0])
			return model.NewToken(Data{Value: v, Unit: unit}), true
		},
	},
}
