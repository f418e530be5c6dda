// Package money implements amount-of-money extraction ("$5", "ten
// euros", "USD 3.50").
package money

import (
	"fmt"
	"strings"

	"github.com/QtravelPL/duckling/internal/dims/numeral"
	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Data is the money payload. Currency is an ISO 4217 code, or "cent"
// for sub-unit amounts.
type Data struct {
	Value    float64
	Currency string
}

var seal = model.NewSeal[Data]("amount-of-money")

// Seal returns the money dimension's seal.
func Seal() model.Seal { return seal }

func (d Data) Seal() model.Seal { return seal }

func (d Data) Equal(other model.Payload) bool {
	o, ok := other.(Data)
	return ok && o == d
}

func (d Data) String() string {
	return fmt.Sprintf("money{%s %s}", numeral.Format(d.Value), d.Currency)
}

// Value is the money wire value.
type Value struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

func (v Value) String() string {
	return numeral.Format(v.Value) + " " + v.Unit
}

// Dim is the money dimension.
type Dim struct{}

// New returns the money dimension.
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
	return model.Resolution{Value: Value{Value: d.Value, Unit: d.Currency}}, true
}

var symbolCurrencies = map[string]string{
	"$": "USD", "€": "EUR", "£": "GBP", "¥": "JPY",
}

var nameCurrencies = map[string]string{
	"dollar": "USD", "buck": "USD",
	"euro":  "EUR",
	"pound": "GBP", "quid": "GBP",
	"cent": "cent",
}

const codePattern = `usd|eur|gbp|jpy|pln|chf|cad|aud`

var enRules = []rules.Rule{
	{
		Name: "<currency symbol> <amount>",
		Pattern: []rules.PatternItem{
			rules.Regex(`(\$|€|£|¥)`),
			rules.Predicate(numeral.IsNonNegative),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			cur, ok := symbolCurrencies[rules.Group(toks[0], 1)]
			if !ok {
				return model.Token{}, false
			}
			v, _ := numeral.ValueOf(toks[1])
			return model.NewToken(Data{Value: v, Currency: cur}), true
		},
	},
	{
		Name: "<currency code> <amount>",
		Pattern: []rules.PatternItem{
			rules.Regex(`(` + codePattern + `)`),
			rules.Predicate(numeral.IsNonNegative),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			v, _ := numeral.ValueOf(toks[1])
			cur := strings.ToUpper(rules.Group(toks[0], 1))
			return model.NewToken(Data{Value: v, Currency: cur}), true
		},
	},
	{
		Name: "<amount> <currency code>",
		Pattern: []rules.PatternItem{
			rules.Predicate(numeral.IsNonNegative),
			rules.Regex(`(` + codePattern + `)`),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			v, _ := numeral.ValueOf(toks[0])
			cur := strings.ToUpper(rules.Group(toks[1], 1))
			return model.NewToken(Data{Value: v, Currency: cur}), true
		},
	},
	{
		Name: "<amount> <currency name>",
		Pattern: []rules.PatternItem{
			rules.Predicate(numeral.IsNonNegative),
			rules.Regex(`(dollars?|bucks?|euros?|pounds?|quid|cents?)`),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			word := strings.TrimSuffix(strings.ToLower(rules.Group(toks[1], 1)), "s")
			cur, ok := nameCurrencies[word]
			if !ok {
				return model.Token{}, false
			}
			v, _ := numeral.ValueOf(toks[0])
			return model.NewToken(Data{Value: v, Currency: cur}), true
		},
	},
}
