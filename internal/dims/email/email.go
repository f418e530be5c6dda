// Package email implements email address extraction.
package email

import (
	"strings"

	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Data is the email payload.
type Data struct {
	Address string
}

var seal = model.NewSeal[Data]("email")

// Seal returns the email dimension's seal.
func Seal() model.Seal { return seal }

func (d Data) Seal() model.Seal { return seal }

func (d Data) Equal(other model.Payload) bool {
	o, ok := other.(Data)
	return ok && o == d
}

func (d Data) String() string { return "email{" + d.Address + "}" }

// Value is the email wire value.
type Value struct {
	Value string `json:"value"`
}

func (v Value) String() string { return v.Value }

// Dim is the email dimension.
type Dim struct{}

// New returns the email dimension.
func New() *Dim { return &Dim{} }

func (*Dim) Seal() model.Seal { return seal }

func (*Dim) Dependencies() []model.Seal { return nil }

// Rules returns the email grammar, identical for every locale.
func (*Dim) Rules(model.Locale) []rules.Rule { return emailRules }

func (*Dim) Resolve(t model.Token, _ model.Context) (model.Resolution, bool) {
	d, ok := t.Payload().(Data)
	if !ok {
		return model.Resolution{}, false
	}
	return model.Resolution{Value: Value{Value: d.Address}}, true
}

var emailRules = []rules.Rule{
	{
		Name: "email address",
		Pattern: []rules.PatternItem{
			rules.Regex(`([a-z0-9][a-z0-9._%+-]*@(?:[a-z0-9-]+\.)+[a-z]{2,})`),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			// Addresses are case-insensitive in practice; normalize so
			// equal spellings dedup.
			addr := strings.ToLower(rules.Group(toks[0], 1))
			if addr == "" {
				return model.Token{}, false
			}
			return model.NewToken(Data{Address: addr}), true
		},
	},
}
