// Package phone implements phone number extraction.
package phone

import (
	"regexp"
	"strings"

	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Data is the phone payload: the number reduced to digits (with the
// international prefix when present) plus an optional extension.
type Data struct {
	Number string
	Ext    string
}

var seal = model.NewSeal[Data]("phone-number")

// Seal returns the phone dimension's seal.
func Seal() model.Seal { return seal }

func (d Data) Seal() model.Seal { return seal }

func (d Data) Equal(other model.Payload) bool {
	o, ok := other.(Data)
	return ok && o == d
}

func (d Data) String() string { return "phone{" + d.Number + "x" + d.Ext + "}" }

// Value is the phone wire value.
type Value struct {
	Value string `json:"value"`
	Ext   string `json:"ext,omitempty"`
}

func (v Value) String() string {
	if v.Ext == "" {
		return v.Value
	}
	return v.Value + " ext " + v.Ext
}

// Dim is the phone dimension.
type Dim struct{}

// New returns the phone dimension.
func New() *Dim { return &Dim{} }

func (*Dim) Seal() model.Seal { return seal }

func (*Dim) Dependencies() []model.Seal { return nil }

// Rules returns the phone grammar. Phone shapes are locale-independent
// here, so every locale gets the same single rule.
func (*Dim) Rules(model.Locale) []rules.Rule { return phoneRules }

func (*Dim) Resolve(t model.Token, _ model.Context) (model.Resolution, bool) {
	d, ok := t.Payload().(Data)
	if !ok {
		return model.Resolution{}, false
	}
	return model.Resolution{Value: Value{Value: d.Number, Ext: d.Ext}}, true
}

// isoDate rejects the one numeric shape that reads as a calendar date,
// which the pattern below would otherwise swallow whole.
var isoDate = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

var phoneRules = []rules.Rule{
	{
		Name: "phone number",
		Pattern: []rules.PatternItem{
			rules.Regex(`((?:\(?\+\d{1,3}\)?[\s.-]?)?(?:\(\d{1,4}\)[\s.-]?)?\d{2,4}(?:[\s.-]?\d{2,4}){1,4})(?:\s*(?:ext|x|extension)\.?\s*(\d{1,5}))?`),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			raw := rules.Group(toks[0], 1)
			if isoDate.MatchString(raw) {
				return model.Token{}, false
			}
			var b strings.Builder
			for _, r := range raw {
				if r == '+' || (r >= '0' && r <= '9') {
					b.WriteRune(r)
				}
			}
			number := b.String()
			digits := len(number)
			if strings.HasPrefix(number, "+") {
				digits--
			}
			if digits < 7 {
				return model.Token{}, false
			}
			return model.NewToken(Data{Number: number, Ext: rules.Group(toks[0], 2)}), true
		},
	},
}
