// Package grain implements calendar granularity extraction ("hour",
// "weeks") and the Grain type other time-like dimensions share.
package grain

import (
	"strings"
	"time"

	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Grain is a calendar granularity, ordered fine to coarse.
type Grain int

const (
	Second Grain = iota
	Minute
	Hour
	Day
	Week
	Month
	Quarter
	Year
)

var grainNames = [...]string{
	"second", "minute", "hour", "day", "week", "month", "quarter", "year",
}

func (g Grain) String() string {
	if g < Second || g > Year {
		return "unknown"
	}
	return grainNames[g]
}

// Duration returns one unit of the grain as a time.Duration. Months,
// quarters and years use the usual civil approximations of 30, 91 and
// 365 days.
func (g Grain) Duration() time.Duration {
	switch g {
	case Second:
		return time.Second
	case Minute:
		return time.Minute
	case Hour:
		return time.Hour
	case Day:
		return 24 * time.Hour
	case Week:
		return 7 * 24 * time.Hour
	case Month:
		return 30 * 24 * time.Hour
	case Quarter:
		return 91 * 24 * time.Hour
	case Year:
		return 365 * 24 * time.Hour
	}
	return 0
}

// Data is the grain payload.
type Data struct {
	Grain Grain
}

var seal = model.NewSeal[Data]("time-grain")

// Seal returns the grain dimension's seal.
func Seal() model.Seal { return seal }

func (d Data) Seal() model.Seal { return seal }

func (d Data) Equal(other model.Payload) bool {
	o, ok := other.(Data)
	return ok && o == d
}

func (d Data) String() string { return "grain{" + d.Grain.String() + "}" }

// Value is the grain wire value.
type Value struct {
	Value string `json:"value"`
}

func (v Value) String() string { return v.Value }

// Dim is the grain dimension.
type Dim struct{}

// New returns the grain dimension.
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
	return model.Resolution{Value: Value{Value: d.Grain.String()}}, true
}

// GrainOf extracts the granularity of a grain token.
func GrainOf(t model.Token) (Grain, bool) {
	d, ok := t.Payload().(Data)
	if !ok {
		return 0, false
	}
	return d.Grain, true
}

// IsGrain accepts any grain token.
func IsGrain(t model.Token) bool {
	_, ok := t.Payload().(Data)
	return ok
}

var grainWords = map[string]Grain{
	"second": Second, "sec": Second,
	"minute": Minute, "min": Minute,
	"hour": Hour, "hr": Hour,
	"day":  Day,
	"week": Week, "wk": Week,
	"month":   Month,
	"quarter": Quarter, "qtr": Quarter,
	"year": Year, "yr": Year,
}

var enRules = []rules.Rule{
	{
		Name: "time grain",
		Pattern: []rules.PatternItem{
			rules.Regex(`(seconds?|secs?|minutes?|mins?|hours?|hrs?|days?|weeks?|wks?|months?|quarters?|qtrs?|years?|yrs?)`),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			word := strings.ToLower(rules.Group(toks[0], 1))
			word = strings.TrimSuffix(word, "s")
			g, ok := grainWords[word]
			if !ok {
				return model.Token{}, false
			}
			return model.NewToken(Data{Grain: g}), true
		},
	},
}
