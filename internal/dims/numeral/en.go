package numeral

import (
	"math"
	"strconv"
	"strings"

	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Longer alternatives first: the matcher is leftmost-first, so "four"
// must not shadow "fourteen".
const unitWords = `nineteen|eighteen|seventeen|sixteen|fifteen|fourteen|thirteen|twelve|eleven|ten|nine|eight|seven|six|five|four|three|two|one|zero`

var unitValues = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
	"eighteen": 18, "nineteen": 19,
}

var tensValues = map[string]float64{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var scaleValues = map[string]struct {
	value float64
	grain int
}{
	"hundred":  {100, 2},
	"thousand": {1e3, 3},
	"million":  {1e6, 6},
	"billion":  {1e9, 9},
}

var enRules = []rules.Rule{
	{
		Name:    "integer (numeric)",
		Pattern: []rules.PatternItem{rules.Regex(`(\d{1,18})`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			v, err := strconv.ParseFloat(rules.Group(toks[0], 1), 64)
			if err != nil {
				return model.Token{}, false
			}
			return model.NewToken(Data{Value: v}), true
		},
	},
	{
		Name:    "integer with thousands separator",
		Pattern: []rules.PatternItem{rules.Regex(`(\d{1,3}(?:,\d{3})+)`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			raw := strings.ReplaceAll(rules.Group(toks[0], 1), ",", "")
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return model.Token{}, false
			}
			return model.NewToken(Data{Value: v}), true
		},
	},
	{
		Name:    "decimal number",
		Pattern: []rules.PatternItem{rules.Regex(`(\d*\.\d+)`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			v, err := strconv.ParseFloat(rules.Group(toks[0], 1), 64)
			if err != nil {
				return model.Token{}, false
			}
			return model.NewToken(Data{Value: v}), true
		},
	},
	{
		Name:    "integer (0..19)",
		Pattern: []rules.PatternItem{rules.Regex(`(` + unitWords + `)`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			v, ok := unitValues[strings.ToLower(rules.Group(toks[0], 1))]
			if !ok {
				return model.Token{}, false
			}
			return model.NewToken(Data{Value: v}), true
		},
	},
	{
		Name:    "integer (20..90)",
		Pattern: []rules.PatternItem{rules.Regex(`(twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety)`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			v, ok := tensValues[strings.ToLower(rules.Group(toks[0], 1))]
			if !ok {
				return model.Token{}, false
			}
			return model.NewToken(Data{Value: v, Grain: 1}), true
		},
	},
	{
		Name: "integer 21..99",
		Pattern: []rules.PatternItem{
			rules.Predicate(isTensWord),
			rules.Predicate(isUnitDigit),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			tens, _ := ValueOf(toks[0])
			unit, _ := ValueOf(toks[1])
			return model.NewToken(Data{Value: tens + unit}), true
		},
	},
	{
		Name:    "powers of ten",
		Pattern: []rules.PatternItem{rules.Regex(`(hundred|thousand|million|billion)`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			s, ok := scaleValues[strings.ToLower(rules.Group(toks[0], 1))]
			if !ok {
				return model.Token{}, false
			}
			return model.NewToken(Data{Value: s.value, Grain: s.grain, Multipliable: true}), true
		},
	},
	{
		Name: "<number> hundred/thousand/million/billion",
		Pattern: []rules.PatternItem{
			rules.Predicate(isPlainPositive),
			rules.Predicate(isScaleWord),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			a := toks[0].Payload().(Data)
			b := toks[1].Payload().(Data)
			return model.NewToken(Data{Value: a.Value * b.Value, Grain: b.Grain}), true
		},
	},
	{
		Name: "composite number (sum)",
		Pattern: []rules.PatternItem{
			rules.Predicate(hasBlockRoom),
			rules.Predicate(isNaturalNonScale),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			a := toks[0].Payload().(Data)
			b := toks[1].Payload().(Data)
			if b.Value <= 0 || b.Value >= math.Pow10(a.Grain) {
				return model.Token{}, false
			}
			return model.NewToken(Data{Value: a.Value + b.Value, Grain: b.Grain}), true
		},
	},
	{
		Name: "negative number",
		Pattern: []rules.PatternItem{
			rules.Regex(`-|minus|negative`),
			rules.Predicate(isPlainPositive),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			b := toks[1].Payload().(Data)
			return model.NewToken(Data{Value: -b.Value}), true
		},
	},
}

// isTensWord accepts the word forms twenty..ninety, marked by grain 1.
func isTensWord(t model.Token) bool {
	d, ok := t.Payload().(Data)
	return ok && d.Grain == 1 && !d.Multipliable
}

// isUnitDigit accepts integers 1..9 that are not scale words.
func isUnitDigit(t model.Token) bool {
	d, ok := t.Payload().(Data)
	return ok && !d.Multipliable && d.Grain == 0 && isInt(d.Value) && d.Value >= 1 && d.Value <= 9
}

// isScaleWord accepts bare multipliers ("hundred", "million").
func isScaleWord(t model.Token) bool {
	d, ok := t.Payload().(Data)
	return ok && d.Multipliable
}

// isPlainPositive accepts positive numerals that are not themselves
// scale words.
func isPlainPositive(t model.Token) bool {
	d, ok := t.Payload().(Data)
	return ok && !d.Multipliable && d.Value > 0
}

// hasBlockRoom accepts composed numbers with an open lower block, e.g.
// "two hundred" can still absorb anything below 100.
func hasBlockRoom(t model.Token) bool {
	d, ok := t.Payload().(Data)
	return ok && !d.Multipliable && d.Grain > 1
}

// isNaturalNonScale accepts natural numbers that are not scale words.
func isNaturalNonScale(t model.Token) bool {
	d, ok := t.Payload().(Data)
	return ok && !d.Multipliable && isInt(d.Value) && d.Value >= 0
}
