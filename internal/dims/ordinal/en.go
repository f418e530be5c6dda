package ordinal

import (
	"strconv"
	"strings"

	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Longer alternatives first so "fourth" cannot shadow "fourteenth".
const unitOrdinals = `nineteenth|eighteenth|seventeenth|sixteenth|fifteenth|fourteenth|thirteenth|twelfth|eleventh|tenth|ninth|eighth|seventh|sixth|fifth|fourth|third|second|first`

var unitOrdinalValues = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
	"eleventh": 11, "twelfth": 12, "thirteenth": 13, "fourteenth": 14,
	"fifteenth": 15, "sixteenth": 16, "seventeenth": 17,
	"eighteenth": 18, "nineteenth": 19,
}

var tensOrdinalValues = map[string]int{
	"twentieth": 20, "thirtieth": 30, "fortieth": 40, "fiftieth": 50,
	"sixtieth": 60, "seventieth": 70, "eightieth": 80, "ninetieth": 90,
}

var tensCardinalValues = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var enRules = []rules.Rule{
	{
		Name:    "ordinal (first..nineteenth)",
		Pattern: []rules.PatternItem{rules.Regex(`(` + unitOrdinals + `)`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			v, ok := unitOrdinalValues[strings.ToLower(rules.Group(toks[0], 1))]
			if !ok {
				return model.Token{}, false
			}
			return model.NewToken(Data{Value: v}), true
		},
	},
	{
		Name:    "ordinal (twentieth..ninetieth)",
		Pattern: []rules.PatternItem{rules.Regex(`(twentieth|thirtieth|fortieth|fiftieth|sixtieth|seventieth|eightieth|ninetieth)`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			v, ok := tensOrdinalValues[strings.ToLower(rules.Group(toks[0], 1))]
			if !ok {
				return model.Token{}, false
			}
			return model.NewToken(Data{Value: v}), true
		},
	},
	{
		Name: "ordinal 21st..99th",
		Pattern: []rules.PatternItem{
			rules.Regex(`(twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety)[\s-](first|second|third|fourth|fifth|sixth|seventh|eighth|ninth)`),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			tens, ok1 := tensCardinalValues[strings.ToLower(rules.Group(toks[0], 1))]
			unit, ok2 := unitOrdinalValues[strings.ToLower(rules.Group(toks[0], 2))]
			if !ok1 || !ok2 {
				return model.Token{}, false
			}
			return model.NewToken(Data{Value: tens + unit}), true
		},
	},
	{
		Name:    "ordinal (digits)",
		Pattern: []rules.PatternItem{rules.Regex(`0*(\d+) ?(st|nd|rd|th)`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			v, err := strconv.Atoi(rules.Group(toks[0], 1))
			if err != nil {
				return model.Token{}, false
			}
			return model.NewToken(Data{Value: v}), true
		},
	},
}
