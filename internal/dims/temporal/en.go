package temporal

import (
	"strconv"
	"strings"
	"time"

	"github.com/QtravelPL/duckling/internal/dims/numeral"
	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Full names precede abbreviations: the matcher is leftmost-first.
const monthPattern = `january|february|march|april|may|june|july|august|september|october|november|december|jan\.?|feb\.?|mar\.?|apr\.?|jun\.?|jul\.?|aug\.?|sept\.?|sep\.?|oct\.?|nov\.?|dec\.?`

var monthValues = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

const weekdayPattern = `monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon\.?|tues?\.?|wed\.?|thurs?\.?|thu\.?|fri\.?|sat\.?|sun\.?`

var weekdayValues = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

func normalizeWord(s string) string {
	return strings.TrimSuffix(strings.ToLower(s), ".")
}

var enRules = []rules.Rule{
	{
		Name:    "month (name)",
		Pattern: []rules.PatternItem{rules.Regex(`(` + monthPattern + `)`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			m, ok := monthValues[normalizeWord(rules.Group(toks[0], 1))]
			if !ok {
				return model.Token{}, false
			}
			return model.NewToken(Data{Form: FormMonth, Month: m}), true
		},
	},
	{
		Name:    "day of week",
		Pattern: []rules.PatternItem{rules.Regex(`(` + weekdayPattern + `)`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			wd, ok := weekdayValues[normalizeWord(rules.Group(toks[0], 1))]
			if !ok {
				return model.Token{}, false
			}
			return model.NewToken(Data{Form: FormWeekday, Weekday: wd}), true
		},
	},
	{
		Name:    "now",
		Pattern: []rules.PatternItem{rules.Regex(`(?:right )?now`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			return model.NewToken(Data{Form: FormNow}), true
		},
	},
	{
		Name:    "today/tomorrow/yesterday",
		Pattern: []rules.PatternItem{rules.Regex(`(today|tomorrow|tmrw|yesterday)`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			var off int
			switch normalizeWord(rules.Group(toks[0], 1)) {
			case "today":
				off = 0
			case "tomorrow", "tmrw":
				off = 1
			case "yesterday":
				off = -1
			default:
				return model.Token{}, false
			}
			return model.NewToken(Data{Form: FormDayOffset, Offset: off}), true
		},
	},
	{
		Name: "this|next|last <day-of-week>",
		Pattern: []rules.PatternItem{
			rules.Regex(`(this|next|last)`),
			rules.Predicate(isWeekdayToken),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			var shift int
			switch normalizeWord(rules.Group(toks[0], 1)) {
			case "this":
				shift = 0
			case "next":
				shift = 1
			case "last":
				shift = -1
			default:
				return model.Token{}, false
			}
			wd := toks[1].Payload().(Data).Weekday
			return model.NewToken(Data{Form: FormWeekdayShift, Weekday: wd, Offset: shift}), true
		},
	},
	{
		Name: "<month> <day-of-month>",
		Pattern: []rules.PatternItem{
			rules.Predicate(isMonthToken),
			rules.Predicate(isDayOfMonth),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			m := toks[0].Payload().(Data).Month
			return model.NewToken(Data{Form: FormDate, Month: m, Day: dayOfMonth(toks[1])}), true
		},
	},
	{
		Name: "<day-of-month> of <month>",
		Pattern: []rules.PatternItem{
			rules.Predicate(isDayOfMonth),
			rules.Regex(`of`),
			rules.Predicate(isMonthToken),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			m := toks[2].Payload().(Data).Month
			return model.NewToken(Data{Form: FormDate, Month: m, Day: dayOfMonth(toks[0])}), true
		},
	},
	{
		Name: "<date> <year>",
		Pattern: []rules.PatternItem{
			rules.Predicate(isDateWithoutYear),
			rules.Regex(`,? ?(\d{4})`),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			d := toks[0].Payload().(Data)
			y, err := strconv.Atoi(rules.Group(toks[1], 1))
			if err != nil || y < 1000 {
				return model.Token{}, false
			}
			d.Year = y
			return model.NewToken(d), true
		},
	},
	{
		Name:    "date (ISO yyyy-mm-dd)",
		Pattern: []rules.PatternItem{rules.Regex(`(\d{4})-(\d{1,2})-(\d{1,2})`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			y, _ := strconv.Atoi(rules.Group(toks[0], 1))
			m, _ := strconv.Atoi(rules.Group(toks[0], 2))
			day, _ := strconv.Atoi(rules.Group(toks[0], 3))
			if m < 1 || m > 12 || day < 1 || day > 31 {
				return model.Token{}, false
			}
			return model.NewToken(Data{Form: FormDate, Year: y, Month: time.Month(m), Day: day}), true
		},
	},
	{
		Name:    "date (mm/dd)",
		Pattern: []rules.PatternItem{rules.Regex(`(\d{1,2})/(\d{1,2})(?:/(\d{4}))?`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			m, _ := strconv.Atoi(rules.Group(toks[0], 1))
			day, _ := strconv.Atoi(rules.Group(toks[0], 2))
			if m < 1 || m > 12 || day < 1 || day > 31 {
				return model.Token{}, false
			}
			d := Data{Form: FormDate, Month: time.Month(m), Day: day}
			if ys := rules.Group(toks[0], 3); ys != "" {
				y, err := strconv.Atoi(ys)
				if err != nil {
					return model.Token{}, false
				}
				d.Year = y
			}
			return model.NewToken(d), true
		},
	},
	{
		Name:    "time-of-day hh:mm",
		Pattern: []rules.PatternItem{rules.Regex(`(\d{1,2}):(\d{2})(?: ?(am|pm|a\.m\.|p\.m\.))?`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			h, _ := strconv.Atoi(rules.Group(toks[0], 1))
			m, _ := strconv.Atoi(rules.Group(toks[0], 2))
			if h > 23 || m > 59 {
				return model.Token{}, false
			}
			return model.NewToken(Data{
				Form: FormClock, Hour: h, Minute: m, HasMinute: true,
				Meridiem: meridiemOf(rules.Group(toks[0], 3)),
			}), true
		},
	},
	{
		Name:    "time-of-day (am/pm)",
		Pattern: []rules.PatternItem{rules.Regex(`(\d{1,2}) ?(am|pm|a\.m\.|p\.m\.)`)},
		Produce: func(toks []model.Token) (model.Token, bool) {
			h, _ := strconv.Atoi(rules.Group(toks[0], 1))
			mer := meridiemOf(rules.Group(toks[0], 2))
			if h < 1 || h > 12 || mer == NoMeridiem {
				return model.Token{}, false
			}
			return model.NewToken(Data{Form: FormClock, Hour: h, Meridiem: mer}), true
		},
	},
	{
		Name: "at <time-of-day>",
		Pattern: []rules.PatternItem{
			rules.Regex(`at`),
			rules.Predicate(isClockToken),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			d := toks[1].Payload().(Data)
			d.Bare = false
			return model.NewToken(d), true
		},
	},
	{
		Name:    "time-of-day (latent)",
		Pattern: []rules.PatternItem{rules.Predicate(numeral.IsIntegerBetween(0, 23))},
		Produce: func(toks []model.Token) (model.Token, bool) {
			v, ok := numeral.ValueOf(toks[0])
			if !ok {
				return model.Token{}, false
			}
			return model.NewToken(Data{Form: FormClock, Hour: int(v), Bare: true}), true
		},
	},
}

func meridiemOf(s string) Meridiem {
	switch normalizeWord(strings.ReplaceAll(s, ".", "")) {
	case "am":
		return AM
	case "pm":
		return PM
	}
	return NoMeridiem
}
