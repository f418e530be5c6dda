// Package temporal implements time expression extraction: month and
// weekday names, calendar dates, relative days and times of day. Values
// resolve against the context's reference time.
package temporal

import (
	"fmt"
	"time"

	"github.com/QtravelPL/duckling/internal/dims/numeral"
	"github.com/QtravelPL/duckling/internal/dims/ordinal"
	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Form distinguishes the shapes a time payload can take.
type Form int

const (
	FormNow          Form = iota // The reference instant
	FormMonth                    // Bare month of year, latent
	FormWeekday                  // Bare day of week
	FormDate                     // Calendar date, year optional
	FormDayOffset                // today / tomorrow / yesterday
	FormWeekdayShift             // this / next / last weekday
	FormClock                    // Time of day
)

// Meridiem is the am/pm marker of a clock reading.
type Meridiem int

const (
	NoMeridiem Meridiem = iota
	AM
	PM
)

// Data is the time payload. Only the fields of the active Form carry
// meaning; the rest stay zero so payload equality works per form.
type Data struct {
	Form      Form
	Month     time.Month
	Day       int
	Year      int // 0 = unspecified
	Weekday   time.Weekday
	Offset    int // Days for FormDayOffset; -1/0/+1 for FormWeekdayShift
	Hour      int
	Minute    int
	HasMinute bool
	Meridiem  Meridiem
	Bare      bool // Clock guessed from a lone integer, resolves latent
}

var seal = model.NewSeal[Data]("time")

// Seal returns the time dimension's seal.
func Seal() model.Seal { return seal }

func (d Data) Seal() model.Seal { return seal }

func (d Data) Equal(other model.Payload) bool {
	o, ok := other.(Data)
	return ok && o == d
}

func (d Data) String() string {
	return fmt.Sprintf("time{f=%d %d-%d-%d wd=%d off=%d %02d:%02d hm=%t mer=%d bare=%t}",
		d.Form, d.Year, d.Month, d.Day, d.Weekday, d.Offset,
		d.Hour, d.Minute, d.HasMinute, d.Meridiem, d.Bare)
}

// Value is the time wire value: an RFC 3339 instant plus the grain the
// expression pinned down.
type Value struct {
	Value string `json:"value"`
	Grain string `json:"grain"`
}

func (v Value) String() string { return v.Value + " " + v.Grain }

// Dim is the time dimension.
type Dim struct{}

// New returns the time dimension.
func New() *Dim { return &Dim{} }

func (*Dim) Seal() model.Seal { return seal }

func (*Dim) Dependencies() []model.Seal {
	return []model.Seal{numeral.Seal(), ordinal.Seal()}
}

func (*Dim) Rules(loc model.Locale) []rules.Rule {
	if loc.Lang != model.LangEN {
		return nil
	}
	return enRules
}

func isMonthToken(t model.Token) bool {
	d, ok := t.Payload().(Data)
	return ok && d.Form == FormMonth
}

func isWeekdayToken(t model.Token) bool {
	d, ok := t.Payload().(Data)
	return ok && d.Form == FormWeekday
}

func isClockToken(t model.Token) bool {
	d, ok := t.Payload().(Data)
	return ok && d.Form == FormClock
}

func isDateWithoutYear(t model.Token) bool {
	d, ok := t.Payload().(Data)
	return ok && d.Form == FormDate && d.Year == 0
}

// isDayOfMonth accepts ordinals and integer numerals from 1 to 31.
func isDayOfMonth(t model.Token) bool {
	if v, ok := ordinal.ValueOf(t); ok {
		return v >= 1 && v <= 31
	}
	return numeral.IsIntegerBetween(1, 31)(t)
}

func dayOfMonth(t model.Token) int {
	if v, ok := ordinal.ValueOf(t); ok {
		return v
	}
	if v, ok := numeral.ValueOf(t); ok {
		return int(v)
	}
	return 0
}
