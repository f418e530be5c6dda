package temporal

import (
	"time"

	"github.com/QtravelPL/duckling/internal/dims/grain"
	"github.com/QtravelPL/duckling/internal/model"
)

// Resolve turns a time payload into a concrete instant relative to the
// context's reference time. Dates without a year resolve forward to
// their next occurrence; impossible dates such as February 30th fail.
func (*Dim) Resolve(t model.Token, ctx model.Context) (model.Resolution, bool) {
	d, ok := t.Payload().(Data)
	if !ok {
		return model.Resolution{}, false
	}
	ref := ctx.ReferenceTime

	switch d.Form {
	case FormNow:
		return resolution(ref, grain.Second, false)

	case FormMonth:
		y := ref.Year()
		if ref.Month() > d.Month {
			y++
		}
		at := time.Date(y, d.Month, 1, 0, 0, 0, 0, ref.Location())
		return resolution(at, grain.Month, true)

	case FormWeekday:
		delta := int(d.Weekday - ref.Weekday())
		if delta < 0 {
			delta += 7
		}
		return resolution(midnight(ref).AddDate(0, 0, delta), grain.Day, false)

	case FormWeekdayShift:
		delta := int(d.Weekday - ref.Weekday())
		switch d.Offset {
		case 1: // next: strictly after today
			if delta <= 0 {
				delta += 7
			}
		case -1: // last: strictly before today
			if delta >= 0 {
				delta -= 7
			}
		}
		return resolution(midnight(ref).AddDate(0, 0, delta), grain.Day, false)

	case FormDayOffset:
		return resolution(midnight(ref).AddDate(0, 0, d.Offset), grain.Day, false)

	case FormDate:
		y := d.Year
		if y == 0 {
			y = ref.Year()
			this := time.Date(y, d.Month, d.Day, 0, 0, 0, 0, ref.Location())
			if this.Before(midnight(ref)) {
				y++
			}
		}
		at := time.Date(y, d.Month, d.Day, 0, 0, 0, 0, ref.Location())
		if at.Month() != d.Month || at.Day() != d.Day {
			// The calendar normalized the date away, so it never existed.
			return model.Resolution{}, false
		}
		return resolution(at, grain.Day, false)

	case FormClock:
		h := d.Hour
		switch d.Meridiem {
		case PM:
			if h < 12 {
				h += 12
			}
		case AM:
			if h == 12 {
				h = 0
			}
		}
		if h > 23 || d.Minute > 59 {
			return model.Resolution{}, false
		}
		at := time.Date(ref.Year(), ref.Month(), ref.Day(), h, d.Minute, 0, 0, ref.Location())
		if at.Before(ref) {
			at = at.AddDate(0, 0, 1)
		}
		g := grain.Hour
		if d.HasMinute {
			g = grain.Minute
		}
		return resolution(at, g, d.Bare)
	}
	return model.Resolution{}, false
}

func resolution(at time.Time, g grain.Grain, latent bool) (model.Resolution, bool) {
	return model.Resolution{
		Value:  Value{Value: at.Format(time.RFC3339), Grain: g.String()},
		Latent: latent,
	}, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
