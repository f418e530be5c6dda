package grain

import (
	"testing"
	"time"

	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

func TestRule_Words(t *testing.T) {
	r := enRules[0]

	cases := map[string]Grain{
		"second":  Second,
		"secs":    Second,
		"minutes": Minute,
		"min":     Minute,
		"Hours":   Hour,
		"hrs":     Hour,
		"day":     Day,
		"weeks":   Week,
		"month":   Month,
		"quarter": Quarter,
		"years":   Year,
		"yr":      Year,
	}
	for word, want := range cases {
		tok, ok := r.Produce([]model.Token{model.NewToken(rules.Match{Groups: []string{word, word}})})
		if !ok {
			t.Fatalf("production declined %q", word)
		}
		if d := tok.Payload().(Data); d.Grain != want {
			t.Errorf("%q: Grain = %v, want %v", word, d.Grain, want)
		}
	}
}

func TestGrain_Duration(t *testing.T) {
	if Hour.Duration() != time.Hour {
		t.Errorf("Hour.Duration() = %v", Hour.Duration())
	}
	if Week.Duration() != 7*24*time.Hour {
		t.Errorf("Week.Duration() = %v", Week.Duration())
	}
	if Year.Duration() != 365*24*time.Hour {
		t.Errorf("Year.Duration() = %v", Year.Duration())
	}
}

func TestGrain_String(t *testing.T) {
	if Day.String() != "day" {
		t.Errorf("Day.String() = %q", Day.String())
	}
	if Grain(99).String() != "unknown" {
		t.Errorf("out of range grain should render as unknown")
	}
}

func TestResolve(t *testing.T) {
	dim := New()

	res, ok := dim.Resolve(model.NewToken(Data{Grain: Week}), model.Context{})
	if !ok {
		t.Fatal("resolve failed")
	}
	if res.Value.String() != "week" {
		t.Errorf("value = %q, want week", res.Value.String())
	}
}
