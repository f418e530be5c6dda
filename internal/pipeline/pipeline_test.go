package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/QtravelPL/duckling/internal/dims/numeral"
	"github.com/QtravelPL/duckling/internal/dims/temporal"
	"github.com/QtravelPL/duckling/internal/engine"
	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

var refTime = time.Date(2013, time.February, 12, 4, 30, 0, 0, time.UTC)

func newPipeline(t *testing.T, cfg *model.Config) *Pipeline {
	t.Helper()
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	return p
}

func parseText(t *testing.T, p *Pipeline, req Request) *Result {
	t.Helper()
	if req.Context.ReferenceTime.IsZero() {
		req.Context.ReferenceTime = refTime
	}
	res, err := p.Parse(context.Background(), req)
	if err != nil {
		t.Fatalf("parse %q: %v", req.Text, err)
	}
	return res
}

func entityValue(t *testing.T, e model.Entity) string {
	t.Helper()
	r := NewRenderer(false)
	data, err := r.JSON([]model.Entity{e})
	if err != nil {
		t.Fatalf("marshal entity: %v", err)
	}
	return string(data)
}

func TestParse_ComposedNumeral(t *testing.T) {
	p := newPipeline(t, nil)
	res := parseText(t, p, Request{Text: "two hundred"})

	if len(res.Entities) != 1 {
		t.Fatalf("got %d entities, want 1: %v", len(res.Entities), res.Entities)
	}
	e := res.Entities[0]
	if e.Dim != "numeral" || e.Body != "two hundred" || e.Start != 0 || e.End != 11 {
		t.Errorf("entity = %+v", e)
	}
	if e.Latent {
		t.Error("a composed numeral is not latent")
	}
	if got := entityValue(t, e); got != `[{"dim":"numeral","body":"two hundred","value":{"value":200},"start":0,"end":11,"latent":false}]` {
		t.Errorf("wire = %s", got)
	}
}

func TestParse_BareNumeral(t *testing.T) {
	// "3" is also a plausible bare hour, but the confident numeral
	// reading shadows the latent clock one.
	p := newPipeline(t, nil)
	res := parseText(t, p, Request{Text: "3"})

	if len(res.Entities) != 1 {
		t.Fatalf("got %d entities, want 1: %v", len(res.Entities), res.Entities)
	}
	if e := res.Entities[0]; e.Dim != "numeral" || e.Latent {
		t.Errorf("entity = %+v", e)
	}
}

func TestParse_LatentMonthSurvivesAlone(t *testing.T) {
	p := newPipeline(t, nil)
	res := parseText(t, p, Request{Text: "March"})

	if len(res.Entities) != 1 {
		t.Fatalf("got %d entities, want 1: %v", len(res.Entities), res.Entities)
	}
	e := res.Entities[0]
	if e.Dim != "time" || !e.Latent || e.Body != "March" {
		t.Errorf("entity = %+v", e)
	}
	if got := entityValue(t, e); !strings.Contains(got, `"2013-03-01T00:00:00Z"`) {
		t.Errorf("wire = %s", got)
	}
}

func TestParse_MixedSentence(t *testing.T) {
	p := newPipeline(t, nil)
	res := parseText(t, p, Request{Text: "see you on March 3 at 5pm for a 3 miles run"})

	type want struct {
		dim  string
		body string
	}
	wants := []want{
		{"time", "March 3"},
		{"numeral", "3"},
		{"time", "at 5pm"},
		{"numeral", "3"},
		{"distance", "3 miles"},
	}
	if len(res.Entities) != len(wants) {
		all, _ := NewRenderer(true).JSON(res.Entities)
		t.Fatalf("got %d entities, want %d:\n%s", len(res.Entities), len(wants), all)
	}
	for i, w := range wants {
		e := res.Entities[i]
		if e.Dim != w.dim || e.Body != w.body {
			t.Errorf("entity %d = %s %q, want %s %q", i, e.Dim, e.Body, w.dim, w.body)
		}
	}

	if got := entityValue(t, res.Entities[0]); !strings.Contains(got, `"value":"2013-03-03T00:00:00Z","grain":"day"`) {
		t.Errorf("March 3 wire = %s", got)
	}
	if got := entityValue(t, res.Entities[2]); !strings.Contains(got, `"value":"2013-02-12T17:00:00Z","grain":"hour"`) {
		t.Errorf("at 5pm wire = %s", got)
	}
}

func TestParse_TargetsFilter(t *testing.T) {
	p := newPipeline(t, nil)
	res := parseText(t, p, Request{
		Text:    "see you on March 3 at 5pm",
		Options: model.Options{Targets: []model.Seal{temporal.Seal()}},
	})

	if len(res.Entities) != 2 {
		t.Fatalf("got %d entities, want 2", len(res.Entities))
	}
	for _, e := range res.Entities {
		if e.Dim != "time" {
			t.Errorf("target filter leaked %s", e.Dim)
		}
	}
}

func TestParse_ConfiguredDims(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Engine.Dims = []string{"distance"}

	p := newPipeline(t, cfg)
	res := parseText(t, p, Request{Text: "run 3 miles tomorrow"})

	if len(res.Entities) != 1 || res.Entities[0].Dim != "distance" {
		t.Fatalf("entities = %v", res.Entities)
	}
}

func TestParse_UnknownConfiguredDim(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Engine.Dims = []string{"sentiment"}

	if _, err := New(cfg); err == nil {
		t.Fatal("expected an error for an unknown dimension name")
	}
}

func TestParse_BodySlicesResultText(t *testing.T) {
	p := newPipeline(t, nil)
	res := parseText(t, p, Request{Text: "ten dollars and 3 miles"})

	if len(res.Entities) == 0 {
		t.Fatal("expected entities")
	}
	for _, e := range res.Entities {
		if e.Body != res.Text[e.Start:e.End] {
			t.Errorf("body %q does not match text[%d:%d] %q", e.Body, e.Start, e.End, res.Text[e.Start:e.End])
		}
	}
}

func TestParse_HTML(t *testing.T) {
	p := newPipeline(t, nil)
	res := parseText(t, p, Request{
		Text: "<p>ten <b>dollars</b></p><script>var when = 'March';</script>",
		HTML: true,
	})

	var money *model.Entity
	for i := range res.Entities {
		e := &res.Entities[i]
		if e.Dim == "time" {
			t.Errorf("script content leaked into the parse: %+v", e)
		}
		if e.Dim == "amount-of-money" {
			money = e
		}
	}
	if money == nil {
		t.Fatalf("no money entity: %v", res.Entities)
	}
	if money.Body != "ten dollars" {
		t.Errorf("body = %q", money.Body)
	}
	if money.Body != res.Text[money.Start:money.End] {
		t.Error("offsets must refer to the stripped text")
	}
}

func TestParse_EmptyText(t *testing.T) {
	p := newPipeline(t, nil)
	res := parseText(t, p, Request{Text: ""})

	if len(res.Entities) != 0 {
		t.Errorf("entities = %v", res.Entities)
	}
	data, err := NewRenderer(false).JSON(res.Entities)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("empty parse must render as [], got %s", data)
	}
}

func TestParse_CancelledContext(t *testing.T) {
	p := newPipeline(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Parse(ctx, Request{Text: "tomorrow"}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestParse_CacheRoundTrip(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()

	p := newPipeline(t, cfg)
	req := Request{
		Text:    "see you on March 3 at 5pm",
		Context: model.Context{ReferenceTime: refTime},
	}

	first := parseText(t, p, req)
	if first.Cached {
		t.Fatal("first parse must be live")
	}
	second := parseText(t, p, req)
	if !second.Cached {
		t.Fatal("second parse must come from the cache")
	}
	if second.Chart != nil {
		t.Error("cached results carry no chart")
	}

	r := NewRenderer(false)
	a, _ := r.JSON(first.Entities)
	b, _ := r.JSON(second.Entities)
	if !bytes.Equal(a, b) {
		t.Errorf("cached wire output differs:\nlive:   %s\ncached: %s", a, b)
	}

	// Tracing needs the chart, so it bypasses the cache.
	traced := parseText(t, p, Request{Text: req.Text, Context: req.Context, Trace: true})
	if traced.Cached || traced.Chart == nil {
		t.Error("a traced parse must run live and keep its chart")
	}
}

func TestParse_CacheKeyedByReferenceTime(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()

	p := newPipeline(t, cfg)
	first := parseText(t, p, Request{
		Text:    "tomorrow",
		Context: model.Context{ReferenceTime: refTime},
	})
	shifted := parseText(t, p, Request{
		Text:    "tomorrow",
		Context: model.Context{ReferenceTime: refTime.AddDate(0, 0, 7)},
	})

	if shifted.Cached {
		t.Fatal("a different reference time must miss the cache")
	}
	a, _ := NewRenderer(false).JSON(first.Entities)
	b, _ := NewRenderer(false).JSON(shifted.Entities)
	if bytes.Equal(a, b) {
		t.Error("'tomorrow' must resolve differently under a shifted reference time")
	}
}

// ratingData is a five-star review score, a dimension this module does
// not ship. It composes on top of numerals.
type ratingData struct {
	Stars float64
}

var ratingSeal = model.NewSeal[ratingData]("rating")

func (d ratingData) Seal() model.Seal { return ratingSeal }
func (d ratingData) Equal(other model.Payload) bool {
	o, ok := other.(ratingData)
	return ok && o == d
}
func (d ratingData) String() string {
	return fmt.Sprintf("rating{%s}", numeral.Format(d.Stars))
}

type ratingValue struct {
	Stars float64 `json:"stars"`
}

func (v ratingValue) String() string { return strconv.FormatFloat(v.Stars, 'f', -1, 64) }

type ratingDim struct {
	ruleSrc string
}

func (d *ratingDim) Seal() model.Seal { return ratingSeal }

func (d *ratingDim) Dependencies() []model.Seal {
	return []model.Seal{numeral.Seal()}
}

func (d *ratingDim) Rules(loc model.Locale) []rules.Rule {
	src := d.ruleSrc
	if src == "" {
		src = `(stars?)`
	}
	return []rules.Rule{{
		Name: "<number> stars",
		Pattern: []rules.PatternItem{
			rules.Predicate(numeral.IsIntegerBetween(0, 5)),
			rules.Regex(src),
		},
		Produce: func(toks []model.Token) (model.Token, bool) {
			v, _ := numeral.ValueOf(toks[0])
			return model.NewToken(ratingData{Stars: v}), true
		},
	}}
}

func (d *ratingDim) Resolve(t model.Token, _ model.Context) (model.Resolution, bool) {
	data, ok := t.Payload().(ratingData)
	if !ok {
		return model.Resolution{}, false
	}
	return model.Resolution{Value: ratingValue{Stars: data.Stars}}, true
}

func TestRegister_CustomDimension(t *testing.T) {
	p := newPipeline(t, nil)
	if err := p.Register(&ratingDim{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	res := parseText(t, p, Request{
		Text:    "5 stars",
		Options: model.Options{Targets: []model.Seal{ratingSeal}},
	})

	if len(res.Entities) != 1 {
		t.Fatalf("got %d entities, want 1: %v", len(res.Entities), res.Entities)
	}
	e := res.Entities[0]
	if e.Dim != "rating" || e.Body != "5 stars" {
		t.Errorf("entity = %+v", e)
	}
	if got := entityValue(t, e); !strings.Contains(got, `"value":{"stars":5}`) {
		t.Errorf("wire = %s", got)
	}
}

func TestRegister_BadPatternLeavesRuleSetUsable(t *testing.T) {
	p := newPipeline(t, nil)
	if err := p.Register(&ratingDim{ruleSrc: `(unclosed`}); err == nil {
		t.Fatal("expected a compile error for a malformed pattern")
	}

	// The previous rule set must still work.
	res := parseText(t, p, Request{Text: "two hundred"})
	if len(res.Entities) != 1 {
		t.Fatalf("pipeline unusable after failed registration: %v", res.Entities)
	}
}

// counterData grows forever; registering it shows a divergent rule set
// surfaces as a bounded error instead of a hang.
type counterData struct {
	N int
}

var counterSeal = model.NewSeal[counterData]("counter")

func (c counterData) Seal() model.Seal { return counterSeal }
func (c counterData) Equal(other model.Payload) bool {
	o, ok := other.(counterData)
	return ok && o == c
}
func (c counterData) String() string { return fmt.Sprintf("counter{%d}", c.N) }

type counterDim struct{}

func (*counterDim) Seal() model.Seal           { return counterSeal }
func (*counterDim) Dependencies() []model.Seal { return nil }
func (*counterDim) Rules(model.Locale) []rules.Rule {
	return []rules.Rule{
		{
			Name:    "seed",
			Pattern: []rules.PatternItem{rules.Regex(`tick`)},
			Produce: func([]model.Token) (model.Token, bool) {
				return model.NewToken(counterData{N: 1}), true
			},
		},
		{
			Name:    "grow",
			Pattern: []rules.PatternItem{rules.DimensionIs(counterSeal)},
			Produce: func(toks []model.Token) (model.Token, bool) {
				c := toks[0].Payload().(counterData)
				return model.NewToken(counterData{N: c.N + 1}), true
			},
		},
	}
}
func (*counterDim) Resolve(model.Token, model.Context) (model.Resolution, bool) {
	return model.Resolution{}, false
}

func TestParse_DivergentRuleSetIsBounded(t *testing.T) {
	p := newPipeline(t, nil)
	if err := p.Register(&counterDim{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := p.Parse(context.Background(), Request{
		Text:    "tick",
		Options: model.Options{MaxPasses: 8},
	})
	if !errors.Is(err, engine.ErrExpansionBound) {
		t.Errorf("err = %v, want ErrExpansionBound", err)
	}
}

func TestRenderTrace(t *testing.T) {
	p := newPipeline(t, nil)
	res := parseText(t, p, Request{Text: "two hundred", Trace: true})

	var buf bytes.Buffer
	if err := RenderTrace(&buf, res); err != nil {
		t.Fatalf("trace: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`numeral "two hundred" [0,11)`,
		"<number> hundred/thousand/million/billion",
		`match "hundred"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}

	if err := RenderTrace(&buf, &Result{Cached: true}); err == nil {
		t.Error("tracing a cached result must fail")
	}
}

func TestRenderer_Summary(t *testing.T) {
	p := newPipeline(t, nil)
	res := parseText(t, p, Request{Text: "two hundred"})

	var buf bytes.Buffer
	NewRenderer(false).Summary(&buf, res)
	out := buf.String()
	if !strings.HasPrefix(out, "1 entity") {
		t.Errorf("summary = %q", out)
	}
	if !strings.Contains(out, "numeral") || !strings.Contains(out, `"two hundred"`) {
		t.Errorf("summary = %q", out)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "ten dollars", "ten dollars"},
		{"tags", "<b>ten</b> dollars", "ten dollars"},
		{"blocks", "<p>ten</p><p>dollars</p>", " ten  dollars "},
		{"script", "ten <script>alert('3 miles')</script>dollars", "ten dollars"},
		{"style", "<style>p{color:red}</style>ten", "ten"},
		{"malformed", "ten <b dollars", "ten "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.input); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
