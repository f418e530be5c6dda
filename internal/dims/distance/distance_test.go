package distance

import (
	"encoding/json"
	"testing"

	"github.com/QtravelPL/duckling/internal/dims/numeral"
	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

func TestRule_AmountUnit(t *testing.T) {
	r := enRules[0]

	cases := map[string]string{
		"miles": "mile",
		"mi":    "mile",
		"km":    "kilometre",
		"feet":  "foot",
		"ft":    "foot",
		"inch":  "inch",
		"yds":   "yard",
		"m":     "metre",
	}
	for word, want := range cases {
		tok, ok := r.Produce([]model.Token{
			model.NewToken(numeral.Data{Value: 5}),
			model.NewToken(rules.Match{Groups: []string{word, word}}),
		})
		if !ok {
			t.Fatalf("production declined 5 %s", word)
		}
		d := tok.Payload().(Data)
		if d.Value != 5 || d.Unit != want {
			t.Errorf("%q: got %+v, want unit %q", word, d, want)
		}
	}
}

func TestResolve(t *testing.T) {
	res, ok := New().Resolve(model.NewToken(Data{Value: 3.2, Unit: "kilometre"}), model.Context{})
	if !ok {
		t.Fatal("resolve failed")
	}
	data, err := json.Marshal(res.Value)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"value":3.2,"unit":"kilometre"}` {
		t.Errorf("wire value = %s", data)
	}
}
