package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewEntity_SlicesBody(t *testing.T) {
	text := "two hundred miles"
	r := ResolvedToken{
		Span:  Span{Start: 0, End: 11},
		Node:  NodeID(7),
		Seal:  colorSeal,
		Value: textValue("200"),
	}

	e := NewEntity(text, r)

	if e.Body != "two hundred" {
		t.Errorf("Body = %q, want %q", e.Body, "two hundred")
	}
	if e.Dim != "color" || e.Start != 0 || e.End != 11 || e.Latent {
		t.Errorf("unexpected entity fields: %+v", e)
	}
	if e.Node != NodeID(7) {
		t.Errorf("Node = %d, want 7", e.Node)
	}
}

func TestEntity_WireFormat(t *testing.T) {
	e := Entity{
		Dim:    "numeral",
		Body:   "two hundred",
		Value:  RawValue(`{"value":200}`),
		Start:  0,
		End:    11,
		Latent: false,
		Node:   NodeID(3),
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "Node") || strings.Contains(string(data), "node") {
		t.Errorf("provenance leaked into wire output: %s", data)
	}

	var got struct {
		Dim    string          `json:"dim"`
		Body   string          `json:"body"`
		Value  json.RawMessage `json:"value"`
		Start  int             `json:"start"`
		End    int             `json:"end"`
		Latent bool            `json:"latent"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Dim != "numeral" || got.Body != "two hundred" || got.Start != 0 || got.End != 11 || got.Latent {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if string(got.Value) != `{"value":200}` {
		t.Errorf("value = %s, want {\"value\":200}", got.Value)
	}
}

func TestParseLocale(t *testing.T) {
	loc, err := ParseLocale("en")
	if err != nil {
		t.Fatalf("ParseLocale(en): %v", err)
	}
	if loc.Lang != LangEN || loc.Region != "" {
		t.Errorf("unexpected locale: %+v", loc)
	}

	loc, err = ParseLocale("en_us")
	if err != nil {
		t.Fatalf("ParseLocale(en_us): %v", err)
	}
	if loc.Lang != LangEN || loc.Region != RegionUS {
		t.Errorf("unexpected locale: %+v", loc)
	}
	if loc.String() != "en_US" {
		t.Errorf("String() = %q, want en_US", loc.String())
	}

	for _, bad := range []string{"", "english", "e", "en_USA"} {
		if _, err := ParseLocale(bad); err == nil {
			t.Errorf("ParseLocale(%q): expected error", bad)
		}
	}
}
