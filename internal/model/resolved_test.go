package model

import (
	"sort"
	"testing"
)

type textValue string

func (v textValue) String() string { return string(v) }

func TestResolvedToken_LessIsTotal(t *testing.T) {
	ordered := []ResolvedToken{
		{Span: Span{0, 3}, Seal: colorSeal, Value: textValue("a")},
		{Span: Span{0, 11}, Seal: colorSeal, Value: textValue("a")},
		{Span: Span{0, 11}, Seal: colorSeal, Value: textValue("b")},
		{Span: Span{0, 11}, Seal: colorSeal, Value: textValue("c"), Latent: false},
		{Span: Span{0, 11}, Seal: colorSeal, Value: textValue("c"), Latent: true},
		{Span: Span{0, 11}, Seal: shapeSeal, Value: textValue("c"), Latent: true},
		{Span: Span{4, 7}, Seal: colorSeal, Value: textValue("a")},
	}

	for i := range ordered {
		for j := range ordered {
			got := ordered[i].Less(ordered[j])
			want := i < j
			if got != want {
				t.Errorf("ordered[%d].Less(ordered[%d]) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestResolvedToken_SortIsDeterministic(t *testing.T) {
	base := []ResolvedToken{
		{Span: Span{4, 7}, Seal: colorSeal, Value: textValue("x")},
		{Span: Span{0, 11}, Seal: shapeSeal, Value: textValue("y"), Latent: true},
		{Span: Span{0, 11}, Seal: colorSeal, Value: textValue("y")},
		{Span: Span{0, 3}, Seal: colorSeal, Value: textValue("z")},
	}

	// Two different presentation orders must sort identically.
	perm1 := []ResolvedToken{base[0], base[1], base[2], base[3]}
	perm2 := []ResolvedToken{base[3], base[2], base[0], base[1]}

	sort.Slice(perm1, func(i, j int) bool { return perm1[i].Less(perm1[j]) })
	sort.Slice(perm2, func(i, j int) bool { return perm2[i].Less(perm2[j]) })

	for i := range perm1 {
		if perm1[i] != perm2[i] {
			t.Fatalf("order differs at %d: %+v vs %+v", i, perm1[i], perm2[i])
		}
	}
	if !perm1[1].Less(perm1[2]) && perm1[1].Span == perm1[2].Span {
		// Non-latent before latent at the same position and value text.
		if perm1[1].Latent && !perm1[2].Latent {
			t.Error("latent candidate sorted before confident one")
		}
	}
}
