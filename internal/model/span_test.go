package model

import "testing"

func TestSpan_Contains(t *testing.T) {
	outer := Span{Start: 0, End: 11}
	inner := Span{Start: 4, End: 11}

	if !outer.Contains(inner) {
		t.Errorf("expected %v to contain %v", outer, inner)
	}
	if inner.Contains(outer) {
		t.Errorf("did not expect %v to contain %v", inner, outer)
	}
	if !outer.Contains(outer) {
		t.Error("expected a span to contain itself")
	}
	if outer.StrictlyContains(outer) {
		t.Error("a span must not strictly contain itself")
	}
	if !outer.StrictlyContains(inner) {
		t.Errorf("expected %v to strictly contain %v", outer, inner)
	}
}

func TestSpan_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{0, 3}, Span{4, 7}, false},
		{"touching ends are disjoint", Span{0, 3}, Span{3, 7}, false},
		{"partial overlap", Span{0, 5}, Span{3, 9}, true},
		{"nested", Span{0, 10}, Span{2, 4}, true},
		{"identical", Span{2, 4}, Span{2, 4}, true},
	}

	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%s: %v.Overlaps(%v) = %v, want %v", tt.name, tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Overlaps(tt.a); got != tt.want {
			t.Errorf("%s: overlap must be symmetric", tt.name)
		}
	}
}

func TestSpan_Less(t *testing.T) {
	ordered := []Span{{0, 3}, {0, 11}, {4, 7}, {4, 11}}

	for i := range ordered {
		for j := range ordered {
			got := ordered[i].Less(ordered[j])
			want := i < j
			if got != want {
				t.Errorf("%v.Less(%v) = %v, want %v", ordered[i], ordered[j], got, want)
			}
		}
	}
}
