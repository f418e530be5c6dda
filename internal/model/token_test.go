package model

import "testing"

// colorData and shapeData are two unrelated payload types used to
// exercise dimension identity.
type colorData struct{ name string }

var colorSeal = NewSeal[colorData]("color")

func (c colorData) Seal() Seal { return colorSeal }
func (c colorData) Equal(other Payload) bool {
	o, ok := other.(colorData)
	return ok && o == c
}
func (c colorData) String() string { return "color{" + c.name + "}" }

type shapeData struct{ sides int }

var shapeSeal = NewSeal[shapeData]("shape")

func (s shapeData) Seal() Seal { return shapeSeal }
func (s shapeData) Equal(other Payload) bool {
	o, ok := other.(shapeData)
	return ok && o == s
}
func (s shapeData) String() string {
	return "shape{" + string(rune('0'+s.sides)) + "}"
}

func TestNewSeal_Identity(t *testing.T) {
	if colorSeal == shapeSeal {
		t.Fatal("seals of distinct payload types must differ")
	}
	if NewSeal[colorData]("color") != colorSeal {
		t.Error("rebuilding a seal from the same type and name must give an equal seal")
	}
	if NewSeal[colorData]("x") == NewSeal[shapeData]("x") {
		t.Error("sharing a name must not make distinct payload types the same dimension")
	}
	if colorSeal.Name() != "color" {
		t.Errorf("Name() = %q, want %q", colorSeal.Name(), "color")
	}
	if (Seal{}).IsZero() != true || colorSeal.IsZero() {
		t.Error("IsZero must hold for the zero seal only")
	}
}

func TestToken_Equal(t *testing.T) {
	red := NewToken(colorData{name: "red"})
	red2 := NewToken(colorData{name: "red"})
	blue := NewToken(colorData{name: "blue"})

	if !red.Equal(red2) {
		t.Error("tokens with equal payloads must be equal")
	}
	if red.Equal(blue) {
		t.Error("tokens with different payloads must not be equal")
	}
	if !red.Is(colorSeal) || red.Is(shapeSeal) {
		t.Error("Is must match the payload's own dimension only")
	}
}

func TestToken_CrossDimensionComparison(t *testing.T) {
	red := NewToken(colorData{name: "red"})
	square := NewToken(shapeData{sides: 4})

	// Comparing across dimensions is well defined, just always false.
	if red.Equal(square) || square.Equal(red) {
		t.Error("tokens of different dimensions must never be equal")
	}
}

func TestToken_HashConsistentWithEqual(t *testing.T) {
	a := NewToken(colorData{name: "red"})
	b := NewToken(colorData{name: "red"})
	c := NewToken(colorData{name: "blue"})

	if a.Hash() != b.Hash() {
		t.Error("equal tokens must hash to the same value")
	}
	if a.Hash() == c.Hash() {
		t.Error("distinct payloads should not collide on this fixture")
	}
}

func TestToken_Zero(t *testing.T) {
	var zero Token

	if !zero.Equal(Token{}) {
		t.Error("zero tokens must equal each other")
	}
	if zero.Equal(NewToken(colorData{name: "red"})) {
		t.Error("a zero token must not equal a real one")
	}
	if !zero.Seal().IsZero() {
		t.Error("a zero token has no dimension")
	}
}
