// Package rules defines the pattern and production vocabulary dimensions
// are written in, plus the compiled rule tables the engine executes.
package rules

import (
	"fmt"

	"github.com/QtravelPL/duckling/internal/model"
)

// Match is the payload of the internal lexical dimension: the capture
// groups of one regex match, group 0 being the whole match. Lexical
// tokens appear only as children of produced nodes and never as output.
type Match struct {
	Groups []string
}

var matchSeal = model.NewSeal[Match]("regex")

// MatchSeal returns the seal of the internal lexical dimension. The name
// "regex" is reserved; the registry rejects dimensions that claim it.
func MatchSeal() model.Seal { return matchSeal }

func (m Match) Seal() model.Seal { return matchSeal }

func (m Match) Equal(other model.Payload) bool {
	o, ok := other.(Match)
	if !ok || len(m.Groups) != len(o.Groups) {
		return false
	}
	for i := range m.Groups {
		if m.Groups[i] != o.Groups[i] {
			return false
		}
	}
	return true
}

func (m Match) String() string { return fmt.Sprintf("regex%q", m.Groups) }

// Group returns capture group i of a lexical token, or "" when the token
// is not a lexical match or the group did not participate.
func Group(t model.Token, i int) string {
	m, ok := t.Payload().(Match)
	if !ok || i < 0 || i >= len(m.Groups) {
		return ""
	}
	return m.Groups[i]
}
