package dims

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/QtravelPL/duckling/internal/dims/distance"
	"github.com/QtravelPL/duckling/internal/dims/duration"
	"github.com/QtravelPL/duckling/internal/dims/email"
	"github.com/QtravelPL/duckling/internal/dims/grain"
	"github.com/QtravelPL/duckling/internal/dims/money"
	"github.com/QtravelPL/duckling/internal/dims/numeral"
	"github.com/QtravelPL/duckling/internal/dims/ordinal"
	"github.com/QtravelPL/duckling/internal/dims/phone"
	"github.com/QtravelPL/duckling/internal/dims/temporal"
	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Registry holds the dimension table. It is assembled once during
// configuration and then shared read-only by every parse; Register must
// not be called concurrently with RuleSet or with parsing.
type Registry struct {
	order  []Dimension
	bySeal map[model.Seal]Dimension
	byName map[string]Dimension
}

// New returns a registry with the built-in dimensions registered.
func New() *Registry {
	r := NewEmpty()
	builtins := []Dimension{
		numeral.New(),
		ordinal.New(),
		grain.New(),
		temporal.New(),
		duration.New(),
		money.New(),
		distance.New(),
		phone.New(),
		email.New(),
	}
	for _, d := range builtins {
		if err := r.Register(d); err != nil {
			// Built-ins are statically known to be disjoint.
			panic(err)
		}
	}
	return r
}

// NewEmpty returns a registry with no dimensions at all.
func NewEmpty() *Registry {
	return &Registry{
		bySeal: make(map[model.Seal]Dimension),
		byName: make(map[string]Dimension),
	}
}

// Register adds a dimension. The name and the payload type must both be
// unclaimed: one payload type belongs to exactly one dimension, which is
// what makes seal equality mean dimension identity.
func (r *Registry) Register(d Dimension) error {
	seal := d.Seal()
	if seal.IsZero() {
		return errors.New("dimension has a zero seal")
	}
	if seal.Name() == rules.MatchSeal().Name() {
		return errors.Newf("dimension name %q is reserved for lexical matches", seal.Name())
	}
	if prev, ok := r.byName[seal.Name()]; ok {
		return errors.Newf("dimension name %q is already registered for payload type %s",
			seal.Name(), prev.Seal().PayloadType())
	}
	for _, existing := range r.order {
		if existing.Seal().PayloadType() == seal.PayloadType() {
			return errors.Newf("payload type %s is already bound to dimension %q",
				seal.PayloadType(), existing.Seal().Name())
		}
	}
	r.order = append(r.order, d)
	r.bySeal[seal] = d
	r.byName[seal.Name()] = d
	return nil
}

// Find returns the dimension identified by a seal.
func (r *Registry) Find(s model.Seal) (Dimension, bool) {
	d, ok := r.bySeal[s]
	return d, ok
}

// FindByName resolves a wire name such as "numeral".
func (r *Registry) FindByName(name string) (Dimension, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Dimensions returns all dimensions in registration order.
func (r *Registry) Dimensions() []Dimension {
	out := make([]Dimension, len(r.order))
	copy(out, r.order)
	return out
}

// Names returns the registered wire names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Seals translates wire names into seals, typically from a --dims flag.
func (r *Registry) Seals(names []string) ([]model.Seal, error) {
	out := make([]model.Seal, 0, len(names))
	for _, name := range names {
		d, ok := r.byName[strings.TrimSpace(name)]
		if !ok {
			return nil, errors.WithHintf(
				errors.Newf("unknown dimension %q", name),
				"known dimensions: %s", strings.Join(r.Names(), ", "))
		}
		out = append(out, d.Seal())
	}
	return out, nil
}

// Layers orders dimensions so each one's dependencies live in an
// earlier layer. Registration order breaks ties within a layer, so the
// result is deterministic for a given registration sequence.
func (r *Registry) Layers() ([][]Dimension, error) {
	levels := make(map[model.Seal]int, len(r.order))

	var visit func(d Dimension, trail map[model.Seal]bool) (int, error)
	visit = func(d Dimension, trail map[model.Seal]bool) (int, error) {
		seal := d.Seal()
		if lvl, ok := levels[seal]; ok {
			return lvl, nil
		}
		if trail[seal] {
			return 0, errors.Newf("dimension %q participates in a dependency cycle", seal.Name())
		}
		trail[seal] = true
		lvl := 0
		for _, dep := range d.Dependencies() {
			dd, ok := r.bySeal[dep]
			if !ok {
				return 0, errors.WithHintf(
					errors.Newf("dimension %q depends on unregistered dimension %q", seal.Name(), dep.Name()),
					"registered dimensions: %s", strings.Join(r.Names(), ", "))
			}
			dl, err := visit(dd, trail)
			if err != nil {
				return 0, err
			}
			if dl+1 > lvl {
				lvl = dl + 1
			}
		}
		delete(trail, seal)
		levels[seal] = lvl
		return lvl, nil
	}

	maxLevel := 0
	for _, d := range r.order {
		lvl, err := visit(d, make(map[model.Seal]bool))
		if err != nil {
			return nil, err
		}
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	layers := make([][]Dimension, maxLevel+1)
	for _, d := range r.order {
		lvl := levels[d.Seal()]
		layers[lvl] = append(layers[lvl], d)
	}
	return layers, nil
}

// RuleSet compiles the full rule table for a locale. Dimensions without
// rules for the locale are skipped; a locale no dimension speaks is an
// error.
func (r *Registry) RuleSet(loc model.Locale) (*rules.Set, error) {
	layers, err := r.Layers()
	if err != nil {
		return nil, err
	}
	set := &rules.Set{Locale: loc}
	for _, level := range layers {
		var layer rules.Layer
		for _, d := range level {
			rs := d.Rules(loc)
			if len(rs) == 0 {
				continue
			}
			compiled, err := rules.Compile(d.Seal(), rs)
			if err != nil {
				return nil, err
			}
			layer.Rules = append(layer.Rules, compiled...)
		}
		if len(layer.Rules) > 0 {
			set.Layers = append(set.Layers, layer)
		}
	}
	if len(set.Layers) == 0 {
		return nil, errors.WithHint(
			errors.Newf("no registered dimension provides rules for locale %s", loc),
			"currently only English locales are built in")
	}
	return set, nil
}
