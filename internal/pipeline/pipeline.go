// Package pipeline wires the parse stages together: document intake,
// rule saturation, resolution, ranking and the result cache.
package pipeline

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/QtravelPL/duckling/internal/cache"
	"github.com/QtravelPL/duckling/internal/dims"
	"github.com/QtravelPL/duckling/internal/engine"
	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/rank"
	"github.com/QtravelPL/duckling/internal/resolve"
	"github.com/QtravelPL/duckling/internal/rules"
)

// Pipeline orchestrates the complete parse.
type Pipeline struct {
	registry *dims.Registry
	set      *rules.Set
	engine   *engine.Engine
	resolver *resolve.Resolver
	cache    cache.Cache
	locale   model.Locale
	targets  []model.Seal
	config   *model.Config
	logger   *zap.SugaredLogger
}

// New builds a pipeline from configuration: the built-in dimension
// registry, the locale's compiled rule set and, when enabled, the
// layered result cache.
func New(cfg *model.Config) (*Pipeline, error) {
	loc, err := model.ParseLocale(cfg.Engine.Locale)
	if err != nil {
		return nil, errors.Wrap(err, "engine locale")
	}
	reg := dims.New()
	set, err := reg.RuleSet(loc)
	if err != nil {
		return nil, errors.Wrap(err, "compile rules")
	}
	targets, err := reg.Seals(cfg.Engine.Dims)
	if err != nil {
		return nil, errors.Wrap(err, "target dimensions")
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		registry: reg,
		set:      set,
		engine:   engine.New(),
		resolver: resolve.New(reg),
		cache:    c,
		locale:   loc,
		targets:  targets,
		config:   cfg,
		logger:   zap.NewNop().Sugar(),
	}, nil
}

// SetLogger replaces the no-op logger. Passing nil restores it.
func (p *Pipeline) SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	p.logger = l
	p.engine.SetLogger(l)
}

// Registry exposes the pipeline's dimension registry.
func (p *Pipeline) Registry() *dims.Registry {
	return p.registry
}

// Register adds a custom dimension and rebuilds the rule set so its
// rules take part in subsequent parses. The dimension's rules are
// compiled up front; on any error the active rule set stays untouched.
func (p *Pipeline) Register(d dims.Dimension) error {
	if _, err := rules.Compile(d.Seal(), d.Rules(p.locale)); err != nil {
		return errors.Wrap(err, "compile dimension rules")
	}
	if err := p.registry.Register(d); err != nil {
		return err
	}
	set, err := p.registry.RuleSet(p.locale)
	if err != nil {
		return errors.Wrap(err, "rebuild rule set")
	}
	p.set = set
	return nil
}

// Request is one parse invocation.
type Request struct {
	Text    string
	Context model.Context
	Options model.Options
	HTML    bool // strip markup before parsing
	Trace   bool // force a live parse so the chart is available
}

// Result is the outcome of a parse. Entities and their offsets refer
// to Text, which differs from the request text when markup was
// stripped. Chart is the derivation arena behind the entities; it is
// nil when the result was served from the cache.
type Result struct {
	Text     string
	Entities []model.Entity
	Stats    engine.Stats
	Cached   bool
	Chart    *engine.Chart
}

// ParseReferenceTime accepts an RFC3339 timestamp or unix
// milliseconds. The zero time means "resolve against now".
func ParseReferenceTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, errors.Newf("invalid reference time %q: want RFC3339 or unix milliseconds", s)
	}
	return time.UnixMilli(ms).UTC(), nil
}

// Parse runs the full pipeline for one request.
func (p *Pipeline) Parse(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := req.Text
	if req.HTML {
		text = StripHTML(text)
	}
	reqCtx := p.normalizeContext(req.Context)
	opts := p.normalizeOptions(req.Options)

	key := p.cacheKey(text, reqCtx, opts)
	useCache := p.cache != nil && !req.Trace
	if useCache {
		if data, found := p.cache.Get(key); found {
			entities, err := decodeEntities(data)
			if err == nil {
				p.logger.Debugw("cache hit", "text_len", len(text), "entities", len(entities))
				return &Result{Text: text, Entities: entities, Cached: true}, nil
			}
			p.logger.Debugw("cache entry unreadable, reparsing", "error", err)
		}
	}

	chart, stats, err := p.engine.Parse(engine.NewDocument(text), p.set, opts)
	if err != nil {
		return nil, errors.Wrap(err, "saturate")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved := p.resolver.All(chart, reqCtx, opts)
	winners := rank.Winners(resolved, opts.WithLatent)
	entities := rank.Entities(text, winners)

	if useCache {
		if data, err := json.Marshal(entities); err == nil {
			if err := p.cache.Set(key, data, 0); err != nil {
				p.logger.Debugw("cache write failed", "error", err)
			}
		}
	}

	p.logger.Debugw("parse complete",
		"text_len", len(text),
		"entities", len(entities),
		"nodes", stats.Nodes,
		"passes", stats.Passes)

	return &Result{
		Text:     text,
		Entities: entities,
		Stats:    stats,
		Chart:    chart,
	}, nil
}

// normalizeContext fills request context gaps with pipeline defaults.
func (p *Pipeline) normalizeContext(ctx model.Context) model.Context {
	if ctx.ReferenceTime.IsZero() {
		ctx.ReferenceTime = time.Now().UTC()
	}
	if ctx.Locale == (model.Locale{}) {
		ctx.Locale = p.locale
	}
	return ctx
}

// normalizeOptions fills request option gaps with configured defaults.
func (p *Pipeline) normalizeOptions(opts model.Options) model.Options {
	if len(opts.Targets) == 0 {
		opts.Targets = p.targets
	}
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = p.config.Engine.MaxPasses
	}
	if p.config.Engine.WithLatent {
		opts.WithLatent = true
	}
	return opts
}

// cacheKey captures everything the output depends on. The reference
// time is part of the key, so implicit-now requests only hit when the
// caller pinned a reference time.
func (p *Pipeline) cacheKey(text string, ctx model.Context, opts model.Options) string {
	names := make([]string, len(opts.Targets))
	for i, s := range opts.Targets {
		names[i] = s.Name()
	}
	sort.Strings(names)
	return cache.Key(
		text,
		ctx.Locale.String(),
		ctx.ReferenceTime.UTC().Format(time.RFC3339Nano),
		strings.Join(names, ","),
		strconv.FormatBool(opts.WithLatent),
		strconv.Itoa(opts.MaxPasses),
	)
}

type wireEntity struct {
	Dim    string         `json:"dim"`
	Body   string         `json:"body"`
	Value  model.RawValue `json:"value"`
	Start  int            `json:"start"`
	End    int            `json:"end"`
	Latent bool           `json:"latent"`
}

// decodeEntities rebuilds entities from cached wire JSON. Values come
// back as raw JSON, which re-marshals byte for byte.
func decodeEntities(data []byte) ([]model.Entity, error) {
	var wire []wireEntity
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errors.Wrap(err, "decode cached entities")
	}
	entities := make([]model.Entity, len(wire))
	for i, w := range wire {
		entities[i] = model.Entity{
			Dim:    w.Dim,
			Body:   w.Body,
			Value:  w.Value,
			Start:  w.Start,
			End:    w.End,
			Latent: w.Latent,
		}
	}
	return entities, nil
}
