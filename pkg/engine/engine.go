// Package engine wires rule sources, registries, the action parser and the
// rewriter together. An Engine holds one registry per rule kind.
//
// Set up is single threaded: Register or Load every definition, then Mature.
// After that the engine is read-only and may be shared by goroutines, each
// rewriting its own chains.
package engine

import (
	"sort"
	"strings"

	"github.com/arthur-debert/gffstruct/pkg/actions"
	"github.com/arthur-debert/gffstruct/pkg/diagnostics"
	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/arthur-debert/gffstruct/pkg/logging"
	"github.com/arthur-debert/gffstruct/pkg/report"
	"github.com/arthur-debert/gffstruct/pkg/rewrite"
	"github.com/arthur-debert/gffstruct/pkg/rulefile"
	"github.com/arthur-debert/gffstruct/pkg/rules"
	"github.com/rs/zerolog"
)

// DefaultRewriteKinds are the kinds whose actions are parsed and applied
var DefaultRewriteKinds = []string{"SUB"}

// Engine owns the registries of every rule kind
type Engine struct {
	sink   diagnostics.Sink
	logger zerolog.Logger

	rewriteKinds map[string]bool
	registries   map[string]*rules.Registry
	actions      map[*rules.Rule]*actions.Action
	rewriter     *rewrite.Rewriter
}

// Option configures an Engine
type Option func(*Engine)

// WithSink sets where diagnostics go
func WithSink(sink diagnostics.Sink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithRewriteKinds replaces the kinds whose actions are parsed
func WithRewriteKinds(kinds ...string) Option {
	return func(e *Engine) {
		e.rewriteKinds = make(map[string]bool, len(kinds))
		for _, k := range kinds {
			if k = normalizeKind(k); k != "" {
				e.rewriteKinds[k] = true
			}
		}
	}
}

// WithLogger sets the engine's logger
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an empty engine
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:     logging.GetLogger("engine"),
		registries: make(map[string]*rules.Registry),
		actions:    make(map[*rules.Rule]*actions.Action),
	}
	WithRewriteKinds(DefaultRewriteKinds...)(e)
	for _, opt := range opts {
		opt(e)
	}
	e.sink = diagnostics.OrDefault(e.sink)
	e.rewriter = rewrite.New(e.sink)
	return e
}

// normalizeKind is applied to every kind name the engine is given
func normalizeKind(kind string) string {
	return strings.TrimSpace(kind)
}

// IsRewriteKind reports whether rules of kind carry actions
func (e *Engine) IsRewriteKind(kind string) bool {
	return e.rewriteKinds[normalizeKind(kind)]
}

// Register adds one definition, creating the kind's registry on first use.
// Actions of rewrite kinds are parsed here, once.
func (e *Engine) Register(def rulefile.Definition) *rules.Rule {
	kind := normalizeKind(def.Kind)
	reg, ok := e.registries[kind]
	if !ok {
		reg = rules.NewRegistry(kind, e.sink)
		e.registries[kind] = reg
		e.logger.Debug().Str("kind", kind).Msg("Created registry")
	}

	rule := rules.NewRuleFrom(def.File, kind, def.Pattern, def.Action, def.Line)
	reg.Register(rule)

	if e.rewriteKinds[kind] {
		e.actions[rule] = actions.Parse(def.Action, actions.Source{Kind: kind, Line: def.Line}, e.sink)
	}
	return rule
}

// Load registers definitions in order
func (e *Engine) Load(defs []rulefile.Definition) []*rules.Rule {
	out := make([]*rules.Rule, 0, len(defs))
	for _, def := range defs {
		out = append(out, e.Register(def))
	}
	e.logger.Info().
		Int("rules", len(out)).
		Int("kinds", len(e.registries)).
		Msg("Loaded rules")
	return out
}

// Kinds returns the registered kinds, sorted
func (e *Engine) Kinds() []string {
	kinds := make([]string, 0, len(e.registries))
	for k := range e.registries {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Registry returns the registry of kind
func (e *Engine) Registry(kind string) (*rules.Registry, bool) {
	reg, ok := e.registries[normalizeKind(kind)]
	return reg, ok
}

// Mature matures every registry, in kind order, and joins their errors
func (e *Engine) Mature(resolver rules.Resolver) error {
	var errs []error
	for _, kind := range e.Kinds() {
		if err := e.registries[kind].Mature(resolver); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Match looks tagPath up in the registry of kind
func (e *Engine) Match(kind, tagPath string) (*rules.Match, bool) {
	reg, ok := e.Registry(kind)
	if !ok {
		return nil, false
	}
	return reg.Lookup(tagPath)
}

// ActionFor returns the parsed action of rule. It is nil for rules of kinds
// that are not rewrite kinds, and invalid when the action did not parse.
func (e *Engine) ActionFor(rule *rules.Rule) *actions.Action {
	return e.actions[rule]
}

// Canonical returns the canonical form of rule's action, or "" when it has none
func (e *Engine) Canonical(rule *rules.Rule) string {
	return e.ActionFor(rule).String()
}

// Rewrite looks node's tag path up in kind and applies the first matching
// rule's action to the chain ending at node. Regex captures are attached to
// node first. Without a match, or for kinds without actions, the changeset is
// empty.
func (e *Engine) Rewrite(kind string, node *rewrite.Node) (*rewrite.Changeset, *rules.Match) {
	if node == nil {
		return rewrite.NewChangeset(), nil
	}
	m, ok := e.Match(kind, node.FullTag)
	if !ok {
		e.logger.Trace().Str("kind", kind).Str("tag", node.FullTag).Msg("No rule matched")
		return rewrite.NewChangeset(), nil
	}
	if m.Captures != nil {
		node.Captures = m.Captures
	}

	rule := m.Rule()
	act := e.ActionFor(rule)
	if act == nil {
		e.logger.Debug().
			Str("kind", kind).
			Str("tag", node.FullTag).
			Msg("Kind has no actions")
		return rewrite.NewChangeset(), m
	}
	return e.rewriter.Apply(node, act), m
}

// Stats returns each kind's registry statistics, in kind order
func (e *Engine) Stats() []rules.Stats {
	out := make([]rules.Stats, 0, len(e.registries))
	for _, kind := range e.Kinds() {
		out = append(out, e.registries[kind].Stats())
	}
	return out
}

// Summary describes the loaded rule set. Diagnostics are included when the
// engine reports to a Collector.
func (e *Engine) Summary() report.Summary {
	s := report.NewSummary(e.Stats())
	if c, ok := e.sink.(*diagnostics.Collector); ok {
		s = s.WithDiagnostics(c.All())
	}
	return s
}
