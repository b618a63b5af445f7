package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/gffstruct/pkg/diagnostics"
	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/arthur-debert/gffstruct/pkg/logging"
	"github.com/rs/zerolog"
)

// MaturedRule pairs a compiled expression with the rule it came from
type MaturedRule struct {
	Expr string
	Rule *Rule
	re   *regexp.Regexp
}

// Registry stores the rules of one kind under three indices: exact patterns,
// alias-bearing patterns waiting for maturation and matured regex rules.
type Registry struct {
	kind   string
	sink   diagnostics.Sink
	logger zerolog.Logger

	exact      map[string][]*Rule
	exactOrder []string

	pending      map[string][]*Rule
	pendingOrder []string

	matured []MaturedRule
	demoted map[*Rule]bool
}

// NewRegistry creates an empty registry for rules of kind.
// A nil sink reports through the default diagnostics logger.
func NewRegistry(kind string, sink diagnostics.Sink) *Registry {
	return &Registry{
		kind:    kind,
		sink:    diagnostics.OrDefault(sink),
		logger:  logging.GetLogger("rules.registry").With().Str("kind", kind).Logger(),
		exact:   make(map[string][]*Rule),
		pending: make(map[string][]*Rule),
		demoted: make(map[*Rule]bool),
	}
}

// Kind returns the rule kind this registry holds
func (r *Registry) Kind() string { return r.kind }

// Register adds a rule. Duplicate patterns are reported but both rules stay matchable.
func (r *Registry) Register(rule *Rule) {
	if rule == nil {
		return
	}
	pat := Normalize(rule.pattern)

	alias := strings.Contains(pat, AliasSymbol)
	index, order := &r.exact, &r.exactOrder
	if alias {
		index, order = &r.pending, &r.pendingOrder
	}

	if prior := (*index)[pat]; len(prior) > 0 {
		lines := make([]int, len(prior))
		for i, p := range prior {
			lines[i] = p.line
		}
		r.sink.Report(errors.Newf(errors.ErrPatternDuplicate,
			"already seen pattern %s at lines %s for %s at %d",
			rule.pattern, joinInts(lines), r.kind, rule.line).
			WithDetail("pattern", pat).
			WithDetail("kind", r.kind).
			WithDetail("line", rule.line).
			WithDetail("lines", lines))
	} else {
		*order = append(*order, pat)
	}
	(*index)[pat] = append((*index)[pat], rule)

	r.logger.Trace().
		Str("pattern", pat).
		Int("line", rule.line).
		Bool("alias", alias).
		Msg("Registered rule")
}

// Mature turns pending alias-bearing patterns into regex rules using resolver.
//
// Patterns the resolver returns unchanged are demoted to the exact index.
// Expressions that fail to compile are reported and returned joined; the
// remaining rules are still matured. Calling Mature again rebuilds the
// matured list.
func (r *Registry) Mature(resolver Resolver) error {
	if resolver == nil {
		return nil
	}
	done := logging.LogOperationStart(r.logger, "mature")
	defer done()

	r.undoDemotions()
	r.matured = nil

	var errs []error
	for _, pat := range r.pendingOrder {
		for _, rule := range r.pending[pat] {
			raw := strings.TrimSpace(rule.pattern)

			expr, ok := resolver.Resolve(raw)
			if !ok {
				r.sink.Report(errors.Newf(errors.ErrPatternSkipped,
					"no expression for pattern %s for %s (line %d)", pat, r.kind, rule.line).
					WithDetail("pattern", pat).
					WithDetail("kind", r.kind).
					WithDetail("line", rule.line))
				continue
			}

			if expr == raw {
				r.exact[pat] = append(r.exact[pat], rule)
				if len(r.exact[pat]) == 1 {
					r.exactOrder = append(r.exactOrder, pat)
				}
				r.demoted[rule] = true
				r.sink.Report(errors.Newf(errors.ErrPatternUnmatured,
					"cannot mature pattern %s (raw: %s) for %s (line %d)", pat, raw, r.kind, rule.line).
					WithDetail("pattern", pat).
					WithDetail("kind", r.kind).
					WithDetail("line", rule.line))
				continue
			}

			re, err := regexp.Compile(anchor(expr))
			if err != nil {
				diag := errors.Wrapf(err, errors.ErrRegexCompile,
					"cannot compile expression for pattern %s for %s (line %d)", pat, r.kind, rule.line).
					WithDetail("pattern", pat).
					WithDetail("expr", expr).
					WithDetail("kind", r.kind).
					WithDetail("line", rule.line)
				r.sink.Report(diag)
				errs = append(errs, diag)
				continue
			}

			r.matured = append(r.matured, MaturedRule{Expr: expr, Rule: rule, re: re})
			r.logger.Debug().
				Str("pattern", pat).
				Str("expr", expr).
				Int("line", rule.line).
				Msg("Matured pattern")
		}
	}

	r.logger.Debug().
		Int("matured", len(r.matured)).
		Int("demoted", len(r.demoted)).
		Msg("Maturation complete")

	return errors.Join(errs...)
}

// undoDemotions removes rules a previous Mature call pushed into the exact index
func (r *Registry) undoDemotions() {
	if len(r.demoted) == 0 {
		return
	}
	for pat, list := range r.exact {
		kept := list[:0:0]
		for _, rule := range list {
			if !r.demoted[rule] {
				kept = append(kept, rule)
			}
		}
		if len(kept) == 0 {
			delete(r.exact, pat)
			continue
		}
		r.exact[pat] = kept
	}
	order := r.exactOrder[:0:0]
	for _, pat := range r.exactOrder {
		if _, ok := r.exact[pat]; ok {
			order = append(order, pat)
		}
	}
	r.exactOrder = order
	r.demoted = make(map[*Rule]bool)
}

// anchor makes an expression match the whole tag path
func anchor(expr string) string {
	return "^(?:" + expr + ")$"
}

// Lookup finds the rules for a tag path: exact patterns first, then matured
// regex rules in order. It returns false when nothing matches.
func (r *Registry) Lookup(tagPath string) (*Match, bool) {
	if rules := r.exact[Normalize(tagPath)]; len(rules) > 0 {
		out := make([]*Rule, len(rules))
		copy(out, rules)
		return &Match{Rules: out}, true
	}

	subject := strings.TrimSpace(tagPath)
	for _, m := range r.matured {
		loc := m.re.FindStringSubmatchIndex(subject)
		if loc == nil {
			continue
		}
		captures := make(map[string]string)
		for i, name := range m.re.SubexpNames() {
			if name == "" || loc[2*i] < 0 {
				continue
			}
			captures[name] = subject[loc[2*i]:loc[2*i+1]]
		}
		return &Match{
			Rules:    []*Rule{m.Rule},
			Captures: captures,
			Regex:    true,
			Expr:     m.Expr,
		}, true
	}

	return nil, false
}

// ExactPatterns returns the exact index keys in first-registration order
func (r *Registry) ExactPatterns() []string {
	out := make([]string, len(r.exactOrder))
	copy(out, r.exactOrder)
	return out
}

// PendingPatterns returns the pending index keys in first-registration order
func (r *Registry) PendingPatterns() []string {
	out := make([]string, len(r.pendingOrder))
	copy(out, r.pendingOrder)
	return out
}

// Exact returns the rules registered under an exact pattern
func (r *Registry) Exact(pattern string) []*Rule {
	rules := r.exact[Normalize(pattern)]
	out := make([]*Rule, len(rules))
	copy(out, rules)
	return out
}

// Pending returns the rules waiting under an alias-bearing pattern
func (r *Registry) Pending(pattern string) []*Rule {
	rules := r.pending[Normalize(pattern)]
	out := make([]*Rule, len(rules))
	copy(out, rules)
	return out
}

// Matured returns the matured regex rules in maturation order
func (r *Registry) Matured() []MaturedRule {
	out := make([]MaturedRule, len(r.matured))
	copy(out, r.matured)
	return out
}

// Rules returns every registered rule: exact first, then pending, each in registration order.
// Demoted rules are listed once, under pending.
func (r *Registry) Rules() []*Rule {
	var out []*Rule
	for _, pat := range r.exactOrder {
		for _, rule := range r.exact[pat] {
			if !r.demoted[rule] {
				out = append(out, rule)
			}
		}
	}
	for _, pat := range r.pendingOrder {
		out = append(out, r.pending[pat]...)
	}
	return out
}

// Stats counts the registry's contents
func (r *Registry) Stats() Stats {
	s := Stats{
		Kind:            r.kind,
		ExactPatterns:   len(r.exactOrder),
		PendingPatterns: len(r.pendingOrder),
		MaturedRules:    len(r.matured),
	}
	for _, rules := range r.exact {
		s.ExactRules += len(rules)
	}
	for _, rules := range r.pending {
		s.PendingRules += len(rules)
	}
	return s
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
