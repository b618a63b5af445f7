package rules

import (
	"fmt"
	"strings"
)

// AliasSymbol marks an alias token inside a pattern or action
const AliasSymbol = "@"

// Rule is a single pattern rule. It is immutable once created.
type Rule struct {
	pattern string
	action  string
	kind    string
	line    int
	file    string
}

// NewRule creates a rule of the given kind declared at line
func NewRule(kind, pattern, action string, line int) *Rule {
	return &Rule{
		pattern: pattern,
		action:  action,
		kind:    kind,
		line:    line,
	}
}

// NewRuleFrom is NewRule recording the source file as well
func NewRuleFrom(file, kind, pattern, action string, line int) *Rule {
	r := NewRule(kind, pattern, action, line)
	r.file = file
	return r
}

// Pattern returns the raw pattern text
func (r *Rule) Pattern() string { return r.pattern }

// Action returns the raw action text
func (r *Rule) Action() string { return r.action }

// Kind returns the name of the rule family
func (r *Rule) Kind() string { return r.kind }

// Line returns the source line number
func (r *Rule) Line() int { return r.line }

// File returns the source file, if known
func (r *Rule) File() string { return r.file }

// HasAlias reports whether the pattern carries an alias token
func (r *Rule) HasAlias() bool {
	return strings.Contains(r.pattern, AliasSymbol)
}

func (r *Rule) String() string {
	if r.file != "" {
		return fmt.Sprintf("%s %q at %s:%d", r.kind, r.pattern, r.file, r.line)
	}
	return fmt.Sprintf("%s %q at line %d", r.kind, r.pattern, r.line)
}

// Normalize returns the registry key for a pattern or tag path
func Normalize(pattern string) string {
	return strings.ToLower(strings.TrimSpace(pattern))
}

// Match is the result of a successful lookup
type Match struct {
	// Rules holds every rule registered under the matching pattern.
	// A regex match always holds exactly one rule.
	Rules []*Rule

	// Captures holds the named groups of a regex match; nil for exact matches
	Captures map[string]string

	// Regex is set when the match came from a matured regex rule
	Regex bool

	// Expr is the compiled expression text for regex matches
	Expr string
}

// Rule returns the first matching rule
func (m *Match) Rule() *Rule {
	if m == nil || len(m.Rules) == 0 {
		return nil
	}
	return m.Rules[0]
}

// Resolver expands alias-bearing patterns into regular expressions.
//
// Resolve returns ok == false when the pattern cannot be handled at all; the rule
// is then skipped. Returning the pattern unchanged means no alias was expanded.
type Resolver interface {
	Resolve(pattern string) (expr string, ok bool)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(pattern string) (string, bool)

// Resolve implements Resolver
func (f ResolverFunc) Resolve(pattern string) (string, bool) { return f(pattern) }

// Stats counts a registry's contents
type Stats struct {
	Kind            string `json:"kind" yaml:"kind"`
	ExactPatterns   int    `json:"exact_patterns" yaml:"exact_patterns"`
	ExactRules      int    `json:"exact_rules" yaml:"exact_rules"`
	PendingPatterns int    `json:"pending_patterns" yaml:"pending_patterns"`
	PendingRules    int    `json:"pending_rules" yaml:"pending_rules"`
	MaturedRules    int    `json:"matured_rules" yaml:"matured_rules"`
}
