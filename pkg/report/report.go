// Package report turns registry state, matches and rewrites into results the
// ui renderers can draw or encode.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/gffstruct/pkg/diagnostics"
	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/arthur-debert/gffstruct/pkg/rules"
	"github.com/arthur-debert/gffstruct/pkg/ui/display"
	"github.com/rs/zerolog"
)

// Diagnostic is a reported problem in encodable form
type Diagnostic struct {
	Code    string                 `json:"code" yaml:"code"`
	Level   string                 `json:"level" yaml:"level"`
	Message string                 `json:"message" yaml:"message"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// NewDiagnostics converts collected diagnostics, keeping their order
func NewDiagnostics(ds []*errors.Error) []Diagnostic {
	out := make([]Diagnostic, 0, len(ds))
	for _, d := range ds {
		if d == nil {
			continue
		}
		out = append(out, Diagnostic{
			Code:    string(d.Code),
			Level:   diagnostics.LevelFor(d.Code).String(),
			Message: d.Message,
			Details: d.Details,
		})
	}
	return out
}

// Summary describes a loaded rule set
type Summary struct {
	Files       []string      `json:"files,omitempty" yaml:"files,omitempty"`
	Aliases     string        `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Rules       int           `json:"rules" yaml:"rules"`
	Kinds       []rules.Stats `json:"kinds" yaml:"kinds"`
	Errors      int           `json:"errors" yaml:"errors"`
	Warnings    int           `json:"warnings" yaml:"warnings"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// NewSummary builds a summary from per-kind statistics, sorted by kind
func NewSummary(stats []rules.Stats) Summary {
	kinds := make([]rules.Stats, len(stats))
	copy(kinds, stats)
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Kind < kinds[j].Kind })

	s := Summary{Kinds: kinds}
	for _, k := range kinds {
		s.Rules += k.ExactRules + k.PendingRules
	}
	return s
}

// WithDiagnostics returns a copy of s carrying ds and their error and warning counts
func (s Summary) WithDiagnostics(ds []*errors.Error) Summary {
	s.Diagnostics = NewDiagnostics(ds)
	s.Errors, s.Warnings = 0, 0
	for _, d := range ds {
		if d == nil {
			continue
		}
		switch diagnostics.LevelFor(d.Code) {
		case zerolog.ErrorLevel:
			s.Errors++
		case zerolog.WarnLevel:
			s.Warnings++
		}
	}
	return s
}

// OK reports whether no diagnostic is an error
func (s Summary) OK() bool {
	return s.Errors == 0
}

// Display implements display.Displayable
func (s Summary) Display() display.Document {
	doc := display.Document{
		Title:   "Rule set",
		Message: fmt.Sprintf("%d rules in %d kinds, %d errors, %d warnings", s.Rules, len(s.Kinds), s.Errors, s.Warnings),
	}

	if len(s.Files) > 0 || s.Aliases != "" {
		src := doc.AddSection("Sources")
		for _, f := range s.Files {
			src.Add("rules", f, display.StatusNone)
		}
		if s.Aliases != "" {
			src.Add("aliases", s.Aliases, display.StatusNone)
		}
	}

	for _, k := range s.Kinds {
		sec := doc.AddSection(k.Kind)
		sec.Add("exact", countPair(k.ExactRules, k.ExactPatterns), display.StatusNone)
		sec.Add("alias", countPair(k.PendingRules, k.PendingPatterns), display.StatusNone)
		status := display.StatusOK
		if k.MaturedRules < k.PendingRules {
			status = display.StatusWarning
		}
		sec.Add("matured", strconv.Itoa(k.MaturedRules), status)
	}

	if len(s.Diagnostics) > 0 {
		sec := doc.AddSection("Diagnostics")
		for _, d := range s.Diagnostics {
			sec.Add(d.Code, d.Message, levelStatus(d.Level))
		}
	}
	return doc
}

func countPair(rulesN, patterns int) string {
	return fmt.Sprintf("%d rules, %d patterns", rulesN, patterns)
}

func levelStatus(level string) display.Status {
	switch level {
	case zerolog.ErrorLevel.String():
		return display.StatusError
	case zerolog.WarnLevel.String():
		return display.StatusWarning
	default:
		return display.StatusMuted
	}
}

// RuleRef identifies a rule and its action
type RuleRef struct {
	Kind    string `json:"kind" yaml:"kind"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Action  string `json:"action,omitempty" yaml:"action,omitempty"`
	// Canonical is the parsed action written back; empty when it did not parse
	Canonical string `json:"canonical,omitempty" yaml:"canonical,omitempty"`
	File      string `json:"file,omitempty" yaml:"file,omitempty"`
	Line      int    `json:"line" yaml:"line"`
}

// NewRuleRef describes r; canonical is the rule's parsed action, if any
func NewRuleRef(r *rules.Rule, canonical string) RuleRef {
	return RuleRef{
		Kind:      r.Kind(),
		Pattern:   r.Pattern(),
		Action:    r.Action(),
		Canonical: canonical,
		File:      r.File(),
		Line:      r.Line(),
	}
}

func (r RuleRef) location() string {
	if r.File != "" {
		return fmt.Sprintf("%s:%d", r.File, r.Line)
	}
	return fmt.Sprintf("line %d", r.Line)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatCaptures(captures map[string]string) string {
	parts := make([]string, 0, len(captures))
	for _, k := range sortedKeys(captures) {
		parts = append(parts, k+"="+captures[k])
	}
	return strings.Join(parts, " ")
}
