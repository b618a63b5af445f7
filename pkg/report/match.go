package report

import (
	"github.com/arthur-debert/gffstruct/pkg/rules"
	"github.com/arthur-debert/gffstruct/pkg/ui/display"
)

// Match is the lookup result for one tag path
type Match struct {
	Kind     string            `json:"kind" yaml:"kind"`
	Tag      string            `json:"tag" yaml:"tag"`
	Matched  bool              `json:"matched" yaml:"matched"`
	Regex    bool              `json:"regex,omitempty" yaml:"regex,omitempty"`
	Expr     string            `json:"expr,omitempty" yaml:"expr,omitempty"`
	Captures map[string]string `json:"captures,omitempty" yaml:"captures,omitempty"`
	Rules    []RuleRef         `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// NewMatch describes the lookup of tag. canonical returns the parsed form of a
// rule's action and may be nil.
func NewMatch(kind, tag string, m *rules.Match, canonical func(*rules.Rule) string) Match {
	out := Match{Kind: kind, Tag: tag}
	if m == nil {
		return out
	}
	out.Matched = true
	out.Regex = m.Regex
	out.Expr = m.Expr
	out.Captures = m.Captures
	for _, r := range m.Rules {
		c := ""
		if canonical != nil {
			c = canonical(r)
		}
		out.Rules = append(out.Rules, NewRuleRef(r, c))
	}
	return out
}

// Matches is the result of a match command
type Matches []Match

// Display implements display.Displayable
func (ms Matches) Display() display.Document {
	doc := display.Document{Title: "Matches"}
	for _, m := range ms {
		sec := doc.AddSection(m.Kind + " " + m.Tag)
		if !m.Matched {
			sec.Add("", "no match", display.StatusMuted)
			continue
		}
		if m.Regex {
			sec.Add("regex", m.Expr, display.StatusInfo)
		}
		if len(m.Captures) > 0 {
			sec.Add("captures", formatCaptures(m.Captures), display.StatusNone)
		}
		for i, r := range m.Rules {
			status := display.StatusOK
			label := "rule"
			if i > 0 {
				// duplicates stay listed but only the first is applied
				status = display.StatusMuted
				label = "duplicate"
			}
			var notes []string
			if r.Canonical != "" && r.Canonical != r.Action {
				notes = append(notes, "parsed as "+r.Canonical)
			}
			sec.Add(label, r.Pattern+" -> "+r.Action+" ("+r.location()+")", status, notes...)
		}
	}
	return doc
}
