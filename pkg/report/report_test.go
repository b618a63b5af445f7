package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/gffstruct/pkg/actions"
	"github.com/arthur-debert/gffstruct/pkg/diagnostics"
	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/arthur-debert/gffstruct/pkg/report"
	"github.com/arthur-debert/gffstruct/pkg/rewrite"
	"github.com/arthur-debert/gffstruct/pkg/rules"
	"github.com/arthur-debert/gffstruct/pkg/ui/display"
	"github.com/arthur-debert/gffstruct/pkg/ui/text"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSummary(t *testing.T) {
	s := report.NewSummary([]rules.Stats{
		{Kind: "VALID", ExactPatterns: 1, ExactRules: 2},
		{Kind: "SUB", ExactPatterns: 2, ExactRules: 2, PendingPatterns: 2, PendingRules: 2, MaturedRules: 1},
	})
	assert.Equal(t, "SUB", s.Kinds[0].Kind, "sorted by kind")
	assert.Equal(t, 6, s.Rules)

	s = s.WithDiagnostics([]*errors.Error{
		errors.New(errors.ErrPatternDuplicate, "already seen").WithDetail("line", 4),
		errors.New(errors.ErrPatternSkipped, "skipped"),
		errors.New(errors.ErrRegexCompile, "bad regex"),
		nil,
	})
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 1, s.Warnings)
	assert.False(t, s.OK())
	require.Len(t, s.Diagnostics, 3)
	assert.Equal(t, report.Diagnostic{
		Code: "PATTERN_DUPLICATE", Level: "warn", Message: "already seen",
		Details: map[string]interface{}{"line": 4},
	}, s.Diagnostics[0])
	assert.Equal(t, "debug", s.Diagnostics[1].Level)

	doc := s.Display()
	assert.Equal(t, "Rule set", doc.Title)
	titles := make([]string, 0, len(doc.Sections))
	for _, sec := range doc.Sections {
		titles = append(titles, sec.Title)
	}
	assert.Equal(t, []string{"SUB", "VALID", "Diagnostics"}, titles)
	assert.Equal(t, display.StatusWarning, doc.Sections[0].Items[2].Status, "unmatured alias rules")
	assert.Equal(t, display.StatusError, doc.Sections[2].Items[2].Status)
}

func TestSummaryEncodings(t *testing.T) {
	s := report.NewSummary([]rules.Stats{{Kind: "SUB", ExactPatterns: 1, ExactRules: 1}})
	s.Files = []string{"fix.rules"}

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	var back map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, float64(1), back["rules"])
	assert.NotContains(t, back, "diagnostics")

	out, err := yaml.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), "exact_patterns: 1")
	assert.Contains(t, string(out), "- fix.rules")
}

func TestSummaryText(t *testing.T) {
	s := report.NewSummary([]rules.Stats{{Kind: "SUB", ExactPatterns: 1, ExactRules: 1}})
	s.Files = []string{"fix.rules"}

	assert.Equal(t, `Rule set
========
1 rules in 1 kinds, 0 errors, 0 warnings

Sources:
  rules  fix.rules

SUB:
  exact    1 rules, 1 patterns
  alias    0 rules, 0 patterns
  matured  0
`, text.Document(s.Display()))
}

func TestMatch(t *testing.T) {
	first := rules.NewRuleFrom("fix.rules", "SUB", "gene/@MRNA", "gene/@MRNA.note", 3)
	dup := rules.NewRule("SUB", "gene/@MRNA", "-", 9)

	m := report.NewMatch("SUB", "gene/mrna", &rules.Match{
		Rules:    []*rules.Rule{first, dup},
		Captures: map[string]string{"MRNA": "mrna"},
		Regex:    true,
		Expr:     "(?i)gene/(?P<MRNA>mrna)",
	}, func(r *rules.Rule) string { return r.Action() + "!" })

	assert.True(t, m.Matched)
	require.Len(t, m.Rules, 2)
	assert.Equal(t, report.RuleRef{
		Kind: "SUB", Pattern: "gene/@MRNA", Action: "gene/@MRNA.note",
		Canonical: "gene/@MRNA.note!", File: "fix.rules", Line: 3,
	}, m.Rules[0])

	miss := report.NewMatch("SUB", "exon", nil, nil)
	assert.False(t, miss.Matched)

	var buf bytes.Buffer
	r, _ := text.New(&buf)
	require.NoError(t, r.RenderResult(report.Matches{m, miss}))
	out := buf.String()
	assert.Contains(t, out, "SUB gene/mrna:")
	assert.Contains(t, out, "captures   MRNA=mrna")
	assert.Contains(t, out, "gene/@MRNA -> gene/@MRNA.note (fix.rules:3)")
	assert.Contains(t, out, "parsed as gene/@MRNA.note!")
	assert.Contains(t, out, "duplicate  gene/@MRNA -> - (line 9)")
	assert.Contains(t, out, "SUB exon:\n  no match")
}

func TestRewrite(t *testing.T) {
	leaf := rewrite.ChainFromTagPath(rewrite.NewArena(), "seq_region", "gene/mrna/cds", nil, nil)
	before := leaf.TypePath()

	sink := diagnostics.NewCollectorWithLogger(zerolog.Nop())
	act := actions.Parse("gene/-/cds", actions.Source{Kind: "SUB", Line: 1}, sink)
	cs := rewrite.New(sink).Apply(leaf, act)

	ref := report.NewRuleRef(rules.NewRule("SUB", "gene/mrna/cds", "gene/-/cds", 1), act.String())
	rw := report.NewRewrite("SUB", before, leaf, &ref, cs)

	assert.True(t, rw.Matched)
	assert.Equal(t, "gene/mrna/cds", rw.Before)
	assert.Equal(t, "gene/cds", rw.After)
	require.Len(t, rw.Changes, 2)
	assert.Equal(t, "copy", rw.Changes[0].Op)
	assert.Equal(t, uint64(leaf.Handle()), rw.Changes[0].Source)
	assert.True(t, rw.Changes[0].Leaf)
	assert.Equal(t, "delete", rw.Changes[1].Op)

	none := report.NewRewrite("SUB", "exon", rewrite.ChainFromTagPath(rewrite.NewArena(), "r", "exon", nil, nil), nil, rewrite.NewChangeset())
	assert.False(t, none.Matched)
	assert.Equal(t, "exon", none.After)

	out := text.Document(report.Rewrites{rw, none}.Display())
	assert.Contains(t, out, "after   gene/cds")
	assert.Contains(t, out, "SUB exon:\n  no match")
}
