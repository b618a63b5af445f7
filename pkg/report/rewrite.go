package report

import (
	"github.com/arthur-debert/gffstruct/pkg/rewrite"
	"github.com/arthur-debert/gffstruct/pkg/ui/display"
)

// NodeChange is one changeset entry
type NodeChange struct {
	Op     string `json:"op" yaml:"op"`
	Handle uint64 `json:"handle" yaml:"handle"`
	Source uint64 `json:"source,omitempty" yaml:"source,omitempty"`
	Type   string `json:"type" yaml:"type"`
	Tag    string `json:"tag" yaml:"tag"`
	Leaf   bool   `json:"leaf,omitempty" yaml:"leaf,omitempty"`
}

// Rewrite is the outcome of rewriting one chain
type Rewrite struct {
	Kind    string       `json:"kind" yaml:"kind"`
	Tag     string       `json:"tag" yaml:"tag"`
	Matched bool         `json:"matched" yaml:"matched"`
	Rule    *RuleRef     `json:"rule,omitempty" yaml:"rule,omitempty"`
	Before  string       `json:"before" yaml:"before"`
	After   string       `json:"after" yaml:"after"`
	Changes []NodeChange `json:"changes,omitempty" yaml:"changes,omitempty"`
}

// NewRewrite describes a rewrite of the chain ending at leaf. before is the
// chain's type path taken before the rewrite; rule may be nil when nothing matched.
func NewRewrite(kind, before string, leaf *rewrite.Node, rule *RuleRef, cs *rewrite.Changeset) Rewrite {
	out := Rewrite{
		Kind:    kind,
		Tag:     leaf.FullTag,
		Matched: rule != nil,
		Rule:    rule,
		Before:  before,
	}
	if active := cs.ActiveLeaf(leaf); active != nil {
		out.After = active.TypePath()
	}
	for _, h := range cs.Handles() {
		r := cs.Get(h)
		change := NodeChange{
			Op:     r.Op.String(),
			Handle: uint64(h),
			Type:   r.Node.Type,
			Tag:    r.Node.FullTag,
			Leaf:   r.Node.IsLeaf,
		}
		if r.Op == rewrite.Copy {
			change.Source = uint64(r.Source)
		}
		out.Changes = append(out.Changes, change)
	}
	return out
}

// Rewrites is the result of a rewrite command
type Rewrites []Rewrite

// Display implements display.Displayable
func (rs Rewrites) Display() display.Document {
	doc := display.Document{Title: "Rewrites"}
	for _, r := range rs {
		sec := doc.AddSection(r.Kind + " " + r.Tag)
		if !r.Matched {
			sec.Add("", "no match", display.StatusMuted)
			continue
		}
		sec.Add("rule", r.Rule.Pattern+" -> "+r.Rule.Action+" ("+r.Rule.location()+")", display.StatusNone)
		sec.Add("before", r.Before, display.StatusNone)
		if r.After == "" {
			sec.Add("after", "(removed)", display.StatusWarning)
		} else {
			sec.Add("after", r.After, display.StatusOK)
		}
		for _, c := range r.Changes {
			sec.Add(c.Op, c.Type+" "+c.Tag, display.StatusMuted)
		}
	}
	return doc
}
