// Package rewrite applies parsed actions to the context chain of a matched node.
//
// A context chain is the matched node followed by its ancestors, linked through
// Parent. Applying an action runs two passes over its segments, deepest first:
//
//  1. Substitution: rename segments set the type of their level and merge
//     their qualifiers into the record's used qualifiers. @NAME tokens are
//     replaced by the regex captures of the matched node. Exclude segments
//     only move up the chain; every rename is done before any level is dropped.
//  2. Structure: exclude segments drop their level. Parents and previously
//     visited nodes are copied before they are changed, so chains that share
//     ancestors with this one never see the change.
//
// The result is a Changeset the caller merges into its tree.
package rewrite

import (
	"strings"

	"github.com/arthur-debert/gffstruct/pkg/actions"
	"github.com/arthur-debert/gffstruct/pkg/diagnostics"
	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/arthur-debert/gffstruct/pkg/logging"
	"github.com/rs/zerolog"
)

// Rewriter applies actions to context chains. It keeps no state between calls
// and may be shared by goroutines working on disjoint chains.
type Rewriter struct {
	sink   diagnostics.Sink
	logger zerolog.Logger
}

// New creates a Rewriter reporting to sink
func New(sink diagnostics.Sink) *Rewriter {
	return &Rewriter{
		sink:   diagnostics.OrDefault(sink),
		logger: logging.GetLogger("rewrite.rewriter"),
	}
}

// Apply rewrites the chain ending at node according to act.
//
// An invalid action, a nil node or a chain whose depth differs from the
// number of renamed and excluded segments leaves the chain untouched and
// yields an empty changeset.
func (r *Rewriter) Apply(node *Node, act *actions.Action) *Changeset {
	cs := NewChangeset()
	if node == nil {
		return cs
	}
	if !act.Valid() {
		r.logger.Debug().
			Str("tag", node.FullTag).
			Str("action", act.Raw()).
			Msg("Skipping invalid action")
		return cs
	}

	if required := act.RequiredDepth(); node.Depth != required {
		src := act.Source()
		r.sink.Report(errors.Newf(errors.ErrDepthMismatch,
			"unbalanced number of tag levels %d and actions %d for %s (action %s of %s at %d). skipping",
			node.Depth, required, node.FullTag, act.Raw(), src.Kind, src.Line).
			WithDetail("tag", node.FullTag).
			WithDetail("depth", node.Depth).
			WithDetail("required", required).
			WithDetail("action", act.Raw()).
			WithDetail("kind", src.Kind).
			WithDetail("line", src.Line))
		return cs
	}

	adopt(node)
	r.substitute(node, act)
	r.restructure(node, act, cs)

	r.logger.Debug().
		Str("tag", node.FullTag).
		Str("action", act.String()).
		Int("copied", len(cs.Copies())).
		Int("deleted", len(cs.Deleted())).
		Msg("Applied action")
	return cs
}

// substitute runs the rename pass. Add segments name levels that do not exist
// yet and do not move up the chain.
func (r *Rewriter) substitute(node *Node, act *actions.Action) {
	captures := node.Captures
	it := node
	for i := act.Len() - 1; i >= 0 && it != nil; i-- {
		seg := act.Segment(i)
		switch seg.Kind {
		case actions.Add:
			continue
		case actions.Rename:
			it.Type = fromCaptures(seg.Type, captures)
			mergeQualifiers(it.Data, seg.Quals, captures)
		}
		it = it.Parent
	}
}

// restructure runs the exclude pass, recording copies and deletions in cs
func (r *Rewriter) restructure(node *Node, act *actions.Action, cs *Changeset) {
	var prev *Node
	cur := node
	for i := act.Len() - 1; i >= 0 && cur != nil; i-- {
		seg := act.Segment(i)
		parent := cur.Parent

		if seg.Kind != actions.Exclude {
			prev, cur = cur, parent
			continue
		}

		if cur.IsLeaf {
			deleteIfLeaf(cur, cs)
			if parent != nil {
				parent = copyNode(parent, cs)
				parent.IsLeaf = true
			}
		} else if prev != nil {
			prev = copyNode(prev, cs)
			prev.Parent = parent
		}
		prev, cur = parent, parent
	}
}

// copyNode returns n if it is already a private copy, otherwise a new copy
// registered in cs. A copied leaf is marked for deletion.
func copyNode(n *Node, cs *Changeset) *Node {
	if n.IsCopy {
		return n
	}
	c := n.clone()
	cs.addCopy(c, n.handle)
	deleteIfLeaf(n, cs)
	return c
}

func deleteIfLeaf(n *Node, cs *Changeset) {
	if n.IsLeaf {
		cs.markDeleted(n)
	}
}

// fromCaptures replaces an @NAME token with the capture NAME. Without captures,
// or for tokens shorter than two bytes, x is returned as is. A missing capture
// yields NAME.
func fromCaptures(x string, captures map[string]string) string {
	if len(captures) == 0 || len(x) < 2 || x[0] != '@' {
		return x
	}
	name := x[1:]
	if v, ok := captures[name]; ok {
		return v
	}
	return name
}

// mergeQualifiers folds a segment's qualifiers into the used qualifiers.
// Keys match case-insensitively; an existing key keeps its recorded casing.
func mergeQualifiers(data *RulesData, quals []actions.Qualifier, captures map[string]string) {
	if data == nil || data.UsedQuals == nil {
		return
	}
	for _, q := range quals {
		key := fromCaptures(q.Key, captures)
		value := fromCaptures(q.Value, captures)
		lkey := strings.ToLower(key)

		if existing, ok := data.UsedQuals[lkey]; ok {
			if value == "" {
				delete(data.UsedQuals, lkey)
				continue
			}
			existing.Value = value
			data.UsedQuals[lkey] = existing
			continue
		}
		if value != "" {
			data.UsedQuals[lkey] = Qualifier{Key: key, Value: value}
		}
	}
}
