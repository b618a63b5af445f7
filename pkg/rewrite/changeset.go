package rewrite

import "fmt"

// Op is what the caller must do with a node
type Op int

const (
	// Keep leaves the node as it is
	Keep Op = iota
	// Copy introduces a new node in place of, or next to, its source
	Copy
	// Delete removes the node from the tree
	Delete
)

func (o Op) String() string {
	switch o {
	case Keep:
		return "keep"
	case Copy:
		return "copy"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Replacement is one changeset entry
type Replacement struct {
	Op Op
	// Node is the new node for Copy and the removed node for Delete
	Node *Node
	// Source is the handle the copy was made from
	Source Handle
}

// Changeset lists the node copies and deletions produced by one rewrite.
// Deleted nodes are keyed by their own handle, copies by the new node's handle
// with Source naming the original. Get on an original that was copied but not
// deleted returns Keep; ReplacementFor finds its copy.
type Changeset struct {
	entries map[Handle]Replacement
	order   []Handle
}

// NewChangeset returns an empty changeset
func NewChangeset() *Changeset {
	return &Changeset{entries: make(map[Handle]Replacement)}
}

func (c *Changeset) put(h Handle, r Replacement) {
	if _, ok := c.entries[h]; !ok {
		c.order = append(c.order, h)
	}
	c.entries[h] = r
}

// markDeleted records n for deletion. A copy made earlier in the same rewrite
// never reached the tree, so it is dropped instead.
func (c *Changeset) markDeleted(n *Node) {
	if r, ok := c.entries[n.handle]; ok && r.Op == Copy {
		c.drop(n.handle)
		return
	}
	c.put(n.handle, Replacement{Op: Delete, Node: n, Source: n.handle})
}

func (c *Changeset) drop(h Handle) {
	delete(c.entries, h)
	for i, o := range c.order {
		if o == h {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Changeset) addCopy(n *Node, source Handle) {
	c.put(n.handle, Replacement{Op: Copy, Node: n, Source: source})
}

// Get returns the entry for h; handles not in the changeset are Keep
func (c *Changeset) Get(h Handle) Replacement {
	if c == nil {
		return Replacement{Op: Keep}
	}
	if r, ok := c.entries[h]; ok {
		return r
	}
	return Replacement{Op: Keep}
}

// ReplacementFor returns the copy made from orig in this changeset
func (c *Changeset) ReplacementFor(orig Handle) (Replacement, bool) {
	if c == nil {
		return Replacement{Op: Keep}, false
	}
	for _, h := range c.order {
		if r := c.entries[h]; r.Op == Copy && r.Source == orig {
			return r, true
		}
	}
	return Replacement{Op: Keep}, false
}

// Has reports whether h has an entry
func (c *Changeset) Has(h Handle) bool {
	if c == nil {
		return false
	}
	_, ok := c.entries[h]
	return ok
}

// Len returns the number of entries
func (c *Changeset) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Empty reports whether the rewrite changed nothing structurally
func (c *Changeset) Empty() bool {
	return c.Len() == 0
}

// Handles returns the entry keys in the order they were produced
func (c *Changeset) Handles() []Handle {
	if c == nil {
		return nil
	}
	out := make([]Handle, len(c.order))
	copy(out, c.order)
	return out
}

// Deleted returns the handles of nodes to remove
func (c *Changeset) Deleted() []Handle {
	var out []Handle
	for _, h := range c.Handles() {
		if c.entries[h].Op == Delete {
			out = append(out, h)
		}
	}
	return out
}

// Copies returns the new nodes, in the order they were made
func (c *Changeset) Copies() []*Node {
	var out []*Node
	for _, h := range c.Handles() {
		if r := c.entries[h]; r.Op == Copy {
			out = append(out, r.Node)
		}
	}
	return out
}

// ActiveLeaf returns the node that carries the leaf role once the changeset is
// applied to the chain ending at orig: the last copy marked as leaf, else orig
// unless it is deleted. It returns nil when the chain lost its leaf.
func (c *Changeset) ActiveLeaf(orig *Node) *Node {
	copies := c.Copies()
	for i := len(copies) - 1; i >= 0; i-- {
		if copies[i].IsLeaf {
			return copies[i]
		}
	}
	if c.Get(orig.handle).Op == Delete {
		return nil
	}
	return orig
}

func (c *Changeset) String() string {
	return fmt.Sprintf("changeset: %d copied, %d deleted", len(c.Copies()), len(c.Deleted()))
}
