package rewrite

import (
	"strings"
)

// Handle identifies a node. Handles are issued by an Arena and never reused.
type Handle uint64

// Qualifier is a used qualifier as recorded on the record: the key in its
// original case and the current value.
type Qualifier struct {
	Key   string
	Value string
}

// RulesData is the bookkeeping a matched rule keeps for a record.
// UsedQuals is keyed by lower-cased qualifier key. Only a nil map means
// qualifiers are not tracked and renames leave them alone; an empty map is
// tracked and takes new keys.
type RulesData struct {
	UsedQuals map[string]Qualifier
}

// Node is one level of a matched hierarchy. Nodes are normally created with
// Arena.NewNode; a node built as a struct literal gets its handle the first
// time a rewrite reaches its chain.
type Node struct {
	handle Handle
	arena  *Arena

	// FullTag is the tag path matched for this level
	FullTag string
	// Depth is the number of levels from this node up to the top of the chain
	Depth int
	// Type is the current feature type label
	Type string
	// Parent is shared with other chains until it is copied
	Parent *Node
	// IsLeaf marks the active (deepest) node of its chain
	IsLeaf bool
	// IsCopy marks a private copy that may be changed in place
	IsCopy bool
	// Data is the rule bookkeeping for the record, shared by copies
	Data *RulesData
	// Captures holds the named regex groups of the rule that matched this node
	Captures map[string]string
}

// Handle returns the node's identity
func (n *Node) Handle() Handle { return n.handle }

// Arena returns the arena the node was created in
func (n *Node) Arena() *Arena { return n.arena }

// clone makes a private copy with a fresh handle
func (n *Node) clone() *Node {
	if n.arena == nil {
		adopt(n)
	}
	c := *n
	c.handle = n.arena.next()
	c.IsCopy = true
	return &c
}

// Chain returns the node and its ancestors, deepest first
func (n *Node) Chain() []*Node {
	var out []*Node
	for it := n; it != nil; it = it.Parent {
		out = append(out, it)
	}
	return out
}

// TypePath joins the types of the chain below the root, top level first
func (n *Node) TypePath() string {
	var types []string
	for it := n; it != nil; it = it.Parent {
		if it.Depth > 0 {
			types = append(types, it.Type)
		}
	}
	for i, j := 0, len(types)-1; i < j; i, j = i+1, j-1 {
		types[i], types[j] = types[j], types[i]
	}
	return strings.Join(types, "/")
}

// adopt gives every node of the chain at n that has no arena a handle from the
// first arena found up the chain, or from a new one.
func adopt(n *Node) {
	var a *Arena
	for it := n; it != nil; it = it.Parent {
		if it.arena != nil {
			a = it.arena
			break
		}
	}
	for it := n; it != nil; it = it.Parent {
		if it.arena != nil {
			continue
		}
		if a == nil {
			a = NewArena()
		}
		it.arena = a
		it.handle = a.next()
	}
}

// Arena issues node handles. It is not safe for concurrent use; use one arena per record tree.
type Arena struct {
	last Handle
}

// NewArena creates an empty arena
func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) next() Handle {
	a.last++
	return a.last
}

// NewNode creates a node under parent
func (a *Arena) NewNode(fullTag, typ string, depth int, parent *Node) *Node {
	return &Node{
		handle:  a.next(),
		arena:   a,
		FullTag: fullTag,
		Depth:   depth,
		Type:    typ,
		Parent:  parent,
	}
}

// Issued returns how many handles the arena has handed out
func (a *Arena) Issued() int {
	return int(a.last)
}

// ChainFromTagPath builds a chain for a '/'-separated tag path under a root node
// of type rootType. Each level's type is its tag; the deepest level is the leaf
// and the given captures are attached to it. Depth counts levels below the root.
func ChainFromTagPath(a *Arena, rootType, tagPath string, data *RulesData, captures map[string]string) *Node {
	root := a.NewNode("", rootType, 0, nil)

	var parts []string
	for _, p := range strings.Split(strings.TrimSpace(tagPath), "/") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		root.IsLeaf = true
		root.Data = data
		root.Captures = captures
		return root
	}

	node := root
	for i, p := range parts {
		node = a.NewNode(strings.Join(parts[:i+1], "/"), p, i+1, node)
		node.Data = data
	}
	node.IsLeaf = true
	node.Captures = captures
	return node
}
