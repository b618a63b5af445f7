package actions

import "strings"

// Action is a parsed action string. An invalid action has no segments and
// applying it is a no-op.
type Action struct {
	raw        string
	src        Source
	segments   []Descriptor
	additions  int
	exclusions int
	err        error
}

// Valid reports whether parsing and validation succeeded
func (a *Action) Valid() bool {
	return a != nil && a.err == nil && len(a.segments) > 0
}

// Err returns the reason an action is invalid
func (a *Action) Err() error {
	if a == nil {
		return nil
	}
	return a.err
}

// Raw returns the action text as written
func (a *Action) Raw() string {
	if a == nil {
		return ""
	}
	return a.raw
}

// Source returns the declaring rule's kind and line
func (a *Action) Source() Source {
	if a == nil {
		return Source{}
	}
	return a.src
}

// Segments returns the descriptors, shallowest level first
func (a *Action) Segments() []Descriptor {
	if !a.Valid() {
		return nil
	}
	out := make([]Descriptor, len(a.segments))
	copy(out, a.segments)
	return out
}

// Len returns the number of segments
func (a *Action) Len() int {
	if !a.Valid() {
		return 0
	}
	return len(a.segments)
}

// Segment returns segment i, shallowest first
func (a *Action) Segment(i int) Descriptor {
	return a.segments[i]
}

// Additions returns the number of add segments
func (a *Action) Additions() int {
	if !a.Valid() {
		return 0
	}
	return a.additions
}

// Exclusions returns the number of exclude segments
func (a *Action) Exclusions() int {
	if !a.Valid() {
		return 0
	}
	return a.exclusions
}

// RequiredDepth is the number of existing levels the action addresses
func (a *Action) RequiredDepth() int {
	return a.Len() - a.Additions()
}

// String renders the action in canonical syntax; empty for invalid actions
func (a *Action) String() string {
	if !a.Valid() {
		return ""
	}
	parts := make([]string, len(a.segments))
	for i, d := range a.segments {
		parts[i] = d.String()
	}
	return strings.Join(parts, string(segmentSep))
}
