package actions

import "strings"

// Kind is the operation a segment performs on its hierarchy level
type Kind int

const (
	// Rename changes the type (and qualifiers) of an existing level
	Rename Kind = iota
	// Add introduces a new level
	Add
	// Exclude drops an existing level
	Exclude
)

func (k Kind) String() string {
	switch k {
	case Rename:
		return "rename"
	case Add:
		return "add"
	case Exclude:
		return "exclude"
	default:
		return "unknown"
	}
}

// Qualifier is a key/value pair attached to a segment. An empty value removes the qualifier.
type Qualifier struct {
	Key   string
	Value string
}

// Descriptor is the parsed form of one action segment
type Descriptor struct {
	Kind  Kind
	Type  string
	Quals []Qualifier
}

// Qualifier returns the value for key, if present
func (d Descriptor) Qualifier(key string) (string, bool) {
	for _, q := range d.Quals {
		if q.Key == key {
			return q.Value, true
		}
	}
	return "", false
}

// String renders the segment in canonical action syntax
func (d Descriptor) String() string {
	if d.Kind == Exclude {
		return "-"
	}
	var b strings.Builder
	if d.Kind == Add {
		b.WriteByte('+')
	}
	b.WriteString(d.Type)
	for _, q := range d.Quals {
		b.WriteByte('.')
		b.WriteString(q.Key)
		if q.Value != "" {
			b.WriteByte('=')
			b.WriteString(q.Value)
		}
	}
	return b.String()
}

// Source identifies the rule an action was declared by
type Source struct {
	Kind string
	Line int
}
