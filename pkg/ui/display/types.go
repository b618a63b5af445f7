// Package display holds the format-neutral document model that text and
// terminal renderers draw.
package display

// Status tags an item for styling
type Status string

const (
	StatusNone    Status = ""
	StatusOK      Status = "ok"
	StatusInfo    Status = "info"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
	StatusMuted   Status = "muted"
)

// Document is a titled list of sections
type Document struct {
	Title    string
	Message  string
	Sections []Section
}

// Section groups items under a heading
type Section struct {
	Title string
	Items []Item
}

// Item is one labelled value. Notes are printed under it, indented.
type Item struct {
	Label  string
	Value  string
	Status Status
	Notes  []string
}

// Displayable is implemented by results that can be drawn as a document
type Displayable interface {
	Display() Document
}

// AddSection appends a section and returns it for filling. The pointer is
// valid until the next AddSection.
func (d *Document) AddSection(title string) *Section {
	d.Sections = append(d.Sections, Section{Title: title})
	return &d.Sections[len(d.Sections)-1]
}

// Add appends an item
func (s *Section) Add(label, value string, status Status, notes ...string) {
	s.Items = append(s.Items, Item{Label: label, Value: value, Status: status, Notes: notes})
}

// LabelWidth is the width of the longest label in the section
func (s Section) LabelWidth() int {
	w := 0
	for _, it := range s.Items {
		if len(it.Label) > w {
			w = len(it.Label)
		}
	}
	return w
}

// Empty reports whether the document has nothing to show
func (d Document) Empty() bool {
	return d.Title == "" && d.Message == "" && len(d.Sections) == 0
}
