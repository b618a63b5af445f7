// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/gffstruct/pkg/ui/display"
	"github.com/arthur-debert/gffstruct/pkg/ui/terminal/styles"
)

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output io.Writer
	styles *styles.Registry
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output: w,
		styles: styles.Default(),
	}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case display.Displayable:
		_, err := io.WriteString(r.output, r.Document(v.Display()))
		return err
	case display.Document:
		_, err := io.WriteString(r.output, r.Document(v))
		return err
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, r.styles.Render("Error", "Error: ")+err.Error())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.styles.Render("Info", msg))
	return err
}

// Document formats a document with styles. The layout matches the text
// renderer; status is shown by color instead of a tag.
func (r *Renderer) Document(doc display.Document) string {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(r.styles.Render("Header", doc.Title) + "\n")
	}
	if doc.Message != "" {
		b.WriteString(r.styles.Render("Message", doc.Message) + "\n")
	}

	for i, sec := range doc.Sections {
		if i > 0 || doc.Message != "" {
			b.WriteString("\n")
		}
		if sec.Title != "" {
			b.WriteString(r.styles.Render("Section", sec.Title) + "\n")
		}
		width := sec.LabelWidth()
		for _, it := range sec.Items {
			b.WriteString("  ")
			if width > 0 {
				b.WriteString(r.styles.Render("Label", fmt.Sprintf("%-*s", width, it.Label)) + "  ")
			}
			b.WriteString(r.styles.Render(valueStyle(it.Status), it.Value) + "\n")
			for _, n := range it.Notes {
				b.WriteString(r.styles.Render("Note", n) + "\n")
			}
		}
	}
	return b.String()
}

func valueStyle(s display.Status) string {
	switch s {
	case display.StatusOK:
		return "Success"
	case display.StatusInfo:
		return "Info"
	case display.StatusWarning:
		return "Warning"
	case display.StatusError:
		return "Error"
	case display.StatusMuted:
		return "Muted"
	default:
		return "Value"
	}
}
