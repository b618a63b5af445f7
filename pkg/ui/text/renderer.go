// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/gffstruct/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case display.Displayable:
		_, err := io.WriteString(r.output, Document(v.Display()))
		return err
	case display.Document:
		_, err := io.WriteString(r.output, Document(v))
		return err
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// Document formats a document as plain text:
//
//	Title
//	=====
//	message
//
//	Section:
//	  label  value [status]
//	    note
func Document(doc display.Document) string {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(doc.Title + "\n")
		b.WriteString(strings.Repeat("=", len(doc.Title)) + "\n")
	}
	if doc.Message != "" {
		b.WriteString(doc.Message + "\n")
	}

	for _, sec := range doc.Sections {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if sec.Title != "" {
			b.WriteString(sec.Title + ":\n")
		}
		width := sec.LabelWidth()
		for _, it := range sec.Items {
			line := "  "
			if width > 0 {
				line += fmt.Sprintf("%-*s  ", width, it.Label)
			}
			line += it.Value
			if tag := statusTag(it.Status); tag != "" {
				line += " " + tag
			}
			b.WriteString(strings.TrimRight(line, " ") + "\n")
			for _, n := range it.Notes {
				b.WriteString("    " + n + "\n")
			}
		}
	}
	return b.String()
}

func statusTag(s display.Status) string {
	switch s {
	case display.StatusWarning, display.StatusError:
		return "[" + string(s) + "]"
	default:
		return ""
	}
}
