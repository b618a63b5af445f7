// Package ui renders command results in the format the user asked for.
// Terminal and text output render display documents; json, yaml and xml
// encode results for machines.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/gffstruct/pkg/ui/json"
	"github.com/arthur-debert/gffstruct/pkg/ui/terminal"
	"github.com/arthur-debert/gffstruct/pkg/ui/text"
	"github.com/arthur-debert/gffstruct/pkg/ui/xml"
	"github.com/arthur-debert/gffstruct/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// Resolve turns FormatAuto into a concrete format for output.
// Writers that are not files get plain text.
func Resolve(format Format, output io.Writer) Format {
	if format != FormatAuto {
		return format
	}
	if file, ok := output.(*os.File); ok {
		return DetectFormat(file)
	}
	return FormatText
}

// NewRenderer creates a new renderer based on the specified format
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch Resolve(format, output) {
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	case FormatYAML:
		return yaml.New(output)
	case FormatXML:
		return xml.New(output)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
