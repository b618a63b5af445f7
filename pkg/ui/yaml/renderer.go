// Package yaml provides machine-readable YAML output. Each rendered value is
// a separate YAML document.
package yaml

import (
	"io"

	"github.com/arthur-debert/gffstruct/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Renderer provides YAML output for machine consumption
type Renderer struct {
	output    io.Writer
	documents int
}

// New creates a new YAML renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// encode writes v as one complete document, separated from earlier ones
func (r *Renderer) encode(v interface{}) error {
	if r.documents > 0 {
		if _, err := io.WriteString(r.output, "---\n"); err != nil {
			return err
		}
	}
	encoder := yaml.NewEncoder(r.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	r.documents++
	return encoder.Close()
}

// RenderResult renders any result type as YAML
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encode(result)
}

// RenderError renders an error as YAML
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]interface{}{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		errorObj["details"] = details
	}
	return r.encode(errorObj)
}

// RenderMessage renders a simple message as YAML
func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}
