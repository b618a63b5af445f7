// Package xml provides machine-readable XML output.
//
// Results are first reduced to their JSON shape so field names follow the
// same json tags as the JSON and YAML outputs. Objects become elements named
// after their keys (keys that are not valid XML names become <entry key="...">),
// arrays become repeated <item> elements and scalars become text.
package xml

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"

	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/beevik/etree"
)

// RootTag names the document element of every rendered value
const RootTag = "gffstruct"

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// Renderer provides XML output for machine consumption
type Renderer struct {
	output io.Writer
}

// New creates a new XML renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as XML
func (r *Renderer) RenderResult(result interface{}) error {
	tree, err := Tree(result)
	if err != nil {
		return err
	}
	return r.write(tree)
}

// RenderError renders an error as XML
func (r *Renderer) RenderError(err error) error {
	doc := newDocument()
	el := doc.Root().CreateElement("error")
	el.CreateAttr("code", string(errors.GetErrorCode(err)))
	el.CreateElement("message").SetText(err.Error())
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		d := el.CreateElement("details")
		if err := appendValue(d, normalizeDetails(details)); err != nil {
			return err
		}
	}
	return r.write(doc)
}

// RenderMessage renders a simple message as XML
func (r *Renderer) RenderMessage(msg string) error {
	doc := newDocument()
	doc.Root().CreateElement("message").SetText(msg)
	return r.write(doc)
}

func (r *Renderer) write(doc *etree.Document) error {
	doc.Indent(2)
	_, err := doc.WriteTo(r.output)
	return err
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateElement(RootTag)
	return doc
}

// Tree converts v into an XML document rooted at RootTag
func Tree(v interface{}) (*etree.Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode result")
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot decode result")
	}

	doc := newDocument()
	if err := appendValue(doc.Root(), generic); err != nil {
		return nil, err
	}
	return doc, nil
}

func appendValue(parent *etree.Element, v interface{}) error {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			var child *etree.Element
			if namePattern.MatchString(k) {
				child = parent.CreateElement(k)
			} else {
				child = parent.CreateElement("entry")
				child.CreateAttr("key", k)
			}
			if err := appendValue(child, val[k]); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, item := range val {
			if err := appendValue(parent.CreateElement("item"), item); err != nil {
				return err
			}
		}
	case string:
		parent.SetText(val)
	case bool, float64:
		parent.SetText(fmt.Sprint(val))
	default:
		return errors.Newf(errors.ErrInternal, "unsupported value %T", v)
	}
	return nil
}

// normalizeDetails round-trips details through JSON so that numbers and
// nested values have the shapes appendValue handles
func normalizeDetails(details map[string]interface{}) interface{} {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Sprint(details)
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Sprint(details)
	}
	return out
}
