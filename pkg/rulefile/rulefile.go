// Package rulefile reads rule definitions from text sources.
//
// Two formats are supported. The line format holds one rule per line:
//
//	gene/@MRNA/@CDS	SUB	gene/-/@CDS
//	mirna	SUB	+ncRNA_gene/miRNA.biotype=miRNA/+exon
//
// Fields are separated by tabs, or by runs of spaces when a line has no tab.
// The action field may be omitted. Lines starting with '#' and blank lines are
// skipped.
//
// Files with a .toml extension hold an array of rule tables:
//
//	[[rule]]
//	pattern = "gene/@MRNA/@CDS"
//	kind = "SUB"
//	action = "gene/-/@CDS"
package rulefile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/arthur-debert/gffstruct/pkg/logging"
	"github.com/pelletier/go-toml/v2"
)

// Definition is one rule as written in a source
type Definition struct {
	Pattern string `toml:"pattern"`
	Kind    string `toml:"kind"`
	Action  string `toml:"action"`
	Line    int    `toml:"line"`
	File    string `toml:"-"`
}

func (d Definition) String() string {
	return fmt.Sprintf("%s:%d: %s %s %s", d.File, d.Line, d.Pattern, d.Kind, d.Action)
}

type tomlFile struct {
	Rules []Definition `toml:"rule"`
}

// Load reads the definitions in path, choosing the format by extension
func Load(path string) ([]Definition, error) {
	logger := logging.GetLogger("rulefile")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "rule file %s not found", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read rule file %s", path).
			WithDetail("path", path)
	}

	var defs []Definition
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		defs, err = ParseTOML(bytes.NewReader(data), path)
	} else {
		defs, err = Parse(bytes.NewReader(data), path)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("rules", len(defs)).
		Msg("Loaded rule file")
	return defs, nil
}

// LoadAll loads each path in turn, keeping the order of files and rules
func LoadAll(paths ...string) ([]Definition, error) {
	var out []Definition
	for _, p := range paths {
		defs, err := Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, defs...)
	}
	return out, nil
}

// Parse reads the line format. name is recorded as the definitions' file.
func Parse(r io.Reader, name string) ([]Definition, error) {
	var defs []Definition

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		fields := splitFields(line)
		if len(fields) < 2 || len(fields) > 3 {
			return nil, errors.Newf(errors.ErrRuleSyntax,
				"%s:%d: expected pattern, kind and optional action, got %d fields", name, lineNo, len(fields)).
				WithDetail("file", name).
				WithDetail("line", lineNo)
		}

		def := Definition{
			Pattern: strings.TrimSpace(fields[0]),
			Kind:    strings.TrimSpace(fields[1]),
			Line:    lineNo,
			File:    name,
		}
		if len(fields) == 3 {
			def.Action = fields[2]
		}
		if err := validate(def); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "reading %s", name).
			WithDetail("file", name)
	}
	return defs, nil
}

// ParseTOML reads the TOML format. A rule without a line gets its position
// in the file, starting at 1.
func ParseTOML(r io.Reader, name string) ([]Definition, error) {
	var f tomlFile
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&f); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleSyntax, "%s: invalid rule table", name).
			WithDetail("file", name)
	}

	for i := range f.Rules {
		def := &f.Rules[i]
		def.File = name
		def.Pattern = strings.TrimSpace(def.Pattern)
		def.Kind = strings.TrimSpace(def.Kind)
		if def.Line == 0 {
			def.Line = i + 1
		}
		if err := validate(*def); err != nil {
			return nil, err
		}
	}
	return f.Rules, nil
}

// splitFields splits on tabs, falling back to runs of spaces for lines
// without a tab. A trailing empty action field is kept so "p\tK\t" has three.
func splitFields(line string) []string {
	if strings.Contains(line, "\t") {
		return strings.Split(line, "\t")
	}
	return strings.Fields(line)
}

func validate(def Definition) error {
	switch {
	case def.Pattern == "":
		return errors.Newf(errors.ErrRuleSyntax, "%s:%d: empty pattern", def.File, def.Line).
			WithDetail("file", def.File).
			WithDetail("line", def.Line)
	case def.Kind == "":
		return errors.Newf(errors.ErrRuleSyntax, "%s:%d: empty kind", def.File, def.Line).
			WithDetail("file", def.File).
			WithDetail("line", def.Line)
	}
	return nil
}
