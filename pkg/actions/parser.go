// Package actions parses the compact per-level action grammar of rewrite rules.
//
// An action names what happens to each level of the matched hierarchy, from the
// shallowest level to the deepest, separated by '/':
//
//	+ncRNA_gene/miRNA.biotype=miRNA/+exon
//
//   - `-` or an empty segment excludes the level
//   - a leading `+` adds a new level
//   - anything else renames the level
//
// A segment starts with the feature type and may carry qualifiers separated by
// '.' or ',', each of the form key or key=value. An empty value removes the
// qualifier. Types, keys and values of the form @NAME are replaced by regex
// captures when the action is applied.
//
// An action cannot both add and exclude levels.
package actions

import (
	"strings"

	"github.com/arthur-debert/gffstruct/pkg/diagnostics"
	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/arthur-debert/gffstruct/pkg/logging"
)

const (
	segmentSep   = '/'
	addPrefix    = '+'
	excludeMark  = "-"
	qualSeps     = ".,"
	keyValueSep  = '='
	maxKeyValues = 2
)

// scanner walks one segment of an action
type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) advance() byte {
	c := s.peek()
	s.pos++
	return c
}

// until consumes and returns text up to (not including) any byte of stops
func (s *scanner) until(stops string) string {
	start := s.pos
	for !s.eof() && strings.IndexByte(stops, s.src[s.pos]) < 0 {
		s.pos++
	}
	return s.src[start:s.pos]
}

// parser turns a raw action into descriptors
type parser struct {
	raw        string
	pos        int
	additions  int
	exclusions int
}

func (p *parser) parseAction() ([]Descriptor, error) {
	var out []Descriptor
	for index := 0; ; index++ {
		seg := p.nextSegment()
		d, err := p.parseSegment(seg, index)
		if err != nil {
			return nil, err
		}
		out = append(out, d)

		if p.pos >= len(p.raw) {
			return out, nil
		}
		p.pos++
	}
}

func (p *parser) nextSegment() string {
	start := p.pos
	for p.pos < len(p.raw) && p.raw[p.pos] != segmentSep {
		p.pos++
	}
	return p.raw[start:p.pos]
}

func (p *parser) parseSegment(seg string, index int) (Descriptor, error) {
	if strings.TrimSpace(seg) == "" || seg == excludeMark {
		p.exclusions++
		return Descriptor{Kind: Exclude}, nil
	}

	s := &scanner{src: seg}
	d := Descriptor{Kind: Rename}
	if s.peek() == addPrefix {
		s.advance()
		d.Kind = Add
		p.additions++
	}

	d.Type = strings.TrimSpace(s.until(qualSeps))
	if d.Type == "" {
		return Descriptor{}, errors.Newf(errors.ErrActionEmptyType,
			"empty type in segment %d (%q)", index+1, seg).
			WithDetail("segment", index+1)
	}

	d.Quals = parseQualifiers(s)
	return d, nil
}

// parseQualifiers reads the `.k=v,k2` tail of a segment. A repeated key keeps
// its first position and takes the last value.
func parseQualifiers(s *scanner) []Qualifier {
	var quals []Qualifier
	pos := make(map[string]int)
	for !s.eof() {
		s.advance()
		tok := s.until(qualSeps)
		if tok == "" {
			continue
		}
		q := parseQualifier(tok)
		if i, ok := pos[q.Key]; ok {
			quals[i].Value = q.Value
			continue
		}
		pos[q.Key] = len(quals)
		quals = append(quals, q)
	}
	return quals
}

// parseQualifier splits key=value; text after a second '=' is dropped
func parseQualifier(tok string) Qualifier {
	parts := strings.SplitN(tok+string(keyValueSep), string(keyValueSep), maxKeyValues+1)
	return Qualifier{Key: parts[0], Value: parts[1]}
}

// Parse parses a raw action declared by src. Problems are reported to sink and
// leave the returned action invalid; applying an invalid action does nothing.
func Parse(raw string, src Source, sink diagnostics.Sink) *Action {
	sink = diagnostics.OrDefault(sink)
	logger := logging.GetLogger("actions.parser")

	a := &Action{raw: raw, src: src}
	p := &parser{raw: raw}

	segments, err := p.parseAction()
	if err != nil {
		diag := errors.Wrapf(err, errors.ErrActionEmptyType,
			"empty type for action %s of %s at %d", raw, src.Kind, src.Line).
			WithDetails(errors.GetErrorDetails(err)).
			WithDetail("action", raw).
			WithDetail("kind", src.Kind).
			WithDetail("line", src.Line)
		sink.Report(diag)
		a.err = diag
		return a
	}

	if p.additions > 0 && p.exclusions > 0 {
		diag := errors.Newf(errors.ErrActionMixed,
			"action %s of %s at %d has add and exclude operations at the same time. skipping",
			raw, src.Kind, src.Line).
			WithDetail("action", raw).
			WithDetail("kind", src.Kind).
			WithDetail("line", src.Line).
			WithDetail("additions", p.additions).
			WithDetail("exclusions", p.exclusions)
		sink.Report(diag)
		a.err = diag
		return a
	}

	a.segments = segments
	a.additions = p.additions
	a.exclusions = p.exclusions

	logger.Trace().
		Str("action", raw).
		Str("canonical", a.String()).
		Int("segments", len(segments)).
		Int("additions", a.additions).
		Int("exclusions", a.exclusions).
		Msg("Parsed action")
	return a
}
