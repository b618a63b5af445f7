// Package aliases expands @NAME tokens in rule patterns into regular expressions.
//
// An alias table is a YAML document mapping alias names to the tag values they
// stand for:
//
//	aliases:
//	  MRNA: [mrna, transcript, lnc_rna]
//	  CDS: [cds]
//
// With that table the pattern `gene/@MRNA/@CDS` resolves to
//
//	(?i)gene/(?P<MRNA>mrna|transcript|lnc_rna)/(?P<CDS>cds)
//
// so the captured values are available to actions as @MRNA and @CDS.
package aliases

import (
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/arthur-debert/gffstruct/pkg/logging"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var (
	tokenPattern = regexp.MustCompile(`@([A-Za-z_][A-Za-z0-9_]*)`)
	namePattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// File is the YAML layout of an alias table
type File struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// Table resolves alias tokens. It implements rules.Resolver.
type Table struct {
	aliases map[string][]string
	logger  zerolog.Logger
}

// New creates a table from name -> alternatives
func New(aliases map[string][]string) (*Table, error) {
	t := &Table{
		aliases: make(map[string][]string, len(aliases)),
		logger:  logging.GetLogger("aliases"),
	}
	for name, alts := range aliases {
		if err := t.Define(name, alts...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Define adds or replaces an alias
func (t *Table) Define(name string, alternatives ...string) error {
	if !namePattern.MatchString(name) {
		return errors.Newf(errors.ErrAliasInvalid, "invalid alias name %q", name).
			WithDetail("alias", name)
	}

	var alts []string
	seen := make(map[string]bool)
	for _, a := range alternatives {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		alts = append(alts, a)
	}
	if len(alts) == 0 {
		return errors.Newf(errors.ErrAliasInvalid, "alias %q has no values", name).
			WithDetail("alias", name)
	}

	t.aliases[name] = alts
	return nil
}

// Names returns the defined alias names, sorted
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.aliases))
	for name := range t.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values returns the alternatives of an alias
func (t *Table) Values(name string) ([]string, bool) {
	alts, ok := t.aliases[name]
	return alts, ok
}

// Resolve expands the defined aliases of pattern into a case-insensitive regex.
//
// It returns the pattern unchanged when no defined alias occurs in it, and
// ok == false when one alias occurs twice (a capture group name can only be
// used once).
func (t *Table) Resolve(pattern string) (string, bool) {
	locs := tokenPattern.FindAllStringSubmatchIndex(pattern, -1)

	var b strings.Builder
	used := make(map[string]bool)
	last := 0
	expanded := false
	for _, loc := range locs {
		name := pattern[loc[2]:loc[3]]
		alts, ok := t.aliases[name]
		if !ok {
			continue
		}
		if used[name] {
			t.logger.Debug().
				Str("pattern", pattern).
				Str("alias", name).
				Msg("Alias used more than once")
			return "", false
		}
		used[name] = true

		if !expanded {
			b.WriteString("(?i)")
			expanded = true
		}
		b.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		b.WriteString("(?P<")
		b.WriteString(name)
		b.WriteString(">")
		for i, a := range alts {
			if i > 0 {
				b.WriteByte('|')
			}
			b.WriteString(regexp.QuoteMeta(a))
		}
		b.WriteString(")")
		last = loc[1]
	}

	if !expanded {
		return pattern, true
	}
	b.WriteString(regexp.QuoteMeta(pattern[last:]))
	return b.String(), true
}

// Parse reads an alias table from YAML
func Parse(r io.Reader) (*Table, error) {
	var f File
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse alias table")
	}
	return New(f.Aliases)
}

// Load reads an alias table from a YAML file
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "alias file %s not found", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot open alias file %s", path).
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	t, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err), "cannot load alias file %s", path).
			WithDetail("path", path)
	}
	t.logger.Debug().
		Str("path", path).
		Int("aliases", len(t.aliases)).
		Msg("Loaded alias table")
	return t, nil
}
