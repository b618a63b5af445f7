package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// Isolate points the XDG config and state directories at a fresh temp dir,
// so tests never read the user's config or write to their log. It returns
// the temp dir.
func Isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

// CreateFile writes content to dir/name, creating parent directories, and
// returns the path. It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// Rule is one line of a rule file
type Rule struct {
	Pattern string
	Kind    string
	Action  string
}

// RulesFile renders rules as tab separated lines under a header comment
func RulesFile(rules ...Rule) string {
	var b strings.Builder
	b.WriteString("# pattern\tkind\taction\n")
	for _, r := range rules {
		b.WriteString(r.Pattern)
		b.WriteByte('\t')
		b.WriteString(r.Kind)
		if r.Action != "" {
			b.WriteByte('\t')
			b.WriteString(r.Action)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// AliasesFile renders an alias table as YAML, names sorted
func AliasesFile(aliases map[string][]string) string {
	out, err := yaml.Marshal(map[string]map[string][]string{"aliases": aliases})
	if err != nil {
		panic(err)
	}
	return string(out)
}
