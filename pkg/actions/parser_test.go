// pkg/actions/parser_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test the action grammar: segment kinds, qualifiers, validation and canonical form

package actions_test

import (
	"testing"

	"github.com/arthur-debert/gffstruct/pkg/actions"
	"github.com/arthur-debert/gffstruct/pkg/diagnostics"
	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var src = actions.Source{Kind: "SUB", Line: 7}

func parse(t *testing.T, raw string) (*actions.Action, *diagnostics.Collector) {
	t.Helper()
	sink := diagnostics.NewCollectorWithLogger(zerolog.Nop())
	return actions.Parse(raw, src, sink), sink
}

func TestParseSegments(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		want       []actions.Descriptor
		additions  int
		exclusions int
	}{
		{
			name:       "single exclude",
			raw:        "-",
			want:       []actions.Descriptor{{Kind: actions.Exclude}},
			exclusions: 1,
		},
		{
			name:       "empty action is one exclude",
			raw:        "",
			want:       []actions.Descriptor{{Kind: actions.Exclude}},
			exclusions: 1,
		},
		{
			name: "rename with alias",
			raw:  "gene/-/@CDS",
			want: []actions.Descriptor{
				{Kind: actions.Rename, Type: "gene"},
				{Kind: actions.Exclude},
				{Kind: actions.Rename, Type: "@CDS"},
			},
			exclusions: 1,
		},
		{
			name: "adds around a rename with qualifier",
			raw:  "+ncRNA_gene/miRNA.biotype=miRNA/+exon",
			want: []actions.Descriptor{
				{Kind: actions.Add, Type: "ncRNA_gene"},
				{Kind: actions.Rename, Type: "miRNA", Quals: []actions.Qualifier{{Key: "biotype", Value: "miRNA"}}},
				{Kind: actions.Add, Type: "exon"},
			},
			additions: 2,
		},
		{
			name: "whitespace only segment excludes",
			raw:  "gene/  /cds",
			want: []actions.Descriptor{
				{Kind: actions.Rename, Type: "gene"},
				{Kind: actions.Exclude},
				{Kind: actions.Rename, Type: "cds"},
			},
			exclusions: 1,
		},
		{
			name: "trailing slash excludes the deepest level",
			raw:  "gene/",
			want: []actions.Descriptor{
				{Kind: actions.Rename, Type: "gene"},
				{Kind: actions.Exclude},
			},
			exclusions: 1,
		},
		{
			name: "comma and dot qualifiers, bare key means remove",
			raw:  " mRNA .product=x,note.,=v",
			want: []actions.Descriptor{
				{Kind: actions.Rename, Type: "mRNA", Quals: []actions.Qualifier{
					{Key: "product", Value: "x"},
					{Key: "note", Value: ""},
					{Key: "", Value: "v"},
				}},
			},
		},
		{
			name: "text after a second equals sign is dropped",
			raw:  "gene.a=b=c",
			want: []actions.Descriptor{
				{Kind: actions.Rename, Type: "gene", Quals: []actions.Qualifier{{Key: "a", Value: "b"}}},
			},
		},
		{
			name: "repeated key keeps first position and last value",
			raw:  "gene.a=1.b=2.a=3",
			want: []actions.Descriptor{
				{Kind: actions.Rename, Type: "gene", Quals: []actions.Qualifier{
					{Key: "a", Value: "3"},
					{Key: "b", Value: "2"},
				}},
			},
		},
		{
			name: "dash with spaces is a rename",
			raw:  " - ",
			want: []actions.Descriptor{{Kind: actions.Rename, Type: "-"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, sink := parse(t, tt.raw)
			require.True(t, a.Valid(), "err: %v", a.Err())
			assert.Equal(t, tt.want, a.Segments())
			assert.Equal(t, tt.additions, a.Additions())
			assert.Equal(t, tt.exclusions, a.Exclusions())
			assert.Equal(t, len(tt.want)-tt.additions, a.RequiredDepth())
			assert.Zero(t, sink.Count())
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code errors.ErrorCode
	}{
		{"add mixed with exclude", "+gene/-", errors.ErrActionMixed},
		{"add mixed with empty segment", "+gene//cds", errors.ErrActionMixed},
		{"empty type after add", "gene/+", errors.ErrActionEmptyType},
		{"qualifiers without type", "gene/.biotype=x", errors.ErrActionEmptyType},
		{"blank type before comma", "  ,x=1", errors.ErrActionEmptyType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, sink := parse(t, tt.raw)

			assert.False(t, a.Valid())
			assert.True(t, errors.IsErrorCode(a.Err(), tt.code), "got %v", a.Err())
			assert.Empty(t, a.Segments())
			assert.Zero(t, a.Additions())
			assert.Zero(t, a.Exclusions())
			assert.Zero(t, a.Len())
			assert.Equal(t, "", a.String())
			assert.Equal(t, tt.raw, a.Raw())

			diags := sink.WithCode(tt.code)
			require.Len(t, diags, 1)
			assert.Equal(t, "SUB", diags[0].Details["kind"])
			assert.Equal(t, 7, diags[0].Details["line"])
		})
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	inputs := []string{
		"-",
		"gene/-/@CDS",
		"+ncRNA_gene/miRNA.biotype=miRNA/+exon",
		"gene,biotype=protein_coding,note/mRNA.product",
		" transcript .a=1.a=2/exon",
		"gene//cds",
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			first, _ := parse(t, raw)
			require.True(t, first.Valid())

			second, _ := parse(t, first.String())
			require.True(t, second.Valid())

			assert.Equal(t, first.Segments(), second.Segments())
			assert.Equal(t, first.Additions(), second.Additions())
			assert.Equal(t, first.Exclusions(), second.Exclusions())
			assert.Equal(t, first.String(), second.String())
		})
	}
}

func TestCanonicalForm(t *testing.T) {
	a, _ := parse(t, "+ncRNA_gene/miRNA,biotype=miRNA,note/+exon")
	assert.Equal(t, "+ncRNA_gene/miRNA.biotype=miRNA.note/+exon", a.String())

	b, _ := parse(t, "gene//cds")
	assert.Equal(t, "gene/-/cds", b.String())
}

func TestDescriptorQualifier(t *testing.T) {
	a, _ := parse(t, "mRNA.product=x.note")
	d := a.Segment(0)

	v, ok := d.Qualifier("product")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	v, ok = d.Qualifier("note")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = d.Qualifier("missing")
	assert.False(t, ok)
}

func TestNilAction(t *testing.T) {
	var a *actions.Action
	assert.False(t, a.Valid())
	assert.NoError(t, a.Err())
	assert.Zero(t, a.RequiredDepth())
	assert.Empty(t, a.String())
	assert.Equal(t, actions.Source{}, a.Source())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "rename", actions.Rename.String())
	assert.Equal(t, "add", actions.Add.String())
	assert.Equal(t, "exclude", actions.Exclude.String())
	assert.Equal(t, "unknown", actions.Kind(42).String())
}
