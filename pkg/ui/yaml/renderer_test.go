package yaml_test

import (
	"bytes"
	"testing"

	uiyaml "github.com/arthur-debert/gffstruct/pkg/ui/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDocuments(t *testing.T) {
	var buf bytes.Buffer
	r, err := uiyaml.New(&buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(map[string]int{"rules": 2}))
	require.NoError(t, r.RenderMessage("done"))

	assert.Equal(t, "rules: 2\n---\nmessage: done\n", buf.String())
}
