package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"grammar.md":              {Data: []byte("# Grammar\n\nAction segments")},
		"aliases.txt":             {Data: []byte("Alias tables")},
		"option-format.txt":       {Data: []byte("Output formats")},
		"notes.json":              {Data: []byte("{}")},
		"advanced/captures.txt":   {Data: []byte("Capture help")},
		"advanced/ignored.bin":    {Data: []byte{0, 1}},
		"advanced/deep/depth.txt": {Data: []byte("Depth help")},
	}
}

func TestScan(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(topicFS())
		require.NoError(t, tm.Scan())

		assert.Equal(t, []string{"aliases", "captures", "depth", "grammar", "option-format"}, tm.ListTopics())

		topic, ok := tm.GetTopic("grammar")
		require.True(t, ok)
		assert.Equal(t, "# Grammar\n\nAction segments", topic.Content)
		assert.Equal(t, "grammar.md", topic.FilePath)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(topicFS(), Options{Extensions: []string{".json"}})
		require.NoError(t, tm.Scan())
		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})

	t.Run("nil filesystem", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.Scan())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestGetTopic(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.Scan())

	tests := []struct {
		input  string
		want   string
		exists bool
	}{
		{"aliases", "aliases", true},
		{"option-format", "option-format", true},
		{"format", "option-format", true},
		{"--format", "option-format", true},
		{"-format", "option-format", true},
		{"-f", "", false},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, ok := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, ok)
			if ok {
				assert.Equal(t, tt.want, topic.Name)
			}
		})
	}
}

func newApp(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "testapp", Short: "Test application"}
	root.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Check things",
		Run:   func(cmd *cobra.Command, args []string) {},
	})

	_, err := Initialize(root, topicFS())
	require.NoError(t, err)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestHelpCommand(t *testing.T) {
	t.Run("structure", func(t *testing.T) {
		root, _ := newApp(t)
		helpCmd, _, err := root.Find([]string{"help"})
		require.NoError(t, err)
		assert.Equal(t, "help [command or topic]", helpCmd.Use)
	})

	t.Run("topic", func(t *testing.T) {
		root, out := newApp(t)
		root.SetArgs([]string{"help", "aliases"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "Alias tables", out.String())
	})

	t.Run("option topic", func(t *testing.T) {
		root, out := newApp(t)
		root.SetArgs([]string{"help", "format"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "Output formats", out.String())
	})

	t.Run("topic list", func(t *testing.T) {
		root, out := newApp(t)
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())

		got := out.String()
		assert.Contains(t, got, "General topics:\n  aliases\n  captures\n  depth\n  grammar\n")
		assert.Contains(t, got, "Option topics:\n  --format\n")
		assert.Contains(t, got, "Use 'testapp help <topic>'")
	})

	t.Run("command help", func(t *testing.T) {
		root, out := newApp(t)
		root.SetArgs([]string{"help", "check"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Check things")
	})
}

func TestPrintListEmpty(t *testing.T) {
	tm := New(fstest.MapFS{})
	require.NoError(t, tm.Scan())

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	tm.PrintList(cmd, "testapp")
	assert.Equal(t, "No help topics available.\n", out.String())
}

func TestRenderers(t *testing.T) {
	plain := &PlainRenderer{}
	assert.Equal(t, "# Title", plain.Render("# Title", ".md"))

	g := NewPlainGlamourRenderer()
	assert.Equal(t, "plain text", g.Render("plain text", ".txt"))

	rendered := g.Render("# Title\n\nSome *text*.", ".md")
	assert.Contains(t, rendered, "Title")
	assert.Contains(t, rendered, "text")
}
