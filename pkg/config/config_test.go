package config_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/gffstruct/pkg/config"
	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/arthur-debert/gffstruct/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate returns the XDG config home of an isolated test environment
func isolate(t *testing.T) string {
	t.Helper()
	return filepath.Join(testutil.Isolate(t), "config")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	testutil.CreateFile(t, filepath.Dir(path), filepath.Base(path), content)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load(config.Options{})
	require.NoError(t, err)

	assert.Empty(t, cfg.Rules.Files)
	assert.Empty(t, cfg.Rules.Aliases)
	assert.Equal(t, []string{"SUB"}, cfg.Rules.Rewrite)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Equal(t, 0, cfg.Logging.Verbosity)
}

func TestLoadLayers(t *testing.T) {
	home := isolate(t)

	writeFile(t, filepath.Join(home, "gffstruct", "config.toml"), `
[rules]
files = ["user.rules"]
aliases = "user-aliases.yaml"

[output]
format = "json"
`)

	explicit := filepath.Join(t.TempDir(), "project.toml")
	writeFile(t, explicit, `
[rules]
files = ["project.rules", "more.rules"]
rewrite = ["SUB", "FIX"]
`)

	t.Run("user_file", func(t *testing.T) {
		cfg, err := config.Load(config.Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"user.rules"}, cfg.Rules.Files)
		assert.Equal(t, "user-aliases.yaml", cfg.Rules.Aliases)
		assert.Equal(t, "json", cfg.Output.Format)
	})

	t.Run("skip_user_file", func(t *testing.T) {
		cfg, err := config.Load(config.Options{SkipUser: true})
		require.NoError(t, err)
		assert.Empty(t, cfg.Rules.Files)
		assert.Equal(t, "auto", cfg.Output.Format)
	})

	t.Run("explicit_file_over_user", func(t *testing.T) {
		cfg, err := config.Load(config.Options{File: explicit})
		require.NoError(t, err)
		assert.Equal(t, []string{"project.rules", "more.rules"}, cfg.Rules.Files)
		assert.Equal(t, []string{"SUB", "FIX"}, cfg.Rules.Rewrite)
		assert.Equal(t, "user-aliases.yaml", cfg.Rules.Aliases, "untouched keys keep lower layers")
	})

	t.Run("env_over_files", func(t *testing.T) {
		t.Setenv("GFFSTRUCT_OUTPUT_FORMAT", "YAML")
		t.Setenv("GFFSTRUCT_RULES_FILES", "a.rules, b.rules")
		t.Setenv("GFFSTRUCT_LOGGING_VERBOSITY", "2")

		cfg, err := config.Load(config.Options{File: explicit})
		require.NoError(t, err)
		assert.Equal(t, "yaml", cfg.Output.Format)
		assert.Equal(t, []string{"a.rules", "b.rules"}, cfg.Rules.Files)
		assert.Equal(t, 2, cfg.Logging.Verbosity)
	})

	t.Run("overrides_win", func(t *testing.T) {
		t.Setenv("GFFSTRUCT_OUTPUT_FORMAT", "yaml")

		cfg, err := config.Load(config.Options{
			File: explicit,
			Overrides: map[string]interface{}{
				"output.format":     "xml",
				"logging.verbosity": 9,
				"rules.aliases":     "cli.yaml",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "xml", cfg.Output.Format)
		assert.Equal(t, 3, cfg.Logging.Verbosity, "clamped")
		assert.Equal(t, "cli.yaml", cfg.Rules.Aliases)
	})
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	_, err := config.Load(config.Options{File: filepath.Join(t.TempDir(), "missing.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))

	bad := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, bad, "[rules\nfiles = 1")
	_, err = config.Load(config.Options{File: bad})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestUserConfigPath(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, filepath.Join(home, "gffstruct", "config.toml"), config.UserConfigPath())
}

func TestTOML(t *testing.T) {
	isolate(t)
	cfg, err := config.Load(config.Options{})
	require.NoError(t, err)

	out, err := cfg.TOML()
	require.NoError(t, err)
	assert.Contains(t, out, "[rules]")
	assert.Contains(t, out, "SUB")
	assert.Contains(t, out, "auto")
}

func TestDefaultsContent(t *testing.T) {
	assert.Contains(t, config.DefaultsContent(), `rewrite = ["SUB"]`)
}
