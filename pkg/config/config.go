package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/gffstruct/pkg/errors"
	"github.com/arthur-debert/gffstruct/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "GFFSTRUCT_"
	// FileName is the user config file name under the config directory
	FileName = "config.toml"
)

// Config is the resolved configuration
type Config struct {
	Rules   Rules   `koanf:"rules" toml:"rules"`
	Output  Output  `koanf:"output" toml:"output"`
	Logging Logging `koanf:"logging" toml:"logging"`
}

// Rules selects rule sources
type Rules struct {
	Files   []string `koanf:"files" toml:"files"`
	Aliases string   `koanf:"aliases" toml:"aliases"`
	Rewrite []string `koanf:"rewrite" toml:"rewrite"`
}

// Output controls rendering
type Output struct {
	Format string `koanf:"format" toml:"format"`
}

// Logging controls log verbosity
type Logging struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// Options tells Load where to look beyond the defaults
type Options struct {
	// File is an explicit config file; it must exist when set
	File string
	// SkipUser ignores the user config file
	SkipUser bool
	// Overrides are flat "section.key" values applied last
	Overrides map[string]interface{}
}

// UserConfigPath returns the user config file location. XDG_CONFIG_HOME is
// read at call time so it can be changed after start up.
func UserConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = xdg.ConfigHome
	}
	return filepath.Join(base, logging.AppDirName, FileName)
}

// Load builds the configuration from all layers
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config if it exists
	if !opts.SkipUser {
		userPath := UserConfigPath()
		if _, err := os.Stat(userPath); err == nil {
			if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load user config from %s", userPath).
					WithDetail("path", userPath)
			}
			logger.Debug().Str("path", userPath).Msg("Loaded user config")
		}
	}

	// 3. Explicit file
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrapf(err, errors.ErrFileNotFound, "config file %s not found", opts.File).
					WithDetail("path", opts.File)
			}
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat config file %s", opts.File).
				WithDetail("path", opts.File)
		}
		if err := k.Load(file.Provider(opts.File), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", opts.File).
				WithDetail("path", opts.File)
		}
		logger.Debug().Str("path", opts.File).Msg("Loaded config file")
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.normalize()
	return &cfg, nil
}

// normalize trims list entries and clamps verbosity to the supported range
func (c *Config) normalize() {
	c.Rules.Files = compact(c.Rules.Files)
	c.Rules.Rewrite = compact(c.Rules.Rewrite)
	c.Rules.Aliases = strings.TrimSpace(c.Rules.Aliases)
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Logging.Verbosity < 0 {
		c.Logging.Verbosity = 0
	}
	if c.Logging.Verbosity > 3 {
		c.Logging.Verbosity = 3
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// TOML renders the configuration as a config file
func (c *Config) TOML() (string, error) {
	b, err := gotoml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return string(b), nil
}
