package gffstruct

import (
	"fmt"

	"github.com/arthur-debert/gffstruct/pkg/aliases"
	"github.com/arthur-debert/gffstruct/pkg/config"
	"github.com/arthur-debert/gffstruct/pkg/diagnostics"
	"github.com/arthur-debert/gffstruct/pkg/engine"
	"github.com/arthur-debert/gffstruct/pkg/logging"
	"github.com/arthur-debert/gffstruct/pkg/rulefile"
	"github.com/arthur-debert/gffstruct/pkg/rules"
	"github.com/arthur-debert/gffstruct/pkg/ui"
	"github.com/spf13/cobra"
)

// options holds the global flags
type options struct {
	verbosity    int
	configFile   string
	format       string
	rules        []string
	aliases      string
	rewriteKinds []string
}

// overrides maps the flags the user set to configuration keys. files, when
// not empty, replaces rules.files.
func (o *options) overrides(cmd *cobra.Command, files []string) map[string]interface{} {
	out := make(map[string]interface{})
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("format") {
		out["output.format"] = o.format
	}
	if changed("aliases") {
		out["rules.aliases"] = o.aliases
	}
	if changed("rewrite-kinds") {
		out["rules.rewrite"] = o.rewriteKinds
	}
	if changed("verbose") {
		out["logging.verbosity"] = o.verbosity
	}
	switch {
	case len(files) > 0:
		out["rules.files"] = files
	case changed("rules"):
		out["rules.files"] = o.rules
	}
	return out
}

// loadConfig reads the layered configuration. A configured verbosity above
// the flag's raises the log level.
func loadConfig(cmd *cobra.Command, opts *options, files []string) (*config.Config, error) {
	cfg, err := config.Load(config.Options{
		File:      opts.configFile,
		Overrides: opts.overrides(cmd, files),
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	if cfg.Logging.Verbosity > opts.verbosity {
		logging.SetupLoggerWithOutput(cfg.Logging.Verbosity, cmd.ErrOrStderr())
	}
	return cfg, nil
}

// session is everything a rule command works with
type session struct {
	cfg      *config.Config
	engine   *engine.Engine
	renderer ui.Renderer
}

// newSession loads the configuration, the rule files and the alias table,
// then matures the engine
func newSession(cmd *cobra.Command, opts *options, files []string) (*session, error) {
	logger := logging.GetLogger("cli")

	cfg, err := loadConfig(cmd, opts, files)
	if err != nil {
		return nil, err
	}
	if len(cfg.Rules.Files) == 0 {
		return nil, fmt.Errorf(MsgErrNoRuleFiles)
	}

	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf(MsgErrRenderer, err)
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, fmt.Errorf(MsgErrRenderer, err)
	}

	defs, err := rulefile.LoadAll(cfg.Rules.Files...)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadRules, err)
	}

	sink := diagnostics.NewCollector()
	e := engine.New(
		engine.WithSink(sink),
		engine.WithRewriteKinds(cfg.Rules.Rewrite...),
	)
	e.Load(defs)

	var resolver rules.Resolver
	if cfg.Rules.Aliases != "" {
		table, err := aliases.Load(cfg.Rules.Aliases)
		if err != nil {
			return nil, fmt.Errorf(MsgErrLoadAliases, err)
		}
		resolver = table
	}
	if err := e.Mature(resolver); err != nil {
		logger.Debug().Err(err).Msg("Maturation reported errors")
	}

	logger.Info().
		Strs("files", cfg.Rules.Files).
		Str("aliases", cfg.Rules.Aliases).
		Int("diagnostics", sink.Count()).
		Msg("Rule set ready")

	return &session{
		cfg:      cfg,
		engine:   e,
		renderer: renderer,
	}, nil
}
