package gffstruct

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/gffstruct/internal/version"
	"github.com/arthur-debert/gffstruct/pkg/cobrax/topics"
	"github.com/arthur-debert/gffstruct/pkg/config"
	"github.com/arthur-debert/gffstruct/pkg/logging"
	"github.com/arthur-debert/gffstruct/pkg/report"
	"github.com/arthur-debert/gffstruct/pkg/rewrite"
	"github.com/arthur-debert/gffstruct/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// RootTypeName is the type of the synthetic root above rewritten tag paths
const RootTypeName = "seq_region"

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "gffstruct",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(opts.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&opts.format, "format", "o", "", fmt.Sprintf(MsgFlagFormat, strings.Join(ui.Formats(), ", ")))
	flags.StringArrayVarP(&opts.rules, "rules", "r", nil, MsgFlagRules)
	flags.StringVarP(&opts.aliases, "aliases", "a", "", MsgFlagAliases)
	flags.StringSliceVar(&opts.rewriteKinds, "rewrite-kinds", nil, MsgFlagRewrite)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newMatchCmd(opts))
	rootCmd.AddCommand(newRewriteCmd(opts))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if _, err := topics.InitializeWithOptions(rootCmd, helpTopics(), topics.Options{
		Renderer: topicRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "check [rule files...]",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts, args)
			if err != nil {
				return err
			}

			summary := s.engine.Summary()
			summary.Files = s.cfg.Rules.Files
			summary.Aliases = s.cfg.Rules.Aliases

			if err := s.renderer.RenderResult(summary); err != nil {
				return err
			}
			if !summary.OK() {
				return fmt.Errorf(MsgErrCheckFailed, summary.Errors)
			}
			return nil
		},
	}
}

func newMatchCmd(opts *options) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:     "match <tag path>...",
		Short:   MsgMatchShort,
		Long:    MsgMatchLong,
		Example: MsgMatchExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts, nil)
			if err != nil {
				return err
			}
			if _, ok := s.engine.Registry(kind); !ok {
				return fmt.Errorf(MsgErrUnknownKind, kind)
			}

			out := make(report.Matches, 0, len(args))
			for _, tag := range args {
				m, ok := s.engine.Match(kind, tag)
				if !ok {
					m = nil
				}
				out = append(out, report.NewMatch(kind, tag, m, s.engine.Canonical))
			}
			return s.renderer.RenderResult(out)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "SUB", MsgFlagKind)
	return cmd
}

func newRewriteCmd(opts *options) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:     "rewrite <tag path>...",
		Short:   MsgRewriteShort,
		Long:    MsgRewriteLong,
		Example: MsgRewriteExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts, nil)
			if err != nil {
				return err
			}
			if _, ok := s.engine.Registry(kind); !ok {
				return fmt.Errorf(MsgErrUnknownKind, kind)
			}

			out := make(report.Rewrites, 0, len(args))
			for _, tag := range args {
				out = append(out, rewriteTag(s, kind, tag))
			}
			return s.renderer.RenderResult(out)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "SUB", MsgFlagKind)
	return cmd
}

// rewriteTag rewrites a synthetic chain built from tag, one arena per chain
func rewriteTag(s *session, kind, tag string) report.Rewrite {
	data := &rewrite.RulesData{UsedQuals: make(map[string]rewrite.Qualifier)}
	leaf := rewrite.ChainFromTagPath(rewrite.NewArena(), RootTypeName, tag, data, nil)
	before := leaf.TypePath()

	cs, m := s.engine.Rewrite(kind, leaf)

	var ref *report.RuleRef
	if m != nil {
		rule := m.Rule()
		r := report.NewRuleRef(rule, s.engine.Canonical(rule))
		ref = &r
	}
	return report.NewRewrite(kind, before, leaf, ref, cs)
}

func newGrammarCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "grammar",
		Short:   MsgGrammarShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tm := topics.NewWithOptions(helpTopics(), topics.Options{Renderer: topicRenderer()})
			if err := tm.Scan(); err != nil {
				return err
			}
			topic, ok := tm.GetTopic(GrammarTopic)
			if !ok {
				return fmt.Errorf(MsgErrNoTopics)
			}
			fmt.Fprint(cmd.OutOrStdout(), tm.Render(topic))
			return nil
		},
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
				return nil
			}
			cfg, err := loadConfig(cmd, opts, nil)
			if err != nil {
				return err
			}
			out, err := cfg.TOML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Name() == "help" {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf(MsgErrNoTopics)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf(MsgErrUnknownShell, args[0])
		},
	}
}
