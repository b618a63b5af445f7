package gffstruct

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Check and exercise GFF3 hierarchy rewrite rules"
	MsgCheckShort      = "Load rule files and report the rule set"
	MsgMatchShort      = "Show which rules match tag paths"
	MsgRewriteShort    = "Apply matching actions to synthetic tag paths"
	MsgGrammarShort    = "Show the action grammar reference"
	MsgConfigShort     = "Print the configuration in effect"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "gffstruct %s (commit %s, built %s)\n"

	// Error messages
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrLoadRules    = "failed to load rules: %w"
	MsgErrLoadAliases  = "failed to load aliases: %w"
	MsgErrNoRuleFiles  = "no rule files given and rules.files is empty"
	MsgErrRenderer     = "failed to create renderer: %w"
	MsgErrCheckFailed  = "rule set has %d errors"
	MsgErrUnknownKind  = "no rules of kind %q loaded"
	MsgErrNoTopics     = "help command not found"
	MsgErrUnknownShell = "unsupported shell: %s"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Read settings from this TOML file"
	MsgFlagFormat   = "Output format (%s)"
	MsgFlagRules    = "Rule file to load (repeatable, replaces rules.files)"
	MsgFlagAliases  = "YAML alias table used to expand @NAME patterns"
	MsgFlagKind     = "Rule kind to look tag paths up in"
	MsgFlagRewrite  = "Kinds whose actions are parsed and applied"
	MsgFlagDefaults = "Print the built-in defaults instead"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/match-long.txt
	msgMatchLongRaw string
	MsgMatchLong    = strings.TrimSpace(msgMatchLongRaw)

	//go:embed msgs/rewrite-long.txt
	msgRewriteLongRaw string
	MsgRewriteLong    = strings.TrimSpace(msgRewriteLongRaw)

	//go:embed msgs/usage-template.txt
	MsgUsageTemplate string
)

// Examples
const (
	MsgCheckExample = `  # Check rule files against an alias table
  gffstruct check --aliases aliases.yaml rules.tsv

  # Report as JSON
  gffstruct check --format json rules.toml`

	MsgMatchExample = `  gffstruct match --rules rules.tsv --aliases aliases.yaml --kind SUB gene/transcript/cds`

	MsgRewriteExample = `  gffstruct rewrite --rules rules.tsv --aliases aliases.yaml gene/transcript/cds`
)
