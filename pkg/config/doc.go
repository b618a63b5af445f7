// Package config loads gffstruct settings.
//
// Sources are layered, later ones winning key by key:
//
//  1. embedded defaults
//  2. $XDG_CONFIG_HOME/gffstruct/config.toml
//  3. an explicit file (--config)
//  4. GFFSTRUCT_* environment variables (GFFSTRUCT_RULES_ALIASES -> rules.aliases)
//  5. overrides set by the command line
package config
