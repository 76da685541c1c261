// Package config loads per-project slang.toml settings (spec §6's
// "Persisted state"/project configuration surface): which .tok/.syn files
// a project uses by default and REPL preferences, so cmd/slang need not
// always be invoked with explicit --tok/--syn flags.
//
// Grounded on the teacher's internal/tqw TOML-based resource file loading
// (BurntSushi/toml decode of a typed struct with `toml:"..."` tags), pared
// down from tqw's manifest/recursive-include machinery since a slang
// project has exactly one config file with no nested includes.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds one project's slang.toml settings. Every field is optional;
// an absent or empty value means "use the built-in default" (cmd/slang
// resolves the final path/flag precedence itself).
type Config struct {
	// TokFile is the project's lexer specification path, relative to the
	// config file's directory.
	TokFile string `toml:"tok_file"`

	// SynFile is the project's grammar specification path, relative to the
	// config file's directory.
	SynFile string `toml:"syn_file"`

	// ReplHistorySize is decoded from the file but nothing reads it; the
	// REPL's exec-list is not bounded by it and nothing is evicted.
	ReplHistorySize int `toml:"repl_history_size"`
}

// defaultConfigFile is looked for in the current working directory when no
// explicit path is given.
const defaultConfigFile = "slang.toml"

// Load reads and parses a slang.toml file. If path is empty, it looks for
// defaultConfigFile in the current directory; if that doesn't exist
// either, Load returns a zero-value Config (every default then comes from
// cmd/slang's own fallbacks) rather than an error, since a project config
// file is optional.
func Load(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
		if _, err := os.Stat(path); err != nil {
			return Config{}, nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
