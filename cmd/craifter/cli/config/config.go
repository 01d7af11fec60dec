// Package config reads craifter's environment configuration.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. CRAIFTER_ROOT.
const Prefix = "craifter"

// Config holds values taken from the environment. Zero values mean "not set";
// callers layer them between command-line flags and the settings file.
type Config struct {
	// Root is the sessions root directory (CRAIFTER_ROOT).
	Root string `split_words:"true"`

	// Shell runs saved commands during playback (CRAIFTER_SHELL).
	Shell string `split_words:"true"`

	// Confirm asks before each executed command (CRAIFTER_CONFIRM).
	Confirm *bool `split_words:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
