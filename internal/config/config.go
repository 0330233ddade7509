// Package config loads treectx settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInvalid reports a configuration value outside its allowed set.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every tunable setting.
//
// Precedence, highest first: environment variables (TREECTX_LOG_LEVEL and
// friends), the YAML config file, built-in defaults.
type Config struct {
	// ProjectsFile is where saved selections live.
	// Defaults to ~/.treectx/projects.json.
	ProjectsFile string `koanf:"projects_file"`

	// RespectGitignore hides gitignored entries from the tree when true.
	RespectGitignore bool `koanf:"respect_gitignore"`

	// TokenEstimator picks the counter for the token breakdown report,
	// either "simple" or "tiktoken". Aggregate totals always use the
	// simple bytes/4 rule regardless of this setting.
	TokenEstimator string `koanf:"token_estimator"`

	// TiktokenModel selects the encoding when TokenEstimator is "tiktoken".
	TiktokenModel string `koanf:"tiktoken_model"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
}

// Validate checks enum-valued fields.
func (c *Config) Validate() error {
	switch c.TokenEstimator {
	case "simple", "tiktoken":
	default:
		return fmt.Errorf("%w: unknown token_estimator %q", ErrInvalid, c.TokenEstimator)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// applyDefaults fills values that need the user's home directory and so
// cannot sit in the static default document.
func applyDefaults(cfg *Config) {
	if cfg.ProjectsFile != "" {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		cfg.ProjectsFile = "treectx-projects.json"
		return
	}
	cfg.ProjectsFile = filepath.Join(home, ".treectx", "projects.json")
}
