package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// defaultDocument carries the static defaults. It goes through the same
// parser as a user config file, so the two can never drift in shape.
var defaultDocument = []byte(`respect_gitignore: true
token_estimator: simple
tiktoken_model: gpt-4o
log_level: warn
`)

const envPrefix = "TREECTX_"

// DefaultPath returns the first config file that exists out of .treectx.yml
// in the working directory and ~/.treectx/config.yml, or "" when neither
// does.
func DefaultPath() string {
	if _, err := os.Stat(".treectx.yml"); err == nil {
		return ".treectx.yml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".treectx", "config.yml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// Load builds the effective configuration. An empty configPath means
// "discover": a missing discovered file is fine, a missing explicit one is
// an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultDocument), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultPath()
	}
	if configPath != "" {
		content, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
			}
		case explicit:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// TREECTX_LOG_LEVEL -> log_level. All keys are flat, so stripping the
	// prefix and lowercasing is the whole mapping.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
