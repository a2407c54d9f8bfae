package app

import (
	"errors"

	"github.com/vk/toolhub/internal/registry"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DefsPath   string // definition store root, .hcl files
	SourceRoot string // Go source root for the drift scanner
	DataPath   string // badger directory; empty selects in-memory stores

	HealthcheckPort int
	LogFormat       string
	LogLevel        string

	// Mode, Drift and AutoInit override the corresponding environment
	// toggles; zero values defer to the environment, then the defaults.
	Mode     registry.Mode
	Drift    *bool
	AutoInit *bool
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DefsPath == "" {
		return nil, errors.New("DefsPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

// autoInit resolves the auto-initialization toggle with the standard
// precedence: explicit config, then environment, then on.
func (c *Config) autoInit() bool {
	if c.AutoInit != nil {
		return *c.AutoInit
	}
	return registry.AutoInitFromEnv(true)
}
