// Package config loads reposcope settings from .reposcope/config.yml with
// environment variable overrides.
package config

import (
	"fmt"

	"github.com/reposcope/reposcope/internal/depgraph"
)

// Config represents the complete reposcope configuration.
// It can be loaded from .reposcope/config.yml with environment variable
// overrides (REPOSCOPE_*).
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Impact ImpactConfig `yaml:"impact" mapstructure:"impact"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
}

// PathsConfig adds repo-specific patterns on top of the built-in discovery
// and ignore sets.
type PathsConfig struct {
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // extra glob patterns to ignore
}

// ImpactConfig tunes impact analysis.
type ImpactConfig struct {
	MaxHops  int    `yaml:"max_hops" mapstructure:"max_hops"`   // blast-radius bound
	BaseRef  string `yaml:"base_ref" mapstructure:"base_ref"`   // default diff base
	UseStage bool   `yaml:"use_stage" mapstructure:"use_stage"` // analyze staged changes when no refs given
}

// WatchConfig tunes the file watcher.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before re-index
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Ignore: []string{},
		},
		Impact: ImpactConfig{
			MaxHops:  depgraph.DefaultMaxHops,
			BaseRef:  "main",
			UseStage: true,
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}

// Validate checks configuration invariants.
func Validate(cfg *Config) error {
	if cfg.Impact.MaxHops < 1 {
		return fmt.Errorf("impact.max_hops must be at least 1, got %d", cfg.Impact.MaxHops)
	}
	if cfg.Impact.BaseRef == "" {
		return fmt.Errorf("impact.base_ref must not be empty")
	}
	if cfg.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", cfg.Watch.DebounceMS)
	}
	return nil
}
