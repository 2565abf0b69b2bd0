// Package config holds structcheck configuration: where local state lives,
// logging behavior, an optional external content catalog, and presentation
// timing. Configuration is read from <data-dir>/config.yaml when present and
// may be overridden by environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all structcheck configuration.
type Config struct {
	// DataDir is where the database, logs, and config live.
	DataDir string `yaml:"data_dir"`

	// ContentPath optionally points at an external catalog YAML. Empty
	// means the embedded catalog.
	ContentPath string `yaml:"content_path"`

	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	DebugMode bool `yaml:"debug_mode"`
}

// UIConfig holds presentation timing. Timing shapes the screen flow only;
// state transitions are correct with every delay at zero.
type UIConfig struct {
	AdvanceDelayMs  int `yaml:"advance_delay_ms"`
	AnalyzingStepMs int `yaml:"analyzing_step_ms"`
}

// AdvanceDelay returns the auto-advance delay after a selection.
func (u UIConfig) AdvanceDelay() time.Duration {
	return time.Duration(u.AdvanceDelayMs) * time.Millisecond
}

// AnalyzingStep returns the delay between analyzing-screen steps.
func (u UIConfig) AnalyzingStep() time.Duration {
	return time.Duration(u.AnalyzingStepMs) * time.Millisecond
}

// Default returns the baseline configuration. The data dir defaults to
// ~/.structcheck, falling back to .structcheck in the working directory when
// the home dir cannot be resolved.
func Default() *Config {
	dir := ".structcheck"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".structcheck")
	}
	return &Config{
		DataDir: dir,
		UI: UIConfig{
			AdvanceDelayMs:  400,
			AnalyzingStepMs: 1200,
		},
	}
}

// Load builds the effective configuration: defaults, then config.yaml from
// the data dir if present, then environment overrides. dataDirFlag, when
// non-empty, wins over everything for the data dir.
func Load(dataDirFlag string) (*Config, error) {
	cfg := Default()
	cfg.applyEnvOverrides()
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}

	path := filepath.Join(cfg.DataDir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Flag and env still win over the file.
	cfg.applyEnvOverrides()
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	return cfg, nil
}

// applyEnvOverrides maps environment variables onto the config.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("STRUCTCHECK_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("STRUCTCHECK_CONTENT"); v != "" {
		c.ContentPath = v
	}
	if v := os.Getenv("STRUCTCHECK_DEBUG"); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
}

// DatabasePath returns the sqlite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "structcheck.db")
}
