// Package config loads the sectorbook YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/sectorbook/internal/logging"
)

// DefaultRiskLead names the risk lead in executive summaries.
const DefaultRiskLead = "Dr. Evelyn Reed"

// Log holds logger settings.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the on-disk configuration. Relative paths resolve against the
// working directory.
type Config struct {
	DataDir   string `yaml:"data_dir"`
	OutputDir string `yaml:"output_dir"`
	RiskLead  string `yaml:"risk_lead"`
	// HistoryDB is the sqlite run history; empty disables it.
	HistoryDB string `yaml:"history_db"`
	// AuditLog is the hash-chained JSONL log; empty disables it.
	AuditLog string `yaml:"audit_log"`
	Log      Log    `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:   "data",
		OutputDir: "reports",
		RiskLead:  DefaultRiskLead,
		HistoryDB: filepath.Join("reports", "history.db"),
		AuditLog:  filepath.Join("reports", "audit.jsonl"),
		Log:       Log{Level: "info", Format: "text"},
	}
}

// DefaultPath returns ~/.sectorbook/config.yaml, or "" when the home
// directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sectorbook", "config.yaml")
}

// Load reads the config at path, or DefaultPath when path is empty.
// A missing file yields the defaults; fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the CLI cannot act on.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q: use text or json", c.Log.Format)
	}
	return nil
}

// DefaultYAML is the commented config written by `sectorbook init`.
func DefaultYAML() string {
	return `# sectorbook configuration
# Generated by: sectorbook init

# Directory holding the control templates and sample use cases.
# Missing files are bootstrapped with built-in defaults and never overwritten.
data_dir: data

# Each run writes its artifacts to <output_dir>/<run-id>/ and its archive
# to <output_dir>/<run-id>.zip.
output_dir: reports

# Named in every executive summary.
risk_lead: "Dr. Evelyn Reed"

# SQLite run history. Empty disables it.
history_db: reports/history.db

# Hash-chained JSONL audit log. Empty disables it.
audit_log: reports/audit.jsonl

log:
  level: info   # debug | info | warn | error
  format: text  # text | json
`
}
