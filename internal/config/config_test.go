package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	if cfg.DataDir != "data" || cfg.OutputDir != "reports" {
		t.Errorf("unexpected dirs: %+v", cfg)
	}
	if cfg.RiskLead != "Dr. Evelyn Reed" {
		t.Errorf("RiskLead = %q", cfg.RiskLead)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should give defaults (-want +got):\n%s", diff)
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := writeConfig(t, "output_dir: /tmp/out\nlog:\n  format: json\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}
	if cfg.Log.Level != "info" || cfg.DataDir != "data" {
		t.Errorf("unset fields lost their defaults: %+v", cfg)
	}
}

func TestLoadDisablesHistory(t *testing.T) {
	cfg, err := Load(writeConfig(t, "history_db: \"\"\naudit_log: \"\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HistoryDB != "" || cfg.AuditLog != "" {
		t.Errorf("expected history and audit disabled: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, content := range map[string]string{
		"level":  "log:\n  level: loud\n",
		"format": "log:\n  format: xml\n",
		"data":   "data_dir: \"\"\n",
		"syntax": "output_dir: [unterminated\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDefaultYAMLMatchesDefault(t *testing.T) {
	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(DefaultYAML()), cfg); err != nil {
		t.Fatalf("DefaultYAML does not parse: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("DefaultYAML drifted from Default (-want +got):\n%s", diff)
	}
}
