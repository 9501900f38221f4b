package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/sectorbook/internal/model"
	"github.com/ppiankov/sectorbook/internal/templates"
	"github.com/ppiankov/sectorbook/internal/usecase"
)

func TestEnsureCreatesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	created, err := Ensure(dir)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 files created, got %v", created)
	}
	for _, p := range Paths(dir) {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s not created: %v", p, err)
		}
	}
}

func TestEnsureNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, usecase.FileName)
	custom := []byte(`[{"id": "C-1", "name": "Custom", "sector": "Finance", "system_type": "ML", "risk_tier": "Low"}]`)
	if err := os.WriteFile(path, custom, 0o644); err != nil {
		t.Fatal(err)
	}

	created, err := Ensure(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(created) != 2 {
		t.Errorf("expected only the two sector files to be created, got %v", created)
	}
	data, _ := os.ReadFile(path)
	if string(data) != string(custom) {
		t.Error("existing use-case file was overwritten")
	}

	again, err := Ensure(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Errorf("second Ensure should create nothing, got %v", again)
	}
}

func TestOpenLoadsEverything(t *testing.T) {
	d, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(d.UseCases.List()) != 5 {
		t.Errorf("expected 5 use cases, got %d", len(d.UseCases.List()))
	}
	if _, err := d.Templates.Lookup(model.SectorFinance, model.SystemLLM, model.RiskHigh); err != nil {
		t.Errorf("lookup: %v", err)
	}
}

func TestLoadDoesNotBootstrap(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error loading empty directory")
	}
	if _, err := os.Stat(templates.Path(dir, model.SectorFinance)); !os.IsNotExist(err) {
		t.Error("Load must not create files")
	}
}

func TestLoadRejectsInvalidTemplates(t *testing.T) {
	dir := t.TempDir()
	if _, err := Ensure(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(templates.Path(dir, model.SectorHealthcare), []byte(`{"ML": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected validation error")
	}
}
