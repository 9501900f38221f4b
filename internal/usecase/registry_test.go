package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ppiankov/sectorbook/internal/model"
)

func TestDefaultListOrder(t *testing.T) {
	want := []string{"HC-ML-001", "FI-LLM-002", "HC-LLM-003", "FI-Agent-004", "HC-Agent-005"}
	if diff := cmp.Diff(want, Default().IDs()); diff != "" {
		t.Errorf("id order mismatch (-want +got):\n%s", diff)
	}
}

func TestFindKnown(t *testing.T) {
	uc, err := Default().Find("HC-ML-001")
	if err != nil {
		t.Fatal(err)
	}
	if uc.Sector != model.SectorHealthcare || uc.SystemType != model.SystemML || uc.RiskTier != model.RiskHigh {
		t.Errorf("unexpected classification: %+v", uc)
	}
	if uc.Name != "Patient Triage and Prioritization (ML)" {
		t.Errorf("unexpected name %q", uc.Name)
	}
}

func TestFindUnknownNeverDefaults(t *testing.T) {
	uc, err := Default().Find("XX-000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if uc != (model.UseCase{}) {
		t.Errorf("expected zero use case, got %+v", uc)
	}
}

func TestListReturnsCopy(t *testing.T) {
	r := Default()
	list := r.List()
	list[0].Name = "changed"
	if r.List()[0].Name == "changed" {
		t.Error("registry mutated through List result")
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]model.UseCase{{ID: "A"}, {ID: "A"}})
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestLoadValidatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(`[{"id": "X"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected schema error for incomplete use case")
	}
}

func TestLoadRoundTripsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, DefaultJSON(), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default().List(), r.List()); diff != "" {
		t.Errorf("loaded list differs from defaults:\n%s", diff)
	}
}
