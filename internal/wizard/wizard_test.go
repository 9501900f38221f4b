package wizard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func loaded(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	m := New(Options{
		DataDir:   filepath.Join(dir, "data"),
		OutputDir: filepath.Join(dir, "reports"),
		RiskLead:  "Dr. Evelyn Reed",
		Now:       func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) },
	})
	m, _ = send(t, m, m.Init()())
	if m.Err() != nil {
		t.Fatalf("load: %v", m.Err())
	}
	return m
}

func TestLoadBootstrapsData(t *testing.T) {
	m := loaded(t)
	if !strings.Contains(m.View(), "HC-ML-001") {
		t.Errorf("use case list not rendered:\n%s", m.View())
	}
	if _, err := os.Stat(filepath.Join(m.opts.DataDir, "sample_use_cases.json")); err != nil {
		t.Errorf("reference data not bootstrapped: %v", err)
	}
}

func TestGenerateRequiresSelection(t *testing.T) {
	m := loaded(t)
	if m.CanGenerate() {
		t.Fatal("generate enabled before selection")
	}
	m, _ = send(t, m, runes("g"))
	if m.Components() != nil {
		t.Fatal("components generated without selection")
	}
}

func TestSelectGenerateAndGuard(t *testing.T) {
	m := loaded(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	uc, ok := m.Selected()
	if !ok || uc.ID != "HC-ML-001" {
		t.Fatalf("selected = %+v", uc)
	}

	m, _ = send(t, m, runes("g"))
	c := m.Components()
	if c == nil {
		t.Fatal("components not generated")
	}
	if m.Page() != PagePreview {
		t.Errorf("page = %v, want preview", m.Page())
	}
	if !strings.Contains(m.pageContent(), "Clinical override protocol") {
		t.Errorf("preview missing controls:\n%s", m.pageContent())
	}
	if m.CanGenerate() {
		t.Error("generate should be disabled once components exist")
	}
	if !m.CanExport() {
		t.Error("export should be enabled after generation")
	}
}

func TestSelectingAnotherUseCaseResets(t *testing.T) {
	m := loaded(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, runes("g"))
	m, _ = send(t, m, runes("1"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	uc, _ := m.Selected()
	if uc.ID != "FI-LLM-002" {
		t.Fatalf("selected = %s", uc.ID)
	}
	if m.Components() != nil {
		t.Error("components should reset on new selection")
	}
}

func TestExportRunsPipelineOnce(t *testing.T) {
	m := loaded(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, runes("g"))
	m, _ = send(t, m, runes("5"))

	m, cmd := send(t, m, runes("x"))
	if cmd == nil {
		t.Fatal("export returned no command")
	}
	if m.CanExport() {
		t.Error("export should be disabled while running")
	}
	m, _ = send(t, m, cmd())
	if m.Err() != nil {
		t.Fatalf("export: %v", m.Err())
	}
	res := m.Result()
	if res == nil || res.RunID != "playbook_20260314_092653" {
		t.Fatalf("result = %+v", res)
	}
	if _, err := os.Stat(res.ArchivePath); err != nil {
		t.Errorf("archive missing: %v", err)
	}

	_, cmd = send(t, m, runes("x"))
	if cmd != nil {
		t.Error("second export should be a no-op")
	}
}

func TestEditRiskLead(t *testing.T) {
	m := loaded(t)
	m, _ = send(t, m, runes("e"))
	m.lead.SetValue("")
	m, _ = send(t, m, runes("A. Lead"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.editingLead {
		t.Fatal("still editing after enter")
	}
	if m.lead.Value() != "A. Lead" {
		t.Errorf("lead = %q", m.lead.Value())
	}
	if _, ok := m.Selected(); ok {
		t.Error("enter while editing must not select a use case")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, runes("g"))
	if !strings.Contains(m.Components().Summary, "**AI Risk Lead:** A. Lead") {
		t.Error("summary should use the edited lead")
	}
}

func TestPageNavigationWraps(t *testing.T) {
	m := loaded(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Page() != PageExport {
		t.Errorf("page = %v, want export", m.Page())
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Page() != PageUseCase {
		t.Errorf("page = %v, want use case", m.Page())
	}
	if PageChecklist.String() != "Validation Checklist" {
		t.Errorf("title = %q", PageChecklist.String())
	}
}

func TestExportForEarlierSelectionIsDiscarded(t *testing.T) {
	m := loaded(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, runes("g"))
	m, _ = send(t, m, runes("5"))
	m, cmd := send(t, m, runes("x"))
	if cmd == nil {
		t.Fatal("export returned no command")
	}

	// Switch to FI-LLM-002 and generate while the first export is running.
	m, _ = send(t, m, runes("1"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, runes("g"))

	m, _ = send(t, m, cmd())
	uc, _ := m.Selected()
	if uc.ID != "FI-LLM-002" {
		t.Fatalf("selected = %s", uc.ID)
	}
	if m.Result() != nil {
		t.Errorf("result of %s attached to %s", m.Result().UseCase.ID, uc.ID)
	}
	if !m.CanExport() {
		t.Fatal("new selection should still be exportable")
	}

	m, _ = send(t, m, runes("5"))
	m, cmd = send(t, m, runes("x"))
	if cmd == nil {
		t.Fatal("export of the new selection returned no command")
	}
	m, _ = send(t, m, cmd())
	if res := m.Result(); res == nil || res.UseCase.ID != "FI-LLM-002" {
		t.Fatalf("result = %+v", res)
	}
}

func TestExportWritesPreviewedComponents(t *testing.T) {
	m := loaded(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, runes("g"))
	previewed := m.Components().Summary

	// Editing the lead after the preview must not change the export.
	m, _ = send(t, m, runes("1"))
	m, _ = send(t, m, runes("e"))
	m.lead.SetValue("Someone Else")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = send(t, m, runes("5"))
	m, cmd := send(t, m, runes("x"))
	if cmd == nil {
		t.Fatal("export returned no command")
	}
	m, _ = send(t, m, cmd())
	res := m.Result()
	if res == nil {
		t.Fatalf("export failed: %v", m.Err())
	}
	written, err := os.ReadFile(filepath.Join(res.RunDir, "executive_summary.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(written) != previewed {
		t.Errorf("exported summary differs from preview:\n%s", written)
	}
}
