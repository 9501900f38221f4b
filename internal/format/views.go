package format

import (
	"fmt"
	"strings"

	"github.com/ppiankov/sectorbook/internal/history"
	"github.com/ppiankov/sectorbook/internal/manifest"
	"github.com/ppiankov/sectorbook/internal/model"
)

// UseCases lists use cases in registry order.
func UseCases(cases []model.UseCase, m Mode) string {
	t := NewTable(m)
	t.Header("ID", "Name", "Sector", "Type", "Risk")
	t.Columns(Column{Number: 2, MaxWidth: 48})
	for _, uc := range cases {
		t.Row(uc.ID, uc.Name, uc.Sector, uc.SystemType, uc.RiskTier)
	}
	t.Footer("", fmt.Sprintf("%d use cases", len(cases)), "", "", "")
	return t.String()
}

// Entry renders one template cell as a numbered table per list.
func Entry(e model.TemplateEntry, m Mode) string {
	sections := []struct {
		title string
		items []string
	}{
		{"Controls", e.Controls},
		{"Validation", e.Validation},
		{"Monitoring", e.Monitoring},
		{"Incident triggers", e.IncidentTriggers},
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		t := NewTable(m)
		t.Header("#", s.title)
		t.Columns(Column{Number: 1, Right: true})
		for j, item := range s.items {
			t.Row(j+1, item)
		}
		b.WriteString(t.String())
	}
	b.WriteString("\n")
	return b.String()
}

// History lists recorded runs, newest first.
func History(entries []history.Entry, m Mode) string {
	t := NewTable(m)
	t.Header("Run", "Use case", "Sector", "Type", "Risk", "Status", "Digest", "Created")
	for _, e := range entries {
		t.Row(e.RunID, e.UseCaseID, e.Sector, e.SystemType, e.RiskTier,
			e.Status, Truncate(e.ManifestDigest, 15), e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return t.String()
}

// Manifest lists the records of an evidence manifest.
func Manifest(man manifest.Manifest, m Mode) string {
	t := NewTable(m)
	t.Header("Artifact", "SHA-256", "Status")
	for _, r := range man.Artifacts {
		status := "present"
		if r.Missing() {
			status = r.Status
		}
		t.Row(r.Filename, r.SHA256Hash, status)
	}
	return t.String()
}

// Verify lists the per-artifact outcome of a manifest check.
func Verify(res manifest.VerifyResult, m Mode) string {
	t := NewTable(m)
	t.Header("Artifact", "Result", "Detail")
	for _, c := range res.Checks {
		detail := c.Detail
		if c.Status == manifest.CheckMismatch {
			detail = fmt.Sprintf("expected %s got %s", Truncate(c.Expected, 15), Truncate(c.Actual, 15))
		}
		t.Row(c.Filename, fmt.Sprintf("%s %s", BoolMark(c.Status == manifest.CheckOK || c.Status == manifest.CheckAbsent), c.Status), detail)
	}
	return t.String()
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// BoolMark returns "✓" for true and "✗" for false.
func BoolMark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
