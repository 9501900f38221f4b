package audit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/sectorbook/internal/model"
)

const separator = "──────────────────────────────────────────────────────────────────"

// FormatTimeline renders r as a plain-text timeline, one line per entry.
func FormatTimeline(r *Result) string {
	if len(r.Entries) == 0 {
		return "No audit entries found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Audit: %s – %s UTC\n", formatDateTime(r.Summary.FirstTimestamp), formatDateTime(r.Summary.LastTimestamp))
	b.WriteString(separator + "\n")
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%-10s %-18s %-9s %-28s %-14s %s\n",
			formatTimeOnly(e.Timestamp),
			e.Action,
			strings.ToUpper(e.Status),
			truncate(e.RunID, 28),
			truncate(e.UseCaseID, 14),
			shortDigest(e.ManifestDigest))
	}
	b.WriteString(separator + "\n")
	b.WriteString(formatSummary(r.Summary))
	return b.String()
}

// FormatJSON renders r as indented JSON.
func FormatJSON(r *Result) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal audit result: %w", err)
	}
	return string(data), nil
}

func formatDateTime(ts string) string {
	t, err := time.Parse(model.TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatTimeOnly(ts string) string {
	t, err := time.Parse(model.TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05")
}

func formatSummary(s Summary) string {
	statuses := make([]string, 0, len(s.ByStatus))
	for status := range s.ByStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	parts := make([]string, 0, len(statuses))
	for _, status := range statuses {
		parts = append(parts, fmt.Sprintf("%d %s", s.ByStatus[status], status))
	}
	return fmt.Sprintf("Summary: %d entries (%s)\n", s.Total, strings.Join(parts, ", "))
}

func shortDigest(d string) string {
	if len(d) <= 12 {
		return d
	}
	return d[:12]
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
