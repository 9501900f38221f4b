package audit

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormatTimeline(t *testing.T) {
	res, err := Read(writeTestLog(t), Filter{})
	if err != nil {
		t.Fatal(err)
	}
	out := FormatTimeline(res)

	for _, want := range []string{
		"Audit: 2026-03-14 09:00:00",
		"09:00:00",
		"generate_artifacts",
		"DEGRADED",
		"0123456789ab",
		"Summary: 4 entries (1 degraded, 1 failed, 2 ok)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("timeline missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef") {
		t.Error("digest should be shortened")
	}
}

func TestFormatTimelineEmpty(t *testing.T) {
	out := FormatTimeline(&Result{})
	if out != "No audit entries found.\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestFormatJSON(t *testing.T) {
	res, err := Read(writeTestLog(t), Filter{UseCaseID: "FI-LLM-002"})
	if err != nil {
		t.Fatal(err)
	}
	out, err := FormatJSON(res)
	if err != nil {
		t.Fatal(err)
	}
	var back Result
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if back.Summary.Total != 1 || back.Entries[0].RunID != "playbook_20260314_100000" {
		t.Errorf("unexpected result %+v", back)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("a-very-long-run-identifier", 10); got != "a-very-..." {
		t.Errorf("truncate long = %q", got)
	}
}
