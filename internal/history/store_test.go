package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func entry(runID string, at time.Time) Entry {
	return Entry{
		RunID:          runID,
		UseCaseID:      "HC-ML-001",
		Sector:         "Healthcare",
		SystemType:     "ML",
		RiskTier:       "High",
		Status:         StatusOK,
		OutputDir:      "reports/" + runID,
		ManifestDigest: "abc123",
		CreatedAt:      at,
	}
}

func TestRecordAssignsUUID(t *testing.T) {
	s := openTemp(t)
	e, err := s.Record(context.Background(), entry("playbook_20260314_092653", time.Time{}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", e.ID, err)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt not filled")
	}
}

func TestGetRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 14, 9, 26, 53, 123_000_000, time.UTC)
	stored, err := s.Record(ctx, entry("playbook_20260314_092653", at))
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "playbook_20260314_092653")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(stored, got); diff != "" {
		t.Errorf("round trip (-stored +got):\n%s", diff)
	}
}

func TestGetUnknown(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"run_a", "run_b", "run_c"} {
		if _, err := s.Record(ctx, entry(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, e := range all {
		ids = append(ids, e.RunID)
	}
	if diff := cmp.Diff([]string{"run_c", "run_b", "run_a"}, ids); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}

	two, _ := s.List(ctx, 2)
	if len(two) != 2 || two[0].RunID != "run_c" {
		t.Errorf("limited list = %+v", two)
	}
}

func TestListOrdersWithinOneSecond(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	second := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	// Inserted out of time order so rowid cannot decide the result.
	for _, e := range []Entry{
		entry("run_late", second.Add(510*time.Millisecond)),
		entry("run_mid", second.Add(500*time.Millisecond)),
		entry("run_whole", second),
	} {
		if _, err := s.Record(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, e := range all {
		ids = append(ids, e.RunID)
	}
	if diff := cmp.Diff([]string{"run_late", "run_mid", "run_whole"}, ids); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if !all[1].CreatedAt.Equal(second.Add(500 * time.Millisecond)) {
		t.Errorf("created_at round trip = %s", all[1].CreatedAt)
	}
}

func TestDuplicateRunIDRejected(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	if _, err := s.Record(ctx, entry("dup", time.Now())); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Record(ctx, entry("dup", time.Now())); err == nil {
		t.Fatal("expected unique constraint error")
	}
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Record(context.Background(), entry("kept", time.Now())); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Get(context.Background(), "kept"); err != nil {
		t.Errorf("row lost across reopen: %v", err)
	}
}
