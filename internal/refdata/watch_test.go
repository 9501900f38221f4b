package refdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/sectorbook/internal/usecase"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	if _, err := Ensure(dir); err != nil {
		t.Fatal(err)
	}

	results := make(chan int, 4)
	w := NewWatcher(dir, func(d *Data, err error) {
		if err != nil {
			results <- -1
			return
		}
		results <- len(d.UseCases.List())
	})
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	single := `[{"id": "ONLY", "name": "Only", "sector": "Finance", "system_type": "Agent", "risk_tier": "Low"}]`
	if err := os.WriteFile(filepath.Join(dir, usecase.FileName), []byte(single), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case n := <-results:
		if n != 1 {
			t.Errorf("expected reload with 1 use case, got %d", n)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not reload")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v", err)
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := Ensure(dir); err != nil {
		t.Fatal(err)
	}

	called := make(chan struct{}, 1)
	w := NewWatcher(dir, func(*Data, error) { called <- struct{}{} })
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-called:
		t.Fatal("handler ran for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}
