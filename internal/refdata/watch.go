package refdata

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ppiankov/sectorbook/internal/logging"
)

const debounceDefault = 500 * time.Millisecond

// Watcher reloads the reference data whenever one of its files changes.
// The handler runs on the Run goroutine, so reloads never overlap.
type Watcher struct {
	dir      string
	handler  func(*Data, error)
	debounce time.Duration
	log      *slog.Logger
}

// NewWatcher creates a watcher for dir. handler receives either freshly
// loaded data or the load/validation error.
func NewWatcher(dir string, handler func(*Data, error)) *Watcher {
	return &Watcher{
		dir:      dir,
		handler:  handler,
		debounce: debounceDefault,
		log:      logging.New("refdata"),
	}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the files: editors replace files on save.
	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.dir, err)
	}

	watched := make(map[string]bool)
	for _, p := range Paths(w.dir) {
		watched[filepath.Clean(p)] = true
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.log.Debug("reference file changed", "path", event.Name, "op", event.Op.String())
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			data, err := Load(w.dir)
			if err != nil {
				w.log.Warn("reload failed", "error", err)
			} else {
				w.log.Info("reference data reloaded", "dir", w.dir)
			}
			w.handler(data, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("file watcher error", "error", err)
		}
	}
}
