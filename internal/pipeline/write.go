package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/sectorbook/internal/manifest"
	"github.com/ppiankov/sectorbook/internal/model"
)

// WriteArtifacts writes the six artifacts of c into dir and returns their
// paths in manifest order. JSON uses two-space indentation.
func WriteArtifacts(dir string, c Components) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	files := map[string]func() ([]byte, error){
		manifest.PlaybookFile:  func() ([]byte, error) { return marshal(c.Playbook) },
		manifest.ChecklistFile: func() ([]byte, error) { return []byte(c.Checklist), nil },
		manifest.KPIsFile:      func() ([]byte, error) { return marshal(c.KPIs) },
		manifest.TriggersFile:  func() ([]byte, error) { return marshal(c.Triggers) },
		manifest.SummaryFile:   func() ([]byte, error) { return []byte(c.Summary), nil },
		manifest.SnapshotFile:  func() ([]byte, error) { return marshal(c.Snapshot) },
	}

	paths := make([]string, 0, len(manifest.ExpectedArtifacts))
	for _, name := range manifest.ExpectedArtifacts {
		data, err := files[name]()
		if err != nil {
			return paths, fmt.Errorf("encode %s: %w", name, err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func marshal(v any) ([]byte, error) {
	return model.MarshalIndent(v)
}
