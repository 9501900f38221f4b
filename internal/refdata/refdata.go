// Package refdata bootstraps and loads the persisted reference data:
// one control-template file per sector plus the use-case list.
package refdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/sectorbook/internal/model"
	"github.com/ppiankov/sectorbook/internal/templates"
	"github.com/ppiankov/sectorbook/internal/usecase"
)

// Data is the loaded, read-only reference data for one session.
type Data struct {
	Dir       string
	Templates *templates.Store
	UseCases  *usecase.Registry
}

// Paths returns every reference file path under dir, sectors first.
func Paths(dir string) []string {
	paths := make([]string, 0, len(model.Sectors)+1)
	for _, sector := range model.Sectors {
		paths = append(paths, templates.Path(dir, sector))
	}
	return append(paths, filepath.Join(dir, usecase.FileName))
}

// Ensure writes the built-in defaults for any reference file missing from
// dir. Existing files are never overwritten. Returns the paths it created.
func Ensure(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	var created []string
	for _, sector := range model.Sectors {
		data, err := templates.DefaultJSON(sector)
		if err != nil {
			return created, err
		}
		path := templates.Path(dir, sector)
		wrote, err := writeIfMissing(path, data)
		if err != nil {
			return created, err
		}
		if wrote {
			created = append(created, path)
		}
	}

	path := filepath.Join(dir, usecase.FileName)
	wrote, err := writeIfMissing(path, usecase.DefaultJSON())
	if err != nil {
		return created, err
	}
	if wrote {
		created = append(created, path)
	}
	return created, nil
}

// Load reads and validates the reference files in dir without creating them.
func Load(dir string) (*Data, error) {
	store, err := templates.Load(dir)
	if err != nil {
		return nil, err
	}
	reg, err := usecase.Load(filepath.Join(dir, usecase.FileName))
	if err != nil {
		return nil, err
	}
	return &Data{Dir: dir, Templates: store, UseCases: reg}, nil
}

// Open ensures defaults exist and then loads dir.
func Open(dir string) (*Data, error) {
	if _, err := Ensure(dir); err != nil {
		return nil, err
	}
	return Load(dir)
}

// writeIfMissing writes content to path unless it already exists.
// Returns true if the file was written.
func writeIfMissing(path string, content []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
