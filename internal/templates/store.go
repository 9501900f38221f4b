// Package templates holds the sector -> system type -> risk tier control table
// and resolves TemplateEntry cells from it.
package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ppiankov/sectorbook/internal/model"
)

var (
	// ErrUnsupportedSector is returned for a sector outside model.Sectors.
	ErrUnsupportedSector = errors.New("unsupported sector")
	// ErrConfigNotFound is returned when the sector table has no cell for the
	// requested system type and risk tier.
	ErrConfigNotFound = errors.New("configuration not found for the given system type and risk tier")
)

// Lookuper resolves a template entry. *Store implements it.
type Lookuper interface {
	Lookup(sector model.Sector, systemType model.SystemType, riskTier model.RiskTier) (model.TemplateEntry, error)
}

// Store is a read-only set of sector tables.
type Store struct {
	sectors map[model.Sector]model.SectorTemplates
}

// New builds a store from already decoded sector tables.
func New(sectors map[model.Sector]model.SectorTemplates) *Store {
	s := &Store{sectors: make(map[model.Sector]model.SectorTemplates, len(sectors))}
	for k, v := range sectors {
		s.sectors[k] = v
	}
	return s
}

// Default returns a store backed by the embedded default tables.
func Default() *Store {
	sectors := make(map[model.Sector]model.SectorTemplates, len(builtinSectors))
	for sector, data := range builtinSectors {
		t, err := Parse(data)
		if err != nil {
			panic(fmt.Sprintf("templates: built-in %s table is invalid: %v", sector, err))
		}
		sectors[sector] = t
	}
	return New(sectors)
}

// Load reads every supported sector file from dir.
func Load(dir string) (*Store, error) {
	sectors := make(map[model.Sector]model.SectorTemplates, len(model.Sectors))
	for _, sector := range model.Sectors {
		t, err := LoadFile(Path(dir, sector))
		if err != nil {
			return nil, err
		}
		sectors[sector] = t
	}
	return New(sectors), nil
}

// LoadFile reads and validates a single sector file.
func LoadFile(path string) (model.SectorTemplates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read control templates: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse control templates %s: %w", path, err)
	}
	return t, nil
}

// Parse validates data against the sector schema and decodes it.
func Parse(data []byte) (model.SectorTemplates, error) {
	if err := sectorSchema.Validate(data); err != nil {
		return nil, err
	}
	var t model.SectorTemplates
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup resolves the entry for a sector, system type and risk tier.
// The returned entry owns its slices.
func (s *Store) Lookup(sector model.Sector, systemType model.SystemType, riskTier model.RiskTier) (model.TemplateEntry, error) {
	table, err := s.Sector(sector)
	if err != nil {
		return model.TemplateEntry{}, err
	}
	tiers, ok := table[systemType]
	if !ok {
		return model.TemplateEntry{}, fmt.Errorf("%w: %s/%s/%s", ErrConfigNotFound, sector, systemType, riskTier)
	}
	entry, ok := tiers[riskTier]
	if !ok {
		return model.TemplateEntry{}, fmt.Errorf("%w: %s/%s/%s", ErrConfigNotFound, sector, systemType, riskTier)
	}
	return model.TemplateEntry{
		Controls:         slices.Clone(entry.Controls),
		Validation:       slices.Clone(entry.Validation),
		Monitoring:       slices.Clone(entry.Monitoring),
		IncidentTriggers: slices.Clone(entry.IncidentTriggers),
	}, nil
}

// Sector returns the whole table for one sector.
func (s *Store) Sector(sector model.Sector) (model.SectorTemplates, error) {
	table, ok := s.sectors[sector]
	if !ok {
		return nil, fmt.Errorf("%w %q: choose Healthcare or Finance", ErrUnsupportedSector, sector)
	}
	return table, nil
}

// FileName returns the on-disk file name for a sector's table.
func FileName(sector model.Sector) (string, error) {
	name, ok := fileNames[sector]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnsupportedSector, sector)
	}
	return name, nil
}

// Path joins dir with the sector's file name. It panics on unsupported
// sectors, so callers range over model.Sectors.
func Path(dir string, sector model.Sector) string {
	name, err := FileName(sector)
	if err != nil {
		panic(err)
	}
	return filepath.Join(dir, name)
}

// DefaultJSON returns the embedded default table for a sector, exactly as it
// is written to disk on bootstrap.
func DefaultJSON(sector model.Sector) ([]byte, error) {
	data, ok := builtinSectors[sector]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedSector, sector)
	}
	return data, nil
}
