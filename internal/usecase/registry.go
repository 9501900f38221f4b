// Package usecase holds the fixed list of named AI initiatives.
package usecase

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/ppiankov/sectorbook/internal/model"
	"github.com/ppiankov/sectorbook/internal/schema"
)

// FileName is the on-disk name of the use-case list.
const FileName = "sample_use_cases.json"

// ErrNotFound is returned by Find for an unknown identifier.
var ErrNotFound = errors.New("use case not found")

//go:embed defaults/sample_use_cases.json
var defaultJSON []byte

var useCaseSchema = schema.MustCompile("use-cases", `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "sector", "system_type", "risk_tier"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string"},
      "description": {"type": "string"},
      "sector": {"type": "string"},
      "system_type": {"type": "string"},
      "risk_tier": {"type": "string"}
    }
  }
}`)

// Registry is an ordered, read-only list of use cases.
type Registry struct {
	cases []model.UseCase
}

// New builds a registry, rejecting duplicate identifiers.
func New(cases []model.UseCase) (*Registry, error) {
	seen := make(map[string]bool, len(cases))
	for _, uc := range cases {
		if seen[uc.ID] {
			return nil, fmt.Errorf("duplicate use case id %q", uc.ID)
		}
		seen[uc.ID] = true
	}
	return &Registry{cases: slices.Clone(cases)}, nil
}

// Default returns the embedded sample use cases.
func Default() *Registry {
	r, err := Parse(defaultJSON)
	if err != nil {
		panic(fmt.Sprintf("usecase: built-in list is invalid: %v", err))
	}
	return r
}

// DefaultJSON returns the embedded list exactly as written on bootstrap.
func DefaultJSON() []byte {
	return defaultJSON
}

// Load reads and validates a use-case file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read use cases: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse use cases %s: %w", path, err)
	}
	return r, nil
}

// Parse validates data against the use-case schema and decodes it.
func Parse(data []byte) (*Registry, error) {
	if err := useCaseSchema.Validate(data); err != nil {
		return nil, err
	}
	var cases []model.UseCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, err
	}
	return New(cases)
}

// List returns every use case in file order.
func (r *Registry) List() []model.UseCase {
	return slices.Clone(r.cases)
}

// Find returns the use case with the given id, or ErrNotFound.
func (r *Registry) Find(id string) (model.UseCase, error) {
	for _, uc := range r.cases {
		if uc.ID == id {
			return uc, nil
		}
	}
	return model.UseCase{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// IDs returns the identifiers in file order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.cases))
	for i, uc := range r.cases {
		ids[i] = uc.ID
	}
	return ids
}
