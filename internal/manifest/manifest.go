// Package manifest builds and verifies the hash-indexed inventory of the
// artifacts written by a playbook run.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gowebpki/jcs"

	"github.com/ppiankov/sectorbook/internal/model"
)

// FileName is the manifest written alongside the artifacts.
const FileName = "evidence_manifest.json"

// Artifact file names, in manifest order.
const (
	PlaybookFile  = "sector_playbook.json"
	ChecklistFile = "validation_checklist.md"
	KPIsFile      = "monitoring_kpis.json"
	TriggersFile  = "incident_triggers.json"
	SummaryFile   = "executive_summary.md"
	SnapshotFile  = "config_snapshot.json"
)

// ExpectedArtifacts is the fixed record order of every manifest.
var ExpectedArtifacts = []string{
	PlaybookFile,
	ChecklistFile,
	KPIsFile,
	TriggersFile,
	SummaryFile,
	SnapshotFile,
}

const (
	StatusMissing = "MISSING"
	missingNotes  = "File not found or not generated."
	chunkSize     = 8 << 10
)

// Record describes one expected artifact. Present files carry SHA256Hash;
// absent ones carry Status and Notes instead.
type Record struct {
	Filename   string `json:"filename"`
	Filepath   string `json:"filepath"`
	SHA256Hash string `json:"sha256_hash,omitempty"`
	Status     string `json:"status,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Missing reports whether the artifact was absent at build time.
func (r Record) Missing() bool {
	return r.Status == StatusMissing
}

// Manifest is the evidence inventory of one output directory.
type Manifest struct {
	ManifestTimestamp string   `json:"manifest_timestamp"`
	Artifacts         []Record `json:"artifacts"`
}

// Build hashes every name in names under dir, in order, and writes the
// manifest into dir. A nil names uses ExpectedArtifacts. Missing files are
// recorded, not returned as errors; any other read failure aborts the build.
func Build(dir string, names []string, now time.Time) (Manifest, error) {
	m, err := Collect(dir, names, now)
	if err != nil {
		return Manifest{}, err
	}
	if err := Write(dir, m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Collect hashes the artifacts without writing the manifest file.
func Collect(dir string, names []string, now time.Time) (Manifest, error) {
	if names == nil {
		names = ExpectedArtifacts
	}
	m := Manifest{
		ManifestTimestamp: now.UTC().Format(model.TimestampFormat),
		Artifacts:         make([]Record, 0, len(names)),
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		rec := Record{Filename: name, Filepath: path}

		sum, err := HashFile(path)
		switch {
		case err == nil:
			rec.SHA256Hash = sum
		case errors.Is(err, fs.ErrNotExist):
			rec.Status = StatusMissing
			rec.Notes = missingNotes
		default:
			return Manifest{}, fmt.Errorf("hash %s: %w", name, err)
		}
		m.Artifacts = append(m.Artifacts, rec)
	}
	return m, nil
}

// Write stores m as dir/evidence_manifest.json.
func Write(dir string, m Manifest) error {
	data, err := model.MarshalIndent(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Read loads dir/evidence_manifest.json.
func Read(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

// HashFile returns the lowercase hex SHA-256 of the file at path, reading
// it in fixed-size chunks.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	// Wrapping f hides its WriterTo so the chunk buffer is always used.
	if _, err := io.CopyBuffer(h, struct{ io.Reader }{f}, make([]byte, chunkSize)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Digest returns the SHA-256 of the RFC 8785 canonical form of m.
// Two manifests with the same content share a digest regardless of
// indentation or key order on disk.
func Digest(m Manifest) (string, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	canon, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize manifest: %w", err)
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}
