package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/sectorbook/internal/archive"
	"github.com/ppiankov/sectorbook/internal/audit"
	"github.com/ppiankov/sectorbook/internal/history"
	"github.com/ppiankov/sectorbook/internal/logging"
	"github.com/ppiankov/sectorbook/internal/manifest"
	"github.com/ppiankov/sectorbook/internal/refdata"
)

// Options configures a run.
type Options struct {
	DataDir   string
	OutputDir string
	UseCaseID string
	RiskLead  string

	// Data is used instead of loading DataDir when set.
	Data *refdata.Data
	// Components are written as-is instead of regenerated when they belong
	// to the requested use case, so an export matches what was previewed.
	Components *Components
	// DryRun generates components in memory only: no files, manifest,
	// archive, history or audit entries.
	DryRun  bool
	Archive bool

	History *history.Store
	Audit   *audit.Log

	// Now defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of a run.
type Result struct {
	RunID   string `json:"run_id"`
	TraceID string `json:"trace_id"`
	Status  string `json:"status"`
	Components
	RunDir         string            `json:"run_dir,omitempty"`
	Files          []string          `json:"files,omitempty"`
	Manifest       manifest.Manifest `json:"manifest"`
	ManifestDigest string            `json:"manifest_digest,omitempty"`
	ArchivePath    string            `json:"archive_path,omitempty"`
	ArchiveEntries []string          `json:"archive_entries,omitempty"`
}

// RunID derives the run identifier from its start time.
func RunID(now time.Time) string {
	return "playbook_" + now.Format("20060102_150405")
}

// Run executes one generation. An unknown use case aborts before any file
// is written; a failed template lookup still completes with degraded
// artifacts that carry the error.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.New("pipeline")
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	started := now()

	data := opts.Data
	if data == nil {
		var err error
		data, err = refdata.Open(opts.DataDir)
		if err != nil {
			return nil, fmt.Errorf("load reference data: %w", err)
		}
	}

	uc, err := data.UseCases.Find(opts.UseCaseID)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:   uniqueRunID(opts.OutputDir, started),
		TraceID: audit.NewTraceID(),
		Status:  history.StatusOK,
	}
	if opts.Components != nil && opts.Components.UseCase.ID == uc.ID {
		res.Components = *opts.Components
	} else {
		res.Components = Generate(uc, data.Templates, opts.RiskLead, started)
	}
	if res.Degraded() {
		res.Status = history.StatusDegraded
		log.Warn("template lookup failed", "use_case", uc.ID, "error", res.Playbook.Error)
	}
	if opts.DryRun {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.RunDir = filepath.Join(opts.OutputDir, res.RunID)
	res.Files, err = WriteArtifacts(res.RunDir, res.Components)
	if err != nil {
		return nil, err
	}

	// The manifest must see the final on-disk state of every artifact.
	res.Manifest, err = manifest.Build(res.RunDir, nil, now())
	if err != nil {
		return nil, fmt.Errorf("build manifest: %w", err)
	}
	res.ManifestDigest, err = manifest.Digest(res.Manifest)
	if err != nil {
		return nil, err
	}
	if err := recordAudit(opts.Audit, res, audit.ActionGenerate, ""); err != nil {
		return nil, err
	}

	if opts.Archive {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.ArchivePath = filepath.Join(opts.OutputDir, archive.Name(res.RunID))
		res.ArchiveEntries, err = archive.Create(res.RunDir, res.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("archive run: %w", err)
		}
		if err := recordAudit(opts.Audit, res, audit.ActionArchive, res.ArchivePath); err != nil {
			return nil, err
		}
	}

	if opts.History != nil {
		_, err := opts.History.Record(ctx, history.Entry{
			RunID:          res.RunID,
			UseCaseID:      uc.ID,
			Sector:         string(uc.Sector),
			SystemType:     string(uc.SystemType),
			RiskTier:       string(uc.RiskTier),
			Status:         res.Status,
			OutputDir:      res.RunDir,
			ArchivePath:    res.ArchivePath,
			ManifestDigest: res.ManifestDigest,
			CreatedAt:      started,
		})
		if err != nil {
			return nil, err
		}
	}

	log.Info("run complete",
		"run_id", res.RunID,
		"use_case", uc.ID,
		"status", res.Status,
		"dir", res.RunDir,
		"archive", res.ArchivePath,
	)
	return res, nil
}

func recordAudit(l *audit.Log, res *Result, action, detail string) error {
	if l == nil {
		return nil
	}
	err := l.Record(audit.Entry{
		TraceID:        res.TraceID,
		RunID:          res.RunID,
		UseCaseID:      res.UseCase.ID,
		Action:         action,
		Status:         res.Status,
		ManifestDigest: res.ManifestDigest,
		Detail:         detail,
	})
	if err != nil {
		return fmt.Errorf("audit %s: %w", action, err)
	}
	return nil
}

// uniqueRunID appends a counter when a run directory for the same second
// already exists.
func uniqueRunID(outputDir string, t time.Time) string {
	base := RunID(t)
	id := base
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(outputDir, id)); err != nil {
			return id
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}
