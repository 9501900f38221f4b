package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/sectorbook/internal/audit"
	"github.com/ppiankov/sectorbook/internal/manifest"
	"github.com/ppiankov/sectorbook/internal/model"
	"github.com/ppiankov/sectorbook/internal/pipeline"
)

// --- Input/Output types ---

// ListInput defines parameters for the sectorbook_list_use_cases tool.
type ListInput struct {
	Sector string `json:"sector,omitempty" jsonschema:"only list use cases of this sector (Healthcare or Finance)"`
}

// UseCaseItem is one listed use case.
type UseCaseItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Sector      string `json:"sector"`
	SystemType  string `json:"system_type"`
	RiskTier    string `json:"risk_tier"`
}

// ListOutput lists use cases in registry order.
type ListOutput struct {
	UseCases []UseCaseItem `json:"use_cases"`
}

// LookupInput defines parameters for the sectorbook_lookup tool.
type LookupInput struct {
	Sector     string `json:"sector" jsonschema:"Healthcare or Finance"`
	SystemType string `json:"system_type" jsonschema:"ML, LLM or Agent"`
	RiskTier   string `json:"risk_tier" jsonschema:"Low, Medium or High"`
}

// LookupOutput is the template cell, or Error when the cell does not exist.
type LookupOutput struct {
	Controls         []string `json:"controls"`
	Validation       []string `json:"validation"`
	Monitoring       []string `json:"monitoring"`
	IncidentTriggers []string `json:"incident_triggers"`
	Error            string   `json:"error,omitempty"`
}

// UseCaseInput selects a use case by id.
type UseCaseInput struct {
	UseCaseID string `json:"use_case_id" jsonschema:"use case identifier, e.g. HC-ML-001"`
}

// PlaybookOutput carries the in-memory components of a use case.
type PlaybookOutput struct {
	UseCaseID        string   `json:"use_case_id"`
	Sector           string   `json:"sector,omitempty"`
	SystemType       string   `json:"system_type,omitempty"`
	RiskTier         string   `json:"risk_tier,omitempty"`
	Controls         []string `json:"controls"`
	SectorEmphasis   string   `json:"sector_emphasis,omitempty"`
	Checklist        string   `json:"checklist"`
	MonitoringKPIs   []string `json:"monitoring_kpis"`
	IncidentTriggers []string `json:"incident_triggers"`
	Error            string   `json:"error,omitempty"`
}

// ArtifactsInput defines parameters for the sectorbook_generate_artifacts tool.
type ArtifactsInput struct {
	UseCaseID string `json:"use_case_id" jsonschema:"use case identifier, e.g. HC-ML-001"`
	Archive   bool   `json:"archive,omitempty" jsonschema:"also package the run folder as a zip"`
}

// ArtifactRecord mirrors one evidence manifest entry.
type ArtifactRecord struct {
	Filename   string `json:"filename"`
	SHA256Hash string `json:"sha256_hash,omitempty"`
	Status     string `json:"status,omitempty"`
}

// ArtifactsOutput summarizes a completed run.
type ArtifactsOutput struct {
	RunID          string           `json:"run_id"`
	Status         string           `json:"status"`
	RunDir         string           `json:"run_dir"`
	ArchivePath    string           `json:"archive_path,omitempty"`
	ManifestDigest string           `json:"manifest_digest"`
	Artifacts      []ArtifactRecord `json:"artifacts"`
	Warning        string           `json:"warning,omitempty"`
}

// VerifyInput defines parameters for the sectorbook_verify_manifest tool.
type VerifyInput struct {
	RunID string `json:"run_id" jsonschema:"run identifier returned by sectorbook_generate_artifacts"`
}

// VerifyOutput reports the per-artifact verification outcome.
type VerifyOutput struct {
	RunID  string           `json:"run_id"`
	Valid  bool             `json:"valid"`
	Checks []manifest.Check `json:"checks"`
	Error  string           `json:"error,omitempty"`
}

// --- Handlers ---

func (s *Server) handleListUseCases(ctx context.Context, req *mcpsdk.CallToolRequest, input ListInput) (*mcpsdk.CallToolResult, ListOutput, error) {
	var sector model.Sector
	if input.Sector != "" {
		var err error
		if sector, err = model.ParseSector(input.Sector); err != nil {
			return nil, ListOutput{}, err
		}
	}

	s.mu.Lock()
	cases := s.data.UseCases.List()
	s.mu.Unlock()

	out := ListOutput{UseCases: []UseCaseItem{}}
	for _, uc := range cases {
		if sector != "" && uc.Sector != sector {
			continue
		}
		out.UseCases = append(out.UseCases, UseCaseItem{
			ID:          uc.ID,
			Name:        uc.Name,
			Description: uc.Description,
			Sector:      string(uc.Sector),
			SystemType:  string(uc.SystemType),
			RiskTier:    string(uc.RiskTier),
		})
	}
	return nil, out, nil
}

func (s *Server) handleLookup(ctx context.Context, req *mcpsdk.CallToolRequest, input LookupInput) (*mcpsdk.CallToolResult, LookupOutput, error) {
	s.mu.Lock()
	entry, err := s.data.Templates.Lookup(model.Sector(input.Sector), model.SystemType(input.SystemType), model.RiskTier(input.RiskTier))
	s.mu.Unlock()

	if err != nil {
		return &mcpsdk.CallToolResult{IsError: true}, LookupOutput{
			Controls:         []string{},
			Validation:       []string{},
			Monitoring:       []string{},
			IncidentTriggers: []string{},
			Error:            err.Error(),
		}, nil
	}
	return nil, LookupOutput{
		Controls:         nonNil(entry.Controls),
		Validation:       nonNil(entry.Validation),
		Monitoring:       nonNil(entry.Monitoring),
		IncidentTriggers: nonNil(entry.IncidentTriggers),
	}, nil
}

func (s *Server) handleGeneratePlaybook(ctx context.Context, req *mcpsdk.CallToolRequest, input UseCaseInput) (*mcpsdk.CallToolResult, PlaybookOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uc, err := s.data.UseCases.Find(input.UseCaseID)
	if err != nil {
		return nil, PlaybookOutput{}, err
	}

	c := pipeline.Generate(uc, s.data.Templates, s.cfg.RiskLead, s.now())
	out := PlaybookOutput{
		UseCaseID:        uc.ID,
		Controls:         nonNil(c.Playbook.Controls),
		Checklist:        c.Checklist,
		MonitoringKPIs:   nonNil(c.KPIs),
		IncidentTriggers: nonNil(c.Triggers),
	}
	if c.Degraded() {
		out.Error = c.Playbook.Error
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	out.Sector = string(c.Playbook.Sector)
	out.SystemType = string(c.Playbook.SystemType)
	out.RiskTier = string(c.Playbook.RiskTier)
	out.SectorEmphasis = c.Playbook.SectorEmphasis
	return nil, out, nil
}

func (s *Server) handleGenerateArtifacts(ctx context.Context, req *mcpsdk.CallToolRequest, input ArtifactsInput) (*mcpsdk.CallToolResult, ArtifactsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := pipeline.Run(ctx, pipeline.Options{
		DataDir:   s.cfg.DataDir,
		OutputDir: s.cfg.OutputDir,
		UseCaseID: input.UseCaseID,
		RiskLead:  s.cfg.RiskLead,
		Data:      s.data,
		Archive:   input.Archive,
		History:   s.history,
		Audit:     s.auditLog,
		Now:       s.cfg.Now,
	})
	if err != nil {
		return nil, ArtifactsOutput{}, err
	}

	out := ArtifactsOutput{
		RunID:          res.RunID,
		Status:         res.Status,
		RunDir:         res.RunDir,
		ArchivePath:    res.ArchivePath,
		ManifestDigest: res.ManifestDigest,
		Artifacts:      make([]ArtifactRecord, 0, len(res.Manifest.Artifacts)),
	}
	for _, r := range res.Manifest.Artifacts {
		out.Artifacts = append(out.Artifacts, ArtifactRecord{Filename: r.Filename, SHA256Hash: r.SHA256Hash, Status: r.Status})
	}
	if res.Degraded() {
		out.Warning = res.Playbook.Error
	}
	return nil, out, nil
}

func (s *Server) handleVerifyManifest(ctx context.Context, req *mcpsdk.CallToolRequest, input VerifyInput) (*mcpsdk.CallToolResult, VerifyOutput, error) {
	if input.RunID == "" || strings.ContainsAny(input.RunID, `/\`) || input.RunID == "." || input.RunID == ".." {
		return nil, VerifyOutput{}, fmt.Errorf("invalid run id %q", input.RunID)
	}

	res := manifest.Verify(filepath.Join(s.cfg.OutputDir, input.RunID))
	out := VerifyOutput{
		RunID:  input.RunID,
		Valid:  res.Valid,
		Checks: res.Checks,
		Error:  res.Error,
	}
	if out.Checks == nil {
		out.Checks = []manifest.Check{}
	}

	if s.auditLog != nil {
		status := "ok"
		if !res.Valid {
			status = "failed"
		}
		if err := s.auditLog.Record(audit.Entry{RunID: input.RunID, Action: audit.ActionVerify, Status: status, Detail: res.Error}); err != nil {
			s.log.Warn("audit record failed", "error", err)
		}
	}

	if !res.Valid {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
