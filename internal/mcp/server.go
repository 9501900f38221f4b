// Package mcp exposes playbook generation as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/sectorbook/internal/audit"
	"github.com/ppiankov/sectorbook/internal/history"
	"github.com/ppiankov/sectorbook/internal/logging"
	"github.com/ppiankov/sectorbook/internal/refdata"
)

// Config holds MCP server configuration.
type Config struct {
	DataDir      string
	OutputDir    string
	RiskLead     string
	HistoryPath  string
	AuditLogPath string
	Version      string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server wraps the MCP SDK server around the playbook pipeline.
// Tool calls are serialized: one generation completes before the next starts.
type Server struct {
	mcpServer *mcpsdk.Server
	cfg       Config
	data      *refdata.Data
	history   *history.Store
	auditLog  *audit.Log
	log       *slog.Logger
	mu        sync.Mutex
}

// New loads the reference data, opens history and audit when configured,
// and registers the tools.
func New(cfg Config) (*Server, error) {
	data, err := refdata.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	s := &Server{
		cfg:  cfg,
		data: data,
		log:  logging.New("mcp"),
	}

	if cfg.HistoryPath != "" {
		s.history, err = history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
	}
	if cfg.AuditLogPath != "" {
		s.auditLog, err = audit.Open(cfg.AuditLogPath)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "sectorbook",
			Version: version,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("serving MCP on stdio", "data_dir", s.cfg.DataDir, "output_dir", s.cfg.OutputDir)
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close releases the history database and audit log.
func (s *Server) Close() error {
	var firstErr error
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			firstErr = err
		}
	}
	if s.auditLog != nil {
		if err := s.auditLog.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Server) now() time.Time {
	if s.cfg.Now != nil {
		return s.cfg.Now()
	}
	return time.Now()
}

// registerTools adds all sectorbook tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "sectorbook_list_use_cases",
		Description: "List the AI use cases available for playbook generation, optionally filtered by sector.",
	}, s.handleListUseCases)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "sectorbook_lookup",
		Description: "Return the control template (controls, validation, monitoring, incident triggers) for a sector, system type and risk tier.",
	}, s.handleLookup)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "sectorbook_generate_playbook",
		Description: "Generate the playbook, validation checklist, KPIs and incident triggers for a use case in memory, without writing files.",
	}, s.handleGeneratePlaybook)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "sectorbook_generate_artifacts",
		Description: "Write all artifacts for a use case to a new run folder, build the evidence manifest and optionally a zip archive.",
	}, s.handleGenerateArtifacts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "sectorbook_verify_manifest",
		Description: "Re-hash the artifacts of a previous run and compare them against its evidence manifest.",
	}, s.handleVerifyManifest)
}
