package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	sbmcp "github.com/ppiankov/sectorbook/internal/mcp"
)

var mcpNoHistory bool

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().BoolVar(&mcpNoHistory, "no-history", false, "Skip the run history and audit log")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long: "Runs sectorbook as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes tools: list_use_cases, lookup, generate_playbook, generate_artifacts, verify_manifest.",
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	mcfg := sbmcp.Config{
		DataDir:   cfg.DataDir,
		OutputDir: cfg.OutputDir,
		RiskLead:  cfg.RiskLead,
		Version:   version,
	}
	if !mcpNoHistory {
		mcfg.HistoryPath = cfg.HistoryDB
		mcfg.AuditLogPath = cfg.AuditLog
	}

	srv, err := sbmcp.New(mcfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
			cancel()
		case <-ctx.Done():
		}
	}()

	fmt.Fprintln(os.Stderr, "sectorbook MCP server running on stdio")
	fmt.Fprintf(os.Stderr, "Data: %s  Output: %s\n\n", cfg.DataDir, cfg.OutputDir)

	return srv.Run(ctx)
}
