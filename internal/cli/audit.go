package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sectorbook/internal/audit"
)

var (
	tailLines   int
	tailRunID   string
	tailUseCase string
	tailAction  string
	tailSince   time.Duration
	tailJSON    bool
)

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	auditCmd.AddCommand(auditTailCmd)
	auditTailCmd.Flags().IntVarP(&tailLines, "lines", "n", 10, "Number of recent entries to show (0 = all)")
	auditTailCmd.Flags().StringVar(&tailRunID, "run", "", "Only entries for this run id")
	auditTailCmd.Flags().StringVar(&tailUseCase, "use-case", "", "Only entries for this use case")
	auditTailCmd.Flags().StringVar(&tailAction, "action", "", "Only entries with this action")
	auditTailCmd.Flags().DurationVar(&tailSince, "since", 0, "Only entries newer than this (e.g. 24h)")
	auditTailCmd.Flags().BoolVar(&tailJSON, "json", false, "Output as JSON")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit log operations",
	Long:  "Commands for verifying and inspecting the hash-chained audit log.",
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Verify hash chain integrity of an audit log",
	Long:  "Walks the JSONL audit log and validates that every entry's prev_hash\nmatches the SHA-256 of the previous entry. Defaults to the configured log.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuditVerify,
}

var auditTailCmd = &cobra.Command{
	Use:   "tail [path]",
	Short: "Show recent audit log entries",
	Long:  "Reads the audit log, applies the filters and prints the last N entries as a timeline.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuditTail,
}

func auditPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.AuditLog == "" {
		return "", fmt.Errorf("audit log is disabled (audit_log is empty); pass a path")
	}
	return cfg.AuditLog, nil
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	path, err := auditPath(args)
	if err != nil {
		return err
	}
	result := audit.Verify(path)
	if result.Valid {
		printSuccess(cmd.OutOrStdout(), "OK: %d entries verified across %d runs", result.Lines, result.Runs)
		return nil
	}
	printError(cmd.ErrOrStderr(), "FAILED at line %d: %s", result.ErrorLine, result.Error)
	return fmt.Errorf("audit log %s failed verification", path)
}

func runAuditTail(cmd *cobra.Command, args []string) error {
	path, err := auditPath(args)
	if err != nil {
		return err
	}
	f := audit.Filter{
		RunID:     tailRunID,
		UseCaseID: tailUseCase,
		Action:    tailAction,
		Limit:     tailLines,
	}
	if tailSince > 0 {
		f.Since = time.Now().Add(-tailSince)
	}

	result, err := audit.Read(path, f)
	if err != nil {
		return err
	}
	if tailJSON {
		s, err := audit.FormatJSON(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), audit.FormatTimeline(result))
	return nil
}
