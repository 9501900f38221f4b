package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sectorbook/internal/format"
	"github.com/ppiankov/sectorbook/internal/pipeline"
)

var (
	generateArchive   bool
	generateDryRun    bool
	generateJSON      bool
	generateLead      string
	generateNoHistory bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <use-case-id>",
	Short: "Generate, write and hash every artifact for a use case",
	Long: `Writes the playbook, checklist, KPIs, incident triggers, configuration
snapshot and executive summary into <output-dir>/<run-id>/, then records
their SHA-256 hashes in evidence_manifest.json.

A template lookup failure does not abort the run: the artifacts are written
as error records and the run is marked degraded.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateArchive, "archive", false, "Also package the run directory as <run-id>.zip")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Generate in memory only; write nothing")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Print the run result as JSON")
	generateCmd.Flags().StringVar(&generateLead, "risk-lead", "", "AI risk lead named in the summary (overrides config)")
	generateCmd.Flags().BoolVar(&generateNoHistory, "no-history", false, "Skip the run history and audit log")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := pipeline.Options{
		DataDir:   cfg.DataDir,
		OutputDir: cfg.OutputDir,
		UseCaseID: args[0],
		RiskLead:  cfg.RiskLead,
		DryRun:    generateDryRun,
		Archive:   generateArchive,
	}
	if generateLead != "" {
		opts.RiskLead = generateLead
	}
	if !generateDryRun && !generateNoHistory {
		st, err := openStores()
		if err != nil {
			return err
		}
		defer st.Close()
		opts.History = st.history
		opts.Audit = st.audit
	}

	res, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}
	if generateJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	printResult(cmd, res)
	return nil
}

func printResult(cmd *cobra.Command, res *pipeline.Result) {
	out := cmd.OutOrStdout()
	printTitle(out, "%s  %s", res.RunID, res.UseCase.Label())
	if res.Degraded() {
		printWarning(out, "degraded: %s", res.Playbook.Error)
	}
	if res.RunDir == "" {
		fmt.Fprintf(out, "dry run: %d controls, %d KPIs, %d triggers\n",
			len(res.Playbook.Controls), len(res.KPIs), len(res.Triggers))
		return
	}

	fmt.Fprintln(out, format.Manifest(res.Manifest, format.ASCII))
	fmt.Fprintf(out, "Directory: %s\n", res.RunDir)
	fmt.Fprintf(out, "Digest:    %s\n", res.ManifestDigest)
	if res.ArchivePath != "" {
		fmt.Fprintf(out, "Archive:   %s (%d files)\n", res.ArchivePath, len(res.ArchiveEntries))
	}
	if res.Degraded() {
		return
	}
	printSuccess(out, "run complete")
}
