package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sectorbook/internal/pipeline"
	"github.com/ppiankov/sectorbook/internal/refdata"
)

var (
	watchArchive   bool
	watchNoHistory bool
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchArchive, "archive", false, "Archive every regenerated run")
	watchCmd.Flags().BoolVar(&watchNoHistory, "no-history", false, "Skip the run history and audit log")
}

var watchCmd = &cobra.Command{
	Use:   "watch <use-case-id>...",
	Short: "Regenerate artifacts whenever the reference data changes",
	Long: `Generates the given use cases once, then watches the data directory and
runs them again after every valid edit of a template or use-case file.
Invalid edits are reported and the previous data stays in effect.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	data, err := refdata.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	for _, id := range args {
		if _, err := data.UseCases.Find(id); err != nil {
			return err
		}
	}

	opts := pipeline.Options{
		DataDir:   cfg.DataDir,
		OutputDir: cfg.OutputDir,
		RiskLead:  cfg.RiskLead,
		Archive:   watchArchive,
	}
	if !watchNoHistory {
		st, err := openStores()
		if err != nil {
			return err
		}
		defer st.Close()
		opts.History = st.history
		opts.Audit = st.audit
	}

	generate := func(data *refdata.Data) {
		for _, id := range args {
			opts := opts
			opts.Data = data
			opts.UseCaseID = id
			res, err := pipeline.Run(ctx, opts)
			if err != nil {
				printError(cmd.ErrOrStderr(), "%s: %v", id, err)
				continue
			}
			printResult(cmd, res)
		}
	}
	generate(data)

	// The watcher invokes its handler on the Run goroutine, so runs never overlap.
	printTitle(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)", cfg.DataDir)
	return refdata.NewWatcher(cfg.DataDir, func(d *refdata.Data, err error) {
		if err != nil {
			printError(cmd.ErrOrStderr(), "reload rejected: %v", err)
			return
		}
		generate(d)
	}).Run(ctx)
}
