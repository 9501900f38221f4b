package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sectorbook/internal/format"
	"github.com/ppiankov/sectorbook/internal/history"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded runs, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Show the last N runs (0 = all)")
	historyCmd.Flags().StringVar(&historyFormat, "format", "table", "Output format: table, markdown or json")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.HistoryDB == "" {
		return fmt.Errorf("run history is disabled (history_db is empty)")
	}
	h, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer h.Close()

	ctx := context.Background()
	var entries []history.Entry
	if len(args) == 1 {
		e, err := h.Get(ctx, args[0])
		if err != nil {
			return err
		}
		entries = []history.Entry{e}
	} else {
		entries, err = h.List(ctx, historyLimit)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if historyFormat == "json" {
		if len(args) == 1 {
			return writeJSON(out, entries[0])
		}
		return writeJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	fmt.Fprintln(out, format.History(entries, format.ParseMode(historyFormat)))
	return nil
}
