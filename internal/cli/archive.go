package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sectorbook/internal/archive"
)

var archiveOutput string

var archiveCmd = &cobra.Command{
	Use:   "archive <dir|run-id>",
	Short: "Package a run directory as a zip archive",
	Long: `Zips every file in the run directory, the manifest included. The
archive defaults to <output-dir>/<run-id>.zip.`,
	Args: cobra.ExactArgs(1),
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().StringVarP(&archiveOutput, "output", "o", "", "Archive path (default <output-dir>/<run-id>.zip)")
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	dir, err := resolveRunDir(args[0])
	if err != nil {
		return err
	}
	dest := archiveOutput
	if dest == "" {
		dest = filepath.Join(cfg.OutputDir, archive.Name(filepath.Base(dir)))
	}

	entries, err := archive.Create(dir, dest)
	if err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Wrote %s (%d files)", dest, len(entries))
	return nil
}
