package cli

import (
	"github.com/spf13/cobra"
)

// version is overridden at build time via
// -ldflags "-X github.com/ppiankov/sectorbook/internal/cli.version=<v>".
var version = "0.1.0"

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeJSON(cmd.OutOrStdout(), map[string]string{
			"version": version,
			"name":    "sectorbook",
		})
	},
}
