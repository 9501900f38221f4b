package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sectorbook/internal/config"
	"github.com/ppiankov/sectorbook/internal/refdata"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and default reference data",
	Long: `Writes ~/.sectorbook/config.yaml (or the --config path) and the default
sector templates and use-case list into the data directory. Existing files
are kept unless --force is set; --force only rewrites the config file.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return fmt.Errorf("cannot resolve home directory; pass --config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	wrote, err := writeIfMissing(path, config.DefaultYAML(), initForce)
	if err != nil {
		return err
	}
	if wrote {
		printSuccess(out, "Created %s", path)
	} else {
		fmt.Fprintf(out, "  exists  %s (use --force to overwrite)\n", path)
	}

	created, err := refdata.Ensure(cfg.DataDir)
	if err != nil {
		return err
	}
	for _, p := range created {
		printSuccess(out, "Created %s", p)
	}
	if len(created) == 0 {
		fmt.Fprintf(out, "  exists  %s (reference data complete)\n", cfg.DataDir)
	}
	return nil
}

// writeIfMissing writes content to path unless it exists and force is off.
// Returns true if the file was written.
func writeIfMissing(path, content string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
