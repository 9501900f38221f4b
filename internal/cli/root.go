package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sectorbook/internal/config"
	"github.com/ppiankov/sectorbook/internal/logging"
)

var (
	configPath   string
	dataDirFlag  string
	outputDir    string
	logLevelFlag string
	logFormat    string

	// cfg is the effective configuration, resolved before every command.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sectorbook",
	Short: "Sector-specific AI risk playbooks with hash-indexed evidence",
	Long: `Generates control playbooks, validation checklists, monitoring KPIs,
incident triggers and executive summaries for AI use cases in regulated
sectors, then proves the artifacts with a SHA-256 evidence manifest.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default ~/.sectorbook/config.yaml)")
	pf.StringVar(&dataDirFlag, "data-dir", "", "Reference data directory (overrides config)")
	pf.StringVar(&outputDir, "output-dir", "", "Output directory for runs (overrides config)")
	pf.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		c.DataDir = dataDirFlag
	}
	if flags.Changed("output-dir") {
		c.OutputDir = outputDir
	}
	if flags.Changed("log-level") {
		c.Log.Level = logLevelFlag
	}
	if flags.Changed("log-format") {
		c.Log.Format = logFormat
	}
	if err := c.Validate(); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(c.Log.Level)
	logging.Init(level, c.Log.Format, cmd.ErrOrStderr())
	cfg = c
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
