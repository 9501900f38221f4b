package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sectorbook/internal/wizard"
)

var wizardNoHistory bool

func init() {
	rootCmd.AddCommand(wizardCmd)
	wizardCmd.Flags().BoolVar(&wizardNoHistory, "no-history", false, "Skip the run history and audit log")
}

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive five-page playbook wizard",
	Long: `Opens a terminal UI: select a use case, preview its playbook, review the
validation checklist, inspect monitoring KPIs and incident triggers, then
export the artifacts with their evidence manifest and zip archive.`,
	Args: cobra.NoArgs,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	opts := wizard.Options{
		DataDir:   cfg.DataDir,
		OutputDir: cfg.OutputDir,
		RiskLead:  cfg.RiskLead,
		Now:       time.Now,
	}
	if !wizardNoHistory {
		st, err := openStores()
		if err != nil {
			return err
		}
		defer st.Close()
		opts.History = st.history
		opts.Audit = st.audit
	}
	return wizard.Run(opts)
}
