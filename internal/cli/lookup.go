package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sectorbook/internal/format"
	"github.com/ppiankov/sectorbook/internal/model"
	"github.com/ppiankov/sectorbook/internal/refdata"
)

var lookupFormat string

var lookupCmd = &cobra.Command{
	Use:   "lookup <sector> <system-type> <risk-tier>",
	Short: "Look up the template cell for a combination",
	Long: `Prints the controls, validation steps, monitoring KPIs and incident
triggers registered for one sector/system-type/risk-tier combination.

Example:
  sectorbook lookup healthcare ml high`,
	Args: cobra.ExactArgs(3),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVar(&lookupFormat, "format", "table", "Output format: table, markdown or json")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	sector, err := model.ParseSector(args[0])
	if err != nil {
		return err
	}
	systemType, err := model.ParseSystemType(args[1])
	if err != nil {
		return err
	}
	riskTier, err := model.ParseRiskTier(args[2])
	if err != nil {
		return err
	}

	data, err := refdata.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	entry, err := data.Templates.Lookup(sector, systemType, riskTier)
	if err != nil {
		return err
	}

	if lookupFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), entry)
	}
	fmt.Fprint(cmd.OutOrStdout(), format.Entry(entry, format.ParseMode(lookupFormat)))
	return nil
}
