package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sectorbook/internal/model"
	"github.com/ppiankov/sectorbook/internal/refdata"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the reference data files",
	Long: `Loads every sector template file and the use-case list against their
JSON schemas, then checks that each use case resolves to a template cell.
Unresolvable use cases are reported as warnings: they still generate, but
as error records.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	data, err := refdata.Load(cfg.DataDir)
	if err != nil {
		printError(out, "%v", err)
		return fmt.Errorf("reference data in %s is invalid", cfg.DataDir)
	}

	cells := 0
	for _, sector := range model.Sectors {
		st, err := data.Templates.Sector(sector)
		if err != nil {
			return err
		}
		for _, tiers := range st {
			cells += len(tiers)
		}
	}

	cases := data.UseCases.List()
	unresolved := 0
	for _, uc := range cases {
		if _, err := data.Templates.Lookup(uc.Sector, uc.SystemType, uc.RiskTier); err != nil {
			printWarning(out, "%s: %v", uc.ID, err)
			unresolved++
		}
	}

	printSuccess(out, "%d sectors, %d template cells, %d use cases", len(model.Sectors), cells, len(cases))
	if unresolved > 0 {
		printWarning(out, "%d use case(s) will generate degraded artifacts", unresolved)
	}
	return nil
}
