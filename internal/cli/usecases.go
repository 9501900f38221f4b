package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sectorbook/internal/format"
	"github.com/ppiankov/sectorbook/internal/refdata"
)

var usecasesFormat string

var usecasesCmd = &cobra.Command{
	Use:     "usecases",
	Aliases: []string{"uc"},
	Short:   "Inspect registered AI use cases",
}

var usecasesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List use cases in registry order",
	Args:  cobra.NoArgs,
	RunE:  runUseCasesList,
}

var usecasesShowCmd = &cobra.Command{
	Use:   "show <use-case-id>",
	Short: "Show one use case and its template cell",
	Args:  cobra.ExactArgs(1),
	RunE:  runUseCasesShow,
}

func init() {
	usecasesCmd.PersistentFlags().StringVar(&usecasesFormat, "format", "table", "Output format: table, markdown or json")
	usecasesCmd.AddCommand(usecasesListCmd)
	usecasesCmd.AddCommand(usecasesShowCmd)
	rootCmd.AddCommand(usecasesCmd)
}

func runUseCasesList(cmd *cobra.Command, args []string) error {
	data, err := refdata.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	cases := data.UseCases.List()
	if usecasesFormat == "json" {
		return writeJSON(cmd.OutOrStdout(), cases)
	}
	fmt.Fprintln(cmd.OutOrStdout(), format.UseCases(cases, format.ParseMode(usecasesFormat)))
	return nil
}

func runUseCasesShow(cmd *cobra.Command, args []string) error {
	data, err := refdata.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	uc, err := data.UseCases.Find(args[0])
	if err != nil {
		return err
	}
	entry, lookupErr := data.Templates.Lookup(uc.Sector, uc.SystemType, uc.RiskTier)

	out := cmd.OutOrStdout()
	if usecasesFormat == "json" {
		v := struct {
			UseCase any    `json:"use_case"`
			Entry   any    `json:"template,omitempty"`
			Error   string `json:"error,omitempty"`
		}{UseCase: uc}
		if lookupErr != nil {
			v.Error = lookupErr.Error()
		} else {
			v.Entry = entry
		}
		return writeJSON(out, v)
	}

	printTitle(out, "%s", uc.Label())
	fmt.Fprintf(out, "Sector: %s  Type: %s  Risk: %s\n\n", uc.Sector, uc.SystemType, uc.RiskTier)
	if lookupErr != nil {
		printWarning(out, "%v", lookupErr)
		return nil
	}
	fmt.Fprint(out, format.Entry(entry, format.ParseMode(usecasesFormat)))
	return nil
}
