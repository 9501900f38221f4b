package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/sectorbook/internal/pipeline"
	"github.com/ppiankov/sectorbook/internal/refdata"
)

var (
	playbookFormat string
	playbookLead   string
)

var playbookCmd = &cobra.Command{
	Use:   "playbook <use-case-id>",
	Short: "Generate every component for a use case without writing files",
	Long: `Runs the generators in memory and prints the playbook, checklist,
KPIs, triggers, configuration snapshot and executive summary.

Formats:
  json      all components as one JSON document (default)
  yaml      the same document as YAML
  markdown  the checklist followed by the executive summary`,
	Args: cobra.ExactArgs(1),
	RunE: runPlaybook,
}

func init() {
	playbookCmd.Flags().StringVar(&playbookFormat, "format", "json", "Output format: json, yaml or markdown")
	playbookCmd.Flags().StringVar(&playbookLead, "risk-lead", "", "AI risk lead named in the summary (overrides config)")
	rootCmd.AddCommand(playbookCmd)
}

func runPlaybook(cmd *cobra.Command, args []string) error {
	data, err := refdata.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	uc, err := data.UseCases.Find(args[0])
	if err != nil {
		return err
	}

	lead := cfg.RiskLead
	if playbookLead != "" {
		lead = playbookLead
	}
	c := pipeline.Generate(uc, data.Templates, lead, time.Now())

	out := cmd.OutOrStdout()
	switch playbookFormat {
	case "json":
		err = writeJSON(out, c)
	case "yaml", "yml":
		err = writeComponentsYAML(out, c)
	case "markdown", "md":
		_, err = fmt.Fprintf(out, "%s\n\n%s", c.Checklist, c.Summary)
	default:
		return fmt.Errorf("unknown format %q: use json, yaml or markdown", playbookFormat)
	}
	if err != nil {
		return err
	}
	if c.Degraded() {
		printWarning(cmd.ErrOrStderr(), "%s: %s", uc.ID, c.Playbook.Error)
	}
	return nil
}

// writeComponentsYAML goes through JSON so the YAML keeps the JSON field
// names and the error-only playbook shape.
func writeComponentsYAML(w io.Writer, c pipeline.Components) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return err
	}
	blockStyle(&node)
	return writeYAML(w, &node)
}

// blockStyle clears the flow and quoting styles the JSON input carried.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
