// Package render produces the Markdown and JSON documents of a playbook run:
// validation checklist, configuration snapshot and executive summary.
package render

import (
	"fmt"
	"strings"

	"github.com/ppiankov/sectorbook/internal/model"
	"github.com/ppiankov/sectorbook/internal/templates"
)

// ChecklistError is the whole checklist body when the template cell is missing.
const ChecklistError = "Error: Validation configuration not found."

const checkboxPrefix = "- [ ] "

// Checklist renders the validation checklist for uc.
func Checklist(uc model.UseCase, l templates.Lookuper) string {
	entry, err := l.Lookup(uc.Sector, uc.SystemType, uc.RiskTier)
	if err != nil {
		return ChecklistError
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Validation Checklist for %s %s (%s Risk)\n\n", uc.Sector, uc.SystemType, uc.RiskTier)
	fmt.Fprintf(&b, "**AI Initiative:** %s (%s)\n", uc.Name, uc.ID)
	fmt.Fprintf(&b, "**Description:** %s\n\n", uc.Description)
	b.WriteString("This checklist outlines the required validation activities and acceptance thresholds for deployment.\n\n")

	for _, item := range entry.Validation {
		b.WriteString(checkboxPrefix + item + "\n")
	}

	b.WriteString("\n### Key Acceptance Thresholds:\n")
	for _, line := range checklistThresholds[ComboOf(uc)] {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n### Evidence Requirements:\n")
	for _, line := range evidenceRequirements {
		b.WriteString(line + "\n")
	}
	return b.String()
}

// ChecklistFailed reports whether md is the error body rather than a checklist.
func ChecklistFailed(md string) bool {
	return strings.HasPrefix(md, "Error:")
}

// ExtractRequirements returns the text of every checkbox bullet in md, in order.
func ExtractRequirements(md string) []string {
	out := []string{}
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, checkboxPrefix); ok {
			out = append(out, strings.TrimSpace(rest))
		}
	}
	return out
}
