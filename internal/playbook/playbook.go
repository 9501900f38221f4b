// Package playbook resolves a use case against the template store into the
// control playbook and the advisory monitoring/trigger lists.
package playbook

import (
	"slices"

	"github.com/ppiankov/sectorbook/internal/model"
	"github.com/ppiankov/sectorbook/internal/templates"
)

// genericEmphasis applies to any sector without its own narrative.
const genericEmphasis = "General AI risk management."

var sectorEmphasis = map[model.Sector]string{
	model.SectorHealthcare: "Emphasis on False-Negative Risk, Clinical Override, Patient Safety, PHI Privacy.",
	model.SectorFinance:    "Emphasis on Explainability, Bias & Disparate Impact, Auditability, Financial Stability, Data Security.",
}

// Emphasis returns the narrative emphasis for a sector.
func Emphasis(sector model.Sector) string {
	if e, ok := sectorEmphasis[sector]; ok {
		return e
	}
	return genericEmphasis
}

// Generate resolves the playbook for uc. A failed lookup yields a playbook
// that carries only Error; it is never filled with defaults.
func Generate(uc model.UseCase, l templates.Lookuper) model.Playbook {
	entry, err := l.Lookup(uc.Sector, uc.SystemType, uc.RiskTier)
	if err != nil {
		return model.Playbook{Error: err.Error()}
	}
	controls := slices.Clone(entry.Controls)
	if controls == nil {
		controls = []string{}
	}
	return model.Playbook{
		Sector:         uc.Sector,
		SystemType:     uc.SystemType,
		RiskTier:       uc.RiskTier,
		Controls:       controls,
		SectorEmphasis: Emphasis(uc.Sector),
	}
}

// KPIs returns the monitoring KPIs for uc, or an empty list when the lookup
// fails. Advisory lists degrade instead of failing the run.
func KPIs(uc model.UseCase, l templates.Lookuper) []string {
	entry, err := l.Lookup(uc.Sector, uc.SystemType, uc.RiskTier)
	if err != nil {
		return []string{}
	}
	return nonNil(entry.Monitoring)
}

// Triggers returns the incident triggers for uc, or an empty list when the
// lookup fails.
func Triggers(uc model.UseCase, l templates.Lookuper) []string {
	entry, err := l.Lookup(uc.Sector, uc.SystemType, uc.RiskTier)
	if err != nil {
		return []string{}
	}
	return nonNil(entry.IncidentTriggers)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return slices.Clone(items)
}
