package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/sectorbook/internal/model"
)

// DefaultRiskLead is named in the summary when no lead is configured.
const DefaultRiskLead = "Dr. Evelyn Reed"

const summaryClosing = "This tailored playbook ensures comprehensive risk coverage, aligns with governance standards, " +
	"and prepares the system for rigorous validation and operational oversight."

// Summary renders the executive summary from uc and its snapshot.
func Summary(uc model.UseCase, snap model.ConfigSnapshot, lead string, now time.Time) string {
	if lead == "" {
		lead = DefaultRiskLead
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Executive Summary: AI Risk Playbook for %s\n\n", uc.Name)

	if snap.Error != "" {
		fmt.Fprintf(&b, "Error: executive summary not generated for %s: %s\n", uc.Label(), strings.TrimPrefix(snap.Error, "Error: "))
		return b.String()
	}

	fmt.Fprintf(&b, "**Date:** %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "**AI Risk Lead:** %s\n\n", lead)

	b.WriteString("## 1. AI Initiative Overview\n")
	fmt.Fprintf(&b, "**Name:** %s\n", uc.Name)
	fmt.Fprintf(&b, "**ID:** %s\n", uc.ID)
	fmt.Fprintf(&b, "**Description:** %s\n", uc.Description)
	fmt.Fprintf(&b, "**Sector:** %s\n", uc.Sector)
	fmt.Fprintf(&b, "**System Type:** %s\n", uc.SystemType)
	fmt.Fprintf(&b, "**Risk Tier:** %s\n\n", uc.RiskTier)

	b.WriteString("## 2. Rationale for Tailored Controls\n")
	fmt.Fprintf(&b, "Given the **%s risk tier** and its deployment within the **%s sector**, "+
		"this AI system requires a highly specialized risk management framework. "+
		"For the '%s' system, the primary concerns include:\n", uc.RiskTier, uc.Sector, uc.Name)
	for _, line := range rationale[rationaleKey{uc.Sector, uc.SystemType}] {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n## 3. Key Configuration Elements\n")
	fmt.Fprintf(&b, "**Controls:** %s\n", strings.Join(snap.AIPlaybook.Controls, ", "))
	fmt.Fprintf(&b, "**Validation Focus:** %s\n", strings.Join(snap.ValidationRequirements, ", "))
	fmt.Fprintf(&b, "**Acceptance Thresholds:** %s\n", strings.Join(snap.AcceptanceThresholds, "; "))
	fmt.Fprintf(&b, "**Monitoring KPIs:** %s\n", strings.Join(snap.MonitoringKPIs, ", "))
	fmt.Fprintf(&b, "**Incident Triggers:** %s\n\n", strings.Join(snap.IncidentTriggers, ", "))

	b.WriteString(summaryClosing)
	return b.String()
}
