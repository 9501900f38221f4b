package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	activeTab     = lipgloss.NewStyle().Bold(true).Underline(true)
	inactiveTab   = lipgloss.NewStyle().Faint(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	disabledStyle = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// View renders the current page.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sectorbook") + "  " + m.tabs() + "\n\n")

	if m.page == PageUseCase {
		b.WriteString(m.pageContent())
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render("Error: " + m.err.Error()))
	case strings.HasPrefix(m.status, "Warning:"):
		b.WriteString(warnStyle.Render(m.status))
	default:
		b.WriteString(m.status)
	}
	b.WriteString("\n" + helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) tabs() string {
	parts := make([]string, 0, pageCount)
	for p := Page(0); p < pageCount; p++ {
		label := fmt.Sprintf("%d %s", p+1, p)
		if p == m.page {
			parts = append(parts, activeTab.Render(label))
		} else {
			parts = append(parts, inactiveTab.Render(label))
		}
	}
	return strings.Join(parts, " │ ")
}

func (m Model) help() string {
	switch m.page {
	case PageUseCase:
		return "↑/↓ move • enter select • g generate • e edit lead • r reload • tab next • q quit"
	case PageExport:
		return "x generate final artifacts • tab next • q quit"
	default:
		return "g generate • ↑/↓ scroll • tab next • q quit"
	}
}

func (m Model) pageContent() string {
	switch m.page {
	case PageUseCase:
		return m.useCasePage()
	case PagePreview:
		return m.previewPage()
	case PageChecklist:
		return m.checklistPage()
	case PageMonitoring:
		return m.monitoringPage()
	case PageExport:
		return m.exportPage()
	}
	return ""
}

func (m Model) useCasePage() string {
	if m.data == nil {
		return "No reference data loaded. Press r to load."
	}
	var b strings.Builder
	for i, uc := range m.data.UseCases.List() {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		check := " "
		if m.selected != nil && m.selected.ID == uc.ID {
			check = "✓"
		}
		fmt.Fprintf(&b, "%s[%s] %s  %s/%s/%s\n", marker, check, uc.Label(), uc.Sector, uc.SystemType, uc.RiskTier)
	}
	fmt.Fprintf(&b, "\nAI risk lead: %s", m.lead.View())
	if m.selected != nil {
		fmt.Fprintf(&b, "\n\n%s\n%s", titleStyle.Render(m.selected.Name), m.selected.Description)
	}
	return b.String()
}

func (m Model) previewPage() string {
	if m.components == nil {
		if m.selected == nil {
			return disabledStyle.Render("Select a use case first.")
		}
		return disabledStyle.Render("Press g to generate playbook components.")
	}
	pb := m.components.Playbook
	if pb.Failed() {
		return warnStyle.Render("Playbook not available: " + pb.Error)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s / %s / %s\n%s\n\n", pb.Sector, pb.SystemType, pb.RiskTier, pb.SectorEmphasis)
	for i, c := range pb.Controls {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, c)
	}
	return b.String()
}

func (m Model) checklistPage() string {
	if m.components == nil {
		return disabledStyle.Render("Generate playbook components to view the checklist.")
	}
	return m.components.Checklist
}

func (m Model) monitoringPage() string {
	if m.components == nil {
		return disabledStyle.Render("Generate playbook components to view KPIs.")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Monitoring KPIs") + "\n")
	writeList(&b, m.components.KPIs)
	b.WriteString("\n" + titleStyle.Render("Incident Triggers") + "\n")
	writeList(&b, m.components.Triggers)
	return b.String()
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString(disabledStyle.Render("  (none)") + "\n")
		return
	}
	for _, item := range items {
		b.WriteString("  - " + item + "\n")
	}
}

func (m Model) exportPage() string {
	switch {
	case m.result != nil:
		var b strings.Builder
		fmt.Fprintf(&b, "Run:      %s\nStatus:   %s\nFolder:   %s\nArchive:  %s\nDigest:   %s\n\n",
			m.result.RunID, m.result.Status, m.result.RunDir, m.result.ArchivePath, m.result.ManifestDigest)
		for _, r := range m.result.Manifest.Artifacts {
			if r.Missing() {
				fmt.Fprintf(&b, "  %-26s %s\n", r.Filename, r.Status)
				continue
			}
			fmt.Fprintf(&b, "  %-26s %s\n", r.Filename, r.SHA256Hash)
		}
		return b.String()
	case m.exporting:
		return "Generating final artifacts..."
	case m.components == nil:
		return disabledStyle.Render("Generate playbook components before exporting.")
	default:
		return "Press x to write the artifacts, evidence manifest and archive to " + m.opts.OutputDir
	}
}
