// Package wizard is the interactive terminal front end: pick a use case,
// preview its playbook, then export the evidence bundle.
package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ppiankov/sectorbook/internal/audit"
	"github.com/ppiankov/sectorbook/internal/history"
	"github.com/ppiankov/sectorbook/internal/model"
	"github.com/ppiankov/sectorbook/internal/pipeline"
	"github.com/ppiankov/sectorbook/internal/refdata"
)

// Page identifies one wizard screen.
type Page int

const (
	PageUseCase Page = iota
	PagePreview
	PageChecklist
	PageMonitoring
	PageExport
	pageCount
)

var pageTitles = [pageCount]string{
	"Use-Case Wizard",
	"Control Selection Preview",
	"Validation Checklist",
	"Monitoring KPIs",
	"Export",
}

func (p Page) String() string {
	if p < 0 || p >= pageCount {
		return "?"
	}
	return pageTitles[p]
}

// Options configures a wizard session.
type Options struct {
	DataDir   string
	OutputDir string
	RiskLead  string
	History   *history.Store
	Audit     *audit.Log
	Now       func() time.Time
}

type dataLoadedMsg struct {
	data *refdata.Data
	err  error
}

// exportedMsg carries the selection it was started for; results for an
// earlier selection are discarded.
type exportedMsg struct {
	selection int
	res       *pipeline.Result
	err       error
}

// Model holds the session state. Generated components and the export
// result are reset whenever a different use case is selected.
type Model struct {
	opts Options

	page     Page
	data     *refdata.Data
	cursor   int
	selected *model.UseCase
	// selection increments on every new selection.
	selection int

	components *pipeline.Components
	result     *pipeline.Result
	exporting  bool

	lead        textinput.Model
	editingLead bool

	viewport viewport.Model
	status   string
	err      error
	width    int
	height   int
}

// New returns the initial model. Reference data is loaded by Init.
func New(opts Options) Model {
	lead := textinput.New()
	lead.Placeholder = "AI risk lead"
	lead.CharLimit = 120
	lead.SetValue(opts.RiskLead)
	return Model{
		opts:     opts,
		lead:     lead,
		viewport: viewport.New(80, 20),
		status:   "Loading reference data...",
	}
}

// Init loads the reference data.
func (m Model) Init() tea.Cmd {
	return loadData(m.opts.DataDir)
}

func loadData(dir string) tea.Cmd {
	return func() tea.Msg {
		data, err := refdata.Open(dir)
		return dataLoadedMsg{data: data, err: err}
	}
}

func (m Model) export() tea.Cmd {
	opts := pipeline.Options{
		DataDir:    m.opts.DataDir,
		OutputDir:  m.opts.OutputDir,
		UseCaseID:  m.selected.ID,
		RiskLead:   m.lead.Value(),
		Data:       m.data,
		Components: m.components,
		Archive:    true,
		History:    m.opts.History,
		Audit:      m.opts.Audit,
		Now:        m.opts.Now,
	}
	selection := m.selection
	return func() tea.Msg {
		res, err := pipeline.Run(context.Background(), opts)
		return exportedMsg{selection: selection, res: res, err: err}
	}
}

// Page returns the current page.
func (m Model) Page() Page { return m.page }

// Selected returns the selected use case, if any.
func (m Model) Selected() (model.UseCase, bool) {
	if m.selected == nil {
		return model.UseCase{}, false
	}
	return *m.selected, true
}

// Components returns the generated components, or nil before generation.
func (m Model) Components() *pipeline.Components { return m.components }

// Result returns the export result, or nil before export.
func (m Model) Result() *pipeline.Result { return m.result }

// Err returns the last action error.
func (m Model) Err() error { return m.err }

// CanGenerate reports whether "generate components" is enabled.
func (m Model) CanGenerate() bool {
	return m.selected != nil && m.components == nil
}

// CanExport reports whether "generate final artifacts" is enabled.
func (m Model) CanExport() bool {
	return m.components != nil && m.result == nil && !m.exporting
}

func (m *Model) selectUseCase(i int) {
	cases := m.data.UseCases.List()
	if i < 0 || i >= len(cases) {
		return
	}
	uc := cases[i]
	if m.selected != nil && m.selected.ID == uc.ID {
		return
	}
	m.selected = &uc
	m.selection++
	m.components = nil
	m.result = nil
	m.exporting = false
	m.err = nil
	m.status = fmt.Sprintf("Selected %s", uc.Label())
}

func (m *Model) generate() {
	if !m.CanGenerate() {
		return
	}
	now := time.Now
	if m.opts.Now != nil {
		now = m.opts.Now
	}
	c := pipeline.Generate(*m.selected, m.data.Templates, m.lead.Value(), now())
	m.components = &c
	if c.Degraded() {
		m.status = "Warning: " + c.Playbook.Error
	} else {
		m.status = fmt.Sprintf("Generated %d controls", len(c.Playbook.Controls))
	}
	m.setPage(PagePreview)
}

func (m *Model) setPage(p Page) {
	if p < 0 || p >= pageCount {
		return
	}
	m.page = p
	m.viewport.SetContent(m.pageContent())
	m.viewport.GotoTop()
}

// Update handles messages and keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 3)
		m.viewport.SetContent(m.pageContent())
		return m, nil

	case dataLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = "Failed to load reference data"
			return m, nil
		}
		m.data = msg.data
		m.err = nil
		m.status = fmt.Sprintf("Loaded %d use cases from %s", len(msg.data.UseCases.List()), msg.data.Dir)
		return m, nil

	case exportedMsg:
		if msg.selection != m.selection {
			if msg.res != nil {
				m.status = "Earlier export finished: " + msg.res.RunDir
			}
			return m, nil
		}
		m.exporting = false
		if msg.err != nil {
			m.err = msg.err
			m.status = "Export failed"
			return m, nil
		}
		m.result = msg.res
		m.status = "Exported " + msg.res.ArchivePath
		m.setPage(PageExport)
		return m, nil

	case tea.KeyMsg:
		if m.editingLead {
			return m.updateLead(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) updateLead(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.editingLead = false
		m.lead.Blur()
		m.status = "Risk lead: " + m.lead.Value()
		return m, nil
	}
	var cmd tea.Cmd
	m.lead, cmd = m.lead.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "right":
		m.setPage((m.page + 1) % pageCount)
		return m, nil
	case "shift+tab", "left":
		m.setPage((m.page + pageCount - 1) % pageCount)
		return m, nil
	case "1", "2", "3", "4", "5":
		m.setPage(Page(msg.String()[0] - '1'))
		return m, nil
	case "r":
		m.status = "Reloading reference data..."
		return m, loadData(m.opts.DataDir)
	}

	if m.data == nil {
		return m, nil
	}

	switch m.page {
	case PageUseCase:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.data.UseCases.List())-1 {
				m.cursor++
			}
		case "enter":
			m.selectUseCase(m.cursor)
		case "e":
			m.editingLead = true
			m.lead.Focus()
			return m, textinput.Blink
		case "g":
			m.generate()
		}
	case PagePreview:
		if msg.String() == "g" {
			m.generate()
		}
	case PageExport:
		if msg.String() == "x" && m.CanExport() {
			m.exporting = true
			m.status = "Generating final artifacts..."
			m.viewport.SetContent(m.pageContent())
			return m, m.export()
		}
	}

	if m.page != PageUseCase {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Run starts the wizard on the terminal.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}
