// Package report implements the terminal viewer for completed fleet audits.
// It renders the per-device violation breakdown with severity coloring in a
// scrollable viewport.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/netaudit/netaudit/pkg/buildinfo"
	"github.com/netaudit/netaudit/pkg/fleet"
)

// Model is the Bubbletea model for the fleet report view.
type Model struct {
	run      *fleet.AuditRun
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// NewModel creates a report viewer for a completed run.
func NewModel(run *fleet.AuditRun) Model {
	return Model{run: run}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentH := msg.Height - 6 // reserve for header/footer
		if contentH < 5 {
			contentH = 5
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, contentH)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = contentH
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	// Delegate to viewport for scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the report viewer.
func (m Model) View() string {
	var b strings.Builder

	header := headerStyle.Render(
		titleStyle.Render("netaudit") +
			dimStyle.Render(" "+buildinfo.Version) +
			dimStyle.Render(" | Compliance Report") +
			m.renderRunInfo())
	b.WriteString(header)
	b.WriteString("\n")

	if !m.ready {
		b.WriteString("\n  Initializing...\n")
		return b.String()
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(footerStyle.Render(m.renderFooter()))
	return b.String()
}

func (m Model) renderRunInfo() string {
	if m.run == nil {
		return ""
	}
	tmpl := m.run.TemplateName
	if m.run.TemplateVersion != "" {
		tmpl += " v" + m.run.TemplateVersion
	}
	return dimStyle.Render(fmt.Sprintf(" | %s | %s", tmpl, m.run.FinishedAt.Format("2006-01-02 15:04:05")))
}

func (m Model) renderContent() string {
	var b strings.Builder

	if m.run == nil || m.run.Report == nil {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  No audit results."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(renderSummaryBar(m.run.Report))
	b.WriteString("\n")

	for _, res := range m.run.Report.Results {
		b.WriteString(renderDevice(res))
	}
	return b.String()
}

func (m Model) renderFooter() string {
	verdict := passStyle.Render("COMPLIANT")
	if m.run != nil && m.run.Report != nil && m.run.Report.Failed > 0 {
		verdict = failStyle.Render(fmt.Sprintf("%d NON-COMPLIANT", m.run.Report.Failed))
	}
	return fmt.Sprintf(" [q] Quit  [↑/↓] Scroll  | %s", verdict)
}
