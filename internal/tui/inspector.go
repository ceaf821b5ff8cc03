// Package tui provides the interactive plan inspector for wukong.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wukongd/wukong/internal/render"
	"github.com/wukongd/wukong/internal/store"
	"github.com/wukongd/wukong/pkg/models"
)

// Inspector is the bubbletea model for browsing routed plans.
type Inspector struct {
	// records is the list of plans, newest first.
	records []store.PlanRecord
	// results maps plan IDs to their recorded task results.
	results map[string][]models.TaskResult
	// selected is the index of the highlighted plan.
	selected int
	// showMermaid toggles the detail pane between the plan view and
	// the Mermaid graph.
	showMermaid bool
	// detail scrolls the selected plan's rendering.
	detail viewport.Model
	// renderer draws plan views for the detail pane.
	renderer *render.Renderer
	// width is the terminal width.
	width int
	// height is the terminal height.
	height int
	// ready is set once the first window size arrives.
	ready bool
	// quitting indicates the inspector is shutting down.
	quitting bool

	selectedStyle lipgloss.Style
	listStyle     lipgloss.Style
	footerStyle   lipgloss.Style
}

// NewInspector creates an inspector over the given plans.
func NewInspector(records []store.PlanRecord, results map[string][]models.TaskResult) *Inspector {
	return &Inspector{
		records:  records,
		results:  results,
		renderer: render.New(),
		selectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		listStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		footerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// Run starts the inspector and blocks until the user quits.
func Run(records []store.PlanRecord, results map[string][]models.TaskResult) error {
	p := tea.NewProgram(NewInspector(records, results), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Inspector) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refreshDetail()
			}
		case "down", "j":
			if m.selected < len(m.records)-1 {
				m.selected++
				m.refreshDetail()
			}
		case "m":
			m.showMermaid = !m.showMermaid
			m.refreshDetail()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := m.listHeight()
		detailHeight := m.height - listHeight - 4
		if detailHeight < 3 {
			detailHeight = 3
		}
		if !m.ready {
			m.detail = viewport.New(m.width, detailHeight)
			m.ready = true
		} else {
			m.detail.Width = m.width
			m.detail.Height = detailHeight
		}
		m.refreshDetail()
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Inspector) View() string {
	if m.quitting {
		return ""
	}
	if len(m.records) == 0 {
		return "No plans recorded yet\n\nPress q to exit"
	}
	if !m.ready {
		return "Loading..."
	}

	return fmt.Sprintf("%s\n%s\n%s", m.viewList(), m.detail.View(), m.viewFooter())
}

// viewList renders the plan list with the selection marker.
func (m *Inspector) viewList() string {
	var b strings.Builder
	for i, rec := range m.records {
		line := fmt.Sprintf("%s  %-8s  %s", rec.Plan.ID, rec.Plan.Track, truncate(rec.Task, 50))
		if i == m.selected {
			b.WriteString(m.selectedStyle.Render("> " + line))
		} else {
			b.WriteString(m.listStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Inspector) viewFooter() string {
	mode := "plan"
	if m.showMermaid {
		mode = "mermaid"
	}
	return m.footerStyle.Render(
		fmt.Sprintf("view: %s | up/down select | m toggle mermaid | q quit", mode))
}

// refreshDetail re-renders the detail pane for the selected plan.
func (m *Inspector) refreshDetail() {
	if !m.ready || len(m.records) == 0 {
		return
	}

	rec := m.records[m.selected]
	statuses := statusMap(m.results[rec.Plan.ID])

	var content string
	if m.showMermaid {
		content = render.Mermaid(rec.Plan, statuses)
	} else {
		content = m.renderer.Plan(rec.Plan, statuses)
	}
	m.detail.SetContent(content)
	m.detail.GotoTop()
}

// listHeight caps the plan list so the detail pane keeps some room.
func (m *Inspector) listHeight() int {
	h := len(m.records)
	if max := m.height / 3; h > max && max > 0 {
		h = max
	}
	return h
}

// statusMap reduces recorded results to the latest status per node.
func statusMap(results []models.TaskResult) map[models.NodeID]models.ResultStatus {
	if len(results) == 0 {
		return nil
	}
	statuses := make(map[models.NodeID]models.ResultStatus, len(results))
	for _, r := range results {
		statuses[r.Node] = r.Status
	}
	return statuses
}

// truncate shortens a string to maxLen with an ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
