// Package render turns track plans into terminal and Mermaid views.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wukongd/wukong/pkg/models"
)

// Status symbols for phase progress lines.
const (
	symbolDone    = "✓" // checkmark
	symbolRunning = "▶" // play triangle
	symbolPending = "○" // empty circle
	symbolFailed  = "✗" // x mark
)

// Renderer renders plans with a fixed style set.
type Renderer struct {
	headerStyle  lipgloss.Style
	labelStyle   lipgloss.Style
	valueStyle   lipgloss.Style
	doneStyle    lipgloss.Style
	runningStyle lipgloss.Style
	failedStyle  lipgloss.Style
	pendingStyle lipgloss.Style
	dimStyle     lipgloss.Style
}

// New creates a Renderer with the default styles.
func New() *Renderer {
	return &Renderer{
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),
		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		valueStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		doneStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")), // Green
		runningStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")), // Blue
		failedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")), // Red
		pendingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")), // Gray
		dimStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}

// Plan renders a full plan view with one line per phase. Statuses may
// be nil, in which case every node renders as pending.
func (r *Renderer) Plan(p *models.TrackPlan, statuses map[models.NodeID]models.ResultStatus) string {
	if p == nil {
		return r.dimStyle.Render("(no plan)")
	}

	var b strings.Builder

	b.WriteString(r.headerStyle.Render(fmt.Sprintf("Plan %s", p.ID)))
	b.WriteString("\n")
	b.WriteString(r.labelStyle.Render("Track: "))
	b.WriteString(r.valueStyle.Render(string(p.Track)))
	b.WriteString(r.labelStyle.Render("  Complexity: "))
	b.WriteString(r.valueStyle.Render(string(p.Complexity)))
	b.WriteString(r.labelStyle.Render("  Confidence: "))
	b.WriteString(r.valueStyle.Render(fmt.Sprintf("%.2f", p.Confidence)))
	b.WriteString("\n")
	if p.Reasoning != "" {
		b.WriteString(r.dimStyle.Render(p.Reasoning))
		b.WriteString("\n")
	}

	b.WriteString(FlowLine(p))
	b.WriteString("\n")

	if len(p.Phases) == 0 || p.NodeCount() == 0 {
		b.WriteString(r.dimStyle.Render("Direct execution, no scheduled nodes"))
		b.WriteString("\n")
		return b.String()
	}

	for _, phase := range p.Phases {
		b.WriteString(r.phaseLine(phase, statuses))
		b.WriteString("\n")
	}

	return b.String()
}

// phaseLine renders one "Phase N: ..." line.
func (r *Renderer) phaseLine(phase models.Phase, statuses map[models.NodeID]models.ResultStatus) string {
	parts := make([]string, 0, len(phase.Nodes))
	for _, id := range phase.Nodes {
		status := models.StatusPending
		if statuses != nil {
			if s, ok := statuses[id]; ok {
				status = s
			}
		}
		parts = append(parts, r.nodePart(id, status))
	}

	line := fmt.Sprintf("Phase %d: %s", phase.Index, strings.Join(parts, " | "))
	if phase.Parallel && len(phase.Nodes) > 1 {
		line += r.dimStyle.Render(" (parallel)")
	}
	return line
}

func (r *Renderer) nodePart(id models.NodeID, status models.ResultStatus) string {
	role := string(id.Role())
	switch status {
	case models.StatusCompleted:
		return r.doneStyle.Render(symbolDone+" "+role) + " completed"
	case models.StatusRunning:
		return r.runningStyle.Render(symbolRunning+" "+role) + " running..."
	case models.StatusFailed:
		return r.failedStyle.Render(symbolFailed+" "+role) + " failed"
	default:
		return r.pendingStyle.Render(symbolPending+" "+role) + " pending"
	}
}

// FlowLine renders the one-line DAG flow of a plan, for example
// "[ear+eye] -> [mind] -> [body] -> [tongue+nose]". An empty plan
// renders "[direct]".
func FlowLine(p *models.TrackPlan) string {
	if p == nil || p.NodeCount() == 0 {
		return "[direct]"
	}

	parts := make([]string, 0, len(p.Phases))
	for _, phase := range p.Phases {
		if len(phase.Nodes) == 0 {
			continue
		}
		roles := make([]string, len(phase.Nodes))
		for i, id := range phase.Nodes {
			roles[i] = string(id.Role())
		}
		parts = append(parts, "["+strings.Join(roles, "+")+"]")
	}
	return strings.Join(parts, " -> ")
}

// CompactLine renders a single-line progress indicator like
// "[Fix] 60% (3/5) Phase 2/3".
func CompactLine(p *models.TrackPlan, statuses map[models.NodeID]models.ResultStatus) string {
	if p == nil {
		return "[No plan]"
	}

	total := p.NodeCount()
	if total == 0 {
		return fmt.Sprintf("[%s] direct", titleTrack(p.Track))
	}

	completed := 0
	failed := 0
	currentPhase := len(p.Phases) - 1
	foundCurrent := false
	for i, phase := range p.Phases {
		phaseDone := true
		for _, id := range phase.Nodes {
			switch statuses[id] {
			case models.StatusCompleted:
				completed++
			case models.StatusFailed:
				failed++
			default:
				phaseDone = false
			}
		}
		if !phaseDone && !foundCurrent {
			currentPhase = i
			foundCurrent = true
		}
	}

	percent := 0
	if total > 0 {
		percent = completed * 100 / total
	}

	line := fmt.Sprintf("[%s] %d%% (%d/%d) Phase %d/%d",
		titleTrack(p.Track), percent, completed, total, currentPhase+1, len(p.Phases))
	if failed > 0 {
		line += fmt.Sprintf(" [!%d failed]", failed)
	}
	return line
}

// Mermaid renders the plan as a Mermaid graph. Every node in a phase
// gets an edge to every node in the next phase. Statuses color the
// nodes when provided.
func Mermaid(p *models.TrackPlan, statuses map[models.NodeID]models.ResultStatus) string {
	if p == nil || p.NodeCount() == 0 {
		return "graph TD\n    direct[Direct execution]"
	}

	lines := []string{"graph TD"}

	statusNodes := map[string][]string{}
	for _, phase := range p.Phases {
		for _, id := range phase.Nodes {
			lines = append(lines, fmt.Sprintf("    %s[%s]", id, id.Role()))
			switch statuses[id] {
			case models.StatusCompleted:
				statusNodes["done"] = append(statusNodes["done"], string(id))
			case models.StatusRunning:
				statusNodes["running"] = append(statusNodes["running"], string(id))
			case models.StatusFailed:
				statusNodes["failed"] = append(statusNodes["failed"], string(id))
			}
		}
	}

	var edges []string
	for i := 0; i+1 < len(p.Phases); i++ {
		for _, from := range p.Phases[i].Nodes {
			for _, to := range p.Phases[i+1].Nodes {
				edges = append(edges, fmt.Sprintf("    %s --> %s", from, to))
			}
		}
	}
	if len(edges) > 0 {
		lines = append(lines, "")
		lines = append(lines, edges...)
	}

	lines = append(lines, "")
	lines = append(lines, "    classDef done fill:#90EE90")
	lines = append(lines, "    classDef running fill:#87CEEB")
	lines = append(lines, "    classDef failed fill:#FFB6C1")
	for _, status := range []string{"done", "running", "failed"} {
		if ids := statusNodes[status]; len(ids) > 0 {
			lines = append(lines, fmt.Sprintf("    class %s %s", strings.Join(ids, ","), status))
		}
	}

	return strings.Join(lines, "\n")
}

// MermaidFenced wraps the Mermaid graph in a markdown code fence.
func MermaidFenced(p *models.TrackPlan, statuses map[models.NodeID]models.ResultStatus) string {
	return "```mermaid\n" + Mermaid(p, statuses) + "\n```"
}

// titleTrack capitalizes a track name for display.
func titleTrack(track models.Track) string {
	s := string(track)
	if s == "" {
		return "Unknown"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
