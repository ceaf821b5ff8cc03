package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wukongd/wukong/internal/plan"
	"github.com/wukongd/wukong/internal/store"
	"github.com/wukongd/wukong/pkg/models"
)

func testRecords(t *testing.T) []store.PlanRecord {
	t.Helper()
	fix, err := plan.Build(models.TrackFix, models.ComplexitySimple, 0.9, "")
	if err != nil {
		t.Fatal(err)
	}
	research, err := plan.Build(models.TrackResearch, models.ComplexitySimple, 0.5, "")
	if err != nil {
		t.Fatal(err)
	}
	return []store.PlanRecord{
		{Plan: fix, Task: "fix the login crash"},
		{Plan: research, Task: "explore the session code"},
	}
}

func sized(m *Inspector) *Inspector {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(*Inspector)
}

func TestInspector_EmptyState(t *testing.T) {
	m := NewInspector(nil, nil)
	view := m.View()
	if !strings.Contains(view, "No plans recorded") {
		t.Errorf("empty view = %q", view)
	}
}

func TestInspector_ListsPlans(t *testing.T) {
	records := testRecords(t)
	m := sized(NewInspector(records, nil))

	view := m.View()
	for _, rec := range records {
		if !strings.Contains(view, rec.Plan.ID) {
			t.Errorf("view missing plan %s", rec.Plan.ID)
		}
	}
	if !strings.Contains(view, "fix the login crash") {
		t.Error("view missing the task text")
	}
}

func TestInspector_Selection(t *testing.T) {
	m := sized(NewInspector(testRecords(t), nil))

	if m.selected != 0 {
		t.Fatalf("initial selection = %d", m.selected)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(*Inspector)
	if m.selected != 1 {
		t.Errorf("selection after down = %d, want 1", m.selected)
	}

	// Moving past the end stays on the last record.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(*Inspector)
	if m.selected != 1 {
		t.Errorf("selection after second down = %d, want 1", m.selected)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(*Inspector)
	if m.selected != 0 {
		t.Errorf("selection after up = %d, want 0", m.selected)
	}
}

func TestInspector_MermaidToggle(t *testing.T) {
	m := sized(NewInspector(testRecords(t), nil))

	if !strings.Contains(m.View(), "view: plan") {
		t.Error("footer should start in plan mode")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m = updated.(*Inspector)

	if !strings.Contains(m.View(), "view: mermaid") {
		t.Error("footer should show mermaid mode after toggle")
	}
	if !strings.Contains(m.View(), "graph TD") {
		t.Error("detail pane should show the mermaid graph")
	}
}

func TestInspector_Quit(t *testing.T) {
	m := sized(NewInspector(testRecords(t), nil))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(*Inspector)

	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if !m.quitting {
		t.Error("quitting flag not set")
	}
}

func TestStatusMap(t *testing.T) {
	results := []models.TaskResult{
		{TaskID: "a", Node: models.NodeEyeExplore, Status: models.StatusRunning},
		{TaskID: "b", Node: models.NodeEyeExplore, Status: models.StatusCompleted},
	}
	statuses := statusMap(results)
	if statuses[models.NodeEyeExplore] != models.StatusCompleted {
		t.Errorf("latest status should win, got %q", statuses[models.NodeEyeExplore])
	}
	if statusMap(nil) != nil {
		t.Error("no results should map to nil")
	}
}
