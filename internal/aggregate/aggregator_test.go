package aggregate

import (
	"strings"
	"testing"

	"github.com/wukongd/wukong/pkg/models"
)

func TestAggregator_StatusHeader(t *testing.T) {
	// Scenario: one completed and one failed result aggregate without
	// error and the header reports both counts.
	agg := New()
	agg.AddResult(models.TaskResult{
		TaskID: "t1",
		Node:   models.NodeEyeExplore,
		Status: models.StatusCompleted,
		MarkedItems: []models.MarkedContent{
			Mark("found the crash site", models.ImportanceHigh, "issue", "eye_explore"),
		},
	})
	agg.AddResult(models.TaskResult{
		TaskID: "t2",
		Node:   models.NodeNoseAnalyze,
		Status: models.StatusFailed,
	})

	out := agg.Aggregate(0)
	if !strings.Contains(out, "completed: 1") {
		t.Errorf("header missing completed count:\n%s", out)
	}
	if !strings.Contains(out, "failed: 1") {
		t.Errorf("header missing failed count:\n%s", out)
	}
	if !strings.Contains(out, "2 tasks") {
		t.Errorf("header missing task count:\n%s", out)
	}
}

func TestAggregator_UnknownStatusSurfaced(t *testing.T) {
	agg := New()
	agg.AddResult(models.TaskResult{
		TaskID: "t1",
		Node:   models.NodeEyeExplore,
		Status: models.ResultStatus("exploded"),
	})

	out := agg.Aggregate(0)
	if !strings.Contains(out, "exploded (unknown): 1") {
		t.Errorf("unknown status must be stored and surfaced, not rejected:\n%s", out)
	}
}

func TestAggregator_CompactSummaryIsHighOnlySubset(t *testing.T) {
	agg := New()
	agg.AddResult(models.TaskResult{
		TaskID: "t1",
		Node:   models.NodeNoseAnalyze,
		Status: models.StatusCompleted,
		MarkedItems: []models.MarkedContent{
			Mark("sql injection in login", models.ImportanceHigh, "issue", "nose_analyze"),
			Mark("style nit in helper", models.ImportanceLow, "detail", "nose_analyze"),
		},
	})
	agg.AddResult(models.TaskResult{
		TaskID: "t2",
		Node:   models.NodeEyeExplore,
		Status: models.StatusCompleted,
		MarkedItems: []models.MarkedContent{
			Mark("auth lives in internal/auth", models.ImportanceMedium, "file", "eye_explore"),
		},
	})

	full := agg.Aggregate(0)
	compact := agg.CompactSummary(0)

	if !strings.Contains(compact, "sql injection in login") {
		t.Errorf("compact summary missing HIGH item:\n%s", compact)
	}
	if strings.Contains(compact, "style nit") || strings.Contains(compact, "internal/auth") {
		t.Errorf("compact summary must include HIGH items only:\n%s", compact)
	}
	// Every content line of the compact summary must also appear in
	// the full aggregate.
	for _, item := range agg.HighImportanceOnly() {
		if strings.Contains(compact, item.Content) && !strings.Contains(full, item.Content) {
			t.Errorf("compact summary includes %q which the full aggregate lacks", item.Content)
		}
	}
}

func TestAggregator_HighImportanceOnlyOrder(t *testing.T) {
	agg := New()
	agg.AddResult(models.TaskResult{
		TaskID: "t1",
		Status: models.StatusCompleted,
		MarkedItems: []models.MarkedContent{
			Mark("first", models.ImportanceHigh, "issue", "n1"),
			Mark("skipped", models.ImportanceLow, "detail", "n1"),
			Mark("second", models.ImportanceHigh, "issue", "n1"),
		},
	})
	agg.AddResult(models.TaskResult{
		TaskID: "t2",
		Status: models.StatusCompleted,
		MarkedItems: []models.MarkedContent{
			Mark("third", models.ImportanceHigh, "issue", "n2"),
		},
	})

	high := agg.HighImportanceOnly()
	want := []string{"first", "second", "third"}
	if len(high) != len(want) {
		t.Fatalf("got %d HIGH items, want %d", len(high), len(want))
	}
	for i, item := range high {
		if item.Content != want[i] {
			t.Errorf("position %d = %q, want %q (arrival order)", i, item.Content, want[i])
		}
	}
}

func TestAggregator_Empty(t *testing.T) {
	agg := New()
	if out := agg.Aggregate(0); out != "no task results" {
		t.Errorf("Aggregate on empty aggregator = %q", out)
	}
	if out := agg.CompactSummary(0); out != "no task results" {
		t.Errorf("CompactSummary on empty aggregator = %q", out)
	}
}

func TestAggregator_Clear(t *testing.T) {
	agg := New()
	agg.AddResult(models.TaskResult{TaskID: "t1", Status: models.StatusCompleted})
	if agg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", agg.Len())
	}

	agg.Clear()
	if agg.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", agg.Len())
	}
	if out := agg.Aggregate(0); out != "no task results" {
		t.Errorf("cleared aggregator should report no results, got %q", out)
	}
}

func TestAggregator_PendingCounted(t *testing.T) {
	agg := New()
	agg.AddResult(models.TaskResult{TaskID: "t1", Status: models.StatusPending})
	out := agg.Aggregate(0)
	if !strings.Contains(out, "pending: 1") {
		t.Errorf("pending results must be counted:\n%s", out)
	}
}
