package render

import (
	"strings"
	"testing"

	"github.com/wukongd/wukong/internal/plan"
	"github.com/wukongd/wukong/pkg/models"
)

func buildPlan(t *testing.T, track models.Track) *models.TrackPlan {
	t.Helper()
	p, err := plan.Build(track, models.ComplexitySimple, 0.9, "")
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestFlowLine(t *testing.T) {
	tests := []struct {
		track models.Track
		want  string
	}{
		{models.TrackFeature, "[ear+eye] -> [mind] -> [body] -> [tongue+nose]"},
		{models.TrackFix, "[eye+nose] -> [body] -> [tongue]"},
		{models.TrackRefactor, "[eye] -> [mind] -> [body] -> [nose+tongue]"},
		{models.TrackResearch, "[eye]"},
		{models.TrackDirect, "[direct]"},
	}

	for _, tt := range tests {
		t.Run(string(tt.track), func(t *testing.T) {
			var p *models.TrackPlan
			if tt.track == models.TrackDirect {
				p = plan.Direct("")
			} else {
				p = buildPlan(t, tt.track)
			}
			if got := FlowLine(p); got != tt.want {
				t.Errorf("FlowLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFlowLine_Nil(t *testing.T) {
	if got := FlowLine(nil); got != "[direct]" {
		t.Errorf("FlowLine(nil) = %q", got)
	}
}

func TestMermaid_FixPlan(t *testing.T) {
	p := buildPlan(t, models.TrackFix)
	statuses := map[models.NodeID]models.ResultStatus{
		models.NodeEyeExplore:  models.StatusCompleted,
		models.NodeNoseAnalyze: models.StatusRunning,
	}

	out := Mermaid(p, statuses)

	if !strings.HasPrefix(out, "graph TD") {
		t.Errorf("output does not start with graph TD:\n%s", out)
	}
	for _, want := range []string{
		"eye_explore[eye]",
		"nose_analyze[nose]",
		"body_implement[body]",
		"eye_explore --> body_implement",
		"nose_analyze --> body_implement",
		"body_implement --> tongue_verify",
		"classDef done fill:#90EE90",
		"class eye_explore done",
		"class nose_analyze running",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMermaid_DirectPlan(t *testing.T) {
	out := Mermaid(plan.Direct("trivial"), nil)
	if !strings.Contains(out, "direct[Direct execution]") {
		t.Errorf("direct plan output:\n%s", out)
	}
}

func TestCompactLine(t *testing.T) {
	p := buildPlan(t, models.TrackFix)

	got := CompactLine(p, map[models.NodeID]models.ResultStatus{
		models.NodeEyeExplore:  models.StatusCompleted,
		models.NodeNoseAnalyze: models.StatusCompleted,
		models.NodeBodyImplement: models.StatusRunning,
	})

	if !strings.Contains(got, "[Fix]") {
		t.Errorf("missing track label: %q", got)
	}
	if !strings.Contains(got, "(2/4)") {
		t.Errorf("missing completion count: %q", got)
	}
	if !strings.Contains(got, "Phase 2/3") {
		t.Errorf("missing phase indicator: %q", got)
	}
}

func TestCompactLine_FailedNodes(t *testing.T) {
	p := buildPlan(t, models.TrackResearch)

	got := CompactLine(p, map[models.NodeID]models.ResultStatus{
		models.NodeEyeExplore: models.StatusFailed,
	})
	if !strings.Contains(got, "[!1 failed]") {
		t.Errorf("missing failure marker: %q", got)
	}
}

func TestCompactLine_Direct(t *testing.T) {
	got := CompactLine(plan.Direct(""), nil)
	if got != "[Direct] direct" {
		t.Errorf("CompactLine = %q", got)
	}
}

func TestPlanView(t *testing.T) {
	r := New()
	p := buildPlan(t, models.TrackFix)

	out := r.Plan(p, map[models.NodeID]models.ResultStatus{
		models.NodeEyeExplore: models.StatusCompleted,
	})

	for _, want := range []string{
		p.ID,
		"fix",
		"Phase 0:",
		"completed",
		"pending",
		"(parallel)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("plan view missing %q:\n%s", want, out)
		}
	}
}

func TestPlanView_Direct(t *testing.T) {
	r := New()
	out := r.Plan(plan.Direct("trivial request"), nil)
	if !strings.Contains(out, "Direct execution") {
		t.Errorf("direct plan view:\n%s", out)
	}
}
