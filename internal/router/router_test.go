package router

import (
	"context"
	"errors"
	"testing"

	"github.com/wukongd/wukong/pkg/models"
)

// stubClassifier is a deterministic stand-in for the language-model
// planner. It counts invocations so tests can assert the escalation
// contract.
type stubClassifier struct {
	calls int
	resp  *PlanResponse
	err   error
}

func (s *stubClassifier) Classify(_ context.Context, _ string, _ models.Classification) (*PlanResponse, error) {
	s.calls++
	return s.resp, s.err
}

func TestRoute_EmptyTask(t *testing.T) {
	r := New()
	for _, task := range []string{"", "   ", "\n\t"} {
		if _, err := r.Route(context.Background(), task); !errors.Is(err, ErrEmptyTask) {
			t.Errorf("Route(%q) error = %v, want ErrEmptyTask", task, err)
		}
	}
}

func TestRoute_FixTrackPhases(t *testing.T) {
	// "Fix the login crash" routes to the fix track with its exact
	// template phases when no planner is installed.
	r := New()

	res, err := r.Route(context.Background(), "Fix the login crash")
	if err != nil {
		t.Fatal(err)
	}

	if res.Plan.Track != models.TrackFix {
		t.Errorf("track = %q, want fix", res.Plan.Track)
	}

	want := []struct {
		nodes    []models.NodeID
		parallel bool
	}{
		{[]models.NodeID{models.NodeEyeExplore, models.NodeNoseAnalyze}, true},
		{[]models.NodeID{models.NodeBodyImplement}, false},
		{[]models.NodeID{models.NodeTongueVerify}, false},
	}

	if len(res.Plan.Phases) != len(want) {
		t.Fatalf("got %d phases, want %d", len(res.Plan.Phases), len(want))
	}
	for i, phase := range res.Plan.Phases {
		if phase.Index != i {
			t.Errorf("phase %d index = %d", i, phase.Index)
		}
		if phase.Parallel != want[i].parallel {
			t.Errorf("phase %d parallel = %v, want %v", i, phase.Parallel, want[i].parallel)
		}
		for j, id := range phase.Nodes {
			if id != want[i].nodes[j] {
				t.Errorf("phase %d node %d = %q, want %q", i, j, id, want[i].nodes[j])
			}
		}
	}
}

func TestRoute_ConfidentRuleNeverEscalates(t *testing.T) {
	stub := &stubClassifier{resp: &PlanResponse{Track: models.TrackFeature, Complexity: models.ComplexitySimple, Confidence: 0.9}}
	r := New(WithClassifier(stub))

	confident := []string{
		"@eye explore the session code",
		"/schedule fix the login flow",
		"track:refactor the handlers",
	}
	for _, task := range confident {
		if _, err := r.Route(context.Background(), task); err != nil {
			t.Fatalf("Route(%q): %v", task, err)
		}
	}

	if stub.calls != 0 {
		t.Errorf("planner invoked %d times for rule-confident inputs, want 0", stub.calls)
	}
}

func TestRoute_LowConfidenceEscalates(t *testing.T) {
	stub := &stubClassifier{resp: &PlanResponse{
		Track:      models.TrackResearch,
		Complexity: models.ComplexitySimple,
		Confidence: 0.85,
		Reasoning:  "ambiguous wording, looks like exploration",
	}}
	r := New(WithClassifier(stub))

	res, err := r.Route(context.Background(), "hmm what about the thing")
	if err != nil {
		t.Fatal(err)
	}

	if stub.calls != 1 {
		t.Fatalf("planner invoked %d times, want 1", stub.calls)
	}
	if !res.Escalated {
		t.Error("result should record the escalation")
	}
	if res.Plan.Track != models.TrackResearch {
		t.Errorf("track = %q, want the planner's research", res.Plan.Track)
	}
	if res.Plan.Confidence != 0.85 {
		t.Errorf("confidence = %.2f, want the planner's 0.85", res.Plan.Confidence)
	}
}

func TestRoute_PlannerErrorFallsBackToDirect(t *testing.T) {
	stub := &stubClassifier{err: errors.New("model timeout")}
	r := New(WithClassifier(stub))

	res, err := r.Route(context.Background(), "hmm what about the thing")
	if err != nil {
		t.Fatalf("planner failure must degrade, not fail: %v", err)
	}

	if res.Plan.Track != models.TrackDirect {
		t.Errorf("fallback track = %q, want direct", res.Plan.Track)
	}
	if res.FallbackReason == "" {
		t.Error("fallback reason must be recorded")
	}
	if len(res.Plan.Phases) != 1 || len(res.Plan.Phases[0].Nodes) != 0 {
		t.Error("fallback plan must be a single empty phase")
	}
}

func TestRoute_PlannerInventedNodeRejected(t *testing.T) {
	stub := &stubClassifier{resp: &PlanResponse{
		Track:      models.TrackFix,
		Complexity: models.ComplexitySimple,
		Confidence: 0.9,
		Phases: []models.Phase{
			{Index: 0, Nodes: []models.NodeID{"hand_deploy"}},
		},
	}}
	r := New(WithClassifier(stub))

	res, err := r.Route(context.Background(), "hmm what about the thing")
	if err != nil {
		t.Fatalf("invalid planner output must degrade, not fail: %v", err)
	}
	if res.Plan.Track != models.TrackDirect {
		t.Errorf("track = %q, want the direct fallback", res.Plan.Track)
	}
	if res.FallbackReason == "" {
		t.Error("the rejection must be recorded as the fallback reason")
	}
}

func TestRoute_PlannerDuplicateNodesRepaired(t *testing.T) {
	stub := &stubClassifier{resp: &PlanResponse{
		Track:      models.TrackFix,
		Complexity: models.ComplexitySimple,
		Confidence: 0.9,
		Phases: []models.Phase{
			{Index: 0, Nodes: []models.NodeID{models.NodeEyeExplore, models.NodeEyeExplore}, Parallel: true},
		},
	}}
	r := New(WithClassifier(stub))

	res, err := r.Route(context.Background(), "hmm what about the thing")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 repair warning, got %v", res.Warnings)
	}
	if len(res.Plan.Phases[0].Nodes) != 1 {
		t.Errorf("duplicate node should be dropped, got %v", res.Plan.Phases[0].Nodes)
	}
}

func TestRoute_NoClassifierUsesRuleResult(t *testing.T) {
	r := New() // no planner installed

	res, err := r.Route(context.Background(), "hmm what about the thing")
	if err != nil {
		t.Fatal(err)
	}
	if res.Plan.Track != models.TrackDirect {
		t.Errorf("track = %q, want the rule layer's direct guess", res.Plan.Track)
	}
	if res.Escalated {
		t.Error("nothing to escalate to without a classifier")
	}
}

func TestRoute_PhaseIndicesContiguousForAllTracks(t *testing.T) {
	r := New()
	tasks := map[string]models.Track{
		"fix the crash":          models.TrackFix,
		"add a new widget":       models.TrackFeature,
		"refactor the handlers":  models.TrackRefactor,
		"investigate the module": models.TrackResearch,
	}

	for task, track := range tasks {
		res, err := r.Route(context.Background(), task)
		if err != nil {
			t.Fatalf("Route(%q): %v", task, err)
		}
		if res.Plan.Track != track {
			t.Errorf("Route(%q) track = %q, want %q", task, res.Plan.Track, track)
		}
		for i, phase := range res.Plan.Phases {
			if phase.Index != i {
				t.Errorf("Route(%q) phase %d has index %d", task, i, phase.Index)
			}
			for _, id := range phase.Nodes {
				if !id.Valid() {
					t.Errorf("Route(%q) emitted node %q outside the vocabulary", task, id)
				}
			}
		}
	}
}

func TestParsePlanResponse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Track
		wantErr bool
	}{
		{
			"plain json",
			`{"track": "fix", "complexity": "simple", "confidence": 0.9, "reasoning": "crash report"}`,
			models.TrackFix,
			false,
		},
		{
			"fenced json",
			"```json\n{\"track\": \"refactor\", \"complexity\": \"medium\", \"confidence\": 0.8}\n```",
			models.TrackRefactor,
			false,
		},
		{
			"unknown track degrades to direct",
			`{"track": "deploy", "complexity": "simple", "confidence": 0.9}`,
			models.TrackDirect,
			false,
		},
		{
			"not json",
			"I think this is a fix task.",
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePlanResponse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Track != tt.want {
				t.Errorf("track = %q, want %q", got.Track, tt.want)
			}
		})
	}
}

func TestParsePlanResponse_ClampsConfidence(t *testing.T) {
	got, err := parsePlanResponse(`{"track": "fix", "complexity": "simple", "confidence": 1.7}`)
	if err != nil {
		t.Fatal(err)
	}
	if got.Confidence != 1.0 {
		t.Errorf("confidence = %.2f, want clamped to 1.0", got.Confidence)
	}
}
