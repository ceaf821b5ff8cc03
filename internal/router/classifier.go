package router

import (
	"context"

	"github.com/wukongd/wukong/pkg/models"
)

// PlanResponse is the planner output schema shared by the rule layer
// and the external planner: a track, an effort annotation, a
// confidence, and optionally an explicit phase list. An empty phase
// list means "use the track's template". Phases coming back from an
// external planner are validated against the fixed node vocabulary
// before anything trusts them.
type PlanResponse struct {
	Track      models.Track      `json:"track"`
	Complexity models.Complexity `json:"complexity"`
	Confidence float64           `json:"confidence"`
	Reasoning  string            `json:"reasoning,omitempty"`
	Phases     []models.Phase    `json:"phases,omitempty"`
}

// Classifier is the external planner collaborator, consulted only when
// the rule layer's confidence is below the escalation threshold. The
// production implementation calls a language model; tests substitute a
// deterministic stub behind the same contract.
type Classifier interface {
	// Classify maps a task to a plan response. The prior carries the
	// rule layer's low-confidence guess so the planner can take it
	// into account.
	Classify(ctx context.Context, task string, prior models.Classification) (*PlanResponse, error)
}
