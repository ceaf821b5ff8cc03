package plan

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wukongd/wukong/pkg/models"
)

// InvalidPlanError reports a plan that failed validation. It names the
// offending field and the vocabulary it should have matched so the
// caller can see exactly what was rejected.
type InvalidPlanError struct {
	// Field is the plan field that failed validation.
	Field string
	// Value is the rejected value.
	Value string
	// Allowed lists the values the field may take.
	Allowed []string
}

func (e *InvalidPlanError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid plan: %s=%q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid plan: %s=%q, allowed: %s", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// vocabularyStrings returns the node vocabulary for error messages.
func vocabularyStrings() []string {
	ids := models.AllNodeIDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// newPlanID generates a plan ID matching the tg_[a-z0-9]+ format.
func newPlanID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "tg_" + hex[:12]
}

// Build creates a TrackPlan from the canonical template for a track.
func Build(track models.Track, complexity models.Complexity, confidence float64, reasoning string) (*models.TrackPlan, error) {
	phases, ok := Template(track)
	if !ok {
		return nil, &InvalidPlanError{
			Field:   "track",
			Value:   string(track),
			Allowed: []string{"feature", "fix", "refactor", "research", "direct"},
		}
	}

	return &models.TrackPlan{
		ID:         newPlanID(),
		Track:      track,
		Complexity: complexity,
		Confidence: confidence,
		Reasoning:  reasoning,
		Phases:     phases,
	}, nil
}

// Direct builds the safest fallback plan: a single empty phase the
// caller executes directly with no parallelism. Classification
// failures degrade to this plan instead of crashing.
func Direct(reason string) *models.TrackPlan {
	phases, _ := Template(models.TrackDirect)
	return &models.TrackPlan{
		ID:         newPlanID(),
		Track:      models.TrackDirect,
		Complexity: models.ComplexitySimple,
		Confidence: 0,
		Reasoning:  reason,
		Phases:     phases,
	}
}

// Validate checks a candidate plan against the plan invariants:
// phase indices 0-based and contiguous, node IDs from the fixed
// vocabulary, node sets subsets of the track template's slots.
// Duplicate node IDs within one phase are de-duplicated in place and
// reported as warnings rather than rejected. Any other violation
// returns an *InvalidPlanError.
func Validate(p *models.TrackPlan) ([]string, error) {
	if p == nil {
		return nil, &InvalidPlanError{Field: "plan", Value: "<nil>"}
	}

	if !p.Track.Valid() {
		return nil, &InvalidPlanError{
			Field:   "track",
			Value:   string(p.Track),
			Allowed: []string{"feature", "fix", "refactor", "research", "direct"},
		}
	}

	tpl := trackTemplates[p.Track]
	if len(p.Phases) == 0 || len(p.Phases) > len(tpl) {
		return nil, &InvalidPlanError{
			Field: "phases",
			Value: fmt.Sprintf("%d phases", len(p.Phases)),
			Allowed: []string{
				fmt.Sprintf("1-%d phases for track %s", len(tpl), p.Track),
			},
		}
	}

	var warnings []string
	for i := range p.Phases {
		phase := &p.Phases[i]

		if phase.Index != i {
			return nil, &InvalidPlanError{
				Field:   "phase",
				Value:   fmt.Sprintf("%d", phase.Index),
				Allowed: []string{fmt.Sprintf("contiguous 0-based index %d", i)},
			}
		}

		allowed := templateNodeSet(p.Track, i)
		seen := make(map[models.NodeID]bool, len(phase.Nodes))
		deduped := phase.Nodes[:0]
		for _, id := range phase.Nodes {
			if !id.Valid() {
				return nil, &InvalidPlanError{
					Field:   "nodes",
					Value:   string(id),
					Allowed: vocabularyStrings(),
				}
			}
			if !allowed[id] {
				return nil, &InvalidPlanError{
					Field:   "nodes",
					Value:   string(id),
					Allowed: nodeSetStrings(allowed),
				}
			}
			if seen[id] {
				warnings = append(warnings, fmt.Sprintf("phase %d: dropped duplicate node %s", i, id))
				continue
			}
			seen[id] = true
			deduped = append(deduped, id)
		}
		phase.Nodes = deduped
	}

	return warnings, nil
}

// nodeSetStrings renders an allowed-node set in vocabulary order for
// error messages.
func nodeSetStrings(set map[models.NodeID]bool) []string {
	var out []string
	for _, id := range models.AllNodeIDs() {
		if set[id] {
			out = append(out, string(id))
		}
	}
	return out
}
