package models

// Phase is one ordered stage of a track plan. Nodes within a phase may
// run concurrently (up to their cost-tier ceiling); phases run strictly
// by increasing index.
type Phase struct {
	// Index is the 0-based position of this phase in the plan.
	Index int `json:"phase"`
	// Nodes lists the node IDs dispatched in this phase. IDs are
	// unique within a phase.
	Nodes []NodeID `json:"nodes"`
	// Parallel indicates the nodes may be dispatched concurrently.
	Parallel bool `json:"parallel"`
}

// TrackPlan is the execution plan produced for one request. It is
// created once per request and discarded when its phases finish; it is
// never persisted.
type TrackPlan struct {
	// ID is a unique identifier for this plan instance.
	ID string `json:"id,omitempty"`
	// Track is the execution template the plan was built from.
	Track Track `json:"track"`
	// Complexity annotates expected effort. Informational only.
	Complexity Complexity `json:"complexity"`
	// Confidence is the classifier's confidence in [0,1].
	Confidence float64 `json:"confidence"`
	// Reasoning is the classifier's optional explanation.
	Reasoning string `json:"reasoning,omitempty"`
	// Phases are ordered with contiguous 0-based indices.
	Phases []Phase `json:"phases"`
}

// NodeCount returns the total number of nodes across all phases.
func (p *TrackPlan) NodeCount() int {
	n := 0
	for _, phase := range p.Phases {
		n += len(phase.Nodes)
	}
	return n
}

// Classification is a track guess with its confidence, as produced by
// the rule layer or an external planner. A low-confidence prior may be
// passed back into the router as input.
type Classification struct {
	// Track is the guessed execution template.
	Track Track `json:"track"`
	// Complexity is the guessed effort annotation.
	Complexity Complexity `json:"complexity"`
	// Confidence is in [0,1].
	Confidence float64 `json:"confidence"`
	// Reasoning is an optional explanation.
	Reasoning string `json:"reasoning,omitempty"`
	// NeedsLLM reports that the rule layer was not confident and the
	// external planner should be consulted.
	NeedsLLM bool `json:"needs_llm,omitempty"`
	// MatchedRules lists which rules produced this guess.
	MatchedRules []string `json:"matched_rules,omitempty"`
}
