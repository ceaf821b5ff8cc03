// Package models defines the shared types of the planning core: tracks,
// nodes, plans, and the marked content that flows back from workers.
package models

// NodeID identifies a unit of planned work. IDs are drawn from a fixed
// closed vocabulary; anything else is invalid input.
type NodeID string

const (
	// NodeEyeExplore searches and explores the codebase.
	NodeEyeExplore NodeID = "eye_explore"
	// NodeEarUnderstand clarifies requirements and constraints.
	NodeEarUnderstand NodeID = "ear_understand"
	// NodeNoseAnalyze scans for problems and risks.
	NodeNoseAnalyze NodeID = "nose_analyze"
	// NodeNoseReview reviews produced changes.
	NodeNoseReview NodeID = "nose_review"
	// NodeTongueVerify writes and runs tests.
	NodeTongueVerify NodeID = "tongue_verify"
	// NodeBodyImplement writes the actual change.
	NodeBodyImplement NodeID = "body_implement"
	// NodeMindDesign makes architecture and design decisions.
	NodeMindDesign NodeID = "mind_design"
)

// Valid returns true if the node ID belongs to the fixed vocabulary.
func (n NodeID) Valid() bool {
	_, ok := nodeSpecs[n]
	return ok
}

// Role returns the role behind a node ID, or an empty string for an
// unknown ID.
func (n NodeID) Role() Role {
	if spec, ok := nodeSpecs[n]; ok {
		return spec.Role
	}
	return ""
}

// Role is the worker role a node dispatches to.
type Role string

const (
	RoleEye    Role = "eye"
	RoleEar    Role = "ear"
	RoleNose   Role = "nose"
	RoleTongue Role = "tongue"
	RoleBody   Role = "body"
	RoleMind   Role = "mind"
)

// Valid returns true if the role is a known value.
func (r Role) Valid() bool {
	switch r {
	case RoleEye, RoleEar, RoleNose, RoleTongue, RoleBody, RoleMind:
		return true
	default:
		return false
	}
}

// CostTier classifies how expensive a role is to run, which bounds how
// many instances may run concurrently within one phase.
type CostTier string

const (
	// TierCheap roles may run many instances at once and usually in
	// the background.
	TierCheap CostTier = "CHEAP"
	// TierMedium roles run 2-3 instances with optional background.
	TierMedium CostTier = "MEDIUM"
	// TierExpensive roles run exactly one instance, never in the
	// background.
	TierExpensive CostTier = "EXPENSIVE"
)

// Valid returns true if the tier is a known value.
func (t CostTier) Valid() bool {
	switch t {
	case TierCheap, TierMedium, TierExpensive:
		return true
	default:
		return false
	}
}

// NodeSpec is the static description of a node: its role, cost tier,
// and whether background execution is allowed. The table is fixed at
// startup; roles are never discovered at runtime.
type NodeSpec struct {
	// ID is the node identifier from the fixed vocabulary.
	ID NodeID `json:"id"`
	// Role is the worker role this node dispatches to.
	Role Role `json:"role"`
	// Tier is the cost tier bounding concurrency for the role.
	Tier CostTier `json:"tier"`
	// Background indicates whether the node may run detached.
	Background bool `json:"background"`
}

// nodeSpecs is the closed node vocabulary.
var nodeSpecs = map[NodeID]NodeSpec{
	NodeEyeExplore:    {ID: NodeEyeExplore, Role: RoleEye, Tier: TierCheap, Background: true},
	NodeEarUnderstand: {ID: NodeEarUnderstand, Role: RoleEar, Tier: TierCheap, Background: false},
	NodeNoseAnalyze:   {ID: NodeNoseAnalyze, Role: RoleNose, Tier: TierCheap, Background: true},
	NodeNoseReview:    {ID: NodeNoseReview, Role: RoleNose, Tier: TierCheap, Background: true},
	NodeTongueVerify:  {ID: NodeTongueVerify, Role: RoleTongue, Tier: TierMedium, Background: false},
	NodeBodyImplement: {ID: NodeBodyImplement, Role: RoleBody, Tier: TierExpensive, Background: false},
	NodeMindDesign:    {ID: NodeMindDesign, Role: RoleMind, Tier: TierExpensive, Background: false},
}

// Spec returns the static NodeSpec for a node ID.
// The second return value is false for IDs outside the vocabulary.
func (n NodeID) Spec() (NodeSpec, bool) {
	spec, ok := nodeSpecs[n]
	return spec, ok
}

// AllNodeIDs returns the fixed node vocabulary in a stable order.
func AllNodeIDs() []NodeID {
	return []NodeID{
		NodeEyeExplore,
		NodeEarUnderstand,
		NodeNoseAnalyze,
		NodeNoseReview,
		NodeTongueVerify,
		NodeBodyImplement,
		NodeMindDesign,
	}
}
