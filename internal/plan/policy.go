package plan

import "github.com/wukongd/wukong/pkg/models"

// RolePolicy bounds how many instances of a role may run at once
// within a phase, and whether the role may run in the background.
type RolePolicy struct {
	// Role is the worker role this policy applies to.
	Role models.Role `json:"role"`
	// Tier is the role's cost tier.
	Tier models.CostTier `json:"tier"`
	// MaxConcurrent is the per-phase instance ceiling.
	MaxConcurrent int `json:"max_concurrent"`
	// Background indicates background execution is the default.
	Background bool `json:"background"`
}

// rolePolicies is the fixed role -> cost-tier table. Built at startup,
// never extended at runtime; unknown roles are rejected.
var rolePolicies = map[models.Role]RolePolicy{
	models.RoleEye:    {Role: models.RoleEye, Tier: models.TierCheap, MaxConcurrent: 10, Background: true},
	models.RoleEar:    {Role: models.RoleEar, Tier: models.TierCheap, MaxConcurrent: 10, Background: false},
	models.RoleNose:   {Role: models.RoleNose, Tier: models.TierCheap, MaxConcurrent: 5, Background: true},
	models.RoleTongue: {Role: models.RoleTongue, Tier: models.TierMedium, MaxConcurrent: 3, Background: false},
	models.RoleBody:   {Role: models.RoleBody, Tier: models.TierExpensive, MaxConcurrent: 1, Background: false},
	models.RoleMind:   {Role: models.RoleMind, Tier: models.TierExpensive, MaxConcurrent: 1, Background: false},
}

// PolicyFor returns the concurrency policy for a role.
// The second return value is false for unknown roles.
func PolicyFor(role models.Role) (RolePolicy, bool) {
	p, ok := rolePolicies[role]
	return p, ok
}

// CanDispatch reports whether one more node of the given role may start
// given the currently running instance counts per role. EXPENSIVE roles
// share a single slot: a running body node blocks a mind node and vice
// versa until it reaches a terminal status.
func CanDispatch(role models.Role, running map[models.Role]int) bool {
	policy, ok := rolePolicies[role]
	if !ok {
		return false
	}

	if running[role] >= policy.MaxConcurrent {
		return false
	}

	if policy.Tier == models.TierExpensive {
		for r, n := range running {
			other, ok := rolePolicies[r]
			if !ok || n == 0 {
				continue
			}
			if other.Tier == models.TierExpensive {
				return false
			}
		}
	}

	return true
}

// BackgroundAllowed reports whether a node may run detached. EXPENSIVE
// nodes never run in the background.
func BackgroundAllowed(id models.NodeID) bool {
	spec, ok := id.Spec()
	if !ok {
		return false
	}
	if spec.Tier == models.TierExpensive {
		return false
	}
	return spec.Background
}
