package models

import "testing"

func TestNodeID_Valid(t *testing.T) {
	tests := []struct {
		name string
		id   NodeID
		want bool
	}{
		{"eye_explore is valid", NodeEyeExplore, true},
		{"ear_understand is valid", NodeEarUnderstand, true},
		{"nose_analyze is valid", NodeNoseAnalyze, true},
		{"nose_review is valid", NodeNoseReview, true},
		{"tongue_verify is valid", NodeTongueVerify, true},
		{"body_implement is valid", NodeBodyImplement, true},
		{"mind_design is valid", NodeMindDesign, true},
		{"empty string is invalid", NodeID(""), false},
		{"invented id is invalid", NodeID("hand_deploy"), false},
		{"bare role is invalid", NodeID("eye"), false},
		{"uppercase is invalid", NodeID("EYE_EXPLORE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Valid(); got != tt.want {
				t.Errorf("NodeID(%q).Valid() = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestNodeID_Role(t *testing.T) {
	tests := []struct {
		id   NodeID
		want Role
	}{
		{NodeEyeExplore, RoleEye},
		{NodeEarUnderstand, RoleEar},
		{NodeNoseAnalyze, RoleNose},
		{NodeNoseReview, RoleNose},
		{NodeTongueVerify, RoleTongue},
		{NodeBodyImplement, RoleBody},
		{NodeMindDesign, RoleMind},
		{NodeID("bogus"), Role("")},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			if got := tt.id.Role(); got != tt.want {
				t.Errorf("NodeID(%q).Role() = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestNodeID_Spec(t *testing.T) {
	spec, ok := NodeBodyImplement.Spec()
	if !ok {
		t.Fatal("Spec() should succeed for body_implement")
	}
	if spec.Tier != TierExpensive {
		t.Errorf("body_implement tier = %q, want %q", spec.Tier, TierExpensive)
	}
	if spec.Background {
		t.Error("EXPENSIVE nodes must not allow background execution")
	}

	if _, ok := NodeID("hand_deploy").Spec(); ok {
		t.Error("Spec() should fail for an unknown node ID")
	}
}

func TestNodeSpecs_ExpensiveNeverBackground(t *testing.T) {
	for _, id := range AllNodeIDs() {
		spec, ok := id.Spec()
		if !ok {
			t.Fatalf("vocabulary node %q has no spec", id)
		}
		if spec.Tier == TierExpensive && spec.Background {
			t.Errorf("node %q is EXPENSIVE but allows background", id)
		}
	}
}

func TestAllNodeIDs_CoversVocabulary(t *testing.T) {
	ids := AllNodeIDs()
	if len(ids) != 7 {
		t.Fatalf("expected 7 node IDs, got %d", len(ids))
	}

	seen := make(map[NodeID]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate node ID: %q", id)
		}
		seen[id] = true
		if !id.Valid() {
			t.Errorf("AllNodeIDs returned invalid ID %q", id)
		}
	}
}

func TestCostTier_Valid(t *testing.T) {
	for _, tier := range []CostTier{TierCheap, TierMedium, TierExpensive} {
		if !tier.Valid() {
			t.Errorf("CostTier(%q) should be valid", tier)
		}
	}
	for _, tier := range []CostTier{"", "cheap", "FREE"} {
		if CostTier(tier).Valid() {
			t.Errorf("CostTier(%q) should not be valid", tier)
		}
	}
}
