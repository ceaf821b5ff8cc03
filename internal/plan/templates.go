// Package plan owns the fixed per-track DAG templates and the
// cost-tier concurrency policy, and turns a classification into a
// validated TrackPlan. It designs what may run concurrently; actually
// running nodes is the external orchestrator's job.
package plan

import "github.com/wukongd/wukong/pkg/models"

// trackTemplates are the canonical phase templates per track. The
// classifier may only emit node sets that are subsets of the template
// slot for its track.
var trackTemplates = map[models.Track][]models.Phase{
	models.TrackFeature: {
		{Index: 0, Nodes: []models.NodeID{models.NodeEarUnderstand, models.NodeEyeExplore}, Parallel: true},
		{Index: 1, Nodes: []models.NodeID{models.NodeMindDesign}, Parallel: false},
		{Index: 2, Nodes: []models.NodeID{models.NodeBodyImplement}, Parallel: false},
		{Index: 3, Nodes: []models.NodeID{models.NodeTongueVerify, models.NodeNoseReview}, Parallel: true},
	},
	models.TrackFix: {
		{Index: 0, Nodes: []models.NodeID{models.NodeEyeExplore, models.NodeNoseAnalyze}, Parallel: true},
		{Index: 1, Nodes: []models.NodeID{models.NodeBodyImplement}, Parallel: false},
		{Index: 2, Nodes: []models.NodeID{models.NodeTongueVerify}, Parallel: false},
	},
	models.TrackRefactor: {
		{Index: 0, Nodes: []models.NodeID{models.NodeEyeExplore}, Parallel: false},
		{Index: 1, Nodes: []models.NodeID{models.NodeMindDesign}, Parallel: false},
		{Index: 2, Nodes: []models.NodeID{models.NodeBodyImplement}, Parallel: false},
		{Index: 3, Nodes: []models.NodeID{models.NodeNoseReview, models.NodeTongueVerify}, Parallel: true},
	},
	models.TrackResearch: {
		{Index: 0, Nodes: []models.NodeID{models.NodeEyeExplore}, Parallel: false},
	},
	models.TrackDirect: {
		{Index: 0, Nodes: []models.NodeID{}, Parallel: false},
	},
}

// Template returns a copy of the canonical phase template for a track.
// The second return value is false for unknown tracks. Callers get a
// fresh copy so a plan in flight can never mutate the template.
func Template(track models.Track) ([]models.Phase, bool) {
	tpl, ok := trackTemplates[track]
	if !ok {
		return nil, false
	}
	return copyPhases(tpl), true
}

// copyPhases deep-copies a phase slice including the node slices.
func copyPhases(phases []models.Phase) []models.Phase {
	out := make([]models.Phase, len(phases))
	for i, p := range phases {
		nodes := make([]models.NodeID, len(p.Nodes))
		copy(nodes, p.Nodes)
		out[i] = models.Phase{Index: p.Index, Nodes: nodes, Parallel: p.Parallel}
	}
	return out
}

// templateNodeSet returns the allowed node IDs for one phase slot of a
// track template.
func templateNodeSet(track models.Track, phase int) map[models.NodeID]bool {
	tpl, ok := trackTemplates[track]
	if !ok || phase < 0 || phase >= len(tpl) {
		return nil
	}
	set := make(map[models.NodeID]bool, len(tpl[phase].Nodes))
	for _, id := range tpl[phase].Nodes {
		set[id] = true
	}
	return set
}
