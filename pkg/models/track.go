package models

// Track represents a named execution template for a task.
type Track string

const (
	// TrackFeature is for adding new functionality.
	TrackFeature Track = "feature"
	// TrackFix is for fixing bugs, errors, and crashes.
	TrackFix Track = "fix"
	// TrackRefactor is for restructuring code without new features.
	TrackRefactor Track = "refactor"
	// TrackResearch is for exploration and investigation.
	TrackResearch Track = "research"
	// TrackDirect is for trivial direct actions with no orchestration.
	TrackDirect Track = "direct"
)

// Valid returns true if the track is a known value.
func (t Track) Valid() bool {
	switch t {
	case TrackFeature, TrackFix, TrackRefactor, TrackResearch, TrackDirect:
		return true
	default:
		return false
	}
}

// Complexity annotates how involved a task is expected to be.
// It is informational only and never changes node selection.
type Complexity string

const (
	// ComplexitySimple is a single-file, small-diff task.
	ComplexitySimple Complexity = "simple"
	// ComplexityMedium is a 2-3 file task with a clear approach.
	ComplexityMedium Complexity = "medium"
	// ComplexityComplex is a 4+ file or architectural task.
	ComplexityComplex Complexity = "complex"
)

// Valid returns true if the complexity is a known value.
func (c Complexity) Valid() bool {
	switch c {
	case ComplexitySimple, ComplexityMedium, ComplexityComplex:
		return true
	default:
		return false
	}
}
