package router

import (
	"regexp"
	"strings"

	"github.com/wukongd/wukong/pkg/models"
)

// architecturalKeywords promote a task to complex regardless of how
// many files it names.
var architecturalKeywords = []string{
	"architecture",
	"architectural",
	"migration",
	"migrate",
	"redesign",
	"rewrite",
	"schema",
	"infra",
	"infrastructure",
	"across the codebase",
}

// filePathRe matches tokens that look like file paths or file names.
var filePathRe = regexp.MustCompile(`[\w./-]+\.\w{1,10}\b|\b[\w-]+/[\w./-]+`)

// EstimateComplexity annotates a task with an effort guess from
// textual signals: the number of distinct file references and the
// presence of architectural keywords. The annotation never alters node
// selection; it exists for the orchestrator and for humans reading the
// plan.
//
//	simple:  at most one file reference, no architectural signal
//	medium:  2-3 file references
//	complex: 4+ file references or an architectural signal
func EstimateComplexity(task string) models.Complexity {
	lower := strings.ToLower(task)

	for _, kw := range architecturalKeywords {
		if strings.Contains(lower, kw) {
			return models.ComplexityComplex
		}
	}

	seen := make(map[string]bool)
	for _, m := range filePathRe.FindAllString(lower, -1) {
		seen[m] = true
	}

	switch n := len(seen); {
	case n >= 4:
		return models.ComplexityComplex
	case n >= 2:
		return models.ComplexityMedium
	default:
		return models.ComplexitySimple
	}
}
