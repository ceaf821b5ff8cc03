package router

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wukongd/wukong/pkg/models"
)

// Rule layer confidence levels. An explicit marker is certain; a
// keyword match is at least probable; no match at all falls back to
// the direct track with low confidence so the planner gets consulted.
const (
	confidenceExplicit = 1.0
	confidenceKeyword  = 0.5
	confidenceDefault  = 0.3
)

var (
	atSyntaxRe  = regexp.MustCompile(`@([\p{Han}a-zA-Z]+)`)
	scheduleRe  = regexp.MustCompile(`/schedule\s+(fix|feature|refactor|research|direct)`)
	directiveRe = regexp.MustCompile(`track:\s*(fix|feature|refactor|research|direct)`)
)

// RuleMatcher is the zero-latency rule layer. Match priority:
//  1. @agent syntax ("@eye explore the auth module") -> confidence 1.0
//  2. explicit track directive ("/schedule fix", "track:fix") -> 1.0
//  3. keyword tables -> confidence from match ratio, floored at 0.5
//  4. no match -> direct track at 0.3
type RuleMatcher struct {
	keywords TrackKeywords
}

// NewRuleMatcher creates a rule matcher. A nil keyword table selects
// the defaults.
func NewRuleMatcher(keywords TrackKeywords) *RuleMatcher {
	if keywords == nil {
		keywords = DefaultTrackKeywords()
	}
	return &RuleMatcher{keywords: keywords}
}

// Match classifies a task with rules only. It never returns an error:
// the worst case is a low-confidence direct guess with NeedsLLM set.
func (m *RuleMatcher) Match(task string) models.Classification {
	if c, ok := m.matchAgentSyntax(task); ok {
		return c
	}
	if c, ok := m.matchDirective(task); ok {
		return c
	}
	return m.matchKeywords(task)
}

// matchAgentSyntax resolves explicit @agent markers.
func (m *RuleMatcher) matchAgentSyntax(task string) (models.Classification, bool) {
	match := atSyntaxRe.FindStringSubmatch(task)
	if match == nil {
		return models.Classification{}, false
	}

	role, ok := agentAliases[strings.ToLower(match[1])]
	if !ok {
		return models.Classification{}, false
	}

	track := agentTracks[role]
	return models.Classification{
		Track:        track,
		Complexity:   complexityForTrack(track),
		Confidence:   confidenceExplicit,
		MatchedRules: []string{"@" + strings.ToLower(match[1])},
	}, true
}

// matchDirective resolves /schedule and track: directives.
func (m *RuleMatcher) matchDirective(task string) (models.Classification, bool) {
	lower := strings.ToLower(task)

	if match := scheduleRe.FindStringSubmatch(lower); match != nil {
		track := models.Track(match[1])
		return models.Classification{
			Track:        track,
			Complexity:   complexityForTrack(track),
			Confidence:   confidenceExplicit,
			MatchedRules: []string{"/schedule " + match[1]},
		}, true
	}

	if match := directiveRe.FindStringSubmatch(lower); match != nil {
		track := models.Track(match[1])
		return models.Classification{
			Track:        track,
			Complexity:   complexityForTrack(track),
			Confidence:   confidenceExplicit,
			MatchedRules: []string{"track:" + match[1]},
		}, true
	}

	return models.Classification{}, false
}

// matchKeywords scores every track's keyword table against the task
// and picks the best. Confidence is matches/total for the winning
// table, floored at 0.5 when anything matched at all.
func (m *RuleMatcher) matchKeywords(task string) models.Classification {
	lower := strings.ToLower(task)

	bestTrack := models.TrackDirect
	bestConfidence := 0.0
	var matched []string

	// Iterate in a fixed track order so equal scores resolve the same
	// way on every run.
	for _, track := range []models.Track{
		models.TrackFix,
		models.TrackFeature,
		models.TrackRefactor,
		models.TrackResearch,
	} {
		keywords := m.keywords[track]
		if len(keywords) == 0 {
			continue
		}
		var hits []string
		for _, kw := range keywords {
			if containsWord(lower, kw) {
				hits = append(hits, kw)
			}
		}
		if len(hits) == 0 {
			continue
		}
		confidence := float64(len(hits)) / float64(len(keywords))
		if confidence > bestConfidence {
			bestConfidence = confidence
			bestTrack = track
			matched = hits
		}
	}

	if len(matched) == 0 {
		return models.Classification{
			Track:      models.TrackDirect,
			Complexity: models.ComplexitySimple,
			Confidence: confidenceDefault,
			NeedsLLM:   true,
		}
	}

	if bestConfidence < confidenceKeyword {
		bestConfidence = confidenceKeyword
	}

	rules := make([]string, len(matched))
	for i, kw := range matched {
		rules[i] = fmt.Sprintf("keyword:%s", kw)
	}

	return models.Classification{
		Track:        bestTrack,
		Complexity:   complexityForTrack(bestTrack),
		Confidence:   roundConfidence(bestConfidence),
		NeedsLLM:     bestConfidence < DefaultThreshold,
		MatchedRules: rules,
	}
}

// containsWord matches a keyword on word boundaries so that "fix" does
// not fire on "prefix". Multi-word keywords fall back to substring
// matching.
func containsWord(text, keyword string) bool {
	if strings.Contains(keyword, " ") {
		return strings.Contains(text, keyword)
	}

	idx := 0
	for {
		i := strings.Index(text[idx:], keyword)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(keyword)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// complexityForTrack infers a default effort annotation when nothing
// better is known. Feature and refactor work usually spans files.
func complexityForTrack(track models.Track) models.Complexity {
	switch track {
	case models.TrackFeature, models.TrackRefactor:
		return models.ComplexityMedium
	default:
		return models.ComplexitySimple
	}
}

// roundConfidence keeps confidences at two decimal places so logs and
// JSON output stay readable.
func roundConfidence(c float64) float64 {
	return float64(int(c*100+0.5)) / 100
}
