package router

import (
	"context"
	"errors"
	"strings"

	"github.com/wukongd/wukong/internal/plan"
	"github.com/wukongd/wukong/pkg/models"
)

// DefaultThreshold is the rule-layer confidence below which the
// external planner is consulted.
const DefaultThreshold = 0.7

// ErrEmptyTask reports a request with no task text. It is surfaced to
// the caller, never retried or papered over with a default plan.
var ErrEmptyTask = errors.New("task text is empty")

// Router maps task text to a validated TrackPlan. The rule layer
// always runs; the external planner runs only below the confidence
// threshold, and any planner failure degrades to the Direct fallback
// plan so bad input never crashes the system.
type Router struct {
	rules      *RuleMatcher
	classifier Classifier
	threshold  float64
	logger     *DebugLogger
}

// Option configures a Router.
type Option func(*Router)

// WithClassifier installs the external planner collaborator. Without
// one, low-confidence classifications fall back to the rule result.
func WithClassifier(c Classifier) Option {
	return func(r *Router) { r.classifier = c }
}

// WithThreshold overrides the escalation threshold.
func WithThreshold(t float64) Option {
	return func(r *Router) { r.threshold = t }
}

// WithKeywords overrides the rule layer's keyword tables.
func WithKeywords(k TrackKeywords) Option {
	return func(r *Router) { r.rules = NewRuleMatcher(k) }
}

// WithLogger installs a debug logger.
func WithLogger(l *DebugLogger) Option {
	return func(r *Router) { r.logger = l }
}

// New creates a Router with the default rules and threshold.
func New(opts ...Option) *Router {
	r := &Router{
		rules:     NewRuleMatcher(nil),
		threshold: DefaultThreshold,
		logger:    NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RouteResult is a routed plan together with how it was produced.
type RouteResult struct {
	// Plan is the validated execution plan.
	Plan *models.TrackPlan
	// Rule is the rule layer's classification.
	Rule models.Classification
	// Escalated reports that the external planner was consulted.
	Escalated bool
	// FallbackReason is set when the planner failed and the Direct
	// fallback plan was used instead.
	FallbackReason string
	// Warnings lists non-fatal repairs made during validation, such
	// as de-duplicated node IDs.
	Warnings []string
}

// Route classifies a task and builds its plan. An empty task returns
// ErrEmptyTask. When the rule layer is confident (>= threshold) the
// external planner is never invoked.
func (r *Router) Route(ctx context.Context, task string) (*RouteResult, error) {
	if strings.TrimSpace(task) == "" {
		return nil, ErrEmptyTask
	}

	rule := r.rules.Match(task)
	rule.Complexity = refineComplexity(rule.Complexity, task)
	r.logger.Log("[router] rule layer: track=%s confidence=%.2f matched=%v", rule.Track, rule.Confidence, rule.MatchedRules)

	if rule.Confidence >= r.threshold || r.classifier == nil {
		return r.buildFromClassification(rule, rule.Track, rule.Complexity, rule.Confidence, rule.Reasoning, nil)
	}

	rule.NeedsLLM = true
	resp, err := r.classifier.Classify(ctx, task, rule)
	if err != nil {
		r.logger.Log("[router] planner failed, degrading to direct plan: %v", err)
		return r.fallback(rule, "planner error: "+err.Error()), nil
	}

	result, err := r.buildFromClassification(rule, resp.Track, resp.Complexity, resp.Confidence, resp.Reasoning, resp.Phases)
	if err != nil {
		// The planner invented something the vocabulary check caught.
		var invalid *plan.InvalidPlanError
		if errors.As(err, &invalid) {
			r.logger.Log("[router] planner output rejected (%v), degrading to direct plan", invalid)
			return r.fallback(rule, invalid.Error()), nil
		}
		return nil, err
	}
	result.Escalated = true
	return result, nil
}

// buildFromClassification turns a classification into a validated plan.
// An explicit phase list replaces the template but must survive the
// same validation.
func (r *Router) buildFromClassification(rule models.Classification, track models.Track, complexity models.Complexity, confidence float64, reasoning string, phases []models.Phase) (*RouteResult, error) {
	p, err := plan.Build(track, complexity, confidence, reasoning)
	if err != nil {
		return nil, err
	}
	if len(phases) > 0 {
		p.Phases = phases
	}

	warnings, err := plan.Validate(p)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		r.logger.Log("[router] plan repaired: %s", w)
	}

	return &RouteResult{
		Plan:     p,
		Rule:     rule,
		Warnings: warnings,
	}, nil
}

// fallback produces the safest possible result: a Direct plan with the
// failure recorded, executed by the caller with no parallelism.
func (r *Router) fallback(rule models.Classification, reason string) *RouteResult {
	return &RouteResult{
		Plan:           plan.Direct(reason),
		Rule:           rule,
		Escalated:      true,
		FallbackReason: reason,
	}
}

// refineComplexity upgrades the track-derived default annotation with
// textual signals from the task itself. The annotation never changes
// which nodes run.
func refineComplexity(base models.Complexity, task string) models.Complexity {
	estimated := EstimateComplexity(task)
	if estimated == models.ComplexityComplex {
		return estimated
	}
	if base == models.ComplexityMedium && estimated == models.ComplexitySimple {
		return base
	}
	return estimated
}
