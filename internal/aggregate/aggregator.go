package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wukongd/wukong/pkg/models"
)

// DefaultAggregateChars is the default budget for the full summary.
const DefaultAggregateChars = 2000

// DefaultCompactChars is the default budget for the compact summary.
const DefaultCompactChars = 500

// Aggregator collects TaskResults between dispatch and aggregation.
// The collection is append-only and owned by a single orchestrating
// goroutine: the aggregator offers no internal locking and is not
// thread-safe. Concurrent producers must hand results through a
// channel to the one consumer that calls AddResult.
type Aggregator struct {
	results []models.TaskResult
}

// New creates an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// AddResult appends a result. Unknown status values are stored as-is
// and surfaced in the summary header rather than rejected, so a
// misbehaving node cannot silently vanish.
func (a *Aggregator) AddResult(r models.TaskResult) {
	a.results = append(a.results, r)
}

// Len returns the number of collected results.
func (a *Aggregator) Len() int {
	return len(a.results)
}

// Clear resets state between independent runs.
func (a *Aggregator) Clear() {
	a.results = nil
}

// statusCounts tallies results per reported status, in a stable order:
// the known statuses first, then unknown statuses alphabetically.
func (a *Aggregator) statusCounts() string {
	counts := make(map[models.ResultStatus]int)
	for _, r := range a.results {
		counts[r.Status]++
	}

	known := []models.ResultStatus{
		models.StatusCompleted,
		models.StatusFailed,
		models.StatusPending,
		models.StatusRunning,
	}

	var parts []string
	for _, s := range known {
		if counts[s] > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", s, counts[s]))
			delete(counts, s)
		}
	}

	var unknown []string
	for s := range counts {
		unknown = append(unknown, string(s))
	}
	sort.Strings(unknown)
	for _, s := range unknown {
		parts = append(parts, fmt.Sprintf("%s (unknown): %d", s, counts[models.ResultStatus(s)]))
	}

	return strings.Join(parts, ", ")
}

// allItems flattens marked items across results in node-arrival order.
func (a *Aggregator) allItems() []models.MarkedContent {
	var items []models.MarkedContent
	for _, r := range a.results {
		items = append(items, r.MarkedItems...)
	}
	return items
}

// Aggregate emits the full summary: a status-count header followed by
// all marked items compressed to maxChars and grouped by importance
// band. Pass maxChars <= 0 for the default budget.
func (a *Aggregator) Aggregate(maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultAggregateChars
	}
	if len(a.results) == 0 {
		return "no task results"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Aggregated Results (%d tasks)\n", len(a.results))
	fmt.Fprintf(&b, "Status: %s\n\n", a.statusCounts())

	compressed := CompressByImportance(a.allItems(), maxChars)
	b.WriteString(FormatMarkedOutput(compressed))

	return b.String()
}

// CompactSummary emits a minimal summary restricted to HIGH items,
// compressed to maxChars. Its content is always a subset of what
// Aggregate would include. Pass maxChars <= 0 for the default budget.
func (a *Aggregator) CompactSummary(maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultCompactChars
	}
	if len(a.results) == 0 {
		return "no task results"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d tasks: %s\n", len(a.results), a.statusCounts())

	compressed := CompressByImportance(a.HighImportanceOnly(), maxChars)
	for _, item := range compressed {
		fmt.Fprintf(&b, "- [%s] %s\n", item.Source, item.Content)
	}

	return b.String()
}

// HighImportanceOnly returns all HIGH items in node-arrival order,
// then item order within each result.
func (a *Aggregator) HighImportanceOnly() []models.MarkedContent {
	var high []models.MarkedContent
	for _, r := range a.results {
		for _, item := range r.MarkedItems {
			if item.Importance == models.ImportanceHigh {
				high = append(high, item)
			}
		}
	}
	return high
}
