package models

// ResultStatus is the reported terminal (or pending) state of a node.
// Nodes move pending -> running -> {completed, failed}; retry decisions
// live in the orchestrator, never in this core.
type ResultStatus string

const (
	// StatusPending indicates the node has not finished.
	StatusPending ResultStatus = "pending"
	// StatusRunning indicates the node is executing.
	StatusRunning ResultStatus = "running"
	// StatusCompleted indicates the node finished successfully.
	StatusCompleted ResultStatus = "completed"
	// StatusFailed indicates the node failed or timed out.
	StatusFailed ResultStatus = "failed"
)

// Valid returns true if the status is a known value. Unknown statuses
// are stored and surfaced by the aggregator rather than rejected, so a
// misbehaving node cannot silently vanish.
func (s ResultStatus) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// Terminal returns true if the status frees the node's cost-tier slot.
func (s ResultStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// TaskResult is the output of one executed node as handed to the
// aggregator.
type TaskResult struct {
	// TaskID identifies the dispatched task.
	TaskID string `json:"task_id"`
	// Node is the node ID that produced this result.
	Node NodeID `json:"node"`
	// Status is the reported state. Stored as-is even when unknown.
	Status ResultStatus `json:"status"`
	// Output is the raw worker output.
	Output string `json:"output,omitempty"`
	// MarkedItems are the importance-tagged pieces of the output.
	MarkedItems []MarkedContent `json:"marked_items,omitempty"`
	// Evidence carries whatever proof of work the node supplied.
	// Downstream policy checks it; this core only plumbs it through.
	Evidence string `json:"evidence,omitempty"`
}
