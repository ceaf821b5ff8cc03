// Package snapshot provides immutable context snapshots shared by all
// nodes dispatched in one phase. A snapshot is created immediately
// before a phase dispatch and is read-only for the phase's duration,
// so parallel nodes can share it without locking.
package snapshot

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCompactContext is the hard character budget for the compact
// context. Oversize input is rejected, never silently truncated:
// dropping context can hide a decision from a node.
const MaxCompactContext = 500

// OversizeContextError reports a compact context over budget. The
// caller must shorten the input; this package never truncates it.
type OversizeContextError struct {
	// Length is the rejected context length in characters.
	Length int
	// Limit is the budget that was exceeded.
	Limit int
}

func (e *OversizeContextError) Error() string {
	return fmt.Sprintf("compact_context is %d chars, limit is %d: shorten the input, it will not be truncated", e.Length, e.Limit)
}

// Anchor is a small persisted fact carried into node context.
// Types follow the anchor taxonomy: P (problem), C (constraint),
// M (pattern), D (decision), I (interface).
type Anchor struct {
	// Type is the anchor type tag.
	Type string `json:"type"`
	// Content is the anchor text.
	Content string `json:"content"`
	// Metadata holds any extra fields from the anchor log.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Snapshot is an immutable context bundle. All fields are unexported;
// construction goes through New and reads go through accessors that
// return copies, so every node in a phase sees identical bytes.
type Snapshot struct {
	sessionID      string
	timestamp      time.Time
	compactContext string
	anchors        []Anchor
	metadata       map[string]string
}

// New creates a snapshot. It fails with *OversizeContextError when
// compactContext exceeds MaxCompactContext characters. Anchor and
// metadata inputs are copied, so later mutation by the caller cannot
// reach the snapshot.
func New(sessionID, compactContext string, anchors []Anchor, metadata map[string]string) (*Snapshot, error) {
	return NewWithBudget(sessionID, compactContext, anchors, metadata, MaxCompactContext)
}

// NewWithBudget is New with a caller-chosen character budget. Pass
// maxChars <= 0 for the default MaxCompactContext.
func NewWithBudget(sessionID, compactContext string, anchors []Anchor, metadata map[string]string, maxChars int) (*Snapshot, error) {
	if maxChars <= 0 {
		maxChars = MaxCompactContext
	}
	if n := utf8.RuneCountInString(compactContext); n > maxChars {
		return nil, &OversizeContextError{Length: n, Limit: maxChars}
	}

	copied := make([]Anchor, len(anchors))
	for i, a := range anchors {
		copied[i] = Anchor{Type: a.Type, Content: a.Content}
		if len(a.Metadata) > 0 {
			copied[i].Metadata = make(map[string]string, len(a.Metadata))
			for k, v := range a.Metadata {
				copied[i].Metadata[k] = v
			}
		}
	}

	var meta map[string]string
	if len(metadata) > 0 {
		meta = make(map[string]string, len(metadata))
		for k, v := range metadata {
			meta[k] = v
		}
	}

	return &Snapshot{
		sessionID:      sessionID,
		timestamp:      time.Now().UTC(),
		compactContext: compactContext,
		anchors:        copied,
		metadata:       meta,
	}, nil
}

// SessionID returns the session the snapshot belongs to.
func (s *Snapshot) SessionID() string { return s.sessionID }

// Timestamp returns when the snapshot was created.
func (s *Snapshot) Timestamp() time.Time { return s.timestamp }

// CompactContext returns the compact context text.
func (s *Snapshot) CompactContext() string { return s.compactContext }

// Anchors returns a copy of the snapshot's anchors.
func (s *Snapshot) Anchors() []Anchor {
	out := make([]Anchor, len(s.anchors))
	copy(out, s.anchors)
	return out
}

// Metadata returns a copy of the snapshot's metadata.
func (s *Snapshot) Metadata() map[string]string {
	if s.metadata == nil {
		return nil
	}
	out := make(map[string]string, len(s.metadata))
	for k, v := range s.metadata {
		out[k] = v
	}
	return out
}

// FormatForTask renders the snapshot as a context block for one task.
// The rendering is pure and deterministic: two calls with the same
// snapshot and different task IDs differ only in the embedded task ID,
// which guarantees byte-identical context across parallel nodes in one
// phase. The snapshot timestamp is deliberately not rendered.
func (s *Snapshot) FormatForTask(taskID string) string {
	var b strings.Builder

	b.WriteString("## Context Snapshot\n")
	fmt.Fprintf(&b, "Session: %s\n", s.sessionID)
	fmt.Fprintf(&b, "Task: %s\n", taskID)
	b.WriteString("\n### Compact Context\n")
	b.WriteString(s.compactContext)
	b.WriteString("\n")

	if len(s.anchors) > 0 {
		b.WriteString("\n### Anchors\n")
		for _, a := range s.anchors {
			fmt.Fprintf(&b, "- [%s] %s\n", a.Type, a.Content)
		}
	}

	if len(s.metadata) > 0 {
		keys := make([]string, 0, len(s.metadata))
		for k := range s.metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("\n### Metadata\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, s.metadata[k])
		}
	}

	return b.String()
}
