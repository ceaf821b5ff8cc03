package models

import "unicode/utf8"

// Importance is the priority tag on one atomic piece of worker output.
type Importance string

const (
	// ImportanceHigh content must be retained through compression.
	ImportanceHigh Importance = "high"
	// ImportanceMedium content is retained when budget allows.
	ImportanceMedium Importance = "medium"
	// ImportanceLow content is the first to be dropped.
	ImportanceLow Importance = "low"
)

// Valid returns true if the importance is a known value.
func (i Importance) Valid() bool {
	switch i {
	case ImportanceHigh, ImportanceMedium, ImportanceLow:
		return true
	default:
		return false
	}
}

// rank orders importance for sorting: HIGH before MEDIUM before LOW.
// Unknown values sort last.
func (i Importance) rank() int {
	switch i {
	case ImportanceHigh:
		return 0
	case ImportanceMedium:
		return 1
	case ImportanceLow:
		return 2
	default:
		return 3
	}
}

// Rank returns the sort position of the importance band. Lower ranks
// are retained first during compression.
func (i Importance) Rank() int { return i.rank() }

// MarkedContent is one atomic piece of content tagged with a priority,
// a category (file, issue, decision, ...), and the node it came from.
type MarkedContent struct {
	// Content is the tagged text.
	Content string `json:"content"`
	// Importance is the priority band.
	Importance Importance `json:"importance"`
	// Category describes what kind of content this is.
	Category string `json:"category"`
	// Source is the node that produced the content.
	Source string `json:"source"`
}

// Len returns the length of the content in characters, not bytes, so
// multibyte text is charged per rune against compression budgets.
func (m MarkedContent) Len() int {
	return utf8.RuneCountInString(m.Content)
}
