package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/wukongd/wukong/internal/snapshot"
)

// AnchorRecord is one line of the anchor log: an anchor plus when it
// was written.
type AnchorRecord struct {
	snapshot.Anchor
	RecordedAt time.Time `json:"recorded_at"`
}

// AnchorLog is an append-only JSONL file of context anchors. Appends
// are serialized with a mutex; reads open the file fresh so they see
// every line written so far.
type AnchorLog struct {
	path string
	mu   sync.Mutex
}

// NewAnchorLog creates an anchor log at the given path. The file is
// created lazily on the first append.
func NewAnchorLog(path string) (*AnchorLog, error) {
	if path == "" {
		return nil, fmt.Errorf("anchor log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create anchor log directory: %w", err)
	}
	return &AnchorLog{path: path}, nil
}

// Path returns the log file path.
func (l *AnchorLog) Path() string {
	return l.path
}

// Append writes one anchor to the log. The write is a single line, so
// concurrent readers never see a torn record.
func (l *AnchorLog) Append(a snapshot.Anchor) error {
	if a.Type == "" || a.Content == "" {
		return fmt.Errorf("anchor needs a type and content")
	}

	line, err := json.Marshal(AnchorRecord{Anchor: a, RecordedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal anchor: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open anchor log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append anchor: %w", err)
	}
	return nil
}

// List reads every anchor in the log, oldest first. A missing file is
// an empty log, not an error. Unparseable lines are skipped so one
// corrupt record never hides the rest.
func (l *AnchorLog) List() ([]AnchorRecord, error) {
	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open anchor log: %w", err)
	}
	defer f.Close()

	var records []AnchorRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec AnchorRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read anchor log: %w", err)
	}
	return records, nil
}

// Anchors returns just the anchors, for feeding into a snapshot.
func (l *AnchorLog) Anchors() ([]snapshot.Anchor, error) {
	records, err := l.List()
	if err != nil {
		return nil, err
	}
	anchors := make([]snapshot.Anchor, len(records))
	for i, rec := range records {
		anchors[i] = rec.Anchor
	}
	return anchors, nil
}
