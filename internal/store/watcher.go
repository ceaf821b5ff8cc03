package store

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// AnchorWatcher tails an anchor log and delivers the new anchors after
// each append. The log's directory is watched rather than the file so
// a log created after the watcher starts is still picked up.
type AnchorWatcher struct {
	log     *AnchorLog
	watcher *fsnotify.Watcher
	updates chan []AnchorRecord
	done    chan struct{}

	mu        sync.Mutex
	seen      int
	closeOnce sync.Once
}

// WatchAnchors starts watching the log. The caller owns the returned
// watcher and must Close it.
func WatchAnchors(log *AnchorLog) (*AnchorWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(log.Path())); err != nil {
		watcher.Close()
		return nil, err
	}

	// Anything already in the log counts as seen.
	existing, err := log.List()
	if err != nil {
		watcher.Close()
		return nil, err
	}

	aw := &AnchorWatcher{
		log:     log,
		watcher: watcher,
		updates: make(chan []AnchorRecord, 1),
		done:    make(chan struct{}),
		seen:    len(existing),
	}
	go aw.watch()
	return aw, nil
}

// Updates delivers batches of newly appended anchors.
func (aw *AnchorWatcher) Updates() <-chan []AnchorRecord {
	return aw.updates
}

// Close stops the watcher. It is safe to call more than once.
func (aw *AnchorWatcher) Close() error {
	var err error
	aw.closeOnce.Do(func() {
		close(aw.done)
		err = aw.watcher.Close()
	})
	return err
}

func (aw *AnchorWatcher) watch() {
	defer close(aw.updates)
	for {
		select {
		case <-aw.done:
			return
		case event, ok := <-aw.watcher.Events:
			if !ok {
				return
			}
			if event.Name != aw.log.Path() {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			aw.deliverNew()
		case <-aw.watcher.Errors:
			// Ignore errors, keep watching
		}
	}
}

// deliverNew re-reads the log and sends anything past the seen mark.
func (aw *AnchorWatcher) deliverNew() {
	records, err := aw.log.List()
	if err != nil {
		return
	}

	aw.mu.Lock()
	if len(records) <= aw.seen {
		aw.mu.Unlock()
		return
	}
	fresh := records[aw.seen:]
	aw.seen = len(records)
	aw.mu.Unlock()

	select {
	case aw.updates <- fresh:
	case <-aw.done:
	}
}
