package notes

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"notedeck/log"

	"github.com/fsnotify/fsnotify"
)

// EventType is the kind of change a watcher saw.
type EventType int

const (
	EventCreated EventType = iota
	EventUpdated
	EventRemoved
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event reports that a note changed on disk.
type Event struct {
	Type EventType
	Path string
}

// DebounceDelay is how long a watcher waits for a burst of writes to settle.
var DebounceDelay = 150 * time.Millisecond

// Watcher emits an Event when a note in the tree changes.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan Event
	done    chan struct{}

	// mu guards sends on events against its close.
	mu     sync.Mutex
	closed bool
}

// Watch starts watching dir and its subdirectories.
func Watch(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := addWatchTree(fw, dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		events:  make(chan Event, 32),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Events returns the debounced event stream. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		close(w.events)
		w.mu.Unlock()
	}()

	var debounceTimer *time.Timer

	for {
		select {
		case <-w.done:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatchTree(w.watcher, event.Name); err != nil {
						log.WarningLog.Printf("could not watch new directory %s: %v", event.Name, err)
					}
					continue
				}
			}
			if !strings.EqualFold(filepath.Ext(event.Name), Extension) {
				continue
			}

			lastEvent := event
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(DebounceDelay, func() {
				var eventType EventType
				switch {
				case lastEvent.Op&fsnotify.Create != 0:
					eventType = EventCreated
				case lastEvent.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					eventType = EventRemoved
				default:
					eventType = EventUpdated
				}

				w.mu.Lock()
				defer w.mu.Unlock()
				if w.closed {
					return
				}
				select {
				case w.events <- Event{Type: eventType, Path: lastEvent.Name}:
				default:
					// Channel full; the pending reload covers this change.
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.WarningLog.Printf("notes watcher: %v", err)
		}
	}
}

func addWatchTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
