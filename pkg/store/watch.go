package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatchUnsupported is returned by Watch for stores that are not on disk.
var ErrWatchUnsupported = errors.New("store: watch not supported")

// Event is emitted when a watched key changes on disk.
type Event struct {
	Key string
}

// Watch streams an Event whenever key is written, by this or another process,
// until ctx is cancelled. Bursts of writes are coalesced into one event.
// Callers should drain the channel; it is closed when ctx is done.
func (k *DiskKV) Watch(ctx context.Context, key string) (<-chan Event, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	// Watch the directory, not the file: writes land via rename, which
	// replaces the inode a file watch would be attached to.
	if err := watcher.Add(k.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", k.basePath, err)
	}

	target := filepath.Clean(k.Path(key))
	events := make(chan Event, 8)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// A pending event already tells the consumer to reload.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Unclassified failure; ask for a reload to stay in sync.
				throttle.Enqueue(Event{Key: key}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				throttle.Enqueue(Event{Key: key}, send)
			}
		}
	}()

	return events, nil
}

// Watch forwards to the underlying KV when it lives on disk.
func (s *Selections) Watch(ctx context.Context) (<-chan Event, error) {
	if s == nil {
		return nil, ErrWatchUnsupported
	}
	w, ok := s.KV.(interface {
		Watch(ctx context.Context, key string) (<-chan Event, error)
	})
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx, SelectionKey)
}

// eventThrottle coalesces rapid change notifications so consumers reload
// once per burst of writes.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending[ev.Key] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	// send never blocks, so it runs under the lock; Stop then guarantees no
	// send happens after the channel is closed.
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	pending := t.pending
	t.pending = make(map[string]struct{})
	t.timer = nil
	for key := range pending {
		send(Event{Key: key})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
