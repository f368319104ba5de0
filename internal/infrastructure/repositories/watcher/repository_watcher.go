package watcher

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	logger "github.com/sirupsen/logrus"
)

const defaultDebounce = 500 * time.Millisecond

// RepositoryWatcher reports, debounced, that something changed under one of
// the watched directories. Bursts of events (a pull rewriting many refs)
// collapse into a single notification.
type RepositoryWatcher struct {
	Changes <-chan struct{}

	changes  chan struct{}
	done     chan struct{}
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      logger.FieldLogger

	mu         sync.Mutex
	muted      bool
	mutedUntil time.Time
}

// NewRepositoryWatcher creates a watcher over dirs. Missing directories are
// skipped with a warning so the loop can still fall back to polling.
func NewRepositoryWatcher(dirs []string, log logger.FieldLogger) (*RepositoryWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if addErr := fw.Add(dir); addErr != nil {
			log.Warnf("Cannot watch %s: %v", dir, addErr)
		}
	}

	ch := make(chan struct{}, 1)
	return &RepositoryWatcher{
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: defaultDebounce,
		log:      log,
	}, nil
}

// Start begins delivering notifications on Changes.
func (w *RepositoryWatcher) Start() {
	go w.loop()
}

// Stop closes the watcher and waits for the loop to exit.
func (w *RepositoryWatcher) Stop() {
	_ = w.watcher.Close()
	<-w.done
}

// Mute drops every notification until Unmute. Used around a delivery, which
// rewrites the metadata it is watching.
func (w *RepositoryWatcher) Mute() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.muted = true
}

// Unmute re-enables notifications after one more debounce window, so events
// fsnotify is still delivering for the muted period are dropped too.
func (w *RepositoryWatcher) Unmute() {
	w.mu.Lock()
	w.muted = false
	w.mutedUntil = time.Now().Add(w.debounce)
	w.mu.Unlock()
	w.Drain()
}

func (w *RepositoryWatcher) isMuted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.muted || time.Now().Before(w.mutedUntil)
}

// Drain discards a pending notification, if any.
func (w *RepositoryWatcher) Drain() {
	select {
	case <-w.changes:
	default:
	}
}

func (w *RepositoryWatcher) loop() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) || w.isMuted() {
				continue
			}
			w.log.Debugf("Watch event: %s", event)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if w.isMuted() {
				continue
			}
			// Non-blocking: one pending notification is enough.
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnf("Watch error: %v", err)
		}
	}
}

// relevant keeps ref and HEAD updates; the index and lock files churn on
// every checkout operation without meaning new commits.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	return name != "index" && !strings.HasSuffix(name, ".lock")
}
