package source

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// eventChannelBuffer is the size of the watch event channel.
	eventChannelBuffer = 64

	defaultDebounce = 500 * time.Millisecond
)

// WatchOperation indicates the type of file operation.
type WatchOperation string

// WatchOpModify and WatchOpDelete enumerate the file watch operation types.
const (
	WatchOpModify WatchOperation = "modify"
	WatchOpDelete WatchOperation = "delete"
)

// WatchEvent represents a document file change.
type WatchEvent struct {
	Path      string
	Operation WatchOperation
}

// Watcher watches a fixed set of document files and emits debounced events
// when their content changes. Parent directories are watched so that
// editors that replace files on save are still seen.
type Watcher struct {
	debounce time.Duration
	files    map[string]bool
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	hashMu sync.RWMutex
	hashes map[string]string

	events chan WatchEvent

	droppedEvents atomic.Int64
}

// NewWatcher creates a watcher for the given absolute file paths.
func NewWatcher(paths []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	files := make(map[string]bool, len(paths))
	for _, p := range paths {
		files[filepath.Clean(p)] = true
	}

	return &Watcher{
		debounce: debounce,
		files:    files,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
		hashes:   make(map[string]string),
		events:   make(chan WatchEvent, eventChannelBuffer),
	}, nil
}

// Events returns the channel of watch events.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Start records the current content of every file and begins watching.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]bool)
	for path := range w.files {
		if content, err := os.ReadFile(path); err == nil {
			w.SetHash(path, ContentHash(content))
		}
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		w.logger.Debug("Watching directory", slog.String("path", dir))
	}

	go w.processEvents(ctx)

	w.logger.Info("Document watcher started",
		slog.Int("files", len(w.files)),
		slog.Duration("debounce", w.debounce))
	return nil
}

// Stop stops the watcher.
// The events channel is closed by processEvents when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// SetHash records the content hash of a file. Callers that rewrite a
// watched file record the new hash so their own write is not reported.
func (w *Watcher) SetHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[filepath.Clean(path)] = hash
}

// GetHash returns the recorded hash for a file.
func (w *Watcher) GetHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[filepath.Clean(path)]
	return hash, ok
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if !w.files[path] {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Document change detected",
		slog.String("path", path),
		slog.String("op", event.Op.String()))
}

// flushPending emits one event per file whose content changed since the
// last flush.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		content, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			w.hashMu.Lock()
			delete(w.hashes, path)
			w.hashMu.Unlock()
			w.sendEvent(WatchEvent{Path: path, Operation: WatchOpDelete})
			continue
		}
		if err != nil {
			w.logger.Warn("Failed to read file for hash check",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}

		newHash := ContentHash(content)
		if oldHash, ok := w.GetHash(path); ok && oldHash == newHash {
			continue
		}
		w.SetHash(path, newHash)
		w.sendEvent(WatchEvent{Path: path, Operation: WatchOpModify})
	}
}

func (w *Watcher) sendEvent(event WatchEvent) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event",
			slog.String("path", event.Path),
			slog.String("op", string(event.Operation)))
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			slog.String("path", event.Path),
			slog.Int64("total_dropped", dropped))
	}
}
