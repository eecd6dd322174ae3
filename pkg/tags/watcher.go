package tags

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultDebounce is used when WatchOptions.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// Debounce groups rapid events for one file into a single rewrite.
	Debounce time.Duration

	// OnResult, when set, receives every completed file rewrite.
	OnResult func(result *FileResult, err error)
}

// Watcher re-normalizes section files as they change.
//
// **Features:**
//   - Debouncing - rapid saves of one file trigger a single rewrite
//   - Self-write suppression - events caused by the watcher's own writes are
//     recognized by content hash and skipped
//   - New directories under the root are watched as they appear
//
// **Usage:**
//
//	w, err := NewWatcher(fixer, WatchOptions{}, logger)
//	if err != nil {
//	    return err
//	}
//	if err := w.Start(ctx); err != nil {
//	    return err
//	}
//	defer w.Stop()
type Watcher struct {
	watcher *fsnotify.Watcher
	fixer   *Fixer
	root    string
	options WatchOptions
	logger  *slog.Logger

	// written maps a path to the hash of the bytes last written to it.
	written *lru.Cache[string, [sha256.Size]byte]

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	ctx      context.Context
	stopChan chan struct{}
	started  bool
	stopped  bool
	mu       sync.Mutex

	rewrites int
	skipped  int
	statsMu  sync.Mutex
}

// NewWatcher creates a Watcher over the fixer's sections root.
func NewWatcher(fixer *Fixer, options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}
	if fixer.config.DryRun {
		return nil, errors.New("watch mode cannot run as a dry run")
	}

	root, err := filepath.Abs(fixer.config.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve sections root: %w", err)
	}
	written, err := lru.New[string, [sha256.Size]byte](256)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		watcher:        fsw,
		fixer:          fixer,
		root:           root,
		options:        options,
		logger:         logger,
		written:        written,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}
	fixer.onWrite = w.recordWrite
	return w, nil
}

// Start watches the sections root and its subdirectories. Events are
// handled in a background goroutine until Stop is called or ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return fmt.Errorf("watcher already stopped")
	}
	if w.started {
		return fmt.Errorf("watcher already started")
	}

	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.started = true
	w.ctx = ctx

	w.logger.Info("section watcher started", "root", w.root, "debounce", w.options.Debounce)
	go w.eventLoop()
	return nil
}

// addTree watches dir and every non-excluded directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && !w.fixer.Matches(w.root, path, true) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			if path == dir {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("section watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return
		case <-w.ctx.Done():
			w.Stop()
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) && w.fixer.Matches(w.root, path, true) {
			if err := w.addTree(path); err != nil {
				w.logger.Warn("failed to watch new directory", "path", path, "error", err)
			}
		}
		return
	}
	if !w.fixer.Matches(w.root, path, false) {
		return
	}

	w.logger.Debug("section file event", "op", event.Op.String(), "file", path)
	w.debounce(path)
}

func (w *Watcher) debounce(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}
	w.debounceTimers[path] = time.AfterFunc(w.options.Debounce, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		w.debounceMu.Unlock()

		w.process(path)
	})
}

func (w *Watcher) process(path string) {
	if w.isOwnWrite(path) {
		w.statsMu.Lock()
		w.skipped++
		w.statsMu.Unlock()
		w.logger.Debug("skipping self-written file", "file", path)
		return
	}

	result, err := w.fixer.FixFile(w.ctx, path)
	if err != nil {
		w.logger.Warn("failed to normalize section file", "file", path, "error", err)
	}

	w.statsMu.Lock()
	w.rewrites++
	w.statsMu.Unlock()

	if w.options.OnResult != nil {
		w.options.OnResult(result, err)
	}
}

func (w *Watcher) recordWrite(path string, data []byte) {
	w.written.Add(path, sha256.Sum256(data))
}

// isOwnWrite reports whether the file still holds exactly what the watcher
// last wrote to it.
func (w *Watcher) isOwnWrite(path string) bool {
	want, ok := w.written.Get(path)
	if !ok {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if sha256.Sum256(data) != want {
		w.written.Remove(path)
		return false
	}
	return true
}

// WatcherStats contains watcher statistics.
type WatcherStats struct {
	PendingFiles   int
	FilesProcessed int
	SelfWrites     int
	IsRunning      bool
}

// GetStats returns watcher statistics.
func (w *Watcher) GetStats() WatcherStats {
	w.debounceMu.Lock()
	pending := len(w.debounceTimers)
	w.debounceMu.Unlock()

	w.mu.Lock()
	running := w.started && !w.stopped
	w.mu.Unlock()

	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	return WatcherStats{
		PendingFiles:   pending,
		FilesProcessed: w.rewrites,
		SelfWrites:     w.skipped,
		IsRunning:      running,
	}
}
