// Package watch re-runs site assembly when the configuration file or the
// documentation tree changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// RebuildFunc is invoked after a debounced change. Errors are logged and the
// watcher keeps running.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors the configuration file and the docs directory.
// Rebuilds run one at a time; changes seen during a rebuild queue exactly
// one follow-up.
type Watcher struct {
	configPath   string
	rebuild      RebuildFunc
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	started      bool
	cancel       context.CancelFunc
	stopChan     chan struct{}
	reloadChan   chan string
	debounceTime time.Duration
	wg           sync.WaitGroup

	docsMu  sync.RWMutex
	docsDir string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounceTime = d }
}

// New creates a watcher for configPath and every directory below docsDir.
// docsDir may be empty.
func New(configPath, docsDir string, rebuild RebuildFunc, opts ...Option) (*Watcher, error) {
	if rebuild == nil {
		return nil, fmt.Errorf("watch: rebuild func is required")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	var absDocs string
	if docsDir != "" {
		if absDocs, err = filepath.Abs(docsDir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to resolve docs path: %w", err)
		}
	}

	w := &Watcher{
		configPath:   absConfig,
		docsDir:      absDocs,
		rebuild:      rebuild,
		watcher:      fw,
		stopChan:     make(chan struct{}),
		reloadChan:   make(chan string, 1),
		debounceTime: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start registers the watched directories and begins processing events.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return fmt.Errorf("watch: already started")
	}

	// Watching the directory survives editors that replace the file on save.
	configDir := filepath.Dir(w.configPath)
	if err := w.watcher.Add(configDir); err != nil {
		return fmt.Errorf("failed to watch config directory %s: %w", configDir, err)
	}
	docs := w.docs()
	if docs != "" {
		if err := w.addTree(docs); err != nil {
			return err
		}
	}

	slog.Info("Starting watcher", logfields.Path(w.configPath), slog.String("docs_dir", docs))
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.started = true
	w.wg.Add(2)
	go w.watchLoop(runCtx)
	go w.reloadLoop(runCtx)
	return nil
}

// Stop ends event processing, cancels the context of a rebuild in flight
// and waits for it to return before releasing the underlying watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.started = false
	w.cancel()
	close(w.stopChan)
	w.mu.Unlock()

	w.wg.Wait()
	return w.watcher.Close()
}

// WatchDocs points the watcher at a new docs directory. Directories of the
// previous docs tree stop being watched. An empty dir disables docs watching.
func (w *Watcher) WatchDocs(dir string) error {
	var abs string
	if dir != "" {
		var err error
		if abs, err = filepath.Abs(dir); err != nil {
			return fmt.Errorf("failed to resolve docs path: %w", err)
		}
	}

	w.docsMu.Lock()
	prev := w.docsDir
	w.docsDir = abs
	w.docsMu.Unlock()
	if prev == abs {
		return nil
	}

	configDir := filepath.Dir(w.configPath)
	if prev != "" {
		for _, path := range w.watcher.WatchList() {
			if path != configDir && within(prev, path) {
				_ = w.watcher.Remove(path)
			}
		}
	}
	if abs == "" {
		return nil
	}
	slog.Info("Watching docs directory", logfields.Path(abs))
	return w.addTree(abs)
}

func (w *Watcher) docs() string {
	w.docsMu.RLock()
	defer w.docsMu.RUnlock()
	return w.docsDir
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (w *Watcher) addTree(root string) error {
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
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// relevant reports whether an event should trigger a rebuild.
func (w *Watcher) relevant(name string) bool {
	if name == w.configPath {
		return true
	}
	docs := w.docs()
	if docs == "" || !within(docs, name) {
		return false
	}
	return !strings.HasPrefix(filepath.Base(name), ".")
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event.Name) {
				continue
			}
			switch {
			case event.Has(fsnotify.Create):
				// New subdirectories under docs need their own watch.
				if event.Name != w.configPath {
					if err := w.addTree(event.Name); err != nil {
						slog.Debug("Skipping watch of created path", logfields.Path(event.Name), logfields.Error(err))
					}
				}
				w.trigger(event.Name)
			case event.Has(fsnotify.Write), event.Has(fsnotify.Rename), event.Has(fsnotify.Remove):
				w.trigger(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) trigger(name string) {
	slog.Debug("Change detected", logfields.Path(name))
	select {
	case w.reloadChan <- name:
	default:
		// Rebuild already pending.
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	defer w.wg.Done()

	quietTimer := time.NewTimer(time.Hour)
	if !quietTimer.Stop() {
		<-quietTimer.C
	}
	defer quietTimer.Stop()
	var quietC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-w.reloadChan:
			if !quietTimer.Stop() {
				select {
				case <-quietTimer.C:
				default:
				}
			}
			quietTimer.Reset(w.debounceTime)
			quietC = quietTimer.C
		case <-quietC:
			quietC = nil
			// Runs on this goroutine; triggers arriving meanwhile wait in
			// reloadChan and become the single follow-up.
			w.runRebuild(ctx)
		}
	}
}

func (w *Watcher) runRebuild(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := w.rebuild(ctx); err != nil {
		slog.Error("Rebuild failed", logfields.Error(err))
		return
	}
	slog.Info("Rebuild complete", logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}
