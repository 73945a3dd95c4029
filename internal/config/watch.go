package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultWatchDebounce = 150 * time.Millisecond

// Reload is emitted after the watched config file changes. Err is set when
// the new contents fail to load; the previous config stays in effect.
type Reload struct {
	Result *LoadResult
	Err    error
}

// Watcher reloads a config file whenever it is written, created or replaced.
// Editors that save by rename are handled by watching the parent directory.
type Watcher struct {
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher
	out      chan Reload

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	wg     sync.WaitGroup
}

// NewWatcher watches path. The file itself does not need to exist yet.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		fs:       fw,
		out:      make(chan Reload, 1),
	}, nil
}

// Reloads delivers debounced reload results.
func (w *Watcher) Reloads() <-chan Reload {
	return w.out
}

// Run processes file events until ctx is done or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	w.wg.Add(1)
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	res, err := LoadFromPath(w.path)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	// Keep only the newest result.
	select {
	case <-w.out:
	default:
	}
	w.out <- Reload{Result: res, Err: err}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fs.Close()
	w.wg.Wait()
	return err
}
