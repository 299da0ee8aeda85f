// Package watcher reports changes to configuration files along a lookup chain.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
	"github.com/smykla-skalski/ecresolve/pkg/logger"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherClosed is returned when the watcher is used after Close.
var ErrWatcherClosed = errors.New("watcher is closed")

// relevantOps are the operations that can change a lookup chain.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// ChangeFunc is called once per burst of changes with the last changed path.
type ChangeFunc func(path string)

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// WithDebounce sets how long the watcher waits for further changes before
// calling the change function.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithFileName sets the configuration file name to watch for.
func WithFileName(name string) Option {
	return func(w *Watcher) {
		if name != "" {
			w.fileName = name
		}
	}
}

// Watcher watches the directories of a lookup chain for configuration file
// changes and calls a ChangeFunc after a quiet period.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange ChangeFunc
	fileName string
	debounce time.Duration
	log      logger.Logger

	mu      sync.Mutex
	dirs    map[string]bool
	timer   *time.Timer
	gen     uint64
	pending string
	closed  bool
}

// New creates a watcher. Call WatchChain to add directories and Run to
// start delivering changes.
func New(onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}

	w := &Watcher{
		fsw:      fsw,
		onChange: onChange,
		fileName: editorconfig.DefaultFileName,
		debounce: DefaultDebounce,
		log:      logger.NewNoOpLogger(),
		dirs:     make(map[string]bool),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Dirs returns the directories whose configuration files affect a chain
// built from startDir. The walk stops at the outermost chain level when the
// chain ends in a root declaration, otherwise at the filesystem root.
func Dirs(startDir string, chain editorconfig.Chain) []string {
	if startDir == "" {
		return nil
	}

	stop := ""
	if chain.HasRoot() && len(chain) > 0 {
		stop = filepath.Clean(filepath.FromSlash(chain[0].Dir))
	}

	var dirs []string

	dir := filepath.Clean(startDir)
	for {
		dirs = append(dirs, dir)

		if dir == stop {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return dirs
}

// WatchChain replaces the watched directories with the ones affecting a
// chain built from startDir. Directories that do not exist are skipped.
func (w *Watcher) WatchChain(startDir string, chain editorconfig.Chain) error {
	want := Dirs(startDir, chain)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	keep := make(map[string]bool, len(want))
	for _, dir := range want {
		keep[dir] = true
	}

	for dir := range w.dirs {
		if keep[dir] {
			continue
		}

		if err := w.fsw.Remove(dir); err != nil {
			w.log.Debug("failed to stop watching directory", "dir", dir, "error", err)
		}

		delete(w.dirs, dir)
	}

	for _, dir := range want {
		if w.dirs[dir] {
			continue
		}

		if _, err := os.Stat(dir); err != nil {
			w.log.Debug("skipping directory", "dir", dir, "error", err)

			continue
		}

		if err := w.fsw.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}

		w.dirs[dir] = true
	}

	w.log.Debug("watching chain", "start", startDir, "dirs", len(w.dirs))

	return nil
}

// Watched returns the number of watched directories.
func (w *Watcher) Watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.dirs)
}

// Run delivers changes until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

			w.log.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op&relevantOps == 0 {
		return
	}

	if filepath.Base(ev.Name) != w.fileName {
		return
	}

	w.log.Debug("configuration file changed", "path", ev.Name, "op", ev.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.pending = ev.Name

	// Each burst restarts the quiet period with a fresh timer. A timer that
	// already fired and is waiting for the lock sees a newer generation and
	// gives up.
	if w.timer != nil {
		w.timer.Stop()
	}

	w.gen++
	gen := w.gen
	w.timer = time.AfterFunc(w.debounce, func() { w.fire(gen) })
}

func (w *Watcher) fire(gen uint64) {
	w.mu.Lock()
	if w.closed || gen != w.gen {
		w.mu.Unlock()

		return
	}

	path := w.pending
	w.timer = nil
	w.mu.Unlock()

	if w.onChange == nil {
		return
	}

	w.onChange(path)
}

// Close stops watching. Pending changes are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()

		return nil
	}

	w.closed = true

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	return w.fsw.Close()
}
