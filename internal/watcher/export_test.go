package watcher

import "github.com/fsnotify/fsnotify"

// Notify feeds a write event for path as if it came from fsnotify.
func (w *Watcher) Notify(path string) {
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Write})
}

// Generation returns the generation of the latest debounce timer.
func (w *Watcher) Generation() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.gen
}

// Fire runs the debounce callback for gen as a timer would.
func (w *Watcher) Fire(gen uint64) {
	w.fire(gen)
}
