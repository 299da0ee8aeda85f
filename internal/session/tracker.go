// Package session tracks the resolver state for the file currently being edited.
package session

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ecresolve/pkg/config"
	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
	"github.com/smykla-skalski/ecresolve/pkg/logger"
)

// Tracker owns one resolver and the directory its chain was built for. The
// chain is rebuilt only when the current file moves to another directory or
// after Invalidate.
type Tracker struct {
	mu       sync.Mutex
	resolver editorconfig.Resolver
	logger   logger.Logger

	dir     string
	builtAt time.Time
	stale   bool

	defaultTabWidth int

	// now is a function that returns the current time.
	// Used for testing to control time.
	now func() time.Time
}

// TrackerOption configures the Tracker.
type TrackerOption func(*Tracker)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) TrackerOption {
	return func(t *Tracker) {
		if log != nil {
			t.logger = log
		}
	}
}

// WithResolver sets the resolver instead of building one from config.
func WithResolver(r editorconfig.Resolver) TrackerOption {
	return func(t *Tracker) {
		if r != nil {
			t.resolver = r
		}
	}
}

// WithTimeFunc sets a custom time function for testing.
func WithTimeFunc(fn func() time.Time) TrackerOption {
	return func(t *Tracker) {
		if fn != nil {
			t.now = fn
		}
	}
}

// NewTracker creates a tracker configured from cfg. A nil cfg uses defaults.
func NewTracker(cfg *config.EditorConfigConfig, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		logger:          logger.NewNoOpLogger(),
		defaultTabWidth: cfg.GetDefaultTabWidth(),
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.resolver == nil {
		t.resolver = editorconfig.New(
			cfg.IsEnabled(),
			editorconfig.WithFileName(cfg.GetFileName()),
			editorconfig.WithLogger(t.logger),
		)
	}

	return t
}

// Open makes path the current file. The chain is rebuilt when the file's
// directory differs from the last one or the tracker was invalidated.
// Returns whether a rebuild happened.
func (t *Tracker) Open(ctx context.Context, path string) (bool, error) {
	dir := filepath.Dir(path)

	t.mu.Lock()
	defer t.mu.Unlock()

	if dir == t.dir && !t.stale && !t.builtAt.IsZero() {
		return false, nil
	}

	if err := t.resolver.BuildChain(ctx, dir); err != nil {
		return false, errors.Wrapf(err, "opening %s", path)
	}

	t.dir = dir
	t.stale = false
	t.builtAt = t.now()

	t.logger.Debug("session directory changed", "dir", dir)

	return true, nil
}

// Reload rebuilds the chain for the current directory.
func (t *Tracker) Reload(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.dir == "" {
		return nil
	}

	if err := t.resolver.BuildChain(ctx, t.dir); err != nil {
		return errors.Wrapf(err, "reloading %s", t.dir)
	}

	t.stale = false
	t.builtAt = t.now()

	return nil
}

// Invalidate drops the chain so the next Open rebuilds it.
func (t *Tracker) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resolver.Clear()
	t.stale = true
}

// Properties resolves path against the current chain.
func (t *Tracker) Properties(path string) editorconfig.Properties {
	return t.resolver.Resolve(path)
}

// Settings resolves path and translates the result into typed settings.
func (t *Tracker) Settings(path string) (editorconfig.Settings, error) {
	return editorconfig.ParseSettings(t.resolver.Resolve(path), t.defaultTabWidth)
}

// Chain returns the current chain.
func (t *Tracker) Chain() editorconfig.Chain {
	return t.resolver.Chain()
}

// Dir returns the directory of the current chain.
func (t *Tracker) Dir() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.dir
}

// BuiltAt returns when the chain was last built.
func (t *Tracker) BuiltAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.builtAt
}
