package editorconfig

//go:generate mockgen -source=resolver.go -destination=resolver_mock.go -package=editorconfig

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ecresolve/pkg/logger"
	"github.com/smykla-skalski/ecresolve/pkg/pathmatch"
)

// Resolver owns a chain for the current directory and resolves paths against it.
type Resolver interface {
	// BuildChain replaces the current chain with one built from startDir.
	BuildChain(ctx context.Context, startDir string) error

	// Resolve returns the effective properties for an absolute path.
	Resolve(path string) Properties

	// Clear drops the current chain.
	Clear()

	// Chain returns the current chain.
	Chain() Chain
}

// Option configures a FileResolver.
type Option func(*FileResolver)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(r *FileResolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithSource sets where configuration files are read from.
func WithSource(src Source) Option {
	return func(r *FileResolver) {
		if src != nil {
			r.src = src
		}
	}
}

// WithFileName overrides the configuration file name.
func WithFileName(name string) Option {
	return func(r *FileResolver) {
		if name != "" {
			r.fileName = name
		}
	}
}

// WithPatternCache shares a compiled-pattern cache between resolvers.
func WithPatternCache(cache *pathmatch.Cache) Option {
	return func(r *FileResolver) {
		if cache != nil {
			r.patterns = cache
		}
	}
}

// New returns a FileResolver when enabled, otherwise a NullResolver.
//
//nolint:ireturn // the variant is chosen by configuration
func New(enabled bool, opts ...Option) Resolver {
	if !enabled {
		return NullResolver{}
	}

	return NewFileResolver(opts...)
}

// FileResolver builds chains from a Source. The chain is replaced wholesale,
// so Resolve may run concurrently with BuildChain and Clear.
type FileResolver struct {
	mu       sync.RWMutex
	chain    Chain
	src      Source
	fileName string
	patterns *pathmatch.Cache
	log      logger.Logger
}

// NewFileResolver creates a FileResolver reading the OS filesystem by default.
func NewFileResolver(opts ...Option) *FileResolver {
	r := &FileResolver{
		fileName: DefaultFileName,
		patterns: pathmatch.NewCache(),
		log:      logger.NewNoOpLogger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.src == nil {
		r.src = NewOSSource(WithSourceLogger(r.log))
	}

	return r
}

// BuildChain replaces the current chain with one built from startDir.
func (r *FileResolver) BuildChain(ctx context.Context, startDir string) error {
	chain, err := buildChain(ctx, r.src, startDir, r.fileName)
	if err != nil {
		return errors.Wrapf(err, "building chain for %s", startDir)
	}

	r.log.Debug("chain built", "dir", startDir, "levels", len(chain), "root", chain.HasRoot())

	r.mu.Lock()
	r.chain = chain
	r.mu.Unlock()

	return nil
}

// Resolve returns the effective properties for path using the current chain.
func (r *FileResolver) Resolve(path string) Properties {
	props := r.Chain().resolve(path, r.patterns.Match)

	r.log.Debug("resolved", "path", path, "keys", len(props))

	return props
}

// Clear drops the current chain and the compiled patterns.
func (r *FileResolver) Clear() {
	r.mu.Lock()
	r.chain = nil
	r.mu.Unlock()

	r.patterns.Clear()
}

// Chain returns the current chain.
func (r *FileResolver) Chain() Chain {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.chain
}

// FileName returns the configuration file name looked up in each directory.
func (r *FileResolver) FileName() string {
	return r.fileName
}

// NullResolver is used when .editorconfig support is disabled.
type NullResolver struct{}

// BuildChain does nothing.
func (NullResolver) BuildChain(context.Context, string) error { return nil }

// Resolve always returns empty properties.
func (NullResolver) Resolve(string) Properties { return Properties{} }

// Clear does nothing.
func (NullResolver) Clear() {}

// Chain always returns nil.
func (NullResolver) Chain() Chain { return nil }
