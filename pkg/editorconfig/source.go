package editorconfig

//go:generate mockgen -source=source.go -destination=source_mock.go -package=editorconfig

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/smykla-skalski/ecresolve/pkg/logger"
)

// Source provides file contents and directory navigation to BuildChain.
type Source interface {
	// ReadText returns the file's contents, or "" when it cannot be read.
	ReadText(path string) string

	// ParentOf returns the parent directory. The parent of a root is itself.
	ParentOf(path string) string

	// IsRoot reports whether path is a filesystem root.
	IsRoot(path string) bool

	// IsSet reports whether path names a directory at all.
	IsSet(path string) bool
}

// FSSource implements Source on top of an afero filesystem.
type FSSource struct {
	fs  afero.Fs
	log logger.Logger
}

// SourceOption configures an FSSource.
type SourceOption func(*FSSource)

// WithSourceLogger sets the logger used for unexpected read failures.
func WithSourceLogger(log logger.Logger) SourceOption {
	return func(s *FSSource) {
		if log != nil {
			s.log = log
		}
	}
}

// NewOSSource returns a Source reading the real filesystem.
func NewOSSource(opts ...SourceOption) *FSSource {
	return NewFSSource(afero.NewOsFs(), opts...)
}

// NewFSSource returns a Source reading fs.
func NewFSSource(fs afero.Fs, opts ...SourceOption) *FSSource {
	s := &FSSource{
		fs:  fs,
		log: logger.NewNoOpLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ReadText reads path. Missing files are silent; other failures are logged
// at debug level and still yield "".
func (s *FSSource) ReadText(path string) string {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Debug("cannot read config file", "path", path, "error", err)
		}

		return ""
	}

	return string(data)
}

// ParentOf returns the directory containing path.
func (*FSSource) ParentOf(path string) string {
	return filepath.Dir(filepath.Clean(path))
}

// IsRoot reports whether path is its own parent.
func (*FSSource) IsRoot(path string) bool {
	clean := filepath.Clean(path)

	return filepath.Dir(clean) == clean
}

// IsSet reports whether path is non-empty.
func (*FSSource) IsSet(path string) bool {
	return path != ""
}
