// Package config provides internal configuration loading and processing.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/smykla-skalski/ecresolve/internal/schema"
	"github.com/smykla-skalski/ecresolve/internal/xdg"
	"github.com/smykla-skalski/ecresolve/pkg/config"
)

const (
	// ConfigFileMode is the file mode for configuration files (user read/write only).
	ConfigFileMode = 0o600

	// ConfigDirMode is the file mode for configuration directories (user rwx only).
	ConfigDirMode = 0o700
)

// ErrConfigExists is returned when a write would overwrite an existing file.
var ErrConfigExists = errors.New("configuration file already exists")

// Writer handles writing configuration to TOML files.
type Writer struct {
	paths   xdg.PathResolver
	workDir string
}

// NewWriter creates a new Writer with default directories.
func NewWriter() *Writer {
	return &Writer{
		paths:   xdg.DefaultResolver(),
		workDir: mustGetwd(),
	}
}

// NewWriterWithDirs creates a new Writer with custom directories (for testing).
func NewWriterWithDirs(paths xdg.PathResolver, workDir string) *Writer {
	return &Writer{
		paths:   paths,
		workDir: workDir,
	}
}

// WriteGlobal writes the configuration to the global config file.
func (w *Writer) WriteGlobal(cfg *config.Config, force bool) error {
	return w.write(w.GlobalConfigPath(), cfg, force)
}

// WriteProject writes the configuration to the project config file.
func (w *Writer) WriteProject(cfg *config.Config, force bool) error {
	return w.write(w.ProjectConfigPath(), cfg, force)
}

func (w *Writer) write(path string, cfg *config.Config, force bool) error {
	if !force && fileExists(path) {
		return errors.Wrapf(ErrConfigExists, "%s", path)
	}

	return w.WriteFile(path, cfg)
}

// WriteFile writes the configuration to the given path.
func (*Writer) WriteFile(path string, cfg *config.Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, ConfigDirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	if err := os.WriteFile(path, data, ConfigFileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}

	return nil
}

// Marshal encodes cfg as TOML, preceded by the Taplo schema directive.
func Marshal(cfg *config.Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "config is nil")
	}

	var buf bytes.Buffer

	buf.WriteString(schema.SchemaDirective())
	buf.WriteByte('\n')

	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(true)

	if err := encoder.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to encode config to TOML")
	}

	return buf.Bytes(), nil
}

// GlobalConfigPath returns the path to the global configuration file.
func (w *Writer) GlobalConfigPath() string {
	return w.paths.GlobalConfigFile()
}

// ProjectConfigPath returns the path to the project configuration file.
func (w *Writer) ProjectConfigPath() string {
	return filepath.Join(w.workDir, ProjectConfigFile)
}
