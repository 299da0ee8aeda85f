// Package fixers provides auto-fix implementations for health check issues.
package fixers

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

const (
	defaultDirPermissions  = 0o750
	defaultFilePermissions = 0o644
)

// AtomicWriteFile writes data to path through a temp file and rename,
// keeping the permissions of an existing file.
func AtomicWriteFile(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), defaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create directory")
	}

	perm := os.FileMode(defaultFilePermissions)
	if info, err := fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmpFile := path + ".tmp"
	if err := afero.WriteFile(fs, tmpFile, data, perm); err != nil {
		return errors.Wrap(err, "failed to write temp file")
	}

	if err := fs.Rename(tmpFile, path); err != nil {
		_ = fs.Remove(tmpFile)

		return errors.Wrap(err, "failed to rename temp file")
	}

	return nil
}
