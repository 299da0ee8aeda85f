package fixers

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/smykla-skalski/ecresolve/internal/config"
	"github.com/smykla-skalski/ecresolve/internal/doctor"
)

// FixConfigPermissions is the fix ID for world-writable config files.
const FixConfigPermissions = "fix_config_permissions"

const worldWritable = 0o002

// PermissionsFixer removes world write access from configuration files.
type PermissionsFixer struct {
	fs    afero.Fs
	paths []string
}

// NewPermissionsFixer creates a fixer for the given config file paths.
func NewPermissionsFixer(fs afero.Fs, paths ...string) *PermissionsFixer {
	return &PermissionsFixer{fs: fs, paths: paths}
}

// ID returns the fixer identifier.
func (*PermissionsFixer) ID() string {
	return FixConfigPermissions
}

// Description returns a human-readable description.
func (*PermissionsFixer) Description() string {
	return "Restrict configuration files to owner read/write"
}

// CanFix checks if this fixer can fix the given result.
func (*PermissionsFixer) CanFix(result doctor.CheckResult) bool {
	return result.FixID == FixConfigPermissions && result.Status == doctor.StatusFail
}

// Fix changes world-writable files to the config file mode. Missing files
// are skipped.
func (f *PermissionsFixer) Fix(_ context.Context) error {
	for _, path := range f.paths {
		info, err := f.fs.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}

			return errors.Wrapf(err, "failed to stat %s", path)
		}

		if info.Mode().Perm()&worldWritable == 0 {
			continue
		}

		if err := f.fs.Chmod(path, config.ConfigFileMode); err != nil {
			return errors.Wrapf(err, "failed to change permissions of %s", path)
		}
	}

	return nil
}
