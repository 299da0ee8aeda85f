package fixers

import (
	"bytes"
	"context"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/smykla-skalski/ecresolve/internal/doctor"
	editorconfigchecker "github.com/smykla-skalski/ecresolve/internal/doctor/checkers/editorconfig"
)

var utf8BOM = []byte("\xEF\xBB\xBF")

// RootFixer declares root = true at the top of the outermost file of a chain.
type RootFixer struct {
	fs     afero.Fs
	target editorconfigchecker.Target
}

// NewRootFixer creates a new RootFixer writing through fs.
func NewRootFixer(fs afero.Fs, target editorconfigchecker.Target) *RootFixer {
	return &RootFixer{fs: fs, target: target}
}

// ID returns the fixer identifier.
func (*RootFixer) ID() string {
	return editorconfigchecker.FixAddRoot
}

// Description returns a human-readable description.
func (*RootFixer) Description() string {
	return "Declare root = true in the outermost configuration file"
}

// CanFix checks if this fixer can fix the given result.
func (*RootFixer) CanFix(result doctor.CheckResult) bool {
	return result.FixID == editorconfigchecker.FixAddRoot && result.Status == doctor.StatusFail
}

// Fix prepends the declaration. A chain that already has a root is left alone.
func (f *RootFixer) Fix(_ context.Context) error {
	chain := f.target.Chain()
	if len(chain) == 0 || chain.HasRoot() {
		return nil
	}

	path := f.target.FilePath(chain[0])

	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}

	return AtomicWriteFile(f.fs, path, prependRoot(data))
}

func prependRoot(data []byte) []byte {
	bom := bytes.HasPrefix(data, utf8BOM)
	data = bytes.TrimPrefix(data, utf8BOM)

	var buf bytes.Buffer

	if bom {
		buf.Write(utf8BOM)
	}

	buf.WriteString("root = true\n\n")
	buf.Write(data)

	return buf.Bytes()
}
