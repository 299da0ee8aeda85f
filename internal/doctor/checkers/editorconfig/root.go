package editorconfigchecker

import (
	"context"

	"github.com/smykla-skalski/ecresolve/internal/doctor"
)

const rootCheckName = "Root"

// FixAddRoot is the fix ID of the fixer declaring root = true in the
// outermost configuration file.
const FixAddRoot = "add_root"

// RootChecker warns when no level stops the lookup, so files above the
// project can change its properties.
type RootChecker struct {
	target Target
}

// NewRootChecker creates a new root checker
func NewRootChecker(target Target) *RootChecker {
	return &RootChecker{target: target}
}

// Name returns the name of the check
func (*RootChecker) Name() string {
	return rootCheckName
}

// Category returns the category of the check
func (*RootChecker) Category() doctor.Category {
	return doctor.CategoryEditorConfig
}

// Check looks for a root declaration in the chain
func (c *RootChecker) Check(_ context.Context) doctor.CheckResult {
	chain := c.target.Chain()
	if len(chain) == 0 {
		return doctor.Skip(rootCheckName, "No configuration files found")
	}

	outermost := c.target.FilePath(chain[0])

	if chain.HasRoot() {
		return doctor.Pass(rootCheckName, "Declared in "+outermost)
	}

	return doctor.FailWarning(rootCheckName, "No file declares root = true").
		WithDetails(
			"Lookup continues above "+outermost,
			"Add 'root = true' at the top of "+outermost,
		).
		WithFixID(FixAddRoot)
}
