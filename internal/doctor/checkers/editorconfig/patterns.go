package editorconfigchecker

import (
	"context"
	"fmt"

	"github.com/smykla-skalski/ecresolve/internal/doctor"
	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
	"github.com/smykla-skalski/ecresolve/pkg/pathmatch"
)

const patternsCheckName = "Patterns"

// PatternsChecker reports section patterns whose brackets or braces are
// unbalanced and were therefore matched literally.
type PatternsChecker struct {
	target Target
	cache  *pathmatch.Cache
}

// NewPatternsChecker creates a new patterns checker
func NewPatternsChecker(target Target) *PatternsChecker {
	return &PatternsChecker{target: target, cache: pathmatch.NewCache()}
}

// Name returns the name of the check
func (*PatternsChecker) Name() string {
	return patternsCheckName
}

// Category returns the category of the check
func (*PatternsChecker) Category() doctor.Category {
	return doctor.CategoryEditorConfig
}

// Check compiles every closed section pattern of the chain
func (c *PatternsChecker) Check(_ context.Context) doctor.CheckResult {
	chain := c.target.Chain()
	if len(chain) == 0 {
		return doctor.Skip(patternsCheckName, "No configuration files found")
	}

	var (
		details  []string
		sections int
	)

	for _, level := range chain {
		path := c.target.FilePath(level)

		for _, line := range level.Lines {
			parsed := editorconfig.ParseLine(line)
			if parsed.Kind != editorconfig.LineSection || !parsed.Closed {
				continue
			}

			sections++

			for _, warning := range c.cache.Get(parsed.Pattern).Warnings() {
				details = append(details, fmt.Sprintf("%s [%s]: %s", path, parsed.Pattern, warning))
			}
		}
	}

	if len(details) > 0 {
		return doctor.FailWarning(patternsCheckName, plural(len(details), "pattern problem")).
			WithDetails(details...)
	}

	return doctor.Pass(patternsCheckName, plural(sections, "section")+" compiled")
}
