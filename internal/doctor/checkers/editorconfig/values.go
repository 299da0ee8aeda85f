package editorconfigchecker

import (
	"context"
	"fmt"

	"github.com/smykla-skalski/ecresolve/internal/doctor"
	"github.com/smykla-skalski/ecresolve/pkg/config"
	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
)

const valuesCheckName = "Values"

// ValuesChecker reports known properties with values editors reject.
type ValuesChecker struct {
	target Target
}

// NewValuesChecker creates a new values checker
func NewValuesChecker(target Target) *ValuesChecker {
	return &ValuesChecker{target: target}
}

// Name returns the name of the check
func (*ValuesChecker) Name() string {
	return valuesCheckName
}

// Category returns the category of the check
func (*ValuesChecker) Category() doctor.Category {
	return doctor.CategoryEditorConfig
}

// Check validates each assignment of the chain on its own
func (c *ValuesChecker) Check(_ context.Context) doctor.CheckResult {
	chain := c.target.Chain()
	if len(chain) == 0 {
		return doctor.Skip(valuesCheckName, "No configuration files found")
	}

	var (
		details []string
		checked int
	)

	for _, level := range chain {
		path := c.target.FilePath(level)

		sectionAssignments(c.target.Source.ReadText(path), func(num int, section string, line editorconfig.Line) {
			if line.Value == "unset" {
				return
			}

			checked++

			props := editorconfig.Properties{line.Key: line.Value}
			if _, err := editorconfig.ParseSettings(props, config.DefaultTabWidth); err != nil {
				details = append(details, fmt.Sprintf("%s [%s]: %s = %s",
					location(path, num), section, line.Key, line.Value))
			}
		})
	}

	if len(details) > 0 {
		return doctor.FailError(valuesCheckName, plural(len(details), "invalid value")).
			WithDetails(details...)
	}

	return doctor.Pass(valuesCheckName, plural(checked, "value")+" valid")
}
