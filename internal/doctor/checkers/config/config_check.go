// Package configchecker provides checkers for the tool's own configuration files.
package configchecker

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ecresolve/internal/config"
	"github.com/smykla-skalski/ecresolve/internal/doctor"
	"github.com/smykla-skalski/ecresolve/internal/doctor/fixers"
)

const checkName = "Configuration"

// Checker loads and validates the merged configuration.
type Checker struct {
	loader *config.KoanfLoader
}

// NewChecker creates a checker using loader.
func NewChecker(loader *config.KoanfLoader) *Checker {
	return &Checker{loader: loader}
}

// Name returns the name of the check
func (*Checker) Name() string {
	return checkName
}

// Category returns the category of the check
func (*Checker) Category() doctor.Category {
	return doctor.CategoryConfig
}

// Check loads every configuration source and validates the result
func (c *Checker) Check(_ context.Context) doctor.CheckResult {
	var sources []string

	if c.loader.HasGlobalConfig() {
		sources = append(sources, "Global: "+c.loader.GlobalConfigPath())
	}

	if c.loader.HasProjectConfig() {
		sources = append(sources, "Project: "+c.loader.ProjectConfigPath())
	}

	cfg, err := c.loader.LoadWithoutValidation(nil)
	if err != nil {
		if errors.Is(err, config.ErrInvalidPermissions) {
			return doctor.FailError(checkName, "Insecure file permissions").
				WithDetails(sources...).
				WithDetails(
					"Config files must not be world-writable",
					"Fix with: chmod 600 <config-file>",
				).
				WithFixID(fixers.FixConfigPermissions)
		}

		return doctor.FailError(checkName, "Failed to load").
			WithDetails(sources...).
			WithDetails(fmt.Sprintf("Error: %v", err))
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return doctor.FailError(checkName, "Validation failed").
			WithDetails(sources...).
			WithDetails(fmt.Sprintf("Error: %v", err))
	}

	if len(sources) == 0 {
		return doctor.Pass(checkName, "Using defaults").
			WithDetails("Create one with: ecresolve config init")
	}

	return doctor.Pass(checkName, "Valid").WithDetails(sources...)
}
