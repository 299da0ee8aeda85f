// Package config provides internal configuration loading and processing.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/ecresolve/pkg/config"
	"github.com/smykla-skalski/ecresolve/pkg/logger"
)

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidLength is returned when a width or count is out of range.
	ErrInvalidLength = errors.New("invalid length value")

	// ErrEmptyValue is returned when a required value is empty.
	ErrEmptyValue = errors.New("empty value not allowed")

	// ErrInvalidOption is returned when an option value is invalid.
	ErrInvalidOption = errors.New("invalid option value")

	// ErrUnsupportedVersion is returned for config versions newer than this build understands.
	ErrUnsupportedVersion = errors.New("unsupported config version")
)

// Validator validates configuration semantics.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the entire configuration.
// Returns an error describing all validation failures.
func (v *Validator) Validate(cfg *config.Config) error {
	if cfg == nil {
		return errors.WithMessage(ErrInvalidConfig, "config is nil")
	}

	var validationErrors []error

	if cfg.Version > config.CurrentConfigVersion {
		validationErrors = append(validationErrors, errors.Wrapf(
			ErrUnsupportedVersion,
			"version: %d, newest supported is %d",
			cfg.Version,
			config.CurrentConfigVersion,
		))
	}

	if cfg.EditorConfig != nil {
		if err := v.validateEditorConfig(cfg.EditorConfig); err != nil {
			validationErrors = append(validationErrors, errors.Wrap(err, "editorconfig"))
		}
	}

	if cfg.Log != nil {
		if err := v.validateLogConfig(cfg.Log); err != nil {
			validationErrors = append(validationErrors, errors.Wrap(err, "log"))
		}
	}

	if cfg.Workers != nil && *cfg.Workers < 1 {
		validationErrors = append(validationErrors, errors.Wrapf(
			ErrInvalidLength,
			"workers: must be at least 1, got %d",
			*cfg.Workers,
		))
	}

	if len(validationErrors) > 0 {
		return errors.WithSecondaryError(
			errors.Wrapf(
				ErrInvalidConfig,
				"validation failed with %d error(s)",
				len(validationErrors),
			),
			combineErrors(validationErrors),
		)
	}

	return nil
}

// validateEditorConfig validates the editorconfig section.
func (*Validator) validateEditorConfig(cfg *config.EditorConfigConfig) error {
	var validationErrors []error

	switch {
	case strings.TrimSpace(cfg.FileName) == "" && cfg.FileName != "":
		validationErrors = append(validationErrors, errors.Wrap(ErrEmptyValue, "file_name"))
	case strings.ContainsAny(cfg.FileName, `/\`):
		validationErrors = append(validationErrors, errors.Wrapf(
			ErrInvalidOption,
			"file_name: %q must be a bare file name",
			cfg.FileName,
		))
	}

	if cfg.DefaultTabWidth < 0 {
		validationErrors = append(validationErrors, errors.Wrapf(
			ErrInvalidLength,
			"default_tab_width: must be positive, got %d",
			cfg.DefaultTabWidth,
		))
	}

	return combineErrors(validationErrors)
}

// validateLogConfig validates the log section.
func (*Validator) validateLogConfig(cfg *config.LogConfig) error {
	if cfg.Level == "" {
		return nil
	}

	if _, err := logger.ParseLevel(cfg.Level); err != nil {
		return errors.Wrapf(ErrInvalidOption, "level: %v", err)
	}

	return nil
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return errors.Join(errs...)
}
