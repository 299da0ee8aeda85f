package editorconfig

import "github.com/cockroachdb/errors"

// ErrInvalidValue marks a property whose value cannot be translated into Settings.
var ErrInvalidValue = errors.New("invalid editorconfig value")

func invalidValue(key, value string) error {
	return errors.Wrapf(ErrInvalidValue, "invalid value in .editorconfig '%s=%s'", key, value)
}
