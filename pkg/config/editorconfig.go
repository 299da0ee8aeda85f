package config

// Default values for editorconfig resolution.
const (
	// DefaultFileName is the per-directory configuration file name.
	DefaultFileName = ".editorconfig"

	// DefaultTabWidth is used when indent_size = tab and no tab_width is set.
	DefaultTabWidth = 8
)

// EditorConfigConfig contains configuration for .editorconfig resolution.
type EditorConfigConfig struct {
	// Enabled controls whether .editorconfig files are read at all.
	// When false, resolution always yields an empty property set.
	// Default: true
	Enabled *bool `json:"enabled,omitempty" koanf:"enabled" toml:"enabled,omitempty"`

	// FileName is the file looked up in every ancestor directory.
	// Default: ".editorconfig"
	FileName string `json:"file_name,omitempty" koanf:"file_name" toml:"file_name,omitempty"`

	// DefaultTabWidth is the width used for indent_size = tab without tab_width.
	// Default: 8
	DefaultTabWidth int `json:"default_tab_width,omitempty" koanf:"default_tab_width" toml:"default_tab_width,omitempty"`
}

// IsEnabled returns true if resolution is enabled.
// Returns true if Enabled is nil (default behavior).
func (e *EditorConfigConfig) IsEnabled() bool {
	if e == nil || e.Enabled == nil {
		return true
	}

	return *e.Enabled
}

// GetFileName returns the configuration file name.
// Returns DefaultFileName if FileName is empty.
func (e *EditorConfigConfig) GetFileName() string {
	if e == nil || e.FileName == "" {
		return DefaultFileName
	}

	return e.FileName
}

// GetDefaultTabWidth returns the fallback tab width.
// Returns DefaultTabWidth if DefaultTabWidth is not positive.
func (e *EditorConfigConfig) GetDefaultTabWidth() int {
	if e == nil || e.DefaultTabWidth <= 0 {
		return DefaultTabWidth
	}

	return e.DefaultTabWidth
}
