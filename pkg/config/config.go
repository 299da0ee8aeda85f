// Package config provides configuration schema types for ecresolve.
package config

// CurrentConfigVersion is the latest config schema version.
const CurrentConfigVersion = 1

// DefaultWorkers is the default number of files resolved concurrently.
const DefaultWorkers = 4

// Config represents the root configuration for ecresolve.
type Config struct {
	// Version is the config schema version. Defaults to 1 when omitted.
	Version int `json:"version,omitempty" koanf:"version" toml:"version,omitempty"`

	// EditorConfig controls how .editorconfig files are discovered and interpreted.
	EditorConfig *EditorConfigConfig `json:"editorconfig,omitempty" koanf:"editorconfig" toml:"editorconfig,omitempty"`

	// Log controls diagnostic logging.
	Log *LogConfig `json:"log,omitempty" koanf:"log" toml:"log,omitempty"`

	// Watch controls change detection for long-running sessions.
	Watch *WatchConfig `json:"watch,omitempty" koanf:"watch" toml:"watch,omitempty"`

	// Workers is the number of files resolved concurrently by bulk commands.
	// Default: 4
	Workers *int `json:"workers,omitempty" jsonschema:"minimum=1" koanf:"workers" toml:"workers,omitempty"`
}

// GetEditorConfig returns the editorconfig section, creating it if it doesn't exist.
func (c *Config) GetEditorConfig() *EditorConfigConfig {
	if c.EditorConfig == nil {
		c.EditorConfig = &EditorConfigConfig{}
	}

	return c.EditorConfig
}

// GetLog returns the log section, creating it if it doesn't exist.
func (c *Config) GetLog() *LogConfig {
	if c.Log == nil {
		c.Log = &LogConfig{}
	}

	return c.Log
}

// GetWatch returns the watch section, creating it if it doesn't exist.
func (c *Config) GetWatch() *WatchConfig {
	if c.Watch == nil {
		c.Watch = &WatchConfig{}
	}

	return c.Watch
}

// GetWorkers returns the worker count.
// Returns DefaultWorkers if Workers is unset or not positive.
func (c *Config) GetWorkers() int {
	if c == nil || c.Workers == nil || *c.Workers <= 0 {
		return DefaultWorkers
	}

	return *c.Workers
}
