// Package config provides internal configuration loading and processing.
package config

import (
	"github.com/smykla-skalski/ecresolve/pkg/config"
)

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *config.Config {
	workers := config.DefaultWorkers

	return &config.Config{
		Version:      config.CurrentConfigVersion,
		EditorConfig: DefaultEditorConfigConfig(),
		Log:          DefaultLogConfig(),
		Watch:        DefaultWatchConfig(),
		Workers:      &workers,
	}
}

// DefaultEditorConfigConfig returns the default editorconfig section.
func DefaultEditorConfigConfig() *config.EditorConfigConfig {
	enabled := true

	return &config.EditorConfigConfig{
		Enabled:         &enabled,
		FileName:        config.DefaultFileName,
		DefaultTabWidth: config.DefaultTabWidth,
	}
}

// DefaultLogConfig returns the default log section.
func DefaultLogConfig() *config.LogConfig {
	return &config.LogConfig{
		Level: config.DefaultLogLevel,
	}
}

// DefaultWatchConfig returns the default watch section.
func DefaultWatchConfig() *config.WatchConfig {
	enabled := true

	return &config.WatchConfig{
		Enabled:  &enabled,
		Debounce: config.Duration(config.DefaultWatchDebounce),
	}
}
