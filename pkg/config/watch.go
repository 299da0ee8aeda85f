package config

import "time"

// DefaultWatchDebounce is the default quiet period before a change is reported.
const DefaultWatchDebounce = 100 * time.Millisecond

// WatchConfig contains configuration for .editorconfig change detection.
type WatchConfig struct {
	// Enabled controls whether the watch command observes ancestor directories.
	// Default: true
	Enabled *bool `json:"enabled,omitempty" koanf:"enabled" toml:"enabled,omitempty"`

	// Debounce is the quiet period after the last change before reloading.
	// Default: "100ms"
	Debounce Duration `json:"debounce,omitempty" koanf:"debounce" toml:"debounce,omitempty"`
}

// IsEnabled returns true if watching is enabled.
// Returns true if Enabled is nil (default behavior).
func (w *WatchConfig) IsEnabled() bool {
	if w == nil || w.Enabled == nil {
		return true
	}

	return *w.Enabled
}

// GetDebounce returns the debounce period as a time.Duration.
// Returns DefaultWatchDebounce if Debounce is zero.
func (w *WatchConfig) GetDebounce() time.Duration {
	if w == nil || w.Debounce == 0 {
		return DefaultWatchDebounce
	}

	return time.Duration(w.Debounce)
}
