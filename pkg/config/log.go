package config

// DefaultLogLevel is the log level used when none is configured.
const DefaultLogLevel = "error"

// LogConfig contains configuration for diagnostic logging.
type LogConfig struct {
	// Level is one of "debug", "info" or "error".
	// Default: "error"
	Level string `json:"level,omitempty" jsonschema:"enum=debug,enum=info,enum=error" koanf:"level" toml:"level,omitempty"`

	// File is the log file path. Empty means the XDG state location.
	File string `json:"file,omitempty" koanf:"file" toml:"file,omitempty"`
}

// GetLevel returns the configured level name.
// Returns DefaultLogLevel if Level is empty.
func (l *LogConfig) GetLevel() string {
	if l == nil || l.Level == "" {
		return DefaultLogLevel
	}

	return l.Level
}

// GetFile returns the configured log file, or an empty string.
func (l *LogConfig) GetFile() string {
	if l == nil {
		return ""
	}

	return l.File
}
