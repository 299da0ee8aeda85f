// Package config provides internal configuration loading and processing.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/maps"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-skalski/ecresolve/internal/xdg"
	"github.com/smykla-skalski/ecresolve/pkg/config"
)

var (
	// ErrConfigNotFound is returned when an explicitly requested configuration file is missing.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidPermissions is returned when config file has insecure permissions.
	ErrInvalidPermissions = errors.New("config file has insecure permissions")
)

const (
	// ProjectConfigFile is the project configuration file name, looked up in the working directory.
	ProjectConfigFile = ".ecresolve.toml"

	// EnvPrefix is the prefix of environment variables mapped onto config keys.
	EnvPrefix = "ECRESOLVE_"

	worldWritable = 0o002
)

// envSections lists config sections whose keys may contain underscores.
var envSections = []string{"editorconfig", "log", "watch"}

// KoanfLoader handles configuration loading from multiple sources using koanf.
// Precedence order (highest to lowest):
// 1. CLI Flags
// 2. Environment Variables (ECRESOLVE_*)
// 3. Project Config (.ecresolve.toml, or the file given with WithConfigFile)
// 4. Global Config ($XDG_CONFIG_HOME/ecresolve/config.toml)
// 5. Defaults
type KoanfLoader struct {
	k          *koanf.Koanf
	paths      xdg.PathResolver
	workDir    string
	configFile string
}

// LoaderOption configures a KoanfLoader.
type LoaderOption func(*KoanfLoader)

// WithConfigFile replaces the project config lookup with an explicit file.
// A missing explicit file is an error, unlike a missing project config.
func WithConfigFile(path string) LoaderOption {
	return func(l *KoanfLoader) {
		l.configFile = path
	}
}

// WithPathResolver sets the resolver used to locate the global config.
func WithPathResolver(paths xdg.PathResolver) LoaderOption {
	return func(l *KoanfLoader) {
		if paths != nil {
			l.paths = paths
		}
	}
}

// NewKoanfLoader creates a new KoanfLoader for the current working directory.
func NewKoanfLoader(opts ...LoaderOption) (*KoanfLoader, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get working directory")
	}

	return NewKoanfLoaderWithDirs(workDir, opts...), nil
}

// NewKoanfLoaderWithDirs creates a new KoanfLoader rooted at workDir.
func NewKoanfLoaderWithDirs(workDir string, opts ...LoaderOption) *KoanfLoader {
	l := &KoanfLoader{
		k:       koanf.New("."),
		paths:   xdg.DefaultResolver(),
		workDir: workDir,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load loads configuration from all sources with precedence and validates it.
func (l *KoanfLoader) Load(flags map[string]any) (*config.Config, error) {
	cfg, err := l.LoadWithoutValidation(flags)
	if err != nil {
		return nil, err
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// LoadWithoutValidation loads configuration without running validation.
// Flags are keyed by dotted config path, e.g. "editorconfig.file_name".
func (l *KoanfLoader) LoadWithoutValidation(flags map[string]any) (*config.Config, error) {
	l.k = koanf.New(".")

	// 1. Defaults
	if err := l.k.Load(confmap.Provider(defaultsToMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	// 2. Global config
	if err := l.loadTOMLFile(l.GlobalConfigPath()); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load global config")
	}

	// 3. Project config
	if err := l.loadProjectConfig(); err != nil {
		return nil, err
	}

	// 4. Environment variables
	envOpt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envTransform,
	}

	if err := l.k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	// 5. CLI flags
	if len(flags) > 0 {
		nested := maps.Unflatten(flags, ".")
		if err := l.k.Load(confmap.Provider(nested, ""), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	var cfg config.Config

	dc := CustomDecoderConfig()
	dc.Result = &cfg

	conf := koanf.UnmarshalConf{
		Tag:           "koanf",
		DecoderConfig: dc,
	}

	if err := l.k.UnmarshalWithConf("", &cfg, conf); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

func (l *KoanfLoader) loadProjectConfig() error {
	if l.configFile != "" {
		err := l.loadTOMLFile(l.configFile)
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrConfigNotFound, "%s", l.configFile)
		}

		return errors.Wrap(err, "failed to load config file")
	}

	if err := l.loadTOMLFile(l.ProjectConfigPath()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to load project config")
	}

	return nil
}

// loadTOMLFile loads a TOML configuration file with security checks.
func (l *KoanfLoader) loadTOMLFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.Mode().Perm()&worldWritable != 0 {
		return errors.Wrapf(
			ErrInvalidPermissions,
			"%s is world-writable (mode: %s)",
			path,
			info.Mode().Perm(),
		)
	}

	return l.k.Load(file.Provider(path), tomlparser.Parser())
}

// envTransform maps environment variable names to config paths.
// ECRESOLVE_EDITORCONFIG_FILE_NAME → editorconfig.file_name
// ECRESOLVE_WORKERS → workers
func envTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	for _, section := range envSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest, value
		}
	}

	return key, value
}

// GlobalConfigPath returns the path to the global configuration file.
func (l *KoanfLoader) GlobalConfigPath() string {
	return l.paths.GlobalConfigFile()
}

// ProjectConfigPath returns the path checked for project configuration.
func (l *KoanfLoader) ProjectConfigPath() string {
	if l.configFile != "" {
		return l.configFile
	}

	return filepath.Join(l.workDir, ProjectConfigFile)
}

// HasGlobalConfig checks if a global configuration file exists.
func (l *KoanfLoader) HasGlobalConfig() bool {
	return fileExists(l.GlobalConfigPath())
}

// HasProjectConfig checks if a project configuration file exists.
func (l *KoanfLoader) HasProjectConfig() bool {
	return fileExists(l.ProjectConfigPath())
}

// defaultsToMap converts DefaultConfig to a map for koanf loading.
func defaultsToMap() map[string]any {
	return map[string]any{
		"version": config.CurrentConfigVersion,
		"editorconfig": map[string]any{
			"enabled":           true,
			"file_name":         config.DefaultFileName,
			"default_tab_width": config.DefaultTabWidth,
		},
		"log": map[string]any{
			"level": config.DefaultLogLevel,
		},
		"watch": map[string]any{
			"enabled":  true,
			"debounce": config.DefaultWatchDebounce.String(),
		},
		"workers": config.DefaultWorkers,
	}
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return !info.IsDir()
}

// mustGetwd returns the current working directory or panics.
func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		panic("failed to get working directory: " + err.Error())
	}

	return wd
}
