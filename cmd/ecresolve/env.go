package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	internalcolor "github.com/smykla-skalski/ecresolve/internal/color"
	internalconfig "github.com/smykla-skalski/ecresolve/internal/config"
	"github.com/smykla-skalski/ecresolve/internal/session"
	"github.com/smykla-skalski/ecresolve/internal/xdg"
	"github.com/smykla-skalski/ecresolve/pkg/config"
	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
	"github.com/smykla-skalski/ecresolve/pkg/logger"
	"github.com/smykla-skalski/ecresolve/pkg/pathmatch"
)

// environment carries what every command needs after startup.
type environment struct {
	cfg   *config.Config
	log   logger.Logger
	theme internalcolor.Theme

	closeLog func() error
}

// setup loads configuration and opens the log file.
func setup() (*environment, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, err
	}

	cfg, err := loader.Load(buildFlagsMap())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	return newEnvironment(cfg)
}

func newEnvironment(cfg *config.Config) (*environment, error) {
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	log.Info("ecresolve invoked", "debug", debugMode, "trace", traceMode)

	return &environment{
		cfg:      cfg,
		log:      log,
		theme:    internalcolor.NewTheme(internalcolor.Enabled(noColorFlag, os.Stdout)),
		closeLog: log.Close,
	}, nil
}

// Close flushes and closes the log file.
func (e *environment) Close() {
	if e.closeLog != nil {
		_ = e.closeLog()
	}
}

// newLoader creates a config loader honoring --config.
func newLoader() (*internalconfig.KoanfLoader, error) {
	var opts []internalconfig.LoaderOption
	if configPath != "" {
		opts = append(opts, internalconfig.WithConfigFile(configPath))
	}

	loader, err := internalconfig.NewKoanfLoader(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create config loader")
	}

	return loader, nil
}

// buildFlagsMap maps CLI flags onto dotted config keys.
func buildFlagsMap() map[string]any {
	flags := make(map[string]any)

	if fileNameFlag != "" {
		flags["editorconfig.file_name"] = fileNameFlag
	}

	if workersFlag > 0 {
		flags["workers"] = workersFlag
	}

	if debugMode || traceMode {
		flags["log.level"] = strings.ToLower(logger.LevelFromFlags(debugMode, traceMode).String())
	}

	return flags
}

// newLogger opens the configured log file, or the XDG state location.
func newLogger(cfg *config.Config) (*logger.SlogAdapter, error) {
	level, err := logger.ParseLevel(cfg.GetLog().GetLevel())
	if err != nil {
		level = logger.LevelError
	}

	path := xdg.LogFile()
	if file := cfg.GetLog().GetFile(); file != "" {
		path = xdg.ExpandPathSilent(file)
	}

	log, err := logger.NewFileLoggerAtLevel(path, level)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}

	return log, nil
}

// newTracker creates a session tracker from the editorconfig section. Trackers
// created with the same cache share compiled patterns.
func (e *environment) newTracker(cache *pathmatch.Cache) *session.Tracker {
	ec := e.cfg.GetEditorConfig()

	resolver := editorconfig.New(
		ec.IsEnabled(),
		editorconfig.WithFileName(ec.GetFileName()),
		editorconfig.WithLogger(e.log),
		editorconfig.WithPatternCache(cache),
	)

	return session.NewTracker(ec,
		session.WithResolver(resolver),
		session.WithLogger(e.log),
	)
}

// resolved holds the properties of one requested path.
type resolved struct {
	path  string
	abs   string
	props editorconfig.Properties
}

// resolveFiles resolves paths concurrently, building one chain per directory.
// Results keep the order of paths.
func resolveFiles(ctx context.Context, env *environment, paths []string) ([]resolved, error) {
	results := make([]resolved, len(paths))
	byDir := make(map[string][]int)

	var order []string

	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}

		results[i] = resolved{path: p, abs: abs}

		dir := filepath.Dir(abs)
		if _, seen := byDir[dir]; !seen {
			order = append(order, dir)
		}

		byDir[dir] = append(byDir[dir], i)
	}

	cache := pathmatch.NewCache()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(env.cfg.GetWorkers())

	for _, dir := range order {
		idxs := byDir[dir]

		g.Go(func() error {
			tracker := env.newTracker(cache)

			if _, err := tracker.Open(gctx, results[idxs[0]].abs); err != nil {
				return err
			}

			for _, i := range idxs {
				results[i].props = tracker.Properties(results[i].abs)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	env.log.Debug("resolved files", "files", len(paths), "dirs", len(order))

	return results, nil
}
