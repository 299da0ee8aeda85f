package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/ecresolve/internal/session"
	"github.com/smykla-skalski/ecresolve/internal/watcher"
	"github.com/smykla-skalski/ecresolve/pkg/pathmatch"
)

// ErrWatchDisabled is returned when watch.enabled is false.
var ErrWatchDisabled = errors.New("watching is disabled in configuration")

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Print properties for a file and again whenever they may change",
	Long: `Print the effective properties of FILE, then watch every directory whose
configuration file can affect it. Creating, editing, removing or renaming one
of those files rebuilds the chain and prints the properties again.

Runs until interrupted.

Examples:
  ecresolve watch src/main.go`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", args[0])
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	if !env.cfg.GetWatch().IsEnabled() {
		return ErrWatchDisabled
	}

	ctx := cmd.Context()
	tracker := env.newTracker(pathmatch.NewCache())

	if _, err := tracker.Open(ctx, path); err != nil {
		return err
	}

	out := &lockedWriter{w: cmd.OutOrStdout()}
	printProperties(out, env, tracker, path)

	var w *watcher.Watcher

	w, err = watcher.New(
		func(changed string) {
			reload(ctx, out, env, tracker, w, path, changed)
		},
		watcher.WithLogger(env.log),
		watcher.WithDebounce(env.cfg.GetWatch().GetDebounce()),
		watcher.WithFileName(env.cfg.GetEditorConfig().GetFileName()),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.WatchChain(filepath.Dir(path), tracker.Chain()); err != nil {
		return err
	}

	env.log.Info("watching", "path", path, "dirs", w.Watched())

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "watch failed")
	}

	return nil
}

// reload rebuilds the chain after a change and follows a moved root.
func reload(
	ctx context.Context,
	out io.Writer,
	env *environment,
	tracker *session.Tracker,
	w *watcher.Watcher,
	path, changed string,
) {
	tracker.Invalidate()

	if _, err := tracker.Open(ctx, path); err != nil {
		env.log.Error("failed to rebuild chain", "path", path, "error", err)

		return
	}

	if err := w.WatchChain(filepath.Dir(path), tracker.Chain()); err != nil {
		env.log.Error("failed to update watched directories", "error", err)
	}

	fmt.Fprintf(out, "\n%s %s\n",
		env.theme.Muted.Render(tracker.BuiltAt().Format(time.TimeOnly)),
		env.theme.Muted.Render("changed: "+changed),
	)
	printProperties(out, env, tracker, path)
}

func printProperties(out io.Writer, env *environment, tracker *session.Tracker, path string) {
	props := tracker.Properties(path)

	for _, key := range props.Keys() {
		fmt.Fprintln(out, env.theme.Property(key, props[key]))
	}
}

// lockedWriter serializes writes from the watcher callback.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Write(p)
}
