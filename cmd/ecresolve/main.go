// Package main provides the CLI entry point for ecresolve.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/ecresolve/internal/doctor"
)

const (
	// ExitCodeOK indicates success.
	ExitCodeOK = 0

	// ExitCodeError indicates a failed command.
	ExitCodeError = 1
)

var (
	debugMode    bool
	traceMode    bool
	configPath   string
	noColorFlag  bool
	fileNameFlag string
	workersFlag  int
)

// exitCodeError ends the process with code without printing anything.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitCodeOK
	}

	var exitErr exitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	// The reporter has already printed the summary.
	if errors.Is(err, doctor.ErrChecksFailed) {
		return ExitCodeError
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	return ExitCodeError
}

var rootCmd = &cobra.Command{
	Use:   "ecresolve [FILE...]",
	Short: "Resolve EditorConfig properties for files",
	Long: `Resolve EditorConfig properties for files.

For every FILE, the .editorconfig files of its directory and each ancestor are
read until one declares root = true. Matching sections are applied outermost
first and the effective properties are printed as sorted key=value lines.

Examples:
  ecresolve main.go                   # Properties of one file
  ecresolve src/a.c src/b.py          # Several files, each under a [path] header
  ecresolve -f .myconfig main.go      # Look up a different file name
  ecresolve chain .                   # Show the lookup chain for a directory`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		checkVersionFlag()
	},
	RunE:              runResolve,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&traceMode, "trace", false, "Enable trace logging")
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"Path to configuration file (default: .ecresolve.toml in the working directory)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&noColorFlag,
		"no-color",
		false,
		"Disable colored output",
	)
	rootCmd.PersistentFlags().StringVarP(
		&fileNameFlag,
		"file-name",
		"f",
		"",
		"Configuration file name looked up in each directory (default: .editorconfig)",
	)
	rootCmd.PersistentFlags().IntVarP(
		&workersFlag,
		"workers",
		"j",
		0,
		"Number of files resolved concurrently (default: from config)",
	)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	results, err := resolveFiles(cmd.Context(), env, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	for _, r := range results {
		if len(results) > 1 {
			fmt.Fprintln(out, env.theme.Path.Render("["+r.path+"]"))
		}

		for _, key := range r.props.Keys() {
			fmt.Fprintln(out, env.theme.Property(key, r.props[key]))
		}
	}

	return nil
}
