package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	internalcolor "github.com/smykla-skalski/ecresolve/internal/color"
	"github.com/smykla-skalski/ecresolve/pkg/pathmatch"
)

var matchCmd = &cobra.Command{
	Use:   "match PATTERN PATH",
	Short: "Test a section pattern against a path",
	Long: `Test whether a section pattern matches PATH, using the same rules as
section headers. PATH is relative to the directory of the configuration file.
A pattern without '/' matches in any subdirectory.

Exits with status 1 when the pattern does not match. Malformed patterns are
reported as warnings and matched literally where they are malformed.

Examples:
  ecresolve match '*.{c,h}' src/main.c
  ecresolve match 'lib/**.js' lib/vendor/x.js
  ecresolve match 'file{1..3}.txt' file2.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	pattern := pathmatch.Compile(args[0])
	path := filepath.ToSlash(args[1])
	theme := internalcolor.NewTheme(internalcolor.Enabled(noColorFlag, os.Stdout))

	for _, warning := range pattern.Warnings() {
		fmt.Fprintln(cmd.ErrOrStderr(), theme.Warning.Render("Warning: "+warning))
	}

	out := cmd.OutOrStdout()

	if pattern.Match(path) {
		fmt.Fprintf(out, "%s %s matches %s\n", theme.Pass.Render("✓"), path, pattern.String())

		return nil
	}

	fmt.Fprintf(out, "%s %s does not match %s\n", theme.Fail.Render("✗"), path, pattern.String())

	return exitCodeError{code: ExitCodeError}
}
