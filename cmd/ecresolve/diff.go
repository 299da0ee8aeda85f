package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	internalcolor "github.com/smykla-skalski/ecresolve/internal/color"
	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
)

const diffContextLines = 3

var diffCmd = &cobra.Command{
	Use:   "diff FILE_A FILE_B",
	Short: "Compare the effective properties of two files",
	Long: `Compare the effective properties of two files as a unified diff of their
key=value lines.

Exits with status 1 when the properties differ, like diff(1).

Examples:
  ecresolve diff src/main.go Makefile
  ecresolve diff a/x.c b/x.c`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	results, err := resolveFiles(cmd.Context(), env, args)
	if err != nil {
		return err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        propertyLines(results[0].props),
		B:        propertyLines(results[1].props),
		FromFile: results[0].path,
		ToFile:   results[1].path,
		Context:  diffContextLines,
	})
	if err != nil {
		return errors.Wrap(err, "failed to diff properties")
	}

	if diff == "" {
		return nil
	}

	writeDiff(cmd.OutOrStdout(), diff, env.theme)

	return exitCodeError{code: ExitCodeError}
}

func propertyLines(props editorconfig.Properties) []string {
	if len(props) == 0 {
		return nil
	}

	return difflib.SplitLines(strings.TrimSuffix(props.String(), "\n"))
}

func writeDiff(w io.Writer, diff string, theme internalcolor.Theme) {
	for line := range strings.Lines(diff) {
		line = strings.TrimSuffix(line, "\n")

		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			line = theme.CheckName.Render(line)
		case strings.HasPrefix(line, "@@"):
			line = theme.Header.Render(line)
		case strings.HasPrefix(line, "+"):
			line = theme.Pass.Render(line)
		case strings.HasPrefix(line, "-"):
			line = theme.Fail.Render(line)
		}

		fmt.Fprintln(w, line)
	}
}
