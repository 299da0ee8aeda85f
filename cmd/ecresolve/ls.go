package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/ecresolve/internal/render"
)

var (
	lsDirFlag    string
	lsHiddenFlag bool
)

var lsCmd = &cobra.Command{
	Use:   "ls PATTERN",
	Short: "Resolve properties for every file matching a glob",
	Long: `List the files under a directory that match PATTERN, together with their
effective properties. PATTERN uses doublestar syntax, so "**" crosses
directories.

Examples:
  ecresolve ls '**/*.go'              # Every Go file below the working directory
  ecresolve ls '*.md' --dir docs      # Markdown files directly in docs
  ecresolve ls '**/*' --hidden        # Include dot files and dot directories`,
	Args: cobra.ExactArgs(1),
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)

	lsCmd.Flags().StringVarP(&lsDirFlag, "dir", "d", ".", "Directory to search")
	lsCmd.Flags().BoolVar(&lsHiddenFlag, "hidden", false, "Include hidden files and directories")
}

func runLs(cmd *cobra.Command, args []string) error {
	pattern := args[0]

	if !doublestar.ValidatePattern(pattern) {
		return errors.Newf("invalid glob pattern %q", pattern)
	}

	opts := []doublestar.GlobOption{doublestar.WithFilesOnly()}
	if !lsHiddenFlag {
		opts = append(opts, doublestar.WithNoHidden())
	}

	matches, err := doublestar.Glob(os.DirFS(lsDirFlag), pattern, opts...)
	if err != nil {
		return errors.Wrapf(err, "failed to glob %s", pattern)
	}

	out := cmd.OutOrStdout()

	if len(matches) == 0 {
		fmt.Fprintf(out, "No files match %s\n", pattern)

		return nil
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(lsDirFlag, filepath.FromSlash(m))
	}

	results, err := resolveFiles(cmd.Context(), env, paths)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		props := make([]string, 0, len(r.props))
		for _, key := range r.props.Keys() {
			props = append(props, env.theme.Property(key, r.props[key]))
		}

		rows = append(rows, []string{r.path, strings.Join(props, "\n")})
	}

	fmt.Fprintln(out, render.Table(
		[]string{"File", "Properties"},
		rows,
		render.TableOptions{Theme: env.theme, RowSeparators: true},
	))

	env.log.Info("listed files", "pattern", pattern, "files", len(results))

	return nil
}
