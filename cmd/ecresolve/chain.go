package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/ecresolve/internal/render"
	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
	"github.com/smykla-skalski/ecresolve/pkg/pathmatch"
)

var chainLinesFlag bool

var chainCmd = &cobra.Command{
	Use:   "chain [DIR]",
	Short: "Show the lookup chain for a directory",
	Long: `Show the configuration files that apply to files in DIR, outermost first.

Directories without a configuration file, or whose file holds no sections or
assignments, are not listed. The walk stops at the first file declaring
root = true.

Examples:
  ecresolve chain            # Chain for the working directory
  ecresolve chain src/pkg    # Chain for another directory
  ecresolve chain --lines    # Also print the stored lines of each level`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChain,
}

func init() {
	rootCmd.AddCommand(chainCmd)

	chainCmd.Flags().BoolVarP(
		&chainLinesFlag,
		"lines",
		"l",
		false,
		"Print the stored lines of each level",
	)
}

func runChain(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", dir)
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	fileName := env.cfg.GetEditorConfig().GetFileName()
	tracker := env.newTracker(pathmatch.NewCache())

	if _, err := tracker.Open(cmd.Context(), filepath.Join(absDir, fileName)); err != nil {
		return err
	}

	chain := tracker.Chain()
	out := cmd.OutOrStdout()

	if len(chain) == 0 {
		fmt.Fprintf(out, "No %s files apply to %s\n", fileName, render.ShortenPath(absDir))

		return nil
	}

	rows := make([][]string, 0, len(chain))
	for i, level := range chain {
		rows = append(rows, chainRow(i, level, fileName))
	}

	fmt.Fprintln(out, render.Table(
		[]string{"#", "Directory", "Root", "Lines", "Size"},
		rows,
		render.TableOptions{Theme: env.theme},
	))

	if chainLinesFlag {
		for _, level := range chain {
			fmt.Fprintln(out)
			fmt.Fprintln(out, env.theme.Path.Render(render.ShortenPath(level.Dir)))

			for _, line := range level.Lines {
				fmt.Fprintln(out, "  "+line)
			}
		}
	}

	if !chain.HasRoot() {
		fmt.Fprintln(out, env.theme.Warning.Render("No level declares root = true"))
	}

	return nil
}

func chainRow(i int, level editorconfig.Level, fileName string) []string {
	root := ""
	if level.Root {
		root = "yes"
	}

	size := "-"
	if info, err := os.Stat(filepath.Join(filepath.FromSlash(level.Dir), fileName)); err == nil {
		size = humanize.Bytes(uint64(info.Size())) //nolint:gosec // file sizes are never negative
	}

	return []string{
		strconv.Itoa(i + 1),
		render.ShortenPath(level.Dir),
		root,
		strconv.Itoa(len(level.Lines)),
		size,
	}
}
