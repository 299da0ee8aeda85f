package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	internalcolor "github.com/smykla-skalski/ecresolve/internal/color"
	internalconfig "github.com/smykla-skalski/ecresolve/internal/config"
	"github.com/smykla-skalski/ecresolve/internal/doctor"
	configchecker "github.com/smykla-skalski/ecresolve/internal/doctor/checkers/config"
	editorconfigchecker "github.com/smykla-skalski/ecresolve/internal/doctor/checkers/editorconfig"
	"github.com/smykla-skalski/ecresolve/internal/doctor/fixers"
	"github.com/smykla-skalski/ecresolve/internal/doctor/reporters"
	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
	"github.com/smykla-skalski/ecresolve/pkg/logger"
)

var (
	verboseFlag  bool
	fixFlag      bool
	categoryFlag []string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [DIR]",
	Short: "Diagnose configuration files affecting a directory",
	Long: `Diagnose the configuration files in the lookup chain of DIR and the
ecresolve configuration itself.

Checks:
- Syntax: preamble keys, unclosed section headers, unrecognized lines
- Patterns: section patterns that are matched literally because they are malformed
- Values: well-known properties with values editors cannot use
- Root: whether the chain ends in a root = true declaration
- Configuration: ecresolve config files load and validate

Examples:
  ecresolve doctor                          # Check the working directory
  ecresolve doctor src --verbose            # Detailed output for another directory
  ecresolve doctor --fix                    # Apply available fixes
  ecresolve doctor --category editorconfig  # Check specific categories`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVarP(
		&verboseFlag,
		"verbose",
		"v",
		false,
		"Enable verbose output with detailed context",
	)

	doctorCmd.Flags().BoolVar(
		&fixFlag,
		"fix",
		false,
		"Automatically fix issues",
	)

	doctorCmd.Flags().StringSliceVar(
		&categoryFlag,
		"category",
		[]string{},
		"Filter checks by category (editorconfig, config)",
	)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", dir)
	}

	loader, err := newLoader()
	if err != nil {
		return err
	}

	// A broken config is reported by the config checker, so fall back to
	// defaults here instead of failing.
	cfg, loadErr := loader.Load(buildFlagsMap())
	if loadErr != nil {
		cfg = internalconfig.DefaultConfig()
	}

	env, err := newEnvironment(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	if loadErr != nil {
		env.log.Error("using default configuration", "error", loadErr)
	}

	env.log.Info("starting doctor command",
		"dir", absDir,
		"verbose", verboseFlag,
		"fix", fixFlag,
		"categories", categoryFlag,
	)

	fs := afero.NewOsFs()
	target := editorconfigchecker.Target{
		Dir:      absDir,
		FileName: cfg.GetEditorConfig().GetFileName(),
		Source:   editorconfig.NewFSSource(fs, editorconfig.WithSourceLogger(env.log)),
	}

	registry := buildDoctorRegistry(target, loader)
	registerFixers(registry, fs, target, loader)

	out := cmd.OutOrStdout()
	runner := doctor.NewRunner(registry, selectReporter(out), out, env.log)

	return runner.Run(cmd.Context(), doctor.RunOptions{
		Verbose:    verboseFlag,
		AutoFix:    fixFlag,
		Categories: parseCategories(cmd.ErrOrStderr(), categoryFlag, env.log),
	})
}

// buildDoctorRegistry creates and populates the health check registry.
func buildDoctorRegistry(
	target editorconfigchecker.Target,
	loader *internalconfig.KoanfLoader,
) *doctor.Registry {
	registry := doctor.NewRegistry()

	registry.RegisterChecker(editorconfigchecker.NewSyntaxChecker(target))
	registry.RegisterChecker(editorconfigchecker.NewPatternsChecker(target))
	registry.RegisterChecker(editorconfigchecker.NewValuesChecker(target))
	registry.RegisterChecker(editorconfigchecker.NewRootChecker(target))

	registry.RegisterChecker(configchecker.NewChecker(loader))

	return registry
}

// registerFixers registers all available fixers.
func registerFixers(
	registry *doctor.Registry,
	fs afero.Fs,
	target editorconfigchecker.Target,
	loader *internalconfig.KoanfLoader,
) {
	registry.RegisterFixer(fixers.NewRootFixer(fs, target))
	registry.RegisterFixer(fixers.NewPermissionsFixer(fs,
		loader.GlobalConfigPath(),
		loader.ProjectConfigPath(),
	))
}

// parseCategories converts category names to Category values. Unknown names
// are reported and ignored.
func parseCategories(errOut io.Writer, names []string, log logger.Logger) []doctor.Category {
	if len(names) == 0 {
		return nil
	}

	categoryMap := map[string]doctor.Category{
		"editorconfig": doctor.CategoryEditorConfig,
		"config":       doctor.CategoryConfig,
	}

	var categories []doctor.Category

	for _, name := range names {
		if cat, ok := categoryMap[name]; ok {
			categories = append(categories, cat)

			continue
		}

		log.Info("unknown doctor category", "category", name)
		fmt.Fprintf(errOut, "Warning: unknown category %q, ignoring\n", name)
	}

	return categories
}

// selectReporter picks a reporter based on color support of stdout.
//
//	colors    -> TableReporter (styled table per category)
//	no colors -> SimpleReporter (plain checklist)
//
//nolint:ireturn // factory function selecting reporter implementation by environment
func selectReporter(out io.Writer) doctor.Reporter {
	if internalcolor.Enabled(noColorFlag, os.Stdout) {
		return reporters.NewTableReporter(out, internalcolor.NewTheme(true))
	}

	return reporters.NewSimpleReporter(out)
}
