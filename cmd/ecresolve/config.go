package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	internalconfig "github.com/smykla-skalski/ecresolve/internal/config"
	"github.com/smykla-skalski/ecresolve/internal/schema"
)

const schemaFileMode = 0o644

var (
	globalFlag bool
	forceFlag  bool

	schemaOutput  string
	schemaCompact bool

	showFormat string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ecresolve configuration",
	Long: `Manage the ecresolve configuration.

Configuration is merged from, lowest precedence first: built-in defaults,
the global file ($XDG_CONFIG_HOME/ecresolve/config.toml), the project file
(.ecresolve.toml or --config), ECRESOLVE_* environment variables and flags.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	Long: `Write a configuration file holding the default values.

By default, creates .ecresolve.toml in the working directory.
Use --global or -g to create the global configuration file instead.
Use --force to overwrite an existing configuration file.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON Schema for configuration",
	Long: `Generate a JSON Schema (Draft 2020-12) for the ecresolve configuration format.

Examples:
  ecresolve config schema                                # Print to stdout
  ecresolve config schema --output config.v1.schema.json # Write to file
  ecresolve config schema --compact                      # Compact output`,
	Args: cobra.NoArgs,
	RunE: runConfigSchema,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after merging every source.

Examples:
  ecresolve config show             # TOML
  ecresolve config show -o json     # JSON
  ECRESOLVE_WORKERS=8 ecresolve config show`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configSchemaCmd, configShowCmd)

	configInitCmd.Flags().BoolVarP(
		&globalFlag,
		"global",
		"g",
		false,
		"Initialize global configuration",
	)
	configInitCmd.Flags().BoolVar(
		&forceFlag,
		"force",
		false,
		"Overwrite existing configuration file",
	)

	configSchemaCmd.Flags().StringVarP(
		&schemaOutput,
		"output", "o",
		"",
		"Write schema to file instead of stdout",
	)
	configSchemaCmd.Flags().BoolVar(
		&schemaCompact,
		"compact",
		false,
		"Output compact JSON without indentation",
	)

	configShowCmd.Flags().StringVarP(
		&showFormat,
		"output", "o",
		"toml",
		"Output format (toml, json)",
	)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	writer := internalconfig.NewWriter()
	cfg := internalconfig.DefaultConfig()

	path := writer.ProjectConfigPath()
	write := writer.WriteProject

	if globalFlag {
		path = writer.GlobalConfigPath()
		write = writer.WriteGlobal
	}

	if err := write(cfg, forceFlag); err != nil {
		if errors.Is(err, internalconfig.ErrConfigExists) {
			return errors.Wrap(err, "use --force to overwrite")
		}

		return errors.Wrap(err, "failed to write configuration")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)

	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	data, err := schema.GenerateJSON(!schemaCompact)
	if err != nil {
		return errors.Wrap(err, "generating schema")
	}

	out := cmd.OutOrStdout()

	if schemaOutput != "" {
		if writeErr := os.WriteFile(schemaOutput, data, schemaFileMode); writeErr != nil {
			return errors.Wrap(writeErr, "writing schema file")
		}

		fmt.Fprintf(out, "Schema written to %s\n", schemaOutput)

		return nil
	}

	_, err = out.Write(data)

	return err
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	cfg, err := loader.Load(buildFlagsMap())
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	var data []byte

	switch showFormat {
	case "toml":
		data, err = internalconfig.Marshal(cfg)
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q, must be toml or json", showFormat)
	}

	if err != nil {
		return errors.Wrap(err, "failed to encode configuration")
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
