package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	internalcolor "github.com/smykla-skalski/ecresolve/internal/color"
	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
	"github.com/smykla-skalski/ecresolve/pkg/pathmatch"
)

// ErrUnknownFormat is returned for an unsupported --output value.
var ErrUnknownFormat = errors.New("unknown output format")

var settingsOutputFlag string

var settingsCmd = &cobra.Command{
	Use:   "settings FILE",
	Short: "Show the typed editor settings for a file",
	Long: `Show the editor settings derived from the properties of FILE.

Well-known properties are translated into typed values. Invalid values are
reported as warnings and left out; the remaining settings still apply.

Examples:
  ecresolve settings main.go            # key=value lines
  ecresolve settings main.go -o json    # JSON object
  ecresolve settings main.go -o toml    # TOML document
  ecresolve settings main.go -o yaml    # YAML document`,
	Args: cobra.ExactArgs(1),
	RunE: runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)

	settingsCmd.Flags().StringVarP(
		&settingsOutputFlag,
		"output",
		"o",
		"text",
		"Output format (text, json, toml, yaml)",
	)
}

func runSettings(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", args[0])
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.Close()

	tracker := env.newTracker(pathmatch.NewCache())

	if _, err := tracker.Open(cmd.Context(), path); err != nil {
		return err
	}

	settings, parseErr := tracker.Settings(path)
	if parseErr != nil {
		env.log.Info("invalid settings", "path", path, "error", parseErr)

		for _, msg := range splitErrors(parseErr) {
			fmt.Fprintln(cmd.ErrOrStderr(), env.theme.Warning.Render("Warning: "+msg))
		}
	}

	return writeSettings(cmd.OutOrStdout(), settings, settingsOutputFlag, env.theme)
}

func writeSettings(w io.Writer, s editorconfig.Settings, format string, theme internalcolor.Theme) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "text":
		for _, kv := range settingsPairs(s) {
			fmt.Fprintln(w, theme.Property(kv[0], kv[1]))
		}

		return nil
	case "json":
		data, err = json.MarshalIndent(s, "", "  ")
		data = append(data, '\n')
	case "toml":
		data, err = toml.Marshal(s)
	case "yaml":
		data, err = yaml.Marshal(s)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q, must be text, json, toml or yaml", format)
	}

	if err != nil {
		return errors.Wrapf(err, "failed to encode settings as %s", format)
	}

	_, err = w.Write(data)

	return err
}

// settingsPairs lists the set fields of s in declaration order.
func settingsPairs(s editorconfig.Settings) [][2]string {
	var pairs [][2]string

	add := func(key, value string) {
		pairs = append(pairs, [2]string{key, value})
	}

	if s.IndentStyle != "" {
		add("indent_style", string(s.IndentStyle))
	}

	if s.IndentSize > 0 {
		add("indent_size", strconv.Itoa(s.IndentSize))
	}

	if s.TabWidth > 0 {
		add("tab_width", strconv.Itoa(s.TabWidth))
	}

	if s.EndOfLine != "" {
		add("end_of_line", string(s.EndOfLine))
	}

	if s.Charset != "" {
		add("charset", s.Charset)
	}

	if s.TrimTrailingWhitespace != nil {
		add("trim_trailing_whitespace", strconv.FormatBool(*s.TrimTrailingWhitespace))
	}

	if s.InsertFinalNewline != nil {
		add("insert_final_newline", strconv.FormatBool(*s.InsertFinalNewline))
	}

	if s.MaxLineLength > 0 {
		add("max_line_length", strconv.Itoa(s.MaxLineLength))
	}

	return pairs
}

// splitErrors flattens a joined error into its messages.
func splitErrors(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var msgs []string
		for _, e := range joined.Unwrap() {
			msgs = append(msgs, e.Error())
		}

		return msgs
	}

	return []string{err.Error()}
}
