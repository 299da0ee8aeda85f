// Package render draws the tables printed by the command line tools.
package render

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"

	"github.com/smykla-skalski/ecresolve/internal/color"
)

// cellPadding is the left plus right padding tablewriter adds to each cell.
const cellPadding = 2

// TableOptions configures Table.
type TableOptions struct {
	// Theme styles the borders. The zero Theme renders plain text.
	Theme color.Theme

	// ColumnWidths maps column index to content width. Cells are padded to
	// these widths and wrapped when longer. Nil lets tablewriter size columns.
	ColumnWidths map[int]int

	// MergeRows merges equal adjacent cells horizontally, used for group
	// header rows spanning several columns.
	MergeRows bool

	// GroupRows holds the indices of rows that are appended without padding
	// so their cells stay equal and merge.
	GroupRows map[int]bool

	// RowSeparators draws a line between every row.
	RowSeparators bool
}

// Table renders rows under headers with rounded borders.
func Table(headers []string, rows [][]string, opts TableOptions) string {
	if len(rows) == 0 {
		return ""
	}

	var buf bytes.Buffer

	settings := tw.Settings{}
	if opts.RowSeparators {
		settings.Separators = tw.Separators{BetweenRows: tw.On}
	}

	cfg := tablewriter.NewConfigBuilder().WithTrimSpace(tw.Off)
	if opts.MergeRows {
		cfg = cfg.Row().Merging().WithMode(tw.MergeHorizontal).Build().Build()
	}

	cfg = cfg.Row().Formatting().WithAutoWrap(tw.WrapNormal).Build().Build()

	tableOpts := []tablewriter.Option{
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols:  tw.NewSymbols(tw.StyleRounded),
			Settings: settings,
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
		tablewriter.WithConfig(cfg.Build()),
	}

	if opts.ColumnWidths != nil {
		tableOpts = append(tableOpts, tablewriter.WithColumnWidths(toCellWidths(opts.ColumnWidths)))
	}

	t := tablewriter.NewTable(&buf, tableOpts...)
	t.Header(headers)

	for i, row := range rows {
		if opts.ColumnWidths != nil && !opts.GroupRows[i] {
			row = padRow(row, opts.ColumnWidths)
		}

		_ = t.Append(row)
	}

	_ = t.Render()

	return DimBorders(strings.TrimRight(buf.String(), "\n"), opts.Theme)
}

func padRow(row []string, widths map[int]int) []string {
	padded := make([]string, len(row))

	for i, cell := range row {
		if w, ok := widths[i]; ok {
			cell = PadToWidth(cell, w)
		}

		padded[i] = cell
	}

	return padded
}

// toCellWidths converts content widths to the cell widths tablewriter
// expects, which include padding.
func toCellWidths(contentWidths map[int]int) tw.Mapper[int, int] {
	m := make(tw.Mapper[int, int], len(contentWidths))
	for col, w := range contentWidths {
		m[col] = w + cellPadding
	}

	return m
}

// PadToWidth right-pads s with spaces so its display width reaches w.
// ANSI escape codes are excluded from width calculation.
func PadToWidth(s string, w int) string {
	visible := DisplayWidth(s)
	if visible >= w {
		return s
	}

	return s + strings.Repeat(" ", w-visible)
}

// DisplayWidth returns the terminal column width of s without escape codes.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

var borderChars = []string{
	"╭", "╮", "╰", "╯", "│", "─", "┬", "┴", "├", "┤", "┼",
}

// DimBorders applies the muted theme style to box-drawing characters.
func DimBorders(s string, theme color.Theme) string {
	for _, ch := range borderChars {
		s = strings.ReplaceAll(s, ch, theme.Muted.Render(ch))
	}

	return s
}

// TermWidth returns the width of the terminal behind w, falling back to
// stdout and stderr. Returns 0 when none is a terminal.
func TermWidth(w io.Writer) int {
	candidates := []*os.File{os.Stdout, os.Stderr}
	if f, ok := w.(*os.File); ok {
		candidates = append([]*os.File{f}, candidates...)
	}

	for _, f := range candidates {
		if width, _, err := term.GetSize(
			int(f.Fd()), //nolint:gosec // fd fits int
		); err == nil && width > 0 {
			return width
		}
	}

	return 0
}

// homeDir caches the user's home directory for path shortening.
var homeDir string

func init() {
	homeDir, _ = os.UserHomeDir()
}

// ShortenPath replaces the user's home directory with ~.
func ShortenPath(s string) string {
	if homeDir == "" {
		return s
	}

	return strings.ReplaceAll(s, homeDir, "~")
}
