package reporters

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smykla-skalski/ecresolve/internal/color"
	"github.com/smykla-skalski/ecresolve/internal/doctor"
	"github.com/smykla-skalski/ecresolve/internal/render"
)

// TableReporter renders results as a themed table.
type TableReporter struct {
	out   io.Writer
	theme color.Theme
}

// NewTableReporter creates a TableReporter writing to out.
func NewTableReporter(out io.Writer, theme color.Theme) *TableReporter {
	return &TableReporter{out: out, theme: theme}
}

// Report renders results as a table followed by a summary line.
func (r *TableReporter) Report(results []doctor.CheckResult, verbose bool) {
	_, _ = fmt.Fprintln(r.out, "Checking configuration health...")
	_, _ = fmt.Fprintln(r.out)

	if tbl := RenderTable(results, verbose, r.theme, render.TermWidth(r.out)); tbl != "" {
		_, _ = fmt.Fprintln(r.out, tbl)
		_, _ = fmt.Fprintln(r.out)
	}

	_, _ = fmt.Fprintln(r.out, RenderSummary(results, r.theme))
}

// StatusIcon returns a single-width character icon for a check result.
func StatusIcon(result doctor.CheckResult) string {
	switch result.Status {
	case doctor.StatusPass:
		return "✓"
	case doctor.StatusFail:
		switch result.Severity {
		case doctor.SeverityError:
			return "✗"
		case doctor.SeverityWarning:
			return "!"
		default:
			return "i"
		}
	case doctor.StatusSkipped:
		return "-"
	default:
		return "?"
	}
}

// StyledIcon returns a StatusIcon colored by the theme.
func StyledIcon(result doctor.CheckResult, theme color.Theme) string {
	icon := StatusIcon(result)

	switch result.Status {
	case doctor.StatusPass:
		return theme.Pass.Render(icon)
	case doctor.StatusFail:
		if result.Severity == doctor.SeverityError {
			return theme.Fail.Render(icon)
		}

		return theme.Warning.Render(icon)
	case doctor.StatusSkipped:
		return theme.Skip.Render(icon)
	default:
		return icon
	}
}

// RenderTable builds the results table for a terminal of the given width.
// A width of 0 lets columns size to their content. Category rows span all
// text columns.
func RenderTable(
	results []doctor.CheckResult,
	verbose bool,
	theme color.Theme,
	width int,
) string {
	grouped := GroupResultsByCategory(results)
	if len(grouped) == 0 {
		return ""
	}

	headers := []string{"", "Check", "Message"}
	if verbose {
		headers = append(headers, "Details")
	}

	var rows [][]string

	groupRows := make(map[int]bool, len(grouped))

	for _, g := range grouped {
		catName := theme.Header.Render(getCategoryName(g.Category))

		catRow := []string{""}
		for i := 1; i < len(headers); i++ {
			catRow = append(catRow, catName)
		}

		groupRows[len(rows)] = true
		rows = append(rows, catRow)

		sorted := slices.Clone(g.Results)
		slices.SortStableFunc(sorted, func(a, b doctor.CheckResult) int {
			return severityRank(a) - severityRank(b)
		})

		for _, res := range sorted {
			rows = append(rows, buildResultRow(res, verbose, theme))
		}
	}

	return render.Table(headers, rows, render.TableOptions{
		Theme:         theme,
		ColumnWidths:  calcColumnWidthsFor(width, results, verbose),
		MergeRows:     true,
		GroupRows:     groupRows,
		RowSeparators: true,
	})
}

// buildResultRow creates a table row for a single check result.
func buildResultRow(r doctor.CheckResult, verbose bool, theme color.Theme) []string {
	row := []string{
		StyledIcon(r, theme),
		theme.CheckName.Render(r.Name),
		render.ShortenPath(r.Message),
	}

	if verbose {
		row = append(row, render.ShortenPath(strings.Join(r.Details, "; ")))
	}

	return row
}

// RenderSummary returns a colored summary line.
func RenderSummary(results []doctor.CheckResult, theme color.Theme) string {
	errors, warnings, passed := countResults(results)
	skipped := 0

	for _, r := range results {
		if r.IsSkipped() {
			skipped++
		}
	}

	parts := []string{
		styleSummaryPart(fmt.Sprintf("%d error(s)", errors), errors > 0, theme.Fail),
		styleSummaryPart(fmt.Sprintf("%d warning(s)", warnings), warnings > 0, theme.Warning),
		theme.Pass.Render(fmt.Sprintf("%d passed", passed)),
	}

	if skipped > 0 {
		parts = append(parts, theme.Skip.Render(fmt.Sprintf("%d skipped", skipped)))
	}

	return "Summary: " + strings.Join(parts, ", ")
}

func styleSummaryPart(text string, active bool, style lipgloss.Style) string {
	if active {
		return style.Render(text)
	}

	return text
}

// GroupResultsByCategory groups results by category, known categories first.
func GroupResultsByCategory(results []doctor.CheckResult) []CategoryGroup {
	catMap := make(map[doctor.Category][]doctor.CheckResult)

	var extra []doctor.Category

	for _, r := range results {
		if _, seen := catMap[r.Category]; !seen && !slices.Contains(categoryOrder, r.Category) {
			extra = append(extra, r.Category)
		}

		catMap[r.Category] = append(catMap[r.Category], r)
	}

	var groups []CategoryGroup

	for _, cat := range append(slices.Clone(categoryOrder), extra...) {
		if rs, ok := catMap[cat]; ok {
			groups = append(groups, CategoryGroup{Category: cat, Results: rs})
		}
	}

	return groups
}

// CategoryGroup holds the results of one category.
type CategoryGroup struct {
	Category doctor.Category
	Results  []doctor.CheckResult
}

// calcColumnWidthsFor computes per-column content widths that fill a
// terminal of width w. Returns nil when w is too narrow for a table.
func calcColumnWidthsFor(w int, results []doctor.CheckResult, verbose bool) map[int]int {
	const (
		minTableW = 40
		minMsgW   = 20
		minCheckW = 5
		iconW     = 1

		// border char plus left and right padding
		colOverhead = 3
	)

	if w < minTableW {
		return nil
	}

	checkW := len("Check")

	for _, r := range results {
		if n := render.DisplayWidth(r.Name); n > checkW {
			checkW = n
		}
	}

	numCols := 3
	if verbose {
		numCols = 4
	}

	available := w - (numCols*colOverhead + 1) - iconW
	if available < minMsgW+minCheckW {
		return nil
	}

	checkW = min(checkW, available-minMsgW)
	remaining := available - checkW

	widths := map[int]int{0: iconW, 1: checkW, 2: remaining}

	if verbose {
		msgW := remaining * 60 / 100 //nolint:mnd // layout ratio
		widths[2] = msgW
		widths[3] = remaining - msgW
	}

	return widths
}

// Severity rank constants for sorting results within a category.
const (
	rankError   = 0
	rankWarning = 1
	rankPass    = 2
	rankSkipped = 3
)

func severityRank(r doctor.CheckResult) int {
	switch {
	case r.IsError():
		return rankError
	case r.IsWarning():
		return rankWarning
	case r.IsSkipped():
		return rankSkipped
	default:
		return rankPass
	}
}
