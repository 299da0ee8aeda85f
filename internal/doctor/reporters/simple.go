// Package reporters provides output formatting for doctor check results
package reporters

import (
	"fmt"
	"io"
	"strings"

	"github.com/smykla-skalski/ecresolve/internal/doctor"
)

// categoryOrder defines the display order for categories
var categoryOrder = []doctor.Category{
	doctor.CategoryEditorConfig,
	doctor.CategoryConfig,
}

// categoryNames maps categories to display names
var categoryNames = map[doctor.Category]string{
	doctor.CategoryEditorConfig: "EditorConfig",
	doctor.CategoryConfig:       "Configuration",
}

// SimpleReporter provides checklist-style output without colors or tables
type SimpleReporter struct {
	out io.Writer
}

// NewSimpleReporter creates a new SimpleReporter writing to out
func NewSimpleReporter(out io.Writer) *SimpleReporter {
	return &SimpleReporter{out: out}
}

// Report outputs the results in a simple checklist format
func (r *SimpleReporter) Report(results []doctor.CheckResult, verbose bool) {
	r.printf("Checking configuration health...\n\n")

	for _, g := range GroupResultsByCategory(results) {
		r.printf("%s:\n", getCategoryName(g.Category))

		for _, result := range g.Results {
			r.printResult(result, verbose)
		}

		r.printf("\n")
	}

	errs, warnings, passed := countResults(results)

	r.printf("Summary: %d error(s), %d warning(s), %d passed\n", errs, warnings, passed)
}

func (r *SimpleReporter) printResult(result doctor.CheckResult, verbose bool) {
	r.printf("  %s %s", StatusIcon(result), result.Name)

	if result.Message != "" {
		r.printf(" - %s", result.Message)
	}

	r.printf("\n")

	if verbose {
		for _, detail := range result.Details {
			r.printf("     %s\n", detail)
		}
	}

	if result.HasFix() && result.Status == doctor.StatusFail {
		r.printf("     → Run: ecresolve doctor --fix\n")
	}
}

func (r *SimpleReporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// getCategoryName returns the display name for a category
func getCategoryName(category doctor.Category) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}

	s := string(category)
	if s == "" {
		return "Other"
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// countResults counts errors, warnings, and passed checks
func countResults(results []doctor.CheckResult) (errors, warnings, passed int) {
	for _, result := range results {
		switch {
		case result.IsPassed():
			passed++
		case result.IsError():
			errors++
		case result.IsWarning():
			warnings++
		}
	}

	return errors, warnings, passed
}
