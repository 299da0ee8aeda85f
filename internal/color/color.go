// Package color provides color detection and theming for CLI output.
package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Profile reports whether the environment and flags allow colored output.
//
// Color is disabled when any of:
//   - NO_COLOR env is set (any value, per https://no-color.org)
//   - CLICOLOR=0
//   - TERM=dumb
//   - noColorFlag is true (--no-color CLI flag)
func Profile(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	if os.Getenv("CLICOLOR") == "0" {
		return false
	}

	return os.Getenv("TERM") != "dumb"
}

// IsTerminal returns true if the given file is a character device.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

// Enabled combines Profile with a terminal check on out.
func Enabled(noColorFlag bool, out *os.File) bool {
	return Profile(noColorFlag) && IsTerminal(out)
}

// Theme holds lipgloss styles for command output.
type Theme struct {
	// Check result styles.
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Warning lipgloss.Style
	Skip    lipgloss.Style

	// Structural styles.
	Header    lipgloss.Style
	CheckName lipgloss.Style
	Muted     lipgloss.Style

	// Property listing styles.
	Key   lipgloss.Style
	Value lipgloss.Style
	Path  lipgloss.Style
}

// NewTheme creates a Theme. When color is false, all styles are empty (no ANSI codes).
func NewTheme(color bool) Theme {
	if !color {
		return Theme{}
	}

	return Theme{
		Pass:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // bright green
		Fail:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // bright yellow
		Skip:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // gray
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		CheckName: lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Key:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // bright blue
		Value:     lipgloss.NewStyle(),
		Path:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	}
}

// Property renders a key=value line.
func (t Theme) Property(key, value string) string {
	return t.Key.Render(key) + t.Muted.Render("=") + t.Value.Render(value)
}
