// Package editorconfigchecker provides health checkers for the configuration
// files of a lookup chain.
package editorconfigchecker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
)

// Target names the directory whose lookup chain is checked.
type Target struct {
	// Dir is the absolute directory the chain is built from.
	Dir string

	// FileName is the configuration file name, defaulting to .editorconfig.
	FileName string

	// Source reads the configuration files.
	Source editorconfig.Source
}

// Chain builds the lookup chain for the target.
func (t Target) Chain() editorconfig.Chain {
	return editorconfig.BuildChain(t.Source, t.Dir, t.fileName())
}

// FilePath returns the configuration file of a level.
func (t Target) FilePath(level editorconfig.Level) string {
	return filepath.Join(filepath.FromSlash(level.Dir), t.fileName())
}

func (t Target) fileName() string {
	if t.FileName == "" {
		return editorconfig.DefaultFileName
	}

	return t.FileName
}

// rawLine is a trimmed, non-blank, non-comment line with its 1-based number.
type rawLine struct {
	num  int
	text string
}

// rawLines splits a configuration file the way ParseLevel reads it, keeping
// line numbers.
func rawLines(text string) []rawLine {
	text = strings.TrimPrefix(text, "\xEF\xBB\xBF")
	text = strings.ReplaceAll(text, "\r", "")

	var lines []rawLine

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		lines = append(lines, rawLine{num: i + 1, text: line})
	}

	return lines
}

// sectionAssignments walks the assignments inside closed sections of text.
func sectionAssignments(text string, fn func(num int, section string, line editorconfig.Line)) {
	section := ""
	active := false

	for _, raw := range rawLines(text) {
		parsed := editorconfig.ParseLine(raw.text)

		switch parsed.Kind {
		case editorconfig.LineSection:
			section = parsed.Pattern
			active = parsed.Closed
		case editorconfig.LineAssignment:
			if active {
				parsed.Key = strings.ToLower(parsed.Key)
				parsed.Value = strings.ToLower(parsed.Value)
				fn(raw.num, section, parsed)
			}
		case editorconfig.LineOther:
		}
	}
}

func location(path string, num int) string {
	return fmt.Sprintf("%s:%d", path, num)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}

	return fmt.Sprintf("%d %ss", n, word)
}
