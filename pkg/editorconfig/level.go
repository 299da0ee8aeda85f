package editorconfig

import (
	"path/filepath"
	"strings"
)

const utf8BOM = "\xEF\xBB\xBF"

// LineKind classifies a stored configuration line.
type LineKind int

const (
	// LineOther is neither a section header nor an assignment.
	LineOther LineKind = iota

	// LineSection is a "[pattern]" header.
	LineSection

	// LineAssignment is a "key = value" line.
	LineAssignment
)

// Line is the parsed form of a single configuration line.
type Line struct {
	Kind LineKind

	// Pattern is the glob between the brackets of a section header.
	Pattern string

	// Closed reports whether a section header ends with ']'. Unclosed
	// headers never activate their section.
	Closed bool

	Key   string
	Value string
}

// ParseLine classifies a trimmed configuration line. Assignments are split on
// the first '=' and both sides are trimmed, so values may contain '='.
func ParseLine(line string) Line {
	switch {
	case strings.HasPrefix(line, "["):
		if len(line) >= 2 && strings.HasSuffix(line, "]") {
			return Line{Kind: LineSection, Pattern: line[1 : len(line)-1], Closed: true}
		}

		return Line{Kind: LineSection, Pattern: line[1:]}

	case strings.Contains(line, "="):
		key, value, _ := strings.Cut(line, "=")

		return Line{
			Kind:  LineAssignment,
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		}

	default:
		return Line{Kind: LineOther}
	}
}

// Level is one directory's parsed configuration file.
type Level struct {
	// Root is set when any line declares root = true.
	Root bool

	// Dir is the forward-slash directory path with a trailing '/'.
	Dir string

	// Lines holds section headers verbatim and lower-cased assignments in
	// file order. Comments and blank lines are dropped.
	Lines []string
}

// ParseLevel parses the text of a configuration file found in dir.
func ParseLevel(dir, text string) Level {
	level := Level{Dir: normalizeDir(dir)}

	text = strings.TrimPrefix(text, utf8BOM)
	text = strings.ReplaceAll(text, "\r", "")

	for raw := range strings.SplitSeq(text, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case line == "", line[0] == '#', line[0] == ';':
			continue

		case line[0] == '[':
			level.Lines = append(level.Lines, line)

		case strings.Contains(line, "="):
			line = lowerASCII(line)
			level.Lines = append(level.Lines, line)

			if parsed := ParseLine(line); parsed.Key == "root" && parsed.Value == "true" {
				level.Root = true
			}
		}
	}

	return level
}

// normalizeDir converts dir to forward slashes and appends a single '/'.
func normalizeDir(dir string) string {
	dir = filepath.ToSlash(dir)
	if strings.HasSuffix(dir, "/") {
		return dir
	}

	return dir + "/"
}

// lowerASCII folds A-Z only, leaving other bytes untouched.
func lowerASCII(s string) string {
	for i := range len(s) {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}

			return string(b)
		}
	}

	return s
}
