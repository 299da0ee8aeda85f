package editorconfig

import (
	"path/filepath"
	"strings"

	"github.com/smykla-skalski/ecresolve/pkg/pathmatch"
)

const (
	keyIndentStyle = "indent_style"
	keyIndentSize  = "indent_size"
	keyTabWidth    = "tab_width"

	valueTab   = "tab"
	valueUnset = "unset"
)

// matchFunc reports whether pattern matches a path relative to a level.
type matchFunc func(pattern, rel string) bool

// Resolve computes the effective properties for an absolute file path.
// The chain is never modified.
func (c Chain) Resolve(absTarget string) Properties {
	return c.resolve(absTarget, pathmatch.Matches)
}

func (c Chain) resolve(absTarget string, match matchFunc) Properties {
	target := filepath.ToSlash(absTarget)
	props := Properties{}

	for _, level := range c {
		level.apply(props, relativeTo(target, level.Dir), match)
	}

	applyDefaults(props)

	return props
}

// apply replays the level's lines for rel. Assignments before the first
// section header never apply.
func (l Level) apply(props Properties, rel string, match matchFunc) {
	active := false

	for _, raw := range l.Lines {
		line := ParseLine(raw)

		switch line.Kind {
		case LineSection:
			active = line.Closed && match(line.Pattern, rel)

		case LineAssignment:
			if !active {
				continue
			}

			if line.Value == valueUnset {
				delete(props, line.Key)
			} else {
				props[line.Key] = line.Value
			}

		case LineOther:
		}
	}
}

// relativeTo strips dir from target, or returns "" when target is not inside dir.
func relativeTo(target, dir string) string {
	rel, ok := strings.CutPrefix(target, dir)
	if !ok {
		return ""
	}

	return rel
}

// applyDefaults fills indent_size and tab_width from each other. The order of
// the three steps matters.
func applyDefaults(props Properties) {
	if props[keyIndentStyle] == valueTab {
		if _, ok := props[keyIndentSize]; !ok {
			props[keyIndentSize] = valueTab
		}
	}

	if size, ok := props[keyIndentSize]; ok && size != valueTab {
		if _, ok := props[keyTabWidth]; !ok {
			props[keyTabWidth] = size
		}
	}

	if props[keyIndentSize] == valueTab {
		if width, ok := props[keyTabWidth]; ok {
			props[keyIndentSize] = width
		}
	}
}
