package editorconfig

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// IndentStyle is the value of indent_style.
type IndentStyle string

// Indent styles.
const (
	IndentStyleTab   IndentStyle = "tab"
	IndentStyleSpace IndentStyle = "space"
)

// EndOfLine is the value of end_of_line.
type EndOfLine string

// Line endings.
const (
	EndOfLineLF   EndOfLine = "lf"
	EndOfLineCR   EndOfLine = "cr"
	EndOfLineCRLF EndOfLine = "crlf"
)

var charsets = map[string]bool{
	"latin1":    true,
	"utf-8":     true,
	"utf-8-bom": true,
	"utf-16be":  true,
	"utf-16le":  true,
}

// Settings is the typed view of the well-known properties. Zero values and nil
// pointers mean the property was absent or invalid.
type Settings struct {
	IndentStyle            IndentStyle `json:"indent_style,omitempty"             toml:"indent_style,omitempty"             yaml:"indent_style,omitempty"`
	IndentSize             int         `json:"indent_size,omitempty"              toml:"indent_size,omitempty"              yaml:"indent_size,omitempty"`
	TabWidth               int         `json:"tab_width,omitempty"                toml:"tab_width,omitempty"                yaml:"tab_width,omitempty"`
	EndOfLine              EndOfLine   `json:"end_of_line,omitempty"              toml:"end_of_line,omitempty"              yaml:"end_of_line,omitempty"`
	Charset                string      `json:"charset,omitempty"                  toml:"charset,omitempty"                  yaml:"charset,omitempty"`
	TrimTrailingWhitespace *bool       `json:"trim_trailing_whitespace,omitempty" toml:"trim_trailing_whitespace,omitempty" yaml:"trim_trailing_whitespace,omitempty"`
	InsertFinalNewline     *bool       `json:"insert_final_newline,omitempty"     toml:"insert_final_newline,omitempty"     yaml:"insert_final_newline,omitempty"`

	// MaxLineLength is 0 when absent or "off".
	MaxLineLength int `json:"max_line_length,omitempty" toml:"max_line_length,omitempty" yaml:"max_line_length,omitempty"`
}

// UseTabs reports whether indentation uses tab characters.
func (s Settings) UseTabs() bool {
	return s.IndentStyle == IndentStyleTab
}

// ParseSettings translates resolved properties into Settings. Invalid values
// are skipped and reported together in the returned error; valid keys still
// apply. indent_size = tab without tab_width falls back to defaultTabWidth.
func ParseSettings(props Properties, defaultTabWidth int) (Settings, error) {
	var (
		s    Settings
		errs []error
	)

	if v, ok := props[keyIndentStyle]; ok {
		switch style := IndentStyle(v); style {
		case IndentStyleTab, IndentStyleSpace:
			s.IndentStyle = style
		default:
			errs = append(errs, invalidValue(keyIndentStyle, v))
		}
	}

	if v, ok := props[keyTabWidth]; ok {
		if n, ok := positiveInt(v); ok {
			s.TabWidth = n
		} else {
			errs = append(errs, invalidValue(keyTabWidth, v))
		}
	}

	if v, ok := props[keyIndentSize]; ok {
		switch n, valid := positiveInt(v); {
		case v == valueTab:
			s.IndentSize = s.TabWidth
			if s.IndentSize == 0 {
				s.IndentSize = defaultTabWidth
			}
		case valid:
			s.IndentSize = n
		default:
			errs = append(errs, invalidValue(keyIndentSize, v))
		}
	}

	if v, ok := props["end_of_line"]; ok {
		switch eol := EndOfLine(v); eol {
		case EndOfLineLF, EndOfLineCR, EndOfLineCRLF:
			s.EndOfLine = eol
		default:
			errs = append(errs, invalidValue("end_of_line", v))
		}
	}

	if v, ok := props["charset"]; ok {
		if charsets[v] {
			s.Charset = v
		} else {
			errs = append(errs, invalidValue("charset", v))
		}
	}

	if v, ok := props["trim_trailing_whitespace"]; ok {
		if b, ok := parseBool(v); ok {
			s.TrimTrailingWhitespace = &b
		} else {
			errs = append(errs, invalidValue("trim_trailing_whitespace", v))
		}
	}

	if v, ok := props["insert_final_newline"]; ok {
		if b, ok := parseBool(v); ok {
			s.InsertFinalNewline = &b
		} else {
			errs = append(errs, invalidValue("insert_final_newline", v))
		}
	}

	if v, ok := props["max_line_length"]; ok && v != "off" {
		if n, ok := positiveInt(v); ok {
			s.MaxLineLength = n
		} else {
			errs = append(errs, invalidValue("max_line_length", v))
		}
	}

	return s, errors.Join(errs...)
}

func positiveInt(v string) (int, bool) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}

func parseBool(v string) (bool, bool) {
	switch v {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
