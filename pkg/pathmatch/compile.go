// Package pathmatch implements the glob dialect used in EditorConfig section
// headers.
//
// Supported syntax: literal characters, ?, *, **, [abc], [a-z], [!abc],
// {alt1,alt2}, {n..m} numeric ranges and backslash escapes. Patterns never
// fail to compile: syntax that cannot be parsed (an unclosed bracket, an
// unbalanced brace) is matched literally.
//
// Anchoring: a pattern without a slash matches the last path segment at any
// depth, as if it were written "**/pattern". A pattern containing a slash is
// anchored to the start of the relative path; one leading slash is ignored.
package pathmatch

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type nodeKind uint8

const (
	// nodeLiteral matches node.text exactly.
	nodeLiteral nodeKind = iota

	// nodeAnyChar matches one character other than '/'.
	nodeAnyChar

	// nodeStar matches any run of characters other than '/'.
	nodeStar

	// nodeGlobstar matches any run of characters, '/' included.
	nodeGlobstar

	// nodeSlashGlobstar matches "/**/": a single '/' or '/.../'.
	nodeSlashGlobstar

	// nodeDirPrefix matches the empty string or any prefix ending in '/'.
	nodeDirPrefix

	// nodeClass matches one character against a bracket expression.
	nodeClass

	// nodeAlt matches any of its alternatives.
	nodeAlt

	// nodeRange matches an integer within [lo, hi].
	nodeRange
)

type node struct {
	kind  nodeKind
	text  string
	class *charClass
	alts  [][]node
	lo    int64
	hi    int64
	pad   int
}

type classRange struct {
	lo rune
	hi rune
}

type charClass struct {
	negated bool
	ranges  []classRange
}

func (c *charClass) contains(r rune) bool {
	found := false

	for _, cr := range c.ranges {
		if r >= cr.lo && r <= cr.hi {
			found = true

			break
		}
	}

	return found != c.negated
}

// Pattern is a compiled section pattern.
type Pattern struct {
	source   string
	anchored bool
	nodes    []node
	warnings []string
}

// Compile compiles a section pattern. It never fails; see the package
// documentation for how malformed syntax is treated.
func Compile(pattern string) *Pattern {
	anchored := strings.Contains(pattern, "/")

	body := pattern
	if anchored {
		body = strings.TrimPrefix(body, "/")
	}

	var warnings []string

	// Leading "**/" may also match zero directories.
	rest, globstarPrefix := strings.CutPrefix(body, "**/")

	var nodes []node

	switch {
	case !anchored:
		nodes = append([]node{{kind: nodeDirPrefix}}, parseSeq(body, &warnings)...)
	case globstarPrefix:
		nodes = append([]node{{kind: nodeDirPrefix}}, parseSeq(rest, &warnings)...)
	default:
		nodes = parseSeq(body, &warnings)
	}

	return &Pattern{
		source:   pattern,
		anchored: anchored,
		nodes:    nodes,
		warnings: warnings,
	}
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.source
}

// Anchored reports whether the pattern is anchored to the start of the path.
func (p *Pattern) Anchored() bool {
	return p.anchored
}

// Warnings describes syntax that was matched literally because it could not
// be parsed, such as an unclosed bracket. Empty for well-formed patterns.
func (p *Pattern) Warnings() []string {
	return p.warnings
}

// parseSeq parses a whole (sub)pattern into a node sequence. Degraded syntax
// is reported through warns.
func parseSeq(s string, warns *[]string) []node {
	var (
		nodes []node
		lit   strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			nodes = append(nodes, node{kind: nodeLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		c := s[i]

		switch c {
		case '\\':
			if i+1 < len(s) {
				lit.WriteByte(s[i+1])
				i += 2
			} else {
				lit.WriteByte('\\')
				i++
			}

		case '?':
			flush()

			nodes = append(nodes, node{kind: nodeAnyChar})
			i++

		case '*':
			flush()

			if i+1 < len(s) && s[i+1] == '*' {
				nodes = append(nodes, node{kind: nodeGlobstar})
				i += 2

				// Collapse runs of more than two stars.
				for i < len(s) && s[i] == '*' {
					i++
				}
			} else {
				nodes = append(nodes, node{kind: nodeStar})
				i++
			}

		case '[':
			class, next, ok := parseClass(s, i)
			if !ok {
				if !strings.Contains(s[i:], "]") {
					*warns = append(*warns, fmt.Sprintf("unclosed '[' at offset %d", i))
				}

				lit.WriteByte('[')
				i++

				continue
			}

			flush()

			nodes = append(nodes, node{kind: nodeClass, class: class})
			i = next

		case '{':
			n, next, ok := parseBrace(s, i, warns)
			if !ok {
				if matchingBrace(s, i) < 0 {
					*warns = append(*warns, fmt.Sprintf("unbalanced '{' at offset %d", i))
				}

				lit.WriteByte('{')
				i++

				continue
			}

			flush()

			nodes = append(nodes, n)
			i = next

		default:
			lit.WriteByte(c)
			i++
		}
	}

	flush()

	return foldSlashGlobstar(nodes)
}

// foldSlashGlobstar rewrites literal("…/"), globstar, literal("/…") into
// literal("…"), slashGlobstar, literal("…") so "a/**/b" also matches "a/b".
func foldSlashGlobstar(nodes []node) []node {
	out := make([]node, 0, len(nodes))

	for i := 0; i < len(nodes); i++ {
		n := nodes[i]

		if n.kind == nodeGlobstar &&
			len(out) > 0 && out[len(out)-1].kind == nodeLiteral &&
			strings.HasSuffix(out[len(out)-1].text, "/") &&
			i+1 < len(nodes) && nodes[i+1].kind == nodeLiteral &&
			strings.HasPrefix(nodes[i+1].text, "/") {
			prev := &out[len(out)-1]
			prev.text = strings.TrimSuffix(prev.text, "/")

			if prev.text == "" {
				out = out[:len(out)-1]
			}

			out = append(out, node{kind: nodeSlashGlobstar})

			if rest := strings.TrimPrefix(nodes[i+1].text, "/"); rest != "" {
				out = append(out, node{kind: nodeLiteral, text: rest})
			}

			i++

			continue
		}

		out = append(out, n)
	}

	return out
}

// parseClass parses a bracket expression starting at s[start] == '['.
// It returns ok=false when the expression is unterminated or contains '/',
// in which case the '[' is a literal.
func parseClass(s string, start int) (*charClass, int, bool) {
	i := start + 1
	class := &charClass{}

	if i < len(s) && (s[i] == '!' || s[i] == '^') {
		class.negated = true
		i++
	}

	// A ']' right after the opening bracket is a member, not the terminator.
	first := true

	for i < len(s) {
		if s[i] == ']' && !first {
			return class, i + 1, true
		}

		first = false

		lo, next := readMember(s, i)
		if lo == '/' {
			return nil, 0, false
		}

		hi := lo
		i = next

		if i+1 < len(s) && s[i] == '-' && s[i+1] != ']' {
			hi, i = readMember(s, i+1)
			if hi == '/' {
				return nil, 0, false
			}
		}

		if hi < lo {
			lo, hi = hi, lo
		}

		class.ranges = append(class.ranges, classRange{lo: lo, hi: hi})
	}

	return nil, 0, false
}

// readMember reads one, possibly escaped, bracket member at s[i].
func readMember(s string, i int) (rune, int) {
	if s[i] == '\\' && i+1 < len(s) {
		i++
	}

	r, size := utf8.DecodeRuneInString(s[i:])

	return r, i + size
}

// parseBrace parses a brace group starting at s[start] == '{'. It returns
// ok=false for unbalanced braces and for groups that are neither a numeric
// range nor contain a top-level comma; those are matched literally.
func parseBrace(s string, start int, warns *[]string) (node, int, bool) {
	end := matchingBrace(s, start)
	if end < 0 {
		return node{}, 0, false
	}

	body := s[start+1 : end]

	if n, ok := parseRange(body); ok {
		return n, end + 1, true
	}

	parts := splitAlternatives(body)
	if len(parts) < 2 {
		return node{}, 0, false
	}

	alts := make([][]node, 0, len(parts))
	for _, part := range parts {
		alts = append(alts, parseSeq(part, warns))
	}

	return node{kind: nodeAlt, alts: alts}, end + 1, true
}

// matchingBrace returns the index of the '}' closing the '{' at start, or -1.
func matchingBrace(s string, start int) int {
	depth := 0

	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// splitAlternatives splits a brace body at top-level commas.
func splitAlternatives(body string) []string {
	var (
		parts []string
		depth int
		last  int
	)

	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[last:i])
				last = i + 1
			}
		}
	}

	return append(parts, body[last:])
}

// parseRange parses "n..m" into a nodeRange.
func parseRange(body string) (node, bool) {
	loText, hiText, found := strings.Cut(body, "..")
	if !found || !isInteger(loText) || !isInteger(hiText) {
		return node{}, false
	}

	lo, err := strconv.ParseInt(loText, 10, 64)
	if err != nil {
		return node{}, false
	}

	hi, err := strconv.ParseInt(hiText, 10, 64)
	if err != nil {
		return node{}, false
	}

	if hi < lo {
		lo, hi = hi, lo
	}

	return node{
		kind: nodeRange,
		lo:   lo,
		hi:   hi,
		pad:  max(paddedWidth(loText), paddedWidth(hiText)),
	}, true
}

func isInteger(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if s == "" || len(s) > len("9223372036854775807") {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// paddedWidth returns the digit count of a zero-padded bound such as "01",
// or 0 when the bound is not zero-padded.
func paddedWidth(bound string) int {
	digits := strings.TrimLeft(bound, "+-")
	if len(digits) > 1 && digits[0] == '0' {
		return len(digits)
	}

	return 0
}
