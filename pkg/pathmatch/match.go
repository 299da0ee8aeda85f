package pathmatch

import (
	"strconv"
	"unicode/utf8"
)

// Matches reports whether relativePath matches pattern. The path must use
// forward slashes. It is a convenience for Compile(pattern).Match(path).
func Matches(pattern, relativePath string) bool {
	return Compile(pattern).Match(relativePath)
}

// Match reports whether path matches the compiled pattern.
func (p *Pattern) Match(path string) bool {
	m := &matcher{s: path}

	return m.seq(p.nodes, 0, func(pos int) bool {
		return pos == len(path)
	})
}

// state identifies a node sequence suffix by its first node.
type state struct {
	n   *node
	pos int
}

// matcher holds the per-call state of one Match. Every node of the compiled
// tree has a single continuation, so whether a suffix matches at pos is fixed
// for the whole call and failures can be remembered.
type matcher struct {
	s      string
	failed map[state]bool
}

// seq matches nodes against s[pos:] and calls k with every position at which
// the sequence can end. Backtracking happens by k returning false.
func (m *matcher) seq(nodes []node, pos int, k func(int) bool) bool {
	if len(nodes) == 0 {
		return k(pos)
	}

	key := state{n: &nodes[0], pos: pos}
	if m.failed[key] {
		return false
	}

	if m.step(nodes, pos, k) {
		return true
	}

	if m.failed == nil {
		m.failed = make(map[state]bool)
	}

	m.failed[key] = true

	return false
}

// step matches the first node of nodes and continues with the rest.
func (m *matcher) step(nodes []node, pos int, k func(int) bool) bool {
	s := m.s
	n := &nodes[0]
	next := func(p int) bool {
		return m.seq(nodes[1:], p, k)
	}

	switch n.kind {
	case nodeLiteral:
		end := pos + len(n.text)
		if end > len(s) || s[pos:end] != n.text {
			return false
		}

		return next(end)

	case nodeAnyChar:
		r, size := utf8.DecodeRuneInString(s[pos:])
		if size == 0 || r == '/' {
			return false
		}

		return next(pos + size)

	case nodeStar:
		return matchStar(s, pos, next)

	case nodeGlobstar:
		for end := pos; end <= len(s); end++ {
			if next(end) {
				return true
			}
		}

		return false

	case nodeSlashGlobstar:
		if pos >= len(s) || s[pos] != '/' {
			return false
		}

		for end := pos + 1; end <= len(s); end++ {
			if s[end-1] == '/' && next(end) {
				return true
			}
		}

		return false

	case nodeDirPrefix:
		if next(pos) {
			return true
		}

		for i := pos; i < len(s); i++ {
			if s[i] == '/' && next(i+1) {
				return true
			}
		}

		return false

	case nodeClass:
		r, size := utf8.DecodeRuneInString(s[pos:])
		if size == 0 || r == '/' || !n.class.contains(r) {
			return false
		}

		return next(pos + size)

	case nodeAlt:
		for _, alt := range n.alts {
			if m.seq(alt, pos, next) {
				return true
			}
		}

		return false

	case nodeRange:
		return matchRange(n, s, pos, next)
	}

	return false
}

// matchStar tries every split point up to the next '/'.
func matchStar(s string, pos int, next func(int) bool) bool {
	for end := pos; ; {
		if next(end) {
			return true
		}

		if end >= len(s) || s[end] == '/' {
			return false
		}

		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}
}

// matchRange consumes an optionally signed integer at s[pos:] whose value is
// within [n.lo, n.hi]. Longer digit runs are tried first.
func matchRange(n *node, s string, pos int, next func(int) bool) bool {
	start := pos
	if start < len(s) && (s[start] == '+' || s[start] == '-') {
		start++
	}

	digitsEnd := start
	for digitsEnd < len(s) && s[digitsEnd] >= '0' && s[digitsEnd] <= '9' {
		digitsEnd++
	}

	for end := digitsEnd; end > start; end-- {
		if !validWidth(s[start:end], n.pad) {
			continue
		}

		value, err := strconv.ParseInt(s[pos:end], 10, 64)
		if err != nil || value < n.lo || value > n.hi {
			continue
		}

		if next(end) {
			return true
		}
	}

	return false
}

// validWidth rejects leading zeros unless the range is zero-padded, in which
// case exactly pad digits are required.
func validWidth(digits string, pad int) bool {
	if pad > 0 {
		return len(digits) == pad
	}

	return len(digits) == 1 || digits[0] != '0'
}
