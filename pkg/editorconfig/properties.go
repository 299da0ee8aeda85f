package editorconfig

import (
	"slices"
	"strings"
)

// Properties is the effective key/value set for one file. Keys are lower case.
type Properties map[string]string

// Get returns the value for key and whether it is present.
func (p Properties) Get(key string) (string, bool) {
	v, ok := p[key]

	return v, ok
}

// Keys returns the keys in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// String renders one "key=value" line per property, sorted by key.
func (p Properties) String() string {
	var sb strings.Builder

	for _, k := range p.Keys() {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(p[k])
		sb.WriteByte('\n')
	}

	return sb.String()
}
