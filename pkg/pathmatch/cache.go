package pathmatch

import "sync"

// Cache provides thread-safe caching of compiled patterns. Section headers
// repeat across every Resolve call, so the resolver compiles each only once.
type Cache struct {
	mu       sync.RWMutex
	patterns map[string]*Pattern
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		patterns: make(map[string]*Pattern),
	}
}

// Get returns the compiled pattern, compiling and caching it if necessary.
func (c *Cache) Get(pattern string) *Pattern {
	// Fast path: already compiled.
	c.mu.RLock()

	if p, ok := c.patterns[pattern]; ok {
		c.mu.RUnlock()
		return p
	}

	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock.
	if p, ok := c.patterns[pattern]; ok {
		return p
	}

	p := Compile(pattern)
	c.patterns[pattern] = p

	return p
}

// Match compiles pattern through the cache and matches path against it.
func (c *Cache) Match(pattern, path string) bool {
	return c.Get(pattern).Match(path)
}

// Clear removes all cached patterns.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.patterns = make(map[string]*Pattern)
}

// Size returns the number of cached patterns.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.patterns)
}
