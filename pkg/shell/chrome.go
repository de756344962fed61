package shell

import "sync"

// Chrome is the root of the view tree. While any shell is mounted the root
// is marked, and the root app drops its own outer padding so the shell can
// use the full terminal.
type Chrome struct {
	mu      sync.Mutex
	mounted int
}

// NewChrome creates an unmarked root.
func NewChrome() *Chrome {
	return &Chrome{}
}

// Acquire marks the root and returns an idempotent release func.
func (c *Chrome) Acquire() (release func()) {
	c.mu.Lock()
	c.mounted++
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.mounted > 0 {
				c.mounted--
			}
		})
	}
}

// Marked reports whether at least one shell is mounted.
func (c *Chrome) Marked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted > 0
}

// Mounted returns the number of mounted shells.
func (c *Chrome) Mounted() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}
