// Package watcher reloads the dataset directory when its YAML files change.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a burst of edits is reported.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer collapses a burst of triggers into one call of the latest callback.
type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	timer *time.Timer
	gen   uint64
}

// NewDebouncer returns a Debouncer; wait <= 0 selects DefaultDebounce.
func NewDebouncer(wait time.Duration) *Debouncer {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &Debouncer{wait: wait}
}

// Trigger (re)arms the timer. Only the callback from the last call runs.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() {
		if !d.claim(gen) {
			return
		}
		fn()
	})
}

// claim reports whether gen is still the latest arm. A timer that fired
// while a newer Trigger was stopping it loses here.
func (d *Debouncer) claim(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return false
	}
	d.timer = nil
	return true
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Wait returns the debounce window.
func (d *Debouncer) Wait() time.Duration {
	return d.wait
}
