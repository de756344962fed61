// Package broadcast is a small in-process publish/subscribe channel used to
// signal sidebar transitions to the shell without threading state through
// every page model.
package broadcast

import "sync"

// Signal is a payload-free notification.
type Signal int

const (
	SidebarExpanded Signal = iota + 1
	SidebarCollapsed
)

// String returns the signal's wire-style name.
func (s Signal) String() string {
	switch s {
	case SidebarExpanded:
		return "sidebar-expanded"
	case SidebarCollapsed:
		return "sidebar-collapsed"
	default:
		return "unknown"
	}
}

// Listener receives signals.
type Listener func(Signal)

// Bus dispatches signals synchronously to every subscriber in subscription
// order. The zero value is ready to use.
type Bus struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []entry
}

type entry struct {
	id uint64
	fn Listener
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a release func that removes it. The
// release func is safe to call more than once.
func (b *Bus) Subscribe(fn Listener) (release func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, entry{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *Bus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, e := range b.listeners {
		if e.id == id {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers s to all current subscribers before returning.
// Listeners may subscribe or unsubscribe while being notified; such changes
// take effect on the next Publish.
func (b *Bus) Publish(s Signal) {
	b.mu.Lock()
	snapshot := make([]Listener, len(b.listeners))
	for i, e := range b.listeners {
		snapshot[i] = e.fn
	}
	b.mu.Unlock()

	for _, fn := range snapshot {
		fn(s)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
