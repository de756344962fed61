// Package navigator implements the list-detail pattern shared by the
// messages and notifications screens: a list pane and a detail pane shown
// side by side on wide viewports and one at a time on compact ones.
//
// The navigator owns only the selection. Items belong to the caller, which
// may filter or replace them at any time; the navigator never clears the
// selection on the caller's behalf.
package navigator

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/skillport/pkg/viewport"
)

// Pane is the visible pane configuration.
type Pane int

const (
	ListOnly Pane = iota
	DetailOnly
	Both
)

// String returns the pane name.
func (p Pane) String() string {
	switch p {
	case ListOnly:
		return "list-only"
	case DetailOnly:
		return "detail-only"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// List pane width bounds in cells on wide viewports.
const (
	listMinCells = 28
	listMaxCells = 48
)

// Renderer draws list entries and the detail pane.
type Renderer[T any] struct {
	Entry  func(item T, width int, cursor, selected bool) string
	Detail func(item T, width, height int) string
	// Empty is rendered in the detail pane when nothing is selected.
	Empty string
}

// Option configures a Navigator.
type Option[T any] func(*Navigator[T])

// WithOnSelect registers a callback invoked whenever an existing item is
// selected. The navigator attaches no meaning to it.
func WithOnSelect[T any](fn func(T)) Option[T] {
	return func(n *Navigator[T]) { n.onSelect = fn }
}

// WithBreakpoints overrides the viewport breakpoints.
func WithBreakpoints[T any](bp viewport.Breakpoints) Option[T] {
	return func(n *Navigator[T]) { n.tracker = viewport.NewTracker(bp) }
}

// Navigator is the list-detail state machine.
type Navigator[T any] struct {
	id       func(T) string
	items    []T
	selected string
	has      bool
	cursor   int
	offset   int
	tracker  viewport.Tracker
	onSelect func(T)
}

// New creates a navigator. id extracts an item's stable identifier.
func New[T any](id func(T) string, opts ...Option[T]) *Navigator[T] {
	n := &Navigator[T]{
		id:      id,
		tracker: viewport.NewTracker(viewport.DefaultBreakpoints()),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SetItems replaces the items. The selection is kept even when it is no
// longer among them; the cursor is clamped.
func (n *Navigator[T]) SetItems(items []T) {
	n.items = items
	if n.cursor >= len(items) {
		n.cursor = len(items) - 1
	}
	if n.cursor < 0 {
		n.cursor = 0
	}
	if n.has {
		if idx := n.indexOf(n.selected); idx >= 0 {
			n.cursor = idx
		}
	}
}

// Items returns the current items.
func (n *Navigator[T]) Items() []T {
	return n.items
}

// Select makes id the selection. On compact viewports only the detail pane
// remains visible.
func (n *Navigator[T]) Select(id string) {
	n.selected = id
	n.has = true
	if idx := n.indexOf(id); idx >= 0 {
		n.cursor = idx
		if n.onSelect != nil {
			n.onSelect(n.items[idx])
		}
	}
}

// SelectCursor selects the item under the cursor.
func (n *Navigator[T]) SelectCursor() bool {
	if n.cursor < 0 || n.cursor >= len(n.items) {
		return false
	}
	n.Select(n.id(n.items[n.cursor]))
	return true
}

// Back returns from the detail pane to the list on compact viewports. It
// reports whether anything changed; on wide viewports or without a selection
// it does nothing.
func (n *Navigator[T]) Back() bool {
	if !n.tracker.Class().Compact() || !n.has {
		return false
	}
	n.Clear()
	return true
}

// Clear drops the selection.
func (n *Navigator[T]) Clear() {
	n.selected = ""
	n.has = false
}

// Resize observes a new width. The selection always survives.
func (n *Navigator[T]) Resize(units int) {
	n.tracker.Observe(units)
}

// Class returns the navigator's view of the viewport class.
func (n *Navigator[T]) Class() viewport.Class {
	return n.tracker.Class()
}

// Pane returns the visible panes for the current viewport and selection.
func (n *Navigator[T]) Pane() Pane {
	if !n.tracker.Class().Compact() {
		return Both
	}
	if n.has {
		return DetailOnly
	}
	return ListOnly
}

// SelectedID returns the selected id, if any.
func (n *Navigator[T]) SelectedID() (string, bool) {
	return n.selected, n.has
}

// Selected returns the selected item if it is among the current items.
func (n *Navigator[T]) Selected() (T, bool) {
	var zero T
	if !n.has {
		return zero, false
	}
	idx := n.indexOf(n.selected)
	if idx < 0 {
		return zero, false
	}
	return n.items[idx], true
}

// ContainsSelection reports whether the selection is among the current
// items. Callers that filter use it to decide whether to Clear.
func (n *Navigator[T]) ContainsSelection() bool {
	return n.has && n.indexOf(n.selected) >= 0
}

// Cursor returns the list cursor.
func (n *Navigator[T]) Cursor() int {
	return n.cursor
}

// CursorUp moves the list cursor up.
func (n *Navigator[T]) CursorUp() {
	if n.cursor > 0 {
		n.cursor--
	}
}

// CursorDown moves the list cursor down.
func (n *Navigator[T]) CursorDown() {
	if n.cursor < len(n.items)-1 {
		n.cursor++
	}
}

// CursorTop moves the cursor to the first item.
func (n *Navigator[T]) CursorTop() {
	n.cursor = 0
}

// CursorBottom moves the cursor to the last item.
func (n *Navigator[T]) CursorBottom() {
	if len(n.items) > 0 {
		n.cursor = len(n.items) - 1
	}
}

func (n *Navigator[T]) indexOf(id string) int {
	for i, item := range n.items {
		if n.id(item) == id {
			return i
		}
	}
	return -1
}

// ListWidth returns the list pane width for a given total width.
func ListWidth(total int) int {
	w := total * 2 / 5
	if w < listMinCells {
		w = listMinCells
	}
	if w > listMaxCells {
		w = listMaxCells
	}
	if w > total {
		w = total
	}
	return w
}

// View renders the visible panes into width×height cells.
func (n *Navigator[T]) View(width, height int, r Renderer[T]) string {
	switch n.Pane() {
	case ListOnly:
		return n.renderList(width, height, r)
	case DetailOnly:
		return n.renderDetail(width, height, r)
	}

	lw := ListWidth(width)
	dw := width - lw - 1
	if dw < 1 {
		return n.renderList(width, height, r)
	}
	sep := separatorStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", max(height, 1)), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		n.renderList(lw, height, r),
		sep,
		n.renderDetail(dw, height, r),
	)
}

func (n *Navigator[T]) renderList(width, height int, r Renderer[T]) string {
	if height < 1 {
		height = 1
	}
	// Keep the cursor inside the visible window.
	if n.cursor < n.offset {
		n.offset = n.cursor
	}
	if n.cursor >= n.offset+height {
		n.offset = n.cursor - height + 1
	}
	if n.offset < 0 {
		n.offset = 0
	}

	var lines []string
	for i := n.offset; i < len(n.items) && len(lines) < height; i++ {
		item := n.items[i]
		selected := n.has && n.id(item) == n.selected
		entry := ""
		if r.Entry != nil {
			entry = r.Entry(item, width, i == n.cursor, selected)
		}
		lines = append(lines, entry)
	}
	if len(n.items) == 0 {
		lines = append(lines, emptyStyle.Render("Nothing here yet"))
	}
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Height(height).MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

func (n *Navigator[T]) renderDetail(width, height int, r Renderer[T]) string {
	box := lipgloss.NewStyle().Width(width).MaxWidth(width).Height(max(height, 1)).MaxHeight(max(height, 1))
	item, ok := n.Selected()
	if !ok || r.Detail == nil {
		msg := r.Empty
		if msg == "" {
			msg = "Select an item to view details"
		}
		return box.Render(emptyStyle.Width(width).Align(lipgloss.Center).Render(msg))
	}
	return box.Render(r.Detail(item, width, height))
}

var (
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#44475A"))
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
)
