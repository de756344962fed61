// Package shell is the persistent page chrome every portal screen mounts
// inside: sidebar, optional top bar, and a padded content region.
//
// The shell learns the sidebar's width only through the broadcast bus. It
// never reads the sidebar's state directly, so the two can be tested apart.
package shell

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/skillport/pkg/broadcast"
	"github.com/Dicklesworthstone/skillport/pkg/sidebar"
	"github.com/Dicklesworthstone/skillport/pkg/viewport"
)

// Easing is the transition curve applied to every sidebar width change.
const Easing = "ease-in-out"

// Layout constants in cells.
const (
	topBarHeight   = 2 // title row + divider
	paddingRows    = 1
	paddingColsLg  = 2
	paddingColsSm  = 1
	menuButtonText = "☰"
)

// TopBar describes the optional header row.
type TopBar struct {
	Title    string
	Subtitle string
	Icon     string
	Action   string // trailing slot, rendered right-aligned
}

// Options configures a shell.
type Options struct {
	TopBar      *TopBar
	NoPadding   bool
	CellWidth   int
	Breakpoints viewport.Breakpoints
}

// Shell wraps page content. Create one per page mount.
type Shell struct {
	bus     *broadcast.Bus
	chrome  *Chrome
	sidebar *sidebar.Controller
	opts    Options
	tracker viewport.Tracker

	storedUnits int
	changes     int

	mu       sync.Mutex
	releases []func()
	mounted  bool
}

// New creates an unmounted shell around the given sidebar.
func New(bus *broadcast.Bus, chrome *Chrome, sb *sidebar.Controller, opts Options) *Shell {
	if opts.CellWidth <= 0 {
		opts.CellWidth = viewport.DefaultCellWidth
	}
	return &Shell{
		bus:         bus,
		chrome:      chrome,
		sidebar:     sb,
		opts:        opts,
		tracker:     viewport.NewTracker(opts.Breakpoints),
		storedUnits: sidebar.CollapsedUnits,
	}
}

// Mount subscribes to sidebar broadcasts and marks the chrome root. The
// returned func undoes both; it is safe to call more than once and must run
// on every exit path, typically via defer.
func (s *Shell) Mount() (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		if s.bus != nil {
			s.releases = append(s.releases, s.bus.Subscribe(s.onSignal))
		}
		if s.chrome != nil {
			s.releases = append(s.releases, s.chrome.Acquire())
		}
		s.mounted = true
	}
	return s.Unmount
}

// Unmount releases every listener and the chrome marker.
func (s *Shell) Unmount() {
	s.mu.Lock()
	releases := s.releases
	s.releases = nil
	s.mounted = false
	s.mu.Unlock()

	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}

// Mounted reports whether the shell is mounted.
func (s *Shell) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

func (s *Shell) onSignal(sig broadcast.Signal) {
	next := s.storedUnits
	switch sig {
	case broadcast.SidebarExpanded:
		next = sidebar.ExpandedUnits
	case broadcast.SidebarCollapsed:
		next = sidebar.CollapsedUnits
	}
	if next != s.storedUnits {
		s.changes++
	}
	s.storedUnits = next
}

// Sidebar returns the sidebar rendered by this shell.
func (s *Shell) Sidebar() *sidebar.Controller {
	return s.sidebar
}

// SetTopBar replaces the top bar; nil hides it.
func (s *Shell) SetTopBar(tb *TopBar) {
	s.opts.TopBar = tb
}

// Resize observes a new width in units.
func (s *Shell) Resize(units int) {
	s.tracker.Observe(units)
}

// Class returns the shell's view of the viewport class.
func (s *Shell) Class() viewport.Class {
	return s.tracker.Class()
}

// StoredUnits is the width last announced on the bus, regardless of viewport.
func (s *Shell) StoredUnits() int {
	return s.storedUnits
}

// WidthChanges counts how many broadcasts actually changed the stored width.
func (s *Shell) WidthChanges() int {
	return s.changes
}

// ReservedUnits is the horizontal space held for the sidebar. Compact
// viewports reserve nothing; the drawer overlays the content instead.
func (s *Shell) ReservedUnits() int {
	if s.tracker.Class().Compact() {
		return 0
	}
	return s.storedUnits
}

// ReservedCells is ReservedUnits in terminal cells.
func (s *Shell) ReservedCells() int {
	return viewport.ToCells(s.ReservedUnits(), s.opts.CellWidth)
}

func (s *Shell) padding() (rows, cols int) {
	if s.opts.NoPadding {
		return 0, 0
	}
	if s.tracker.Class().Small() {
		return paddingRows, paddingColsSm
	}
	return paddingRows, paddingColsLg
}

func (s *Shell) headerRows() int {
	if s.opts.TopBar != nil || s.tracker.Class().Compact() {
		return topBarHeight
	}
	return 0
}

// ContentSize returns the cells available to page content for a terminal of
// the given size.
func (s *Shell) ContentSize(cols, rows int) (width, height int) {
	pr, pc := s.padding()
	width = cols - s.ReservedCells() - 2*pc
	height = rows - s.headerRows() - 2*pr
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// View lays out sidebar, top bar and content for a terminal of cols×rows.
func (s *Shell) View(cols, rows int, content string) string {
	mainWidth := cols - s.ReservedCells()
	if mainWidth < 1 {
		mainWidth = 1
	}
	pr, pc := s.padding()
	cw, ch := s.ContentSize(cols, rows)

	body := lipgloss.NewStyle().
		Padding(pr, pc).
		Width(mainWidth).
		MaxWidth(mainWidth).
		Height(rows - s.headerRows()).
		MaxHeight(rows - s.headerRows()).
		Render(lipgloss.NewStyle().Width(cw).MaxWidth(cw).MaxHeight(ch).Render(content))

	main := body
	if h := s.headerRows(); h > 0 {
		main = lipgloss.JoinVertical(lipgloss.Left, s.renderTopBar(mainWidth), body)
	}

	if s.sidebar == nil {
		return main
	}
	if s.tracker.Class().Compact() {
		if !s.sidebar.DrawerOpen() {
			return main
		}
		return overlayLeft(s.sidebar.View(rows), main, cols)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, s.sidebar.View(rows), main)
}

func (s *Shell) renderTopBar(width int) string {
	var left []string
	compact := s.tracker.Class().Compact()
	if compact {
		left = append(left, menuStyle.Render(menuButtonText))
	}
	tb := s.opts.TopBar
	if tb == nil {
		tb = &TopBar{}
	}
	if tb.Icon != "" {
		left = append(left, iconStyle.Render(tb.Icon))
	}
	if tb.Title != "" {
		left = append(left, titleStyle.Render(tb.Title))
	}
	if tb.Subtitle != "" && !s.tracker.Class().Small() {
		left = append(left, subtitleStyle.Render(tb.Subtitle))
	}
	leftStr := strings.Join(left, " ")
	right := ""
	if tb.Action != "" {
		right = actionStyle.Render(tb.Action)
	}

	gap := width - lipgloss.Width(leftStr) - lipgloss.Width(right) - 2
	if gap < 1 {
		// Drop the action before truncating the title.
		right = ""
		gap = width - lipgloss.Width(leftStr) - 2
		if gap < 0 {
			leftStr = runewidth.Truncate(leftStr, width-2, "…")
			gap = 0
		}
	}
	row := " " + leftStr + strings.Repeat(" ", gap) + right + " "
	divider := dividerStyle.Render(strings.Repeat("─", width))
	return lipgloss.NewStyle().MaxWidth(width).Render(row) + "\n" + divider
}

// overlayLeft draws top over the left edge of base, line by line, keeping the
// visible remainder of base to the right.
func overlayLeft(top, base string, cols int) string {
	topLines := strings.Split(top, "\n")
	baseLines := strings.Split(base, "\n")
	n := len(baseLines)
	if len(topLines) > n {
		n = len(topLines)
	}
	topWidth := lipgloss.Width(top)
	dim := lipgloss.NewStyle().Faint(true)

	out := make([]string, n)
	for i := 0; i < n; i++ {
		var t, b string
		if i < len(topLines) {
			t = topLines[i]
		}
		if i < len(baseLines) {
			b = baseLines[i]
		}
		pad := topWidth - lipgloss.Width(t)
		if pad > 0 {
			t += strings.Repeat(" ", pad)
		}
		rest := cols - topWidth
		if rest <= 0 {
			out[i] = t
			continue
		}
		plain := ansi.Strip(b)
		tail := ""
		if runewidth.StringWidth(plain) > topWidth {
			tail = runewidth.TruncateLeft(plain, topWidth, "")
		}
		out[i] = t + dim.Render(runewidth.Truncate(tail, rest, ""))
	}
	return strings.Join(out, "\n")
}

var (
	menuStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9"))
	iconStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F8F8F2"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	actionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#44475A"))
)
