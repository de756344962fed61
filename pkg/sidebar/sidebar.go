// Package sidebar implements the portal's navigation sidebar: a state machine
// over collapsed/expanded (wide viewports) and drawer closed/open (compact
// viewports) that announces its width changes on a broadcast.Bus.
package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/skillport/pkg/broadcast"
	"github.com/Dicklesworthstone/skillport/pkg/viewport"
)

// Reserved widths in logical units.
const (
	CollapsedUnits = 80
	ExpandedUnits  = 256
)

// State is the sidebar's mode. Exactly one of Desktop or Mobile is active,
// selected by the current viewport class.
type State interface {
	isState()
}

// Desktop is the wide-viewport state.
type Desktop struct {
	Collapsed bool
}

// Mobile is the compact-viewport state, where the sidebar is a drawer.
type Mobile struct {
	Open bool
}

func (Desktop) isState() {}
func (Mobile) isState()  {}

// Link is a navigation entry.
type Link struct {
	ID    string
	Label string
	Icon  string
}

// Controller owns the sidebar state. It is the only publisher of sidebar
// signals on its bus; running two controllers against one bus is a misuse.
type Controller struct {
	bus       *broadcast.Bus
	tracker   viewport.Tracker
	state     State
	links     []Link
	active    string
	cursor    int
	focused   bool
	badges    map[string]int
	cellWidth int
	styles    Styles
}

// New creates a controller in the collapsed state.
func New(bus *broadcast.Bus, bp viewport.Breakpoints, cellWidth int, links []Link) *Controller {
	if cellWidth <= 0 {
		cellWidth = viewport.DefaultCellWidth
	}
	c := &Controller{
		bus:       bus,
		tracker:   viewport.NewTracker(bp),
		state:     Desktop{Collapsed: true},
		links:     append([]Link(nil), links...),
		badges:    map[string]int{},
		cellWidth: cellWidth,
		styles:    DefaultStyles(),
	}
	if len(links) > 0 {
		c.active = links[0].ID
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Class returns the viewport class the controller last observed.
func (c *Controller) Class() viewport.Class {
	return c.tracker.Class()
}

// Expanded reports whether the sidebar is expanded on a wide viewport.
func (c *Controller) Expanded() bool {
	d, ok := c.state.(Desktop)
	return ok && !d.Collapsed
}

// DrawerOpen reports whether the compact drawer is open.
func (c *Controller) DrawerOpen() bool {
	m, ok := c.state.(Mobile)
	return ok && m.Open
}

// Resize observes a new width. On the first observation the state is aligned
// to the viewport; on any later class change it is reset to collapsed or
// closed. Returns true if the state was reset.
func (c *Controller) Resize(units int) bool {
	first := !c.tracker.Known()
	class, changed := c.tracker.Observe(units)
	if first {
		if class.Compact() {
			c.state = Mobile{Open: false}
		} else {
			c.state = Desktop{Collapsed: true}
		}
		return false
	}
	if !changed {
		return false
	}

	wasExpanded := c.Expanded()
	if class.Compact() {
		c.state = Mobile{Open: false}
	} else {
		c.state = Desktop{Collapsed: true}
	}
	c.focused = false
	if wasExpanded {
		c.publish(broadcast.SidebarCollapsed)
	}
	return true
}

// Toggle flips collapsed/expanded on wide viewports. It is a no-op on compact
// viewports and returns false there.
func (c *Controller) Toggle() bool {
	d, ok := c.state.(Desktop)
	if !ok {
		return false
	}
	d.Collapsed = !d.Collapsed
	c.state = d
	if d.Collapsed {
		c.publish(broadcast.SidebarCollapsed)
	} else {
		c.publish(broadcast.SidebarExpanded)
	}
	return true
}

// MobileToggle opens or closes the drawer on compact viewports.
func (c *Controller) MobileToggle() bool {
	m, ok := c.state.(Mobile)
	if !ok {
		return false
	}
	c.state = Mobile{Open: !m.Open}
	c.focused = !m.Open
	return true
}

// OutsideClick closes an open drawer. Returns false if nothing changed.
func (c *Controller) OutsideClick() bool {
	if !c.DrawerOpen() {
		return false
	}
	c.state = Mobile{Open: false}
	c.focused = false
	return true
}

// Navigate activates the link with the given id. An expanded sidebar
// collapses and an open drawer closes. The bool is false for unknown ids, in
// which case the state is left alone.
func (c *Controller) Navigate(id string) (Link, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return Link{}, false
	}
	c.active = id
	c.cursor = idx
	c.focused = false

	switch s := c.state.(type) {
	case Desktop:
		if !s.Collapsed {
			c.state = Desktop{Collapsed: true}
			c.publish(broadcast.SidebarCollapsed)
		}
	case Mobile:
		c.state = Mobile{Open: false}
	}
	return c.links[idx], true
}

// NavigateCursor navigates to the link under the cursor.
func (c *Controller) NavigateCursor() (Link, bool) {
	if c.cursor < 0 || c.cursor >= len(c.links) {
		return Link{}, false
	}
	return c.Navigate(c.links[c.cursor].ID)
}

func (c *Controller) publish(s broadcast.Signal) {
	if c.bus != nil {
		c.bus.Publish(s)
	}
}

func (c *Controller) indexOf(id string) int {
	for i, l := range c.links {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Links returns the navigation links.
func (c *Controller) Links() []Link {
	return c.links
}

// Active returns the active link id.
func (c *Controller) Active() string {
	return c.active
}

// SetActive marks a link active without running the navigate transition.
func (c *Controller) SetActive(id string) {
	if idx := c.indexOf(id); idx >= 0 {
		c.active = id
		c.cursor = idx
	}
}

// SetBadge sets a counter shown next to a link. Zero hides it.
func (c *Controller) SetBadge(id string, n int) {
	if n <= 0 {
		delete(c.badges, id)
		return
	}
	c.badges[id] = n
}

// Focus gives keyboard focus to the link list.
func (c *Controller) Focus() { c.focused = true }

// Blur removes keyboard focus.
func (c *Controller) Blur() { c.focused = false }

// Focused reports whether the link list has keyboard focus.
func (c *Controller) Focused() bool { return c.focused }

// CursorUp moves the link cursor up.
func (c *Controller) CursorUp() {
	if c.cursor > 0 {
		c.cursor--
	}
}

// CursorDown moves the link cursor down.
func (c *Controller) CursorDown() {
	if c.cursor < len(c.links)-1 {
		c.cursor++
	}
}

// Cursor returns the cursor index.
func (c *Controller) Cursor() int {
	return c.cursor
}

// WidthCells returns the rendered width in cells: the drawer is always full
// width, the docked sidebar follows its collapsed state.
func (c *Controller) WidthCells() int {
	switch s := c.state.(type) {
	case Mobile:
		if !s.Open {
			return 0
		}
		return viewport.ToCells(ExpandedUnits, c.cellWidth)
	case Desktop:
		if s.Collapsed {
			return viewport.ToCells(CollapsedUnits, c.cellWidth)
		}
	}
	return viewport.ToCells(ExpandedUnits, c.cellWidth)
}

// View renders the sidebar at the given height. A closed drawer renders as
// an empty string.
func (c *Controller) View(height int) string {
	width := c.WidthCells()
	if width == 0 {
		return ""
	}
	d, docked := c.state.(Desktop)
	labels := !(docked && d.Collapsed)
	inner := width - c.styles.Frame.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	var b strings.Builder
	logo := "◆"
	if labels {
		logo = "◆ SkillPort"
	}
	b.WriteString(c.styles.Logo.Render(runewidth.Truncate(logo, inner, "")))
	b.WriteString("\n\n")

	for i, l := range c.links {
		line := l.Icon
		if labels {
			line = fmt.Sprintf("%s  %s", l.Icon, l.Label)
		}
		if n, ok := c.badges[l.ID]; ok {
			badge := fmt.Sprintf("%d", n)
			if labels {
				pad := inner - runewidth.StringWidth(line) - runewidth.StringWidth(badge) - 2
				if pad < 1 {
					pad = 1
				}
				line += strings.Repeat(" ", pad) + c.styles.Badge.Render(badge)
			} else {
				line += c.styles.Badge.Render("•")
			}
		}

		style := c.styles.Link
		switch {
		case c.focused && i == c.cursor:
			style = c.styles.Cursor
		case l.ID == c.active:
			style = c.styles.Active
		}
		b.WriteString(style.Width(inner).MaxWidth(inner).Render(line))
		b.WriteString("\n")
	}

	if labels {
		b.WriteString("\n")
		hint := "ctrl+b collapse"
		if _, ok := c.state.(Mobile); ok {
			hint = "esc close"
		}
		b.WriteString(c.styles.Hint.Render(runewidth.Truncate(hint, inner, "…")))
	}

	// lipgloss widths include padding but not borders.
	frame := c.styles.Frame.Width(width - c.styles.Frame.GetHorizontalBorderSize())
	if height > 0 {
		h := height - c.styles.Frame.GetVerticalBorderSize()
		if h < 1 {
			h = 1
		}
		frame = frame.Height(h)
	}
	return frame.Render(b.String())
}

// Styles holds the sidebar's lipgloss styles.
type Styles struct {
	Frame  lipgloss.Style
	Logo   lipgloss.Style
	Link   lipgloss.Style
	Active lipgloss.Style
	Cursor lipgloss.Style
	Badge  lipgloss.Style
	Hint   lipgloss.Style
}

// DefaultStyles returns the Dracula-flavoured sidebar styles.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#44475A")).
			Padding(0, 1),
		Logo:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9")),
		Link:   lipgloss.NewStyle().Foreground(lipgloss.Color("#BFBFBF")),
		Active: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F8F8F2")).Background(lipgloss.Color("#44475A")),
		Cursor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#282A36")).Background(lipgloss.Color("#BD93F9")),
		Badge:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF79C6")),
		Hint:   lipgloss.NewStyle().Faint(true).Italic(true),
	}
}

// SetStyles replaces the styles.
func (c *Controller) SetStyles(s Styles) {
	c.styles = s
}
