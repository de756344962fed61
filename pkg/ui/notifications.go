package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/navigator"
	"github.com/Dicklesworthstone/skillport/pkg/shell"
)

// notificationFilter narrows the inbox.
type notificationFilter int

const (
	filterAll notificationFilter = iota
	filterUnread
)

func (f notificationFilter) String() string {
	if f == filterUnread {
		return "unread"
	}
	return "all"
}

// notificationsScreen is the inbox. Opening a notification marks it read.
type notificationsScreen struct {
	env    *env
	nav    *navigator.Navigator[model.Notification]
	all    []model.Notification
	filter notificationFilter
	search SearchBox

	width, height int
	now           func() time.Time
}

func newNotificationsScreen(e *env) *notificationsScreen {
	s := &notificationsScreen{
		env:    e,
		search: NewSearchBox("search notifications"),
		now:    time.Now,
	}
	s.nav = navigator.New(
		func(n model.Notification) string { return n.ID },
		navigator.WithBreakpoints[model.Notification](e.bp),
		navigator.WithOnSelect(s.markRead),
	)
	s.load(e.data.Notifications)
	return s
}

func (s *notificationsScreen) load(ns []model.Notification) {
	s.all = append([]model.Notification(nil), ns...)
	s.refresh()
}

// refresh re-applies filter and search, dropping a selection that is no
// longer visible.
func (s *notificationsScreen) refresh() {
	var items []model.Notification
	for _, n := range s.all {
		if s.filter == filterUnread && n.Read {
			continue
		}
		items = append(items, n)
	}
	items = FuzzyFilter(items, s.search.Query(), notificationKey)
	s.nav.SetItems(items)
	if _, has := s.nav.SelectedID(); has && !s.nav.ContainsSelection() {
		s.nav.Clear()
	}
}

func notificationKey(n model.Notification) string {
	return n.Title + " " + string(n.Kind)
}

// markRead flags the notification read in place. The visible set is not
// re-filtered, so an item opened from the unread view stays open.
func (s *notificationsScreen) markRead(n model.Notification) {
	if n.Read {
		return
	}
	s.setRead(n.ID)
	items := s.nav.Items()
	for i := range items {
		if items[i].ID == n.ID {
			items[i].Read = true
		}
	}
}

func (s *notificationsScreen) setRead(id string) {
	for i := range s.all {
		if s.all[i].ID == id {
			s.all[i].Read = true
		}
	}
}

// MarkAllRead flags every notification read and returns how many changed.
func (s *notificationsScreen) MarkAllRead() int {
	n := 0
	for i := range s.all {
		if !s.all[i].Read {
			s.all[i].Read = true
			n++
		}
	}
	s.refresh()
	return n
}

// Unread counts unread notifications.
func (s *notificationsScreen) Unread() int {
	n := 0
	for _, x := range s.all {
		if !x.Read {
			n++
		}
	}
	return n
}

func (s *notificationsScreen) TopBar() *shell.TopBar {
	return &shell.TopBar{
		Title:    "Notifications",
		Icon:     "🔔",
		Subtitle: fmt.Sprintf("%d unread · showing %s", s.Unread(), s.filter),
	}
}

func (s *notificationsScreen) Help() []helpEntry {
	return []helpEntry{
		{"enter", "Open (marks read)"},
		{"f", "Toggle all / unread"},
		{"A", "Mark all read"},
		{"/", "Search"},
		{"esc", "Back to list"},
	}
}

func (s *notificationsScreen) Activate() tea.Cmd { return nil }

func (s *notificationsScreen) Resize(units int) { s.nav.Resize(units) }

func (s *notificationsScreen) SetSize(width, height int) {
	s.width, s.height = width, height
}

func (s *notificationsScreen) Capturing() bool { return s.search.Active() }

func (s *notificationsScreen) Back() bool {
	if s.search.Query() != "" && !s.nav.Class().Compact() {
		s.search.Reset()
		s.refresh()
		return true
	}
	return s.nav.Back()
}

func (s *notificationsScreen) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(DatasetReloadedMsg); ok {
		s.load(m.Dataset.Notifications)
		return nil
	}
	if s.search.Active() {
		cmd, changed := s.search.Update(msg)
		if changed {
			s.refresh()
		}
		return cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(km, s.env.keys.Search):
		return s.search.Activate()
	case km.String() == "f":
		if s.filter == filterAll {
			s.filter = filterUnread
		} else {
			s.filter = filterAll
		}
		s.refresh()
		return nil
	case km.String() == "A":
		if n := s.MarkAllRead(); n > 0 {
			return notify(fmt.Sprintf("Marked %d read", n), false)
		}
		return nil
	}
	navigatorKeys(s.nav, s.env.keys, km)
	return nil
}

func (s *notificationsScreen) View() string {
	height := s.height
	var header string
	if sv := s.search.View(s.width); sv != "" {
		header = sv + "\n"
		height--
	}
	empty := "Select a notification"
	if len(s.nav.Items()) == 0 && s.filter == filterUnread {
		empty = "You're all caught up"
	}
	return header + s.nav.View(s.width, height, navigator.Renderer[model.Notification]{
		Entry:  s.renderEntry,
		Detail: s.renderDetail,
		Empty:  empty,
	})
}

func (s *notificationsScreen) renderEntry(n model.Notification, width int, cursor, selected bool) string {
	icon, color := NotificationIcon(n.Kind)
	when := formatTimeRelTo(n.CreatedAt, s.now())
	titleWidth := width - 5 - lipgloss.Width(when) - 1
	title := Truncate(n.Title, titleWidth)
	titleStyle := lipgloss.NewStyle().Width(max(titleWidth, 1))
	if !n.Read {
		titleStyle = titleStyle.Bold(true)
	} else {
		titleStyle = titleStyle.Foreground(ColorSubtext)
	}
	line := RenderUnreadDot(!n.Read) + " " +
		lipgloss.NewStyle().Foreground(color).Render(icon) + " " +
		titleStyle.Render(title) + " " + MutedStyle.Render(when)
	return entryStyle(cursor, selected).Width(width).MaxWidth(width).Render(line)
}

func (s *notificationsScreen) renderDetail(n model.Notification, width, height int) string {
	t := s.env.theme
	icon, _ := NotificationIcon(n.Kind)
	var b strings.Builder
	b.WriteString(t.Renderer.NewStyle().Bold(true).Foreground(t.Primary).Render(icon + " " + n.Title))
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render(strings.ToUpper(string(n.Kind)) + " · " + n.CreatedAt.Format("Mon Jan 2 15:04")))
	b.WriteString("\n")
	b.WriteString(RenderDivider(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(n.Body))
	return b.String()
}
