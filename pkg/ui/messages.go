package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/navigator"
	"github.com/Dicklesworthstone/skillport/pkg/shell"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// messagesScreen lists conversations with the thread as detail.
type messagesScreen struct {
	env    *env
	nav    *navigator.Navigator[model.Conversation]
	all    []model.Conversation
	search SearchBox

	compose *ComposeModel

	width, height int
	now           func() time.Time
}

func newMessagesScreen(e *env) *messagesScreen {
	s := &messagesScreen{
		env:    e,
		search: NewSearchBox("search conversations"),
		now:    time.Now,
	}
	s.nav = navigator.New(
		func(c model.Conversation) string { return c.ID },
		navigator.WithBreakpoints[model.Conversation](e.bp),
		navigator.WithOnSelect(s.markRead),
	)
	s.load(e.data.Conversations)
	return s
}

func (s *messagesScreen) load(convs []model.Conversation) {
	s.all = make([]model.Conversation, len(convs))
	for i, c := range convs {
		s.all[i] = c.Clone()
	}
	s.refresh()
}

// refresh re-applies the search. A selection filtered out of view is
// dropped so the detail pane never shows a hidden conversation.
func (s *messagesScreen) refresh() {
	items := FuzzyFilter(s.all, s.search.Query(), conversationKey)
	s.nav.SetItems(items)
	if _, has := s.nav.SelectedID(); has && !s.nav.ContainsSelection() {
		s.nav.Clear()
	}
}

// conversationKey is what search matches: the contact, not the thread. Fuzzy
// matching over message bodies pulls in unrelated conversations.
func conversationKey(c model.Conversation) string {
	return c.With + " " + c.Role
}

// markRead clears the unread counter of an opened conversation.
func (s *messagesScreen) markRead(c model.Conversation) {
	if c.Unread == 0 {
		return
	}
	for i := range s.all {
		if s.all[i].ID == c.ID {
			s.all[i].Unread = 0
		}
	}
	s.refresh()
}

// Unread is the total unread message count.
func (s *messagesScreen) Unread() int {
	n := 0
	for _, c := range s.all {
		n += c.Unread
	}
	return n
}

func (s *messagesScreen) TopBar() *shell.TopBar {
	tb := &shell.TopBar{Title: "Messages", Icon: "💬", Subtitle: "Conversations with mentors and recruiters"}
	if n := s.Unread(); n > 0 {
		tb.Subtitle = fmt.Sprintf("%d unread", n)
	}
	return tb
}

func (s *messagesScreen) Help() []helpEntry {
	return []helpEntry{
		{"enter", "Open conversation"},
		{"/", "Search"},
		{"c", "Reply"},
		{"y", "Copy last message"},
		{"esc", "Back to list"},
	}
}

func (s *messagesScreen) Activate() tea.Cmd { return nil }

func (s *messagesScreen) Resize(units int) { s.nav.Resize(units) }

func (s *messagesScreen) SetSize(width, height int) {
	s.width, s.height = width, height
	if s.compose != nil {
		s.compose.SetSize(width, height)
	}
}

func (s *messagesScreen) Capturing() bool {
	return s.compose != nil || s.search.Active()
}

func (s *messagesScreen) Back() bool {
	if s.search.Query() != "" && !s.nav.Class().Compact() {
		s.search.Reset()
		s.refresh()
		return true
	}
	return s.nav.Back()
}

func (s *messagesScreen) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(DatasetReloadedMsg); ok {
		s.load(m.Dataset.Conversations)
		return nil
	}

	if s.compose != nil {
		c, cmd := s.compose.Update(msg)
		s.compose = &c
		switch {
		case c.IsCancelled():
			s.compose = nil
		case c.IsSubmitted():
			s.compose = nil
			s.appendReply(c.ConversationID(), c.Text())
			return notify("Reply sent", false)
		}
		return cmd
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
	k := s.env.keys
	switch {
	case key.Matches(km, k.Search):
		return s.search.Activate()
	case km.String() == "c":
		conv, ok := s.nav.Selected()
		if !ok {
			return notify("Open a conversation to reply", true)
		}
		c := NewComposeModel(conv.ID, conv.With, s.env.theme)
		c.SetSize(s.width, s.height)
		s.compose = &c
		return c.Init()
	case key.Matches(km, k.Copy):
		return s.copyLast()
	}
	navigatorKeys(s.nav, k, km)
	return nil
}

func (s *messagesScreen) appendReply(id, text string) {
	for i := range s.all {
		if s.all[i].ID == id {
			s.all[i].Messages = append(s.all[i].Messages, model.Message{
				From:   "You",
				Text:   text,
				SentAt: s.now(),
				Mine:   true,
			})
		}
	}
	s.refresh()
}

func (s *messagesScreen) copyLast() tea.Cmd {
	conv, ok := s.nav.Selected()
	if !ok {
		return nil
	}
	last, ok := conv.LastMessage()
	if !ok {
		return nil
	}
	if err := copyToClipboard(last.Text); err != nil {
		return notify("Copy failed: "+err.Error(), true)
	}
	return notify("Copied last message", false)
}

func (s *messagesScreen) View() string {
	if s.compose != nil {
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, s.compose.View())
	}
	height := s.height
	var header string
	if sv := s.search.View(s.width); sv != "" {
		header = sv + "\n"
		height--
	}
	return header + s.nav.View(s.width, height, navigator.Renderer[model.Conversation]{
		Entry:  s.renderEntry,
		Detail: s.renderThread,
		Empty:  "Select a conversation",
	})
}

func (s *messagesScreen) renderEntry(c model.Conversation, width int, cursor, selected bool) string {
	when := ""
	if last, ok := c.LastMessage(); ok {
		when = formatTimeRelTo(last.SentAt, s.now())
	}
	name := c.With
	if c.Unread > 0 {
		name = fmt.Sprintf("%s (%d)", name, c.Unread)
	}
	nameWidth := width - 2 - lipgloss.Width(when) - 2
	line := RenderUnreadDot(c.Unread > 0) + " " +
		lipgloss.NewStyle().Width(max(nameWidth, 1)).Render(Truncate(name, nameWidth)) +
		" " + MutedStyle.Render(when)
	return entryStyle(cursor, selected).Width(width).MaxWidth(width).Render(line)
}

func (s *messagesScreen) renderThread(c model.Conversation, width, height int) string {
	t := s.env.theme
	head := t.Renderer.NewStyle().Bold(true).Foreground(t.Primary).Render(c.With)
	if c.Role != "" {
		head += "  " + MutedStyle.Render(c.Role)
	}
	lines := []string{head, RenderDivider(width)}

	bubbleWidth := clampInt(width*3/4, 10, width)
	var body []string
	for _, m := range c.Messages {
		meta := MutedStyle.Render(m.From + " · " + formatTimeRelTo(m.SentAt, s.now()))
		text := lipgloss.NewStyle().Width(bubbleWidth).Render(m.Text)
		block := meta + "\n" + text
		if m.Mine {
			block = lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(
				lipgloss.NewStyle().Foreground(ColorInfo).Render(block))
		}
		body = append(body, strings.Split(block, "\n")...)
		body = append(body, "")
	}
	// Newest messages stay in view.
	room := height - len(lines)
	if room > 0 && len(body) > room {
		body = body[len(body)-room:]
	}
	return strings.Join(append(lines, body...), "\n")
}

// navigatorKeys applies the shared list keys. It reports whether the key
// was consumed.
func navigatorKeys[T any](n *navigator.Navigator[T], k KeyMap, km tea.KeyMsg) bool {
	switch {
	case key.Matches(km, k.Up):
		n.CursorUp()
	case key.Matches(km, k.Down):
		n.CursorDown()
	case key.Matches(km, k.Top):
		n.CursorTop()
	case key.Matches(km, k.Bottom):
		n.CursorBottom()
	case key.Matches(km, k.Select):
		n.SelectCursor()
	default:
		return false
	}
	return true
}

func entryStyle(cursor, selected bool) lipgloss.Style {
	switch {
	case cursor:
		return lipgloss.NewStyle().Background(ColorBgHighlight).Bold(selected)
	case selected:
		return lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	default:
		return lipgloss.NewStyle()
	}
}
