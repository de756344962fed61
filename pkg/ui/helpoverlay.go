package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// helpEntry is one key/description row.
type helpEntry struct{ key, desc string }

// HelpOverlayModel shows keyboard shortcuts help
type HelpOverlayModel struct {
	visible bool
	width   int
	height  int
	theme   Theme

	// page-specific section, replaced on every route change
	pageTitle string
	page      []helpEntry
}

// NewHelpOverlayModel creates a new help overlay
func NewHelpOverlayModel(theme Theme) HelpOverlayModel {
	return HelpOverlayModel{
		theme: theme,
	}
}

// Show makes the help overlay visible
func (m *HelpOverlayModel) Show() {
	m.visible = true
}

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize sets dimensions
func (m *HelpOverlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetPage replaces the page-specific shortcuts.
func (m *HelpOverlayModel) SetPage(title string, entries []helpEntry) {
	m.pageTitle = title
	m.page = entries
}

// Update handles input
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg.(type) {
	case tea.KeyMsg:
		// Any key closes help
		m.visible = false
	}

	return m, nil
}

// View renders the help overlay
func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder

	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("SkillPort Help"))
	b.WriteString("\n\n")

	sectionStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Secondary)
	keyStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Primary).Width(12)
	descStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)

	section := func(name string, entries []helpEntry) {
		b.WriteString(sectionStyle.Render(name) + "\n")
		for _, e := range entries {
			b.WriteString("  " + keyStyle.Render(e.key) + descStyle.Render(e.desc) + "\n")
		}
		b.WriteString("\n")
	}

	section("NAVIGATION", []helpEntry{
		{"j/↓", "Move down"},
		{"k/↑", "Move up"},
		{"g/G", "Top / bottom"},
		{"enter", "Open"},
		{"esc", "Back / close drawer"},
		{"1-8", "Jump to page"},
	})
	section("SIDEBAR", []helpEntry{
		{"ctrl+b", "Expand / collapse (menu on narrow)"},
		{"tab", "Focus sidebar links"},
	})
	if len(m.page) > 0 {
		section(strings.ToUpper(m.pageTitle), m.page)
	}
	section("GENERAL", []helpEntry{
		{"?", "Toggle this help"},
		{"q", "Quit"},
	})

	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)
	b.WriteString(hintStyle.Render("[Press any key to close]"))

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}
