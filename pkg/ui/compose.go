package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ComposeModel is the modal for writing a reply in a conversation.
type ComposeModel struct {
	textarea       textarea.Model
	conversationID string
	recipient      string
	width          int
	height         int
	theme          Theme

	// Result
	submitted bool
	cancelled bool
	text      string
}

// NewComposeModel creates a compose modal addressed to recipient.
func NewComposeModel(conversationID, recipient string, theme Theme) ComposeModel {
	ta := textarea.New()
	ta.Placeholder = "Write a reply..."
	ta.Focus()
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetWidth(50)
	ta.SetHeight(5)

	return ComposeModel{
		textarea:       ta,
		conversationID: conversationID,
		recipient:      recipient,
		theme:          theme,
	}
}

// Init implements tea.Model
func (m ComposeModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model
func (m ComposeModel) Update(msg tea.Msg) (ComposeModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.cancelled = true
			return m, nil
		case "ctrl+enter", "ctrl+s", "ctrl+j":
			// ctrl+j is alternate for terminals that don't support ctrl+enter
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" {
				return m, nil
			}
			m.submitted = true
			m.text = text
			return m, nil
		}
	}

	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m ComposeModel) View() string {
	var b strings.Builder

	width := 60
	if m.width > 0 && m.width < 70 {
		width = m.width - 10
	}
	if width < MinBoxWidth {
		width = MinBoxWidth
	}

	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		Width(width).
		Align(lipgloss.Center)
	b.WriteString(titleStyle.Render("Reply to " + m.recipient))
	b.WriteString("\n\n")

	b.WriteString(m.textarea.View())
	b.WriteString("\n\n")

	hintStyle := m.theme.Renderer.NewStyle().Faint(true)
	b.WriteString(hintStyle.Render("[Ctrl+S/Ctrl+J] Send  [Esc] Cancel"))

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(b.String())
}

// SetSize sets the modal dimensions
func (m *ComposeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.textarea.SetWidth(clampInt(width-20, 20, 56))
}

// IsSubmitted returns true if the user sent the reply
func (m ComposeModel) IsSubmitted() bool {
	return m.submitted
}

// IsCancelled returns true if the user cancelled
func (m ComposeModel) IsCancelled() bool {
	return m.cancelled
}

// Text returns the reply text
func (m ComposeModel) Text() string {
	return m.text
}

// ConversationID returns the conversation being replied to
func (m ComposeModel) ConversationID() string {
	return m.conversationID
}
