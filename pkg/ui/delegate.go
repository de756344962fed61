package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CourseDelegate renders one catalog row per course.
type CourseDelegate struct {
	Theme        Theme
	ShowProgress bool // Show the progress column if true
}

func (d CourseDelegate) Height() int {
	return 1
}

func (d CourseDelegate) Spacing() int {
	return 0
}

func (d CourseDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d CourseDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(CourseItem)
	if !ok {
		return
	}

	var baseStyle lipgloss.Style
	if index == m.Index() {
		baseStyle = SelectedItemStyle
	} else {
		baseStyle = ItemStyle
	}

	mark := colMarkStyle.Render(" ")
	if i.Bookmarked {
		mark = colMarkStyle.Foreground(ColorWarning).Render("★")
	}
	level := colLevelStyle.Render(RenderLevelBadge(i.Course.Level))
	hours := colHoursStyle.Render(fmt.Sprintf("%4.0fh", i.Course.Hours))

	progress := ""
	extraWidth := 0
	if d.ShowProgress {
		if i.Course.Enrolled {
			progress = colProgressStyle.Render(RenderMiniBar(i.Course.Progress, 8, d.Theme) + fmt.Sprintf(" %3.0f%%", i.Course.Progress*100))
		} else {
			progress = colProgressStyle.Render("")
		}
		extraWidth = 14
	}

	provider := colProviderStyle.Render(Truncate(i.Course.Provider, 14))

	// mark(2) + level(4) + hours(6) + provider(16) + extra + gaps
	fixedWidth := 2 + 4 + 6 + 16 + extraWidth + 4
	availableWidth := m.Width() - fixedWidth - 2
	if availableWidth < 10 {
		availableWidth = 10
	}

	titleStyle := colTitleStyle.Width(availableWidth).MaxWidth(availableWidth)
	if index == m.Index() {
		titleStyle = titleStyle.Foreground(ColorPrimary).Bold(true)
	}
	title := titleStyle.Render(Truncate(i.Course.Title, availableWidth))

	var row string
	if d.ShowProgress {
		row = lipgloss.JoinHorizontal(lipgloss.Left, mark, level, title, provider, hours, progress)
	} else {
		row = lipgloss.JoinHorizontal(lipgloss.Left, mark, level, title, provider, hours)
	}
	fmt.Fprint(w, baseStyle.Render(row))
}

var (
	colMarkStyle     = lipgloss.NewStyle().Width(2)
	colLevelStyle    = lipgloss.NewStyle().Width(4)
	colTitleStyle    = lipgloss.NewStyle().PaddingRight(1)
	colProviderStyle = lipgloss.NewStyle().Width(16).Foreground(ColorSubtext)
	colHoursStyle    = lipgloss.NewStyle().Width(6).Foreground(ColorMuted)
	colProgressStyle = lipgloss.NewStyle().Width(14).PaddingLeft(1)
)
