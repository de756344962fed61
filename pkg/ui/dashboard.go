package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/skillport/pkg/export"
	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/shell"
	"github.com/Dicklesworthstone/skillport/pkg/stats"
)

// dashboardScreen summarizes learning progress and inbox counts.
type dashboardScreen struct {
	env           *env
	width, height int
	bookings      int
}

func newDashboardScreen(e *env) *dashboardScreen {
	return &dashboardScreen{env: e}
}

func (s *dashboardScreen) TopBar() *shell.TopBar {
	title := "Dashboard"
	if s.env.learner != "" {
		title = "Welcome back, " + s.env.learner
	}
	return &shell.TopBar{Title: title, Icon: "⌂", Subtitle: "Your learning at a glance", Action: "e: export report"}
}

func (s *dashboardScreen) Help() []helpEntry {
	return []helpEntry{{"e", "Export progress report (SVG + PNG)"}}
}

func (s *dashboardScreen) Activate() tea.Cmd {
	if s.env.store != nil {
		if bs, err := s.env.store.ListBookings(); err == nil {
			s.bookings = len(bs)
		}
	}
	return nil
}

func (s *dashboardScreen) Resize(int) {}

func (s *dashboardScreen) SetSize(width, height int) { s.width, s.height = width, height }

func (s *dashboardScreen) Capturing() bool { return false }

func (s *dashboardScreen) Back() bool { return false }

func (s *dashboardScreen) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok || !key.Matches(km, s.env.keys.Export) {
		return nil
	}
	return exportReportCmd(s.env)
}

// exportReportCmd writes the progress report in both formats.
func exportReportCmd(e *env) tea.Cmd {
	courses := append([]model.Course(nil), e.data.Courses...)
	dir, learner := e.exportDir, e.learner
	return func() tea.Msg {
		var written []string
		for _, name := range []string{"skillport-progress.svg", "skillport-progress.png"} {
			path := filepath.Join(dir, name)
			err := export.SaveProgressSnapshot(export.ProgressSnapshotOptions{
				Path:    path,
				Learner: learner,
				Courses: courses,
			})
			if err != nil {
				return toastMsg{text: "Export failed: " + err.Error(), isErr: true}
			}
			written = append(written, name)
		}
		return toastMsg{text: "Saved " + strings.Join(written, ", ")}
	}
}

func (s *dashboardScreen) View() string {
	t := s.env.theme
	p := stats.Summarize(s.env.data.Courses)

	cardWidth := clampInt((s.width-SpaceSM*3)/4, 14, 28)
	card := func(label, value string, color lipgloss.AdaptiveColor) string {
		return PanelStyle.Width(cardWidth).Padding(0, 1).Render(
			MutedStyle.Render(label) + "\n" +
				t.Renderer.NewStyle().Bold(true).Foreground(color).Render(value))
	}
	unreadMsgs, unreadNotes := s.env.inboxCounts()
	cards := []string{
		card("Enrolled", fmt.Sprintf("%d courses", p.Enrolled), t.Primary),
		card("Completed", fmt.Sprintf("%d", p.Completed), t.Open),
		card("Hours", fmt.Sprintf("%.1f / %.1f", p.HoursDone, p.HoursTotal), t.InProgress),
		card("Inbox", fmt.Sprintf("%d msg · %d notif", unreadMsgs, unreadNotes), t.Feature),
	}
	var row string
	if s.width >= (cardWidth+2)*4 {
		row = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	} else {
		row = lipgloss.JoinVertical(lipgloss.Left, cards...)
	}

	var b strings.Builder
	b.WriteString(row)
	b.WriteString("\n\n")
	b.WriteString(HeadingStyle.Render("Progress"))
	b.WriteString("  ")
	b.WriteString(MutedStyle.Render(fmt.Sprintf("mean %.0f%% · median %.0f%% · σ %.2f",
		p.Mean*100, p.Median*100, p.StdDev)))
	b.WriteString("\n")
	b.WriteString(RenderDivider(s.width))
	b.WriteString("\n")

	enrolled := stats.Enrolled(s.env.data.Courses)
	if len(enrolled) == 0 {
		b.WriteString(MutedStyle.Render("No enrolled courses yet. Browse the catalog with 2."))
	}
	barWidth := clampInt(s.width/4, 8, 30)
	titleWidth := clampInt(s.width-barWidth-8, 10, 48)
	for _, c := range enrolled {
		b.WriteString(lipgloss.NewStyle().Width(titleWidth).Render(Truncate(c.Title, titleWidth)))
		b.WriteString(" ")
		b.WriteString(RenderMiniBar(c.Progress, barWidth, t))
		b.WriteString(fmt.Sprintf(" %3.0f%%\n", c.Progress*100))
	}
	if s.bookings > 0 {
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render(fmt.Sprintf("📅 %d consultation booking(s)", s.bookings)))
	}
	return b.String()
}
