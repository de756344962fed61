package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/skillport/pkg/bookmarks"
	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/shell"
)

// bookmarkRow is one resolved bookmark.
type bookmarkRow struct {
	bm    model.Bookmark
	title string
	sub   string
}

// bookmarksScreen lists bookmarked jobs and courses.
type bookmarksScreen struct {
	env    *env
	marks  bookmarks.Set
	rows   []bookmarkRow
	cursor int
	loaded bool

	width, height int
}

func newBookmarksScreen(e *env) *bookmarksScreen {
	return &bookmarksScreen{env: e}
}

// resolve turns the id sets into rows, jobs first.
func (s *bookmarksScreen) resolve() {
	idx := s.env.index()
	s.rows = s.rows[:0]
	for _, j := range idx.ResolveJobs(s.marks.Jobs) {
		sub := strings.TrimSpace(j.Company + " · " + j.Location)
		if j.Company == "" {
			sub = "not in the current listing"
		}
		s.rows = append(s.rows, bookmarkRow{
			bm:    model.Bookmark{Type: model.BookmarkJob, TargetID: j.ID},
			title: j.Title,
			sub:   sub,
		})
	}
	for _, c := range idx.ResolveCourses(s.marks.Courses) {
		s.rows = append(s.rows, bookmarkRow{
			bm:    model.Bookmark{Type: model.BookmarkCourse, TargetID: c.ID},
			title: c.Title,
			sub:   c.Provider,
		})
	}
	s.cursor = clampInt(s.cursor, 0, max(len(s.rows)-1, 0))
}

func (s *bookmarksScreen) TopBar() *shell.TopBar {
	sub := "Saved jobs and courses"
	if s.env.marks.Anonymous() {
		sub += " (stored on this device)"
	}
	return &shell.TopBar{Title: "Bookmarks", Icon: "★", Subtitle: sub}
}

func (s *bookmarksScreen) Help() []helpEntry {
	return []helpEntry{
		{"d", "Remove bookmark"},
		{"r", "Reload"},
	}
}

func (s *bookmarksScreen) Activate() tea.Cmd {
	cmds := []tea.Cmd{loadBookmarksCmd(s.env)}
	if len(s.env.jobs) == 0 && s.env.api != nil {
		cmds = append(cmds, loadJobsCmd(s.env))
	}
	return tea.Batch(cmds...)
}

func (s *bookmarksScreen) Resize(int) {}

func (s *bookmarksScreen) SetSize(width, height int) { s.width, s.height = width, height }

func (s *bookmarksScreen) Capturing() bool { return false }

func (s *bookmarksScreen) Back() bool { return false }

func (s *bookmarksScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case bookmarksLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.marks = bookmarks.Set{}
			s.resolve()
			return notify("Could not load bookmarks", true)
		}
		s.marks = msg.marks
		s.resolve()
		return nil
	case jobsLoadedMsg:
		// Titles for bookmarked jobs come from the listing.
		s.resolve()
		return nil
	case bookmarkToggledMsg:
		if msg.err != nil {
			return nil
		}
		switch msg.bm.Type {
		case model.BookmarkJob:
			s.marks.Jobs = setMember(s.marks.Jobs, msg.bm.TargetID, msg.on)
		case model.BookmarkCourse:
			s.marks.Courses = setMember(s.marks.Courses, msg.bm.TargetID, msg.on)
		}
		s.resolve()
		return nil
	case DatasetReloadedMsg:
		s.resolve()
		return nil
	case tea.KeyMsg:
		k := s.env.keys
		switch {
		case key.Matches(msg, k.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, k.Down):
			if s.cursor < len(s.rows)-1 {
				s.cursor++
			}
		case key.Matches(msg, k.Refresh):
			return loadBookmarksCmd(s.env)
		case msg.String() == "d", msg.String() == "x":
			if s.cursor < len(s.rows) {
				return toggleBookmarkCmd(s.env, s.rows[s.cursor].bm)
			}
		}
	}
	return nil
}

func (s *bookmarksScreen) View() string {
	if !s.loaded {
		return MutedStyle.Render("Loading bookmarks…")
	}
	if len(s.rows) == 0 {
		return MutedStyle.Render("No bookmarks yet. Press b on a job or course to save it.")
	}

	var b strings.Builder
	section := model.BookmarkType("")
	for i, r := range s.rows {
		if r.bm.Type != section {
			if section != "" {
				b.WriteString("\n")
			}
			section = r.bm.Type
			label := "Jobs"
			if section == model.BookmarkCourse {
				label = "Courses"
			}
			b.WriteString(HeadingStyle.Render(fmt.Sprintf("%s (%d)", label, s.count(section))))
			b.WriteString("\n")
		}
		titleWidth := clampInt(s.width/2, 10, s.width)
		line := "★ " + lipgloss.NewStyle().Width(titleWidth).Render(Truncate(r.title, titleWidth)) +
			" " + MutedStyle.Render(Truncate(r.sub, s.width-titleWidth-4))
		b.WriteString(entryStyle(i == s.cursor, false).Width(s.width).MaxWidth(s.width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *bookmarksScreen) count(t model.BookmarkType) int {
	n := 0
	for _, r := range s.rows {
		if r.bm.Type == t {
			n++
		}
	}
	return n
}
