package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	vp "github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/skillport/pkg/bookmarks"
	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/shell"
)

// coursesScreen is the catalog: a filterable list with a markdown detail.
type coursesScreen struct {
	env    *env
	list   list.Model
	detail vp.Model
	open   bool
	marks  bookmarks.Set

	width, height int
}

func newCoursesScreen(e *env) *coursesScreen {
	l := list.New(nil, CourseDelegate{Theme: e.theme, ShowProgress: true}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("course", "courses")

	s := &coursesScreen{env: e, list: l, detail: vp.New(0, 0)}
	s.rebuild()
	return s
}

func (s *coursesScreen) rebuild() tea.Cmd {
	items := make([]list.Item, 0, len(s.env.data.Courses))
	for _, c := range s.env.data.Courses {
		items = append(items, CourseItem{
			Course:     c,
			Bookmarked: s.marks.Has(model.BookmarkCourse, c.ID),
		})
	}
	return s.list.SetItems(items)
}

func (s *coursesScreen) selected() (model.Course, bool) {
	it, ok := s.list.SelectedItem().(CourseItem)
	if !ok {
		return model.Course{}, false
	}
	return it.Course, true
}

func (s *coursesScreen) TopBar() *shell.TopBar {
	sub := fmt.Sprintf("%d courses in the catalog", len(s.env.data.Courses))
	if s.open {
		if c, ok := s.selected(); ok {
			return &shell.TopBar{Title: c.Title, Icon: "📘", Subtitle: c.Provider, Action: "esc: back"}
		}
	}
	return &shell.TopBar{Title: "Courses", Icon: "📘", Subtitle: sub}
}

func (s *coursesScreen) Help() []helpEntry {
	return []helpEntry{
		{"enter", "Course details"},
		{"/", "Filter catalog"},
		{"b", "Toggle bookmark"},
		{"esc", "Back / clear filter"},
	}
}

func (s *coursesScreen) Activate() tea.Cmd {
	return loadBookmarksCmd(s.env)
}

func (s *coursesScreen) Resize(int) {}

func (s *coursesScreen) SetSize(width, height int) {
	s.width, s.height = width, height
	s.list.SetSize(width, height)
	s.detail.Width = width
	s.detail.Height = height
}

func (s *coursesScreen) Capturing() bool {
	return s.list.FilterState() == list.Filtering
}

func (s *coursesScreen) Back() bool {
	if s.open {
		s.open = false
		return true
	}
	if s.list.FilterState() == list.FilterApplied {
		s.list.ResetFilter()
		return true
	}
	return false
}

func (s *coursesScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DatasetReloadedMsg:
		return s.rebuild()
	case bookmarksLoadedMsg:
		if msg.err == nil {
			s.marks = msg.marks
			return s.rebuild()
		}
		return nil
	case jobsLoadedMsg:
		if msg.err == nil {
			s.marks = msg.marks
			return s.rebuild()
		}
		return nil
	case bookmarkToggledMsg:
		if msg.err == nil && msg.bm.Type == model.BookmarkCourse {
			s.marks.Courses = setMember(s.marks.Courses, msg.bm.TargetID, msg.on)
			return s.rebuild()
		}
		return nil
	case tea.KeyMsg:
		if s.Capturing() {
			break
		}
		k := s.env.keys
		switch {
		case key.Matches(msg, k.Bookmark):
			if c, ok := s.selected(); ok {
				return toggleBookmarkCmd(s.env, model.Bookmark{Type: model.BookmarkCourse, TargetID: c.ID})
			}
			return nil
		case !s.open && key.Matches(msg, k.Select):
			if c, ok := s.selected(); ok {
				s.open = true
				s.detail.SetContent(s.renderDetail(c))
				s.detail.GotoTop()
			}
			return nil
		}
		if s.open {
			var cmd tea.Cmd
			s.detail, cmd = s.detail.Update(msg)
			return cmd
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return cmd
}

func (s *coursesScreen) renderDetail(c model.Course) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", c.Title)
	fmt.Fprintf(&md, "**%s** · %s · %s · %.0f hours\n\n", c.Provider, c.Category, c.Level, c.Hours)
	if c.Enrolled {
		fmt.Fprintf(&md, "Progress: **%.0f%%**\n\n", c.Progress*100)
	}
	md.WriteString(c.Description)
	if len(c.Tags) > 0 {
		md.WriteString("\n\n")
		for _, t := range c.Tags {
			fmt.Fprintf(&md, "`%s` ", t)
		}
	}
	out := s.env.md.Render(md.String(), s.width)
	if s.marks.Has(model.BookmarkCourse, c.ID) {
		out = MutedStyle.Render("★ bookmarked") + "\n" + out
	}
	return out
}

func (s *coursesScreen) View() string {
	if s.open {
		return s.detail.View()
	}
	if len(s.list.Items()) == 0 {
		return MutedStyle.Render("The catalog is empty.")
	}
	return s.list.View()
}

// setMember adds or removes id from ids.
func setMember(ids []string, id string, on bool) []string {
	out := make([]string, 0, len(ids)+1)
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	if on {
		out = append(out, id)
	}
	return out
}
