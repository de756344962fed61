package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/skillport/pkg/bookmarks"
	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/navigator"
	"github.com/Dicklesworthstone/skillport/pkg/shell"
)

// jobsScreen lists jobs from the API with a description pane.
type jobsScreen struct {
	env    *env
	nav    *navigator.Navigator[model.Job]
	all    []model.Job
	marks  bookmarks.Set
	search SearchBox

	loading bool
	loaded  bool
	err     error

	width, height int
	now           func() time.Time
}

func newJobsScreen(e *env) *jobsScreen {
	s := &jobsScreen{
		env:    e,
		search: NewSearchBox("search jobs"),
		now:    time.Now,
	}
	s.nav = navigator.New(
		func(j model.Job) string { return j.ID },
		navigator.WithBreakpoints[model.Job](e.bp),
	)
	return s
}

func (s *jobsScreen) refresh() {
	items := FuzzyFilter(s.all, s.search.Query(), func(j model.Job) string {
		return j.Title + " " + j.Company + " " + j.Location + " " + j.Type
	})
	s.nav.SetItems(items)
	if _, has := s.nav.SelectedID(); has && !s.nav.ContainsSelection() {
		s.nav.Clear()
	}
}

func (s *jobsScreen) TopBar() *shell.TopBar {
	sub := "Open positions from our partners"
	switch {
	case s.loading:
		sub = "Loading…"
	case s.loaded:
		sub = fmt.Sprintf("%d open positions", len(s.all))
	}
	return &shell.TopBar{Title: "Jobs", Icon: "💼", Subtitle: sub, Action: "r: refresh"}
}

func (s *jobsScreen) Help() []helpEntry {
	return []helpEntry{
		{"enter", "Job details"},
		{"/", "Search"},
		{"b", "Toggle bookmark"},
		{"y", "Copy application link"},
		{"r", "Refresh"},
	}
}

func (s *jobsScreen) Activate() tea.Cmd {
	if s.loaded || s.loading {
		return nil
	}
	return s.load()
}

func (s *jobsScreen) load() tea.Cmd {
	s.loading = true
	return loadJobsCmd(s.env)
}

func (s *jobsScreen) Resize(units int) { s.nav.Resize(units) }

func (s *jobsScreen) SetSize(width, height int) { s.width, s.height = width, height }

func (s *jobsScreen) Capturing() bool { return s.search.Active() }

func (s *jobsScreen) Back() bool {
	if s.search.Query() != "" && !s.nav.Class().Compact() {
		s.search.Reset()
		s.refresh()
		return true
	}
	return s.nav.Back()
}

func (s *jobsScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case jobsLoadedMsg:
		s.loading = false
		s.loaded = true
		s.err = msg.err
		s.marks = msg.marks
		if msg.err != nil {
			// A failed fetch leaves the list empty.
			s.all = nil
			s.env.jobs = nil
			s.refresh()
			return notify("Could not load jobs", true)
		}
		s.all = msg.jobs
		s.env.jobs = msg.jobs
		s.refresh()
		return nil
	case bookmarksLoadedMsg:
		if msg.err != nil {
			s.marks = bookmarks.Set{}
			return nil
		}
		s.marks = msg.marks
		return nil
	case bookmarkToggledMsg:
		if msg.err == nil && msg.bm.Type == model.BookmarkJob {
			s.marks.Jobs = setMember(s.marks.Jobs, msg.bm.TargetID, msg.on)
		}
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
	k := s.env.keys
	switch {
	case key.Matches(km, k.Search):
		return s.search.Activate()
	case key.Matches(km, k.Refresh):
		return s.load()
	case key.Matches(km, k.Bookmark):
		if j, ok := s.current(); ok {
			return toggleBookmarkCmd(s.env, model.Bookmark{Type: model.BookmarkJob, TargetID: j.ID})
		}
		return nil
	case key.Matches(km, k.Copy):
		j, ok := s.current()
		if !ok || j.URL == "" {
			return notify("No link for this job", true)
		}
		if err := copyToClipboard(j.URL); err != nil {
			return notify("Copy failed: "+err.Error(), true)
		}
		return notify("Copied "+j.URL, false)
	}
	navigatorKeys(s.nav, k, km)
	return nil
}

// current is the selected job, or the one under the cursor.
func (s *jobsScreen) current() (model.Job, bool) {
	if j, ok := s.nav.Selected(); ok {
		return j, true
	}
	items := s.nav.Items()
	if c := s.nav.Cursor(); c >= 0 && c < len(items) {
		return items[c], true
	}
	return model.Job{}, false
}

func (s *jobsScreen) View() string {
	switch {
	case s.loading && !s.loaded:
		return MutedStyle.Render("Loading jobs…")
	case s.err != nil:
		return MutedStyle.Render("Jobs are unavailable right now. Press r to retry.")
	}
	height := s.height
	var header string
	if sv := s.search.View(s.width); sv != "" {
		header = sv + "\n"
		height--
	}
	return header + s.nav.View(s.width, height, navigator.Renderer[model.Job]{
		Entry:  s.renderEntry,
		Detail: s.renderDetail,
		Empty:  "Select a job to see the description",
	})
}

func (s *jobsScreen) renderEntry(j model.Job, width int, cursor, selected bool) string {
	mark := " "
	if s.marks.Has(model.BookmarkJob, j.ID) {
		mark = lipgloss.NewStyle().Foreground(ColorWarning).Render("★")
	}
	company := Truncate(j.Company, 16)
	titleWidth := width - 2 - lipgloss.Width(company) - 1
	line := mark + " " +
		lipgloss.NewStyle().Width(max(titleWidth, 1)).Render(Truncate(j.Title, titleWidth)) +
		" " + MutedStyle.Render(company)
	return entryStyle(cursor, selected).Width(width).MaxWidth(width).Render(line)
}

func (s *jobsScreen) renderDetail(j model.Job, width, height int) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", j.Title)
	fmt.Fprintf(&md, "**%s** · %s", j.Company, j.Location)
	if j.Type != "" {
		fmt.Fprintf(&md, " · %s", j.Type)
	}
	if j.Salary != "" {
		fmt.Fprintf(&md, " · %s", j.Salary)
	}
	md.WriteString("\n\n")
	if !j.PostedAt.IsZero() {
		fmt.Fprintf(&md, "_Posted %s ago_\n\n", formatTimeRelTo(j.PostedAt, s.now()))
	}
	md.WriteString(j.Description)
	if j.URL != "" {
		fmt.Fprintf(&md, "\n\n[Apply](%s)", j.URL)
	}
	out := s.env.md.Render(md.String(), width)
	if s.marks.Has(model.BookmarkJob, j.ID) {
		out = MutedStyle.Render("★ bookmarked") + "\n" + out
	}
	lines := strings.Split(out, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
