package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/shell"
)

// profileDraft holds form-bound fields.
type profileDraft struct {
	headline string
	summary  string
	location string
	skills   string
	open     bool
	confirm  bool
}

// profileScreen shows and edits the job profile through the API.
type profileScreen struct {
	env     *env
	profile *model.JobProfile
	loading bool
	loaded  bool
	failed  bool

	form     *huh.Form
	deleting bool
	draft    profileDraft

	width, height int
}

func newProfileScreen(e *env) *profileScreen {
	return &profileScreen{env: e}
}

func (s *profileScreen) TopBar() *shell.TopBar {
	tb := &shell.TopBar{Title: "Job Profile", Icon: "👤", Subtitle: "What employers see"}
	if s.env.authed && s.form == nil {
		tb.Action = "e: edit"
	}
	return tb
}

func (s *profileScreen) Help() []helpEntry {
	return []helpEntry{
		{"e", "Create or edit profile"},
		{"D", "Delete profile"},
		{"r", "Reload"},
	}
}

func (s *profileScreen) Activate() tea.Cmd {
	if !s.env.authed || s.env.api == nil || s.loading {
		return nil
	}
	s.loading = true
	return loadProfileCmd(s.env)
}

func (s *profileScreen) Resize(int) {}

func (s *profileScreen) SetSize(width, height int) { s.width, s.height = width, height }

func (s *profileScreen) Capturing() bool { return s.form != nil }

func (s *profileScreen) Back() bool { return false }

func (s *profileScreen) openEditor() tea.Cmd {
	s.draft = profileDraft{}
	if p := s.profile; p != nil {
		s.draft = profileDraft{
			headline: p.Headline,
			summary:  p.Summary,
			location: p.Location,
			skills:   strings.Join(p.Skills, ", "),
			open:     p.OpenToWork,
		}
	}
	s.deleting = false
	s.form = newEmbeddedForm(s.width,
		huh.NewGroup(
			huh.NewInput().Title("Headline").Placeholder("Backend engineer learning Go").
				Value(&s.draft.headline).Validate(required("headline")),
			huh.NewInput().Title("Location").Value(&s.draft.location).Validate(required("location")),
			huh.NewInput().Title("Skills").Description("comma separated").Value(&s.draft.skills),
			huh.NewText().Title("Summary").CharLimit(1000).Value(&s.draft.summary),
			huh.NewConfirm().Title("Open to work?").Value(&s.draft.open),
		),
	)
	return s.form.Init()
}

func (s *profileScreen) openDelete() tea.Cmd {
	if s.profile == nil {
		return notify("No profile to delete", true)
	}
	s.draft.confirm = false
	s.deleting = true
	s.form = newEmbeddedForm(s.width,
		huh.NewGroup(
			huh.NewConfirm().Title("Delete your job profile?").
				Affirmative("Delete").Negative("Keep").Value(&s.draft.confirm),
		),
	)
	return s.form.Init()
}

func (s *profileScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		s.loading = false
		s.loaded = true
		s.failed = msg.err != nil
		s.profile = msg.profile
		if msg.err != nil {
			return notify("Could not load profile", true)
		}
		return nil
	case profileSavedMsg:
		if msg.err != nil {
			return notify("Save failed: "+msg.err.Error(), true)
		}
		s.profile = msg.profile
		s.failed = false
		return notify("Profile saved", false)
	case profileDeletedMsg:
		if msg.err != nil {
			return notify("Delete failed: "+msg.err.Error(), true)
		}
		s.profile = nil
		return notify("Profile deleted", false)
	}

	if s.form != nil {
		f, cmd, outcome := updateForm(s.form, msg)
		s.form = f
		switch outcome {
		case formCancelled:
			s.form = nil
			return nil
		case formDone:
			s.form = nil
			return tea.Batch(cmd, s.submit())
		}
		return cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || !s.env.authed {
		return nil
	}
	switch km.String() {
	case "e":
		return s.openEditor()
	case "D":
		return s.openDelete()
	case "r":
		s.loading = false
		return s.Activate()
	}
	return nil
}

// submit sends the finished form to the API.
func (s *profileScreen) submit() tea.Cmd {
	if s.deleting {
		s.deleting = false
		if !s.draft.confirm {
			return nil
		}
		return deleteProfileCmd(s.env)
	}
	p := model.JobProfile{
		Headline:   strings.TrimSpace(s.draft.headline),
		Summary:    strings.TrimSpace(s.draft.summary),
		Location:   strings.TrimSpace(s.draft.location),
		Skills:     model.ParseSkills(s.draft.skills),
		OpenToWork: s.draft.open,
	}
	if err := p.Validate(); err != nil {
		return notify(err.Error(), true)
	}
	return saveProfileCmd(s.env, p)
}

func (s *profileScreen) View() string {
	if s.form != nil {
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Top, s.form.View())
	}
	if !s.env.authed {
		return MutedStyle.Render("Sign in to manage your job profile.\n\nSet api.token in the config file or SKILLPORT_API_TOKEN.")
	}
	switch {
	case s.loading && !s.loaded:
		return MutedStyle.Render("Loading profile…")
	case s.failed:
		return MutedStyle.Render("The profile service is unavailable. Press r to retry.")
	case s.profile == nil:
		return MutedStyle.Render("You have no job profile yet. Press e to create one.")
	}

	t := s.env.theme
	p := s.profile
	var b strings.Builder
	b.WriteString(t.Renderer.NewStyle().Bold(true).Foreground(t.Primary).Render(p.Headline))
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render("📍 " + p.Location))
	if p.OpenToWork {
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Render("● open to work"))
	}
	b.WriteString("\n")
	b.WriteString(RenderDivider(s.width))
	b.WriteString("\n")
	if p.Summary != "" {
		b.WriteString(s.env.md.Render(p.Summary, s.width))
		b.WriteString("\n\n")
	}
	if len(p.Skills) > 0 {
		chips := make([]string, len(p.Skills))
		for i, sk := range p.Skills {
			chips[i] = skillChip.Render(sk)
		}
		b.WriteString(lipgloss.NewStyle().Width(s.width).Render(strings.Join(chips, " ")))
		b.WriteString("\n")
	}
	if !p.UpdatedAt.IsZero() {
		b.WriteString("\n")
		b.WriteString(HintStyle.Render("Updated " + p.UpdatedAt.Local().Format("Jan 2 15:04")))
	}
	return b.String()
}

var skillChip = lipgloss.NewStyle().Foreground(ColorInfo).Background(ColorBgSubtle).Padding(0, 1)
