package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Dicklesworthstone/skillport/pkg/model"
	"github.com/Dicklesworthstone/skillport/pkg/shell"
)

// consultationsScreen books sessions with consultants. Bookings are stored
// locally.
type consultationsScreen struct {
	env      *env
	cursor   int
	bookings []model.Booking

	form  *huh.Form
	draft model.Booking

	width, height int
}

func newConsultationsScreen(e *env) *consultationsScreen {
	return &consultationsScreen{env: e}
}

func (s *consultationsScreen) consultants() []model.Consultant {
	return s.env.data.Consultants
}

func (s *consultationsScreen) TopBar() *shell.TopBar {
	return &shell.TopBar{
		Title:    "Consultations",
		Icon:     "📅",
		Subtitle: "Book time with a mentor",
		Action:   fmt.Sprintf("%d booked", len(s.bookings)),
	}
}

func (s *consultationsScreen) Help() []helpEntry {
	return []helpEntry{
		{"enter", "Book a session"},
		{"esc", "Cancel booking form"},
	}
}

func (s *consultationsScreen) Activate() tea.Cmd {
	s.reload()
	return nil
}

func (s *consultationsScreen) reload() {
	if s.env.store == nil {
		return
	}
	bs, err := s.env.store.ListBookings()
	if err != nil {
		log.Printf("Warning: list bookings: %v", err)
		return
	}
	s.bookings = bs
}

func (s *consultationsScreen) Resize(int) {}

func (s *consultationsScreen) SetSize(width, height int) { s.width, s.height = width, height }

func (s *consultationsScreen) Capturing() bool { return s.form != nil }

func (s *consultationsScreen) Back() bool { return false }

// openForm starts a booking with the consultant under the cursor. Slots
// that are already booked are not offered.
func (s *consultationsScreen) openForm() tea.Cmd {
	cs := s.consultants()
	if s.cursor >= len(cs) {
		return nil
	}
	c := cs[s.cursor]

	var opts []huh.Option[string]
	for _, slot := range c.Slots {
		if taken, err := s.env.store.SlotTaken(c.ID, slot); err == nil && taken {
			continue
		}
		opts = append(opts, huh.NewOption(slot, slot))
	}
	if len(opts) == 0 {
		return notify(c.Name+" has no free slots", true)
	}

	s.draft = model.Booking{ConsultantID: c.ID}
	s.form = newEmbeddedForm(s.width,
		huh.NewGroup(
			huh.NewNote().Title("Book "+c.Name).Description(c.Expertise),
			huh.NewInput().Title("Your name").Value(&s.draft.Name).Validate(required("name")),
			huh.NewInput().Title("Email").Value(&s.draft.Email).Validate(model.ValidateEmail),
			huh.NewInput().Title("Topic").Placeholder("What do you want to discuss?").
				Value(&s.draft.Topic).Validate(required("topic")),
			huh.NewSelect[string]().Title("Slot").Options(opts...).Value(&s.draft.Slot),
			huh.NewText().Title("Notes").CharLimit(500).Value(&s.draft.Notes),
		),
	)
	return s.form.Init()
}

func (s *consultationsScreen) Update(msg tea.Msg) tea.Cmd {
	if s.form != nil {
		f, cmd, outcome := updateForm(s.form, msg)
		s.form = f
		switch outcome {
		case formCancelled:
			s.form = nil
			return notify("Booking cancelled", false)
		case formDone:
			s.form = nil
			return tea.Batch(cmd, s.book())
		}
		return cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	k := s.env.keys
	switch {
	case key.Matches(km, k.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(km, k.Down):
		if s.cursor < len(s.consultants())-1 {
			s.cursor++
		}
	case key.Matches(km, k.Select):
		return s.openForm()
	}
	return nil
}

func (s *consultationsScreen) book() tea.Cmd {
	b := s.draft
	if taken, err := s.env.store.SlotTaken(b.ConsultantID, b.Slot); err == nil && taken {
		return notify("That slot was just taken", true)
	}
	if err := s.env.store.CreateBooking(&b); err != nil {
		log.Printf("Warning: create booking: %v", err)
		return notify("Booking failed: "+err.Error(), true)
	}
	s.reload()
	return notify("Booked "+b.Slot, false)
}

func (s *consultationsScreen) View() string {
	if s.form != nil {
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Top, s.form.View())
	}
	cs := s.consultants()
	if len(cs) == 0 {
		return MutedStyle.Render("No consultants available.")
	}

	t := s.env.theme
	var b strings.Builder
	for i, c := range cs {
		name := t.Renderer.NewStyle().Bold(true).Render(c.Name)
		line := name + "  " + MutedStyle.Render(c.Expertise)
		b.WriteString(entryStyle(i == s.cursor, false).Width(s.width).MaxWidth(s.width).Render(ansi.Truncate(line, s.width, "…")))
		b.WriteString("\n")
		if i == s.cursor && c.Bio != "" {
			b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Width(s.width).Foreground(ColorSubtext).Render(c.Bio))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(HeadingStyle.Render("Your bookings"))
	b.WriteString("\n")
	if len(s.bookings) == 0 {
		b.WriteString(MutedStyle.Render("Nothing booked yet. Press enter on a consultant."))
		return b.String()
	}
	names := map[string]string{}
	for _, c := range cs {
		names[c.ID] = c.Name
	}
	for _, bk := range s.bookings {
		who := names[bk.ConsultantID]
		if who == "" {
			who = bk.ConsultantID
		}
		b.WriteString(Truncate(fmt.Sprintf("• %s with %s: %s", bk.Slot, who, bk.Topic), s.width))
		b.WriteString("\n")
	}
	return b.String()
}
