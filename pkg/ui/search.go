package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// SearchBox is the "/" filter input shared by the list screens.
type SearchBox struct {
	input  textinput.Model
	active bool
}

// NewSearchBox returns an inactive search box.
func NewSearchBox(placeholder string) SearchBox {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	return SearchBox{input: ti}
}

// Activate focuses the input.
func (s *SearchBox) Activate() tea.Cmd {
	s.active = true
	return s.input.Focus()
}

// Active reports whether the box captures keys.
func (s SearchBox) Active() bool {
	return s.active
}

// Query returns the current query.
func (s SearchBox) Query() string {
	return s.input.Value()
}

// Reset clears the query and deactivates the box.
func (s *SearchBox) Reset() {
	s.input.SetValue("")
	s.input.Blur()
	s.active = false
}

// Update feeds a key to the input. enter keeps the query and leaves the box;
// esc clears it. changed reports whether the query text changed.
func (s *SearchBox) Update(msg tea.Msg) (cmd tea.Cmd, changed bool) {
	before := s.input.Value()
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			s.input.Blur()
			s.active = false
			return nil, false
		case "esc":
			s.Reset()
			return nil, before != ""
		}
	}
	s.input, cmd = s.input.Update(msg)
	return cmd, s.input.Value() != before
}

// View renders the input, or the frozen query when inactive.
func (s SearchBox) View(width int) string {
	if s.active {
		s.input.Width = clampInt(width-4, 4, 60)
		return s.input.View()
	}
	if q := s.input.Value(); q != "" {
		return MutedStyle.Render(Truncate("/ "+q+"  (esc to clear)", width))
	}
	return ""
}

// FuzzyFilter returns the items whose key matches query, best match first.
// An empty query returns items unchanged.
func FuzzyFilter[T any](items []T, query string, key func(T) string) []T {
	if query == "" {
		return items
	}
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = key(it)
	}
	matches := fuzzy.Find(query, keys)
	out := make([]T, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return out
}
