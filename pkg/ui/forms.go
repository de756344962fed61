package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Dicklesworthstone/skillport/pkg/model"
)

// formWidth caps embedded huh forms.
const formWidth = 56

// newEmbeddedForm prepares a huh form for use inside the app. Submit and
// cancel are detected through the form state instead of tea.Quit.
func newEmbeddedForm(width int, groups ...*huh.Group) *huh.Form {
	f := huh.NewForm(groups...).
		WithTheme(huh.ThemeDracula()).
		WithShowHelp(true).
		WithWidth(clampInt(width, MinBoxWidth, formWidth))
	f.SubmitCmd = nil
	f.CancelCmd = nil
	return f
}

// formOutcome is the result of feeding a message to an embedded form.
type formOutcome int

const (
	formRunning formOutcome = iota
	formDone
	formCancelled
)

// updateForm forwards msg to f. esc cancels; huh itself only aborts on
// ctrl+c, which the app claims for quitting.
func updateForm(f *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd, formOutcome) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		return f, nil, formCancelled
	}
	m, cmd := f.Update(msg)
	if next, ok := m.(*huh.Form); ok {
		f = next
	}
	switch f.State {
	case huh.StateCompleted:
		return f, cmd, formDone
	case huh.StateAborted:
		return f, cmd, formCancelled
	}
	return f, cmd, formRunning
}

// required returns a huh validator rejecting blank input.
func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s: %w", field, model.ErrRequired)
		}
		return nil
	}
}
