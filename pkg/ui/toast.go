package ui

import (
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 3 * time.Second

// maxToasts caps the stack; the oldest is dropped first.
const maxToasts = 3

var toastSeq atomic.Uint64

// Toast is a short-lived status line.
type Toast struct {
	ID    uint64
	Text  string
	Error bool
}

// toastExpiredMsg removes the toast with ID.
type toastExpiredMsg struct{ ID uint64 }

// NewToast creates a toast and the command that later expires it.
func NewToast(text string, isErr bool) (Toast, tea.Cmd) {
	t := Toast{ID: toastSeq.Add(1), Text: text, Error: isErr}
	return t, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{ID: t.ID}
	})
}

func pushToast(toasts []Toast, t Toast) []Toast {
	toasts = append(toasts, t)
	if len(toasts) > maxToasts {
		toasts = toasts[len(toasts)-maxToasts:]
	}
	return toasts
}

func removeToast(toasts []Toast, id uint64) []Toast {
	out := toasts[:0]
	for _, t := range toasts {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// RenderToasts renders toasts bottom-aligned, newest last.
func RenderToasts(toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := toastInfoStyle
		icon := "✓"
		if t.Error {
			style = toastErrorStyle
			icon = "✗"
		}
		lines = append(lines, style.MaxWidth(width).Render(Truncate(icon+" "+t.Text, width-2)))
	}
	return strings.Join(lines, "\n")
}

var (
	toastInfoStyle  = lipgloss.NewStyle().Foreground(ColorBg).Background(ColorSuccess).Padding(0, 1)
	toastErrorStyle = lipgloss.NewStyle().Foreground(ColorText).Background(ColorDanger).Padding(0, 1)
)
