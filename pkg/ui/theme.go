package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme carries the adaptive palette shared by every screen.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary    lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Subtext    lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
	Highlight  lipgloss.AdaptiveColor
	Open       lipgloss.AdaptiveColor // success
	Feature    lipgloss.AdaptiveColor // warning
	InProgress lipgloss.AdaptiveColor // info
	Danger     lipgloss.AdaptiveColor

	Base lipgloss.Style
}

// DefaultTheme builds the theme for a renderer; nil uses the default renderer.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := Theme{
		Renderer:   r,
		Primary:    lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: string(ColorPrimary)},
		Secondary:  lipgloss.AdaptiveColor{Light: "#555555", Dark: string(ColorSecondary)},
		Subtext:    lipgloss.AdaptiveColor{Light: "#666666", Dark: string(ColorSubtext)},
		Border:     lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: string(ColorBgHighlight)},
		Highlight:  lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: string(ColorBgHighlight)},
		Open:       lipgloss.AdaptiveColor{Light: "#00A800", Dark: string(ColorSuccess)},
		Feature:    lipgloss.AdaptiveColor{Light: "#D46A00", Dark: string(ColorWarning)},
		InProgress: lipgloss.AdaptiveColor{Light: "#0077AA", Dark: string(ColorInfo)},
		Danger:     lipgloss.AdaptiveColor{Light: "#CC0000", Dark: string(ColorDanger)},
	}
	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: string(ColorText)})
	return t
}
