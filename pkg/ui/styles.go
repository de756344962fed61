package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/skillport/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBg          = lipgloss.Color("#282A36")
	ColorBgSubtle    = lipgloss.Color("#363949")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	ColorPrimary   = lipgloss.Color("#BD93F9")
	ColorSecondary = lipgloss.Color("#6272A4")
	ColorInfo      = lipgloss.Color("#8BE9FD")
	ColorSuccess   = lipgloss.Color("#50FA7B")
	ColorWarning   = lipgloss.Color("#FFB86C")
	ColorDanger    = lipgloss.Color("#FF5555")
	ColorAccent    = lipgloss.Color("#FF79C6")

	// Level colors
	ColorLevelBeginner     = lipgloss.Color("#50FA7B")
	ColorLevelIntermediate = lipgloss.Color("#F1FA8C")
	ColorLevelAdvanced     = lipgloss.Color("#FF5555")

	ColorLevelBeginnerBg     = lipgloss.Color("#1A3D2A")
	ColorLevelIntermediateBg = lipgloss.Color("#3D3D1A")
	ColorLevelAdvancedBg     = lipgloss.Color("#3D1A1A")
)

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES
// ══════════════════════════════════════════════════════════════════════════════

var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	ItemStyle         = lipgloss.NewStyle().PaddingLeft(1)
	SelectedItemStyle = lipgloss.NewStyle().PaddingLeft(1).Background(ColorBgHighlight)

	HeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	HintStyle    = lipgloss.NewStyle().Faint(true)
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGES
// ══════════════════════════════════════════════════════════════════════════════

// RenderLevelBadge returns a styled course level badge.
func RenderLevelBadge(level model.Level) string {
	var fg, bg lipgloss.Color
	var label string

	switch level {
	case model.LevelBeginner:
		fg, bg, label = ColorLevelBeginner, ColorLevelBeginnerBg, "BEG"
	case model.LevelIntermediate:
		fg, bg, label = ColorLevelIntermediate, ColorLevelIntermediateBg, "INT"
	case model.LevelAdvanced:
		fg, bg, label = ColorLevelAdvanced, ColorLevelAdvancedBg, "ADV"
	default:
		fg, bg, label = ColorMuted, ColorBgSubtle, "???"
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Bold(true).
		Render(label)
}

// NotificationIcon returns the glyph and color for a notification kind.
func NotificationIcon(kind model.NotificationKind) (string, lipgloss.Color) {
	switch kind {
	case model.KindCourse:
		return "📘", ColorInfo
	case model.KindMessage:
		return "💬", ColorPrimary
	case model.KindJob:
		return "💼", ColorWarning
	case model.KindSystem:
		return "⚙", ColorMuted
	default:
		return "•", ColorMuted
	}
}

// RenderUnreadDot renders the unread marker, or a space of equal width.
func RenderUnreadDot(unread bool) string {
	if !unread {
		return " "
	}
	return lipgloss.NewStyle().Foreground(ColorAccent).Render("●")
}

// ══════════════════════════════════════════════════════════════════════════════
// METRIC VISUALIZATION
// ══════════════════════════════════════════════════════════════════════════════

// RenderMiniBar renders a mini horizontal bar for a value between 0 and 1
func RenderMiniBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}

	var barColor lipgloss.AdaptiveColor
	if value >= 0.75 {
		barColor = t.Open
	} else if value >= 0.5 {
		barColor = t.Feature
	} else if value >= 0.25 {
		barColor = t.InProgress
	} else {
		barColor = t.Secondary
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(barColor).Render(bar)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND TEXT
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}

// Truncate shortens s to width cells with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// formatTimeRelTo formats t relative to now ("5m", "3h", "2d", or a date).
func formatTimeRelTo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}
