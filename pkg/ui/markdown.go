package ui

import (
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer caches a glamour renderer per wrap width.
type MarkdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer uses the named glamour standard style ("dark", "light", "notty").
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" {
		style = "dark"
	}
	return &MarkdownRenderer{style: style}
}

// Render renders md wrapped to width. Failures fall back to the raw text.
func (r *MarkdownRenderer) Render(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	if r.renderer == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithWordWrap(width),
			glamour.WithStandardStyle(r.style),
		)
		if err != nil {
			log.Printf("Warning: markdown renderer: %v", err)
			return md
		}
		r.renderer = tr
		r.width = width
	}
	out, err := r.renderer.Render(md)
	if err != nil {
		log.Printf("Warning: render markdown: %v", err)
		return md
	}
	return strings.Trim(out, "\n")
}
