package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the color palette and derived styles for the outline view.
// Styles are built from a lipgloss renderer so tests can pass a renderer
// detached from the real terminal.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Folder    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor

	// Styles
	Base       lipgloss.Style
	Selected   lipgloss.Style
	FolderRow  lipgloss.Style
	LinkZone   lipgloss.Style
	Header     lipgloss.Style
	Footer     lipgloss.Style
	StatusLine lipgloss.Style
}

// DefaultTheme returns the standard dark-friendly theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#1a1a2e", Dark: "#cdd6f4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#4a4a5e", Dark: "#9a9ab0"},
		Folder:    lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"},
		Muted:     lipgloss.AdaptiveColor{Light: "#8c8fa1", Dark: "#6c7086"},
		Highlight: lipgloss.AdaptiveColor{Light: "#dce0e8", Dark: "#313244"},
		Border:    lipgloss.AdaptiveColor{Light: "#ccd0da", Dark: "#45475a"},
	}

	t.Base = r.NewStyle().Foreground(t.Primary)
	t.Selected = r.NewStyle().Background(t.Highlight).Bold(true)
	t.FolderRow = r.NewStyle().Foreground(t.Folder).Bold(true)
	t.LinkZone = r.NewStyle().Foreground(t.Subtext).Underline(true)
	t.Header = r.NewStyle().Foreground(t.Folder).Bold(true)
	t.Footer = r.NewStyle().Foreground(t.Muted)
	t.StatusLine = r.NewStyle().Foreground(t.Subtext).Italic(true)
	return t
}
