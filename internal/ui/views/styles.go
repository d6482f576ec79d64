package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Thumb       lipgloss.Style
	ThumbActive lipgloss.Style
	Track       lipgloss.Style
	Marked      lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Dim         lipgloss.Style
	Heading     lipgloss.Style
}

// Palette holds the configurable colors
type Palette struct {
	Thumb      string
	ThumbHover string
	Track      string
}

// DefaultPalette is used for every color left empty in the config
var DefaultPalette = Palette{
	Thumb:      "244",
	ThumbHover: "252",
	Track:      "236",
}

// NewStyles creates a new Styles instance from a palette
func NewStyles(p Palette) *Styles {
	if p.Thumb == "" {
		p.Thumb = DefaultPalette.Thumb
	}
	if p.ThumbHover == "" {
		p.ThumbHover = DefaultPalette.ThumbHover
	}
	if p.Track == "" {
		p.Track = DefaultPalette.Track
	}
	return &Styles{
		Thumb:       lipgloss.NewStyle().Background(lipgloss.Color(p.Thumb)).Foreground(lipgloss.Color(p.Thumb)),
		ThumbActive: lipgloss.NewStyle().Background(lipgloss.Color(p.ThumbHover)).Foreground(lipgloss.Color(p.ThumbHover)),
		Track:       lipgloss.NewStyle().Background(lipgloss.Color(p.Track)).Foreground(lipgloss.Color("241")),
		Marked:      lipgloss.NewStyle().Reverse(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Dim:         lipgloss.NewStyle().Faint(true),
		Heading:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
	}
}
