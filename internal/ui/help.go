package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Scrolling", []helpEntry{
		{"↑/↓, j/k", "Scroll one line"},
		{"←/→, h/l", "Scroll four columns"},
		{"PgUp/PgDn, b/space", "Smooth scroll one page"},
		{"g/G, Home/End", "Smooth scroll to top/bottom"},
		{"0/$", "Scroll to inline start/end"},
		{"wheel", "Scroll three lines, shift for columns"},
	}},
	{"Headings", []helpEntry{
		{"n", "Next heading"},
		{"N", "Previous heading"},
	}},
	{"Search", []helpEntry{
		{"/", "Search the document"},
		{"n/N", "Next/previous match while a search is active"},
		{"esc", "Clear the search"},
	}},
	{"Mouse", []helpEntry{
		{"drag thumb", "Scroll proportionally"},
		{"hold track", "Step one page at a time"},
		{"click line", "Mark or unmark the line"},
	}},
	{"Other", []helpEntry{
		{"r", "Toggle text direction"},
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// renderHelpContent renders the help information
func (r *HelpRenderer) renderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	keyWidth := 0
	for _, s := range helpSections {
		for _, e := range s.entries {
			keyWidth = max(keyWidth, lipgloss.Width(e.keys))
		}
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("ScrollGrip Help"))
	help.WriteString("\n")
	for _, s := range helpSections {
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, e := range s.entries {
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(e.keys))
			help.WriteString(fmt.Sprintf("  %s%s  %s\n", keyStyle.Render(e.keys), pad, descStyle.Render(e.desc)))
		}
	}
	return strings.TrimRight(help.String(), "\n")
}
