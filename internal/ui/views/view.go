package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"scrollgrip/internal/host"
)

// Frame contains all the state needed for rendering one screen
type Frame struct {
	Width  int
	Height int
	// Content is the rendered viewport, one line per row
	Content     string
	ContentRect host.Rect
	// Bars holds the visible scrollbars only
	Bars        []Bar
	Status      string
	StatusError bool
	ShowStatus  bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
	bars   *BarRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles, strategy Strategy) *Renderer {
	return &Renderer{
		styles: styles,
		bars:   NewBarRenderer(styles, strategy),
	}
}

// Bars returns the bar renderer
func (r *Renderer) Bars() *BarRenderer {
	return r.bars
}

// Styles returns the styles in use
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render composes content, scrollbars and the status line
func (r *Renderer) Render(f Frame) string {
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}
	rows := f.Height
	if f.ShowStatus {
		rows--
	}
	blank := strings.Repeat(" ", f.Width)
	screen := make([]string, max(rows, 0))
	for i := range screen {
		screen[i] = blank
	}

	cr := f.ContentRect
	for i, line := range strings.Split(f.Content, "\n") {
		y := int(cr.Y) + i
		if y < 0 || y >= len(screen) || i >= int(cr.Height) {
			continue
		}
		screen[y] = overlay(screen[y], int(cr.X), fit(line, int(cr.Width)), f.Width)
	}

	for _, b := range f.Bars {
		cells := r.bars.Cells(b)
		if b.State.Axis == host.Y {
			x := int(b.Track.X)
			for i, cell := range cells {
				y := int(b.Track.Y) + i
				if y >= 0 && y < len(screen) {
					screen[y] = overlay(screen[y], x, cell, f.Width)
				}
			}
			continue
		}
		y := int(b.Track.Y)
		if y >= 0 && y < len(screen) {
			screen[y] = overlay(screen[y], int(b.Track.X), strings.Join(cells, ""), f.Width)
		}
	}

	if f.ShowStatus {
		style := r.styles.Status
		if f.StatusError {
			style = r.styles.StatusError
		}
		screen = append(screen, style.Render(fit(f.Status, f.Width)))
	}
	return strings.Join(screen, "\n")
}

// fit pads or cuts s to exactly width cells
func fit(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Cut(s, 0, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// overlay writes piece over row starting at cell x
func overlay(row string, x int, piece string, width int) string {
	if x < 0 || x >= width {
		return row
	}
	pw := min(lipgloss.Width(piece), width-x)
	return ansi.Cut(row, 0, x) + ansi.Cut(piece, 0, pw) + ansi.Cut(row, x+pw, width)
}
