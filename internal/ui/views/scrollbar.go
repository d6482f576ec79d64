package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"scrollgrip/internal/domain"
	"scrollgrip/internal/host"
)

// Strategy is how bars are drawn
type Strategy int

const (
	// Color paints track and thumb cells with background colors
	Color Strategy = iota
	// Glyph draws them with ascii characters for terminals without color
	Glyph
)

// DetectStrategy picks the bar strategy for a terminal color profile
func DetectStrategy(profile termenv.Profile) Strategy {
	if profile == termenv.Ascii {
		return Glyph
	}
	return Color
}

// Bar is everything needed to draw one scrollbar
type Bar struct {
	Track host.Rect
	State domain.AxisState
}

// ThumbSpan converts the fractional thumb geometry into the track cells
// [from, to) it covers. A thumb with any extent covers at least one cell.
func ThumbSpan(position, size float64, cells int) (from, to int) {
	if cells <= 0 || size <= 0 {
		return 0, 0
	}
	from = int(math.Round(position))
	to = int(math.Round(position + size))
	if to <= from {
		to = from + 1
	}
	if to > cells {
		to = cells
		from = min(from, to-1)
	}
	from = max(from, 0)
	return from, to
}

// BarRenderer draws tracks and thumbs
type BarRenderer struct {
	styles   *Styles
	strategy Strategy
}

// NewBarRenderer creates a bar renderer
func NewBarRenderer(styles *Styles, strategy Strategy) *BarRenderer {
	return &BarRenderer{styles: styles, strategy: strategy}
}

// Cells returns the cells of a bar along its track, one string per cell,
// each as wide as the track is thick
func (r *BarRenderer) Cells(b Bar) []string {
	axis := b.State.Axis
	length := int(b.Track.Extent(axis))
	thick := int(b.Track.Extent(other(axis)))
	if length <= 0 || thick <= 0 {
		return nil
	}
	from, to := ThumbSpan(b.State.ThumbPosition, b.State.ThumbSize, length)

	thumb, track := r.thumbCell(b, thick), r.trackCell(axis, thick)
	cells := make([]string, length)
	for i := range cells {
		if i >= from && i < to {
			cells[i] = thumb
		} else {
			cells[i] = track
		}
	}
	return cells
}

func (r *BarRenderer) thumbCell(b Bar, thick int) string {
	if r.strategy == Glyph {
		return strings.Repeat("#", thick)
	}
	style := r.styles.Thumb
	if b.State.Hovered || b.State.Dragging {
		style = r.styles.ThumbActive
	}
	return style.Render(strings.Repeat(" ", thick))
}

func (r *BarRenderer) trackCell(axis host.Axis, thick int) string {
	if r.strategy == Glyph {
		if axis == host.Y {
			return strings.Repeat("|", thick)
		}
		return strings.Repeat("-", thick)
	}
	return r.styles.Track.Render(strings.Repeat(" ", thick))
}

// Thickness renders a sample of each bar and measures it. Width is the
// vertical bar's thickness and Height the horizontal bar's.
func (r *BarRenderer) Thickness() host.Size {
	y := r.trackCell(host.Y, 1)
	x := lipgloss.JoinVertical(lipgloss.Left, r.trackCell(host.X, 1))
	return host.Size{
		Width:  float64(lipgloss.Width(y)),
		Height: float64(lipgloss.Height(x)),
	}
}

// Gauge measures the gutter the bars take out of an area
type Gauge struct {
	Bars  *BarRenderer
	Outer host.Size
}

func (g Gauge) OuterSize() host.Size {
	return g.Outer
}

func (g Gauge) InnerSize() host.Size {
	t := g.Bars.Thickness()
	return host.Size{
		Width:  max(0, g.Outer.Width-t.Width),
		Height: max(0, g.Outer.Height-t.Height),
	}
}

func other(axis host.Axis) host.Axis {
	if axis == host.X {
		return host.Y
	}
	return host.X
}
