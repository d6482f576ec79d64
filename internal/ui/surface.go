package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"scrollgrip/internal/frame"
	"scrollgrip/internal/geometry"
	"scrollgrip/internal/host"
)

// box is a laid out element of the surface
type box struct {
	rect host.Rect
}

func (b *box) BoxSize() host.Size { return b.rect.Size() }
func (b *box) Rect() host.Rect    { return b.rect }

// SurfaceOptions controls the surface layout
type SurfaceOptions struct {
	// Compact overlays the bars on the content instead of reserving a gutter
	Compact bool
	// InvertX puts the horizontal bar at the top, InvertY the vertical bar on the left
	InvertX bool
	InvertY bool
	// Gutter is the bar thickness: Width for the vertical bar, Height for the horizontal one
	Gutter     host.Size
	StatusRows int
	// AllowX and AllowY enable the gutter of an axis. It is reserved when
	// the content overflows that axis, or always with AlwaysReserve.
	AllowX        bool
	AllowY        bool
	AlwaysReserve bool
	// Convention is the rtl offset convention the surface emulates
	Convention geometry.Policy
	Direction  host.Direction
}

// Surface is the native scrollable region of the terminal. Vertical
// windowing is done by a bubbles viewport, horizontal cropping by the
// surface itself so it can emulate every rtl offset convention.
type Surface struct {
	doc   *Document
	sched frame.Scheduler
	opts  SurfaceOptions
	vp    viewport.Model

	viewport *box
	content  *box
	tracks   map[host.Axis]*box

	xOffset float64
	yOffset float64
	dir     host.Direction

	observers    map[*box][]*func(host.Size)
	dirObservers []*func(host.Direction)
	locks        int

	marked     map[int]bool
	markStyle  lipgloss.Style
	renderedAt string
}

// NewSurface creates a surface showing doc
func NewSurface(doc *Document, sched frame.Scheduler, opts SurfaceOptions) *Surface {
	s := &Surface{
		doc:       doc,
		sched:     sched,
		opts:      opts,
		vp:        viewport.New(0, 0),
		viewport:  &box{},
		content:   &box{rect: host.Rect{Width: float64(max(doc.Width, 1)), Height: float64(len(doc.Lines))}},
		tracks:    map[host.Axis]*box{host.X: {}, host.Y: {}},
		dir:       opts.Direction,
		observers: make(map[*box][]*func(host.Size)),
		marked:    make(map[int]bool),
		markStyle: lipgloss.NewStyle().Reverse(true),
	}
	if s.dir == "" {
		s.dir = host.LTR
	}
	s.xOffset = s.inlineStart()
	return s
}

// Resize lays the surface out in a terminal of the given size and notifies
// size observers of every box that changed
func (s *Surface) Resize(width, height int) {
	o := s.opts
	area := host.Rect{Width: float64(width), Height: float64(max(0, height-o.StatusRows))}

	vp := area
	gutterX, gutterY := 0.0, 0.0
	if !o.Compact {
		content := s.content.rect.Size()
		if o.AllowY && (o.AlwaysReserve || content.Height > area.Height) {
			gutterY = o.Gutter.Width
		}
		if o.AllowX && (o.AlwaysReserve || content.Width > area.Width-gutterY) {
			gutterX = o.Gutter.Height
		}
		if o.AllowY && gutterY == 0 && content.Height > area.Height-gutterX {
			gutterY = o.Gutter.Width
		}
	}
	vp.Width = max(0, area.Width-gutterY)
	vp.Height = max(0, area.Height-gutterX)
	if o.InvertY {
		vp.X = gutterY
	}
	if o.InvertX {
		vp.Y = gutterX
	}

	trackY := host.Rect{X: vp.X + vp.Width, Y: vp.Y, Width: o.Gutter.Width, Height: vp.Height}
	trackX := host.Rect{X: vp.X, Y: vp.Y + vp.Height, Width: vp.Width, Height: o.Gutter.Height}
	if o.Compact {
		trackY.X = vp.X + vp.Width - o.Gutter.Width
		trackX.Y = vp.Y + vp.Height - o.Gutter.Height
	}
	if o.InvertY {
		trackY.X = 0
	}
	if o.InvertX {
		trackX.Y = 0
	}

	s.vp.Width = int(vp.Width)
	s.vp.Height = int(vp.Height)
	s.renderedAt = ""

	s.set(s.viewport, vp)
	s.set(s.tracks[host.Y], trackY)
	s.set(s.tracks[host.X], trackX)
	s.clampOffsets()
}

func (s *Surface) set(b *box, r host.Rect) {
	changed := b.rect.Size() != r.Size()
	b.rect = r
	if !changed {
		return
	}
	for _, fn := range s.observers[b] {
		(*fn)(r.Size())
	}
}

func (s *Surface) clampOffsets() {
	s.SetScrollOffset(host.Y, s.yOffset)
	s.SetScrollOffset(host.X, s.xOffset)
}

func (s *Surface) mapper(axis host.Axis) geometry.Mapper {
	if axis != host.X {
		return geometry.Mapper{}
	}
	return geometry.Mapper{Policy: s.opts.Convention, RTL: s.dir == host.RTL}
}

func (s *Surface) scrollMax(axis host.Axis) float64 {
	return geometry.ScrollMax(s.content.rect.Size().Along(axis), s.viewport.rect.Size().Along(axis))
}

// inlineStart is the native offset showing the inline start of the content
func (s *Surface) inlineStart() float64 {
	scrollMax := s.scrollMax(host.X)
	if s.dir == host.RTL {
		return s.mapper(host.X).OffsetFromVisual(scrollMax, scrollMax)
	}
	return s.mapper(host.X).OffsetFromVisual(0, scrollMax)
}

func (s *Surface) ScrollOffset(axis host.Axis) float64 {
	if axis == host.X {
		return s.xOffset
	}
	return s.yOffset
}

// SetScrollOffset clamps to the native range like a real scroll container
func (s *Surface) SetScrollOffset(axis host.Axis, value float64) {
	lo, hi := s.mapper(axis).OffsetRange(s.scrollMax(axis))
	value = geometry.Clamp(value, lo, hi)
	if axis == host.X {
		s.xOffset = value
		return
	}
	s.yOffset = value
	s.vp.SetYOffset(int(math.Round(value)))
}

// VisualX returns the first visible content column
func (s *Surface) VisualX() int {
	scrollMax := s.scrollMax(host.X)
	v := geometry.Clamp(s.mapper(host.X).VisualFromOffset(s.xOffset, scrollMax), 0, scrollMax)
	return int(math.Round(v))
}

// TopLine returns the first visible content line
func (s *Surface) TopLine() int {
	return int(math.Round(s.yOffset))
}

func (s *Surface) ObserveBoxSize(el host.Element, fn func(host.Size)) func() {
	b, ok := el.(*box)
	if !ok {
		return func() {}
	}
	p := &fn
	s.observers[b] = append(s.observers[b], p)
	return func() {
		list := s.observers[b]
		for i, x := range list {
			if x == p {
				s.observers[b] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

func (s *Surface) TextDirection() host.Direction {
	return s.dir
}

// SetDirection switches the text direction. The horizontal offset moves to
// the new inline start.
func (s *Surface) SetDirection(dir host.Direction) {
	if dir == s.dir {
		return
	}
	s.dir = dir
	s.xOffset = s.inlineStart()
	s.renderedAt = ""
	for _, fn := range s.dirObservers {
		(*fn)(dir)
	}
}

func (s *Surface) OnDirectionChange(fn func(host.Direction)) func() {
	p := &fn
	s.dirObservers = append(s.dirObservers, p)
	return func() {
		for i, x := range s.dirObservers {
			if x == p {
				s.dirObservers = append(s.dirObservers[:i], s.dirObservers[i+1:]...)
				return
			}
		}
	}
}

// SuppressSelection blocks line marking until the returned func is called
func (s *Surface) SuppressSelection() func() {
	s.locks++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		s.locks--
	}
}

// Selecting reports whether line marking is currently allowed
func (s *Surface) Selecting() bool {
	return s.locks == 0
}

// FindElement resolves "#slug" selectors to headings
func (s *Surface) FindElement(selector string) (host.Element, bool) {
	slug, ok := strings.CutPrefix(selector, "#")
	if !ok {
		return nil, false
	}
	for _, h := range s.doc.Headings {
		if h.Slug != slug {
			continue
		}
		width := float64(runewidth.StringWidth(s.doc.Lines[h.Line]))
		x := 0.0
		if s.dir == host.RTL {
			x = float64(s.doc.Width) - width
		}
		return &box{rect: host.Rect{X: x, Y: float64(h.Line), Width: width, Height: 1}}, true
	}
	return nil, false
}

func (s *Surface) Viewport() host.Element {
	return s.viewport
}

// Content returns nil for an empty document, which leaves the control inert
func (s *Surface) Content() host.Element {
	if len(s.doc.Lines) == 0 {
		return nil
	}
	return s.content
}

func (s *Surface) Track(axis host.Axis) host.Element {
	return s.tracks[axis]
}

func (s *Surface) Scheduler() frame.Scheduler {
	return s.sched
}

// NewRTLProbe returns a one column overflow container using the emulated convention
func (s *Surface) NewRTLProbe() host.RTLProbe {
	p := &probe{mapper: geometry.Mapper{Policy: s.opts.Convention, RTL: true}}
	p.value = p.mapper.OffsetFromVisual(1, 1)
	return p
}

type probe struct {
	mapper geometry.Mapper
	value  float64
}

func (p *probe) ScrollLeft() float64 { return p.value }

func (p *probe) SetScrollLeft(v float64) {
	lo, hi := p.mapper.OffsetRange(1)
	p.value = geometry.Clamp(v, lo, hi)
}

// ViewportRect returns the content area in screen cells
func (s *Surface) ViewportRect() host.Rect {
	return s.viewport.rect
}

// LineAt maps a screen row to a content line
func (s *Surface) LineAt(p host.Point) (int, bool) {
	if !s.viewport.rect.Contains(p) {
		return 0, false
	}
	line := s.TopLine() + int(p.Y-s.viewport.rect.Y)
	if line < 0 || line >= len(s.doc.Lines) {
		return 0, false
	}
	return line, true
}

// ToggleMark flips the mark of a content line unless a drag holds the selection lock
func (s *Surface) ToggleMark(line int) bool {
	if !s.Selecting() {
		return false
	}
	s.marked[line] = !s.marked[line]
	s.renderedAt = ""
	return true
}

// Marked reports whether line is marked
func (s *Surface) Marked(line int) bool {
	return s.marked[line]
}

// View renders the visible part of the document
func (s *Surface) View() string {
	key := strings.Join([]string{string(s.dir), strconv.Itoa(s.VisualX()), strconv.Itoa(s.vp.Width)}, ":")
	if key != s.renderedAt {
		s.vp.SetContent(strings.Join(s.croppedLines(), "\n"))
		s.vp.SetYOffset(int(math.Round(s.yOffset)))
		s.renderedAt = key
	}
	return s.vp.View()
}

func (s *Surface) croppedLines() []string {
	from := s.VisualX()
	width := s.vp.Width
	out := make([]string, len(s.doc.Lines))
	for i, line := range s.doc.Lines {
		if s.dir == host.RTL {
			line = strings.Repeat(" ", s.doc.Width-runewidth.StringWidth(line)) + line
		}
		line = cropColumns(line, from, width)
		if s.marked[i] {
			line = s.markStyle.Render(line)
		}
		out[i] = line
	}
	return out
}

// cropColumns returns the cells [from, from+width) of line. Wide runes cut
// by either edge are replaced by spaces.
func cropColumns(line string, from, width int) string {
	var b strings.Builder
	end := from + width
	col := 0
	for _, r := range line {
		if col >= end {
			break
		}
		w := runewidth.RuneWidth(r)
		switch {
		case col >= from && col+w <= end:
			b.WriteRune(r)
		case col < from && col+w > from:
			b.WriteString(strings.Repeat(" ", min(col+w, end)-from))
		case col >= from && col+w > end:
			b.WriteString(strings.Repeat(" ", end-col))
		}
		col += w
	}
	return b.String()
}
