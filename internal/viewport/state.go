package viewport

import (
	"scrollgrip/internal/geometry"
	"scrollgrip/internal/host"
)

// State owns the scroll container and answers every per-axis question about
// it. Sizes come from the dimension tracker's snapshots and offsets are read
// live from the host, so nothing here can drift from the real layout.
type State struct {
	scroller host.Scroller
	viewport host.Element
	content  host.Element
	sizes    SizeSource

	adapters    map[host.Axis]geometry.AxisAdapter
	visibility  Visibility
	orientation Orientation
	hovered     bool
}

// New creates the viewport state
func New(scroller host.Scroller, viewport, content host.Element, sizes SizeSource, visibility Visibility, orientation Orientation) *State {
	return &State{
		scroller: scroller,
		viewport: viewport,
		content:  content,
		sizes:    sizes,
		adapters: map[host.Axis]geometry.AxisAdapter{
			host.X: geometry.Horizontal(geometry.Normal, host.LTR),
			host.Y: geometry.Vertical(),
		},
		visibility:  visibility,
		orientation: orientation,
	}
}

// SetAdapter replaces the adapter of one axis (direction or policy changes)
func (s *State) SetAdapter(a geometry.AxisAdapter) {
	s.adapters[a.Axis] = a
}

// Adapter returns the adapter of an axis
func (s *State) Adapter(axis host.Axis) geometry.AxisAdapter {
	return s.adapters[axis]
}

// Viewport returns the scroll container element
func (s *State) Viewport() host.Element {
	return s.viewport
}

// ViewportSize returns the cached viewport size
func (s *State) ViewportSize() host.Size {
	return s.sizes.Snapshot(s.viewport)
}

// ContentSize returns the cached content size
func (s *State) ContentSize() host.Size {
	return s.sizes.Snapshot(s.content)
}

// Detached reports whether the viewport or the content measured without
// area. A detached container is not scrollable on either axis.
func (s *State) Detached() bool {
	return s.ViewportSize().Empty() || s.ContentSize().Empty()
}

// ScrollMax returns how far the content scrolls on axis
func (s *State) ScrollMax(axis host.Axis) float64 {
	if s.Detached() {
		return 0
	}
	return s.adapters[axis].ScrollMax(s.ViewportSize(), s.ContentSize())
}

// Offset returns the native scroll offset
func (s *State) Offset(axis host.Axis) float64 {
	return s.adapters[axis].Offset(s.scroller)
}

// Visual returns the direction-normalized position in [0, ScrollMax]
func (s *State) Visual(axis host.Axis) float64 {
	return s.adapters[axis].Visual(s.Offset(axis), s.ScrollMax(axis))
}

// SetOffset writes a native offset, clamped to the native range
func (s *State) SetOffset(axis host.Axis, v float64) {
	a := s.adapters[axis]
	lo, hi := a.Mapper.OffsetRange(s.ScrollMax(axis))
	a.SetOffset(s.scroller, geometry.Clamp(v, lo, hi))
}

// SetVisual writes a direction-normalized position
func (s *State) SetVisual(axis host.Axis, visual float64) {
	a := s.adapters[axis]
	a.SetOffset(s.scroller, a.Native(visual, s.ScrollMax(axis)))
}

// NativeFromVisual converts a visual position to the native offset to write
func (s *State) NativeFromVisual(axis host.Axis, visual float64) float64 {
	return s.adapters[axis].Native(visual, s.ScrollMax(axis))
}

// IsScrollable reports whether the content overflows on axis
func (s *State) IsScrollable(axis host.Axis) bool {
	return s.ScrollMax(axis) > 0
}

// Enabled reports whether the orientation permits a scrollbar on axis
func (s *State) Enabled(axis host.Axis) bool {
	return s.orientation.Allows(axis)
}

// ShouldShow combines orientation, visibility policy and scrollability
func (s *State) ShouldShow(axis host.Axis) bool {
	if !s.Enabled(axis) {
		return false
	}
	switch s.visibility {
	case VisibilityAlways:
		return true
	case VisibilityHover:
		return s.hovered && s.IsScrollable(axis)
	default:
		return s.IsScrollable(axis)
	}
}

// SetHovered records whether the pointer is over the host area. It returns
// true when the value changed.
func (s *State) SetHovered(hovered bool) bool {
	if s.hovered == hovered {
		return false
	}
	s.hovered = hovered
	return true
}

// Hovered reports whether the pointer is over the host area
func (s *State) Hovered() bool {
	return s.hovered
}

// Metrics builds the per-axis geometry for a track of the given size
func (s *State) Metrics(axis host.Axis, trackSize, minThumbSize float64) geometry.Metrics {
	a := s.adapters[axis]
	viewport := a.Size(s.ViewportSize())
	content := a.Size(s.ContentSize())
	if s.Detached() {
		// Keeps Metrics.ScrollMax at zero, matching ScrollMax.
		content = viewport
	}
	return geometry.Metrics{
		ViewportSize: viewport,
		ContentSize:  content,
		TrackSize:    trackSize,
		ThumbSize:    geometry.ThumbSize(trackSize, content, minThumbSize),
		ScrollOffset: s.Offset(axis),
	}
}
