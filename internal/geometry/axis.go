package geometry

import "scrollgrip/internal/host"

// AxisAdapter carries everything that differs between the horizontal and
// vertical scrollbars. The engine is written once against it.
type AxisAdapter struct {
	Axis   host.Axis
	Mapper Mapper
}

// Vertical returns the adapter for the y axis
func Vertical() AxisAdapter {
	return AxisAdapter{Axis: host.Y}
}

// Horizontal returns the adapter for the x axis with the RTL policy applied
// when dir is right-to-left
func Horizontal(policy Policy, dir host.Direction) AxisAdapter {
	return AxisAdapter{
		Axis:   host.X,
		Mapper: Mapper{Policy: policy, RTL: dir == host.RTL},
	}
}

// SizeProperty names the box dimension this axis measures
func (a AxisAdapter) SizeProperty() string {
	if a.Axis == host.X {
		return "width"
	}
	return "height"
}

// CoordinateProperty names the pointer coordinate this axis reads
func (a AxisAdapter) CoordinateProperty() string {
	if a.Axis == host.X {
		return "x"
	}
	return "y"
}

// Size picks this axis' extent out of a box size
func (a AxisAdapter) Size(s host.Size) float64 {
	return s.Along(a.Axis)
}

// Coordinate picks this axis' coordinate out of a pointer position
func (a AxisAdapter) Coordinate(p host.Point) float64 {
	return p.Along(a.Axis)
}

// RectStart returns the leading edge of r on this axis
func (a AxisAdapter) RectStart(r host.Rect) float64 {
	return r.Start(a.Axis)
}

// RectExtent returns the extent of r on this axis
func (a AxisAdapter) RectExtent(r host.Rect) float64 {
	return r.Extent(a.Axis)
}

// Offset reads the native scroll offset
func (a AxisAdapter) Offset(s host.Scroller) float64 {
	return s.ScrollOffset(a.Axis)
}

// SetOffset writes the native scroll offset
func (a AxisAdapter) SetOffset(s host.Scroller, v float64) {
	s.SetScrollOffset(a.Axis, v)
}

// ScrollMax returns how far the content scrolls on this axis
func (a AxisAdapter) ScrollMax(viewport, content host.Size) float64 {
	return ScrollMax(a.Size(content), a.Size(viewport))
}

// Reversed reports whether logical "forward" runs against the physical axis.
// That is only the case for the horizontal axis in right-to-left content.
func (a AxisAdapter) Reversed() bool {
	return a.Axis == host.X && a.Mapper.RTL
}

// Visual converts a native offset to a visual position, clamped to [0, scrollMax]
func (a AxisAdapter) Visual(offset, scrollMax float64) float64 {
	return Clamp(a.Mapper.VisualFromOffset(offset, scrollMax), 0, scrollMax)
}

// Native converts a visual position to a native offset, clamped to the native range
func (a AxisAdapter) Native(visual, scrollMax float64) float64 {
	lo, hi := a.Mapper.OffsetRange(scrollMax)
	return Clamp(a.Mapper.OffsetFromVisual(Clamp(visual, 0, scrollMax), scrollMax), lo, hi)
}

// ThumbPosition returns the thumb's visual distance from the track start for
// a native offset
func (a AxisAdapter) ThumbPosition(m Metrics) float64 {
	scrollMax := m.ScrollMax()
	return ThumbPosition(a.Visual(m.ScrollOffset, scrollMax), scrollMax, m.TrackMax())
}

// DragOffset converts a pointer position during a drag into a native offset.
// startScrollMax and startTrackMax are the values captured when the gesture
// began. trackRelative is the pointer's distance from the track start and
// startPointerOffset is the grab point's distance from the thumb start.
func (a AxisAdapter) DragOffset(trackRelative, startPointerOffset, startScrollMax, startTrackMax float64) float64 {
	if startTrackMax <= 0 || startScrollMax <= 0 {
		lo, _ := a.Mapper.OffsetRange(0)
		return lo
	}
	visual := startScrollMax * (trackRelative - startPointerOffset) / startTrackMax
	return a.Native(visual, startScrollMax)
}
