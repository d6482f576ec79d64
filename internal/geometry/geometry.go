// Package geometry holds the pure track and thumb math shared by rendering
// and pointer dragging. Nothing in here touches the host.
package geometry

import "math"

// ThumbSize returns the thumb length for a track. The thumb shrinks with the
// square of the visible fraction, is floored to whole units and never drops
// below minThumbSize.
func ThumbSize(trackSize, contentSize, minThumbSize float64) float64 {
	if trackSize <= 0 {
		return math.Max(0, minThumbSize)
	}
	size := trackSize
	if contentSize > 0 {
		size = math.Floor(trackSize * trackSize / contentSize)
	}
	if size > trackSize {
		size = trackSize
	}
	return math.Max(size, minThumbSize)
}

// ThumbPosition maps a (direction-normalized) scroll position onto the track
func ThumbPosition(scrollOffset, scrollMax, trackMax float64) float64 {
	if scrollMax <= 0 || trackMax <= 0 {
		return 0
	}
	return Clamp(scrollOffset*trackMax/scrollMax, 0, trackMax)
}

// ScrollMax is how far the content can scroll on one axis
func ScrollMax(contentSize, viewportSize float64) float64 {
	return math.Max(0, contentSize-viewportSize)
}

// TrackMax is the thumb's maximum travel distance
func TrackMax(trackSize, thumbSize float64) float64 {
	return math.Max(0, trackSize-thumbSize)
}

// Clamp limits v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Metrics is a per-axis view over the current layout. It is recomputed from
// live sizes whenever needed and never kept as independent state.
type Metrics struct {
	ViewportSize float64
	ContentSize  float64
	TrackSize    float64
	ThumbSize    float64
	ScrollOffset float64
}

// ScrollMax returns the maximum native scroll distance
func (m Metrics) ScrollMax() float64 {
	return ScrollMax(m.ContentSize, m.ViewportSize)
}

// TrackMax returns the thumb's travel distance
func (m Metrics) TrackMax() float64 {
	return TrackMax(m.TrackSize, m.ThumbSize)
}

// Scrollable reports whether the axis has anything to scroll
func (m Metrics) Scrollable() bool {
	return m.ScrollMax() > 0
}
