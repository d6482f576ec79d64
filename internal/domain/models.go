package domain

import "scrollgrip/internal/host"

// AxisState is the published, per-axis view of a scrollbar
type AxisState struct {
	Axis          host.Axis
	Used          bool    // the scrollbar for this axis is rendered
	Scrollable    bool    // content overflows the viewport on this axis
	Dragging      bool    // a thumb or track drag is in progress
	Hovered       bool    // the pointer is over the track
	TrackSize     float64 // track extent
	ThumbSize     float64 // thumb extent
	ThumbPosition float64 // thumb distance from the track's physical start
	ScrollOffset  float64 // native scroll offset
	ScrollMax     float64 // maximum scroll distance
}

// TrackMax returns the thumb's travel distance
func (s AxisState) TrackMax() float64 {
	if s.TrackSize <= s.ThumbSize {
		return 0
	}
	return s.TrackSize - s.ThumbSize
}

// InitCause tells whether a geometry change came from the first measurement
// or a later resize
type InitCause string

const (
	CauseAfterInit InitCause = "after-init"
	CauseResized   InitCause = "resized"
	CauseUpdate    InitCause = "update"
	CauseScroll    InitCause = "scroll"
)
