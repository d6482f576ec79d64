package pointer

import (
	"fmt"

	"scrollgrip/internal/geometry"
	"scrollgrip/internal/host"
)

// Kind is the pointer primitive an event carries
type Kind int

const (
	Down Kind = iota
	Move
	Up
	Over
	Out
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Over:
		return "over"
	case Out:
		return "out"
	default:
		return "unknown"
	}
}

// Target is the part of the scrollbar an event was bound to
type Target int

const (
	TargetNone Target = iota
	TargetThumb
	TargetTrack
	TargetViewport
)

// Event is a single pointer primitive in client coordinates
type Event struct {
	Kind   Kind
	Point  host.Point
	Target Target
}

// Mode selects where pointer events are sourced from. Both modes produce the
// same scroll results.
type Mode string

const (
	// ModeScrollbar binds events to the thumb and track directly
	ModeScrollbar Mode = "scrollbar"
	// ModeViewport binds events to the viewport and classifies them by
	// hit testing against the current thumb and track boxes
	ModeViewport Mode = "viewport"
)

// ParseMode converts a config string into a Mode
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeScrollbar, ModeViewport:
		return m, nil
	case "":
		return ModeViewport, nil
	}
	return ModeViewport, fmt.Errorf("unknown pointer events mode %q", s)
}

// DragSession is the immutable snapshot taken when a thumb drag starts. A
// layout shift mid-drag never changes it.
type DragSession struct {
	Axis               host.Axis
	StartTrackMax      float64
	StartScrollMax     float64
	StartPointerOffset float64
}

// Bar is the per-axis scrollbar the coordinator drives
type Bar interface {
	Axis() host.Axis
	// Active reports whether the bar is shown and accepts input
	Active() bool
	TrackRect() host.Rect
	ThumbRect() host.Rect
	Metrics() geometry.Metrics
	Adapter() geometry.AxisAdapter

	// SetOffset writes a native offset immediately
	SetOffset(native float64)
	// Interrupt stops any animation or track stepping on the axis
	Interrupt()
	SetDragging(dragging bool)
	SetHovered(hovered bool)

	// PressTrack starts track stepping at p
	PressTrack(p host.Point)
	// PointerAt reports the latest pointer position and whether it is over the track
	PointerAt(p host.Point, overTrack bool)
	// ReleaseTrack ends track stepping
	ReleaseTrack()
}
