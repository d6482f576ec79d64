package viewport

import (
	"fmt"

	"scrollgrip/internal/host"
)

// Visibility decides when a scrollable axis shows its scrollbar
type Visibility string

const (
	VisibilityNative Visibility = "native" // whenever the axis is scrollable
	VisibilityAlways Visibility = "always" // even when there is nothing to scroll
	VisibilityHover  Visibility = "hover"  // only while the pointer is over the host
)

// ParseVisibility converts a config string into a Visibility
func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(s); v {
	case VisibilityNative, VisibilityAlways, VisibilityHover:
		return v, nil
	case "":
		return VisibilityNative, nil
	}
	return VisibilityNative, fmt.Errorf("unknown visibility %q", s)
}

// Orientation limits which axes get a scrollbar
type Orientation string

const (
	OrientationAuto       Orientation = "auto"
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
)

// ParseOrientation converts a config string into an Orientation
func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(s); o {
	case OrientationAuto, OrientationVertical, OrientationHorizontal:
		return o, nil
	case "":
		return OrientationAuto, nil
	}
	return OrientationAuto, fmt.Errorf("unknown orientation %q", s)
}

// Allows reports whether the orientation permits a scrollbar on axis
func (o Orientation) Allows(axis host.Axis) bool {
	switch o {
	case OrientationVertical:
		return axis == host.Y
	case OrientationHorizontal:
		return axis == host.X
	default:
		return true
	}
}

// SizeSource supplies cached box sizes; the viewport never reads layout directly
type SizeSource interface {
	Snapshot(el host.Element) host.Size
}
