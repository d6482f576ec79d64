package geometry

import (
	"fmt"

	"scrollgrip/internal/host"
)

// Policy is the convention a scroll container uses to report its horizontal
// offset when the content direction is right-to-left
type Policy int

const (
	// Normal reports 0 at the leftmost edge and scrollMax at the rightmost
	Normal Policy = iota
	// Negated reports 0 at the rightmost edge and -scrollMax at the leftmost
	Negated
	// Inverted reports 0 at the rightmost edge and scrollMax at the leftmost
	Inverted
)

func (p Policy) String() string {
	switch p {
	case Negated:
		return "negated"
	case Inverted:
		return "inverted"
	default:
		return "normal"
	}
}

// ParsePolicy converts a config string into a Policy
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "normal":
		return Normal, nil
	case "negated":
		return Negated, nil
	case "inverted":
		return Inverted, nil
	}
	return Normal, fmt.Errorf("unknown rtl convention %q", s)
}

// DetectPolicy figures out the convention from a fresh RTL probe. A new RTL
// container starts scrolled to its rightmost edge, so a positive reading means
// offsets grow rightward. Otherwise a write of 1 either sticks (inverted) or is
// clamped back to 0 (negated).
func DetectPolicy(probe host.RTLProbe) Policy {
	if probe == nil {
		return Normal
	}
	if probe.ScrollLeft() > 0 {
		return Normal
	}
	probe.SetScrollLeft(1)
	if probe.ScrollLeft() == 0 {
		return Negated
	}
	return Inverted
}

// Mapper converts between native offsets and visual positions (distance of
// the content's visible window from its physical left/top edge). It is the
// only place the RTL conventions are applied, so rendering and dragging
// cannot disagree.
type Mapper struct {
	Policy Policy
	RTL    bool
}

func (m Mapper) remaps() bool {
	return m.RTL && m.Policy != Normal
}

// VisualFromOffset converts a native offset into a visual position
func (m Mapper) VisualFromOffset(offset, scrollMax float64) float64 {
	if !m.remaps() {
		return offset
	}
	if m.Policy == Negated {
		return offset + scrollMax
	}
	return scrollMax - offset
}

// OffsetFromVisual converts a visual position into a native offset
func (m Mapper) OffsetFromVisual(visual, scrollMax float64) float64 {
	if !m.remaps() {
		return visual
	}
	if m.Policy == Negated {
		return visual - scrollMax
	}
	return scrollMax - visual
}

// OffsetRange returns the valid native offsets for scrollMax
func (m Mapper) OffsetRange(scrollMax float64) (lo, hi float64) {
	if m.RTL && m.Policy == Negated {
		return -scrollMax, 0
	}
	return 0, scrollMax
}
