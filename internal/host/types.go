package host

import "fmt"

// Axis identifies a scroll axis
type Axis int

const (
	X Axis = iota // horizontal
	Y             // vertical
)

func (a Axis) String() string {
	if a == X {
		return "x"
	}
	return "y"
}

// Direction is the text direction of the viewport
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// ParseDirection converts a config string into a Direction
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case LTR, "":
		return LTR, nil
	case RTL:
		return RTL, nil
	}
	return LTR, fmt.Errorf("unknown text direction %q", s)
}

// Size is an element's box size
type Size struct {
	Width  float64
	Height float64
}

// Along returns the extent of the size on the given axis
func (s Size) Along(axis Axis) float64 {
	if axis == X {
		return s.Width
	}
	return s.Height
}

// Empty reports whether the box has no area
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Point is a pointer position in client coordinates
type Point struct {
	X float64
	Y float64
}

// Along returns the coordinate on the given axis
func (p Point) Along(axis Axis) float64 {
	if axis == X {
		return p.X
	}
	return p.Y
}

// Rect is a bounding box in client coordinates
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside the rectangle (right/bottom edges excluded)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Start returns the leading edge on the given axis
func (r Rect) Start(axis Axis) float64 {
	if axis == X {
		return r.X
	}
	return r.Y
}

// Extent returns the rectangle's size on the given axis
func (r Rect) Extent(axis Axis) float64 {
	if axis == X {
		return r.Width
	}
	return r.Height
}

// Size returns the rectangle's box size
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}
