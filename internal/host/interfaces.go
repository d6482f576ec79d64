package host

import "scrollgrip/internal/frame"

// Element is a live reference to a laid out box
type Element interface {
	BoxSize() Size
	Rect() Rect
}

// Scroller reads and writes the native scroll offset of the viewport
type Scroller interface {
	ScrollOffset(axis Axis) float64
	SetScrollOffset(axis Axis, value float64)
}

// SizeObserver delivers box size changes of an element
type SizeObserver interface {
	ObserveBoxSize(el Element, fn func(Size)) (unsubscribe func())
}

// Directionality exposes the current text direction and its changes
type Directionality interface {
	TextDirection() Direction
	OnDirectionChange(fn func(Direction)) (unsubscribe func())
}

// SelectionLocker suppresses content selection while held
type SelectionLocker interface {
	SuppressSelection() (release func())
}

// Locator resolves a selector to an element inside the content. The returned
// element's Rect is relative to the content origin.
type Locator interface {
	FindElement(selector string) (Element, bool)
}

// RTLProbe is a throwaway right-to-left scroll container with at least one
// unit of horizontal overflow, used to detect the offset convention
type RTLProbe interface {
	ScrollLeft() float64
	SetScrollLeft(v float64)
}

// Host is everything the engine consumes from its environment
type Host interface {
	Scroller
	SizeObserver
	Directionality
	SelectionLocker
	Locator

	// Viewport is the scroll container. May be nil when misconfigured.
	Viewport() Element
	// Content is the wrapper around the scrolled content. May be nil when misconfigured.
	Content() Element
	// Track returns the rendered track element of an axis
	Track(axis Axis) Element
	// NewRTLProbe creates the probe used for convention detection
	NewRTLProbe() RTLProbe
	Scheduler() frame.Scheduler
}
