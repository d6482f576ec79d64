package scrollbar

import (
	"fmt"
	"time"

	"scrollgrip/internal/animator"
	"scrollgrip/internal/geometry"
	"scrollgrip/internal/host"
	"scrollgrip/internal/pointer"
)

// ScrollTo smooth scrolls to the requested position. The returned completion
// resolves when every animated axis has arrived or been superseded.
func (s *Scrollbar) ScrollTo(opts ScrollToOptions) *animator.Completion {
	if s.inert() {
		return animator.Resolved()
	}

	var parts []*animator.Completion
	if y, ok := s.targetY(opts); ok {
		parts = append(parts, s.animate(host.Y, y, opts.Duration, opts.Easing))
	}
	if x, ok := s.targetX(opts); ok {
		parts = append(parts, s.animate(host.X, x, opts.Duration, opts.Easing))
	}
	return animator.All(parts...)
}

// targetY resolves the vertical visual target
func (s *Scrollbar) targetY(opts ScrollToOptions) (float64, bool) {
	scrollMax := s.view.ScrollMax(host.Y)
	switch {
	case opts.Top != nil:
		return *opts.Top, true
	case opts.Bottom != nil:
		return scrollMax - *opts.Bottom, true
	}
	return 0, false
}

// targetX resolves the horizontal visual target, the distance of the
// viewport's left edge from the content's left edge
func (s *Scrollbar) targetX(opts ScrollToOptions) (float64, bool) {
	scrollMax := s.view.ScrollMax(host.X)
	rtl := s.view.Adapter(host.X).Reversed()
	switch {
	case opts.Left != nil:
		return *opts.Left, true
	case opts.Right != nil:
		return scrollMax - *opts.Right, true
	case opts.Start != nil:
		if rtl {
			return scrollMax - *opts.Start, true
		}
		return *opts.Start, true
	case opts.End != nil:
		if rtl {
			return *opts.End, true
		}
		return scrollMax - *opts.End, true
	}
	return 0, false
}

func (s *Scrollbar) animate(axis host.Axis, visual float64, d time.Duration, ease animator.Easing) *animator.Completion {
	s.pointer.Cancel(axis)
	ac := s.axis(axis)
	ac.step.Release()
	if ease == nil {
		ease = s.easing
	}
	return ac.anim.ScrollTo(s.view.NativeFromVisual(axis, visual), d, ease)
}

// ScrollToElement scrolls so target lines up with the viewport's top and
// inline start edges. target is a host.Element positioned in content
// coordinates or a selector resolved through the host.
func (s *Scrollbar) ScrollToElement(target any, opts ScrollToElementOptions) (*animator.Completion, error) {
	if s.inert() {
		return animator.Resolved(), s.err
	}

	var el host.Element
	switch t := target.(type) {
	case host.Element:
		el = t
	case string:
		found, ok := s.host.FindElement(t)
		if !ok {
			return animator.Resolved(), fmt.Errorf("%w: %q", ErrElementNotFound, t)
		}
		el = found
	default:
		return animator.Resolved(), fmt.Errorf("scroll to element: unsupported target type %T", target)
	}
	if el == nil {
		return animator.Resolved(), fmt.Errorf("%w: nil element", ErrElementNotFound)
	}

	r := el.Rect()
	top := r.Y + opts.Top
	left := r.X + opts.Left
	if s.view.Adapter(host.X).Reversed() {
		// Align the element's right edge with the viewport's right edge.
		left = r.X + r.Width - s.view.ViewportSize().Width - opts.Left
	}
	left = geometry.Clamp(left, 0, s.view.ScrollMax(host.X))

	return s.ScrollTo(ScrollToOptions{
		Top:      &top,
		Left:     &left,
		Duration: opts.Duration,
		Easing:   opts.Easing,
	}), nil
}

// InstantScrollTo writes a native offset without animating, superseding
// any drag, animation or track stepping on the axis
func (s *Scrollbar) InstantScrollTo(axis host.Axis, value float64) {
	if s.inert() {
		return
	}
	s.pointer.Cancel(axis)
	s.axis(axis).Interrupt()
	s.view.SetOffset(axis, value)
}

// PointerMode returns where the host should source pointer events from
func (s *Scrollbar) PointerMode() pointer.Mode {
	if s.inert() {
		return pointer.ModeViewport
	}
	return s.pointer.Mode()
}

// HandleViewportPointer feeds an event bound to the viewport surface
func (s *Scrollbar) HandleViewportPointer(ev pointer.Event) {
	if s.inert() {
		return
	}
	s.pointer.HandleViewport(ev)
}

// HandleElementPointer feeds an event bound to the thumb or track of axis
func (s *Scrollbar) HandleElementPointer(axis host.Axis, ev pointer.Event) {
	if s.inert() {
		return
	}
	s.pointer.HandleElement(axis, ev)
}

// HandleGlobalPointer feeds a document-level move or release
func (s *Scrollbar) HandleGlobalPointer(ev pointer.Event) {
	if s.inert() {
		return
	}
	s.pointer.HandleGlobal(ev)
}

// Dragging reports the axis of the active drag
func (s *Scrollbar) Dragging() (host.Axis, bool) {
	if s.inert() {
		return host.Y, false
	}
	d, ok := s.pointer.Drag()
	return d.Axis, ok
}
