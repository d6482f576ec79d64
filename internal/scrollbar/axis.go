package scrollbar

import (
	"time"

	"scrollgrip/internal/animator"
	"scrollgrip/internal/domain"
	"scrollgrip/internal/geometry"
	"scrollgrip/internal/host"
	"scrollgrip/internal/stepper"
)

// axisControl is the generic per-axis engine. Horizontal and vertical only
// differ by the adapter the viewport state holds for them.
type axisControl struct {
	sb   *Scrollbar
	axis host.Axis
	anim *animator.Animator
	step *stepper.Stepper

	dragging bool
	hovered  bool
}

func newAxisControl(sb *Scrollbar, axis host.Axis) *axisControl {
	ac := &axisControl{
		sb:   sb,
		axis: axis,
		anim: animator.New(axis, sb.host, sb.host.Scheduler(), sb.logger),
	}
	ac.step = stepper.New(ac, sb.host.Scheduler(), stepper.Options{
		Behavior:     sb.behavior,
		StepDuration: sb.cfg.TrackClickDuration(),
		Settle:       sb.cfg.TrackSettle(),
		Logger:       sb.logger.With("axis", axis),
		OnStep: func(forward bool, target float64) {
			sb.publish(domain.TrackSteppedEvent{ScrollbarID: sb.id, Axis: axis, Forward: forward, Target: target})
		},
	})
	return ac
}

func (ac *axisControl) Axis() host.Axis {
	return ac.axis
}

func (ac *axisControl) Active() bool {
	return ac.sb.view.ShouldShow(ac.axis)
}

func (ac *axisControl) Adapter() geometry.AxisAdapter {
	return ac.sb.view.Adapter(ac.axis)
}

func (ac *axisControl) TrackRect() host.Rect {
	track := ac.sb.host.Track(ac.axis)
	if track == nil {
		return host.Rect{}
	}
	return track.Rect()
}

func (ac *axisControl) Metrics() geometry.Metrics {
	trackSize := ac.Adapter().RectExtent(ac.TrackRect())
	return ac.sb.view.Metrics(ac.axis, trackSize, ac.sb.cfg.MinThumbSize)
}

// ThumbRect places the thumb inside the track at its visual position
func (ac *axisControl) ThumbRect() host.Rect {
	m := ac.Metrics()
	r := ac.TrackRect()
	pos := ac.Adapter().ThumbPosition(m)
	if ac.axis == host.X {
		return host.Rect{X: r.X + pos, Y: r.Y, Width: m.ThumbSize, Height: r.Height}
	}
	return host.Rect{X: r.X, Y: r.Y + pos, Width: r.Width, Height: m.ThumbSize}
}

func (ac *axisControl) SetOffset(native float64) {
	ac.sb.view.SetOffset(ac.axis, native)
}

// Interrupt hands the axis to a new writer
func (ac *axisControl) Interrupt() {
	ac.step.Release()
	ac.anim.Stop()
}

func (ac *axisControl) SetDragging(dragging bool) {
	if ac.dragging == dragging {
		return
	}
	ac.dragging = dragging
	if dragging {
		ac.sb.publish(domain.DragStartedEvent{ScrollbarID: ac.sb.id, Axis: ac.axis})
		return
	}
	ac.sb.publish(domain.DragEndedEvent{ScrollbarID: ac.sb.id, Axis: ac.axis})
}

func (ac *axisControl) SetHovered(hovered bool) {
	if ac.hovered == hovered {
		return
	}
	ac.hovered = hovered
	ac.sb.publish(domain.HoverChangedEvent{ScrollbarID: ac.sb.id, Axis: ac.axis, Hovered: hovered})
}

func (ac *axisControl) PressTrack(p host.Point) {
	ac.step.Press(p)
}

func (ac *axisControl) PointerAt(p host.Point, overTrack bool) {
	ac.step.PointerAt(p, overTrack)
}

func (ac *axisControl) ReleaseTrack() {
	ac.step.Release()
}

// ScrollTo animates with the configured easing
func (ac *axisControl) ScrollTo(native float64, d time.Duration) *animator.Completion {
	return ac.anim.ScrollTo(native, d, ac.sb.easing)
}

func (ac *axisControl) state() domain.AxisState {
	m := ac.Metrics()
	return domain.AxisState{
		Axis:          ac.axis,
		Used:          ac.Active(),
		Scrollable:    ac.sb.view.IsScrollable(ac.axis),
		Dragging:      ac.dragging,
		Hovered:       ac.hovered,
		TrackSize:     m.TrackSize,
		ThumbSize:     m.ThumbSize,
		ThumbPosition: ac.Adapter().ThumbPosition(m),
		ScrollOffset:  m.ScrollOffset,
		ScrollMax:     m.ScrollMax(),
	}
}

func (ac *axisControl) close() {
	ac.step.Close()
	ac.anim.Stop()
}
