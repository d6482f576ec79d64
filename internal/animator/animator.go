// Package animator drives smooth scroll offset changes frame by frame.
package animator

import (
	"time"

	"github.com/charmbracelet/log"

	"scrollgrip/internal/frame"
	"scrollgrip/internal/host"
)

// Animator owns the smooth scrolling of one axis. Only one animation may
// write the axis at a time: every new ScrollTo, Jump or Stop bumps the
// generation so frames scheduled by an older animation become no-ops.
type Animator struct {
	axis     host.Axis
	scroller host.Scroller
	sched    frame.Scheduler
	logger   *log.Logger

	gen     uint64
	cancel  frame.Cancel
	current *Completion
}

// New creates an animator for axis. A nil logger uses log.Default().
func New(axis host.Axis, scroller host.Scroller, sched frame.Scheduler, logger *log.Logger) *Animator {
	if logger == nil {
		logger = log.Default()
	}
	return &Animator{
		axis:     axis,
		scroller: scroller,
		sched:    sched,
		logger:   logger.With("axis", axis),
	}
}

// ScrollTo animates the native offset from its current value to target. The
// starting offset is captured once. A zero duration writes target
// synchronously and returns a resolved completion.
func (a *Animator) ScrollTo(target float64, d time.Duration, ease Easing) *Completion {
	a.Stop()
	if d <= 0 {
		a.scroller.SetScrollOffset(a.axis, target)
		return Resolved()
	}
	if ease == nil {
		ease = EaseInOutQuad
	}

	a.gen++
	gen := a.gen
	from := a.scroller.ScrollOffset(a.axis)
	start := a.sched.Now()
	c := newCompletion()
	a.current = c
	a.logger.Debug("animation started", "from", from, "to", target, "duration", d)

	var step func(now time.Time)
	step = func(now time.Time) {
		if gen != a.gen {
			return
		}
		elapsed := now.Sub(start)
		if elapsed >= d {
			a.scroller.SetScrollOffset(a.axis, target)
			a.cancel = nil
			a.current = nil
			c.resolve(false)
			return
		}
		a.scroller.SetScrollOffset(a.axis, ease(float64(elapsed), from, target-from, float64(d)))
		a.cancel = a.sched.RequestFrame(step)
	}
	a.cancel = a.sched.RequestFrame(step)
	return c
}

// Jump writes target immediately, superseding any running animation
func (a *Animator) Jump(target float64) {
	a.Stop()
	a.scroller.SetScrollOffset(a.axis, target)
}

// Stop cancels the running animation. Its completion resolves as superseded.
func (a *Animator) Stop() {
	a.gen++
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if c := a.current; c != nil {
		a.current = nil
		a.logger.Debug("animation superseded")
		c.resolve(true)
	}
}

// Active reports whether an animation is in flight
func (a *Animator) Active() bool {
	return a.current != nil
}
