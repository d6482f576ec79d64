// Package stepper implements press-and-hold scrolling on a scrollbar track.
package stepper

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"scrollgrip/internal/animator"
	"scrollgrip/internal/frame"
	"scrollgrip/internal/geometry"
	"scrollgrip/internal/host"
)

// State is the stepping machine's phase
type State int

const (
	Idle State = iota
	FirstStep
	Settle
	Ongoing
	Halted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FirstStep:
		return "first-step"
	case Settle:
		return "settle"
	case Ongoing:
		return "ongoing"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

// Behavior selects what a track press does
type Behavior string

const (
	// BehaviorSteps pages by one viewport per step while the press is held
	BehaviorSteps Behavior = "steps"
	// BehaviorTo scrolls once so the thumb centers on the press point
	BehaviorTo Behavior = "to"
)

// ParseBehavior converts a config string into a Behavior
func ParseBehavior(s string) (Behavior, error) {
	switch b := Behavior(s); b {
	case BehaviorSteps, BehaviorTo:
		return b, nil
	case "":
		return BehaviorSteps, nil
	}
	return BehaviorSteps, fmt.Errorf("unknown track click behavior %q", s)
}

// Track is the axis the stepper scrolls
type Track interface {
	Metrics() geometry.Metrics
	Adapter() geometry.AxisAdapter
	TrackRect() host.Rect
	// ScrollTo animates to a native offset
	ScrollTo(native float64, d time.Duration) *animator.Completion
}

// Options configures timing and behavior
type Options struct {
	Behavior     Behavior
	StepDuration time.Duration
	Settle       time.Duration
	Logger       *log.Logger
	// OnStep is called whenever a step starts. forward is in the logical
	// scroll direction, target is the visual position stepped to.
	OnStep func(forward bool, target float64)
}

// Stepper is the per-axis track stepping machine. A press starts a session;
// a new press replaces it and a release ends it. Every scheduled callback
// checks the session generation so nothing from an ended session runs.
type Stepper struct {
	track  Track
	sched  frame.Scheduler
	opts   Options
	logger *log.Logger

	state   State
	gen     uint64
	pressed bool
	over    bool
	paused  bool
	point   float64
	forward bool
	cancel  frame.Cancel
}

// New creates a stepper for track
func New(track Track, sched frame.Scheduler, opts Options) *Stepper {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Behavior == "" {
		opts.Behavior = BehaviorSteps
	}
	return &Stepper{
		track:  track,
		sched:  sched,
		opts:   opts,
		logger: opts.Logger,
	}
}

// State returns the current phase
func (s *Stepper) State() State {
	return s.state
}

// Forward reports the logical direction of the current session
func (s *Stepper) Forward() bool {
	return s.forward
}

// Press starts a new session at p, which lies on the track but not on the thumb
func (s *Stepper) Press(p host.Point) {
	s.end(Idle)
	m := s.track.Metrics()
	if !m.Scrollable() {
		return
	}

	s.gen++
	s.pressed = true
	s.over = true
	s.paused = false
	s.point = s.relative(p)

	if s.opts.Behavior == BehaviorTo {
		s.jumpTo(m)
		return
	}

	a := s.track.Adapter()
	thumbEnd := a.ThumbPosition(m) + m.ThumbSize
	// Visually past the thumb means forward, flipped when the axis runs right to left.
	s.forward = (s.point >= thumbEnd) != a.Reversed()
	s.logger.Debug("track pressed", "at", s.point, "forward", s.forward)

	s.state = FirstStep
	s.step(s.gen)
}

// PointerAt records the pointer position and whether it is over the track.
// Leaving the track pauses an ongoing session, coming back resumes it.
func (s *Stepper) PointerAt(p host.Point, overTrack bool) {
	if !s.pressed {
		return
	}
	s.point = s.relative(p)
	s.over = overTrack
	if overTrack && s.paused && s.state == Ongoing {
		s.paused = false
		s.logger.Debug("track stepping resumed")
		s.tick(s.gen)
	}
}

// Release ends the session. A pending settle timer is cancelled.
func (s *Stepper) Release() {
	if !s.pressed {
		return
	}
	s.end(Idle)
}

// Close tears the stepper down
func (s *Stepper) Close() {
	s.end(Idle)
}

func (s *Stepper) end(state State) {
	s.gen++
	s.pressed = false
	s.paused = false
	s.state = state
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Stepper) relative(p host.Point) float64 {
	a := s.track.Adapter()
	return a.Coordinate(p) - a.RectStart(s.track.TrackRect())
}

// visualDelta is the signed visual distance of one step
func (s *Stepper) visualDelta(m geometry.Metrics) float64 {
	if s.forward != s.track.Adapter().Reversed() {
		return m.ViewportSize
	}
	return -m.ViewportSize
}

// step scrolls one viewport in the session direction. A step whose target
// is the boundary already reached ends the session.
func (s *Stepper) step(gen uint64) {
	m := s.track.Metrics()
	a := s.track.Adapter()
	scrollMax := m.ScrollMax()
	current := a.Visual(m.ScrollOffset, scrollMax)
	target := geometry.Clamp(current+s.visualDelta(m), 0, scrollMax)
	if target == current {
		s.logger.Debug("track stepping reached boundary", "at", current)
		s.state = Idle
		return
	}

	if s.opts.OnStep != nil {
		s.opts.OnStep(s.forward, target)
	}
	s.track.ScrollTo(a.Native(target, scrollMax), s.opts.StepDuration).Then(func(superseded bool) {
		if superseded || gen != s.gen {
			return
		}
		s.afterStep(gen)
	})
}

func (s *Stepper) afterStep(gen uint64) {
	if s.state != FirstStep {
		s.tick(gen)
		return
	}
	s.state = Settle
	s.cancel = s.sched.AfterFunc(s.opts.Settle, func() {
		s.cancel = nil
		if gen != s.gen {
			return
		}
		s.state = Ongoing
		s.tick(gen)
	})
}

// tick issues the next ongoing step while the press holds
func (s *Stepper) tick(gen uint64) {
	if gen != s.gen || !s.pressed {
		return
	}
	if !s.over {
		s.paused = true
		s.logger.Debug("track stepping paused")
		return
	}
	if !s.directionHolds() {
		s.logger.Debug("track stepping halted", "at", s.point)
		s.state = Halted
		return
	}
	s.step(gen)
}

// directionHolds re-evaluates the press point against the live thumb so the
// machine stops once the thumb has passed the pointer
func (s *Stepper) directionHolds() bool {
	m := s.track.Metrics()
	a := s.track.Adapter()
	thumbStart := a.ThumbPosition(m)
	increasing := s.forward != a.Reversed()
	if increasing {
		return s.point >= thumbStart+m.ThumbSize
	}
	return s.point < thumbStart
}

// jumpTo scrolls once so the thumb centers on the press point
func (s *Stepper) jumpTo(m geometry.Metrics) {
	a := s.track.Adapter()
	scrollMax := m.ScrollMax()
	trackMax := m.TrackMax()
	if trackMax <= 0 {
		return
	}
	visual := geometry.Clamp(scrollMax*(s.point-m.ThumbSize/2)/trackMax, 0, scrollMax)
	s.forward = (visual > a.Visual(m.ScrollOffset, scrollMax)) != a.Reversed()
	if s.opts.OnStep != nil {
		s.opts.OnStep(s.forward, visual)
	}
	s.track.ScrollTo(a.Native(visual, scrollMax), s.opts.StepDuration)
}
