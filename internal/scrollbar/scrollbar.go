// Package scrollbar composes the scrollbar engine into one control per
// scroll container: measurement, geometry, pointer gestures, track stepping
// and smooth scrolling for both axes.
package scrollbar

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"scrollgrip/internal/animator"
	"scrollgrip/internal/config"
	"scrollgrip/internal/domain"
	"scrollgrip/internal/eventbus"
	"scrollgrip/internal/geometry"
	"scrollgrip/internal/host"
	"scrollgrip/internal/pointer"
	"scrollgrip/internal/sensor"
	"scrollgrip/internal/stepper"
	"scrollgrip/internal/viewport"
)

// Scrollbar is the control for one scroll container. A control whose host is
// misconfigured stays inert: Err reports why and every operation is a no-op.
type Scrollbar struct {
	id     string
	host   host.Host
	cfg    config.Config
	bus    eventbus.EventBus
	logger *log.Logger
	err    error

	behavior stepper.Behavior
	easing   animator.Easing
	policy   geometry.Policy

	tracker     *sensor.Tracker
	view        *viewport.State
	axes        []*axisControl
	pointer     *pointer.Coordinator
	unsubDir    func()
	initialized bool
	closed      bool
}

// New creates the control and starts observing the host. The first
// AfterInitEvent is published on the next frame.
func New(h host.Host, cfg config.Config, opts ...Option) *Scrollbar {
	s := &Scrollbar{
		host: h,
		cfg:  cfg,
		bus:  eventbus.NullBus{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.logger = s.logger.With("scrollbar", s.id)

	switch {
	case h.Viewport() == nil:
		return s.fail(ErrMissingViewport)
	case h.Content() == nil:
		return s.fail(ErrMissingContent)
	}

	visibility, err := viewport.ParseVisibility(cfg.Visibility)
	if err != nil {
		return s.fail(fmt.Errorf("invalid config: %w", err))
	}
	orientation, err := viewport.ParseOrientation(cfg.Orientation)
	if err != nil {
		return s.fail(fmt.Errorf("invalid config: %w", err))
	}
	mode, err := pointer.ParseMode(cfg.PointerEvents)
	if err != nil {
		return s.fail(fmt.Errorf("invalid config: %w", err))
	}
	if s.behavior, err = stepper.ParseBehavior(cfg.TrackClickBehavior); err != nil {
		return s.fail(fmt.Errorf("invalid config: %w", err))
	}
	if s.easing, err = animator.EasingByName(cfg.Easing); err != nil {
		return s.fail(fmt.Errorf("invalid config: %w", err))
	}

	s.policy = geometry.DetectPolicy(h.NewRTLProbe())
	s.tracker = sensor.New(h, h.Scheduler(), sensor.Options{
		Throttle: cfg.SensorThrottle(),
		Disabled: cfg.SensorDisabled,
		Logger:   s.logger,
	}, s.onResize)
	s.view = viewport.New(h, h.Viewport(), h.Content(), s.tracker, visibility, orientation)
	s.view.SetAdapter(geometry.Horizontal(s.policy, h.TextDirection()))

	s.axes = []*axisControl{newAxisControl(s, host.Y), newAxisControl(s, host.X)}
	s.pointer = pointer.New(mode, h, s.logger, s.axes[0], s.axes[1])
	s.unsubDir = h.OnDirectionChange(s.onDirection)

	s.tracker.Observe(h.Viewport())
	s.tracker.Observe(h.Content())
	s.logger.Debug("scrollbar created", "policy", s.policy, "mode", mode, "visibility", visibility)
	return s
}

func (s *Scrollbar) fail(err error) *Scrollbar {
	s.err = err
	s.logger.Error("scrollbar disabled", "err", err)
	s.publish(domain.ErrorEvent{Message: "scrollbar disabled, falling back to native scrolling", Err: err})
	return s
}

// Err returns the configuration error that made the control inert
func (s *Scrollbar) Err() error {
	return s.err
}

// ID returns the instance id used in events and logs
func (s *Scrollbar) ID() string {
	return s.id
}

// Policy returns the detected right-to-left offset convention
func (s *Scrollbar) Policy() geometry.Policy {
	return s.policy
}

// Initialized reports whether the first measurement has been published
func (s *Scrollbar) Initialized() bool {
	return s.initialized
}

func (s *Scrollbar) inert() bool {
	return s.err != nil || s.closed
}

func (s *Scrollbar) publish(e domain.DomainEvent) {
	s.bus.Publish(e)
}

func (s *Scrollbar) axis(axis host.Axis) *axisControl {
	for _, ac := range s.axes {
		if ac.axis == axis {
			return ac
		}
	}
	return nil
}

// State returns the published view of one axis
func (s *Scrollbar) State(axis host.Axis) domain.AxisState {
	if s.inert() {
		return domain.AxisState{Axis: axis}
	}
	return s.axis(axis).state()
}

func (s *Scrollbar) states() map[host.Axis]domain.AxisState {
	return map[host.Axis]domain.AxisState{
		host.X: s.State(host.X),
		host.Y: s.State(host.Y),
	}
}

// ThumbRect returns the thumb box of axis in client coordinates
func (s *Scrollbar) ThumbRect(axis host.Axis) host.Rect {
	if s.inert() {
		return host.Rect{}
	}
	return s.axis(axis).ThumbRect()
}

func (s *Scrollbar) onResize(change sensor.Change) {
	if change.Cause == domain.CauseAfterInit && !s.initialized {
		s.initialized = true
		s.logger.Info("scrollbar initialized",
			"viewport", change.Snapshots[s.host.Viewport()], "content", change.Snapshots[s.host.Content()])
		s.publish(domain.AfterInitEvent{ScrollbarID: s.id, States: s.states()})
		return
	}
	s.publish(domain.AfterUpdateEvent{ScrollbarID: s.id, Cause: change.Cause, States: s.states()})
}

// Update remeasures the host synchronously and publishes the result. Before
// the first measurement has been published it only refreshes the cache.
func (s *Scrollbar) Update() {
	if s.inert() {
		return
	}
	change := s.tracker.Remeasure()
	if !s.initialized {
		return
	}
	s.onResize(change)
}

// SetHostHovered records whether the pointer is over the host area, which
// drives the hover visibility policy
func (s *Scrollbar) SetHostHovered(hovered bool) {
	if s.inert() {
		return
	}
	if s.view.SetHovered(hovered) && s.initialized {
		s.publish(domain.AfterUpdateEvent{ScrollbarID: s.id, Cause: domain.CauseUpdate, States: s.states()})
	}
}

func (s *Scrollbar) onDirection(dir host.Direction) {
	if s.inert() {
		return
	}
	s.axis(host.X).Interrupt()
	s.view.SetAdapter(geometry.Horizontal(s.policy, dir))
	s.logger.Debug("text direction changed", "direction", dir)
	s.publish(domain.DirectionChangedEvent{ScrollbarID: s.id, Direction: dir})
	if s.initialized {
		s.publish(domain.AfterUpdateEvent{ScrollbarID: s.id, Cause: domain.CauseUpdate, States: s.states()})
	}
}

// Close stops every gesture, animation and observation. It is safe to call
// more than once.
func (s *Scrollbar) Close() {
	if s.err != nil || s.closed {
		return
	}
	s.pointer.Teardown()
	for _, ac := range s.axes {
		ac.close()
	}
	s.tracker.Close()
	s.unsubDir()
	s.closed = true
	s.logger.Debug("scrollbar closed")
}
