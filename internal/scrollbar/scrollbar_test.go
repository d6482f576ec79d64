package scrollbar

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"scrollgrip/internal/config"
	"scrollgrip/internal/domain"
	"scrollgrip/internal/eventbus"
	"scrollgrip/internal/geometry"
	"scrollgrip/internal/host"
	"scrollgrip/internal/host/hosttest"
	"scrollgrip/internal/pointer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// eventLog records every event published on the bus
type eventLog struct {
	events []domain.DomainEvent
}

func (l *eventLog) types() []domain.EventType {
	out := make([]domain.EventType, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Type())
	}
	return out
}

func newBus() (eventbus.EventBus, *eventLog) {
	bus := eventbus.New()
	l := &eventLog{}
	for _, t := range []domain.EventType{
		domain.EventScrollbarInitialized,
		domain.EventScrollbarUpdated,
		domain.EventDragStarted,
		domain.EventDragEnded,
		domain.EventHoverChanged,
		domain.EventTrackStepped,
		domain.EventDirectionChanged,
		domain.EventError,
	} {
		bus.Subscribe(t, func(e domain.DomainEvent) { l.events = append(l.events, e) })
	}
	return bus, l
}

func defaultConfig() config.Config {
	return *config.DefaultConfig()
}

// ready creates a control over a 100x100 viewport and runs its first frame
func ready(t *testing.T, h *hosttest.Host, cfg config.Config) (*Scrollbar, *eventLog) {
	t.Helper()
	bus, l := newBus()
	s := New(h, cfg, WithBus(bus), WithID("test"))
	require.NoError(t, s.Err())
	h.Sched.Advance(16 * time.Millisecond)
	require.True(t, s.Initialized())
	return s, l
}

func tall() *hosttest.Host {
	return hosttest.New(host.Size{Width: 100, Height: 100}, host.Size{Width: 100, Height: 400})
}

func TestMissingCollaboratorsLeaveControlInert(t *testing.T) {
	tests := []struct {
		name string
		h    *hosttest.Host
		want error
	}{
		{name: "viewport", h: tall().Detach(), want: ErrMissingViewport},
		{name: "content", h: tall().DetachContent(), want: ErrMissingContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus, l := newBus()
			s := New(tt.h, defaultConfig(), WithBus(bus))

			require.ErrorIs(t, s.Err(), tt.want)
			require.Len(t, l.events, 1)
			errEvent, ok := l.events[0].(domain.ErrorEvent)
			require.True(t, ok)
			assert.ErrorIs(t, errEvent.Err, tt.want)

			c := s.ScrollTo(ScrollToOptions{Top: Float(300)})
			assert.True(t, c.Finished())
			_, err := s.ScrollToElement("#intro", ScrollToElementOptions{})
			assert.ErrorIs(t, err, tt.want)
			s.Update()
			s.InstantScrollTo(host.Y, 50)
			s.HandleViewportPointer(pointer.Event{Kind: pointer.Down, Point: host.Point{X: 105, Y: 5}})
			assert.Equal(t, domain.AxisState{Axis: host.Y}, s.State(host.Y))
			s.Close()

			tt.h.Sched.Advance(time.Second)
			assert.Len(t, l.events, 1, "an inert control publishes nothing else")
			assert.Equal(t, 0, tt.h.Sched.Pending())
			assert.Equal(t, 0, tt.h.Observers())
		})
	}
}

func TestInvalidConfigLeavesControlInert(t *testing.T) {
	cfg := defaultConfig()
	cfg.Easing = "bounce"

	s := New(tall(), cfg)

	require.Error(t, s.Err())
	assert.Contains(t, s.Err().Error(), "bounce")
}

func TestLifecycleEvents(t *testing.T) {
	h := tall()
	bus, l := newBus()
	s := New(h, defaultConfig(), WithBus(bus), WithID("test"))
	assert.Empty(t, l.events, "nothing is published before the first frame")

	h.Sched.Advance(16 * time.Millisecond)
	h.Resize(h.ContentElement(), host.Size{Width: 100, Height: 600})
	h.Sched.Advance(16 * time.Millisecond)
	s.Update()

	want := []domain.EventType{
		domain.EventScrollbarInitialized,
		domain.EventScrollbarUpdated,
		domain.EventScrollbarUpdated,
	}
	if diff := cmp.Diff(want, l.types()); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}

	initEvent := l.events[0].(domain.AfterInitEvent)
	assert.Equal(t, "test", initEvent.ScrollbarID)
	assert.Equal(t, 300.0, initEvent.States[host.Y].ScrollMax)
	assert.True(t, initEvent.States[host.Y].Used)
	assert.False(t, initEvent.States[host.X].Used)

	resized := l.events[1].(domain.AfterUpdateEvent)
	assert.Equal(t, domain.CauseResized, resized.Cause)
	assert.Equal(t, 500.0, resized.States[host.Y].ScrollMax)
	assert.Equal(t, domain.CauseUpdate, l.events[2].(domain.AfterUpdateEvent).Cause)
	s.Close()
}

func TestGeneratedIDIsUnique(t *testing.T) {
	a := New(tall(), defaultConfig())
	b := New(tall(), defaultConfig())
	defer a.Close()
	defer b.Close()

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestScrollToBoundaries(t *testing.T) {
	h := tall()
	s, _ := ready(t, h, defaultConfig())
	defer s.Close()

	c := s.ScrollTo(ScrollToOptions{Top: Float(300)})
	assert.Equal(t, 300.0, h.ScrollOffset(host.Y), "zero duration is synchronous")
	assert.True(t, c.Finished())
	assert.Equal(t, 0, h.Sched.Pending())

	c = s.ScrollTo(ScrollToOptions{Top: Float(0), Duration: 800 * time.Millisecond})
	assert.False(t, c.Finished())
	h.Sched.Advance(time.Second)
	assert.True(t, c.Finished())
	assert.Equal(t, 0.0, h.ScrollOffset(host.Y))

	s.ScrollTo(ScrollToOptions{Bottom: Float(50)})
	assert.Equal(t, 250.0, h.ScrollOffset(host.Y))

	s.ScrollTo(ScrollToOptions{Top: Float(9000)})
	assert.Equal(t, 300.0, h.ScrollOffset(host.Y), "targets are clamped")
}

func TestScrollToInlineDirection(t *testing.T) {
	tests := []struct {
		name string
		opts ScrollToOptions
		want float64
	}{
		{name: "start is the right edge", opts: ScrollToOptions{Start: Float(0)}, want: 0},
		{name: "end is the left edge", opts: ScrollToOptions{End: Float(0)}, want: -300},
		{name: "left is physical", opts: ScrollToOptions{Left: Float(100)}, want: -200},
		{name: "right is physical", opts: ScrollToOptions{Right: Float(100)}, want: -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hosttest.New(host.Size{Width: 100, Height: 100}, host.Size{Width: 400, Height: 100}).WithRTL(geometry.Negated)
			cfg := defaultConfig()
			cfg.Direction = "rtl"
			s, _ := ready(t, h, cfg)
			defer s.Close()
			require.Equal(t, geometry.Negated, s.Policy())

			s.ScrollTo(ScrollToOptions{Left: Float(150)})
			s.ScrollTo(tt.opts)
			assert.Equal(t, tt.want, h.ScrollOffset(host.X))
		})
	}
}

func TestScrollToElement(t *testing.T) {
	h := tall()
	h.AddAnchor("#usage", host.Rect{X: 0, Y: 250, Width: 100, Height: 10})
	s, _ := ready(t, h, defaultConfig())
	defer s.Close()

	c, err := s.ScrollToElement("#usage", ScrollToElementOptions{Top: -10})
	require.NoError(t, err)
	assert.True(t, c.Finished())
	assert.Equal(t, 240.0, h.ScrollOffset(host.Y))

	el := hosttest.NewElement(host.Rect{Y: 50})
	_, err = s.ScrollToElement(el, ScrollToElementOptions{Duration: 100 * time.Millisecond})
	require.NoError(t, err)
	h.Sched.Advance(200 * time.Millisecond)
	assert.Equal(t, 50.0, h.ScrollOffset(host.Y))

	_, err = s.ScrollToElement("#missing", ScrollToElementOptions{})
	assert.True(t, errors.Is(err, ErrElementNotFound))

	_, err = s.ScrollToElement(42, ScrollToElementOptions{})
	assert.Error(t, err)
}

func TestInstantScrollToSupersedesAnimation(t *testing.T) {
	h := tall()
	s, _ := ready(t, h, defaultConfig())
	defer s.Close()

	c := s.ScrollTo(ScrollToOptions{Top: Float(300), Duration: 300 * time.Millisecond})
	h.Sched.Advance(48 * time.Millisecond)
	s.InstantScrollTo(host.Y, 20)

	assert.True(t, c.Superseded())
	h.Sched.Advance(time.Second)
	assert.Equal(t, 20.0, h.ScrollOffset(host.Y))
}

func TestDragThroughControl(t *testing.T) {
	h := tall()
	s, l := ready(t, h, defaultConfig())
	defer s.Close()

	st := s.State(host.Y)
	assert.Equal(t, 25.0, st.ThumbSize)
	assert.Equal(t, 75.0, st.TrackMax())
	assert.Equal(t, host.Rect{X: 100, Y: 0, Width: 10, Height: 25}, s.ThumbRect(host.Y))

	s.HandleViewportPointer(pointer.Event{Kind: pointer.Down, Point: host.Point{X: 105, Y: 12.5}})
	axis, dragging := s.Dragging()
	require.True(t, dragging)
	assert.Equal(t, host.Y, axis)
	assert.True(t, s.State(host.Y).Dragging)
	assert.Equal(t, 1, h.Locks)

	s.HandleGlobalPointer(pointer.Event{Kind: pointer.Move, Point: host.Point{X: 105, Y: 252.5}})
	assert.Equal(t, 300.0, h.ScrollOffset(host.Y))
	assert.Equal(t, 75.0, s.State(host.Y).ThumbPosition)

	s.HandleGlobalPointer(pointer.Event{Kind: pointer.Move, Point: host.Point{X: 105, Y: 12.5}})
	assert.Equal(t, 0.0, h.ScrollOffset(host.Y))

	s.HandleGlobalPointer(pointer.Event{Kind: pointer.Up})
	assert.False(t, s.State(host.Y).Dragging)
	assert.Equal(t, 0, h.Locks)

	want := []domain.EventType{
		domain.EventScrollbarInitialized,
		domain.EventDragStarted,
		domain.EventDragEnded,
	}
	assert.Equal(t, want, l.types())
}

func TestScrollToEndsDrag(t *testing.T) {
	h := tall()
	s, l := ready(t, h, defaultConfig())
	defer s.Close()

	s.HandleViewportPointer(pointer.Event{Kind: pointer.Down, Point: host.Point{X: 105, Y: 12.5}})
	s.HandleGlobalPointer(pointer.Event{Kind: pointer.Move, Point: host.Point{X: 105, Y: 252.5}})
	require.Equal(t, 300.0, h.ScrollOffset(host.Y))

	c := s.ScrollTo(ScrollToOptions{Top: Float(0), Duration: 300 * time.Millisecond})
	_, dragging := s.Dragging()
	assert.False(t, dragging)
	assert.False(t, s.State(host.Y).Dragging)
	assert.Equal(t, 0, h.Locks)

	// the pointer is still held, but only the animation writes now
	h.Sched.Advance(64 * time.Millisecond)
	mid := h.ScrollOffset(host.Y)
	s.HandleGlobalPointer(pointer.Event{Kind: pointer.Move, Point: host.Point{X: 105, Y: 252.5}})
	assert.Equal(t, mid, h.ScrollOffset(host.Y))

	h.Sched.Advance(time.Second)
	s.HandleGlobalPointer(pointer.Event{Kind: pointer.Up})
	assert.Equal(t, 0.0, h.ScrollOffset(host.Y))
	assert.False(t, c.Superseded())

	want := []domain.EventType{
		domain.EventScrollbarInitialized,
		domain.EventDragStarted,
		domain.EventDragEnded,
	}
	assert.Equal(t, want, l.types())
}

func TestInstantScrollToEndsDrag(t *testing.T) {
	h := tall()
	s, _ := ready(t, h, defaultConfig())
	defer s.Close()

	s.HandleViewportPointer(pointer.Event{Kind: pointer.Down, Point: host.Point{X: 105, Y: 12.5}})
	s.InstantScrollTo(host.Y, 120)
	_, dragging := s.Dragging()
	require.False(t, dragging)

	s.HandleGlobalPointer(pointer.Event{Kind: pointer.Move, Point: host.Point{X: 105, Y: 80}})
	assert.Equal(t, 120.0, h.ScrollOffset(host.Y))
	assert.Equal(t, 0, h.Locks)
}

func TestDetachedViewportIsNotScrollable(t *testing.T) {
	h := tall()
	s, _ := ready(t, h, defaultConfig())
	defer s.Close()
	require.True(t, s.State(host.Y).Used)

	h.Resize(h.ViewportElement(), host.Size{})
	h.Sched.Advance(16 * time.Millisecond)

	st := s.State(host.Y)
	assert.False(t, st.Scrollable)
	assert.False(t, st.Used)
	assert.Equal(t, 0.0, st.ScrollMax)
	assert.Equal(t, 0.0, st.ThumbPosition)

	h.Resize(h.ViewportElement(), host.Size{Width: 100, Height: 100})
	h.Sched.Advance(16 * time.Millisecond)
	st = s.State(host.Y)
	assert.True(t, st.Used)
	assert.Equal(t, 300.0, st.ScrollMax)
}

func TestScrollbarSourcingMode(t *testing.T) {
	h := tall()
	cfg := defaultConfig()
	cfg.PointerEvents = "scrollbar"
	s, _ := ready(t, h, cfg)
	defer s.Close()
	require.Equal(t, pointer.ModeScrollbar, s.PointerMode())

	s.HandleElementPointer(host.Y, pointer.Event{Kind: pointer.Down, Point: host.Point{X: 105, Y: 12.5}, Target: pointer.TargetThumb})
	s.HandleGlobalPointer(pointer.Event{Kind: pointer.Move, Point: host.Point{X: 105, Y: 50}})
	s.HandleGlobalPointer(pointer.Event{Kind: pointer.Up})

	assert.Equal(t, 150.0, h.ScrollOffset(host.Y))
}

func TestTrackClickAndHold(t *testing.T) {
	h := tall()
	s, l := ready(t, h, defaultConfig())
	defer s.Close()

	s.HandleViewportPointer(pointer.Event{Kind: pointer.Down, Point: host.Point{X: 105, Y: 99}})
	h.Sched.Advance(116 * time.Millisecond)
	assert.Equal(t, 100.0, h.ScrollOffset(host.Y))

	h.Sched.Advance(2 * time.Second)
	assert.Equal(t, 300.0, h.ScrollOffset(host.Y))
	s.HandleGlobalPointer(pointer.Event{Kind: pointer.Up})
	assert.Equal(t, 0, h.Sched.Pending())

	steps := 0
	for _, e := range l.events {
		if step, ok := e.(domain.TrackSteppedEvent); ok {
			steps++
			assert.True(t, step.Forward)
		}
	}
	assert.Equal(t, 3, steps)
}

func TestHoverVisibility(t *testing.T) {
	h := tall()
	cfg := defaultConfig()
	cfg.Visibility = "hover"
	s, l := ready(t, h, cfg)
	defer s.Close()

	assert.False(t, s.State(host.Y).Used)
	s.HandleViewportPointer(pointer.Event{Kind: pointer.Down, Point: host.Point{X: 105, Y: 5}})
	_, dragging := s.Dragging()
	assert.False(t, dragging, "a hidden bar takes no input")

	s.SetHostHovered(true)
	assert.True(t, s.State(host.Y).Used)
	assert.Equal(t, domain.EventScrollbarUpdated, l.events[len(l.events)-1].Type())

	s.HandleViewportPointer(pointer.Event{Kind: pointer.Move, Point: host.Point{X: 105, Y: 50}})
	assert.True(t, s.State(host.Y).Hovered)
	s.HandleViewportPointer(pointer.Event{Kind: pointer.Out})
	assert.False(t, s.State(host.Y).Hovered)
}

func TestOrientationFilter(t *testing.T) {
	h := hosttest.New(host.Size{Width: 100, Height: 100}, host.Size{Width: 400, Height: 400})
	cfg := defaultConfig()
	cfg.Orientation = "horizontal"
	s, _ := ready(t, h, cfg)
	defer s.Close()

	assert.True(t, s.State(host.X).Used)
	assert.False(t, s.State(host.Y).Used)
	assert.True(t, s.State(host.Y).Scrollable)
}

func TestDirectionChange(t *testing.T) {
	h := hosttest.New(host.Size{Width: 100, Height: 100}, host.Size{Width: 400, Height: 100})
	s, l := ready(t, h, defaultConfig())
	defer s.Close()

	h.SetDirection(host.RTL)

	require.GreaterOrEqual(t, len(l.events), 2)
	dirEvent, ok := l.events[len(l.events)-2].(domain.DirectionChangedEvent)
	require.True(t, ok)
	assert.Equal(t, host.RTL, dirEvent.Direction)

	s.ScrollTo(ScrollToOptions{Start: Float(0)})
	assert.Equal(t, 300.0, h.ScrollOffset(host.X), "inline start is the right edge after the switch")
}

func TestCloseMidGestureReleasesEverything(t *testing.T) {
	h := tall()
	s, _ := ready(t, h, defaultConfig())

	s.ScrollTo(ScrollToOptions{Top: Float(300), Duration: time.Second})
	s.HandleViewportPointer(pointer.Event{Kind: pointer.Down, Point: host.Point{X: 105, Y: 12.5}})
	require.Equal(t, 1, h.Locks)

	s.Close()
	s.Close()

	assert.Equal(t, 0, h.Locks)
	assert.Equal(t, 0, h.Sched.Pending())
	assert.Equal(t, 0, h.Observers())

	h.SetDirection(host.RTL)
	s.InstantScrollTo(host.Y, 100)
	assert.NotEqual(t, 100.0, h.ScrollOffset(host.Y), "a closed control ignores calls")
}
