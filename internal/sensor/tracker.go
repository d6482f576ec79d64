// Package sensor tracks element box sizes and turns raw size observations
// into throttled, de-duplicated change notifications.
package sensor

import (
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"scrollgrip/internal/domain"
	"scrollgrip/internal/frame"
	"scrollgrip/internal/host"
)

// Tracker observes elements and caches their last emitted size. Callbacks from
// the observer never emit synchronously; emission happens on a later frame so
// the consumer can re-layout without feeding back into the observer.
type Tracker struct {
	observer host.SizeObserver
	sched    frame.Scheduler
	limiter  *rate.Limiter
	logger   *log.Logger
	onChange func(Change)
	disabled bool

	elements    []host.Element
	latest      map[host.Element]host.Size
	emitted     map[host.Element]host.Size
	measured    bool
	initialized bool

	unsubscribe  []func()
	pendingFrame frame.Cancel
	pendingTimer frame.Cancel
	closed       bool
}

// New creates a tracker that reports changes to onChange
func New(observer host.SizeObserver, sched frame.Scheduler, opts Options, onChange func(Change)) *Tracker {
	limit := rate.Inf
	if opts.Throttle > 0 {
		limit = rate.Every(opts.Throttle)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Tracker{
		observer: observer,
		sched:    sched,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   logger,
		onChange: onChange,
		disabled: opts.Disabled,
		latest:   make(map[host.Element]host.Size),
		emitted:  make(map[host.Element]host.Size),
	}
}

// Observe starts tracking el. The current size is taken as the first
// measurement and reported as after-init on the next frame.
func (t *Tracker) Observe(el host.Element) {
	if t.closed || el == nil {
		return
	}
	t.elements = append(t.elements, el)
	t.record(el, el.BoxSize())
	if !t.disabled {
		t.unsubscribe = append(t.unsubscribe, t.observer.ObserveBoxSize(el, func(size host.Size) {
			t.notify(el, size)
		}))
	}
	t.schedule()
}

// Snapshot returns the last emitted size of el
func (t *Tracker) Snapshot(el host.Element) host.Size {
	return t.emitted[el]
}

// Initialized reports whether the after-init notification has been sent
func (t *Tracker) Initialized() bool {
	return t.initialized
}

// Remeasure reads every element synchronously, bypassing the throttle. It
// returns the resulting change without notifying onChange.
func (t *Tracker) Remeasure() Change {
	for _, el := range t.elements {
		t.record(el, el.BoxSize())
	}
	for el, size := range t.latest {
		t.emitted[el] = size
	}
	return Change{Cause: domain.CauseUpdate, Snapshots: t.copyEmitted()}
}

// Close stops observing and cancels any pending notification
func (t *Tracker) Close() {
	if t.closed {
		return
	}
	t.closed = true
	for _, u := range t.unsubscribe {
		u()
	}
	t.unsubscribe = nil
	t.cancelPending()
}

func (t *Tracker) notify(el host.Element, size host.Size) {
	if t.closed {
		return
	}
	if !t.record(el, size) {
		return
	}
	if size == t.emitted[el] && !t.dirty() {
		return
	}
	t.schedule()
}

// record stores a raw measurement, returning false when it was discarded
func (t *Tracker) record(el host.Element, size host.Size) bool {
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}
	if size.Empty() && !t.measured {
		// not laid out yet
		t.logger.Debug("dropping empty measurement before first layout", "width", size.Width, "height", size.Height)
		return false
	}
	if !size.Empty() {
		t.measured = true
	}
	t.latest[el] = size
	return true
}

func (t *Tracker) dirty() bool {
	for el, size := range t.latest {
		if prev, ok := t.emitted[el]; !ok || prev != size {
			return true
		}
	}
	return false
}

func (t *Tracker) schedule() {
	if t.pendingFrame != nil || t.pendingTimer != nil {
		return
	}
	now := t.sched.Now()
	delay := t.limiter.ReserveN(now, 1).DelayFrom(now)
	if delay <= 0 {
		t.pendingFrame = t.sched.RequestFrame(t.flush)
		return
	}
	t.pendingTimer = t.sched.AfterFunc(delay, func() {
		t.pendingTimer = nil
		t.pendingFrame = t.sched.RequestFrame(t.flush)
	})
}

func (t *Tracker) flush(time.Time) {
	t.pendingFrame = nil
	if t.closed || !t.measured {
		return
	}
	if t.initialized && !t.dirty() {
		return
	}
	for el, size := range t.latest {
		t.emitted[el] = size
	}
	cause := domain.CauseResized
	if !t.initialized {
		cause = domain.CauseAfterInit
		t.initialized = true
	}
	t.onChange(Change{Cause: cause, Snapshots: t.copyEmitted()})
}

func (t *Tracker) copyEmitted() map[host.Element]host.Size {
	out := make(map[host.Element]host.Size, len(t.emitted))
	for el, size := range t.emitted {
		out[el] = size
	}
	return out
}

func (t *Tracker) cancelPending() {
	if t.pendingFrame != nil {
		t.pendingFrame()
		t.pendingFrame = nil
	}
	if t.pendingTimer != nil {
		t.pendingTimer()
		t.pendingTimer = nil
	}
}
