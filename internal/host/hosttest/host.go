// Package hosttest provides an in-memory host for engine tests.
package hosttest

import (
	"time"

	"scrollgrip/internal/frame"
	"scrollgrip/internal/geometry"
	"scrollgrip/internal/host"
)

// Element is a mutable box
type Element struct {
	rect host.Rect
}

// NewElement creates an element with the given bounds
func NewElement(r host.Rect) *Element {
	return &Element{rect: r}
}

func (e *Element) BoxSize() host.Size { return e.rect.Size() }
func (e *Element) Rect() host.Rect    { return e.rect }

type observer struct {
	fn func(host.Size)
}

// Host is a fake environment. The viewport sits at the origin, the vertical
// track hugs its right edge and the horizontal track its bottom edge.
type Host struct {
	Sched *frame.Manual

	viewport *Element
	content  *Element
	tracks   map[host.Axis]*Element

	offsets map[host.Axis]float64
	policy  geometry.Policy
	dir     host.Direction

	observers    map[host.Element][]*observer
	dirObservers []*func(host.Direction)
	anchors      map[string]*Element

	// Locks is the number of outstanding selection suppressions
	Locks int
	// Writes records every scroll offset write per axis
	Writes map[host.Axis][]float64
}

// New creates a host with a viewport and content of the given sizes
func New(viewport, content host.Size) *Host {
	return &Host{
		Sched:    frame.NewManual(time.Unix(0, 0)),
		viewport: NewElement(host.Rect{Width: viewport.Width, Height: viewport.Height}),
		content:  NewElement(host.Rect{Width: content.Width, Height: content.Height}),
		tracks: map[host.Axis]*Element{
			host.Y: NewElement(host.Rect{X: viewport.Width, Y: 0, Width: 10, Height: viewport.Height}),
			host.X: NewElement(host.Rect{X: 0, Y: viewport.Height, Width: viewport.Width, Height: 10}),
		},
		offsets:   make(map[host.Axis]float64),
		dir:       host.LTR,
		observers: make(map[host.Element][]*observer),
		anchors:   make(map[string]*Element),
		Writes:    make(map[host.Axis][]float64),
	}
}

// WithRTL switches the host to right-to-left content emulating policy. The
// horizontal offset is reset to the rightmost edge like a fresh container.
func (h *Host) WithRTL(policy geometry.Policy) *Host {
	h.policy = policy
	h.dir = host.RTL
	scrollMax := h.scrollMax(host.X)
	h.offsets[host.X] = geometry.Mapper{Policy: policy, RTL: true}.OffsetFromVisual(scrollMax, scrollMax)
	return h
}

// Detach drops the viewport and content, simulating a misconfigured host
func (h *Host) Detach() *Host {
	h.viewport = nil
	h.content = nil
	return h
}

// DetachContent drops only the content wrapper
func (h *Host) DetachContent() *Host {
	h.content = nil
	return h
}

func (h *Host) Viewport() host.Element {
	if h.viewport == nil {
		return nil
	}
	return h.viewport
}

func (h *Host) Content() host.Element {
	if h.content == nil {
		return nil
	}
	return h.content
}

func (h *Host) Track(axis host.Axis) host.Element { return h.tracks[axis] }
func (h *Host) Scheduler() frame.Scheduler        { return h.Sched }

// ViewportElement returns the concrete viewport for resizing in tests
func (h *Host) ViewportElement() *Element { return h.viewport }

// ContentElement returns the concrete content for resizing in tests
func (h *Host) ContentElement() *Element { return h.content }

// TrackElement returns the concrete track of an axis
func (h *Host) TrackElement(axis host.Axis) *Element { return h.tracks[axis] }

func (h *Host) ScrollOffset(axis host.Axis) float64 {
	return h.offsets[axis]
}

// SetScrollOffset clamps to the native range like a real scroll container
func (h *Host) SetScrollOffset(axis host.Axis, value float64) {
	lo, hi := h.mapper(axis).OffsetRange(h.scrollMax(axis))
	value = geometry.Clamp(value, lo, hi)
	h.offsets[axis] = value
	h.Writes[axis] = append(h.Writes[axis], value)
}

func (h *Host) mapper(axis host.Axis) geometry.Mapper {
	if axis != host.X {
		return geometry.Mapper{}
	}
	return geometry.Mapper{Policy: h.policy, RTL: h.dir == host.RTL}
}

func (h *Host) scrollMax(axis host.Axis) float64 {
	if h.viewport == nil || h.content == nil {
		return 0
	}
	return geometry.ScrollMax(h.content.BoxSize().Along(axis), h.viewport.BoxSize().Along(axis))
}

// Resize changes an element's size and notifies observers synchronously
func (h *Host) Resize(el *Element, size host.Size) {
	el.rect.Width = size.Width
	el.rect.Height = size.Height
	for _, o := range h.observers[el] {
		o.fn(size)
	}
}

// Move repositions an element without notifying size observers
func (h *Host) Move(el *Element, r host.Rect) {
	el.rect = r
}

func (h *Host) ObserveBoxSize(el host.Element, fn func(host.Size)) func() {
	o := &observer{fn: fn}
	h.observers[el] = append(h.observers[el], o)
	return func() {
		list := h.observers[el]
		for i, x := range list {
			if x == o {
				h.observers[el] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Observers returns the number of live size observers
func (h *Host) Observers() int {
	n := 0
	for _, list := range h.observers {
		n += len(list)
	}
	return n
}

func (h *Host) TextDirection() host.Direction { return h.dir }

// SetDirection changes the text direction and notifies listeners
func (h *Host) SetDirection(dir host.Direction) {
	h.dir = dir
	for _, fn := range h.dirObservers {
		(*fn)(dir)
	}
}

func (h *Host) OnDirectionChange(fn func(host.Direction)) func() {
	p := &fn
	h.dirObservers = append(h.dirObservers, p)
	return func() {
		for i, x := range h.dirObservers {
			if x == p {
				h.dirObservers = append(h.dirObservers[:i], h.dirObservers[i+1:]...)
				return
			}
		}
	}
}

func (h *Host) SuppressSelection() func() {
	h.Locks++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		h.Locks--
	}
}

// AddAnchor registers an element findable by selector, positioned in content coordinates
func (h *Host) AddAnchor(selector string, r host.Rect) *Element {
	el := NewElement(r)
	h.anchors[selector] = el
	return el
}

func (h *Host) FindElement(selector string) (host.Element, bool) {
	el, ok := h.anchors[selector]
	if !ok {
		return nil, false
	}
	return el, true
}

func (h *Host) NewRTLProbe() host.RTLProbe {
	p := &probe{mapper: geometry.Mapper{Policy: h.policy, RTL: true}}
	p.value = p.mapper.OffsetFromVisual(1, 1)
	return p
}

type probe struct {
	mapper geometry.Mapper
	value  float64
}

func (p *probe) ScrollLeft() float64 { return p.value }

func (p *probe) SetScrollLeft(v float64) {
	lo, hi := p.mapper.OffsetRange(1)
	p.value = geometry.Clamp(v, lo, hi)
}
