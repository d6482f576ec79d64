// Package pointer turns pointer primitives into drags, track presses and
// hover state for the scrollbars of one control.
package pointer

import (
	"github.com/charmbracelet/log"

	"scrollgrip/internal/host"
)

// Coordinator routes pointer events to the bars of one control. It holds at
// most one drag session and one track press at a time.
type Coordinator struct {
	mode   Mode
	bars   []Bar
	locker host.SelectionLocker
	logger *log.Logger

	drag    *DragSession
	dragBar Bar
	release func()
	pressed Bar
	hovered map[host.Axis]bool
}

// New creates a coordinator. A nil logger uses log.Default().
func New(mode Mode, locker host.SelectionLocker, logger *log.Logger, bars ...Bar) *Coordinator {
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		mode:    mode,
		bars:    bars,
		locker:  locker,
		logger:  logger,
		hovered: make(map[host.Axis]bool),
	}
}

// Mode returns the sourcing mode
func (c *Coordinator) Mode() Mode {
	return c.mode
}

// Drag returns the active drag session
func (c *Coordinator) Drag() (DragSession, bool) {
	if c.drag == nil {
		return DragSession{}, false
	}
	return *c.drag, true
}

// HandleElement handles an event bound to the thumb or track of axis
func (c *Coordinator) HandleElement(axis host.Axis, ev Event) {
	bar := c.bar(axis)
	if bar == nil {
		return
	}
	switch ev.Kind {
	case Down:
		c.down(bar, ev.Target, ev.Point)
	case Over, Out:
		over := ev.Kind == Over
		c.setHover(bar, over)
		if c.pressed == bar {
			bar.PointerAt(ev.Point, over)
		}
	case Move:
		c.move(ev.Point)
	case Up:
		c.up()
	}
}

// HandleViewport handles an event bound to the viewport surface. Presses are
// classified by testing the thumb box first, then the track box.
func (c *Coordinator) HandleViewport(ev Event) {
	switch ev.Kind {
	case Down:
		for _, bar := range c.bars {
			if !bar.Active() {
				continue
			}
			if bar.ThumbRect().Contains(ev.Point) {
				c.down(bar, TargetThumb, ev.Point)
				return
			}
			if bar.TrackRect().Contains(ev.Point) {
				c.down(bar, TargetTrack, ev.Point)
				return
			}
		}
	case Move, Over:
		c.hoverAt(ev.Point)
		c.move(ev.Point)
	case Out:
		for _, bar := range c.bars {
			c.setHover(bar, false)
		}
		if c.pressed != nil {
			c.pressed.PointerAt(ev.Point, false)
		}
	case Up:
		c.up()
	}
}

// HandleGlobal handles moves and releases anywhere, so a drag that leaves
// the control still follows the pointer and terminates cleanly
func (c *Coordinator) HandleGlobal(ev Event) {
	switch ev.Kind {
	case Move:
		c.move(ev.Point)
	case Up:
		c.up()
	}
}

// Cancel ends the drag or track press on axis so another writer can take the
// scroll offset over. The pointer must be pressed again to resume.
func (c *Coordinator) Cancel(axis host.Axis) {
	if c.drag != nil && c.drag.Axis == axis {
		c.endDrag()
	}
	if c.pressed != nil && c.pressed.Axis() == axis {
		c.endPress()
	}
}

// Teardown ends every gesture and releases the selection lock
func (c *Coordinator) Teardown() {
	c.up()
	for _, bar := range c.bars {
		if c.hovered[bar.Axis()] {
			c.hovered[bar.Axis()] = false
			bar.SetHovered(false)
		}
	}
}

func (c *Coordinator) bar(axis host.Axis) Bar {
	for _, bar := range c.bars {
		if bar.Axis() == axis {
			return bar
		}
	}
	return nil
}

func (c *Coordinator) down(bar Bar, target Target, p host.Point) {
	if !bar.Active() {
		return
	}
	// A second press without a release ends the previous gesture first.
	c.up()

	switch target {
	case TargetThumb:
		c.startDrag(bar, p)
	case TargetTrack:
		bar.Interrupt()
		c.pressed = bar
		bar.PressTrack(p)
	}
}

func (c *Coordinator) startDrag(bar Bar, p host.Point) {
	bar.Interrupt()

	a := bar.Adapter()
	m := bar.Metrics()
	thumbStart := a.RectStart(bar.TrackRect()) + a.ThumbPosition(m)
	c.drag = &DragSession{
		Axis:               bar.Axis(),
		StartTrackMax:      m.TrackMax(),
		StartScrollMax:     m.ScrollMax(),
		StartPointerOffset: a.Coordinate(p) - thumbStart,
	}
	c.dragBar = bar
	c.release = c.locker.SuppressSelection()
	bar.SetDragging(true)
	c.logger.Debug("drag started", "axis", bar.Axis(), "grab", c.drag.StartPointerOffset)
}

func (c *Coordinator) move(p host.Point) {
	if c.drag != nil {
		bar := c.dragBar
		a := bar.Adapter()
		rel := a.Coordinate(p) - a.RectStart(bar.TrackRect())
		bar.SetOffset(a.DragOffset(rel, c.drag.StartPointerOffset, c.drag.StartScrollMax, c.drag.StartTrackMax))
		return
	}
	if c.pressed != nil {
		c.pressed.PointerAt(p, c.pressed.TrackRect().Contains(p))
	}
}

func (c *Coordinator) up() {
	c.endDrag()
	c.endPress()
}

func (c *Coordinator) endDrag() {
	if c.drag == nil {
		return
	}
	bar := c.dragBar
	c.drag = nil
	c.dragBar = nil
	if c.release != nil {
		c.release()
		c.release = nil
	}
	bar.SetDragging(false)
	c.logger.Debug("drag ended", "axis", bar.Axis())
}

func (c *Coordinator) endPress() {
	if c.pressed == nil {
		return
	}
	bar := c.pressed
	c.pressed = nil
	bar.ReleaseTrack()
}

func (c *Coordinator) hoverAt(p host.Point) {
	for _, bar := range c.bars {
		c.setHover(bar, bar.Active() && bar.TrackRect().Contains(p))
	}
}

func (c *Coordinator) setHover(bar Bar, hovered bool) {
	if c.hovered[bar.Axis()] == hovered {
		return
	}
	c.hovered[bar.Axis()] = hovered
	bar.SetHovered(hovered)
}
