// Package nativebar measures how much room the platform's own scrollbars take
// so the viewport can hide them behind its edges.
package nativebar

import (
	"sync"

	"scrollgrip/internal/host"
)

// Gauge exposes the outer box of a scroll container and the inner box left
// over for content once native scrollbars are drawn
type Gauge interface {
	OuterSize() host.Size
	InnerSize() host.Size
}

// Measure returns the native scrollbar thickness per axis: Width is the
// vertical bar's thickness and Height the horizontal bar's.
func Measure(g Gauge) host.Size {
	outer, inner := g.OuterSize(), g.InnerSize()
	return host.Size{
		Width:  max(0, outer.Width-inner.Width),
		Height: max(0, outer.Height-inner.Height),
	}
}

// Cache memoizes the first measurement. Native thickness does not change
// for the lifetime of a process.
type Cache struct {
	once sync.Once
	size host.Size
}

// Get measures g on first use and returns the cached value afterwards
func (c *Cache) Get(g Gauge) host.Size {
	c.once.Do(func() {
		c.size = Measure(g)
	})
	return c.size
}
