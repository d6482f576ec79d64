package sensor

import (
	"time"

	"github.com/charmbracelet/log"

	"scrollgrip/internal/domain"
	"scrollgrip/internal/host"
)

// Change is one throttled notification from the tracker
type Change struct {
	Cause     domain.InitCause
	Snapshots map[host.Element]host.Size
}

// Options configures a Tracker
type Options struct {
	// Throttle is the minimum interval between notifications. Zero emits on
	// the next frame after every change.
	Throttle time.Duration
	// Disabled skips observation entirely; only the first measurement is emitted
	Disabled bool
	Logger   *log.Logger
}
