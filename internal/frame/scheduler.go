package frame

import "time"

// FrameInterval is the display refresh cadence frames are aligned to
const FrameInterval = 16 * time.Millisecond

// Cancel stops a scheduled callback. Calling it more than once is a no-op.
type Cancel func()

// Scheduler is the time source for the engine. Every callback runs on the
// caller's event loop; implementations must never invoke callbacks concurrently.
type Scheduler interface {
	// Now returns the scheduler's current time
	Now() time.Time
	// RequestFrame runs fn on the next animation frame
	RequestFrame(fn func(now time.Time)) Cancel
	// AfterFunc runs fn once d has elapsed
	AfterFunc(d time.Duration, fn func()) Cancel
}

// Noop is a Cancel that does nothing
func Noop() {}
