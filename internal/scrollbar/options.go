package scrollbar

import (
	"time"

	"github.com/charmbracelet/log"

	"scrollgrip/internal/animator"
	"scrollgrip/internal/eventbus"
)

// Option customizes a Scrollbar
type Option func(*Scrollbar)

// WithBus publishes lifecycle events on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(s *Scrollbar) {
		s.bus = bus
	}
}

// WithLogger sets the logger. Without it log.Default() is used.
func WithLogger(logger *log.Logger) Option {
	return func(s *Scrollbar) {
		s.logger = logger
	}
}

// WithID overrides the generated instance id
func WithID(id string) Option {
	return func(s *Scrollbar) {
		s.id = id
	}
}

// ScrollToOptions selects where to scroll. Nil fields leave their axis
// alone. Start and End follow the inline direction: in right-to-left content
// Start is measured from the right edge.
type ScrollToOptions struct {
	Top    *float64
	Bottom *float64
	Left   *float64
	Right  *float64
	Start  *float64
	End    *float64

	// Duration of the animation; zero writes synchronously
	Duration time.Duration
	// Easing overrides the configured easing
	Easing animator.Easing
}

// ScrollToElementOptions adjusts the final position of ScrollToElement
type ScrollToElementOptions struct {
	// Top is added to the element's vertical position
	Top float64
	// Left is added to the element's horizontal position
	Left float64

	Duration time.Duration
	Easing   animator.Easing
}

// Float returns a pointer to v, for building ScrollToOptions
func Float(v float64) *float64 {
	return &v
}
