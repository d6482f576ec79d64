package animator

import (
	"fmt"

	"github.com/fogleman/ease"
)

// Easing maps elapsed time t of duration d onto a value starting at b and
// changing by c. This is the classic Penner signature.
type Easing func(t, b, c, d float64) float64

// penner adapts a curve over normalized time to the Easing signature
func penner(curve func(float64) float64) Easing {
	return func(t, b, c, d float64) float64 {
		return b + c*curve(t/d)
	}
}

var (
	// Linear moves at constant speed
	Linear = penner(ease.Linear)
	// EaseInOutQuad accelerates for the first half and decelerates for the
	// second. The first derivative is continuous at the midpoint.
	EaseInOutQuad = penner(ease.InOutQuad)
	// EaseInOutCubic is the cubic variant of EaseInOutQuad
	EaseInOutCubic = penner(ease.InOutCubic)
	// EaseOutCubic starts fast and settles
	EaseOutCubic = penner(ease.OutCubic)
)

var easings = map[string]Easing{
	"linear":         Linear,
	"easeInOutQuad":  EaseInOutQuad,
	"easeInOutCubic": EaseInOutCubic,
	"easeOutCubic":   EaseOutCubic,
}

// EasingByName looks up an easing by its config name. The empty name selects
// EaseInOutQuad.
func EasingByName(name string) (Easing, error) {
	if name == "" {
		return EaseInOutQuad, nil
	}
	e, ok := easings[name]
	if !ok {
		return EaseInOutQuad, fmt.Errorf("unknown easing %q", name)
	}
	return e, nil
}
