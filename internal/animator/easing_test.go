package animator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingEndpoints(t *testing.T) {
	for name, ease := range easings {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 10.0, ease(0, 10, 290, 800), 1e-9)
			assert.InDelta(t, 300.0, ease(800, 10, 290, 800), 1e-9)
		})
	}
}

func TestEaseInOutQuadMidpoint(t *testing.T) {
	assert.InDelta(t, 150.0, EaseInOutQuad(400, 0, 300, 800), 1e-9)
	assert.InDelta(t, 37.5, EaseInOutQuad(200, 0, 300, 800), 1e-9)
	assert.InDelta(t, 262.5, EaseInOutQuad(600, 0, 300, 800), 1e-9)
}

func TestEaseInOutQuadSlopeContinuousAtMidpoint(t *testing.T) {
	const h = 1e-3
	left := (EaseInOutQuad(400, 0, 300, 800) - EaseInOutQuad(400-h, 0, 300, 800)) / h
	right := (EaseInOutQuad(400+h, 0, 300, 800) - EaseInOutQuad(400, 0, 300, 800)) / h
	assert.InDelta(t, left, right, 1e-3)
}

func TestEasingByName(t *testing.T) {
	e, err := EasingByName("linear")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, e(1, 0, 100, 2), 1e-9)

	e, err = EasingByName("")
	require.NoError(t, err)
	assert.InDelta(t, EaseInOutQuad(1, 0, 100, 3), e(1, 0, 100, 3), 1e-9)

	_, err = EasingByName("bounce")
	assert.Error(t, err)
}
