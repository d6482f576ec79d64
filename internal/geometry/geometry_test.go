package geometry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrollgrip/internal/host"
)

func TestThumbSize(t *testing.T) {
	tests := []struct {
		name                    string
		track, content, minSize float64
		want                    float64
	}{
		{"quarter visible", 100, 400, 20, 25},
		{"floored", 100, 300, 0, 33},
		{"min clamps", 100, 10000, 20, 20},
		{"content smaller than track", 100, 50, 0, 100},
		{"no content", 100, 0, 0, 100},
		{"no track", 0, 400, 5, 5},
		{"min larger than track", 10, 400, 30, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ThumbSize(tt.track, tt.content, tt.minSize))
		})
	}
}

func TestThumbSizeNeverBelowMinimum(t *testing.T) {
	for track := 0.0; track <= 200; track += 7 {
		for content := 0.0; content <= 5000; content += 113 {
			for _, minSize := range []float64{0, 1, 20, 250} {
				require.GreaterOrEqual(t, ThumbSize(track, content, minSize), minSize,
					"track=%v content=%v min=%v", track, content, minSize)
			}
		}
	}
}

func TestThumbPositionMonotonicAndBounded(t *testing.T) {
	const scrollMax, trackMax = 300.0, 75.0

	assert.Equal(t, 0.0, ThumbPosition(0, scrollMax, trackMax))
	assert.Equal(t, trackMax, ThumbPosition(scrollMax, scrollMax, trackMax))

	prev := -1.0
	for offset := 0.0; offset <= scrollMax; offset += 0.5 {
		pos := ThumbPosition(offset, scrollMax, trackMax)
		require.GreaterOrEqual(t, pos, prev)
		prev = pos
	}
}

func TestThumbPositionNotScrollable(t *testing.T) {
	assert.Equal(t, 0.0, ThumbPosition(10, 0, 75))
	assert.Equal(t, 0.0, ThumbPosition(10, 300, 0))
}

func TestMetrics(t *testing.T) {
	m := Metrics{ViewportSize: 100, ContentSize: 400, TrackSize: 100, ThumbSize: 25}
	assert.Equal(t, 300.0, m.ScrollMax())
	assert.Equal(t, 75.0, m.TrackMax())
	assert.True(t, m.Scrollable())

	m = Metrics{ViewportSize: 100, ContentSize: 50}
	assert.Equal(t, 0.0, m.ScrollMax())
	assert.False(t, m.Scrollable())
}

type fakeProbe struct {
	policy Policy
	max    float64
	value  float64
}

func newFakeProbe(p Policy) *fakeProbe {
	fp := &fakeProbe{policy: p, max: 1}
	// fresh RTL containers start at the rightmost edge
	fp.value = Mapper{Policy: p, RTL: true}.OffsetFromVisual(fp.max, fp.max)
	return fp
}

func (p *fakeProbe) ScrollLeft() float64 { return p.value }
func (p *fakeProbe) SetScrollLeft(v float64) {
	lo, hi := Mapper{Policy: p.policy, RTL: true}.OffsetRange(p.max)
	p.value = Clamp(v, lo, hi)
}

func TestDetectPolicy(t *testing.T) {
	for _, p := range []Policy{Normal, Negated, Inverted} {
		t.Run(p.String(), func(t *testing.T) {
			assert.Equal(t, p, DetectPolicy(newFakeProbe(p)))
		})
	}
	assert.Equal(t, Normal, DetectPolicy(nil))
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{Normal, Negated, Inverted} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePolicy("sideways")
	require.Error(t, err)
}

func TestMapperConventions(t *testing.T) {
	const scrollMax = 300.0
	tests := []struct {
		policy          Policy
		leftmost, right float64
		lo, hi          float64
	}{
		{Normal, 0, 300, 0, 300},
		{Negated, -300, 0, -300, 0},
		{Inverted, 300, 0, 0, 300},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			m := Mapper{Policy: tt.policy, RTL: true}
			assert.Equal(t, tt.leftmost, m.OffsetFromVisual(0, scrollMax))
			assert.Equal(t, tt.right, m.OffsetFromVisual(scrollMax, scrollMax))
			lo, hi := m.OffsetRange(scrollMax)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}

	ltr := Mapper{Policy: Inverted}
	assert.Equal(t, 42.0, ltr.OffsetFromVisual(42, scrollMax))
	assert.Equal(t, 42.0, ltr.VisualFromOffset(42, scrollMax))
}

func TestDragRoundTripAllPolicies(t *testing.T) {
	m := Metrics{ViewportSize: 100, ContentSize: 400, TrackSize: 100, ThumbSize: 25}
	for _, p := range []Policy{Normal, Negated, Inverted} {
		for _, dir := range []host.Direction{host.LTR, host.RTL} {
			a := Horizontal(p, dir)
			t.Run(fmt.Sprintf("%s/%s", p, dir), func(t *testing.T) {
				lo, hi := a.Mapper.OffsetRange(m.ScrollMax())
				for offset := lo; offset <= hi; offset += 12.5 {
					m.ScrollOffset = offset
					pos := a.ThumbPosition(m)

					// grab the thumb at its start and drop it where it is
					got := a.DragOffset(pos, 0, m.ScrollMax(), m.TrackMax())
					require.InDelta(t, offset, got, 1e-9)

					m.ScrollOffset = got
					require.InDelta(t, pos, a.ThumbPosition(m), 1e-9)
				}
			})
		}
	}
}

func TestDragVerticalScenario(t *testing.T) {
	// viewport 100x100 over 100x400 content: scrollMax 300, trackMax 75
	a := Vertical()
	const grab = 10.0

	got := a.DragOffset(grab+240, grab, 300, 75)
	assert.Equal(t, 300.0, got, "dragged past the end clamps at scrollMax")

	got = a.DragOffset(grab, grab, 300, 75)
	assert.Equal(t, 0.0, got)

	got = a.DragOffset(grab+37.5, grab, 300, 75)
	assert.Equal(t, 150.0, got)
}

func TestDragRTLLeftEdge(t *testing.T) {
	// content 400 over viewport 100, thumb dragged to the track's left end
	tests := map[Policy]float64{
		Normal:   0,
		Negated:  -300,
		Inverted: 300,
	}
	for p, want := range tests {
		a := Horizontal(p, host.RTL)
		assert.Equal(t, want, a.DragOffset(-50, 0, 300, 75), p.String())
	}
}

func TestDragDegenerate(t *testing.T) {
	a := Vertical()
	assert.Equal(t, 0.0, a.DragOffset(50, 0, 300, 0))
	assert.Equal(t, 0.0, a.DragOffset(50, 0, 0, 75))
}

func TestAxisAdapterAccessors(t *testing.T) {
	v := Vertical()
	h := Horizontal(Negated, host.RTL)

	assert.Equal(t, "height", v.SizeProperty())
	assert.Equal(t, "width", h.SizeProperty())
	assert.Equal(t, "y", v.CoordinateProperty())
	assert.Equal(t, "x", h.CoordinateProperty())
	assert.False(t, v.Reversed())
	assert.True(t, h.Reversed())
	assert.False(t, Horizontal(Negated, host.LTR).Reversed())

	viewport := host.Size{Width: 100, Height: 50}
	content := host.Size{Width: 400, Height: 60}
	assert.Equal(t, 300.0, h.ScrollMax(viewport, content))
	assert.Equal(t, 10.0, v.ScrollMax(viewport, content))
}
