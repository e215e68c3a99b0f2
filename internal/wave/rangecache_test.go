package wave

import (
	"testing"

	"github.com/ripopov/wavescout/internal/trace"
)

func rampTransitions(n int) []trace.Transition {
	out := make([]trace.Transition, n)
	for i := range out {
		out[i] = trace.Transition{Time: trace.Time(i * 10), Val: trace.BitsValue(uint64(i))}
	}
	return out
}

func TestRangeCacheGlobal(t *testing.T) {
	c := NewRangeCache()
	transitions := rampTransitions(100) // values 0..99 at times 0..990
	vp := NewViewport(1000)

	r := c.Get(1, transitions, Unsigned, 8, ScaleGlobal, vp)
	if r.Min != 0 || r.Max != 99 {
		t.Errorf("global range = %+v, want (0, 99)", r)
	}

	// cached result must ignore the viewport
	vp.Left, vp.Right = 0.5, 0.6
	r2 := c.Get(1, transitions, Unsigned, 8, ScaleGlobal, vp)
	if r2 != r {
		t.Errorf("global range changed with viewport: %+v", r2)
	}
}

func TestRangeCacheVisibleWindow(t *testing.T) {
	c := NewRangeCache()
	transitions := rampTransitions(100)
	vp := NewViewport(1000)
	vp.Left, vp.Right = 0.25, 0.75 // times 250..750, values 25..75

	r := c.Get(1, transitions, Unsigned, 8, ScaleVisible, vp)
	if r.Min != 25 || r.Max != 75 {
		t.Errorf("visible range = %+v, want (25, 75)", r)
	}

	global := c.Get(1, transitions, Unsigned, 8, ScaleGlobal, vp)
	if global.Min != 0 || global.Max != 99 {
		t.Errorf("global range = %+v, want (0, 99)", global)
	}
}

func TestRangeCacheVisibleEviction(t *testing.T) {
	c := NewRangeCache()
	transitions := rampTransitions(100)

	// fill beyond capacity with distinct viewports
	for i := 0; i < maxVisibleEntries+4; i++ {
		vp := NewViewport(1000)
		vp.Left = float64(i) / 100
		vp.Right = vp.Left + 0.1
		c.Get(1, transitions, Unsigned, 8, ScaleVisible, vp)
	}
	sr := c.signals[1]
	if len(sr.visible) != maxVisibleEntries {
		t.Errorf("visible entries = %d, want %d", len(sr.visible), maxVisibleEntries)
	}
}

func TestRangeCacheNoNumericValues(t *testing.T) {
	c := NewRangeCache()
	transitions := []trace.Transition{
		{Time: 0, Val: trace.TextValue("x")},
		{Time: 10, Val: trace.TextValue("z")},
	}
	vp := NewViewport(100)
	r := c.Get(1, transitions, Unsigned, 4, ScaleGlobal, vp)
	if r != (Range{}) {
		t.Errorf("all-NaN signal should give degenerate range, got %+v", r)
	}
}

func TestRangeCacheInvalidate(t *testing.T) {
	c := NewRangeCache()
	transitions := rampTransitions(10)
	vp := NewViewport(100)
	c.Get(1, transitions, Unsigned, 8, ScaleGlobal, vp)
	c.Invalidate()
	if len(c.signals) != 0 {
		t.Error("invalidate should drop all entries")
	}
}
