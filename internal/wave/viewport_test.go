package wave

import (
	"math"
	"testing"

	"github.com/ripopov/wavescout/internal/trace"
)

func TestViewportRoundTrip(t *testing.T) {
	vp := NewViewport(10000)
	vp.Left, vp.Right = 0.2, 0.7
	const width = 800

	for _, x := range []int{0, 1, 50, 399, 400, 798, 799} {
		tm := vp.PixelToTime(x, width)
		back := vp.TimeToPixel(tm, width)
		if diff := back - x; diff < -1 || diff > 1 {
			t.Errorf("x=%d: round-trip gave %d (time %d)", x, back, tm)
		}
	}
}

func TestViewportZoomClamps(t *testing.T) {
	vp := NewViewport(10000)
	vp = vp.Zoom(10, 400, 800) // zoom out well past full view
	if vp.Left != 0 || vp.Right != 1 {
		t.Errorf("zoom out should clamp to [0,1], got [%v,%v]", vp.Left, vp.Right)
	}

	for i := 0; i < 100; i++ {
		vp = vp.Zoom(0.1, 400, 800)
	}
	if w := vp.Width(); w < vp.minWidthFrac()-1e-15 {
		t.Errorf("zoom in exceeded minimum width: %v < %v", w, vp.minWidthFrac())
	}
	if vp.Left < 0 || vp.Right > 1 {
		t.Errorf("viewport escaped [0,1]: [%v,%v]", vp.Left, vp.Right)
	}
}

func TestViewportZoomAnchor(t *testing.T) {
	vp := NewViewport(100000)
	vp.Left, vp.Right = 0.4, 0.6
	const width = 1000
	anchor := 250
	before := vp.PixelToTime(anchor, width)

	vp = vp.Zoom(0.5, anchor, width)
	after := vp.PixelToTime(anchor, width)

	if d := math.Abs(float64(after - before)); d > float64(vp.TimePerPixel(width))+1 {
		t.Errorf("anchor moved by %v time units across zoom", d)
	}
}

func TestViewportPanPreservesWidth(t *testing.T) {
	vp := NewViewport(10000)
	vp.Left, vp.Right = 0.1, 0.3
	w := vp.Width()

	vp = vp.Pan(-0.5) // pushes past the left edge
	if vp.Left != 0 {
		t.Errorf("pan should clamp left to 0, got %v", vp.Left)
	}
	if got := vp.Width(); math.Abs(got-w) > 1e-12 {
		t.Errorf("pan changed width: %v != %v", got, w)
	}

	vp = vp.Pan(2) // pushes past the right edge
	if vp.Right != 1 {
		t.Errorf("pan should clamp right to 1, got %v", vp.Right)
	}
	if got := vp.Width(); math.Abs(got-w) > 1e-12 {
		t.Errorf("pan changed width: %v != %v", got, w)
	}
}

func TestViewportFitAll(t *testing.T) {
	vp := NewViewport(5000)
	vp.Left, vp.Right = 0.3, 0.35
	vp = vp.FitAll()
	if vp.Left != 0 || vp.Right != 1 {
		t.Errorf("FitAll gave [%v,%v]", vp.Left, vp.Right)
	}
}

func TestViewportNavigateTo(t *testing.T) {
	vp := NewViewport(10000)
	vp.Left, vp.Right = 0, 0.1
	const width = 1000

	vp = vp.NavigateTo(9000, 100, width)
	if vp.Right > 1 || vp.Left < 0 {
		t.Fatalf("navigate escaped bounds: [%v,%v]", vp.Left, vp.Right)
	}
	start, end := vp.StartTime(), vp.EndTime()
	if 9000 < start || 9000 > end {
		t.Errorf("target 9000 not visible in [%d,%d]", start, end)
	}
}

func TestViewportZoomToRange(t *testing.T) {
	vp := NewViewport(10000)
	vp = vp.ZoomToRange(2500, 5000)
	if got := vp.StartTime(); got != 2500 {
		t.Errorf("start = %d, want 2500", got)
	}
	if got := vp.EndTime(); got != 5000 {
		t.Errorf("end = %d, want 5000", got)
	}
}

func TestViewportMinimumWidthTwoUnits(t *testing.T) {
	vp := NewViewport(trace.Time(1000))
	vp = vp.ZoomToRange(500, 500) // degenerate range
	if span := vp.EndTime() - vp.StartTime(); span < 2 {
		t.Errorf("visible span %d below minimum of 2 time units", span)
	}
}
