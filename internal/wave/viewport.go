package wave

import (
	"math"

	"github.com/ripopov/wavescout/internal/trace"
)

// Viewport is the visible sub-range of the trace in normalized
// coordinates: 0.0 is the start of the recording, 1.0 its end. It is a
// value type; navigation methods return a new Viewport and never mutate
// the receiver, so a render pass can hold one as an immutable snapshot.
type Viewport struct {
	Left  float64
	Right float64

	// TotalDuration converts between normalized coordinates and time.
	TotalDuration trace.Time
}

// NewViewport returns a viewport covering the whole recording.
func NewViewport(total trace.Time) Viewport {
	if total < 1 {
		total = 1
	}
	return Viewport{Left: 0, Right: 1, TotalDuration: total}
}

// minWidthFrac is the smallest allowed normalized width: two time units,
// so a single unit always spans at least half the canvas when fully
// zoomed in.
func (v Viewport) minWidthFrac() float64 {
	if v.TotalDuration <= 0 {
		return 1e-12
	}
	return 2.0 / float64(v.TotalDuration)
}

// Width returns the normalized width (zoom level is 1/Width).
func (v Viewport) Width() float64 { return v.Right - v.Left }

// StartTime returns the time at the left edge.
func (v Viewport) StartTime() trace.Time {
	return trace.Time(v.Left * float64(v.TotalDuration))
}

// EndTime returns the time at the right edge.
func (v Viewport) EndTime() trace.Time {
	return trace.Time(v.Right * float64(v.TotalDuration))
}

// TimePerPixel returns the time span covered by one pixel column.
func (v Viewport) TimePerPixel(canvasWidth int) float64 {
	if canvasWidth <= 0 {
		return 1
	}
	return v.Width() * float64(v.TotalDuration) / float64(canvasWidth)
}

// TimeToPixel maps a time to an X pixel coordinate on a canvas of the
// given width. The result is clamped to [0, canvasWidth]; callers that
// need to know whether the time is visible should compare against
// StartTime/EndTime first.
func (v Viewport) TimeToPixel(t trace.Time, canvasWidth int) int {
	x := v.TimeToPixelF(t, canvasWidth)
	if x < 0 {
		x = 0
	}
	if x > float64(canvasWidth) {
		x = float64(canvasWidth)
	}
	return int(x)
}

// TimeToPixelF is TimeToPixel without rounding or clamping, for callers
// that keep sub-pixel positions.
func (v Viewport) TimeToPixelF(t trace.Time, canvasWidth int) float64 {
	span := v.Width() * float64(v.TotalDuration)
	if span <= 0 || canvasWidth <= 0 {
		return 0
	}
	return (float64(t) - v.Left*float64(v.TotalDuration)) / span * float64(canvasWidth)
}

// PixelToTime maps an X pixel coordinate back to a time. Out-of-range
// pixels are clamped to the canvas bounds rather than extrapolated.
func (v Viewport) PixelToTime(x int, canvasWidth int) trace.Time {
	if canvasWidth <= 0 {
		return v.StartTime()
	}
	if x < 0 {
		x = 0
	}
	if x > canvasWidth {
		x = canvasWidth
	}
	frac := v.Left + float64(x)/float64(canvasWidth)*v.Width()
	return trace.Time(math.Round(frac * float64(v.TotalDuration)))
}

// columnEndTime is the exclusive upper time bound of a pixel column,
// kept fractional so adjacent columns tile the time axis exactly.
func (v Viewport) columnEndTime(x int, canvasWidth int) float64 {
	frac := v.Left + float64(x+1)/float64(canvasWidth)*v.Width()
	return frac * float64(v.TotalDuration)
}

// clamp shifts the viewport back into [0, 1] preserving its width, then
// enforces the minimum width around the current center.
func (v Viewport) clamp() Viewport {
	w := v.Width()
	minW := v.minWidthFrac()
	if w < minW {
		center := (v.Left + v.Right) / 2
		v.Left = center - minW/2
		v.Right = center + minW/2
		w = minW
	}
	if w > 1 {
		return Viewport{Left: 0, Right: 1, TotalDuration: v.TotalDuration}
	}
	if v.Left < 0 {
		v.Right -= v.Left
		v.Left = 0
	}
	if v.Right > 1 {
		v.Left -= v.Right - 1
		v.Right = 1
	}
	return v
}

// Zoom scales the visible width by factor (<1 zooms in) keeping the
// time under anchorPixel stationary.
func (v Viewport) Zoom(factor float64, anchorPixel, canvasWidth int) Viewport {
	if factor <= 0 {
		return v
	}
	anchor := v.Left + v.Width()/2
	if canvasWidth > 0 {
		anchor = v.Left + float64(anchorPixel)/float64(canvasWidth)*v.Width()
	}
	out := v
	out.Left = anchor - (anchor-v.Left)*factor
	out.Right = anchor + (v.Right-anchor)*factor
	return out.clamp()
}

// Pan shifts the viewport by a fraction of the total duration.
func (v Viewport) Pan(deltaFraction float64) Viewport {
	out := v
	out.Left += deltaFraction
	out.Right += deltaFraction
	return out.clamp()
}

// PanPixels shifts the viewport by a pixel distance on the given canvas.
func (v Viewport) PanPixels(dx, canvasWidth int) Viewport {
	if canvasWidth <= 0 {
		return v
	}
	return v.Pan(float64(dx) / float64(canvasWidth) * v.Width())
}

// FitAll resets the viewport to the whole recording.
func (v Viewport) FitAll() Viewport {
	return Viewport{Left: 0, Right: 1, TotalDuration: v.TotalDuration}
}

// NavigateTo positions target at marginPixels from the left canvas edge.
// If that pushes the window past the recording bounds, the window is
// shifted back just enough to fit; the target is never moved further
// than the clamp requires.
func (v Viewport) NavigateTo(target trace.Time, marginPixels, canvasWidth int) Viewport {
	if canvasWidth <= 0 {
		canvasWidth = 1
	}
	w := v.Width()
	offset := float64(marginPixels) / float64(canvasWidth) * w
	targetFrac := float64(target) / float64(v.TotalDuration)
	out := v
	out.Left = targetFrac - offset
	out.Right = out.Left + w
	return out.clamp()
}

// ZoomToRange makes [t0, t1] exactly fill the viewport.
func (v Viewport) ZoomToRange(t0, t1 trace.Time) Viewport {
	if t1 < t0 {
		t0, t1 = t1, t0
	}
	out := v
	out.Left = float64(t0) / float64(v.TotalDuration)
	out.Right = float64(t1) / float64(v.TotalDuration)
	return out.clamp()
}
