package canvas

import (
	"image"
	"strconv"

	"github.com/gogpu/gg"

	"github.com/ripopov/wavescout/internal/render"
	"github.com/ripopov/wavescout/internal/trace"
	"github.com/ripopov/wavescout/internal/wave"
)

// Overlay holds the transient decorations drawn on top of a cached
// frame. Overlays change far more often than the frame itself, so
// compositing them separately keeps interaction cheap.
type Overlay struct {
	CursorTime trace.Time
	HasCursor  bool
	// Markers maps marker index (1..9) to its pinned time.
	Markers map[int]trace.Time
	// ROI is a pending zoom selection in pixel space, active while the
	// user is dragging out a region.
	ROIStart, ROIEnd int
	HasROI           bool
}

// Compose draws the overlay onto a copy of base. The cached frame is
// never mutated.
func Compose(base image.Image, ov Overlay, p Params) image.Image {
	if !ov.HasCursor && len(ov.Markers) == 0 && !ov.HasROI {
		return base
	}
	dc := gg.NewContextForImage(base)
	if face, err := render.FontFace(p.textSize()); err == nil {
		dc.SetFont(face)
	}
	painter := render.NewPainter(dc)

	h := float64(p.Height)
	var prims []render.Primitive

	if ov.HasROI {
		x0, x1 := float64(ov.ROIStart), float64(ov.ROIEnd)
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		prims = append(prims,
			render.Rect(x0, 0, x1-x0, h, p.Theme.Selection, false),
			render.VLine(x0, 0, h, p.Theme.Selection, 1),
			render.VLine(x1, 0, h, p.Theme.Selection, 1))
	}

	for _, t := range sortedMarkers(ov.Markers) {
		x := p.Viewport.TimeToPixelF(t.time, p.Width)
		if x < 0 || x > float64(p.Width) {
			continue
		}
		prims = append(prims,
			render.VLine(x, 0, h, p.Theme.Marker, 1),
			render.Text(strconv.Itoa(t.index), x+2, 2, 0, 1, p.Theme.Marker))
	}

	if ov.HasCursor {
		x := p.Viewport.TimeToPixelF(ov.CursorTime, p.Width)
		if x >= 0 && x <= float64(p.Width) {
			prims = append(prims, render.VLine(x, 0, h, p.Theme.Cursor, 1))
		}
	}

	painter.Paint(prims)
	return dc.Image()
}

type markerAt struct {
	index int
	time  trace.Time
}

func sortedMarkers(m map[int]trace.Time) []markerAt {
	out := make([]markerAt, 0, len(m))
	for i := 1; i <= 9; i++ {
		if t, ok := m[i]; ok {
			out = append(out, markerAt{index: i, time: t})
		}
	}
	return out
}

// SignalStatistics computes value statistics for one signal over a
// time window, for the statistics panel and CSV export.
func SignalStatistics(db trace.DB, id trace.SignalID, format wave.DataFormat, t0, t1 trace.Time) (wave.Stats, error) {
	if err := db.EnsureLoaded(id); err != nil {
		return wave.Stats{}, err
	}
	transitions, err := db.Transitions(id)
	if err != nil {
		return wave.Stats{}, err
	}
	return wave.Statistics(transitions, format, db.BitWidth(id), t0, t1), nil
}
