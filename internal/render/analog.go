package render

import (
	"math"
	"strconv"

	"github.com/ripopov/wavescout/internal/wave"
)

// rangeMargin leaves headroom above and below the analog trace so
// extremes do not sit flush against the row border.
const rangeMargin = 0.1

// Analog renders a numeric signal as a polyline scaled into the row
// band by rng. NaN columns break the line into a gap; they are never
// drawn as zero. Aliased columns get a full-height indicator line.
// When showLabels is set the range extremes are printed in the row
// corners, which only makes sense on tall rows.
func Analog(cols []wave.ColumnRecord, row RowBounds, st Style, rng wave.Range, showLabels bool) []Primitive {
	yHigh, yLow := row.Inset(st.Margin)
	span := rng.Max - rng.Min
	if span <= 0 {
		span = 1
	}
	lo := rng.Min - span*rangeMargin
	hi := rng.Max + span*rangeMargin
	scale := (yLow - yHigh) / (hi - lo)

	toY := func(v float64) float64 {
		y := yLow - (v-lo)*scale
		if y < yHigh {
			y = yHigh
		}
		if y > yLow {
			y = yLow
		}
		return y
	}

	lw := st.lineWidth()
	var prims []Primitive
	var run []Point
	flush := func() {
		if len(run) >= 2 {
			prims = append(prims, Polyline(run, st.Color, lw))
		} else if len(run) == 1 {
			// a lone defined point between gaps still deserves a dot
			p := run[0]
			prims = append(prims, VLine(p.X, p.Y, 1, st.Color, lw))
		}
		run = nil
	}

	for _, c := range cols {
		if !c.HasValue || math.IsNaN(c.Sample.Num) {
			flush()
			continue
		}
		run = append(run, Point{X: float64(c.X), Y: toY(c.Sample.Num)})
		if c.Aliased {
			prims = append(prims, VLine(float64(c.X), yHigh, yLow-yHigh, st.Undefined, 1))
		}
	}
	flush()

	if showLabels {
		prims = append(prims,
			Text(formatRangeLabel(rng.Max), 2, yHigh, 0, 1, st.Text),
			Text(formatRangeLabel(rng.Min), 2, yLow, 0, 0, st.Text))
	}
	return prims
}

// formatRangeLabel prints a range extreme compactly: integers without
// a fraction, everything else with a short fixed precision.
func formatRangeLabel(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
