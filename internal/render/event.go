package render

import "github.com/ripopov/wavescout/internal/wave"

// Event renders a sparse event stream as one marker glyph per column
// that recorded an event. Consecutive aliased columns merge into a
// single filled run instead of overdrawing individual glyphs.
func Event(cols []wave.ColumnRecord, row RowBounds, st Style) []Primitive {
	yHigh, yLow := row.Inset(st.Margin)
	yMid := row.Mid()
	h := yLow - yHigh
	lw := st.lineWidth()

	var prims []Primitive
	runStart, runEnd := -1, -1

	flushRun := func() {
		if runStart < 0 {
			return
		}
		w := float64(runEnd-runStart) + 1
		prims = append(prims, Rect(float64(runStart), yHigh, w, h, st.Color, true))
		runStart, runEnd = -1, -1
	}

	for _, c := range cols {
		if !c.Hit {
			continue
		}
		if c.Aliased {
			if runStart >= 0 && c.X == runEnd+1 {
				runEnd = c.X
			} else {
				flushRun()
				runStart, runEnd = c.X, c.X
			}
			continue
		}
		flushRun()
		x := float64(c.X)
		// an upward arrow: stem plus two head strokes
		prims = append(prims,
			VLine(x, yHigh, h, st.Color, lw),
			Polyline([]Point{
				{X: x - 2, Y: yHigh + (yMid-yHigh)/2},
				{X: x, Y: yHigh},
				{X: x + 2, Y: yHigh + (yMid-yHigh)/2},
			}, st.Color, lw))
	}
	flushRun()
	return prims
}
