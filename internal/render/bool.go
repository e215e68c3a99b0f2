package render

import "github.com/ripopov/wavescout/internal/wave"

// Bool renders a 1-bit signal as a stepped line. High and low levels
// map to the top and bottom of the row band; x and z values sit at the
// midline in their own colors. Aliased columns get a full-height tick
// so bursts of edges stay visible at any zoom.
func Bool(cols []wave.ColumnRecord, row RowBounds, st Style) []Primitive {
	yHigh, yLow := row.Inset(st.Margin)
	yMid := row.Mid()
	lw := st.lineWidth()

	var prims []Primitive
	var run []Point
	var runColor string

	flush := func() {
		if len(run) >= 2 {
			prims = append(prims, Polyline(run, runColor, lw))
		}
		run = nil
	}

	level := func(s wave.Sample) float64 {
		if s.Kind != wave.Normal {
			return yMid
		}
		if s.Bool {
			return yHigh
		}
		return yLow
	}

	prevY := yMid
	for _, c := range cols {
		if !c.HasValue {
			flush()
			continue
		}
		y := level(c.Sample)
		color := st.valueColor(c.Sample.Kind)
		x := float64(c.X)

		if color != runColor {
			flush()
			runColor = color
		}
		if len(run) == 0 {
			run = append(run, Point{X: x, Y: y})
		} else if c.Start && y != prevY {
			// vertical edge at the value change
			run = append(run, Point{X: x, Y: prevY}, Point{X: x, Y: y})
		} else {
			run = append(run, Point{X: x, Y: y})
		}
		if c.Aliased {
			prims = append(prims, VLine(x, yHigh, yLow-yHigh, color, lw))
		}
		prevY = y
	}
	flush()
	return prims
}
