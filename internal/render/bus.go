package render

import "github.com/ripopov/wavescout/internal/wave"

const (
	// maxTransitionWidth caps how far a bus edge can slope.
	maxTransitionWidth = 6.0
	// slopeFactor scales edge slope with region width so dense regions
	// degrade smoothly toward vertical edges.
	slopeFactor = 0.3
	// minTextWidth is the narrowest region interior that still gets a
	// value label.
	minTextWidth = 20.0
	// approxCharWidth is used to elide labels; the painter's font is
	// monospaced so a fixed advance estimate is close enough.
	approxCharWidth = 7.0
)

// busRegion is a maximal run of columns sharing one display string.
type busRegion struct {
	x0, x1  int // inclusive pixel range
	sample  wave.Sample
	aliased bool
}

func (r busRegion) width() float64 { return float64(r.x1 - r.x0) }

// transitionWidth is the slope a region would use on its edges,
// continuous in region density rather than a hard mode switch.
func (r busRegion) transitionWidth() float64 {
	tw := r.width() * slopeFactor
	if tw > maxTransitionWidth {
		tw = maxTransitionWidth
	}
	if tw < 0.5 {
		return 0
	}
	return tw
}

// verticalOnly reports whether the region is too narrow to slope at all.
func (r busRegion) verticalOnly() bool { return r.width() < 2 }

// Bus renders a multi-bit signal as labeled value regions with sloped
// edges. A boundary collapses to vertical on both sides when either
// neighbor is itself vertical-only, so a dense burst next to a wide
// stable run never produces a one-sided slope.
func Bus(cols []wave.ColumnRecord, row RowBounds, st Style) []Primitive {
	regions := busRegions(cols)
	yHigh, yLow := row.Inset(st.Margin)
	yMid := row.Mid()
	lw := st.lineWidth()

	var prims []Primitive
	for i, r := range regions {
		ltw, rtw := r.transitionWidth(), r.transitionWidth()

		// tie-break against neighbors
		if i == 0 {
			ltw = 0
		} else if prev := regions[i-1]; prev.verticalOnly() ||
			(prev.transitionWidth() < 1 && r.width() < 4) {
			ltw = 0
		}
		if i == len(regions)-1 {
			rtw = 0
		} else if next := regions[i+1]; next.verticalOnly() ||
			(next.transitionWidth() < 1 && r.width() < 4) {
			rtw = 0
		}
		if r.verticalOnly() {
			ltw, rtw = 0, 0
		}

		x0, x1 := float64(r.x0), float64(r.x1)
		color := st.valueColor(r.Kind())

		var pts []Point
		if ltw > 0 {
			pts = append(pts, Point{X: x0, Y: yMid})
		}
		pts = append(pts,
			Point{X: x0 + ltw, Y: yHigh},
			Point{X: x1 - rtw, Y: yHigh})
		if rtw > 0 {
			pts = append(pts, Point{X: x1, Y: yMid})
		}
		pts = append(pts,
			Point{X: x1 - rtw, Y: yLow},
			Point{X: x0 + ltw, Y: yLow})
		pts = append(pts, pts[0]) // close the outline
		prims = append(prims, Polyline(pts, color, lw))

		if r.aliased {
			prims = append(prims, VLine(x0, yHigh, yLow-yHigh, color, lw))
		}

		interior := r.width() - ltw - rtw
		if interior >= minTextWidth {
			label := elide(r.sample.Str, int(interior/approxCharWidth))
			if label != "" {
				prims = append(prims, Text(label, (x0+ltw+x1-rtw)/2, yMid, 0.5, 0.5, st.Text))
			}
		}
	}
	return prims
}

// Kind returns the sample kind of the region's value.
func (r busRegion) Kind() wave.SampleKind { return r.sample.Kind }

// busRegions groups columns into maximal same-value runs. Columns
// before the first transition carry no value and produce no region.
func busRegions(cols []wave.ColumnRecord) []busRegion {
	var regions []busRegion
	open := false
	for _, c := range cols {
		if !c.HasValue {
			open = false
			continue
		}
		if !open || c.Start {
			regions = append(regions, busRegion{x0: c.X, x1: c.X, sample: c.Sample, aliased: c.Aliased})
			open = true
			continue
		}
		last := &regions[len(regions)-1]
		last.x1 = c.X
		last.aliased = last.aliased || c.Aliased
	}
	return regions
}

// elide truncates s to at most max runes, replacing the tail with a
// single period when it does not fit.
func elide(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "."
	}
	return string(runes[:max-1]) + "."
}
