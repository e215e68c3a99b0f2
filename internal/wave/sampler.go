package wave

import (
	"sort"

	"github.com/ripopov/wavescout/internal/trace"
)

// ColumnRecord is the aggregated drawing record for one pixel column of
// one signal row. Records are rebuilt on every sampling pass and never
// mutated afterwards.
type ColumnRecord struct {
	X      int
	Sample Sample

	// Start is true on the column where this value first appears, i.e.
	// a region boundary. Renderers use it to find transitions.
	Start bool

	// Hit is true when at least one transition landed in this column,
	// even if the display string did not change. Event markers key on
	// it, since repeated events carry identical values.
	Hit bool

	// Aliased is true when two or more transitions were consumed into
	// this column, so the shown value is only the last of several.
	Aliased bool

	// HasValue is false before the signal's first transition; such
	// columns render as a gap.
	HasValue bool
}

// SampleColumns walks a signal's transitions once and produces one
// ColumnRecord per pixel column in [0, canvasWidth). The pass is
// O(transitions + columns): a moving pointer consumes transitions per
// column and never rewinds. A column with no transitions inherits the
// previous column's held value; the effective value of a column with
// several is the last one (last-write-wins).
func SampleColumns(transitions []trace.Transition, vp Viewport, canvasWidth int, format DataFormat, bitWidth int) []ColumnRecord {
	if canvasWidth <= 0 {
		return nil
	}
	cols := make([]ColumnRecord, canvasWidth)

	startTime := vp.Left * float64(vp.TotalDuration)

	// Seed the held value with the last transition at or before the
	// window start, so column 0 sees held-value semantics too.
	ptr := sort.Search(len(transitions), func(i int) bool {
		return float64(transitions[i].Time) >= startTime
	})
	held := undefinedSample
	hasValue := false
	if ptr > 0 {
		held = Interpret(transitions[ptr-1].Val, format, bitWidth)
		hasValue = true
	}

	for x := 0; x < canvasWidth; x++ {
		end := vp.columnEndTime(x, canvasWidth)
		consumed := 0
		for ptr < len(transitions) && float64(transitions[ptr].Time) < end {
			consumed++
			ptr++
		}
		rec := ColumnRecord{X: x}
		if consumed > 0 {
			next := Interpret(transitions[ptr-1].Val, format, bitWidth)
			rec.Start = !hasValue || next.Str != held.Str
			held = next
			hasValue = true
			rec.Hit = true
			rec.Aliased = consumed >= 2
		}
		rec.Sample = held
		rec.HasValue = hasValue
		cols[x] = rec
	}
	return cols
}
