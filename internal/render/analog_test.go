package render

import (
	"math"
	"testing"

	"github.com/ripopov/wavescout/internal/wave"
)

func analogCols(values []float64) []wave.ColumnRecord {
	cols := make([]wave.ColumnRecord, len(values))
	for x, v := range values {
		cols[x] = wave.ColumnRecord{
			X:        x,
			Sample:   wave.Sample{Num: v},
			HasValue: true,
		}
	}
	return cols
}

func TestAnalogNaNGap(t *testing.T) {
	values := []float64{1, 2, 3, math.NaN(), math.NaN(), 4, 5, 6}
	prims := Analog(analogCols(values), testRow(), testStyle(), wave.Range{Min: 1, Max: 6}, false)

	lines := polylines(prims)
	if len(lines) != 2 {
		t.Fatalf("got %d polylines, want 2 (gap splits the trace)", len(lines))
	}
	if len(lines[0].Points) != 3 || len(lines[1].Points) != 3 {
		t.Errorf("segment lengths = %d, %d, want 3 and 3",
			len(lines[0].Points), len(lines[1].Points))
	}
	// nothing may be drawn across the gap columns
	for _, l := range lines {
		for _, pt := range l.Points {
			if pt.X == 3 || pt.X == 4 {
				t.Errorf("point at gap column x=%v", pt.X)
			}
		}
	}
}

func TestAnalogScaling(t *testing.T) {
	values := []float64{0, 10}
	row := testRow()
	st := testStyle()
	prims := Analog(analogCols(values), row, st, wave.Range{Min: 0, Max: 10}, false)

	lines := polylines(prims)
	if len(lines) != 1 {
		t.Fatalf("got %d polylines, want 1", len(lines))
	}
	p0, p1 := lines[0].Points[0], lines[0].Points[1]
	if p0.Y <= p1.Y {
		t.Errorf("larger value must map higher on screen: y(0)=%v, y(10)=%v", p0.Y, p1.Y)
	}
	yHigh, yLow := row.Inset(st.Margin)
	for _, pt := range lines[0].Points {
		if pt.Y < yHigh || pt.Y > yLow {
			t.Errorf("point y=%v escapes the row band [%v,%v]", pt.Y, yHigh, yLow)
		}
	}
}

func TestAnalogAliasedIndicator(t *testing.T) {
	cols := analogCols([]float64{1, 2, 3})
	cols[1].Aliased = true
	prims := Analog(cols, testRow(), testStyle(), wave.Range{Min: 1, Max: 3}, false)

	found := false
	for _, p := range prims {
		if p.Kind == PrimVLine && p.X == 1 {
			found = true
		}
	}
	if !found {
		t.Error("aliased column must draw a vertical indicator")
	}
}

func TestAnalogRangeLabels(t *testing.T) {
	prims := Analog(analogCols([]float64{0, 5}), testRow(), testStyle(), wave.Range{Min: 0, Max: 5}, true)
	var texts []string
	for _, p := range prims {
		if p.Kind == PrimText {
			texts = append(texts, p.Text)
		}
	}
	if len(texts) != 2 || texts[0] != "5" || texts[1] != "0" {
		t.Errorf("range labels = %v, want [5 0]", texts)
	}
}

func TestAnalogDegenerateRange(t *testing.T) {
	// constant signal: range (3,3) must not divide by zero
	prims := Analog(analogCols([]float64{3, 3, 3}), testRow(), testStyle(), wave.Range{Min: 3, Max: 3}, false)
	lines := polylines(prims)
	if len(lines) != 1 {
		t.Fatalf("got %d polylines, want 1", len(lines))
	}
	for _, pt := range lines[0].Points {
		if math.IsNaN(pt.Y) || math.IsInf(pt.Y, 0) {
			t.Fatal("degenerate range produced a non-finite coordinate")
		}
	}
}
