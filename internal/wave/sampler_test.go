package wave

import (
	"testing"

	"github.com/ripopov/wavescout/internal/trace"
)

func bits(at trace.Time, v uint64) trace.Transition {
	return trace.Transition{Time: at, Val: trace.BitsValue(v)}
}

func TestSampleColumnsScenario(t *testing.T) {
	// 0 -> "0", 5 -> "1", 5000 -> "0" over a 0..10000 view on 100px.
	transitions := []trace.Transition{bits(0, 0), bits(5, 1), bits(5000, 0)}
	vp := NewViewport(10000)
	cols := SampleColumns(transitions, vp, 100, Unsigned, 1)

	if len(cols) != 100 {
		t.Fatalf("got %d columns, want 100", len(cols))
	}
	// each column covers 100 time units; both early transitions land
	// in column 0
	if !cols[0].HasValue {
		t.Fatal("column 0 should carry a value")
	}
	if cols[0].Sample.Str != "1" {
		t.Errorf("column 0 shows %q, want last-write-wins \"1\"", cols[0].Sample.Str)
	}
	if !cols[0].Aliased {
		t.Error("column 0 consumed two transitions, should be aliased")
	}

	if got := cols[50]; got.Sample.Str != "0" || !got.Start {
		t.Errorf("column 50 = (%q, start=%v), want transition to \"0\"", got.Sample.Str, got.Start)
	}
	for x := 1; x < 100; x++ {
		if cols[x].Aliased {
			t.Errorf("column %d aliased, only column 0 should be", x)
		}
	}
	for x := 51; x < 100; x++ {
		if cols[x].Start || cols[x].Sample.Str != "0" {
			t.Errorf("column %d should hold \"0\" quietly", x)
		}
	}
}

func TestSampleColumnsHeldValueBeforeWindow(t *testing.T) {
	// the only transition is before the visible window
	transitions := []trace.Transition{bits(100, 42)}
	vp := NewViewport(10000)
	vp.Left, vp.Right = 0.5, 1.0

	cols := SampleColumns(transitions, vp, 10, Unsigned, 8)
	if !cols[0].HasValue {
		t.Fatal("held value from before the window must seed column 0")
	}
	if cols[0].Sample.Str != "42" {
		t.Errorf("column 0 = %q, want held \"42\"", cols[0].Sample.Str)
	}
	if cols[0].Start {
		t.Error("held value is not a region start")
	}
}

func TestSampleColumnsUndefinedBeforeFirstTransition(t *testing.T) {
	transitions := []trace.Transition{bits(5000, 1)}
	vp := NewViewport(10000)

	cols := SampleColumns(transitions, vp, 100, Unsigned, 1)
	for x := 0; x < 50; x++ {
		if cols[x].HasValue {
			t.Fatalf("column %d has a value before the first transition", x)
		}
	}
	if !cols[50].HasValue || !cols[50].Start {
		t.Errorf("column 50 should start the first region: %+v", cols[50])
	}
}

func TestSampleColumnsAliasingDense(t *testing.T) {
	// 10 transitions inside one column on a 10px canvas over 0..1000
	var transitions []trace.Transition
	for i := 0; i < 10; i++ {
		transitions = append(transitions, bits(trace.Time(i), uint64(i%2)))
	}
	vp := NewViewport(1000)

	cols := SampleColumns(transitions, vp, 10, Unsigned, 1)
	if !cols[0].Aliased {
		t.Error("column 0 swallowed 10 transitions, must be aliased")
	}
	if cols[0].Sample.Str != "1" {
		t.Errorf("column 0 = %q, want the last value \"1\"", cols[0].Sample.Str)
	}
	for x := 1; x < 10; x++ {
		if cols[x].Aliased || cols[x].Sample.Str != "1" {
			t.Errorf("column %d = %+v, want quiet held \"1\"", x, cols[x])
		}
	}
}

func TestSampleColumnsGlitchKeepsStartFalse(t *testing.T) {
	// value returns to "0" within one column: aliased but no new region
	transitions := []trace.Transition{bits(0, 0), bits(500, 1), bits(501, 0)}
	vp := NewViewport(10000)

	cols := SampleColumns(transitions, vp, 100, Unsigned, 1)
	glitch := cols[5]
	if !glitch.Aliased {
		t.Error("glitch column must be aliased")
	}
	if glitch.Start {
		t.Error("display string did not change, Start must stay false")
	}
}

func TestSampleColumnsEmpty(t *testing.T) {
	vp := NewViewport(1000)
	cols := SampleColumns(nil, vp, 10, Unsigned, 1)
	for _, c := range cols {
		if c.HasValue {
			t.Fatal("empty signal must produce no values")
		}
	}
	if got := SampleColumns(nil, vp, 0, Unsigned, 1); got != nil {
		t.Error("zero-width canvas must produce nil")
	}
}
