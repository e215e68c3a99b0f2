package wave

import (
	"math"

	"github.com/ripopov/wavescout/internal/trace"
)

// Stats are aggregate measurements over a signal's numeric values in a
// time range. Count is the number of numeric (non-NaN) samples seen;
// with Count zero all other fields are zero.
type Stats struct {
	Min   float64
	Max   float64
	Sum   float64
	Count int
}

// Mean returns Sum/Count, or 0 when no samples were counted.
func (s Stats) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Statistics computes Stats over the transitions whose time lies in
// [t0, t1], interpreting values the same way rendering does. Undefined
// and high-impedance values are skipped, never counted as zero.
func Statistics(transitions []trace.Transition, format DataFormat, bitWidth int, t0, t1 trace.Time) Stats {
	var st Stats
	st.Min = math.Inf(1)
	st.Max = math.Inf(-1)
	for _, tr := range transitions {
		if tr.Time < t0 {
			continue
		}
		if tr.Time > t1 {
			break
		}
		n := Interpret(tr.Val, format, bitWidth).Num
		if math.IsNaN(n) {
			continue
		}
		st.Count++
		st.Sum += n
		if n < st.Min {
			st.Min = n
		}
		if n > st.Max {
			st.Max = n
		}
	}
	if st.Count == 0 {
		return Stats{}
	}
	return st
}
