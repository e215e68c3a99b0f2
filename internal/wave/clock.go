package wave

import "github.com/ripopov/wavescout/internal/trace"

// Clock is a period/phase pair driving the clock-aligned ruler mode.
// Edges occur at Phase + n*Period.
type Clock struct {
	Period trace.Time
	Phase  trace.Time
}

// CycleAt returns the cycle number containing t.
func (c Clock) CycleAt(t trace.Time) int64 {
	if c.Period <= 0 {
		return 0
	}
	return int64((t - c.Phase) / c.Period)
}

// DetectClock derives a clock period and phase from a signal's first
// transitions. Boolean signals use the distance between the first two
// rising edges; events and counters use the first two transitions. The
// second return is false when the signal has too few transitions to
// derive a period.
func DetectClock(transitions []trace.Transition, kind SignalKind, format DataFormat, bitWidth int) (Clock, bool) {
	if kind == KindBool {
		return detectFromRisingEdges(transitions, format, bitWidth)
	}
	if len(transitions) < 2 {
		return Clock{}, false
	}
	period := transitions[1].Time - transitions[0].Time
	if period <= 0 {
		return Clock{}, false
	}
	return Clock{Period: period, Phase: transitions[0].Time}, true
}

func detectFromRisingEdges(transitions []trace.Transition, format DataFormat, bitWidth int) (Clock, bool) {
	var edges []trace.Time
	prevHigh := false
	for _, tr := range transitions {
		high := Interpret(tr.Val, format, bitWidth).Bool
		if high && !prevHigh {
			edges = append(edges, tr.Time)
			if len(edges) == 2 {
				break
			}
		}
		prevHigh = high
	}
	if len(edges) < 2 || edges[1] <= edges[0] {
		return Clock{}, false
	}
	return Clock{Period: edges[1] - edges[0], Phase: edges[0]}, true
}
