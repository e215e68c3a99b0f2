package render

import (
	"math"
	"strconv"

	"github.com/ripopov/wavescout/internal/trace"
	"github.com/ripopov/wavescout/internal/wave"
	"github.com/ripopov/wavescout/pkg/timefmt"
)

// niceSteps are the allowed tick step mantissas, scaled by powers of
// ten until the resulting label count fits the canvas.
var niceSteps = []float64{1, 2, 2.5, 5, 10, 20, 25, 50}

// Tick is one ruler tick: a time position, its pixel column and a
// formatted label.
type Tick struct {
	Time  float64 // raw simulation time units
	X     float64
	Label string
}

// TickParams feeds ComputeTicks.
type TickParams struct {
	Canvas    int     // canvas width in pixels
	Density   float64 // 0.5 sparse .. 1.0 dense
	Timescale trace.Timescale
	Unit      timefmt.Unit
	// Measure returns the pixel width of a label string. Ticks are
	// spaced so worst-case labels never overlap.
	Measure func(string) float64
}

// labelPadding separates adjacent ruler labels.
const labelPadding = 10

// ComputeTicks lays out ruler ticks for the visible window. The step
// is the smallest nice-number step whose worst-case label count still
// fits the canvas without overlap. Returns the ticks and the chosen
// step in raw time units.
func ComputeTicks(vp wave.Viewport, p TickParams) ([]Tick, float64) {
	start := float64(vp.StartTime())
	end := float64(vp.EndTime())
	visible := end - start
	if visible <= 0 || p.Canvas <= 0 {
		return nil, 0
	}

	density := p.Density
	if density <= 0 {
		density = 0.8
	}

	// Worst-case label width: the larger-magnitude boundary formatted
	// at a fine precision.
	sample := timefmt.Format(p.Timescale.ToSeconds(end), p.Unit, p.Timescale.ToSeconds(visible/1000))
	labelW := p.Measure(sample) + labelPadding
	maxTicks := float64(p.Canvas) * density / labelW
	if maxTicks < 1 {
		maxTicks = 1
	}

	step := nicestStep(visible, maxTicks)
	stepSeconds := p.Timescale.ToSeconds(step)

	var ticks []Tick
	for t := math.Floor(start/step) * step; t <= end+step/2; t += step {
		if t < start {
			continue
		}
		x := vp.TimeToPixelF(trace.Time(math.Round(t)), p.Canvas)
		if x < 0 || x > float64(p.Canvas) {
			continue
		}
		ticks = append(ticks, Tick{
			Time:  t,
			X:     x,
			Label: timefmt.Format(p.Timescale.ToSeconds(t), p.Unit, stepSeconds),
		})
	}
	return ticks, step
}

// nicestStep picks the smallest step from the nice-number set such
// that visible/step does not exceed maxTicks.
func nicestStep(visible, maxTicks float64) float64 {
	minStep := visible / maxTicks
	exp := math.Floor(math.Log10(minStep))
	for {
		base := math.Pow(10, exp)
		for _, m := range niceSteps {
			step := m * base
			if step >= minStep {
				return step
			}
		}
		exp++
	}
}

// ClockTick is one clock-aligned ruler tick: the cycle number renders
// above the absolute time.
type ClockTick struct {
	X     float64
	Cycle int64
	Time  string
}

// ComputeClockTicks replaces time ticks with clock-edge-aligned ticks.
// Tick spacing is a nice multiple of the clock period so cycle labels
// stay round numbers.
func ComputeClockTicks(vp wave.Viewport, p TickParams, clk wave.Clock) []ClockTick {
	if clk.Period <= 0 || p.Canvas <= 0 {
		return nil
	}
	start := float64(vp.StartTime())
	end := float64(vp.EndTime())
	visible := end - start

	density := p.Density
	if density <= 0 {
		density = 0.8
	}
	lastCycle := clk.CycleAt(vp.EndTime())
	labelW := p.Measure("cycle "+strconv.FormatInt(lastCycle, 10)) + labelPadding
	maxTicks := float64(p.Canvas) * density / labelW
	if maxTicks < 1 {
		maxTicks = 1
	}

	period := float64(clk.Period)
	cycleStep := math.Max(1, math.Ceil(nicestStep(visible/period, maxTicks)))
	stepSeconds := p.Timescale.ToSeconds(cycleStep * period)

	firstCycle := int64(math.Ceil((start - float64(clk.Phase)) / period))
	firstCycle -= firstCycle % int64(cycleStep)
	if firstCycle < 0 {
		firstCycle = 0
	}

	var ticks []ClockTick
	for c := firstCycle; ; c += int64(cycleStep) {
		t := float64(clk.Phase) + float64(c)*period
		if t > end {
			break
		}
		if t < start {
			continue
		}
		x := vp.TimeToPixelF(trace.Time(math.Round(t)), p.Canvas)
		ticks = append(ticks, ClockTick{
			X:     x,
			Cycle: c,
			Time:  timefmt.Format(p.Timescale.ToSeconds(t), p.Unit, stepSeconds),
		})
	}
	return ticks
}
