package canvas

import (
	"image"
	"log/slog"
	"strconv"
	"time"

	"github.com/gogpu/gg"

	"github.com/ripopov/wavescout/internal/render"
	"github.com/ripopov/wavescout/internal/trace"
	"github.com/ripopov/wavescout/internal/wave"
)

// Snapshot renders one frame synchronously, bypassing the cache. Used
// for PNG export where no interactive loop exists.
func Snapshot(p Params, db trace.DB, log *slog.Logger) (image.Image, error) {
	if log == nil {
		log = slog.New(discardHandler{})
	}
	return renderFrame(p, db, wave.NewRangeCache(), log)
}

// renderFrame draws one complete frame: backgrounds, grid, every
// signal row, then the time ruler on top.
func renderFrame(p Params, db trace.DB, ranges *wave.RangeCache, log *slog.Logger) (image.Image, error) {
	started := time.Now()

	ids := make([]trace.SignalID, len(p.Rows))
	for i, r := range p.Rows {
		ids[i] = r.ID
	}
	if err := db.EnsureLoaded(ids...); err != nil {
		return nil, err
	}

	dc := gg.NewContext(p.Width, p.Height)
	dc.ClearWithColor(gg.Hex(p.Theme.Background))

	face, err := render.FontFace(p.textSize())
	if err != nil {
		return nil, err
	}
	dc.SetFont(face)
	painter := render.NewPainter(dc)

	// recorded-range background
	x0 := p.Viewport.TimeToPixelF(0, p.Width)
	x1 := p.Viewport.TimeToPixelF(db.TotalDuration(), p.Width)
	if x1 > x0 {
		painter.Paint([]render.Primitive{
			render.Rect(x0, 0, x1-x0, float64(p.Height), p.Theme.BackgroundValid, true),
		})
	}

	ticks := computeTicks(p, db, painter)
	if p.ShowGridLines {
		painter.Paint(gridPrimitives(p, ticks))
	}

	for i, row := range p.Rows {
		prims, err := rowPrimitives(p, db, ranges, i, row)
		if err != nil {
			return nil, err
		}
		painter.Paint(prims)
	}

	painter.Paint(rulerPrimitives(p, ticks))

	log.Debug("frame rendered",
		"width", p.Width, "height", p.Height,
		"rows", len(p.Rows), "elapsed", time.Since(started))
	return dc.Image(), nil
}

// tickSet unifies plain and clock-aligned ruler ticks for layout.
type tickSet struct {
	plain []render.Tick
	clock []render.ClockTick
}

func computeTicks(p Params, db trace.DB, painter *render.Painter) tickSet {
	tp := render.TickParams{
		Canvas:    p.Width,
		Density:   p.TickDensity,
		Timescale: db.Timescale(),
		Unit:      p.TimeUnit,
		Measure:   painter.MeasureString,
	}
	if p.Clock != nil {
		return tickSet{clock: render.ComputeClockTicks(p.Viewport, tp, *p.Clock)}
	}
	plain, _ := render.ComputeTicks(p.Viewport, tp)
	return tickSet{plain: plain}
}

func (t tickSet) xs() []float64 {
	if t.clock != nil {
		xs := make([]float64, len(t.clock))
		for i, c := range t.clock {
			xs[i] = c.X
		}
		return xs
	}
	xs := make([]float64, len(t.plain))
	for i, c := range t.plain {
		xs[i] = c.X
	}
	return xs
}

// gridPrimitives draws faint vertical lines under the signal rows at
// each tick position.
func gridPrimitives(p Params, ticks tickSet) []render.Primitive {
	top := float64(p.HeaderHeight)
	h := float64(p.Height) - top
	var prims []render.Primitive
	for _, x := range ticks.xs() {
		prims = append(prims, render.VLine(x, top, h, p.Theme.GridLine, 1))
	}
	return prims
}

// rulerPrimitives draws the header band, tick marks and labels. Clock
// mode stacks the cycle count above the absolute time.
func rulerPrimitives(p Params, ticks tickSet) []render.Primitive {
	hh := float64(p.HeaderHeight)
	prims := []render.Primitive{
		render.Rect(0, 0, float64(p.Width), hh, p.Theme.HeaderBackground, true),
		render.Polyline([]render.Point{{X: 0, Y: hh}, {X: float64(p.Width), Y: hh}}, p.Theme.RulerLine, 1),
	}
	if ticks.clock != nil {
		for _, t := range ticks.clock {
			prims = append(prims,
				render.VLine(t.X, hh-5, 5, p.Theme.RulerLine, 1),
				render.Text(cycleLabel(t.Cycle), t.X+3, 2, 0, 1, p.Theme.Text),
				render.Text(t.Time, t.X+3, hh-2, 0, 0, p.Theme.TextMuted))
		}
		return prims
	}
	for _, t := range ticks.plain {
		prims = append(prims,
			render.VLine(t.X, hh-5, 5, p.Theme.RulerLine, 1),
			render.Text(t.Label, t.X+3, hh-8, 0, 0, p.Theme.Text))
	}
	return prims
}

func cycleLabel(c int64) string {
	return "cycle " + strconv.FormatInt(c, 10)
}

// rowPrimitives samples one signal and emits its waveform primitives.
func rowPrimitives(p Params, db trace.DB, ranges *wave.RangeCache, i int, row Row) ([]render.Primitive, error) {
	transitions, err := db.Transitions(row.ID)
	if err != nil {
		return nil, err
	}
	bw := db.BitWidth(row.ID)
	cols := wave.SampleColumns(transitions, p.Viewport, p.Width, row.Format.Format, bw)

	top, height := p.rowBand(i)
	bounds := render.RowBounds{Top: float64(top), Height: float64(height)}
	color := row.Format.Color
	if color == "" {
		color = p.Theme.SignalColor(i)
	}
	st := render.Style{
		Color:         color,
		Undefined:     p.Theme.Undefined,
		HighImpedance: p.Theme.HighImpedance,
		Text:          p.Theme.Text,
		Margin:        2,
	}

	var prims []render.Primitive
	switch row.Format.Kind {
	case wave.KindBool:
		prims = render.Bool(cols, bounds, st)
	case wave.KindAnalog:
		rng := ranges.Get(row.ID, transitions, row.Format.Format, bw, row.Format.Scaling, p.Viewport)
		showLabels := row.Format.HeightScale > 1
		prims = render.Analog(cols, bounds, st, rng, showLabels)
	case wave.KindEvent:
		prims = render.Event(cols, bounds, st)
	default:
		prims = render.Bus(cols, bounds, st)
	}

	nameColor := p.Theme.TextMuted
	name := row.Name
	if i == p.Selected {
		nameColor = p.Theme.Cursor
		name = "> " + name
	}
	prims = append(prims, render.Text(name, 4, bounds.Top+2, 0, 1, nameColor))
	return prims, nil
}
