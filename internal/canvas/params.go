package canvas

import (
	"hash/fnv"
	"math"

	"github.com/ripopov/wavescout/internal/config"
	"github.com/ripopov/wavescout/internal/trace"
	"github.com/ripopov/wavescout/internal/wave"
	"github.com/ripopov/wavescout/pkg/timefmt"
)

// Row describes one signal row in the frame.
type Row struct {
	ID     trace.SignalID
	Name   string
	Format wave.SignalFormat
}

// Params fully determines the pixels of one rendered frame. Two Params
// with equal hashes produce identical frames, which is what makes the
// render cache sound.
type Params struct {
	Width, Height int
	Viewport      wave.Viewport
	Rows          []Row
	RowHeight     int
	HeaderHeight  int
	Theme         config.ThemeConfig
	TickDensity   float64
	TextSize      float64
	TimeUnit      timefmt.Unit
	ShowGridLines bool
	// Selected is the index of the highlighted row, -1 for none.
	Selected int
	// Clock enables clock-aligned ruler ticks when non-nil.
	Clock *wave.Clock
}

// Hash folds every frame-affecting field into an FNV-1a digest.
func (p Params) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)

	u64 := func(v uint64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf)
	}
	f64 := func(v float64) { u64(math.Float64bits(v)) }
	str := func(s string) { h.Write([]byte(s)); h.Write([]byte{0}) }

	u64(uint64(p.Width))
	u64(uint64(p.Height))
	f64(p.Viewport.Left)
	f64(p.Viewport.Right)
	u64(uint64(p.Viewport.TotalDuration))
	u64(uint64(p.RowHeight))
	u64(uint64(p.HeaderHeight))
	f64(p.TickDensity)
	f64(p.TextSize)
	u64(uint64(p.TimeUnit))
	u64(uint64(int64(p.Selected)))
	if p.ShowGridLines {
		u64(1)
	} else {
		u64(0)
	}
	if p.Clock != nil {
		u64(uint64(p.Clock.Period))
		u64(uint64(p.Clock.Phase))
	}

	for _, r := range p.Rows {
		u64(uint64(r.ID))
		str(r.Name)
		u64(uint64(r.Format.Kind))
		u64(uint64(r.Format.Format))
		u64(uint64(r.Format.Scaling))
		u64(uint64(r.Format.HeightScale))
		str(r.Format.Color)
	}

	str(p.Theme.Background)
	str(p.Theme.BackgroundValid)
	str(p.Theme.HeaderBackground)
	str(p.Theme.RulerLine)
	str(p.Theme.GridLine)
	str(p.Theme.Text)
	str(p.Theme.TextMuted)
	str(p.Theme.Undefined)
	str(p.Theme.HighImpedance)
	for _, c := range p.Theme.SignalColors {
		str(c)
	}
	return h.Sum64()
}

// rowBand returns the top y and pixel height of row i, honoring the
// per-row height scale.
func (p Params) rowBand(i int) (top, height int) {
	top = p.HeaderHeight
	for j := 0; j < i; j++ {
		top += p.RowHeight * scaleOf(p.Rows[j])
	}
	return top, p.RowHeight * scaleOf(p.Rows[i])
}

// textSize returns the label font size, defaulting when unset.
func (p Params) textSize() float64 {
	if p.TextSize <= 0 {
		return 10
	}
	return p.TextSize
}

func scaleOf(r Row) int {
	if r.Format.HeightScale < 1 {
		return 1
	}
	return r.Format.HeightScale
}
