package wave

import (
	"math"
	"sync"

	"github.com/ripopov/wavescout/internal/trace"
)

// Range is a numeric min/max pair used for analog plot scaling.
type Range struct {
	Min float64
	Max float64
}

// maxVisibleEntries bounds the per-signal viewport range memo. Stale
// viewport entries are cheap to recompute, so a small window suffices.
const maxVisibleEntries = 8

type visibleEntry struct {
	left, right float64
	r           Range
}

type signalRanges struct {
	global    Range
	hasGlobal bool
	visible   []visibleEntry
}

// RangeCache memoizes numeric min/max over signal transitions. Global
// entries live for the signal's lifetime; visible-window entries are
// keyed by viewport bounds and evicted oldest-first. The cache is an
// explicit object owned by its canvas, never shared ambient state.
type RangeCache struct {
	mu      sync.Mutex
	signals map[trace.SignalID]*signalRanges
}

// NewRangeCache returns an empty cache.
func NewRangeCache() *RangeCache {
	return &RangeCache{signals: make(map[trace.SignalID]*signalRanges)}
}

// Get returns the scaling range for a signal. GLOBAL mode scans every
// transition once and is then served from cache; VISIBLE mode scans
// only transitions inside the viewport and memoizes per viewport
// bounds. A signal with zero numeric samples yields the degenerate
// range (0, 0).
func (c *RangeCache) Get(id trace.SignalID, transitions []trace.Transition, format DataFormat, bitWidth int, mode ScalingMode, vp Viewport) Range {
	c.mu.Lock()
	defer c.mu.Unlock()

	sr := c.signals[id]
	if sr == nil {
		sr = &signalRanges{}
		c.signals[id] = sr
	}

	if mode == ScaleGlobal {
		if !sr.hasGlobal {
			sr.global = scanRange(transitions, format, bitWidth, 0, trace.Time(math.MaxInt64))
			sr.hasGlobal = true
		}
		return sr.global
	}

	for _, e := range sr.visible {
		if e.left == vp.Left && e.right == vp.Right {
			return e.r
		}
	}
	r := scanRange(transitions, format, bitWidth, vp.StartTime(), vp.EndTime())
	if len(sr.visible) >= maxVisibleEntries {
		sr.visible = sr.visible[1:]
	}
	sr.visible = append(sr.visible, visibleEntry{left: vp.Left, right: vp.Right, r: r})
	return r
}

// Invalidate drops every entry. Called when the underlying trace is
// reloaded.
func (c *RangeCache) Invalidate() {
	c.mu.Lock()
	c.signals = make(map[trace.SignalID]*signalRanges)
	c.mu.Unlock()
}

func scanRange(transitions []trace.Transition, format DataFormat, bitWidth int, t0, t1 trace.Time) Range {
	lo := math.Inf(1)
	hi := math.Inf(-1)
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
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	if math.IsInf(lo, 1) {
		return Range{}
	}
	return Range{Min: lo, Max: hi}
}
