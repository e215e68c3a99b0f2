// Package canvas renders frames from trace data and caches the result
// keyed on a parameter hash. At most one render pass runs at a time;
// requests arriving mid-pass coalesce into a single follow-up pass.
package canvas

import (
	"image"
	"log/slog"
	"sync"

	"github.com/ripopov/wavescout/internal/trace"
	"github.com/ripopov/wavescout/internal/wave"
)

// State is the orchestrator's render state.
type State int

const (
	// Idle means the cached image matches the last requested params.
	Idle State = iota
	// Dirty means a request arrived but no pass has started yet.
	Dirty
	// Rendering means a pass is in flight.
	Rendering
)

// Canvas owns the render loop for one trace. Request is safe to call
// from any goroutine; Image returns the latest completed frame.
type Canvas struct {
	db     trace.DB
	ranges *wave.RangeCache
	log    *slog.Logger

	// notify, when set, runs after a new frame installs. Called off
	// the caller's goroutine.
	notify func()

	mu       sync.Mutex
	state    State
	pending  Params
	lastHash uint64
	img      image.Image
	imgHash  uint64
}

// New creates a canvas over db. notify may be nil.
func New(db trace.DB, log *slog.Logger, notify func()) *Canvas {
	if log == nil {
		log = slog.New(discardHandler{})
	}
	return &Canvas{
		db:     db,
		ranges: wave.NewRangeCache(),
		log:    log,
		notify: notify,
	}
}

// Image returns the most recently completed frame and its param hash.
// Nil until the first pass finishes.
func (c *Canvas) Image() (image.Image, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img, c.imgHash
}

// State returns the current render state.
func (c *Canvas) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Request asks for a frame with the given params. If the cached frame
// already matches, the request is a no-op. If a pass is in flight the
// params are queued, replacing any previously queued params, and a
// single follow-up pass runs when the current one finishes.
func (c *Canvas) Request(p Params) {
	hash := p.Hash()

	c.mu.Lock()
	if hash == c.imgHash && c.img != nil && c.state == Idle {
		c.mu.Unlock()
		return
	}
	c.pending = p
	c.lastHash = hash
	if c.state == Rendering {
		// in-flight pass picks this up when it finishes
		c.mu.Unlock()
		return
	}
	c.state = Rendering
	c.mu.Unlock()

	go c.run(p, hash)
}

// run executes render passes until no newer request is queued.
func (c *Canvas) run(p Params, hash uint64) {
	for {
		img, err := renderFrame(p, c.db, c.ranges, c.log)

		c.mu.Lock()
		if err != nil {
			c.log.Error("render pass failed", "err", err)
		} else if hash == c.lastHash {
			c.img = img
			c.imgHash = hash
		} else {
			// params changed mid-pass, discard the stale frame
			c.log.Debug("stale frame discarded", "hash", hash)
		}

		if c.lastHash != hash {
			// a newer request arrived during the pass
			p = c.pending
			hash = c.lastHash
			c.mu.Unlock()
			continue
		}
		c.state = Idle
		notify := c.notify
		c.mu.Unlock()

		if notify != nil && err == nil {
			notify()
		}
		return
	}
}

// InvalidateRanges drops cached value ranges, forcing recomputation on
// the next frame. Used when a signal's format changes.
func (c *Canvas) InvalidateRanges() {
	c.ranges.Invalidate()
}
