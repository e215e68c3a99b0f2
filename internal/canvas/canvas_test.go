package canvas

import (
	"testing"
	"time"

	"github.com/ripopov/wavescout/internal/config"
	"github.com/ripopov/wavescout/internal/trace"
	"github.com/ripopov/wavescout/internal/wave"
	"github.com/ripopov/wavescout/pkg/timefmt"
)

// stubDB is an in-memory trace backend for render tests.
type stubDB struct {
	vars        []trace.Var
	transitions map[trace.SignalID][]trace.Transition
	duration    trace.Time
}

func (s *stubDB) Vars() []trace.Var                    { return s.vars }
func (s *stubDB) EnsureLoaded(...trace.SignalID) error { return nil }
func (s *stubDB) BitWidth(id trace.SignalID) int       { return s.vars[id].Width }
func (s *stubDB) TotalDuration() trace.Time            { return s.duration }
func (s *stubDB) Timescale() trace.Timescale {
	return trace.Timescale{Factor: 1, Unit: trace.Nanoseconds}
}

func (s *stubDB) Transitions(id trace.SignalID) ([]trace.Transition, error) {
	tr, ok := s.transitions[id]
	if !ok {
		return nil, trace.ErrNoSuchSignal
	}
	return tr, nil
}

func newStubDB() *stubDB {
	return &stubDB{
		vars: []trace.Var{
			{ID: 0, Name: "clk", Width: 1, Type: trace.VarWire},
			{ID: 1, Name: "data", Width: 8, Type: trace.VarWire},
		},
		transitions: map[trace.SignalID][]trace.Transition{
			0: {
				{Time: 0, Val: trace.BitsValue(0)},
				{Time: 500, Val: trace.BitsValue(1)},
				{Time: 1000, Val: trace.BitsValue(0)},
			},
			1: {
				{Time: 0, Val: trace.BitsValue(0x12)},
				{Time: 700, Val: trace.BitsValue(0xAB)},
			},
		},
		duration: 2000,
	}
}

func testParams(db *stubDB) Params {
	rows := make([]Row, len(db.vars))
	for i, v := range db.vars {
		rows[i] = Row{ID: v.ID, Name: v.Name, Format: wave.DefaultFormat(v)}
	}
	return Params{
		Width:        200,
		Height:       100,
		Viewport:     wave.NewViewport(db.duration),
		Rows:         rows,
		RowHeight:    20,
		HeaderHeight: 24,
		Theme:        config.DefaultConfig().Theme,
		TickDensity:  0.8,
		TimeUnit:     timefmt.Nanoseconds,
		Selected:     -1,
	}
}

func TestParamsHashDeterministic(t *testing.T) {
	db := newStubDB()
	p := testParams(db)
	if p.Hash() != p.Hash() {
		t.Fatal("hash is not deterministic")
	}

	q := testParams(db)
	if p.Hash() != q.Hash() {
		t.Fatal("equal params must hash equal")
	}
}

func TestParamsHashSensitivity(t *testing.T) {
	db := newStubDB()
	base := testParams(db).Hash()

	p := testParams(db)
	p.Width = 201
	if p.Hash() == base {
		t.Error("width change must change the hash")
	}

	p = testParams(db)
	p.Viewport = p.Viewport.ZoomToRange(100, 900)
	if p.Hash() == base {
		t.Error("viewport change must change the hash")
	}

	p = testParams(db)
	p.Rows[1].Format.Format = wave.Signed
	if p.Hash() == base {
		t.Error("format change must change the hash")
	}

	p = testParams(db)
	p.Rows = p.Rows[:1]
	if p.Hash() == base {
		t.Error("row set change must change the hash")
	}
}

func waitNotify(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for a frame")
	}
}

func TestCanvasRendersAndCaches(t *testing.T) {
	db := newStubDB()
	notify := make(chan struct{}, 8)
	c := New(db, nil, func() { notify <- struct{}{} })

	p := testParams(db)
	c.Request(p)
	waitNotify(t, notify)

	img, hash := c.Image()
	if img == nil {
		t.Fatal("no image after render")
	}
	if hash != p.Hash() {
		t.Fatalf("image hash %x, want %x", hash, p.Hash())
	}
	if c.State() != Idle {
		t.Errorf("state = %v, want Idle", c.State())
	}

	// identical request must be served from cache without a new pass
	c.Request(p)
	select {
	case <-notify:
		t.Error("cache hit triggered a render pass")
	case <-time.After(100 * time.Millisecond):
	}
	img2, _ := c.Image()
	if img2 != img {
		t.Error("cache hit replaced the image")
	}
}

func TestCanvasLatestRequestWins(t *testing.T) {
	db := newStubDB()
	notify := make(chan struct{}, 64)
	c := New(db, nil, func() { notify <- struct{}{} })

	// a burst of requests with different viewports: only the last one
	// matters
	var last Params
	for i := 1; i <= 10; i++ {
		p := testParams(db)
		p.Viewport = p.Viewport.ZoomToRange(0, trace.Time(i*100))
		c.Request(p)
		last = p
	}

	deadline := time.Now().Add(10 * time.Second)
	for {
		waitNotify(t, notify)
		_, hash := c.Image()
		if hash == last.Hash() && c.State() == Idle {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("final image hash %x never matched the last request %x", hash, last.Hash())
		}
	}
}

func TestSnapshot(t *testing.T) {
	db := newStubDB()
	p := testParams(db)
	img, err := Snapshot(p, db, nil)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() != p.Width || b.Dy() != p.Height {
		t.Errorf("snapshot size %dx%d, want %dx%d", b.Dx(), b.Dy(), p.Width, p.Height)
	}
}

func TestSignalStatistics(t *testing.T) {
	db := newStubDB()
	st, err := SignalStatistics(db, 1, wave.Unsigned, 0, 2000)
	if err != nil {
		t.Fatal(err)
	}
	if st.Count != 2 {
		t.Fatalf("count = %d, want 2", st.Count)
	}
	if st.Min != 0x12 || st.Max != 0xAB {
		t.Errorf("min/max = %v/%v, want 18/171", st.Min, st.Max)
	}
}
