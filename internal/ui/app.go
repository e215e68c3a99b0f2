// Package ui implements the interactive terminal front end.
package ui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ripopov/wavescout/internal/canvas"
	"github.com/ripopov/wavescout/internal/config"
	"github.com/ripopov/wavescout/internal/export"
	"github.com/ripopov/wavescout/internal/trace"
	"github.com/ripopov/wavescout/internal/wave"
	"github.com/ripopov/wavescout/pkg/timefmt"
)

// Mode represents the current UI input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeGoto
	ModeMarker
)

// frameMsg signals that the canvas finished a render pass.
type frameMsg struct{}

// Model is the main application model.
type Model struct {
	db     trace.DB
	path   string
	cfg    *config.Config
	canvas *canvas.Canvas
	frames chan struct{}
	log    *slog.Logger

	vp        wave.Viewport
	rows      []canvas.Row
	selected  int
	rowOffset int

	cursor    trace.Time
	hasCursor bool
	markers   map[int]trace.Time
	roiAnchor trace.Time
	hasROI    bool
	clock     *wave.Clock

	mode   Mode
	input  textinput.Model
	width  int
	height int
	status string
	err    error
}

// NewModel creates the application model over an open trace.
func NewModel(db trace.DB, path string, cfg *config.Config, log *slog.Logger) *Model {
	vars := db.Vars()
	rows := make([]canvas.Row, len(vars))
	for i, v := range vars {
		rows[i] = canvas.Row{ID: v.ID, Name: v.Name, Format: wave.DefaultFormat(v)}
	}

	frames := make(chan struct{}, 1)
	notify := func() {
		select {
		case frames <- struct{}{}:
		default:
		}
	}

	ti := textinput.New()
	ti.Placeholder = "time (e.g. 1.5us)"
	ti.CharLimit = 32

	return &Model{
		db:      db,
		path:    path,
		cfg:     cfg,
		canvas:  canvas.New(db, log, notify),
		frames:  frames,
		log:     log,
		vp:      wave.NewViewport(db.TotalDuration()),
		rows:    rows,
		markers: make(map[int]trace.Time),
		input:   ti,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitFrame()
}

// waitFrame blocks until the canvas reports a completed pass.
func (m *Model) waitFrame() tea.Cmd {
	return func() tea.Msg {
		<-m.frames
		return frameMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.request()
		return m, nil

	case frameMsg:
		return m, m.waitFrame()
	}
	return m, nil
}

// pixelSize returns the waveform image dimensions. Each terminal cell
// is one pixel wide and two pixels tall; two text lines are reserved
// for the status and help bars.
func (m *Model) pixelSize() (w, h int) {
	w = m.width
	h = (m.height - 2) * 2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// visibleRows returns the slice of rows that fit the current canvas
// height, starting at the scroll offset.
func (m *Model) visibleRows() []canvas.Row {
	_, h := m.pixelSize()
	budget := h - m.cfg.Display.HeaderHeight
	var out []canvas.Row
	for i := m.rowOffset; i < len(m.rows) && budget > 0; i++ {
		rh := m.cfg.Display.RowHeight * heightScale(m.rows[i])
		if rh > budget {
			break
		}
		out = append(out, m.rows[i])
		budget -= rh
	}
	return out
}

func heightScale(r canvas.Row) int {
	if r.Format.HeightScale < 1 {
		return 1
	}
	return r.Format.HeightScale
}

// request submits current view parameters to the canvas.
func (m *Model) request() {
	if m.width == 0 {
		return
	}
	w, h := m.pixelSize()
	unit, ok := timefmt.UnitFromString(m.cfg.Ruler.TimeUnit)
	if !ok {
		unit = timefmt.Nanoseconds
	}
	m.canvas.Request(canvas.Params{
		Width:         w,
		Height:        h,
		Viewport:      m.vp,
		Rows:          m.visibleRows(),
		RowHeight:     m.cfg.Display.RowHeight,
		HeaderHeight:  m.cfg.Display.HeaderHeight,
		Theme:         m.cfg.Theme,
		TickDensity:   m.cfg.Ruler.TickDensity,
		TextSize:      m.cfg.Ruler.TextSize,
		TimeUnit:      unit,
		ShowGridLines: m.cfg.Ruler.ShowGridLines,
		Selected:      m.selected - m.rowOffset,
		Clock:         m.clock,
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeGoto:
		return m.handleGotoKey(msg)
	case ModeMarker:
		return m.handleMarkerKey(msg)
	}

	key := msg.String()
	kb := m.cfg.Keybindings
	w, _ := m.pixelSize()

	switch {
	case matchKey(key, kb.Quit):
		return m, tea.Quit

	case matchKey(key, kb.ZoomIn):
		m.vp = m.vp.Zoom(1/1.5, m.anchorPixel(w), w)
	case matchKey(key, kb.ZoomOut):
		m.vp = m.vp.Zoom(1.5, m.anchorPixel(w), w)
	case matchKey(key, kb.PanLeft):
		m.vp = m.vp.PanPixels(-w/10, w)
	case matchKey(key, kb.PanRight):
		m.vp = m.vp.PanPixels(w/10, w)
	case matchKey(key, kb.FitAll):
		m.vp = m.vp.FitAll()

	case matchKey(key, kb.GotoTime):
		m.mode = ModeGoto
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case matchKey(key, kb.SetMarker):
		m.mode = ModeMarker
		m.status = "marker: press 1-9 to pin at cursor"
		return m, nil

	case matchKey(key, kb.ZoomROI):
		m.toggleROI()

	case key >= "1" && key <= "9":
		if t, ok := m.markers[int(key[0]-'0')]; ok {
			m.vp = m.vp.NavigateTo(t, w/10, w)
		}

	case key == "left":
		m.moveCursor(-1, w)
	case key == "right":
		m.moveCursor(1, w)

	case key == "j", key == "down":
		m.selectRow(m.selected + 1)
	case key == "k", key == "up":
		m.selectRow(m.selected - 1)

	case key == "v":
		m.cycleFormat()
	case key == "a":
		m.toggleAnalog()
	case key == "s":
		m.toggleScaling()
	case key == "H":
		m.cycleHeight()
	case key == "g":
		m.toggleClockGrid()
	case key == "e":
		m.exportStats()

	default:
		return m, nil
	}

	m.request()
	return m, nil
}

func matchKey(key string, bindings []string) bool {
	for _, b := range bindings {
		if key == b {
			return true
		}
	}
	return false
}

// anchorPixel is where zoom centers: the cursor when set, otherwise
// the middle of the canvas.
func (m *Model) anchorPixel(w int) int {
	if m.hasCursor {
		x := m.vp.TimeToPixel(m.cursor, w)
		if x >= 0 && x < w {
			return x
		}
	}
	return w / 2
}

// moveCursor steps the cursor by 1/50 of the visible span.
func (m *Model) moveCursor(dir int, w int) {
	step := trace.Time(float64(m.vp.EndTime()-m.vp.StartTime()) / 50)
	if step < 1 {
		step = 1
	}
	if !m.hasCursor {
		m.cursor = m.vp.PixelToTime(w/2, w)
		m.hasCursor = true
		return
	}
	m.cursor += trace.Time(dir) * step
	if m.cursor < 0 {
		m.cursor = 0
	}
	if total := m.db.TotalDuration(); m.cursor > total {
		m.cursor = total
	}
}

func (m *Model) selectRow(i int) {
	if i < 0 || i >= len(m.rows) {
		return
	}
	m.selected = i
	if m.selected < m.rowOffset {
		m.rowOffset = m.selected
	}
	for m.selected >= m.rowOffset+len(m.visibleRows()) && m.rowOffset < len(m.rows)-1 {
		m.rowOffset++
	}
}

// toggleROI anchors a region on first press and zooms to it on the
// second.
func (m *Model) toggleROI() {
	w, _ := m.pixelSize()
	at := m.vp.PixelToTime(w/2, w)
	if m.hasCursor {
		at = m.cursor
	}
	if !m.hasROI {
		m.roiAnchor = at
		m.hasROI = true
		m.status = "region anchored, move cursor and press again to zoom"
		return
	}
	m.hasROI = false
	t0, t1 := m.roiAnchor, at
	if t1 < t0 {
		t0, t1 = t1, t0
	}
	if t1 > t0 {
		m.vp = m.vp.ZoomToRange(t0, t1)
	}
	m.status = ""
}

// cycleFormat advances the selected bus row through the display
// formats.
func (m *Model) cycleFormat() {
	r := &m.rows[m.selected]
	if r.Format.Kind != wave.KindBus && r.Format.Kind != wave.KindAnalog {
		return
	}
	switch r.Format.Format {
	case wave.Unsigned:
		r.Format.Format = wave.Signed
	case wave.Signed:
		r.Format.Format = wave.Hex
	case wave.Hex:
		r.Format.Format = wave.Bin
	case wave.Bin:
		r.Format.Format = wave.Float32
	default:
		r.Format.Format = wave.Unsigned
	}
	m.canvas.InvalidateRanges()
}

// toggleAnalog switches the selected row between bus and analog
// rendering.
func (m *Model) toggleAnalog() {
	r := &m.rows[m.selected]
	switch r.Format.Kind {
	case wave.KindBus:
		r.Format.Kind = wave.KindAnalog
	case wave.KindAnalog:
		r.Format.Kind = wave.KindBus
	}
}

func (m *Model) toggleScaling() {
	r := &m.rows[m.selected]
	if r.Format.Scaling == wave.ScaleGlobal {
		r.Format.Scaling = wave.ScaleVisible
	} else {
		r.Format.Scaling = wave.ScaleGlobal
	}
}

var heightSteps = []int{1, 2, 3, 4, 8}

func (m *Model) cycleHeight() {
	r := &m.rows[m.selected]
	for i, s := range heightSteps {
		if r.Format.HeightScale <= s {
			r.Format.HeightScale = heightSteps[(i+1)%len(heightSteps)]
			return
		}
	}
	r.Format.HeightScale = 1
}

// toggleClockGrid derives a clock from the selected signal and aligns
// ruler ticks to its edges. Press again to return to time ticks.
func (m *Model) toggleClockGrid() {
	if m.clock != nil {
		m.clock = nil
		m.status = ""
		return
	}
	r := m.rows[m.selected]
	if err := m.db.EnsureLoaded(r.ID); err != nil {
		m.err = err
		return
	}
	transitions, err := m.db.Transitions(r.ID)
	if err != nil {
		m.err = err
		return
	}
	clk, ok := wave.DetectClock(transitions, r.Format.Kind, r.Format.Format, m.db.BitWidth(r.ID))
	if !ok {
		m.status = "no clock detected on " + r.Name
		return
	}
	m.clock = &clk
	m.status = ""
}

// exportStats writes statistics for all visible rows over the visible
// window next to the trace file.
func (m *Model) exportStats() {
	t0, t1 := m.vp.StartTime(), m.vp.EndTime()
	var stats []export.StatRow
	for _, r := range m.visibleRows() {
		s, err := canvas.SignalStatistics(m.db, r.ID, r.Format.Format, t0, t1)
		if err != nil {
			m.err = err
			return
		}
		stats = append(stats, export.StatRow{Name: r.Name, Stats: s})
	}

	out := strings.TrimSuffix(m.path, filepath.Ext(m.path)) + "_stats.csv"
	f, err := os.Create(out)
	if err != nil {
		m.err = err
		return
	}
	defer f.Close()
	if err := export.WriteStatsCSV(f, stats, t0, t1, m.db.Timescale()); err != nil {
		m.err = err
		return
	}
	m.status = "stats written to " + out
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = ModeNormal
		m.input.Blur()
		unit, ok := timefmt.UnitFromString(m.cfg.Ruler.TimeUnit)
		if !ok {
			unit = timefmt.Nanoseconds
		}
		seconds, err := timefmt.Parse(m.input.Value(), unit)
		if err != nil {
			m.status = "bad time: " + m.input.Value()
			return m, nil
		}
		w, _ := m.pixelSize()
		target := trace.Time(m.db.Timescale().FromSeconds(seconds))
		m.vp = m.vp.NavigateTo(target, w/10, w)
		m.cursor = target
		m.hasCursor = true
		m.request()
		return m, nil

	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleMarkerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	m.status = ""
	key := msg.String()
	if key >= "1" && key <= "9" && m.hasCursor {
		m.markers[int(key[0]-'0')] = m.cursor
		m.request()
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var sb strings.Builder

	img, _ := m.canvas.Image()
	if img == nil {
		sb.WriteString("rendering...")
	} else {
		w, h := m.pixelSize()
		composed := canvas.Compose(img, m.overlay(), m.composeParams(w, h))
		sb.WriteString(Blit(composed))
	}
	sb.WriteString("\n")

	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("240")).
		Foreground(lipgloss.Color("255")).
		Width(m.width)
	sb.WriteString(statusStyle.Render(m.statusLine()))
	sb.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	help := "+/-:zoom h/l:pan f:fit t:goto m:marker r:region v:format a:analog g:clock e:stats q:quit"
	sb.WriteString(helpStyle.Render(help))

	return sb.String()
}

func (m *Model) overlay() canvas.Overlay {
	ov := canvas.Overlay{
		CursorTime: m.cursor,
		HasCursor:  m.hasCursor,
		Markers:    m.markers,
	}
	if m.hasROI {
		w, _ := m.pixelSize()
		ov.HasROI = true
		ov.ROIStart = m.vp.TimeToPixel(m.roiAnchor, w)
		at := m.roiAnchor
		if m.hasCursor {
			at = m.cursor
		}
		ov.ROIEnd = m.vp.TimeToPixel(at, w)
	}
	return ov
}

// composeParams carries just what Compose needs to place overlays.
func (m *Model) composeParams(w, h int) canvas.Params {
	return canvas.Params{Width: w, Height: h, Viewport: m.vp, Theme: m.cfg.Theme}
}

func (m *Model) statusLine() string {
	switch m.mode {
	case ModeGoto:
		return "goto: " + m.input.View()
	case ModeMarker:
		return m.status
	}
	if m.err != nil {
		return "error: " + m.err.Error()
	}

	ts := m.db.Timescale()
	unit, ok := timefmt.UnitFromString(m.cfg.Ruler.TimeUnit)
	if !ok {
		unit = timefmt.Nanoseconds
	}
	span := ts.ToSeconds(float64(m.vp.EndTime() - m.vp.StartTime()))
	window := fmt.Sprintf("%s .. %s",
		timefmt.Format(ts.ToSeconds(float64(m.vp.StartTime())), unit, span/100),
		timefmt.Format(ts.ToSeconds(float64(m.vp.EndTime())), unit, span/100))

	cursor := ""
	if m.hasCursor {
		cursor = "  cursor " + timefmt.Format(ts.ToSeconds(float64(m.cursor)), unit, span/1000)
	}

	busy := ""
	if m.canvas.State() == canvas.Rendering {
		busy = "  [rendering]"
	}

	extra := ""
	if m.status != "" {
		extra = "  " + m.status
	}

	return fmt.Sprintf(" %s  %s%s  %d/%d%s%s",
		filepath.Base(m.path), window, cursor, m.selected+1, len(m.rows), busy, extra)
}
