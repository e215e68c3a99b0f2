// Package vcd reads Value Change Dump traces and exposes them through
// the trace.DB interface. The header is parsed on open; transition data
// is loaded per signal on the first EnsureLoaded call, so opening a
// multi-gigabyte dump stays cheap until signals are actually displayed.
package vcd

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ripopov/wavescout/internal/trace"
	"github.com/ripopov/wavescout/internal/wio"
)

// File is an open VCD trace.
type File struct {
	file      *wio.MappedFile
	timescale trace.Timescale
	vars      []trace.Var
	widths    []int
	codes     map[string]trace.SignalID
	bodyOff   int64
	duration  trace.Time

	mu          sync.Mutex
	loaded      []bool
	transitions [][]trace.Transition
}

// Open maps the file, parses its declaration section and locates the
// end of the recording. No value changes are read yet.
func Open(path string) (*File, error) {
	mf, err := wio.OpenMapped(path)
	if err != nil {
		return nil, err
	}
	f := &File{
		file:      mf,
		timescale: trace.DefaultTimescale,
		codes:     make(map[string]trace.SignalID),
	}
	if err := f.parseHeader(); err != nil {
		mf.Close()
		return nil, err
	}
	f.loaded = make([]bool, len(f.widths))
	f.transitions = make([][]trace.Transition, len(f.widths))
	if err := f.findDuration(); err != nil {
		mf.Close()
		return nil, err
	}
	return f, nil
}

// Close releases the underlying mapping.
func (f *File) Close() error { return f.file.Close() }

// Path returns the trace file path.
func (f *File) Path() string { return f.file.Path() }

// Vars implements trace.DB.
func (f *File) Vars() []trace.Var { return f.vars }

// BitWidth implements trace.DB.
func (f *File) BitWidth(id trace.SignalID) int {
	if int(id) < 0 || int(id) >= len(f.widths) {
		return 0
	}
	return f.widths[id]
}

// TotalDuration implements trace.DB.
func (f *File) TotalDuration() trace.Time { return f.duration }

// Timescale implements trace.DB.
func (f *File) Timescale() trace.Timescale { return f.timescale }

// Transitions implements trace.DB. The returned slice is shared and
// must not be modified.
func (f *File) Transitions(id trace.SignalID) ([]trace.Transition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if int(id) < 0 || int(id) >= len(f.loaded) {
		return nil, trace.ErrNoSuchSignal
	}
	if !f.loaded[id] {
		return nil, fmt.Errorf("vcd: signal %d not loaded, call EnsureLoaded first", id)
	}
	return f.transitions[id], nil
}

// EnsureLoaded implements trace.DB: one pass over the body loads every
// requested signal that is still unloaded. Signals already loaded cost
// nothing.
func (f *File) EnsureLoaded(ids ...trace.SignalID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	wanted := make(map[trace.SignalID]bool)
	for _, id := range ids {
		if int(id) < 0 || int(id) >= len(f.loaded) {
			return trace.ErrNoSuchSignal
		}
		if !f.loaded[id] {
			wanted[id] = true
		}
	}
	if len(wanted) == 0 {
		return nil
	}
	if err := f.scanBody(wanted); err != nil {
		return err
	}
	for id := range wanted {
		f.loaded[id] = true
	}
	return nil
}

// headerLimit caps how far we look for $enddefinitions.
const headerLimit = 8 << 20

func (f *File) parseHeader() error {
	size := f.file.Size()
	chunk := int64(64 << 10)
	var header []byte
	end, closing := -1, -1
	for {
		if chunk > size {
			chunk = size
		}
		header = make([]byte, chunk)
		if _, err := f.file.ReadAt(header, 0); err != nil {
			return err
		}
		end = bytes.Index(header, []byte("$enddefinitions"))
		if end >= 0 {
			// The closing $end may sit past the chunk boundary; keep
			// growing until both tokens are in view.
			closing = bytes.Index(header[end+4:], []byte("$end"))
		}
		if closing >= 0 || chunk == size || chunk >= headerLimit {
			break
		}
		chunk *= 2
	}
	if end < 0 {
		return fmt.Errorf("vcd: no $enddefinitions in %s", f.file.Path())
	}
	if closing < 0 {
		return fmt.Errorf("vcd: unterminated $enddefinitions in %s", f.file.Path())
	}
	f.bodyOff = int64(end + 4 + closing + 4)

	return f.parseDeclarations(header[:end])
}

func (f *File) parseDeclarations(header []byte) error {
	toks := strings.Fields(string(header))
	var scopes []string
	for i := 0; i < len(toks); i++ {
		switch toks[i] {
		case "$timescale":
			body, next := sectionBody(toks, i+1)
			f.parseTimescale(body)
			i = next
		case "$scope":
			body, next := sectionBody(toks, i+1)
			if len(body) >= 2 {
				scopes = append(scopes, body[1])
			}
			i = next
		case "$upscope":
			_, next := sectionBody(toks, i+1)
			if len(scopes) > 0 {
				scopes = scopes[:len(scopes)-1]
			}
			i = next
		case "$var":
			body, next := sectionBody(toks, i+1)
			f.addVar(scopes, body)
			i = next
		default:
			if strings.HasPrefix(toks[i], "$") {
				_, next := sectionBody(toks, i+1)
				i = next
			}
		}
	}
	if len(f.vars) == 0 {
		return fmt.Errorf("vcd: no variables declared in %s", f.file.Path())
	}
	return nil
}

// sectionBody returns the tokens between the current position and the
// next $end, plus the index of that $end.
func sectionBody(toks []string, from int) ([]string, int) {
	for i := from; i < len(toks); i++ {
		if toks[i] == "$end" {
			return toks[from:i], i
		}
	}
	return toks[from:], len(toks) - 1
}

func (f *File) parseTimescale(body []string) {
	// Either "1ns" or "1 ns".
	joined := strings.Join(body, "")
	n := 0
	for n < len(joined) && joined[n] >= '0' && joined[n] <= '9' {
		n++
	}
	factor, err := strconv.Atoi(joined[:n])
	if err != nil || factor <= 0 {
		return
	}
	unit, ok := trace.UnitFromString(joined[n:])
	if !ok {
		return
	}
	f.timescale = trace.Timescale{Factor: factor, Unit: unit}
}

func (f *File) addVar(scopes, body []string) {
	// $var <type> <width> <code> <name> [index] $end
	if len(body) < 4 {
		return
	}
	width, err := strconv.Atoi(body[1])
	if err != nil || width <= 0 {
		width = 1
	}
	code := body[2]
	name := body[3]
	if len(body) > 4 {
		// Bit range suffix like [7:0] stays part of the display name.
		name += strings.Join(body[4:], "")
	}
	if len(scopes) > 0 {
		name = strings.Join(scopes, ".") + "." + name
	}

	var vt trace.VarType
	switch body[0] {
	case "real", "realtime":
		vt = trace.VarReal
	case "event":
		vt = trace.VarEvent
	case "string":
		vt = trace.VarString
	default:
		vt = trace.VarWire
	}

	// Several declarations can alias the same identifier code; they
	// share one signal and one transition stream.
	id, seen := f.codes[code]
	if !seen {
		id = trace.SignalID(len(f.widths))
		f.codes[code] = id
		f.widths = append(f.widths, width)
	}
	f.vars = append(f.vars, trace.Var{ID: id, Name: name, Width: f.widths[id], Type: vt})
}

// findDuration locates the last timestamp by scanning backwards from
// the end of the file, one chunk at a time.
func (f *File) findDuration() error {
	const chunk = 64 << 10
	const overlap = 32 // covers a timestamp split across a chunk seam
	size := f.file.Size()
	buf := make([]byte, chunk+overlap)
	for end := size; end > f.bodyOff; {
		start := end - chunk
		if start < f.bodyOff {
			start = f.bodyOff
		}
		readEnd := end + overlap
		if readEnd > size {
			readEnd = size
		}
		b := buf[:readEnd-start]
		if _, err := f.file.ReadAt(b, start); err != nil {
			return err
		}
		// Only '#' within [start, end) count; digits may spill into
		// the overlap.
		for i := int(end-start) - 1; i >= 0; i-- {
			if b[i] != '#' {
				continue
			}
			if i > 0 && b[i-1] != '\n' && b[i-1] != '\r' {
				continue
			}
			j := i + 1
			for j < len(b) && b[j] >= '0' && b[j] <= '9' {
				j++
			}
			if t, err := strconv.ParseInt(string(b[i+1:j]), 10, 64); err == nil {
				f.duration = trace.Time(t)
				return nil
			}
		}
		end = start
	}
	// A body with declarations but no timestamps is a legal, empty dump.
	f.duration = 0
	return nil
}
