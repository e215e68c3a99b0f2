package vcd

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ripopov/wavescout/internal/trace"
)

// maxLine bounds a single value-change line; generous enough for very
// wide vectors.
const maxLine = 1 << 20

// scanBody walks the value-change section once and appends transitions
// for every wanted signal. Lines for other signals are skipped without
// allocation.
func (f *File) scanBody(wanted map[trace.SignalID]bool) error {
	r := io.NewSectionReader(f.file, f.bodyOff, f.file.Size()-f.bodyOff)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), maxLine)

	var now trace.Time
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case '#':
			if t, err := strconv.ParseInt(line[1:], 10, 64); err == nil {
				now = trace.Time(t)
			}
		case '$':
			// $dumpvars/$dumpall blocks just bracket ordinary changes.
		case 'b', 'B':
			val, code, ok := splitVector(line)
			if !ok {
				continue
			}
			if id, hit := f.want(code, wanted); hit {
				f.append(id, now, bitsValue(val, f.widths[id]))
			}
		case 'r', 'R':
			val, code, ok := splitVector(line)
			if !ok {
				continue
			}
			if id, hit := f.want(code, wanted); hit {
				if x, err := strconv.ParseFloat(val, 64); err == nil {
					f.append(id, now, trace.RealValue(x))
				}
			}
		case 's', 'S':
			val, code, ok := splitVector(line)
			if !ok {
				continue
			}
			if id, hit := f.want(code, wanted); hit {
				f.append(id, now, trace.TextValue(val))
			}
		default:
			// Scalar change: value char immediately followed by the code.
			if len(line) < 2 {
				continue
			}
			if id, hit := f.want(line[1:], wanted); hit {
				f.append(id, now, scalarValue(line[0]))
			}
		}
	}
	return sc.Err()
}

func (f *File) want(code string, wanted map[trace.SignalID]bool) (trace.SignalID, bool) {
	id, ok := f.codes[code]
	if !ok {
		return 0, false
	}
	return id, wanted[id]
}

func (f *File) append(id trace.SignalID, t trace.Time, v trace.Value) {
	f.transitions[id] = append(f.transitions[id], trace.Transition{Time: t, Val: v})
}

// splitVector separates "b1010 !" style lines into value and code.
func splitVector(line string) (val, code string, ok bool) {
	sp := strings.IndexByte(line, ' ')
	if sp < 1 || sp == len(line)-1 {
		return "", "", false
	}
	return line[1:sp], strings.TrimSpace(line[sp+1:]), true
}

func scalarValue(c byte) trace.Value {
	switch c {
	case '0':
		return trace.BitsValue(0)
	case '1':
		return trace.BitsValue(1)
	case 'z', 'Z':
		return trace.TextValue("z")
	default:
		return trace.TextValue("x")
	}
}

// bitsValue converts a vector digit string to a raw value. Clean binary
// strings up to 64 bits become integers; anything with x/z digits (or
// wider) stays textual, normalized to the declared width per the VCD
// left-extension rule.
func bitsValue(digits string, width int) trace.Value {
	digits = strings.ToLower(digits)
	clean := true
	for i := 0; i < len(digits); i++ {
		if digits[i] != '0' && digits[i] != '1' {
			clean = false
			break
		}
	}
	if clean && len(digits) <= 64 {
		v, err := strconv.ParseUint(digits, 2, 64)
		if err == nil {
			return trace.BitsValue(v)
		}
	}
	return trace.TextValue(extendVector(digits, width))
}

// extendVector applies VCD left extension: short vectors are padded on
// the left with 0, or with the leftmost digit when that digit is x or z.
func extendVector(digits string, width int) string {
	if width <= len(digits) {
		return digits
	}
	pad := byte('0')
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'z') {
		pad = digits[0]
	}
	return strings.Repeat(string(pad), width-len(digits)) + digits
}
