package wave

import (
	"math"
	"strconv"
	"strings"

	"github.com/ripopov/wavescout/internal/trace"
)

// SampleKind classifies an interpreted value.
type SampleKind int

const (
	// Normal is a regular defined value.
	Normal SampleKind = iota
	// Undefined marks unknown/uninitialized values (x digits, or no
	// transition seen yet).
	Undefined
	// HighZ marks high-impedance values (z digits).
	HighZ
)

// Sample is the canonical decoded form of one raw value: the single
// source of truth shared by all renderers and by statistics. Num is NaN
// for non-numeric values; such samples are excluded from statistics and
// rendered as gaps.
type Sample struct {
	Str  string
	Num  float64
	Bool bool
	Kind SampleKind
}

// undefinedSample is what a column shows before any transition.
var undefinedSample = Sample{Str: "x", Num: math.NaN(), Kind: Undefined}

// Interpret decodes one raw trace value under a display format and the
// signal's declared bit width. It never fails: malformed input yields
// an Undefined sample so one bad transition cannot abort a render pass.
func Interpret(v trace.Value, format DataFormat, bitWidth int) Sample {
	switch v.Class {
	case trace.Real:
		return Sample{
			Str:  strconv.FormatFloat(v.Real, 'g', -1, 64),
			Num:  v.Real,
			Bool: v.Real != 0,
		}
	case trace.Text:
		return interpretText(v.Text)
	}
	return interpretBits(v.Bits, format, bitWidth)
}

func interpretText(s string) Sample {
	kind := Normal
	switch {
	case strings.ContainsAny(s, "xX"):
		kind = Undefined
	case strings.ContainsAny(s, "zZ"):
		kind = HighZ
	}
	return Sample{Str: s, Num: math.NaN(), Bool: s == "1", Kind: kind}
}

func interpretBits(raw uint64, format DataFormat, bitWidth int) Sample {
	if bitWidth <= 0 {
		bitWidth = 1
	}
	kind := Normal
	if bitWidth < 64 && raw>>uint(bitWidth) != 0 {
		// Wider than declared: clamp to the low bits and disclose the
		// mismatch instead of failing the pass.
		raw &= 1<<uint(bitWidth) - 1
		kind = Undefined
	}

	var str string
	var num float64
	switch format {
	case Signed:
		sv := int64(raw)
		if bitWidth < 64 && raw >= 1<<uint(bitWidth-1) {
			sv = int64(raw) - int64(1)<<uint(bitWidth)
		}
		str = strconv.FormatInt(sv, 10)
		num = float64(sv)
	case Hex:
		digits := (bitWidth + 3) / 4
		str = "0x" + leftPad(strings.ToUpper(strconv.FormatUint(raw, 16)), digits)
		num = float64(raw)
	case Bin:
		str = "0b" + leftPad(strconv.FormatUint(raw, 2), bitWidth)
		num = float64(raw)
	case Float32:
		f := math.Float32frombits(uint32(raw))
		str = strconv.FormatFloat(float64(f), 'g', -1, 32)
		num = float64(f)
	default:
		str = strconv.FormatUint(raw, 10)
		num = float64(raw)
	}
	return Sample{Str: str, Num: num, Bool: raw != 0, Kind: kind}
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
