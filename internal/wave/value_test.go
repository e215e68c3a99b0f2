package wave

import (
	"math"
	"testing"

	"github.com/ripopov/wavescout/internal/trace"
)

func TestInterpretSigned(t *testing.T) {
	cases := []struct {
		raw  uint64
		bw   int
		str  string
		num  float64
	}{
		{255, 8, "-1", -1},
		{127, 8, "127", 127},
		{128, 8, "-128", -128},
		{0, 8, "0", 0},
		{0xFFFF, 16, "-1", -1},
		{1, 1, "-1", -1},
	}
	for _, c := range cases {
		s := Interpret(trace.BitsValue(c.raw), Signed, c.bw)
		if s.Str != c.str || s.Num != c.num {
			t.Errorf("Signed(%d, bw=%d) = (%q, %v), want (%q, %v)",
				c.raw, c.bw, s.Str, s.Num, c.str, c.num)
		}
	}
}

func TestInterpretHexWidth(t *testing.T) {
	cases := []struct {
		raw uint64
		bw  int
		str string
	}{
		{0xAB, 8, "0xAB"},
		{0x5, 8, "0x05"},
		{0x5, 4, "0x5"},
		{0x1F, 9, "0x01F"},
		{0, 12, "0x000"},
	}
	for _, c := range cases {
		s := Interpret(trace.BitsValue(c.raw), Hex, c.bw)
		if s.Str != c.str {
			t.Errorf("Hex(%#x, bw=%d) = %q, want %q", c.raw, c.bw, s.Str, c.str)
		}
	}
}

func TestInterpretBin(t *testing.T) {
	s := Interpret(trace.BitsValue(5), Bin, 4)
	if s.Str != "0b0101" {
		t.Errorf("Bin(5, bw=4) = %q, want 0b0101", s.Str)
	}
}

func TestInterpretFloat32(t *testing.T) {
	s := Interpret(trace.BitsValue(0x3F800000), Float32, 32)
	if s.Num != 1.0 {
		t.Errorf("Float32(0x3F800000) = %v, want 1.0", s.Num)
	}

	s = Interpret(trace.BitsValue(0xC0490FDB), Float32, 32)
	if math.Abs(s.Num+math.Pi) > 1e-6 {
		t.Errorf("Float32(0xC0490FDB) = %v, want -pi", s.Num)
	}
}

func TestInterpretWiderThanDeclared(t *testing.T) {
	s := Interpret(trace.BitsValue(0x1FF), Unsigned, 8)
	if s.Kind != Undefined {
		t.Errorf("out-of-range value should be flagged undefined, got %v", s.Kind)
	}
	if s.Num != 0xFF {
		t.Errorf("out-of-range value should clamp to low bits, got %v", s.Num)
	}
}

func TestInterpretTextClassification(t *testing.T) {
	cases := []struct {
		text string
		kind SampleKind
	}{
		{"x", Undefined},
		{"xxxx", Undefined},
		{"1x0z", Undefined}, // x wins over z
		{"z", HighZ},
		{"zz0", HighZ},
	}
	for _, c := range cases {
		s := Interpret(trace.TextValue(c.text), Unsigned, 4)
		if s.Kind != c.kind {
			t.Errorf("text %q: kind = %v, want %v", c.text, s.Kind, c.kind)
		}
		if !math.IsNaN(s.Num) {
			t.Errorf("text %q: Num = %v, want NaN", c.text, s.Num)
		}
	}
}

func TestInterpretReal(t *testing.T) {
	s := Interpret(trace.RealValue(3.25), Unsigned, 64)
	if s.Num != 3.25 || s.Str != "3.25" || !s.Bool {
		t.Errorf("Real(3.25) = %+v", s)
	}
	if s.Kind != Normal {
		t.Errorf("real values are always defined, got %v", s.Kind)
	}
}

func TestInterpretBoolFromText(t *testing.T) {
	if s := Interpret(trace.TextValue("1"), Unsigned, 1); !s.Bool {
		t.Error("text \"1\" should be boolean true")
	}
	if s := Interpret(trace.TextValue("10"), Unsigned, 2); s.Bool {
		t.Error("only the exact string \"1\" is boolean true")
	}
}
