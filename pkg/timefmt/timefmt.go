// Package timefmt formats and parses simulation time values expressed
// in physical seconds. It is independent of any trace backend: callers
// convert timescale units to seconds before calling in.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is a display time unit.
type Unit int

const (
	Femtoseconds Unit = iota
	Picoseconds
	Nanoseconds
	Microseconds
	Milliseconds
	Seconds
)

var unitSuffix = [...]string{"fs", "ps", "ns", "us", "ms", "s"}

// exponent of the unit relative to one second.
var unitExp = [...]int{-15, -12, -9, -6, -3, 0}

func (u Unit) String() string { return unitSuffix[u] }

// UnitFromString parses a display unit name.
func UnitFromString(s string) (Unit, bool) {
	for i, suf := range unitSuffix {
		if s == suf {
			return Unit(i), true
		}
	}
	return Nanoseconds, false
}

func scale(u Unit) float64 {
	v := 1.0
	for i := 0; i < -unitExp[u]; i++ {
		v *= 10
	}
	return v
}

// Format renders a time in seconds as a label in the given unit. The
// decimal precision follows stepSeconds, the spacing between adjacent
// labels: a step of 0.25 units needs two decimals, a step of 5 needs
// none. When the value reaches 1000 of the unit the next larger unit is
// used instead, so 1000 ps prints as "1 ns".
func Format(seconds float64, unit Unit, stepSeconds float64) string {
	value := seconds * scale(unit)
	if unit < Seconds && (value >= 1000 || value <= -1000) {
		return Format(seconds, unit+1, stepSeconds)
	}

	step := stepSeconds * scale(unit)
	decimals := 0
	switch {
	case step <= 0 || step >= 1:
		decimals = 0
	case step >= 0.1:
		decimals = 1
	case step >= 0.01:
		decimals = 2
	case step >= 0.001:
		decimals = 3
	default:
		decimals = 4
	}

	s := strconv.FormatFloat(value, 'f', decimals, 64)
	if decimals > 0 {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s + " " + unitSuffix[unit]
}

// Parse reads a user-entered time like "1.5us", "100 ns" or "2e3ps" and
// returns its value in seconds. A bare number is taken as the fallback
// unit.
func Parse(s string, fallback Unit) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("timefmt: empty time")
	}

	unit := fallback
	lower := strings.ToLower(s)
	num := s
	// The bare "s" suffix also matches the tail of "ns", "us" and so
	// on, so a suffix only wins if the remainder parses as a number.
	for i := len(unitSuffix) - 1; i >= 0; i-- {
		suf := unitSuffix[i]
		if strings.HasSuffix(lower, suf) && len(lower) > len(suf) {
			candidate := strings.TrimSpace(s[:len(s)-len(suf)])
			if _, err := strconv.ParseFloat(candidate, 64); err == nil {
				unit = Unit(i)
				num = candidate
				break
			}
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("timefmt: bad time %q", s)
	}
	return v / scale(unit), nil
}
