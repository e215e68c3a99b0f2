package trace

// TimeUnit is the base unit of a trace's timescale.
type TimeUnit int

const (
	Femtoseconds TimeUnit = iota
	Picoseconds
	Nanoseconds
	Microseconds
	Milliseconds
	Seconds
)

// Exponent returns the power-of-ten exponent of the unit relative to
// one second (Picoseconds -> -12).
func (u TimeUnit) Exponent() int {
	switch u {
	case Femtoseconds:
		return -15
	case Picoseconds:
		return -12
	case Nanoseconds:
		return -9
	case Microseconds:
		return -6
	case Milliseconds:
		return -3
	default:
		return 0
	}
}

func (u TimeUnit) String() string {
	switch u {
	case Femtoseconds:
		return "fs"
	case Picoseconds:
		return "ps"
	case Nanoseconds:
		return "ns"
	case Microseconds:
		return "us"
	case Milliseconds:
		return "ms"
	default:
		return "s"
	}
}

// UnitFromString parses a unit suffix as found in VCD timescale
// declarations ("ps", "ns", ...).
func UnitFromString(s string) (TimeUnit, bool) {
	switch s {
	case "fs":
		return Femtoseconds, true
	case "ps":
		return Picoseconds, true
	case "ns":
		return Nanoseconds, true
	case "us":
		return Microseconds, true
	case "ms":
		return Milliseconds, true
	case "s":
		return Seconds, true
	}
	return Picoseconds, false
}

// Timescale converts trace Time values to physical seconds:
// seconds = t * Factor * 10^Unit.Exponent().
type Timescale struct {
	Factor int
	Unit   TimeUnit
}

// DefaultTimescale is used when a trace declares no timescale.
var DefaultTimescale = Timescale{Factor: 1, Unit: Picoseconds}

// ToSeconds converts a time value (which may be fractional, e.g. a tick
// position) to seconds.
func (ts Timescale) ToSeconds(t float64) float64 {
	return t * float64(ts.Factor) * pow10(ts.Unit.Exponent())
}

// FromSeconds converts seconds back to timescale units.
func (ts Timescale) FromSeconds(s float64) float64 {
	return s / (float64(ts.Factor) * pow10(ts.Unit.Exponent()))
}

func pow10(exp int) float64 {
	v := 1.0
	if exp >= 0 {
		for i := 0; i < exp; i++ {
			v *= 10
		}
		return v
	}
	for i := 0; i < -exp; i++ {
		v /= 10
	}
	return v
}
