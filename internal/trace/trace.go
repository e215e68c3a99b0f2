package trace

import "errors"

// Time is a point on the simulation time axis, in timescale units.
// Times are non-negative and monotonically increasing within a signal.
type Time int64

// SignalID identifies a signal inside a trace database. IDs act as
// primary keys: they are cheap to compare, serializable, and let the
// database load transition data lazily per signal.
type SignalID int

// ErrNoSuchSignal is returned for lookups with an unknown SignalID.
var ErrNoSuchSignal = errors.New("trace: no such signal")

// ValueClass tells which representation a raw value uses.
type ValueClass int

const (
	// Bits is an integer value up to 64 bits wide.
	Bits ValueClass = iota
	// Real is a floating point value (VCD real signals).
	Real
	// Text is a digit string that could not be reduced to an integer,
	// typically because it contains undefined (x) or high-impedance (z)
	// digits.
	Text
)

// Value is one raw signal value as recorded in the trace.
type Value struct {
	Class ValueClass
	Bits  uint64
	Real  float64
	Text  string
}

// BitsValue wraps an integer raw value.
func BitsValue(v uint64) Value { return Value{Class: Bits, Bits: v} }

// RealValue wraps a floating point raw value.
func RealValue(v float64) Value { return Value{Class: Real, Real: v} }

// TextValue wraps a digit-string raw value.
func TextValue(s string) Value { return Value{Class: Text, Text: s} }

// Transition is one recorded value change of a signal.
type Transition struct {
	Time Time
	Val  Value
}

// VarType is a coarse classification of a trace variable, used to pick
// the default rendering for a signal.
type VarType int

const (
	VarWire VarType = iota
	VarReal
	VarEvent
	VarString
)

// Var describes one variable declared in the trace.
type Var struct {
	ID    SignalID
	Name  string // full hierarchical name
	Width int    // bit width, 1 for scalars and events
	Type  VarType
}

// DB is the backend trace database the rendering core consumes.
//
// Transition slices returned by Transitions are owned by the database
// and must be treated as immutable snapshots: the sampler and range
// cache only ever read them, which is what makes lock-free render
// passes safe.
type DB interface {
	// Vars lists all declared variables in declaration order.
	Vars() []Var

	// EnsureLoaded makes the transition data of the given signals
	// available. Databases are allowed to defer body parsing until this
	// is called; callers must invoke it before Transitions.
	EnsureLoaded(ids ...SignalID) error

	// Transitions returns the ordered value changes of one signal.
	// Signals with zero transitions return an empty slice, not an error.
	Transitions(id SignalID) ([]Transition, error)

	// BitWidth returns the declared width of a signal in bits.
	BitWidth(id SignalID) int

	// TotalDuration returns the last recorded time in the trace.
	TotalDuration() Time

	// Timescale returns the factor/unit pair that converts Time values
	// to real seconds.
	Timescale() Timescale
}
