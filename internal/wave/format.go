package wave

import "github.com/ripopov/wavescout/internal/trace"

// SignalKind selects which of the four renderers draws a signal row.
type SignalKind int

const (
	KindBool SignalKind = iota
	KindBus
	KindAnalog
	KindEvent
)

func (k SignalKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindBus:
		return "bus"
	case KindAnalog:
		return "analog"
	default:
		return "event"
	}
}

// DataFormat controls how integer raw values are interpreted.
type DataFormat int

const (
	Unsigned DataFormat = iota
	Signed
	Hex
	Bin
	Float32
)

func (f DataFormat) String() string {
	switch f {
	case Signed:
		return "signed"
	case Hex:
		return "hex"
	case Bin:
		return "bin"
	case Float32:
		return "float32"
	default:
		return "unsigned"
	}
}

// ScalingMode chooses the value range an analog row is scaled to.
type ScalingMode int

const (
	// ScaleGlobal scales to the min/max over the whole recording.
	ScaleGlobal ScalingMode = iota
	// ScaleVisible scales to the min/max inside the current viewport.
	ScaleVisible
)

// SignalFormat is the per-signal display configuration. It is owned by
// the shell's signal list and read-only to the rendering core.
type SignalFormat struct {
	Kind        SignalKind
	Format      DataFormat
	Color       string // hex color, empty means theme default
	Scaling     ScalingMode
	HeightScale int // row height multiplier: 1, 2, 3, 4, 8
}

// DefaultFormat picks a sensible display configuration for a variable:
// scalars render as boolean steps, reals as analog plots, events as
// markers and everything else as a hex bus.
func DefaultFormat(v trace.Var) SignalFormat {
	f := SignalFormat{Format: Unsigned, Scaling: ScaleGlobal, HeightScale: 1}
	switch {
	case v.Type == trace.VarEvent:
		f.Kind = KindEvent
	case v.Type == trace.VarReal:
		f.Kind = KindAnalog
	case v.Width == 1:
		f.Kind = KindBool
	default:
		f.Kind = KindBus
		f.Format = Hex
	}
	return f
}
