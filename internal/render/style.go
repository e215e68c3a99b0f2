package render

import "github.com/ripopov/wavescout/internal/wave"

// Style carries the per-row drawing parameters shared by all renderers.
type Style struct {
	Color         string // main waveform color
	Undefined     string // color for x values
	HighImpedance string // color for z values
	Text          string // label color
	LineWidth     float64
	Margin        float64 // vertical inset inside the row band
}

// valueColor picks the stroke color for a sample kind.
func (s Style) valueColor(kind wave.SampleKind) string {
	switch kind {
	case wave.Undefined:
		return s.Undefined
	case wave.HighZ:
		return s.HighImpedance
	default:
		return s.Color
	}
}

func (s Style) lineWidth() float64 {
	if s.LineWidth <= 0 {
		return 1
	}
	return s.LineWidth
}
