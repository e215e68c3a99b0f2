// Package render turns sampled signal columns into drawing primitives.
//
// Renderers are pure: they emit primitives in pixel space and never
// touch a drawing surface. The painter in paint.go executes primitives
// on a raster context.
package render

// PrimKind discriminates the primitive union.
type PrimKind int

const (
	PrimPolyline PrimKind = iota
	PrimRect
	PrimVLine
	PrimText
)

// Primitive is a single drawing operation in pixel coordinates.
type Primitive struct {
	Kind   PrimKind
	Points []Point // polyline vertices
	X, Y   float64 // rect origin, vline x/top, text anchor
	W, H   float64 // rect size, vline H = height
	Text   string
	Color  string  // hex color
	Width  float64 // stroke width, 0 means 1
	Fill   bool    // rect only
	AX, AY float64 // text anchor fractions, gg style
}

// Point is a polyline vertex.
type Point struct {
	X, Y float64
}

// Polyline builds a stroke primitive from vertices.
func Polyline(pts []Point, color string, width float64) Primitive {
	return Primitive{Kind: PrimPolyline, Points: pts, Color: color, Width: width}
}

// Rect builds a rectangle primitive.
func Rect(x, y, w, h float64, color string, fill bool) Primitive {
	return Primitive{Kind: PrimRect, X: x, Y: y, W: w, H: h, Color: color, Fill: fill}
}

// VLine builds a vertical line from (x, y) spanning h pixels down.
func VLine(x, y, h float64, color string, width float64) Primitive {
	return Primitive{Kind: PrimVLine, X: x, Y: y, H: h, Color: color, Width: width}
}

// Text builds an anchored text primitive. ax/ay follow the usual
// anchor convention: 0.5,0.5 centers the string on (x, y).
func Text(s string, x, y, ax, ay float64, color string) Primitive {
	return Primitive{Kind: PrimText, Text: s, X: x, Y: y, AX: ax, AY: ay, Color: color}
}

// RowBounds describes the vertical extent of one signal row.
type RowBounds struct {
	Top    float64
	Height float64
}

// Inset returns the top and bottom y of the drawable band inside the
// row, leaving margin pixels above and below.
func (r RowBounds) Inset(margin float64) (yHigh, yLow float64) {
	return r.Top + margin, r.Top + r.Height - margin
}

// Mid returns the vertical center of the row.
func (r RowBounds) Mid() float64 {
	return r.Top + r.Height/2
}
