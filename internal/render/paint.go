package render

import (
	"sync"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	fontOnce   sync.Once
	fontSource *ggtext.FontSource
	fontErr    error
)

// FontFace returns a monospace face at the given size. The embedded
// font loads once; failures surface on first use.
func FontFace(size float64) (ggtext.Face, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = ggtext.NewFontSource(gomono.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return fontSource.Face(size), nil
}

// Painter executes primitives on a gg drawing context.
type Painter struct {
	dc *gg.Context
}

// NewPainter wraps a context. The caller configures the font.
func NewPainter(dc *gg.Context) *Painter {
	return &Painter{dc: dc}
}

// Paint draws the primitives in order.
func (p *Painter) Paint(prims []Primitive) {
	for _, pr := range prims {
		p.dc.SetHexColor(pr.Color)
		switch pr.Kind {
		case PrimPolyline:
			if len(pr.Points) < 2 {
				continue
			}
			p.dc.SetLineWidth(strokeWidth(pr.Width))
			p.dc.MoveTo(pr.Points[0].X, pr.Points[0].Y)
			for _, pt := range pr.Points[1:] {
				p.dc.LineTo(pt.X, pt.Y)
			}
			p.dc.Stroke()
		case PrimRect:
			p.dc.DrawRectangle(pr.X, pr.Y, pr.W, pr.H)
			if pr.Fill {
				p.dc.Fill()
			} else {
				p.dc.SetLineWidth(strokeWidth(pr.Width))
				p.dc.Stroke()
			}
		case PrimVLine:
			p.dc.SetLineWidth(strokeWidth(pr.Width))
			p.dc.DrawLine(pr.X, pr.Y, pr.X, pr.Y+pr.H)
			p.dc.Stroke()
		case PrimText:
			p.dc.DrawStringAnchored(pr.Text, pr.X, pr.Y, pr.AX, pr.AY)
		}
	}
}

// MeasureString returns the pixel width of s in the context's font.
func (p *Painter) MeasureString(s string) float64 {
	w, _ := p.dc.MeasureString(s)
	return w
}

func strokeWidth(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}
