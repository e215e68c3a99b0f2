package ui

import (
	"image"
	"strconv"
	"strings"
)

// Blit converts an image to terminal text, two pixel rows per cell
// using the upper half block with truecolor foreground and background.
// Escape sequences are emitted only when the color pair changes, which
// keeps frames small enough for smooth redraws.
func Blit(img image.Image) string {
	if img == nil {
		return ""
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var sb strings.Builder
	sb.Grow(w * h * 4)

	var lastFg, lastBg uint32 = 1 << 30, 1 << 30
	for y := 0; y < h; y += 2 {
		lastFg, lastBg = 1<<30, 1<<30
		for x := 0; x < w; x++ {
			fg := rgb(img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA())
			bg := fg
			if y+1 < h {
				bg = rgb(img.At(bounds.Min.X+x, bounds.Min.Y+y+1).RGBA())
			}
			if fg != lastFg {
				writeColor(&sb, 38, fg)
				lastFg = fg
			}
			if bg != lastBg {
				writeColor(&sb, 48, bg)
				lastBg = bg
			}
			sb.WriteString("▀")
		}
		sb.WriteString("\x1b[0m\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// rgb packs premultiplied 16-bit channels into 8-bit 0xRRGGBB.
func rgb(r, g, b, _ uint32) uint32 {
	return (r>>8)<<16 | (g>>8)<<8 | b>>8
}

// writeColor emits a truecolor SGR sequence, plane 38 for foreground
// and 48 for background.
func writeColor(sb *strings.Builder, plane int, c uint32) {
	sb.WriteString("\x1b[")
	sb.WriteString(strconv.Itoa(plane))
	sb.WriteString(";2;")
	sb.WriteString(strconv.Itoa(int(c >> 16 & 0xff)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c >> 8 & 0xff)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c & 0xff)))
	sb.WriteByte('m')
}
