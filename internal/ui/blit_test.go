package ui

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestBlitDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 6))
	out := Blit(img)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("6px tall image should blit to 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if got := strings.Count(line, "▀"); got != 4 {
			t.Errorf("line %d has %d cells, want 4", i, got)
		}
	}
}

func TestBlitColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})

	out := Blit(img)
	if !strings.Contains(out, "\x1b[38;2;255;0;0m") {
		t.Error("top pixel should set a red foreground")
	}
	if !strings.Contains(out, "\x1b[48;2;0;0;255m") {
		t.Error("bottom pixel should set a blue background")
	}
	if !strings.HasSuffix(out, "\x1b[0m") {
		t.Error("each line must reset attributes")
	}
}

func TestBlitNil(t *testing.T) {
	if out := Blit(nil); out != "" {
		t.Errorf("nil image should blit to empty string, got %q", out)
	}
}

func TestBlitOddHeight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	out := Blit(img)
	if got := len(strings.Split(out, "\n")); got != 2 {
		t.Errorf("3px tall image should blit to 2 lines, got %d", got)
	}
}
