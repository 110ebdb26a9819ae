package trace

import (
	"testing"

	"github.com/matzehuels/findline/pkg/raster"
)

// grayCanvas builds a w×h grid filled with bg, then applies draw to it.
func grayCanvas(w, h int, bg uint8, draw func(g *raster.Gray)) *raster.Gray {
	g := raster.NewGray(w, h)
	for i := range g.Pix {
		g.Pix[i] = bg
	}
	if draw != nil {
		draw(g)
	}
	return g
}

// hline paints a horizontal stroke exactly thickness rows tall, roughly
// centered on row y.
func hline(g *raster.Gray, x1, x2, y, thickness int, v uint8) {
	for yy := y - thickness/2; yy < y-thickness/2+thickness; yy++ {
		for xx := x1; xx <= x2; xx++ {
			if g.In(xx, yy) {
				g.Set(xx, yy, v)
			}
		}
	}
}

// vline paints a vertical stroke exactly thickness columns wide, roughly
// centered on column x.
func vline(g *raster.Gray, y1, y2, x, thickness int, v uint8) {
	for xx := x - thickness/2; xx < x-thickness/2+thickness; xx++ {
		for yy := y1; yy <= y2; yy++ {
			if g.In(xx, yy) {
				g.Set(xx, yy, v)
			}
		}
	}
}

func TestMonochromeBinaryOutput(t *testing.T) {
	g := grayCanvas(60, 40, 240, func(g *raster.Gray) {
		hline(g, 5, 55, 20, 3, 20)
	})

	mono := Monochrome(g)

	if mono.W != g.W || mono.H != g.H {
		t.Fatalf("Monochrome() size = %dx%d, want %dx%d", mono.W, mono.H, g.W, g.H)
	}
	for i, p := range mono.Pix {
		if p != 0 && p != 255 {
			t.Fatalf("Monochrome() pixel %d = %d, want 0 or 255", i, p)
		}
	}
}

func TestMonochromeSeparatesInkFromPaper(t *testing.T) {
	g := grayCanvas(60, 40, 240, func(g *raster.Gray) {
		hline(g, 5, 55, 20, 3, 20)
	})

	mono := Monochrome(g)

	if got := mono.At(30, 20); got != 0 {
		t.Errorf("line pixel = %d, want 0 (ink)", got)
	}
	if got := mono.At(30, 5); got != 255 {
		t.Errorf("paper pixel = %d, want 255", got)
	}
}

func TestMonochromeAllWhite(t *testing.T) {
	g := grayCanvas(20, 20, 255, nil)

	mono := Monochrome(g)

	// A blank page must not turn into ink.
	if n := mono.Count(0); n != 0 {
		t.Errorf("blank image produced %d ink pixels, want 0", n)
	}
}
