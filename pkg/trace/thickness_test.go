package trace

import (
	"fmt"
	"image"
	"testing"

	"github.com/matzehuels/findline/pkg/raster"
)

// centerPath returns a horizontal path along row y.
func centerPath(x1, x2, y int) []image.Point {
	var p []image.Point
	for x := x1; x <= x2; x++ {
		p = append(p, image.Pt(x, y))
	}
	return p
}

func TestMeasureThicknessKnownWidths(t *testing.T) {
	for _, width := range []int{2, 3, 5, 7} {
		t.Run(fmt.Sprintf("width%d", width), func(t *testing.T) {
			g := grayCanvas(80, 40, 255, func(g *raster.Gray) {
				hline(g, 5, 75, 20, width, 0)
			})
			path := centerPath(10, 60, 20)

			got := MeasureThickness(g, path, DefaultSampleLength)

			if got < width-1 || got > width+1 {
				t.Errorf("MeasureThickness() = %d, want %d +/- 1", got, width)
			}
		})
	}
}

func TestMeasureThicknessShortPath(t *testing.T) {
	g := grayCanvas(40, 40, 255, nil)

	if got := MeasureThickness(g, []image.Point{image.Pt(5, 5)}, DefaultSampleLength); got != DefaultThickness {
		t.Errorf("MeasureThickness() = %d, want default %d for a 1-point path", got, DefaultThickness)
	}
	if got := MeasureThickness(g, nil, DefaultSampleLength); got != DefaultThickness {
		t.Errorf("MeasureThickness() = %d, want default %d for an empty path", got, DefaultThickness)
	}
}

func TestMeasureThicknessNoBackground(t *testing.T) {
	// Solid black image: the perpendicular scans never reach paper, so no
	// samples are collected and the default applies.
	g := grayCanvas(60, 60, 0, nil)
	path := centerPath(10, 40, 30)

	if got := MeasureThickness(g, path, DefaultSampleLength); got != DefaultThickness {
		t.Errorf("MeasureThickness() = %d, want default %d", got, DefaultThickness)
	}
}

func TestMeasureThicknessUsesLeadingSection(t *testing.T) {
	// Stroke widens after the sampled section; the estimate must reflect
	// only the first sampleLen points.
	g := grayCanvas(120, 60, 255, func(g *raster.Gray) {
		hline(g, 0, 60, 30, 3, 0)
		hline(g, 61, 119, 30, 15, 0)
	})
	path := centerPath(5, 110, 30)

	got := MeasureThickness(g, path, DefaultSampleLength)

	if got > 4 {
		t.Errorf("MeasureThickness() = %d, wide tail leaked into the sample", got)
	}
}

func TestMeasureThicknessMinimumOne(t *testing.T) {
	// A 1px stroke must not round down to zero.
	g := grayCanvas(60, 20, 255, func(g *raster.Gray) {
		hline(g, 5, 55, 10, 1, 0)
	})
	path := centerPath(10, 50, 10)

	if got := MeasureThickness(g, path, DefaultSampleLength); got < 1 {
		t.Errorf("MeasureThickness() = %d, want >= 1", got)
	}
}
