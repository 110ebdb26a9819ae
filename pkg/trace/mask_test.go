package trace

import (
	"image"
	"testing"

	"github.com/matzehuels/findline/pkg/raster"
)

func TestBuildMaskFollowsInkOnly(t *testing.T) {
	g := grayCanvas(80, 40, 255, func(g *raster.Gray) {
		hline(g, 5, 75, 20, 3, 0)
	})
	path := centerPath(10, 70, 20)

	mask := BuildMask(g, path, 3, nil, DefaultCollisionThreshold)

	for y := 0; y < mask.H; y++ {
		for x := 0; x < mask.W; x++ {
			if mask.At(x, y) == 255 && g.At(x, y) >= DefaultCollisionThreshold {
				t.Fatalf("selected background pixel (%d,%d) with intensity %d", x, y, g.At(x, y))
			}
		}
	}
	if mask.Count(255) == 0 {
		t.Fatal("mask is empty over a solid stroke")
	}
}

func TestBuildMaskCoversStrokeBand(t *testing.T) {
	g := grayCanvas(80, 40, 255, func(g *raster.Gray) {
		hline(g, 5, 75, 20, 3, 0)
	})
	path := centerPath(10, 70, 20)

	mask := BuildMask(g, path, 4, nil, DefaultCollisionThreshold)

	// The stroke rows inside the traced span must be selected.
	for x := 15; x <= 65; x++ {
		for _, y := range []int{19, 20, 21} {
			if mask.At(x, y) != 255 {
				t.Fatalf("stroke pixel (%d,%d) not selected", x, y)
			}
		}
	}
}

func TestBuildMaskCarveIsSubset(t *testing.T) {
	g := grayCanvas(120, 60, 255, func(g *raster.Gray) {
		hline(g, 5, 115, 30, 3, 0)
		vline(g, 5, 55, 60, 3, 0)
	})
	path := centerPath(10, 110, 30)
	collision := []image.Point{image.Pt(60, 30)}

	before := BuildMask(g, path, 3, nil, DefaultCollisionThreshold)
	after := BuildMask(g, path, 3, collision, DefaultCollisionThreshold)

	for i := range after.Pix {
		if after.Pix[i] == 255 && before.Pix[i] != 255 {
			t.Fatal("carving added a pixel")
		}
	}
	if after.Count(255) >= before.Count(255) {
		t.Error("carving removed nothing around the collision")
	}
	if after.At(60, 30) == 255 {
		t.Error("collision center still selected after carving")
	}
}

func TestBuildMaskEmptyPath(t *testing.T) {
	g := grayCanvas(40, 40, 255, nil)

	mask := BuildMask(g, nil, 3, nil, DefaultCollisionThreshold)

	if mask.Count(255) != 0 {
		t.Errorf("mask has %d pixels for an empty path, want 0", mask.Count(255))
	}
}

func TestBuildMaskBlankImage(t *testing.T) {
	// The geometric band exists but contains no ink: nothing selected.
	g := grayCanvas(60, 40, 255, nil)

	mask := BuildMask(g, centerPath(5, 55, 20), 5, nil, DefaultCollisionThreshold)

	if mask.Count(255) != 0 {
		t.Errorf("mask has %d pixels on a blank image, want 0", mask.Count(255))
	}
}

func TestExclusionRadiusFloor(t *testing.T) {
	// Thin strokes still get a useful carve: the radius bottoms out at 7.5.
	if got := exclusionRadius(1); got != 7.5 {
		t.Errorf("exclusionRadius(1) = %v, want 7.5", got)
	}
	// Thick strokes scale with 1.5x thickness.
	if got := exclusionRadius(20); got != 15 {
		t.Errorf("exclusionRadius(20) = %v, want 15", got)
	}
}
