package trace

import (
	"image"
	"testing"

	"github.com/matzehuels/findline/pkg/raster"
)

// crossSkeleton builds a 1px X-style crossing: a horizontal line through
// (0..w-1, cy) and a vertical line through (cx, 0..h-1).
func crossSkeleton(w, h, cx, cy int) *raster.Bitmap {
	b := raster.NewBitmap(w, h, 255)
	for x := 0; x < w; x++ {
		b.Set(x, cy, 0)
	}
	for y := 0; y < h; y++ {
		b.Set(cx, y, 0)
	}
	return b
}

func TestJunctionsAtCrossing(t *testing.T) {
	skel := crossSkeleton(60, 60, 30, 30)

	junctions := Junctions(skel)

	if len(junctions) == 0 {
		t.Fatal("Junctions() found nothing at a crossing")
	}
	foundNearCrossing := false
	for _, j := range junctions {
		if dist(j, image.Pt(30, 30)) <= 2 {
			foundNearCrossing = true
		}
	}
	if !foundNearCrossing {
		t.Errorf("no junction within 2px of the crossing, got %v", junctions)
	}
}

func TestJunctionsNoneOnPlainLine(t *testing.T) {
	skel := skeletonRow(60, 20, 5, 55, 10)

	if junctions := Junctions(skel); len(junctions) != 0 {
		t.Errorf("Junctions() = %v on a plain line, want none", junctions)
	}
}

func TestJunctionStrategyFlagsCrossing(t *testing.T) {
	skel := crossSkeleton(60, 60, 30, 30)

	got := JunctionStrategy{}.Detect(CollisionInput{
		Skeleton:  skel,
		Path:      centerPath(5, 55, 30),
		Thickness: 3,
	})

	if len(got) == 0 {
		t.Fatal("Detect() found no collision at a crossing on the path")
	}
	if dist(got[0], image.Pt(30, 30)) > 3 {
		t.Errorf("collision = %v, want near the crossing (30,30)", got[0])
	}
}

func TestJunctionStrategyDeduplicates(t *testing.T) {
	// A crossing produces several adjacent junction pixels; they must
	// collapse into (nearly) one collision.
	skel := crossSkeleton(60, 60, 30, 30)

	got := JunctionStrategy{}.Detect(CollisionInput{
		Skeleton:  skel,
		Path:      centerPath(5, 55, 30),
		Thickness: 5,
	})

	for i, a := range got {
		for _, b := range got[i+1:] {
			if dist(a, b) < 5 {
				t.Errorf("collisions %v and %v closer than the thickness dedup radius", a, b)
			}
		}
	}
}

func TestJunctionStrategyIgnoresFarJunctions(t *testing.T) {
	// Crossing far away from the traced path must not be flagged.
	skel := crossSkeleton(100, 100, 80, 80)

	got := JunctionStrategy{}.Detect(CollisionInput{
		Skeleton:  skel,
		Path:      centerPath(5, 40, 10),
		Thickness: 3,
	})

	if len(got) != 0 {
		t.Errorf("Detect() = %v, want none for a distant crossing", got)
	}
}

func TestDeviationStrategyFlagsDetour(t *testing.T) {
	// Path follows the straight segment, then detours far off it.
	path := centerPath(0, 30, 50)
	for i := 1; i <= 20; i++ {
		path = append(path, image.Pt(30, 50+i)) // sharp vertical detour
	}
	for x := 31; x <= 60; x++ {
		path = append(path, image.Pt(x, 70))
	}

	got := DeviationStrategy{}.Detect(CollisionInput{
		Path:      path,
		Waypoints: []image.Point{image.Pt(0, 50), image.Pt(60, 50)},
		Thickness: 3,
	})

	if len(got) == 0 {
		t.Fatal("Detect() missed a sharp detour")
	}
}

func TestDeviationStrategyIgnoresStraightPath(t *testing.T) {
	got := DeviationStrategy{}.Detect(CollisionInput{
		Path:      centerPath(0, 60, 50),
		Waypoints: []image.Point{image.Pt(0, 50), image.Pt(60, 50)},
		Thickness: 3,
	})

	if len(got) != 0 {
		t.Errorf("Detect() = %v on a straight path, want none", got)
	}
}

func TestDeviationStrategyNeedsTwoWaypoints(t *testing.T) {
	got := DeviationStrategy{}.Detect(CollisionInput{
		Path:      centerPath(0, 60, 50),
		Waypoints: []image.Point{image.Pt(0, 50)},
	})

	if got != nil {
		t.Errorf("Detect() = %v with one waypoint, want nil", got)
	}
}
