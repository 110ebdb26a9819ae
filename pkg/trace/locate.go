package trace

import (
	"image"
	"math"

	"github.com/matzehuels/findline/pkg/raster"
)

// DefaultSearchRadius bounds the ring search in NearestSkeletonPoint.
const DefaultSearchRadius = 50

// NearestSkeletonPoint anchors an approximate waypoint to the skeleton.
//
// It searches rings of increasing radius around (x, y): for ring r it scans
// all integer offsets whose Euclidean distance from the center falls in
// [r-0.5, r+0.5] (dy ascending, then dx ascending) and keeps the in-bounds
// skeleton pixel with minimal distance found in that order. The first
// non-empty ring wins, making this an approximate nearest neighbor: the
// center itself is never examined (r starts at 1), so a waypoint already on
// the skeleton anchors to a neighbor at distance 1, not to itself.
//
// Returns false if no skeleton pixel lies within radius rings.
func NearestSkeletonPoint(skel *raster.Bitmap, x, y, radius int) (image.Point, bool) {
	for r := 1; r <= radius; r++ {
		minDist := math.Inf(1)
		var nearest image.Point
		found := false

		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				dist := math.Sqrt(float64(dx*dx + dy*dy))
				if dist < float64(r)-0.5 || dist > float64(r)+0.5 {
					continue
				}
				tx, ty := x+dx, y+dy
				if !skel.In(tx, ty) {
					continue
				}
				if skel.At(tx, ty) < 127 && dist < minDist {
					minDist = dist
					nearest = image.Pt(tx, ty)
					found = true
				}
			}
		}

		if found {
			return nearest, true
		}
	}
	return image.Point{}, false
}
