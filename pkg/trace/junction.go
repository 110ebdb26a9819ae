package trace

import (
	"image"

	"github.com/matzehuels/findline/pkg/raster"
)

// Junctions returns every interior skeleton pixel with three or more
// skeleton-connected 8-neighbors: the branch and crossing points where the
// traced line meets other ink. Border pixels are excluded. Points are
// reported in row-major scan order.
func Junctions(skel *raster.Bitmap) []image.Point {
	var out []image.Point
	for y := 1; y < skel.H-1; y++ {
		for x := 1; x < skel.W-1; x++ {
			if skel.At(x, y) >= 127 {
				continue
			}
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if skel.At(x+dx, y+dy) < 127 {
						n++
					}
				}
			}
			// Endpoints have 1 neighbor, line interiors 2, junctions 3+.
			if n >= 3 {
				out = append(out, image.Pt(x, y))
			}
		}
	}
	return out
}
