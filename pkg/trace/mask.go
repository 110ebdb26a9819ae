package trace

import (
	"image"
	"math"

	"github.com/matzehuels/findline/pkg/raster"
)

// DefaultCollisionThreshold separates ink from paper when building the
// mask: only source pixels darker than this are ever selected.
const DefaultCollisionThreshold = 200

// BuildMask expands the traced path into a thickness-band selection mask
// over real ink pixels, then carves circular exclusions at the collision
// points.
//
// Expansion oversamples each path segment (max(5, 3x its length) samples)
// and extends perpendicular to it on both sides up to thickness/2 pixels.
// A pixel is selected only when its source intensity is below threshold,
// so the mask follows the actual ink inside the geometric band rather than
// filling the band solid.
//
// Carving clears every selected pixel within a disk of radius
// max(1.5*thickness, 15)/2 around each collision point, splitting the
// selection where the line passes under other ink. Carving only removes
// pixels; the result is always a subset of the expanded mask.
func BuildMask(gray *raster.Gray, path []image.Point, thickness int, collisions []image.Point, threshold uint8) *raster.Bitmap {
	mask := raster.NewBitmap(gray.W, gray.H, 0)
	if thickness < 1 {
		thickness = 1
	}
	halfThickness := float64(thickness) / 2

	for i := 0; i < len(path)-1; i++ {
		p1, p2 := path[i], path[i+1]

		dx := float64(p2.X - p1.X)
		dy := float64(p2.Y - p1.Y)
		length := math.Sqrt(dx*dx + dy*dy)
		if length == 0 {
			continue
		}
		perpX := -dy / length
		perpY := dx / length

		samples := max(5, int(length*3))
		for j := 0; j <= samples; j++ {
			t := float64(j) / float64(samples)
			cx := float64(p1.X) + dx*t
			cy := float64(p1.Y) + dy*t

			for _, side := range [2]float64{-1, 1} {
				for d := 0; d <= int(halfThickness); d++ {
					x := int(cx + side*perpX*float64(d))
					y := int(cy + side*perpY*float64(d))
					if !mask.In(x, y) {
						continue
					}
					if gray.At(x, y) < threshold {
						mask.Set(x, y, 255)
					}
				}
			}
		}
	}

	for _, c := range collisions {
		carveDisk(mask, c, exclusionRadius(thickness))
	}

	return mask
}

// exclusionRadius sizes the carve disk from the stroke thickness.
func exclusionRadius(thickness int) float64 {
	return math.Max(float64(thickness)*1.5, 15) / 2
}

// carveDisk clears all mask pixels within radius of center.
func carveDisk(mask *raster.Bitmap, center image.Point, radius float64) {
	r := int(radius)
	for y := max(0, center.Y-r); y <= min(mask.H-1, center.Y+r); y++ {
		for x := max(0, center.X-r); x <= min(mask.W-1, center.X+r); x++ {
			ddx := float64(x - center.X)
			ddy := float64(y - center.Y)
			if math.Sqrt(ddx*ddx+ddy*ddy) <= radius {
				mask.Set(x, y, 0)
			}
		}
	}
}
