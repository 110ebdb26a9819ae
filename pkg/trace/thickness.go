package trace

import (
	"image"
	"math"

	"github.com/matzehuels/findline/pkg/raster"
)

const (
	// DefaultThickness is returned when the stroke width cannot be measured.
	DefaultThickness = 3

	// DefaultSampleLength is the number of leading path points used for
	// thickness measurement.
	DefaultSampleLength = 20

	// thicknessScanRange bounds the perpendicular edge scan on each side.
	thicknessScanRange = 20

	// backgroundLevel is the intensity above which a pixel counts as paper
	// during edge scans.
	backgroundLevel = 200
)

// MeasureThickness estimates the stroke width of the traced line from the
// original grayscale raster.
//
// Only the first min(sampleLen, len(path)) points are used. For each
// consecutive pair the scan walks outward from the segment midpoint along
// both perpendicular directions until it leaves the ink (intensity above
// 200); the two stop distances sum to one thickness sample. Segments of
// zero length, or whose scans never reach the background within range, are
// skipped. The result is max(1, round(mean(samples))), or DefaultThickness
// when nothing could be sampled. The whole path shares this single
// estimate.
func MeasureThickness(gray *raster.Gray, path []image.Point, sampleLen int) int {
	if sampleLen <= 0 {
		sampleLen = DefaultSampleLength
	}
	n := min(sampleLen, len(path))
	if n < 2 {
		return DefaultThickness
	}
	samples := path[:n]

	var sum float64
	count := 0
	for i := 0; i < len(samples)-1; i++ {
		p1, p2 := samples[i], samples[i+1]

		dx := float64(p2.X - p1.X)
		dy := float64(p2.Y - p1.Y)
		length := math.Sqrt(dx*dx + dy*dy)
		if length == 0 {
			continue
		}
		perpX := -dy / length
		perpY := dx / length

		cx := (p1.X + p2.X) / 2
		cy := (p1.Y + p2.Y) / 2

		left := edgeDistance(gray, cx, cy, perpX, perpY)
		right := edgeDistance(gray, cx, cy, -perpX, -perpY)
		if left == 0 || right == 0 {
			continue
		}
		sum += float64(left + right)
		count++
	}

	if count == 0 {
		return DefaultThickness
	}
	t := int(math.Round(sum / float64(count)))
	return max(1, t)
}

// edgeDistance walks from (cx, cy) along (dirX, dirY) and returns the
// distance to the first background pixel, or 0 if none is reached within
// the scan range.
func edgeDistance(gray *raster.Gray, cx, cy int, dirX, dirY float64) int {
	for d := 1; d < thicknessScanRange; d++ {
		tx := cx + int(dirX*float64(d))
		ty := cy + int(dirY*float64(d))
		if !gray.In(tx, ty) {
			continue
		}
		if gray.At(tx, ty) > backgroundLevel {
			return d
		}
	}
	return 0
}
