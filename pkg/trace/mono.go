package trace

import "github.com/matzehuels/findline/pkg/raster"

// Monochrome binarizes a grayscale image with Otsu's automatic threshold.
// Pixels brighter than the threshold become 255 (paper), the rest 0 (ink).
// The result has the same dimensions as the input.
func Monochrome(g *raster.Gray) *raster.Bitmap {
	t := otsuThreshold(g)
	out := raster.NewBitmap(g.W, g.H, 0)
	for i, p := range g.Pix {
		if p > t {
			out.Pix[i] = 255
		}
	}
	return out
}

// otsuThreshold computes the global threshold that maximizes between-class
// variance of the intensity histogram.
func otsuThreshold(g *raster.Gray) uint8 {
	var hist [256]int
	for _, p := range g.Pix {
		hist[p]++
	}

	total := len(g.Pix)
	if total == 0 {
		return 0
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var (
		sumB  float64
		wB    int
		best  float64
		bestT uint8
	)
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])

		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		between := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			bestT = uint8(t)
		}
	}
	return bestT
}
