package trace

import "github.com/matzehuels/findline/pkg/raster"

// Skeletonize thins the ink regions of a monochrome bitmap (0 = ink,
// 255 = paper) to one-pixel-wide curves using Zhang-Suen iterative thinning.
// Connectivity of each ink region is preserved, and the operation is
// idempotent: re-skeletonizing a skeleton is a no-op.
//
// The output uses the same convention as the input: 0 = line, 255 = paper.
func Skeletonize(mono *raster.Bitmap) *raster.Bitmap {
	w, h := mono.W, mono.H

	// Work on an inverted boolean grid: true = foreground (ink).
	fg := make([]bool, w*h)
	for i, p := range mono.Pix {
		fg[i] = p < 127
	}

	marked := make([]int, 0, 64)
	for {
		changed := false
		for pass := 0; pass < 2; pass++ {
			marked = marked[:0]
			for y := 1; y < h-1; y++ {
				for x := 1; x < w-1; x++ {
					i := y*w + x
					if !fg[i] {
						continue
					}
					if zhangSuenRemovable(fg, w, x, y, pass) {
						marked = append(marked, i)
					}
				}
			}
			for _, i := range marked {
				fg[i] = false
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	out := raster.NewBitmap(w, h, 0)
	for i, f := range fg {
		if !f {
			out.Pix[i] = 255
		}
	}
	return out
}

// zhangSuenRemovable reports whether the foreground pixel at (x, y) may be
// deleted in the given sub-iteration (0 or 1). Neighbors are labeled
// p2..p9 clockwise starting at north, per the original paper.
func zhangSuenRemovable(fg []bool, w, x, y, pass int) bool {
	p2 := fg[(y-1)*w+x]
	p3 := fg[(y-1)*w+x+1]
	p4 := fg[y*w+x+1]
	p5 := fg[(y+1)*w+x+1]
	p6 := fg[(y+1)*w+x]
	p7 := fg[(y+1)*w+x-1]
	p8 := fg[y*w+x-1]
	p9 := fg[(y-1)*w+x-1]

	n := count(p2) + count(p3) + count(p4) + count(p5) +
		count(p6) + count(p7) + count(p8) + count(p9)
	if n < 2 || n > 6 {
		return false
	}

	// Number of 0->1 transitions in the circular sequence p2,p3,...,p9,p2.
	seq := [9]bool{p2, p3, p4, p5, p6, p7, p8, p9, p2}
	trans := 0
	for i := 0; i < 8; i++ {
		if !seq[i] && seq[i+1] {
			trans++
		}
	}
	if trans != 1 {
		return false
	}

	if pass == 0 {
		return !(p2 && p4 && p6) && !(p4 && p6 && p8)
	}
	return !(p2 && p4 && p8) && !(p2 && p6 && p8)
}

func count(b bool) int {
	if b {
		return 1
	}
	return 0
}
