// Package raster provides the 8-bit grid types shared by the tracing
// pipeline: grayscale images and {0,255} bitmaps.
//
// Both types are thin row-major pixel buffers. They deliberately avoid the
// stride/sub-rectangle machinery of image.Gray because every pipeline stage
// works on full frames; conversion to and from the standard image types is
// provided for decoding and encoding at the edges.
//
// Convention: in a Bitmap produced by the pipeline, 0 marks ink (line) and
// 255 marks paper, matching scanned engineering drawings. Stages that need
// the inverted convention (foreground thinning) invert locally.
package raster

import (
	"image"
	"image/color"
)

// Gray is a row-major 8-bit grayscale grid of size W×H.
type Gray struct {
	W, H int
	Pix  []uint8
}

// NewGray allocates a zeroed W×H grayscale grid.
func NewGray(w, h int) *Gray {
	return &Gray{W: w, H: h, Pix: make([]uint8, w*h)}
}

// At returns the intensity at (x, y). The caller must ensure the
// coordinates are in bounds; use In for boundary checks.
func (g *Gray) At(x, y int) uint8 { return g.Pix[y*g.W+x] }

// Set stores v at (x, y).
func (g *Gray) Set(x, y int, v uint8) { g.Pix[y*g.W+x] = v }

// In reports whether (x, y) lies inside the grid.
func (g *Gray) In(x, y int) bool { return x >= 0 && x < g.W && y >= 0 && y < g.H }

// Clone returns a deep copy of the grid.
func (g *Gray) Clone() *Gray {
	out := NewGray(g.W, g.H)
	copy(out.Pix, g.Pix)
	return out
}

// Image converts the grid to a standard *image.Gray for encoding.
func (g *Gray) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.W, g.H))
	copy(img.Pix, g.Pix)
	return img
}

// Bitmap is a Gray whose pixels are restricted to {0, 255}.
//
// The distinction is purely documentary: pipeline stages take and return
// Bitmap where the two-level convention is part of their contract.
type Bitmap struct {
	W, H int
	Pix  []uint8
}

// NewBitmap allocates a W×H bitmap filled with fill (0 or 255).
func NewBitmap(w, h int, fill uint8) *Bitmap {
	b := &Bitmap{W: w, H: h, Pix: make([]uint8, w*h)}
	if fill != 0 {
		for i := range b.Pix {
			b.Pix[i] = fill
		}
	}
	return b
}

// At returns the value at (x, y) without bounds checking.
func (b *Bitmap) At(x, y int) uint8 { return b.Pix[y*b.W+x] }

// Set stores v at (x, y).
func (b *Bitmap) Set(x, y int, v uint8) { b.Pix[y*b.W+x] = v }

// In reports whether (x, y) lies inside the bitmap.
func (b *Bitmap) In(x, y int) bool { return x >= 0 && x < b.W && y >= 0 && y < b.H }

// Clone returns a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	out := &Bitmap{W: b.W, H: b.H, Pix: make([]uint8, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

// Count returns the number of pixels equal to v.
func (b *Bitmap) Count(v uint8) int {
	n := 0
	for _, p := range b.Pix {
		if p == v {
			n++
		}
	}
	return n
}

// Gray reinterprets the bitmap as a grayscale grid sharing the same pixels.
func (b *Bitmap) Gray() *Gray { return &Gray{W: b.W, H: b.H, Pix: b.Pix} }

// Image converts the bitmap to a standard *image.Gray for encoding.
func (b *Bitmap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.W, b.H))
	copy(img.Pix, b.Pix)
	return img
}

// Bounds returns the tight bounding box of all pixels equal to v, and false
// if no pixel matches.
func (b *Bitmap) Bounds(v uint8) (image.Rectangle, bool) {
	minX, minY := b.W, b.H
	maxX, maxY := -1, -1
	for y := 0; y < b.H; y++ {
		row := b.Pix[y*b.W : (y+1)*b.W]
		for x, p := range row {
			if p != v {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// GrayFromImage converts any image to a grayscale grid using the standard
// luminance weights from the color package.
func GrayFromImage(img image.Image) *Gray {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := NewGray(w, h)

	// Fast path for images that are already 8-bit grayscale.
	if src, ok := img.(*image.Gray); ok {
		for y := 0; y < h; y++ {
			copy(out.Pix[y*w:(y+1)*w], src.Pix[y*src.Stride:y*src.Stride+w])
		}
		return out
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			out.Pix[y*w+x] = c.Y
		}
	}
	return out
}
