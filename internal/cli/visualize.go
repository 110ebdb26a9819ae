package cli

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/findline/pkg/raster"
	"github.com/matzehuels/findline/pkg/trace"
)

// Overlay colors. Chosen to stay readable on grayscale scans.
var (
	colorMaskOutline = [3]float64{0.87, 0.09, 0.09} // red
	colorPath        = [3]float64{0.0, 0.78, 0.78}  // cyan
	colorWaypoint    = [3]float64{0.09, 0.72, 0.18} // green
	colorAnchor      = [3]float64{0.2, 0.4, 0.95}   // blue
	colorCollision   = [3]float64{0.85, 0.1, 0.85}  // magenta
)

// renderOverlay draws the trace result on top of the source image: the mask
// outline, the traced path, the user points with index labels, the snapped
// anchors, and any detected collisions. When showSkeleton is set the
// skeleton is composed as a second panel to the right.
func renderOverlay(img image.Image, res trace.Result, waypoints []image.Point, showSkeleton bool) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetFontFace(basicfont.Face7x13)

	drawMaskOutline(dc, res.Mask)
	drawPath(dc, res.Path)

	setRGB(dc, colorAnchor)
	for _, p := range res.Anchors {
		dc.DrawCircle(float64(p.X), float64(p.Y), 3)
		dc.Stroke()
	}

	setRGB(dc, colorCollision)
	for _, p := range res.Collisions {
		dc.DrawCircle(float64(p.X), float64(p.Y), 5)
		dc.Stroke()
	}

	setRGB(dc, colorWaypoint)
	for i, p := range waypoints {
		dc.DrawCircle(float64(p.X), float64(p.Y), 4)
		dc.Fill()
		dc.DrawString(fmt.Sprintf("%d", i+1), float64(p.X)+6, float64(p.Y)-6)
	}

	out := dc.Image()
	if showSkeleton && res.Skeleton != nil {
		out = sideBySide(out, res.Skeleton.Image())
	}
	return out
}

// drawMaskOutline marks mask pixels that border an unselected pixel.
func drawMaskOutline(dc *gg.Context, mask *raster.Bitmap) {
	if mask == nil {
		return
	}
	setRGB(dc, colorMaskOutline)
	for y := 0; y < mask.H; y++ {
		for x := 0; x < mask.W; x++ {
			if mask.At(x, y) != 255 || !isMaskEdge(mask, x, y) {
				continue
			}
			dc.SetPixel(x, y)
		}
	}
}

// isMaskEdge reports whether a selected pixel has an unselected 4-neighbor
// or lies on the image border.
func isMaskEdge(mask *raster.Bitmap, x, y int) bool {
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := x+d[0], y+d[1]
		if !mask.In(nx, ny) || mask.At(nx, ny) != 255 {
			return true
		}
	}
	return false
}

// drawPath strokes the traced path as a polyline.
func drawPath(dc *gg.Context, path []image.Point) {
	if len(path) < 2 {
		return
	}
	setRGB(dc, colorPath)
	dc.SetLineWidth(1)
	dc.MoveTo(float64(path[0].X), float64(path[0].Y))
	for _, p := range path[1:] {
		dc.LineTo(float64(p.X), float64(p.Y))
	}
	dc.Stroke()
}

func setRGB(dc *gg.Context, c [3]float64) {
	dc.SetRGB(c[0], c[1], c[2])
}

// sideBySide composes two images horizontally on a white background.
func sideBySide(left, right image.Image) image.Image {
	lb, rb := left.Bounds(), right.Bounds()
	w := lb.Dx() + rb.Dx()
	h := lb.Dy()
	if rb.Dy() > h {
		h = rb.Dy()
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, lb.Dx(), lb.Dy()), left, lb.Min, draw.Src)
	draw.Draw(out, image.Rect(lb.Dx(), 0, w, rb.Dy()), right, rb.Min, draw.Src)
	return out
}
