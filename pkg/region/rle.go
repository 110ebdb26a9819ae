package region

import (
	"github.com/matzehuels/findline/pkg/errors"
	"github.com/matzehuels/findline/pkg/raster"
)

// Run is one run-length entry: Count consecutive pixels of Value in the
// row-major flattening of a mask.
type Run struct {
	Value uint8 `json:"value"`
	Count int   `json:"count"`
}

// EncodeRLE run-length encodes a bitmap row-major. An empty bitmap yields
// a single run covering every pixel.
func EncodeRLE(mask *raster.Bitmap) []Run {
	if len(mask.Pix) == 0 {
		return nil
	}
	var runs []Run
	cur := Run{Value: mask.Pix[0]}
	for _, p := range mask.Pix {
		if p == cur.Value {
			cur.Count++
			continue
		}
		runs = append(runs, cur)
		cur = Run{Value: p, Count: 1}
	}
	return append(runs, cur)
}

// DecodeRLE expands runs into a w×h bitmap. The runs must cover exactly
// w*h pixels.
func DecodeRLE(runs []Run, w, h int) (*raster.Bitmap, error) {
	out := raster.NewBitmap(w, h, 0)
	i := 0
	for _, r := range runs {
		if r.Count < 0 || i+r.Count > len(out.Pix) {
			return nil, errors.New(errors.ErrCodeInvalidRegion, "run-length data overflows %dx%d mask", w, h)
		}
		for n := 0; n < r.Count; n++ {
			out.Pix[i] = r.Value
			i++
		}
	}
	if i != len(out.Pix) {
		return nil, errors.New(errors.ErrCodeInvalidRegion, "run-length data covers %d of %d pixels", i, len(out.Pix))
	}
	return out, nil
}
