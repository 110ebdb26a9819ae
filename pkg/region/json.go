package region

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/matzehuels/findline/pkg/errors"
	"github.com/matzehuels/findline/pkg/raster"
)

// record is the wire representation of a Region. Manual regions carry
// their mask run-length encoded and cropped to the bounding box; auto
// regions carry only the box.
type record struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Mode      string `json:"mode"`
	BBox      [4]int `json:"bbox"` // x1, y1, x2, y2 (exclusive)
	Thickness int    `json:"thickness,omitempty"`
	MaskShape [2]int `json:"mask_shape,omitempty"` // rows, cols of the cropped mask
	MaskRLE   []Run  `json:"mask_rle,omitempty"`
}

// WriteJSON encodes regions as a JSON array and writes it to w.
// The output round-trips through [ReadJSON].
func WriteJSON(regions []Region, w io.Writer) error {
	out := make([]record, len(regions))
	for i, r := range regions {
		rec := record{
			ID:        r.ID,
			Kind:      string(r.Kind),
			Mode:      string(r.Mode),
			BBox:      [4]int{r.BBox.Min.X, r.BBox.Min.Y, r.BBox.Max.X, r.BBox.Max.Y},
			Thickness: r.Thickness,
		}
		if r.Mode == ModeManual && r.Mask != nil {
			cropped := crop(r.Mask, r.BBox)
			rec.MaskShape = [2]int{cropped.H, cropped.W}
			rec.MaskRLE = EncodeRLE(cropped)
		}
		out[i] = rec
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes regions from r. Manual masks are re-expanded into
// full frames of size imgW×imgH at their stored bounding box.
func ReadJSON(r io.Reader, imgW, imgH int) ([]Region, error) {
	var recs []record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRegion, err, "decode region JSON")
	}

	out := make([]Region, len(recs))
	for i, rec := range recs {
		bbox := image.Rect(rec.BBox[0], rec.BBox[1], rec.BBox[2], rec.BBox[3])
		reg := Region{
			ID:        rec.ID,
			Kind:      Kind(rec.Kind),
			Mode:      Mode(rec.Mode),
			BBox:      bbox,
			Thickness: rec.Thickness,
		}
		if len(rec.MaskRLE) > 0 {
			cropped, err := DecodeRLE(rec.MaskRLE, rec.MaskShape[1], rec.MaskShape[0])
			if err != nil {
				return nil, err
			}
			reg.Mask = uncrop(cropped, bbox, imgW, imgH)
		}
		out[i] = reg
	}
	return out, nil
}

// ExportJSON writes regions to a JSON file at path.
func ExportJSON(regions []Region, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "create %s", path)
	}
	if err := WriteJSON(regions, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportJSON reads regions from a JSON file at path.
func ImportJSON(path string, imgW, imgH int) ([]Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRegion, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f, imgW, imgH)
}

// crop extracts the sub-bitmap covered by bbox.
func crop(mask *raster.Bitmap, bbox image.Rectangle) *raster.Bitmap {
	b := bbox.Intersect(image.Rect(0, 0, mask.W, mask.H))
	out := raster.NewBitmap(b.Dx(), b.Dy(), 0)
	for y := 0; y < out.H; y++ {
		srcOff := (b.Min.Y+y)*mask.W + b.Min.X
		copy(out.Pix[y*out.W:(y+1)*out.W], mask.Pix[srcOff:srcOff+out.W])
	}
	return out
}

// uncrop places a cropped mask back into a full w×h frame at bbox.
func uncrop(cropped *raster.Bitmap, bbox image.Rectangle, w, h int) *raster.Bitmap {
	out := raster.NewBitmap(w, h, 0)
	for y := 0; y < cropped.H; y++ {
		dy := bbox.Min.Y + y
		if dy < 0 || dy >= h {
			continue
		}
		for x := 0; x < cropped.W; x++ {
			dx := bbox.Min.X + x
			if dx < 0 || dx >= w {
				continue
			}
			out.Pix[dy*w+dx] = cropped.Pix[y*cropped.W+x]
		}
	}
	return out
}
