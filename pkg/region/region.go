// Package region defines the tagged records that cross from the tracing
// core into the external workspace layer.
//
// The workspace persists selections as loosely structured documents; this
// package pins the boundary down to an explicit struct (kind, mode, bbox,
// mask) and provides the run-length mask encoding the workspace stores.
package region

import (
	"image"

	"github.com/google/uuid"

	"github.com/matzehuels/findline/pkg/errors"
	"github.com/matzehuels/findline/pkg/raster"
	"github.com/matzehuels/findline/pkg/trace"
)

// Kind classifies what a region selects.
type Kind string

// Region kinds.
const (
	KindLine  Kind = "line"  // traced leader line
	KindText  Kind = "text"  // detected or marked text block
	KindHatch Kind = "hatch" // hatching area
)

// Mode records how a region was produced.
type Mode string

// Region modes.
const (
	ModeAuto   Mode = "auto"   // detected without user pixels (bbox only)
	ModeManual Mode = "manual" // user-traced, carries a pixel mask
)

// Region is one selection record. Auto regions carry only a bounding box;
// manual regions additionally carry the pixel mask (persisted run-length
// encoded, cropped to BBox).
type Region struct {
	ID        string          // unique record identifier
	Kind      Kind            // what the region selects
	Mode      Mode            // how it was produced
	BBox      image.Rectangle // bounds in image coordinates
	Mask      *raster.Bitmap  // full-frame mask; nil for auto regions
	Thickness int             // stroke width for line regions, 0 otherwise
}

// FromTrace builds a manual line region from a trace result. The bounding
// box is the tight bounds of the selected pixels. Returns an error when the
// trace selected nothing.
func FromTrace(res trace.Result) (Region, error) {
	bbox, ok := res.Mask.Bounds(255)
	if !ok {
		return Region{}, errors.New(errors.ErrCodeNoPath, "trace selected no pixels")
	}
	return Region{
		ID:        uuid.NewString(),
		Kind:      KindLine,
		Mode:      ModeManual,
		BBox:      bbox,
		Mask:      res.Mask,
		Thickness: res.Thickness,
	}, nil
}
