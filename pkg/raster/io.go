package raster

import (
	"image"
	"io"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/findline/pkg/errors"
)

// Load decodes the image at path. PNG and JPEG are supported (plus anything
// else the imaging codec registry knows about).
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "could not read image: %s", path)
	}
	return img, nil
}

// Decode reads an image from r. Useful when the caller also needs the raw
// bytes, e.g. for content-addressed caching.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "could not decode image")
	}
	return img, nil
}

// Save encodes img to path; the format is inferred from the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "could not write image: %s", path)
	}
	return nil
}
