package transform

import (
	nImage "image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pixelling/pixelling/src/image"
	"github.com/pixelling/pixelling/src/job"
)

// CropToAspect cuts the centered sub-rectangle of r whose aspect ratio
// matches targetWidth:targetHeight. Only the longer axis is cropped and no
// resampling happens. A source that already matches is returned unchanged.
func CropToAspect(r image.Raster, targetWidth, targetHeight int) (image.Raster, error) {
	if targetWidth <= 0 || targetHeight <= 0 {
		return image.Raster{}, job.ContentError("target aspect must be positive, got %dx%d", targetWidth, targetHeight)
	}

	sw, sh := r.Width(), r.Height()
	sourceAspect := float64(sw) / float64(sh)
	targetAspect := float64(targetWidth) / float64(targetHeight)

	var rect nImage.Rectangle
	switch {
	case sourceAspect > targetAspect:
		cw := clamp(int(math.RoundToEven(float64(sh)*targetAspect)), 1, sw)
		left := (sw - cw) / 2
		rect = nImage.Rect(left, 0, left+cw, sh)
	case sourceAspect < targetAspect:
		ch := clamp(int(math.RoundToEven(float64(sw)/targetAspect)), 1, sh)
		top := (sh - ch) / 2
		rect = nImage.Rect(0, top, sw, top+ch)
	default:
		return r, nil
	}

	return image.FromNRGBA(imaging.Crop(r.Image(), rect), r.Mode()), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
