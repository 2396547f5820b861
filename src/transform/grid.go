package transform

import (
	"github.com/pixelling/pixelling/src/image"
	"github.com/pixelling/pixelling/src/job"
)

// ResizeToGrid crops r to the grid's aspect ratio and box-filters it down to
// exactly gridWidth x gridHeight.
func ResizeToGrid(r image.Raster, gridWidth, gridHeight int) (image.Raster, error) {
	if gridWidth <= 0 || gridHeight <= 0 {
		return image.Raster{}, job.ContentError("grid dimensions must be positive integers, got %dx%d", gridWidth, gridHeight)
	}

	cropped, err := CropToAspect(r, gridWidth, gridHeight)
	if err != nil {
		return image.Raster{}, err
	}

	return Resample(cropped, gridWidth, gridHeight, Box)
}
