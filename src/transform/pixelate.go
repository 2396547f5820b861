package transform

import (
	"github.com/pixelling/pixelling/src/image"
	"github.com/pixelling/pixelling/src/job"
)

// Pixelate produces a block mosaic of the same size as r: nearest-neighbour
// down to (w/blockSize, h/blockSize), then nearest-neighbour back up.
func Pixelate(r image.Raster, blockSize int) (image.Raster, error) {
	width, height := r.Width(), r.Height()
	if blockSize <= 0 {
		return image.Raster{}, job.ContentError("block size must be a positive integer, got %d", blockSize)
	}
	if blockSize > min(width, height) {
		return image.Raster{}, job.ContentError("block size too large: %d exceeds the smaller image dimension %d", blockSize, min(width, height))
	}

	reduced, err := Resample(r, width/blockSize, height/blockSize, Nearest)
	if err != nil {
		return image.Raster{}, err
	}

	return Resample(reduced, width, height, Nearest)
}
