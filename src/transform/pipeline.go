package transform

import (
	"github.com/pixelling/pixelling/src/image"
	"github.com/pixelling/pixelling/src/job"
)

// Transform applies the spatial step selected by req.Mode and then, when a
// color count is set, palette reduction on the result.
func Transform(r image.Raster, req job.Request) (image.Raster, error) {
	var (
		out image.Raster
		err error
	)

	switch req.Mode {
	case job.PixelMode:
		if req.Pixel == nil {
			return image.Raster{}, job.ValidationError("block size must be provided for pixel mode")
		}
		out, err = Pixelate(r, req.Pixel.BlockSize)
	case job.GridMode:
		if req.Grid == nil {
			return image.Raster{}, job.ValidationError("grid width and height must be provided for grid mode")
		}
		out, err = ResizeToGrid(r, req.Grid.Width, req.Grid.Height)
	default:
		return image.Raster{}, job.UnsupportedModeError(req.Mode)
	}
	if err != nil {
		return image.Raster{}, err
	}

	if req.ColorCount != nil {
		return Quantize(out, *req.ColorCount, req.Dither)
	}

	return out, nil
}
