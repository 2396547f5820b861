package transform

import (
	"github.com/disintegration/imaging"
	"github.com/pixelling/pixelling/src/image"
	"github.com/pixelling/pixelling/src/job"
)

type Filter string

const (
	Nearest  Filter = "nearest"
	Box      Filter = "box"
	Bilinear Filter = "bilinear"
	Bicubic  Filter = "bicubic"
	Lanczos  Filter = "lanczos"
)

var filters = map[Filter]imaging.ResampleFilter{
	Nearest:  imaging.NearestNeighbor,
	Box:      imaging.Box,
	Bilinear: imaging.Linear,
	Bicubic:  imaging.CatmullRom,
	Lanczos:  imaging.Lanczos,
}

// Resample returns r scaled to exactly width x height. The channel mode is
// kept.
func Resample(r image.Raster, width, height int, f Filter) (image.Raster, error) {
	if width <= 0 || height <= 0 {
		return image.Raster{}, job.ContentError("resample size must be positive, got %dx%d", width, height)
	}

	rf, ok := filters[f]
	if !ok {
		return image.Raster{}, job.ContentError("invalid resampling filter %q", string(f))
	}

	return image.FromNRGBA(imaging.Resize(r.Image(), width, height, rf), r.Mode()), nil
}
