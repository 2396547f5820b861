package bmp

import (
	"io"

	"github.com/pixelling/pixelling/src/image"
	xBmp "golang.org/x/image/bmp"
)

func Test(data []byte) bool {
	if len(data) < 14 {
		return false
	}

	// BMP Magic Numbers
	// https://www.garykessler.net/library/file_sigs.html
	return data[0] == 'B' &&
		data[1] == 'M'
}

func Decode(r io.Reader) (image.Raster, error) {
	m, err := xBmp.Decode(r)
	if err != nil {
		return image.Raster{}, err
	}

	return image.FromImage(m), nil
}

// Encode writes r as a BMP. Opaque rasters are written as 24-bit, rasters
// with alpha as 32-bit.
func Encode(w io.Writer, r image.Raster) error {
	if r.Mode() == image.RGB {
		return xBmp.Encode(w, r.RGBImage())
	}

	return xBmp.Encode(w, r.Image())
}
