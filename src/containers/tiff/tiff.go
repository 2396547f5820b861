package tiff

import (
	"io"

	"github.com/pixelling/pixelling/src/image"
	xTiff "golang.org/x/image/tiff"
)

// Test accepts both byte orders.
func Test(data []byte) bool {
	if len(data) < 4 {
		return false
	}

	// TIFF Magic Numbers
	// https://www.garykessler.net/library/file_sigs.html
	return (data[0] == 'I' &&
		((data[1] == ' ' && data[2] == 'I') || (data[1] == 'I' && data[2] == '*' && data[3] == 0x00))) ||
		(data[0] == 'M' && data[1] == 'M' && data[2] == 0x00 && data[3] == '*')
}

func Decode(r io.Reader) (image.Raster, error) {
	m, err := xTiff.Decode(r)
	if err != nil {
		return image.Raster{}, err
	}

	return image.FromImage(m), nil
}

func Encode(w io.Writer, r image.Raster) error {
	opts := &xTiff.Options{Compression: xTiff.Deflate}
	if r.Mode() == image.RGB {
		return xTiff.Encode(w, r.RGBImage(), opts)
	}

	return xTiff.Encode(w, r.Image(), opts)
}
