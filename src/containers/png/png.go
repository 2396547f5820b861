package png

import (
	nPng "image/png"
	"io"

	"github.com/pixelling/pixelling/src/image"
)

// Test checks the eight byte signature. Trailing data after IEND is left to
// the decoder.
func Test(data []byte) bool {
	if len(data) < 8 {
		return false
	}

	// PNG Magic Numbers
	// https://www.garykessler.net/library/file_sigs.html
	return data[0] == 0x89 &&
		data[1] == 'P' &&
		data[2] == 'N' &&
		data[3] == 'G' &&
		data[4] == 0x0D &&
		data[5] == 0x0A &&
		data[6] == 0x1A &&
		data[7] == 0x0A
}

func Decode(r io.Reader) (image.Raster, error) {
	m, err := nPng.Decode(r)
	if err != nil {
		return image.Raster{}, err
	}

	return image.FromImage(m), nil
}

// Encode writes r at best compression, as truecolor for RGB rasters and
// truecolor with alpha otherwise.
func Encode(w io.Writer, r image.Raster) error {
	enc := nPng.Encoder{CompressionLevel: nPng.BestCompression}
	if r.Mode() == image.RGB {
		return enc.Encode(w, r.RGBImage())
	}

	return enc.Encode(w, r.Image())
}
