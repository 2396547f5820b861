package webp

import (
	"io"

	"github.com/pixelling/pixelling/src/image"
	xWebp "golang.org/x/image/webp"
)

// Test checks the RIFF container and the WEBP form type.
func Test(data []byte) bool {
	if len(data) < 12 {
		return false
	}

	// WEBP Magic Numbers
	// https://www.garykessler.net/library/file_sigs.html
	return data[0] == 'R' &&
		data[1] == 'I' &&
		data[2] == 'F' &&
		data[3] == 'F' &&
		data[8] == 'W' &&
		data[9] == 'E' &&
		data[10] == 'B' &&
		data[11] == 'P'
}

// Decode reads a still WebP. There is no WebP encoder, so WebP is input only.
func Decode(r io.Reader) (image.Raster, error) {
	m, err := xWebp.Decode(r)
	if err != nil {
		return image.Raster{}, err
	}

	return image.FromImage(m), nil
}
