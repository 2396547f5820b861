package jpeg

import (
	nJpeg "image/jpeg"
	"io"

	"github.com/pixelling/pixelling/src/image"
)

const Quality = 95

// Test checks the SOI marker only; files often carry bytes after EOI.
func Test(data []byte) bool {
	if len(data) < 3 {
		return false
	}

	// JPEG Magic Numbers
	// https://www.garykessler.net/library/file_sigs.html
	return data[0] == 0xFF &&
		data[1] == 0xD8 &&
		data[2] == 0xFF
}

func Decode(r io.Reader) (image.Raster, error) {
	m, err := nJpeg.Decode(r)
	if err != nil {
		return image.Raster{}, err
	}

	return image.FromImage(m), nil
}

// Encode writes r as a baseline JPEG. JPEG has no alpha channel, so RGBA
// rasters lose their transparency here.
func Encode(w io.Writer, r image.Raster) error {
	return nJpeg.Encode(w, r.RGBImage(), &nJpeg.Options{Quality: Quality})
}
