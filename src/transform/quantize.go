package transform

import (
	nImage "image"
	"image/color"

	"github.com/pixelling/pixelling/src/image"
	"github.com/pixelling/pixelling/src/job"
	"github.com/soniakeys/quant/median"
	"golang.org/x/image/draw"
)

// MaxColors is the largest palette an indexed image can hold.
const MaxColors = 256

// Quantize reduces the RGB triple of r to at most colorCount median-cut
// colors. Alpha samples are split off first and reattached unchanged, so the
// output keeps the size and channel mode of r. Counts above MaxColors are
// clamped.
func Quantize(r image.Raster, colorCount int, dither bool) (image.Raster, error) {
	if colorCount <= 0 {
		return image.Raster{}, job.ContentError("color count must be a positive integer, got %d", colorCount)
	}
	if colorCount > MaxColors {
		colorCount = MaxColors
	}

	rgb := r.RGBImage()
	pm := Paletted(rgb, MedianCutPalette(rgb, colorCount), dither)

	alpha := r.Alpha()
	ch := r.Mode().Channels()
	pix := make([]uint8, r.Width()*r.Height()*ch)
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			i := y*r.Width() + x
			c := color.RGBAModel.Convert(pm.Palette[pm.ColorIndexAt(x, y)]).(color.RGBA)
			pix[i*ch] = c.R
			pix[i*ch+1] = c.G
			pix[i*ch+2] = c.B
			if alpha != nil {
				pix[i*ch+3] = alpha[i]
			}
		}
	}

	return image.NewRaster(r.Width(), r.Height(), r.Mode(), pix)
}

// MedianCutPalette selects up to n colors from m. It never returns an empty
// palette for a non-empty image.
func MedianCutPalette(m nImage.Image, n int) color.Palette {
	p := median.Quantizer(n).Quantize(make(color.Palette, 0, n), m)
	if len(p) == 0 {
		b := m.Bounds()
		p = append(p, color.RGBAModel.Convert(m.At(b.Min.X, b.Min.Y)))
	}
	return p
}

// Paletted maps m onto p, with Floyd-Steinberg error diffusion when dither
// is set and plain nearest-color lookup otherwise.
func Paletted(m nImage.Image, p color.Palette, dither bool) *nImage.Paletted {
	b := m.Bounds()
	pm := nImage.NewPaletted(nImage.Rect(0, 0, b.Dx(), b.Dy()), p)

	var drawer draw.Drawer = draw.Src
	if dither {
		drawer = draw.FloydSteinberg
	}
	drawer.Draw(pm, pm.Bounds(), m, b.Min)

	return pm
}
