package image

import (
	"fmt"
	nImage "image"
	"image/color"
)

type ImageType string

const (
	BMP  ImageType = "bmp"
	GIF  ImageType = "gif"
	JPEG ImageType = "jpeg"
	PNG  ImageType = "png"
	TIFF ImageType = "tiff"
	WEBP ImageType = "webp"
)

// ChannelMode is the sample layout of a Raster.
type ChannelMode string

const (
	RGB  ChannelMode = "RGB"
	RGBA ChannelMode = "RGBA"
)

// Channels returns the number of samples per pixel.
func (m ChannelMode) Channels() int {
	if m == RGBA {
		return 4
	}
	return 3
}

// Raster is an immutable row-major pixel buffer. Every transform returns a
// new Raster; the samples of an existing one are never written.
type Raster struct {
	width  int
	height int
	mode   ChannelMode
	pix    []uint8
}

// NewRaster copies pix into a new Raster. len(pix) must equal
// width*height*mode.Channels().
func NewRaster(width, height int, mode ChannelMode, pix []uint8) (Raster, error) {
	if width <= 0 || height <= 0 {
		return Raster{}, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	if mode != RGB && mode != RGBA {
		return Raster{}, fmt.Errorf("invalid channel mode %q", mode)
	}
	if len(pix) != width*height*mode.Channels() {
		return Raster{}, fmt.Errorf("raster %dx%d %s needs %d samples, got %d", width, height, mode, width*height*mode.Channels(), len(pix))
	}

	buf := make([]uint8, len(pix))
	copy(buf, pix)

	return Raster{
		width:  width,
		height: height,
		mode:   mode,
		pix:    buf,
	}, nil
}

// NewUniform returns a width x height Raster filled with c. For RGB the alpha
// of c is ignored.
func NewUniform(width, height int, mode ChannelMode, c color.NRGBA) Raster {
	ch := mode.Channels()
	pix := make([]uint8, width*height*ch)
	for i := 0; i < len(pix); i += ch {
		pix[i] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		if ch == 4 {
			pix[i+3] = c.A
		}
	}

	return Raster{
		width:  width,
		height: height,
		mode:   mode,
		pix:    pix,
	}
}

// FromNRGBA copies img into a Raster of the given mode. Alpha is dropped for
// RGB.
func FromNRGBA(img *nImage.NRGBA, mode ChannelMode) Raster {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	ch := mode.Channels()
	pix := make([]uint8, w*h*ch)

	i := 0
	for y := 0; y < h; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			pix[i] = img.Pix[off]
			pix[i+1] = img.Pix[off+1]
			pix[i+2] = img.Pix[off+2]
			if ch == 4 {
				pix[i+3] = img.Pix[off+3]
			}
			i += ch
			off += 4
		}
	}

	return Raster{
		width:  w,
		height: h,
		mode:   mode,
		pix:    pix,
	}
}

// FromImage converts any decoded image. Images that report themselves fully
// opaque become RGB, everything else RGBA.
func FromImage(img nImage.Image) Raster {
	mode := RGBA
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		mode = RGB
	}

	if n, ok := img.(*nImage.NRGBA); ok {
		return FromNRGBA(n, mode)
	}

	b := img.Bounds()
	n := nImage.NewNRGBA(nImage.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA))
		}
	}

	return FromNRGBA(n, mode)
}

func (r Raster) Width() int { return r.width }

func (r Raster) Height() int { return r.height }

func (r Raster) Mode() ChannelMode { return r.mode }

// Bounds returns the raster rectangle anchored at the origin.
func (r Raster) Bounds() nImage.Rectangle {
	return nImage.Rect(0, 0, r.width, r.height)
}

// Pix returns a copy of the interleaved samples.
func (r Raster) Pix() []uint8 {
	buf := make([]uint8, len(r.pix))
	copy(buf, r.pix)
	return buf
}

// At returns the pixel at (x, y). RGB pixels report full alpha.
func (r Raster) At(x, y int) color.NRGBA {
	ch := r.mode.Channels()
	i := (y*r.width + x) * ch
	c := color.NRGBA{R: r.pix[i], G: r.pix[i+1], B: r.pix[i+2], A: 0xff}
	if ch == 4 {
		c.A = r.pix[i+3]
	}
	return c
}

// Alpha returns the alpha samples in pixel order, nil for RGB.
func (r Raster) Alpha() []uint8 {
	if r.mode != RGBA {
		return nil
	}
	alpha := make([]uint8, r.width*r.height)
	for i := range alpha {
		alpha[i] = r.pix[i*4+3]
	}
	return alpha
}

// Image renders the raster as a fresh *image.NRGBA.
func (r Raster) Image() *nImage.NRGBA {
	img := nImage.NewNRGBA(r.Bounds())
	ch := r.mode.Channels()
	for i, j := 0, 0; i < len(r.pix); i, j = i+ch, j+4 {
		img.Pix[j] = r.pix[i]
		img.Pix[j+1] = r.pix[i+1]
		img.Pix[j+2] = r.pix[i+2]
		if ch == 4 {
			img.Pix[j+3] = r.pix[i+3]
		} else {
			img.Pix[j+3] = 0xff
		}
	}
	return img
}

// RGBImage renders the RGB triple only, with every alpha forced to 0xff.
func (r Raster) RGBImage() *nImage.RGBA {
	img := nImage.NewRGBA(r.Bounds())
	ch := r.mode.Channels()
	for i, j := 0, 0; i < len(r.pix); i, j = i+ch, j+4 {
		img.Pix[j] = r.pix[i]
		img.Pix[j+1] = r.pix[i+1]
		img.Pix[j+2] = r.pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// IsZero reports whether r is the zero Raster.
func (r Raster) IsZero() bool {
	return r.width == 0 && r.height == 0 && r.pix == nil
}
