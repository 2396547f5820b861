package gif

import (
	nImage "image"
	"image/color"
	nGif "image/gif"
	"io"

	"github.com/pixelling/pixelling/src/image"
	"github.com/pixelling/pixelling/src/job"
	"github.com/pixelling/pixelling/src/transform"
)

// alphaThreshold is the alpha below which a pixel is written as the
// transparent palette entry.
const alphaThreshold = 0x80

// Encode writes seq as an animated GIF. Each frame lasts max(1, ms); when the
// duration list does not match the frame count every frame uses the default
// duration. Disposal and transparency index are written when present.
func Encode(w io.Writer, seq image.FrameSequence) error {
	if len(seq.Frames) == 0 {
		return job.ContentError("cannot encode an empty frame sequence")
	}

	md := seq.Metadata
	durations := md.FrameDurations(len(seq.Frames))

	g := &nGif.GIF{
		Image:     make([]*nImage.Paletted, len(seq.Frames)),
		Delay:     make([]int, len(seq.Frames)),
		LoopCount: md.LoopCount,
	}
	if md.Disposal != image.DisposalUnspecified {
		g.Disposal = make([]byte, len(seq.Frames))
	}

	for i, frame := range seq.Frames {
		g.Image[i] = Paletted(frame, md.Transparency)
		g.Delay[i] = Centiseconds(durations[i])
		if g.Disposal != nil {
			g.Disposal[i] = byte(md.Disposal)
		}
	}

	return nGif.EncodeAll(w, g)
}

// EncodeStill writes a single frame GIF.
func EncodeStill(w io.Writer, r image.Raster) error {
	return nGif.Encode(w, Paletted(r, image.NoTransparency), nil)
}

// Centiseconds converts a duration in milliseconds to a GIF delay. The delay
// is never below one unit, since players treat 0 as "as fast as possible".
func Centiseconds(ms int) int {
	if ms < 1 {
		ms = 1
	}
	cs := (ms + 5) / 10
	if cs < 1 {
		cs = 1
	}
	return cs
}

// Paletted maps r onto a median-cut palette of at most 256 entries. When r
// has translucent pixels, or transparency names an index, one entry is
// reserved as fully transparent at that index.
func Paletted(r image.Raster, transparency int) *nImage.Paletted {
	alpha := r.Alpha()
	reserve := transparency != image.NoTransparency
	for _, a := range alpha {
		if a < alphaThreshold {
			reserve = true
			break
		}
	}

	n := transform.MaxColors
	if reserve {
		n--
	}

	rgb := r.RGBImage()
	p := transform.MedianCutPalette(rgb, n)
	if !reserve {
		return transform.Paletted(rgb, p, false)
	}

	idx := transparency
	if idx < 0 || idx >= transform.MaxColors {
		idx = len(p)
	}
	for len(p) < idx {
		p = append(p, color.RGBA{A: 0xff})
	}

	// map against the opaque entries only, then open a slot at idx
	pm := transform.Paletted(rgb, p, false)
	for i, v := range pm.Pix {
		if int(v) >= idx {
			pm.Pix[i] = v + 1
		}
	}
	for i, a := range alpha {
		if a < alphaThreshold {
			pm.Pix[i] = uint8(idx)
		}
	}
	pm.Palette = append(p[:idx:idx], append(color.Palette{color.RGBA{}}, p[idx:]...)...)

	return pm
}
