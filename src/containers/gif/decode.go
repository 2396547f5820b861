package gif

import (
	"errors"
	nImage "image"
	"image/color"
	nGif "image/gif"
	"io"

	"github.com/pixelling/pixelling/src/image"
	"golang.org/x/image/draw"
)

var ErrNotAnimated = errors.New("not an animated gif")

// Decode reads an animated GIF into full-canvas RGBA frames.
func Decode(r io.Reader, defaults image.AnimationDefaults) (image.FrameSequence, error) {
	g, err := nGif.DecodeAll(r)
	if err != nil {
		return image.FrameSequence{}, err
	}

	return FromGIF(g, defaults)
}

// FromGIF composites every frame of g onto the logical screen, honouring
// each frame's disposal, and collects the timing metadata. Delays are stored
// in centiseconds; a zero delay counts as missing and takes the default.
func FromGIF(g *nGif.GIF, defaults image.AnimationDefaults) (image.FrameSequence, error) {
	if len(g.Image) < 2 {
		return image.FrameSequence{}, ErrNotAnimated
	}

	md := image.Metadata{
		LoopCount:    defaults.LoopCount,
		Duration:     defaults.Duration,
		Transparency: transparentIndex(g.Image[0].Palette),
	}
	if g.LoopCount >= 0 {
		md.LoopCount = g.LoopCount
	}
	if len(g.Delay) > 0 && g.Delay[0] > 0 {
		md.Duration = g.Delay[0] * 10
	}
	if len(g.Disposal) > 0 {
		md.Disposal = image.DisposalMethod(g.Disposal[0])
	}

	screen := nImage.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() {
		screen = g.Image[0].Bounds()
		for _, frame := range g.Image[1:] {
			screen = screen.Union(frame.Bounds())
		}
		screen = nImage.Rect(0, 0, screen.Max.X, screen.Max.Y)
	}

	canvas := nImage.NewNRGBA(screen)
	frames := make([]image.Raster, 0, len(g.Image))
	durations := make([]int, 0, len(g.Image))

	for i, frame := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var previous *nImage.NRGBA
		if disposal == nGif.DisposalPrevious {
			previous = cloneNRGBA(canvas)
		}

		bounds := frame.Bounds()
		draw.Draw(canvas, bounds, frame, bounds.Min, draw.Over)
		frames = append(frames, image.FromNRGBA(canvas, image.RGBA))

		d := md.Duration
		if i < len(g.Delay) && g.Delay[i] > 0 {
			d = g.Delay[i] * 10
		}
		durations = append(durations, d)

		switch disposal {
		case nGif.DisposalBackground:
			draw.Draw(canvas, bounds, nImage.Transparent, nImage.Point{}, draw.Src)
		case nGif.DisposalPrevious:
			canvas = previous
		}
	}

	md.Durations = durations

	return image.FrameSequence{
		Frames:   frames,
		Metadata: md,
	}, nil
}

func transparentIndex(p color.Palette) int {
	for i, c := range p {
		if _, _, _, a := c.RGBA(); a == 0 {
			return i
		}
	}
	return image.NoTransparency
}

func cloneNRGBA(src *nImage.NRGBA) *nImage.NRGBA {
	dst := nImage.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// Test checks the GIF87a/GIF89a signature.
func Test(data []byte) bool {
	if len(data) < 6 {
		return false
	}

	// GIF Magic Numbers
	// https://www.garykessler.net/library/file_sigs.html
	return data[0] == 'G' &&
		data[1] == 'I' &&
		data[2] == 'F' &&
		data[3] == '8' &&
		(data[4] == '7' || data[4] == '9') &&
		data[5] == 'a'
}
