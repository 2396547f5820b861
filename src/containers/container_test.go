package containers

import (
	"errors"
	"image/color"
	"io"
	"testing"

	"github.com/pixelling/pixelling/src/image"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = image.AnimationDefaults{LoopCount: 0, Duration: 100}

func newFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/out", 0755))
	return fs
}

func gradient(mode image.ChannelMode) image.Raster {
	pix := make([]uint8, 0, 4*3*mode.Channels())
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			pix = append(pix, uint8(x*60), uint8(y*100), 30)
			if mode == image.RGBA {
				pix = append(pix, uint8(85*(x%4)))
			}
		}
	}
	r, _ := image.NewRaster(4, 3, mode, pix)
	return r
}

func TestToType(t *testing.T) {
	fs := newFs(t)
	cases := map[string]image.ImageType{
		"/out/a.png":  image.PNG,
		"/out/a.jpg":  image.JPEG,
		"/out/a.gif":  image.GIF,
		"/out/a.bmp":  image.BMP,
		"/out/a.tiff": image.TIFF,
	}

	for path, want := range cases {
		require.NoError(t, Save(fs, gradient(image.RGB), path), path)

		data, err := afero.ReadFile(fs, path)
		require.NoError(t, err)

		got, err := ToType(data)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	webp := []byte("RIFF\x10\x00\x00\x00WEBPVP8 ")
	got, err := ToType(webp)
	require.NoError(t, err)
	assert.Equal(t, image.WEBP, got)

	_, err = ToType([]byte("plain text, not an image"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestTypeFromPath(t *testing.T) {
	for path, want := range map[string]image.ImageType{
		"x.PNG":      image.PNG,
		"x.jpeg":     image.JPEG,
		"dir/x.Jpg":  image.JPEG,
		"x.tif":      image.TIFF,
		"x.bmp":      image.BMP,
		"a.b.c.gif":  image.GIF,
	} {
		got, err := TypeFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	for _, path := range []string{"x.webp", "x", "x.txt"} {
		_, err := TypeFromPath(path)
		assert.ErrorIs(t, err, ErrUnknownFormat, path)
	}
}

func TestPNGKeepsAlpha(t *testing.T) {
	fs := newFs(t)
	src := gradient(image.RGBA)

	require.NoError(t, Save(fs, src, "/out/alpha.png"))
	data, err := afero.ReadFile(fs, "/out/alpha.png")
	require.NoError(t, err)

	seq, animated, err := Decode(data, defaults)
	require.NoError(t, err)
	assert.False(t, animated)
	require.Equal(t, 1, seq.Len())

	out := seq.Frames[0]
	assert.Equal(t, image.RGBA, out.Mode())
	assert.Equal(t, src.Pix(), out.Pix())
}

func TestOpaqueFormatsDecodeAsRGB(t *testing.T) {
	fs := newFs(t)
	for _, path := range []string{"/out/rgb.png", "/out/rgb.jpg", "/out/rgb.bmp", "/out/rgb.tif"} {
		require.NoError(t, Save(fs, gradient(image.RGB), path))
		data, err := afero.ReadFile(fs, path)
		require.NoError(t, err)

		seq, _, err := Decode(data, defaults)
		require.NoError(t, err, path)

		out := seq.Frames[0]
		assert.Equal(t, image.RGB, out.Mode(), path)
		assert.Equal(t, 4, out.Width(), path)
		assert.Equal(t, 3, out.Height(), path)
	}
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	fs := newFs(t)

	err := Save(fs, gradient(image.RGB), "/out/result.xyz")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAnimatedRoundTrip(t *testing.T) {
	fs := newFs(t)
	seq := image.FrameSequence{
		Frames: []image.Raster{
			image.NewUniform(5, 5, image.RGB, color.NRGBA{R: 200, A: 255}),
			image.NewUniform(5, 5, image.RGB, color.NRGBA{B: 200, A: 255}),
		},
		Metadata: image.Metadata{LoopCount: 4, Duration: 60, Transparency: image.NoTransparency},
	}

	err := SaveAnimated(fs, seq, "/out/anim.png")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	require.NoError(t, SaveAnimated(fs, seq, "/out/anim.gif"))
	data, err := afero.ReadFile(fs, "/out/anim.gif")
	require.NoError(t, err)

	out, animated, err := Decode(data, defaults)
	require.NoError(t, err)
	assert.True(t, animated)
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, 4, out.Metadata.LoopCount)
	assert.Equal(t, []int{60, 60}, out.Metadata.Durations)
}

func TestStillGIFIsNotAnimated(t *testing.T) {
	fs := newFs(t)
	require.NoError(t, Save(fs, gradient(image.RGB), "/out/still.gif"))
	data, err := afero.ReadFile(fs, "/out/still.gif")
	require.NoError(t, err)

	seq, animated, err := Decode(data, image.AnimationDefaults{LoopCount: 1, Duration: 70})
	require.NoError(t, err)
	assert.False(t, animated)
	assert.Equal(t, 1, seq.Len())
	assert.Equal(t, 70, seq.Metadata.Duration)
	assert.Equal(t, image.NoTransparency, seq.Metadata.Transparency)
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	fs := newFs(t)
	for _, path := range []string{"/out/tail.png", "/out/tail.jpg", "/out/tail.gif"} {
		require.NoError(t, Save(fs, gradient(image.RGB), path))
		data, err := afero.ReadFile(fs, path)
		require.NoError(t, err)

		data = append(data, []byte("\x00appended by an uploader")...)

		_, err = ToType(data)
		require.NoError(t, err, path)

		seq, _, err := Decode(data, defaults)
		require.NoError(t, err, path)
		assert.Equal(t, 4, seq.Frames[0].Width(), path)
	}
}

func TestWriteAtomicLeavesNothingOnFailure(t *testing.T) {
	fs := newFs(t)
	boom := errors.New("boom")

	err := writeAtomic(fs, "/out/result.png", func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteAtomicReplacesExisting(t *testing.T) {
	fs := newFs(t)
	require.NoError(t, afero.WriteFile(fs, "/out/result.png", []byte("old"), 0644))

	require.NoError(t, writeAtomic(fs, "/out/result.png", func(w io.Writer) error {
		_, err := w.Write([]byte("new"))
		return err
	}))

	data, err := afero.ReadFile(fs, "/out/result.png")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
