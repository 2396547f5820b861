package containers

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	nGif "image/gif"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pixelling/pixelling/src/containers/bmp"
	"github.com/pixelling/pixelling/src/containers/gif"
	"github.com/pixelling/pixelling/src/containers/jpeg"
	"github.com/pixelling/pixelling/src/containers/png"
	"github.com/pixelling/pixelling/src/containers/tiff"
	"github.com/pixelling/pixelling/src/containers/webp"
	"github.com/pixelling/pixelling/src/image"
	"github.com/spf13/afero"
)

var ErrUnknownFormat = fmt.Errorf("unknown image format")

func ToType(data []byte) (image.ImageType, error) {
	if gif.Test(data) {
		return image.GIF, nil
	} else if jpeg.Test(data) {
		return image.JPEG, nil
	} else if png.Test(data) {
		return image.PNG, nil
	} else if tiff.Test(data) {
		return image.TIFF, nil
	} else if webp.Test(data) {
		return image.WEBP, nil
	} else if bmp.Test(data) { // two byte magic, test last
		return image.BMP, nil
	}

	return "", ErrUnknownFormat
}

// TypeFromPath maps an output file extension onto an ImageType.
func TypeFromPath(path string) (image.ImageType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return image.PNG, nil
	case ".jpg", ".jpeg":
		return image.JPEG, nil
	case ".gif":
		return image.GIF, nil
	case ".bmp":
		return image.BMP, nil
	case ".tif", ".tiff":
		return image.TIFF, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Decode reads data into a frame sequence. Still images produce a single
// frame; animated reports whether data held more than one frame.
func Decode(data []byte, defaults image.AnimationDefaults) (seq image.FrameSequence, animated bool, err error) {
	imgType, err := ToType(data)
	if err != nil {
		return image.FrameSequence{}, false, err
	}

	var still image.Raster

	switch imgType {
	case image.GIF:
		g, err := nGif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return image.FrameSequence{}, false, fmt.Errorf("gif decode failed: %w", err)
		}
		if len(g.Image) > 1 {
			seq, err = gif.FromGIF(g, defaults)
			return seq, err == nil, err
		}

		still = image.FromImage(g.Image[0])
	default:
		still, err = decodeStill(imgType, bytes.NewReader(data))
		if err != nil {
			return image.FrameSequence{}, false, fmt.Errorf("%s decode failed: %w", imgType, err)
		}
	}

	return image.FrameSequence{
		Frames: []image.Raster{still},
		Metadata: image.Metadata{
			LoopCount:    defaults.LoopCount,
			Duration:     defaults.Duration,
			Transparency: image.NoTransparency,
		},
	}, false, nil
}

func decodeStill(imgType image.ImageType, r io.Reader) (image.Raster, error) {
	switch imgType {
	case image.JPEG:
		return jpeg.Decode(r)
	case image.PNG:
		return png.Decode(r)
	case image.TIFF:
		return tiff.Decode(r)
	case image.WEBP:
		return webp.Decode(r)
	case image.BMP:
		return bmp.Decode(r)
	}

	return image.Raster{}, ErrUnknownFormat
}

// Save encodes r in the format named by the extension of path.
func Save(fs afero.Fs, r image.Raster, path string) error {
	imgType, err := TypeFromPath(path)
	if err != nil {
		return err
	}

	var encode func(io.Writer) error

	switch imgType {
	case image.PNG:
		encode = func(w io.Writer) error { return png.Encode(w, r) }
	case image.JPEG:
		encode = func(w io.Writer) error { return jpeg.Encode(w, r) }
	case image.GIF:
		encode = func(w io.Writer) error { return gif.EncodeStill(w, r) }
	case image.BMP:
		encode = func(w io.Writer) error { return bmp.Encode(w, r) }
	case image.TIFF:
		encode = func(w io.Writer) error { return tiff.Encode(w, r) }
	default:
		return ErrUnknownFormat
	}

	return writeAtomic(fs, path, encode)
}

// SaveAnimated encodes seq as an animated GIF. GIF is the only animated
// output format.
func SaveAnimated(fs afero.Fs, seq image.FrameSequence, path string) error {
	imgType, err := TypeFromPath(path)
	if err != nil {
		return err
	}
	if imgType != image.GIF {
		return fmt.Errorf("%w: animated output must be .gif, got %q", ErrUnknownFormat, filepath.Ext(path))
	}

	return writeAtomic(fs, path, func(w io.Writer) error {
		return gif.Encode(w, seq)
	})
}

// writeAtomic encodes into a temporary sibling of dst and renames it into
// place once encoding succeeded, so a failed run never leaves a partial file.
func writeAtomic(fs afero.Fs, dst string, encode func(io.Writer) error) (err error) {
	id, _ := uuid.NewRandom()
	tmp := filepath.Join(filepath.Dir(dst), fmt.Sprintf(".%s.%s.tmp", filepath.Base(dst), id))

	f, err := fs.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	defer func() {
		if err == nil {
			return
		}
		if rmErr := fs.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
			err = multierror.Append(err, rmErr)
		}
	}()

	w := bufio.NewWriter(f)
	if err = encode(w); err != nil {
		_ = f.Close()
		return err
	}
	if err = w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return fs.Rename(tmp, dst)
}
