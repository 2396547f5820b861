package job

import (
	"time"

	"github.com/google/uuid"
)

type Mode string

const (
	PixelMode Mode = "pixel"
	GridMode  Mode = "grid"
)

type Pixel struct {
	BlockSize int `json:"block_size"`
}

type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Request is a tagged union: Mode selects which of Pixel or Grid is set.
// ColorCount is nil when no palette reduction was asked for.
type Request struct {
	Mode       Mode   `json:"mode"`
	Pixel      *Pixel `json:"pixel,omitempty"`
	Grid       *Grid  `json:"grid,omitempty"`
	ColorCount *int   `json:"color_count,omitempty"`
	Dither     bool   `json:"dither,omitempty"`
}

func NewPixelRequest(blockSize int) Request {
	return Request{
		Mode:  PixelMode,
		Pixel: &Pixel{BlockSize: blockSize},
	}
}

func NewGridRequest(width, height int) Request {
	return Request{
		Mode: GridMode,
		Grid: &Grid{Width: width, Height: height},
	}
}

// WithColorCount returns a copy of r that reduces the palette to n colors.
func (r Request) WithColorCount(n int) Request {
	r.ColorCount = &n
	return r
}

// WithDither returns a copy of r with Floyd-Steinberg dithering switched on.
func (r Request) WithDither(dither bool) Request {
	r.Dither = dither
	return r
}

type Destination struct {
	Path      string `json:"path"`
	Overwrite bool   `json:"overwrite"`
}

type Job struct {
	ID string `json:"id"`

	Input       string      `json:"input"`
	Request     Request     `json:"request"`
	Destination Destination `json:"destination"`
}

func New(input string, req Request, dest Destination) Job {
	id, _ := uuid.NewRandom()
	return Job{
		ID:          id.String(),
		Input:       input,
		Request:     req,
		Destination: dest,
	}
}

// File describes the written output.
type File struct {
	Name        string        `json:"name"`
	Size        int           `json:"size"`
	ContentType string        `json:"content_type"`
	Animated    bool          `json:"animated"`
	Frames      int           `json:"frames"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	TimeTaken   time.Duration `json:"time_taken"`
}
