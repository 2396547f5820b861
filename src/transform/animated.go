package transform

import (
	"fmt"
	"sync"

	"github.com/pixelling/pixelling/src/image"
	"github.com/pixelling/pixelling/src/job"
)

type frameFunc func(image.Raster) (image.Raster, error)

// TransformSequence applies Transform to every frame in order. Frames share
// no state, so palettes may differ from frame to frame.
func TransformSequence(frames []image.Raster, req job.Request) ([]image.Raster, error) {
	return eachFrame(frames, 1, requestFunc(req))
}

// TransformSequenceParallel is TransformSequence spread over workers
// goroutines. The result is in input order.
func TransformSequenceParallel(frames []image.Raster, req job.Request, workers int) ([]image.Raster, error) {
	return eachFrame(frames, workers, requestFunc(req))
}

// TransformFrames transforms seq and carries its metadata through untouched.
func TransformFrames(seq image.FrameSequence, req job.Request, workers int) (image.FrameSequence, error) {
	frames, err := TransformSequenceParallel(seq.Frames, req, workers)
	if err != nil {
		return image.FrameSequence{}, err
	}

	md := seq.Metadata
	if md.Durations != nil {
		md.Durations = append([]int(nil), md.Durations...)
	}

	return image.FrameSequence{
		Frames:   frames,
		Metadata: md,
	}, nil
}

func requestFunc(req job.Request) frameFunc {
	return func(r image.Raster) (image.Raster, error) {
		return Transform(r, req)
	}
}

func eachFrame(frames []image.Raster, workers int, fn frameFunc) ([]image.Raster, error) {
	if len(frames) == 0 {
		return nil, job.ContentError("frame sequence is empty")
	}

	out := make([]image.Raster, len(frames))

	if workers <= 1 || len(frames) == 1 {
		for i, f := range frames {
			r, err := fn(f)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
			out[i] = r
		}
		return out, nil
	}

	if workers > len(frames) {
		workers = len(frames)
	}

	errs := make([]error, len(frames))
	idx := make(chan int)
	wg := sync.WaitGroup{}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				out[i], errs[i] = fn(frames[i])
			}
		}()
	}

	for i := range frames {
		idx <- i
	}
	close(idx)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
	}

	return out, nil
}
