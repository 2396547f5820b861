package image

// DisposalMethod tells a player how to treat a frame before drawing the next.
// The values match the GIF graphic control extension.
type DisposalMethod uint8

const (
	DisposalUnspecified DisposalMethod = 0
	DisposalNone        DisposalMethod = 1
	DisposalBackground  DisposalMethod = 2
	DisposalPrevious    DisposalMethod = 3
)

// NoTransparency marks a sequence without a transparent palette index.
const NoTransparency = -1

// AnimationDefaults are used when a container carries no timing of its own.
type AnimationDefaults struct {
	LoopCount int
	Duration  int
}

// Metadata is carried unchanged from decode to encode.
type Metadata struct {
	// LoopCount is the number of replays, 0 loops forever.
	LoopCount int
	// Duration is the default frame duration in milliseconds.
	Duration int
	// Durations holds one entry per frame when present.
	Durations []int
	Disposal  DisposalMethod
	// Transparency is a palette index or NoTransparency.
	Transparency int
}

// FrameDurations returns one duration per frame for a sequence of n frames.
// A list whose length disagrees with n is ignored as a whole and the default
// duration is used for every frame.
func (m Metadata) FrameDurations(n int) []int {
	out := make([]int, n)
	if len(m.Durations) == n {
		copy(out, m.Durations)
		return out
	}
	for i := range out {
		out[i] = m.Duration
	}
	return out
}

// FrameSequence is an ordered list of frames in playback order.
type FrameSequence struct {
	Frames   []Raster
	Metadata Metadata
}

func (s FrameSequence) Len() int {
	return len(s.Frames)
}
