package render

import (
	"errors"
	"image"
	"image/gif"
	"io"
)

// ErrNoFrames is returned when encoding an empty frame sequence.
var ErrNoFrames = errors.New("render: no frames to encode")

// EncodeGIF writes the frame sequence as an animated GIF at the given frame
// rate. The delay is derived from fps in GIF's 10ms units (20 fps = 5).
func EncodeGIF(w io.Writer, frames []*image.Paletted, fps int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	if fps < 1 {
		fps = 20
	}

	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}

	out := &gif.GIF{
		Image: frames,
		Delay: make([]int, len(frames)),
	}
	for i := range out.Delay {
		out.Delay[i] = delay
	}

	return gif.EncodeAll(w, out)
}
