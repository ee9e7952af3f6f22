package encoder

import (
	"github.com/AnyUserName/pixgrid/pixbuf"
	"github.com/AnyUserName/pixgrid/pixel"
)

// Encoder serializes a pixel buffer to a specific output format.
type Encoder interface {
	// Format returns the output format name (e.g. "png", "jpeg", "raw").
	Format() string

	// Encode converts the buffer to bytes at the given quality (1-100).
	// Formats without a quality knob ignore it.
	Encode(img *pixbuf.Image[pixel.RGBA8], quality int) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}
