package encoder

import (
	"bytes"
	"image/png"

	"github.com/AnyUserName/pixgrid/internal/imgconv"
	"github.com/AnyUserName/pixgrid/pixbuf"
	"github.com/AnyUserName/pixgrid/pixel"
)

// PNGEncoder encodes to PNG using Go's standard library. Lossless, and
// the default for images with alpha.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }

func (e *PNGEncoder) Encode(img *pixbuf.Image[pixel.RGBA8], _ int) ([]byte, error) {
	nrgba, err := imgconv.ToNRGBA(img)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(512 * 1024)

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, nrgba); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
