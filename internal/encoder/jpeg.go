package encoder

import (
	"bytes"
	"image/jpeg"

	"github.com/AnyUserName/pixgrid/internal/imgconv"
	"github.com/AnyUserName/pixgrid/pixbuf"
	"github.com/AnyUserName/pixgrid/pixel"
)

// JPEGEncoder encodes to JPEG using Go's standard library.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpeg" }

func (e *JPEGEncoder) Encode(img *pixbuf.Image[pixel.RGBA8], quality int) ([]byte, error) {
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	nrgba, err := imgconv.ToNRGBA(img)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(256 * 1024)

	if err := jpeg.Encode(&buf, nrgba, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
