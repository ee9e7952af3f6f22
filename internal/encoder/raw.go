package encoder

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/AnyUserName/pixgrid/pixbuf"
	"github.com/AnyUserName/pixgrid/pixel"
)

// Raw container: 4-byte magic, big-endian uint32 width and height,
// then width*height*4 bytes of straight-alpha RGBA in row-major order.
const rawMagic = "PXGR"

const rawHeaderSize = 12

// RawEncoder dumps the pixel buffer as a headered raw RGBA blob. It is
// the bulk-export path: one contiguous allocation for the whole image,
// which trades memory for a format any tool can re-ingest.
type RawEncoder struct{}

func (e *RawEncoder) Format() string    { return "raw" }
func (e *RawEncoder) Extension() string { return "pxgr" }

func (e *RawEncoder) Encode(img *pixbuf.Image[pixel.RGBA8], _ int) ([]byte, error) {
	w, h := img.Width(), img.Height()
	out := make([]byte, rawHeaderSize+w*h*img.BytesPerPixel())

	copy(out, rawMagic)
	binary.BigEndian.PutUint32(out[4:], uint32(w))
	binary.BigEndian.PutUint32(out[8:], uint32(h))

	if err := img.CopyBytesTo(out[rawHeaderSize:]); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeRaw reconstructs a pixel buffer from a raw RGBA blob produced
// by RawEncoder.
func DecodeRaw(data []byte) (*pixbuf.Image[pixel.RGBA8], error) {
	if len(data) < rawHeaderSize || string(data[:4]) != rawMagic {
		return nil, errors.New("not a pixgrid raw blob")
	}
	w := int(binary.BigEndian.Uint32(data[4:]))
	h := int(binary.BigEndian.Uint32(data[8:]))

	img, err := pixbuf.LoadFromBytes[pixel.RGBA8](data[rawHeaderSize:], w, h)
	if err != nil {
		return nil, fmt.Errorf("raw pixel data: %w", err)
	}
	return img, nil
}
