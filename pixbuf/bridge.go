package pixbuf

import (
	"fmt"

	"github.com/AnyUserName/pixgrid/pixel"
)

// CopyPixelsTo copies all pixels into dst in row-major order.
// dst must hold at least Width*Height elements.
//
// The copy materializes the whole image contiguously, which costs more
// memory than row-wise streaming for large images; callers that can
// work row by row should prefer ProcessPixelRows.
func (img *Image[T]) CopyPixelsTo(dst []T) error {
	need := img.width * img.height
	if len(dst) < need {
		return fmt.Errorf("%w: need %d pixels, have %d", ErrSizeMismatch, need, len(dst))
	}
	off := 0
	for y := 0; y < img.height; y++ {
		off += copy(dst[off:], img.row(y))
	}
	return nil
}

// CopyBytesTo encodes all pixels into dst in row-major order.
// dst must hold at least Width*Height*BytesPerPixel bytes.
func (img *Image[T]) CopyBytesTo(dst []byte) error {
	bpp := img.BytesPerPixel()
	need := img.width * img.height * bpp
	if len(dst) < need {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrSizeMismatch, need, len(dst))
	}
	off := 0
	for y := 0; y < img.height; y++ {
		for _, p := range img.row(y) {
			p.PutBytes(dst[off:])
			off += bpp
		}
	}
	return nil
}

// LoadFromPixels constructs a new width×height image from a row-major
// pixel slice. src must hold at least width*height elements; the image
// does not alias src.
func LoadFromPixels[T pixel.Pixel[T]](src []T, width, height int) (*Image[T], error) {
	if width > 0 && height > 0 {
		if need := width * height; len(src) < need {
			return nil, fmt.Errorf("%w: need %d pixels, have %d", ErrSizeMismatch, need, len(src))
		}
	}
	img, err := New[T](width, height)
	if err != nil {
		return nil, err
	}
	off := 0
	for y := 0; y < height; y++ {
		copy(img.row(y), src[off:off+width])
		off += width
	}
	return img, nil
}

// LoadFromBytes constructs a new width×height image from row-major
// encoded pixel bytes. src must hold at least width*height*ByteSize
// bytes.
func LoadFromBytes[T pixel.Pixel[T]](src []byte, width, height int) (*Image[T], error) {
	var zero T
	bpp := zero.ByteSize()
	if width > 0 && height > 0 {
		if need := width * height * bpp; len(src) < need {
			return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrSizeMismatch, need, len(src))
		}
	}
	img, err := New[T](width, height)
	if err != nil {
		return nil, err
	}
	off := 0
	for y := 0; y < height; y++ {
		row := img.row(y)
		for x := range row {
			row[x] = zero.ReadBytes(src[off:])
			off += bpp
		}
	}
	return img, nil
}
