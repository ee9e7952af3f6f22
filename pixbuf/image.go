// Package pixbuf provides a generic, row-oriented pixel buffer with
// scoped row access, format-agnostic Vector4 processing, and bulk
// import/export of raw pixel data.
//
// Pixel storage may be split across multiple memory blocks, so the
// package never hands out a single flat slice over the whole image.
// All access goes through row views or explicit bulk copies.
package pixbuf

import (
	"fmt"
	"sync/atomic"

	"github.com/AnyUserName/pixgrid/pixel"
)

// groupTargetBytes caps the size of one storage block. Rows are never
// split across blocks; a block holds a whole number of rows.
const groupTargetBytes = 4 << 20

// Image owns a width×height grid of pixels of type T.
//
// The grid is stored in row-aligned groups rather than one contiguous
// allocation, so very large images do not require a single huge block.
// An Image is not safe for concurrent mutation: exactly one accessor
// session may be in flight at a time, enforced at session start.
type Image[T pixel.Pixel[T]] struct {
	width        int
	height       int
	rowsPerGroup int
	groups       [][]T

	busy atomic.Bool
}

// New allocates a zeroed width×height image.
func New[T pixel.Pixel[T]](width, height int) (*Image[T], error) {
	var zero T
	rowBytes := width * zero.ByteSize()
	rowsPerGroup := 1
	if rowBytes > 0 && rowBytes < groupTargetBytes {
		rowsPerGroup = groupTargetBytes / rowBytes
	}
	return newWithGroupRows[T](width, height, rowsPerGroup)
}

// newWithGroupRows allocates with an explicit group height. Tests use a
// small value to force discontiguous storage on tiny images.
func newWithGroupRows[T pixel.Pixel[T]](width, height, rowsPerGroup int) (*Image[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if rowsPerGroup < 1 {
		rowsPerGroup = 1
	}
	if rowsPerGroup > height {
		rowsPerGroup = height
	}

	numGroups := (height + rowsPerGroup - 1) / rowsPerGroup
	groups := make([][]T, numGroups)
	remaining := height
	for i := range groups {
		rows := rowsPerGroup
		if rows > remaining {
			rows = remaining
		}
		groups[i] = make([]T, rows*width)
		remaining -= rows
	}

	return &Image[T]{
		width:        width,
		height:       height,
		rowsPerGroup: rowsPerGroup,
		groups:       groups,
	}, nil
}

// Width returns the image width in pixels.
func (img *Image[T]) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image[T]) Height() int { return img.height }

// BytesPerPixel returns the encoded size of one pixel.
func (img *Image[T]) BytesPerPixel() int {
	var zero T
	return zero.ByteSize()
}

// row returns the backing slice for row y without bounds checking.
// The result has exactly width length and capacity.
func (img *Image[T]) row(y int) []T {
	g := img.groups[y/img.rowsPerGroup]
	off := (y % img.rowsPerGroup) * img.width
	return g[off : off+img.width : off+img.width]
}

// acquire claims the image's single accessor slot.
func (img *Image[T]) acquire() error {
	if !img.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (img *Image[T]) release() {
	img.busy.Store(false)
}
