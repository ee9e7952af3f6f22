package pixbuf

import (
	"fmt"

	"github.com/AnyUserName/pixgrid/pixel"
)

// PixelAccessor grants bounds-checked, per-row access to an image for
// the duration of a ProcessPixelRows callback. Row views obtained from
// it must not be retained after the callback returns.
type PixelAccessor[T pixel.Pixel[T]] struct {
	img      *Image[T]
	released bool
}

// Width returns the width of the underlying image.
func (a *PixelAccessor[T]) Width() int { return a.img.width }

// Height returns the height of the underlying image.
func (a *PixelAccessor[T]) Height() int { return a.img.height }

// Row returns a view of exactly Width pixels for row y.
// The view aliases image storage: writes through it mutate the image.
func (a *PixelAccessor[T]) Row(y int) ([]T, error) {
	if a.released {
		return nil, ErrAccessorReleased
	}
	if y < 0 || y >= a.img.height {
		return nil, fmt.Errorf("%w: row %d, height %d", ErrOutOfRange, y, a.img.height)
	}
	return a.img.row(y), nil
}

// ProcessPixelRows invokes op once with a scoped accessor over img.
// The accessor, and every row view obtained from it, is only valid
// until op returns. The image is exclusively held for the duration of
// the call; a concurrent session on the same image fails with ErrBusy.
func ProcessPixelRows[T pixel.Pixel[T]](img *Image[T], op func(rows *PixelAccessor[T]) error) error {
	if err := img.acquire(); err != nil {
		return err
	}
	defer img.release()

	acc := &PixelAccessor[T]{img: img}
	defer func() { acc.released = true }()
	return op(acc)
}

// ProcessPixelRows2 invokes op once with scoped accessors over two
// images, which may have different dimensions and pixel types. Both
// images are exclusively held for the duration of the call. Passing the
// same image twice fails with ErrBusy.
func ProcessPixelRows2[S pixel.Pixel[S], T pixel.Pixel[T]](src *Image[S], dst *Image[T], op func(src *PixelAccessor[S], dst *PixelAccessor[T]) error) error {
	if err := src.acquire(); err != nil {
		return err
	}
	defer src.release()
	if err := dst.acquire(); err != nil {
		return err
	}
	defer dst.release()

	srcAcc := &PixelAccessor[S]{img: src}
	dstAcc := &PixelAccessor[T]{img: dst}
	defer func() {
		srcAcc.released = true
		dstAcc.released = true
	}()
	return op(srcAcc, dstAcc)
}
