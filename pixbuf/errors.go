package pixbuf

import "errors"

// Contract-violation errors. All are synchronous and surfaced directly
// to the caller of the offending operation; none are retried.
var (
	// ErrOutOfRange reports a row index outside [0, height).
	ErrOutOfRange = errors.New("pixbuf: row index out of range")

	// ErrSizeMismatch reports a buffer too small for the claimed dimensions.
	ErrSizeMismatch = errors.New("pixbuf: buffer size mismatch")

	// ErrInvalidDimensions reports a non-positive width or height.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrAccessorReleased reports use of a pixel accessor after its
	// enclosing callback returned.
	ErrAccessorReleased = errors.New("pixbuf: accessor used after release")

	// ErrBusy reports an attempt to start a second accessor session on an
	// image that already has one in flight.
	ErrBusy = errors.New("pixbuf: image already has an accessor session in flight")
)
