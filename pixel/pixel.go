// Package pixel defines pixel encodings and their canonical float form.
//
// Every encoding converts to and from Vector4, a 4-component float32
// value with components normalized to [0, 1]. Processing code written
// against Vector4 runs unmodified over any encoding that satisfies the
// Pixel constraint.
package pixel

// Vector4 is the canonical pixel value: R, G, B, A in [0, 1].
type Vector4 struct {
	X, Y, Z, W float32
}

// Clamped returns v with every component clamped to [0, 1].
func (v Vector4) Clamped() Vector4 {
	return Vector4{
		X: clamp01(v.X),
		Y: clamp01(v.Y),
		Z: clamp01(v.Z),
		W: clamp01(v.W),
	}
}

// Pixel is the constraint every pixel encoding satisfies.
//
// The type parameter is the implementing type itself, so FromVector4
// and ReadBytes can return a concrete value instead of an interface.
type Pixel[T any] interface {
	// ByteSize returns the encoded size of one pixel in bytes.
	ByteSize() int

	// ToVector4 converts the pixel to its canonical form.
	ToVector4() Vector4

	// FromVector4 encodes a canonical value. Components outside [0, 1]
	// are clamped.
	FromVector4(v Vector4) T

	// PutBytes writes the pixel's byte encoding into dst.
	// dst must be at least ByteSize bytes long.
	PutBytes(dst []byte)

	// ReadBytes decodes a pixel from src.
	// src must be at least ByteSize bytes long.
	ReadBytes(src []byte) T
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// u8 quantizes a [0, 1] float to a byte with round-half-up.
func u8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

// u16 quantizes a [0, 1] float to uint16 with round-half-up.
func u16(v float32) uint16 {
	return uint16(clamp01(v)*65535 + 0.5)
}
