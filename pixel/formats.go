package pixel

import "encoding/binary"

// Multi-byte encodings use big-endian component order, matching the
// byte layout of the standard library's 16-bit image types.

// RGBA8 is 8-bit-per-component RGBA, non-premultiplied. 4 bytes.
type RGBA8 struct {
	R, G, B, A uint8
}

func (RGBA8) ByteSize() int { return 4 }

func (p RGBA8) ToVector4() Vector4 {
	return Vector4{
		X: float32(p.R) / 255,
		Y: float32(p.G) / 255,
		Z: float32(p.B) / 255,
		W: float32(p.A) / 255,
	}
}

func (RGBA8) FromVector4(v Vector4) RGBA8 {
	return RGBA8{R: u8(v.X), G: u8(v.Y), B: u8(v.Z), A: u8(v.W)}
}

func (p RGBA8) PutBytes(dst []byte) {
	_ = dst[3]
	dst[0] = p.R
	dst[1] = p.G
	dst[2] = p.B
	dst[3] = p.A
}

func (RGBA8) ReadBytes(src []byte) RGBA8 {
	_ = src[3]
	return RGBA8{R: src[0], G: src[1], B: src[2], A: src[3]}
}

// RGB24 is 8-bit-per-component RGB without alpha. 3 bytes.
// Alpha decodes as 1 and is discarded on encode.
type RGB24 struct {
	R, G, B uint8
}

func (RGB24) ByteSize() int { return 3 }

func (p RGB24) ToVector4() Vector4 {
	return Vector4{
		X: float32(p.R) / 255,
		Y: float32(p.G) / 255,
		Z: float32(p.B) / 255,
		W: 1,
	}
}

func (RGB24) FromVector4(v Vector4) RGB24 {
	return RGB24{R: u8(v.X), G: u8(v.Y), B: u8(v.Z)}
}

func (p RGB24) PutBytes(dst []byte) {
	_ = dst[2]
	dst[0] = p.R
	dst[1] = p.G
	dst[2] = p.B
}

func (RGB24) ReadBytes(src []byte) RGB24 {
	_ = src[2]
	return RGB24{R: src[0], G: src[1], B: src[2]}
}

// Gray8 is 8-bit luminance. 1 byte.
type Gray8 struct {
	Y uint8
}

func (Gray8) ByteSize() int { return 1 }

func (p Gray8) ToVector4() Vector4 {
	v := float32(p.Y) / 255
	return Vector4{X: v, Y: v, Z: v, W: 1}
}

// FromVector4 uses the BT.601 luma weights, the same coefficients the
// standard library's color.GrayModel rounds to.
func (Gray8) FromVector4(v Vector4) Gray8 {
	return Gray8{Y: u8(0.299*v.X + 0.587*v.Y + 0.114*v.Z)}
}

func (p Gray8) PutBytes(dst []byte) {
	dst[0] = p.Y
}

func (Gray8) ReadBytes(src []byte) Gray8 {
	return Gray8{Y: src[0]}
}

// Gray16 is 16-bit luminance, big-endian. 2 bytes.
type Gray16 struct {
	Y uint16
}

func (Gray16) ByteSize() int { return 2 }

func (p Gray16) ToVector4() Vector4 {
	v := float32(p.Y) / 65535
	return Vector4{X: v, Y: v, Z: v, W: 1}
}

func (Gray16) FromVector4(v Vector4) Gray16 {
	return Gray16{Y: u16(0.299*v.X + 0.587*v.Y + 0.114*v.Z)}
}

func (p Gray16) PutBytes(dst []byte) {
	binary.BigEndian.PutUint16(dst, p.Y)
}

func (Gray16) ReadBytes(src []byte) Gray16 {
	return Gray16{Y: binary.BigEndian.Uint16(src)}
}

// RGBA64 is 16-bit-per-component RGBA, big-endian. 8 bytes.
type RGBA64 struct {
	R, G, B, A uint16
}

func (RGBA64) ByteSize() int { return 8 }

func (p RGBA64) ToVector4() Vector4 {
	return Vector4{
		X: float32(p.R) / 65535,
		Y: float32(p.G) / 65535,
		Z: float32(p.B) / 65535,
		W: float32(p.A) / 65535,
	}
}

func (RGBA64) FromVector4(v Vector4) RGBA64 {
	return RGBA64{R: u16(v.X), G: u16(v.Y), B: u16(v.Z), A: u16(v.W)}
}

func (p RGBA64) PutBytes(dst []byte) {
	_ = dst[7]
	binary.BigEndian.PutUint16(dst[0:], p.R)
	binary.BigEndian.PutUint16(dst[2:], p.G)
	binary.BigEndian.PutUint16(dst[4:], p.B)
	binary.BigEndian.PutUint16(dst[6:], p.A)
}

func (RGBA64) ReadBytes(src []byte) RGBA64 {
	_ = src[7]
	return RGBA64{
		R: binary.BigEndian.Uint16(src[0:]),
		G: binary.BigEndian.Uint16(src[2:]),
		B: binary.BigEndian.Uint16(src[4:]),
		A: binary.BigEndian.Uint16(src[6:]),
	}
}
