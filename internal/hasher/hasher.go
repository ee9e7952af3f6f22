// Package hasher computes content fingerprints for encoded outputs and
// raw pixel data.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/AnyUserName/pixgrid/pixbuf"
	"github.com/AnyUserName/pixgrid/pixel"
)

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to hexLen characters. 16 hex chars (the full 64 bits) is
// collision-safe for practical asset counts.
func ContentHash(data []byte, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}

// ContentHashReader computes the fingerprint of a stream.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], h.Sum64())
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen], nil
	}
	return full, nil
}

// PixelHash fingerprints the decoded pixel data of an image, so two
// files with identical pixels hash the same regardless of container
// format or compression settings.
func PixelHash(img *pixbuf.Image[pixel.RGBA8], hexLen int) (string, error) {
	buf := make([]byte, img.Width()*img.Height()*img.BytesPerPixel())
	if err := img.CopyBytesTo(buf); err != nil {
		return "", err
	}
	return ContentHash(buf, hexLen), nil
}
