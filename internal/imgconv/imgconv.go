// Package imgconv bridges the standard library image types and the
// pixgrid pixel buffer.
//
// Decoding goes through per-type fast paths (NRGBA, RGBA, YCbCr, Gray)
// that read the backing slices directly; only unknown types fall back
// to the image.At interface, which costs a dispatch per pixel.
package imgconv

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/AnyUserName/pixgrid/pixbuf"
	"github.com/AnyUserName/pixgrid/pixel"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ─── YCbCr → RGB lookup tables ───────────────────────────────
// Pre-computed at init. 4 tables × 256 × 4 bytes = 4 KB.
// Avoids per-pixel floating-point in the JPEG hot path.
var (
	ycbcrCrR [256]int32 // R = Y + ycbcrCrR[Cr]
	ycbcrCbG [256]int32 // G = Y - ycbcrCbG[Cb] - ycbcrCrG[Cr]
	ycbcrCrG [256]int32
	ycbcrCbB [256]int32 // B = Y + ycbcrCbB[Cb]
)

func init() {
	for i := 0; i < 256; i++ {
		v := float64(i) - 128.0
		ycbcrCrR[i] = int32(math.Round(1.40200 * v))
		ycbcrCbG[i] = int32(math.Round(0.34414 * v))
		ycbcrCrG[i] = int32(math.Round(0.71414 * v))
		ycbcrCbB[i] = int32(math.Round(1.77200 * v))
	}
}

// DecodeFile reads and decodes an image file. All stdlib formats plus
// bmp, tiff, and webp are registered. Returns the decoded image and
// the format name.
func DecodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// FromImage copies any image.Image into an RGBA8 pixel buffer.
// Premultiplied sources are converted to straight alpha.
func FromImage(src image.Image) (*pixbuf.Image[pixel.RGBA8], error) {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	out, err := pixbuf.New[pixel.RGBA8](w, h)
	if err != nil {
		return nil, err
	}

	err = pixbuf.ProcessPixelRows(out, func(rows *pixbuf.PixelAccessor[pixel.RGBA8]) error {
		switch s := src.(type) {
		case *image.NRGBA:
			fillFromNRGBA(s, bounds, rows)
		case *image.RGBA:
			fillFromRGBA(s, bounds, rows)
		case *image.YCbCr:
			fillFromYCbCr(s, bounds, rows)
		case *image.Gray:
			fillFromGray(s, bounds, rows)
		default:
			fillGeneric(src, bounds, rows)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func fillFromNRGBA(src *image.NRGBA, bounds image.Rectangle, rows *pixbuf.PixelAccessor[pixel.RGBA8]) {
	w, h := bounds.Dx(), bounds.Dy()
	bY := bounds.Min.Y - src.Rect.Min.Y
	bX4 := (bounds.Min.X - src.Rect.Min.X) * 4

	for y := 0; y < h; y++ {
		row, _ := rows.Row(y)
		off := (bY+y)*src.Stride + bX4
		for x := 0; x < w; x++ {
			row[x] = pixel.RGBA8{
				R: src.Pix[off],
				G: src.Pix[off+1],
				B: src.Pix[off+2],
				A: src.Pix[off+3],
			}
			off += 4
		}
	}
}

// fillFromRGBA un-premultiplies with integer math: c*255/a, rounded.
func fillFromRGBA(src *image.RGBA, bounds image.Rectangle, rows *pixbuf.PixelAccessor[pixel.RGBA8]) {
	w, h := bounds.Dx(), bounds.Dy()
	bY := bounds.Min.Y - src.Rect.Min.Y
	bX4 := (bounds.Min.X - src.Rect.Min.X) * 4

	for y := 0; y < h; y++ {
		row, _ := rows.Row(y)
		off := (bY+y)*src.Stride + bX4
		for x := 0; x < w; x++ {
			a := uint32(src.Pix[off+3])
			var p pixel.RGBA8
			if a > 0 {
				p.R = uint8((uint32(src.Pix[off])*255 + a/2) / a)
				p.G = uint8((uint32(src.Pix[off+1])*255 + a/2) / a)
				p.B = uint8((uint32(src.Pix[off+2])*255 + a/2) / a)
			}
			p.A = uint8(a)
			row[x] = p
			off += 4
		}
	}
}

func fillFromYCbCr(src *image.YCbCr, bounds image.Rectangle, rows *pixbuf.PixelAccessor[pixel.RGBA8]) {
	w, h := bounds.Dx(), bounds.Dy()
	minX, minY := bounds.Min.X, bounds.Min.Y
	ryBase := minY - src.Rect.Min.Y
	rxBase := minX - src.Rect.Min.X

	for y := 0; y < h; y++ {
		row, _ := rows.Row(y)
		yOff := (ryBase+y)*src.YStride + rxBase
		for x := 0; x < w; x++ {
			yv := int32(src.Y[yOff+x])
			ci := src.COffset(minX+x, minY+y)
			cr, cb := src.Cr[ci], src.Cb[ci]
			row[x] = pixel.RGBA8{
				R: uint8(clampByte(yv + ycbcrCrR[cr])),
				G: uint8(clampByte(yv - ycbcrCbG[cb] - ycbcrCrG[cr])),
				B: uint8(clampByte(yv + ycbcrCbB[cb])),
				A: 255,
			}
		}
	}
}

func fillFromGray(src *image.Gray, bounds image.Rectangle, rows *pixbuf.PixelAccessor[pixel.RGBA8]) {
	w, h := bounds.Dx(), bounds.Dy()
	bY := bounds.Min.Y - src.Rect.Min.Y
	bX := bounds.Min.X - src.Rect.Min.X

	for y := 0; y < h; y++ {
		row, _ := rows.Row(y)
		off := (bY+y)*src.Stride + bX
		for x := 0; x < w; x++ {
			v := src.Pix[off]
			row[x] = pixel.RGBA8{R: v, G: v, B: v, A: 255}
			off++
		}
	}
}

func fillGeneric(src image.Image, bounds image.Rectangle, rows *pixbuf.PixelAccessor[pixel.RGBA8]) {
	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		row, _ := rows.Row(y)
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			row[x] = pixel.RGBA8{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
}

// ToNRGBA copies an RGBA8 pixel buffer into a stdlib NRGBA image for
// encoding.
func ToNRGBA(src *pixbuf.Image[pixel.RGBA8]) (*image.NRGBA, error) {
	out := image.NewNRGBA(image.Rect(0, 0, src.Width(), src.Height()))

	err := pixbuf.ProcessPixelRows(src, func(rows *pixbuf.PixelAccessor[pixel.RGBA8]) error {
		for y := 0; y < rows.Height(); y++ {
			row, err := rows.Row(y)
			if err != nil {
				return err
			}
			off := y * out.Stride
			for _, p := range row {
				out.Pix[off] = p.R
				out.Pix[off+1] = p.G
				out.Pix[off+2] = p.B
				out.Pix[off+3] = p.A
				off += 4
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HasAlpha reports whether any pixel is not fully opaque.
func HasAlpha(img *pixbuf.Image[pixel.RGBA8]) (bool, error) {
	found := false
	err := pixbuf.ProcessPixelRows(img, func(rows *pixbuf.PixelAccessor[pixel.RGBA8]) error {
		for y := 0; y < rows.Height(); y++ {
			row, err := rows.Row(y)
			if err != nil {
				return err
			}
			for _, p := range row {
				if p.A < 255 {
					found = true
					return nil
				}
			}
		}
		return nil
	})
	return found, err
}

// clampByte clamps an int32 to [0, 255].
func clampByte(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
