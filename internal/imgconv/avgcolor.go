package imgconv

import (
	"github.com/AnyUserName/pixgrid/pixbuf"
	"github.com/AnyUserName/pixgrid/pixel"
)

// AvgColor computes the average RGB color over all pixels.
func AvgColor(img *pixbuf.Image[pixel.RGBA8]) ([3]uint8, error) {
	var rSum, gSum, bSum uint64
	err := pixbuf.ProcessPixelRows(img, func(rows *pixbuf.PixelAccessor[pixel.RGBA8]) error {
		for y := 0; y < rows.Height(); y++ {
			row, err := rows.Row(y)
			if err != nil {
				return err
			}
			for _, p := range row {
				rSum += uint64(p.R)
				gSum += uint64(p.G)
				bSum += uint64(p.B)
			}
		}
		return nil
	})
	if err != nil {
		return [3]uint8{}, err
	}

	count := uint64(img.Width()) * uint64(img.Height())
	return [3]uint8{
		uint8(rSum / count),
		uint8(gSum / count),
		uint8(bSum / count),
	}, nil
}
