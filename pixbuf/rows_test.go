package pixbuf

import (
	"errors"
	"testing"

	"github.com/AnyUserName/pixgrid/pixel"
)

// testImage builds a deterministic w×h RGBA8 image stored in small
// groups so the discontiguous path is always exercised.
func testImage(t *testing.T, w, h int) *Image[pixel.RGBA8] {
	t.Helper()
	img, err := newWithGroupRows[pixel.RGBA8](w, h, 3)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	err = ProcessPixelRows(img, func(rows *PixelAccessor[pixel.RGBA8]) error {
		for y := 0; y < h; y++ {
			row, err := rows.Row(y)
			if err != nil {
				return err
			}
			for x := range row {
				row[x] = pixel.RGBA8{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 255}
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	return img
}

func pixelsOf(t *testing.T, img *Image[pixel.RGBA8]) []pixel.RGBA8 {
	t.Helper()
	out := make([]pixel.RGBA8, img.Width()*img.Height())
	if err := img.CopyPixelsTo(out); err != nil {
		t.Fatalf("copy pixels: %v", err)
	}
	return out
}

func TestRowLength(t *testing.T) {
	img := testImage(t, 17, 11)

	err := ProcessPixelRows(img, func(rows *PixelAccessor[pixel.RGBA8]) error {
		for y := 0; y < rows.Height(); y++ {
			row, err := rows.Row(y)
			if err != nil {
				return err
			}
			if len(row) != img.Width() {
				t.Errorf("row %d: len %d, want %d", y, len(row), img.Width())
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
}

func TestRowOutOfRange(t *testing.T) {
	img := testImage(t, 8, 5)

	err := ProcessPixelRows(img, func(rows *PixelAccessor[pixel.RGBA8]) error {
		for _, y := range []int{-1, 5, 100} {
			if _, err := rows.Row(y); !errors.Is(err, ErrOutOfRange) {
				t.Errorf("row %d: got %v, want ErrOutOfRange", y, err)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
}

func TestAccessorInvalidAfterCallback(t *testing.T) {
	img := testImage(t, 4, 4)

	var leaked *PixelAccessor[pixel.RGBA8]
	err := ProcessPixelRows(img, func(rows *PixelAccessor[pixel.RGBA8]) error {
		leaked = rows
		return nil
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if _, err := leaked.Row(0); !errors.Is(err, ErrAccessorReleased) {
		t.Errorf("leaked accessor: got %v, want ErrAccessorReleased", err)
	}
}

func TestConcurrentSessionRejected(t *testing.T) {
	img := testImage(t, 4, 4)

	err := ProcessPixelRows(img, func(_ *PixelAccessor[pixel.RGBA8]) error {
		inner := ProcessPixelRows(img, func(_ *PixelAccessor[pixel.RGBA8]) error {
			return nil
		})
		if !errors.Is(inner, ErrBusy) {
			t.Errorf("nested session: got %v, want ErrBusy", inner)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	// Same image on both sides of the dual variant.
	err = ProcessPixelRows2(img, img, func(_, _ *PixelAccessor[pixel.RGBA8]) error {
		return nil
	})
	if !errors.Is(err, ErrBusy) {
		t.Errorf("dual with same image: got %v, want ErrBusy", err)
	}
}

func TestOperationErrorPropagates(t *testing.T) {
	img := testImage(t, 4, 4)
	boom := errors.New("boom")

	if err := ProcessPixelRows(img, func(_ *PixelAccessor[pixel.RGBA8]) error {
		return boom
	}); !errors.Is(err, boom) {
		t.Errorf("got %v, want boom", err)
	}

	// The failed session must not leave the image locked.
	if err := ProcessPixelRows(img, func(_ *PixelAccessor[pixel.RGBA8]) error {
		return nil
	}); err != nil {
		t.Errorf("image still busy after error: %v", err)
	}
}

// copyRegion copies a w×h rectangle at (sx, sy) in src to (dx, dy) in
// dst using one synchronized row session.
func copyRegion(src, dst *Image[pixel.RGBA8], sx, sy, dx, dy, w, h int) error {
	return ProcessPixelRows2(src, dst, func(srcRows, dstRows *PixelAccessor[pixel.RGBA8]) error {
		for row := 0; row < h; row++ {
			s, err := srcRows.Row(sy + row)
			if err != nil {
				return err
			}
			d, err := dstRows.Row(dy + row)
			if err != nil {
				return err
			}
			copy(d[dx:dx+w], s[sx:sx+w])
		}
		return nil
	})
}

func TestRegionExtractReembed(t *testing.T) {
	const sx, sy, rw, rh = 3, 2, 7, 5
	src := testImage(t, 16, 12)
	want := pixelsOf(t, src)

	region, err := New[pixel.RGBA8](rw, rh)
	if err != nil {
		t.Fatalf("new region: %v", err)
	}
	if err := copyRegion(src, region, sx, sy, 0, 0, rw, rh); err != nil {
		t.Fatalf("extract: %v", err)
	}

	// Clear the rectangle, then re-embed the extracted region at the
	// same offset: the image must be reproduced exactly.
	err = ProcessPixelRows(src, func(rows *PixelAccessor[pixel.RGBA8]) error {
		for y := sy; y < sy+rh; y++ {
			row, err := rows.Row(y)
			if err != nil {
				return err
			}
			for x := sx; x < sx+rw; x++ {
				row[x] = pixel.RGBA8{}
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := copyRegion(region, src, 0, 0, sx, sy, rw, rh); err != nil {
		t.Fatalf("re-embed: %v", err)
	}

	got := pixelsOf(t, src)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pixel %d differs after re-embed: %v != %v", i, got[i], want[i])
		}
	}
}

func TestStorageIsGrouped(t *testing.T) {
	img, err := newWithGroupRows[pixel.RGBA8](10, 10, 3)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	// 10 rows at 3 rows per group: 3+3+3+1.
	if len(img.groups) != 4 {
		t.Fatalf("groups: got %d, want 4", len(img.groups))
	}
	if len(img.groups[3]) != 10 {
		t.Errorf("last group: got %d pixels, want 10", len(img.groups[3]))
	}
}

func TestInvalidDimensions(t *testing.T) {
	if _, err := New[pixel.RGBA8](0, 5); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero width: got %v", err)
	}
	if _, err := New[pixel.RGBA8](5, -1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("negative height: got %v", err)
	}
}
