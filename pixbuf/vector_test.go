package pixbuf

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/AnyUserName/pixgrid/pixel"
)

func TestVectorIdentityPreservesPixels(t *testing.T) {
	img := testImage(t, 19, 13)
	want := pixelsOf(t, img)

	err := ProcessRowsAsVector4(img, func(_ int, _ []pixel.Vector4) error {
		return nil
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	got := pixelsOf(t, img)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pixel %d changed by identity pass: %v != %v", i, got[i], want[i])
		}
	}
}

func TestVectorSerialMatchesParallel(t *testing.T) {
	invert := func(_ int, row []pixel.Vector4) error {
		for i, v := range row {
			row[i] = pixel.Vector4{X: 1 - v.X, Y: 1 - v.Y, Z: 1 - v.Z, W: v.W}
		}
		return nil
	}

	serial := testImage(t, 33, 29)
	parallel := testImage(t, 33, 29)

	if err := ProcessRowsAsVector4(serial, invert, WithWorkers(1)); err != nil {
		t.Fatalf("serial: %v", err)
	}
	if err := ProcessRowsAsVector4(parallel, invert, WithWorkers(4)); err != nil {
		t.Fatalf("parallel: %v", err)
	}

	s := pixelsOf(t, serial)
	p := pixelsOf(t, parallel)
	for i := range s {
		if s[i] != p[i] {
			t.Fatalf("pixel %d differs between serial and parallel: %v != %v", i, s[i], p[i])
		}
	}
}

func TestVectorEachRowProcessedOnce(t *testing.T) {
	const h = 37
	img := testImage(t, 5, h)

	var counts [h]atomic.Int32
	err := ProcessRowsAsVector4(img, func(y int, _ []pixel.Vector4) error {
		counts[y].Add(1)
		return nil
	}, WithWorkers(4))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	for y := range counts {
		if n := counts[y].Load(); n != 1 {
			t.Errorf("row %d processed %d times", y, n)
		}
	}
}

func TestVectorErrorPolicy(t *testing.T) {
	img := testImage(t, 6, 9)
	before := pixelsOf(t, img)
	boom := errors.New("boom")

	// Rows 3 and 7 fail; everything else settles and stays applied.
	err := ProcessRowsAsVector4(img, func(y int, row []pixel.Vector4) error {
		if y == 3 || y == 7 {
			return boom
		}
		for i := range row {
			row[i] = pixel.Vector4{W: 1} // black
		}
		return nil
	}, WithWorkers(3))

	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	// Lowest failing row is named in the error.
	if want := "row 3"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not name %q", err, want)
	}

	after := pixelsOf(t, img)
	black := pixel.RGBA8{A: 255}
	for y := 0; y < 9; y++ {
		for x := 0; x < 6; x++ {
			i := y*6 + x
			if y == 3 || y == 7 {
				if after[i] != before[i] {
					t.Fatalf("failed row %d was modified", y)
				}
			} else if after[i] != black {
				t.Fatalf("row %d not applied: %v", y, after[i])
			}
		}
	}

	// The image is usable again after the failed pass.
	if err := ProcessRowsAsVector4(img, func(_ int, _ []pixel.Vector4) error { return nil }); err != nil {
		t.Errorf("image busy after failed pass: %v", err)
	}
}

func TestVectorBusyDuringRowSession(t *testing.T) {
	img := testImage(t, 4, 4)

	err := ProcessPixelRows(img, func(_ *PixelAccessor[pixel.RGBA8]) error {
		inner := ProcessRowsAsVector4(img, func(_ int, _ []pixel.Vector4) error { return nil })
		if !errors.Is(inner, ErrBusy) {
			t.Errorf("vector pass during row session: got %v, want ErrBusy", inner)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
}

func TestVectorRowLengthEqualsWidth(t *testing.T) {
	img := testImage(t, 23, 4)
	err := ProcessRowsAsVector4(img, func(y int, row []pixel.Vector4) error {
		if len(row) != 23 {
			t.Errorf("row %d: len %d, want 23", y, len(row))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
}

func BenchmarkProcessRowsAsVector4Serial(b *testing.B) {
	img, err := New[pixel.RGBA8](1024, 256)
	if err != nil {
		b.Fatalf("new: %v", err)
	}
	op := func(_ int, row []pixel.Vector4) error {
		for i, v := range row {
			row[i] = pixel.Vector4{X: 1 - v.X, Y: 1 - v.Y, Z: 1 - v.Z, W: v.W}
		}
		return nil
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := ProcessRowsAsVector4(img, op, WithWorkers(1)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProcessRowsAsVector4Parallel(b *testing.B) {
	img, err := New[pixel.RGBA8](1024, 256)
	if err != nil {
		b.Fatalf("new: %v", err)
	}
	op := func(_ int, row []pixel.Vector4) error {
		for i, v := range row {
			row[i] = pixel.Vector4{X: 1 - v.X, Y: 1 - v.Y, Z: 1 - v.Z, W: v.W}
		}
		return nil
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := ProcessRowsAsVector4(img, op); err != nil {
			b.Fatal(err)
		}
	}
}
