package ops

import (
	"errors"
	"testing"

	"github.com/AnyUserName/pixgrid/pixel"
)

func applyOne(t *testing.T, op Op, v pixel.Vector4) pixel.Vector4 {
	t.Helper()
	row := []pixel.Vector4{v}
	if err := op.Row(0, row); err != nil {
		t.Fatalf("%s: %v", op.Name, err)
	}
	return row[0]
}

func near(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-5
}

func TestGetKnownAndUnknown(t *testing.T) {
	for _, name := range Names() {
		op, err := Get(name)
		if err != nil {
			t.Errorf("Get(%q): %v", name, err)
		}
		if op.Name != name {
			t.Errorf("Get(%q): op named %q", name, op.Name)
		}
	}
	if _, err := Get("nonsense"); err == nil {
		t.Error("Get(nonsense): expected error")
	}
}

func TestIdentityLeavesRowAlone(t *testing.T) {
	op, err := Get("identity")
	if err != nil {
		t.Fatal(err)
	}
	v := pixel.Vector4{X: 0.1, Y: 0.2, Z: 0.3, W: 0.4}
	if got := applyOne(t, op, v); got != v {
		t.Errorf("got %v, want %v", got, v)
	}
}

func TestGrayscaleLuma(t *testing.T) {
	op, err := Get("grayscale")
	if err != nil {
		t.Fatal(err)
	}

	got := applyOne(t, op, pixel.Vector4{X: 1, Y: 1, Z: 1, W: 0.5})
	if !near(got.X, 1) || !near(got.Y, 1) || !near(got.Z, 1) || got.W != 0.5 {
		t.Errorf("white: got %v", got)
	}

	got = applyOne(t, op, pixel.Vector4{Y: 1, W: 1})
	if !near(got.X, 0.587) || got.X != got.Y || got.Y != got.Z {
		t.Errorf("pure green: got %v", got)
	}
}

func TestInvertIsInvolution(t *testing.T) {
	op, err := Get("invert")
	if err != nil {
		t.Fatal(err)
	}
	v := pixel.Vector4{X: 0.25, Y: 0.5, Z: 0.75, W: 0.9}
	once := applyOne(t, op, v)
	if !near(once.X, 0.75) || !near(once.Y, 0.5) || !near(once.Z, 0.25) || once.W != 0.9 {
		t.Fatalf("single invert: got %v", once)
	}
	if twice := applyOne(t, op, once); twice != v {
		t.Errorf("double invert: got %v, want %v", twice, v)
	}
}

func TestSepiaClamps(t *testing.T) {
	op, err := Get("sepia")
	if err != nil {
		t.Fatal(err)
	}
	// White pushes every channel past 1; the result must be clamped.
	got := applyOne(t, op, pixel.Vector4{X: 1, Y: 1, Z: 1, W: 1})
	if got.X != 1 || got.Y != 1 {
		t.Errorf("white sepia not clamped: %v", got)
	}
	if got.Z > 1 {
		t.Errorf("blue channel above 1: %v", got)
	}
}

func TestBrightness(t *testing.T) {
	got := applyOne(t, Brightness(2), pixel.Vector4{X: 0.25, Y: 0.6, Z: 0.1, W: 0.5})
	if !near(got.X, 0.5) || !near(got.Y, 1) || !near(got.Z, 0.2) || got.W != 0.5 {
		t.Errorf("got %v", got)
	}
}

func TestContrast(t *testing.T) {
	// Mid-gray is the fixed point at any factor.
	mid := pixel.Vector4{X: 0.5, Y: 0.5, Z: 0.5, W: 1}
	if got := applyOne(t, Contrast(3), mid); !near(got.X, 0.5) || !near(got.Y, 0.5) || !near(got.Z, 0.5) {
		t.Errorf("mid-gray moved: %v", got)
	}
	got := applyOne(t, Contrast(2), pixel.Vector4{X: 0.75, W: 1})
	if !near(got.X, 1) || !near(got.Y, 0) {
		t.Errorf("got %v", got)
	}
}

func TestChain(t *testing.T) {
	invert, err := Get("invert")
	if err != nil {
		t.Fatal(err)
	}
	chained := Chain(invert, Brightness(0.5))
	if chained.Name != "invert+brightness(0.50)" {
		t.Errorf("name: %q", chained.Name)
	}

	got := applyOne(t, chained, pixel.Vector4{X: 0.2, W: 1})
	if !near(got.X, 0.4) || !near(got.Y, 0.5) || !near(got.Z, 0.5) {
		t.Errorf("got %v", got)
	}

	// A single op passes through Chain untouched.
	if single := Chain(invert); single.Name != invert.Name {
		t.Errorf("single chain renamed: %q", single.Name)
	}
}

func TestChainStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	failing := Op{Name: "fail", Row: func(_ int, _ []pixel.Vector4) error { return boom }}
	counting := Op{Name: "count", Row: func(_ int, _ []pixel.Vector4) error { calls++; return nil }}

	err := Chain(failing, counting).Row(0, []pixel.Vector4{{}})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	if calls != 0 {
		t.Errorf("op after failure was called %d times", calls)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
