// Package ops provides named, deterministic row operations for the
// vector processing path. Every operation maps a row of canonical
// Vector4 values to a new row in place; none keeps state across rows,
// so the same input produces the same output at any worker count.
package ops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AnyUserName/pixgrid/pixel"
)

// RowFunc transforms one row of canonical pixel values in place.
type RowFunc func(y int, row []pixel.Vector4) error

// Op is a named row operation.
type Op struct {
	Name string
	Desc string
	Row  RowFunc
}

// Built-in operations.
var registry = map[string]Op{
	"identity": {
		Name: "identity",
		Desc: "pass pixels through unchanged",
		Row: func(_ int, _ []pixel.Vector4) error {
			return nil
		},
	},
	"grayscale": {
		Name: "grayscale",
		Desc: "BT.601 luma grayscale",
		Row: func(_ int, row []pixel.Vector4) error {
			for i, v := range row {
				l := 0.299*v.X + 0.587*v.Y + 0.114*v.Z
				row[i] = pixel.Vector4{X: l, Y: l, Z: l, W: v.W}
			}
			return nil
		},
	},
	"invert": {
		Name: "invert",
		Desc: "invert color channels, keep alpha",
		Row: func(_ int, row []pixel.Vector4) error {
			for i, v := range row {
				row[i] = pixel.Vector4{X: 1 - v.X, Y: 1 - v.Y, Z: 1 - v.Z, W: v.W}
			}
			return nil
		},
	},
	"sepia": {
		Name: "sepia",
		Desc: "sepia tone matrix",
		Row: func(_ int, row []pixel.Vector4) error {
			for i, v := range row {
				row[i] = pixel.Vector4{
					X: 0.393*v.X + 0.769*v.Y + 0.189*v.Z,
					Y: 0.349*v.X + 0.686*v.Y + 0.168*v.Z,
					Z: 0.272*v.X + 0.534*v.Y + 0.131*v.Z,
					W: v.W,
				}.Clamped()
			}
			return nil
		},
	},
}

// Get returns a built-in operation by name.
func Get(name string) (Op, error) {
	op, ok := registry[name]
	if !ok {
		return Op{}, fmt.Errorf("unknown operation %q (available: %v)", name, Names())
	}
	return op, nil
}

// Names returns the built-in operation names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Brightness scales the color channels by factor (1 = unchanged).
func Brightness(factor float32) Op {
	return Op{
		Name: fmt.Sprintf("brightness(%.2f)", factor),
		Desc: "scale color channels",
		Row: func(_ int, row []pixel.Vector4) error {
			for i, v := range row {
				row[i] = pixel.Vector4{
					X: v.X * factor,
					Y: v.Y * factor,
					Z: v.Z * factor,
					W: v.W,
				}.Clamped()
			}
			return nil
		},
	}
}

// Chain composes operations left to right into a single pass.
func Chain(list ...Op) Op {
	if len(list) == 1 {
		return list[0]
	}
	names := make([]string, len(list))
	for i, op := range list {
		names[i] = op.Name
	}
	return Op{
		Name: strings.Join(names, "+"),
		Desc: "composed operations",
		Row: func(y int, row []pixel.Vector4) error {
			for _, op := range list {
				if err := op.Row(y, row); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// Contrast adjusts contrast around mid-gray by factor (1 = unchanged).
func Contrast(factor float32) Op {
	return Op{
		Name: fmt.Sprintf("contrast(%.2f)", factor),
		Desc: "adjust contrast around mid-gray",
		Row: func(_ int, row []pixel.Vector4) error {
			for i, v := range row {
				row[i] = pixel.Vector4{
					X: (v.X-0.5)*factor + 0.5,
					Y: (v.Y-0.5)*factor + 0.5,
					Z: (v.Z-0.5)*factor + 0.5,
					W: v.W,
				}.Clamped()
			}
			return nil
		},
	}
}
