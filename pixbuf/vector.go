package pixbuf

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/AnyUserName/pixgrid/pixel"
)

// rowBatch is how many rows a worker claims per counter increment.
// Large enough to amortize the atomic, small enough to balance load on
// short images.
const rowBatch = 8

// vecPool recycles canonical-form scratch rows across calls so a
// steady-state pass allocates nothing per row.
var vecPool = sync.Pool{
	New: func() any {
		s := make([]pixel.Vector4, 0, 1024)
		return &s
	},
}

func getScratch(width int) *[]pixel.Vector4 {
	p := vecPool.Get().(*[]pixel.Vector4)
	if cap(*p) < width {
		s := make([]pixel.Vector4, width)
		return &s
	}
	*p = (*p)[:width]
	return p
}

// Option configures a vector processing pass.
type Option func(*passOptions)

type passOptions struct {
	workers int
}

// WithWorkers sets the degree of parallelism for a pass. 1 disables
// intra-pass parallelism, which is the right mode when the caller
// already runs many passes concurrently. Values below 1 fall back to
// the default (GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(o *passOptions) {
		o.workers = n
	}
}

// ProcessRowsAsVector4 converts each row of img to canonical Vector4
// form, invokes op on it (in-place mutation allowed), then encodes the
// values back into the row's native pixel encoding.
//
// Rows are distributed over a configurable number of workers; each row
// is owned by exactly one worker and row order across workers is
// unspecified. op must not share mutable state between rows unless it
// synchronizes that state itself.
//
// If op fails for one or more rows, every scheduled row still settles,
// the failed rows are left unmodified, and the error for the lowest
// row index is returned. Successfully processed rows stay applied.
func ProcessRowsAsVector4[T pixel.Pixel[T]](img *Image[T], op func(y int, row []pixel.Vector4) error, opts ...Option) error {
	if err := img.acquire(); err != nil {
		return err
	}
	defer img.release()

	o := passOptions{workers: runtime.GOMAXPROCS(0)}
	for _, apply := range opts {
		apply(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.workers > img.height {
		o.workers = img.height
	}

	if o.workers == 1 {
		return processRowsSerial(img, op)
	}
	return processRowsParallel(img, op, o.workers)
}

func processRowsSerial[T pixel.Pixel[T]](img *Image[T], op func(y int, row []pixel.Vector4) error) error {
	scratch := getScratch(img.width)
	defer vecPool.Put(scratch)

	var firstErr error
	for y := 0; y < img.height; y++ {
		// Failed rows are skipped, not rolled back; remaining rows are
		// still processed so the final state matches the parallel path.
		if err := processRow(img, y, *scratch, op); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("row %d: %w", y, err)
		}
	}
	return firstErr
}

func processRowsParallel[T pixel.Pixel[T]](img *Image[T], op func(y int, row []pixel.Vector4) error, workers int) error {
	rowErrs := make([]error, img.height)

	var next atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scratch := getScratch(img.width)
			defer vecPool.Put(scratch)

			for {
				start := int(next.Add(rowBatch)) - rowBatch
				if start >= img.height {
					return
				}
				end := start + rowBatch
				if end > img.height {
					end = img.height
				}
				for y := start; y < end; y++ {
					rowErrs[y] = processRow(img, y, *scratch, op)
				}
			}
		}()
	}
	wg.Wait()

	for y, err := range rowErrs {
		if err != nil {
			return fmt.Errorf("row %d: %w", y, err)
		}
	}
	return nil
}

// processRow decodes one row into scratch, runs op, and writes the
// result back. The row is left untouched when op fails.
func processRow[T pixel.Pixel[T]](img *Image[T], y int, scratch []pixel.Vector4, op func(y int, row []pixel.Vector4) error) error {
	row := img.row(y)
	vecs := scratch[:img.width]
	for i, p := range row {
		vecs[i] = p.ToVector4()
	}
	if err := op(y, vecs); err != nil {
		return err
	}
	var zero T
	for i := range row {
		row[i] = zero.FromVector4(vecs[i])
	}
	return nil
}
