// Package pipeline runs a row operation over every image in a
// directory tree, in parallel across images.
package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/pixgrid/internal/encoder"
	"github.com/AnyUserName/pixgrid/internal/ops"
	"github.com/AnyUserName/pixgrid/internal/report"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Op        ops.Op
	Format    string // output format; "" selects per-image default
	Quality   int
	Width     int // target width, 0 = keep original
	Workers   int // images in flight; 0 = NumCPU
	// RowWorkers is the per-image row parallelism. The default of 1 is
	// deliberate: with many images in flight, intra-image parallelism
	// would only compete with the outer worker pool.
	RowWorkers int
	Verbose    bool
}

// Pipeline orchestrates batch image processing.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.RowWorkers <= 0 {
		cfg.RowWorkers = 1
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
	}
}

// Run executes the batch and returns the run report.
func (p *Pipeline) Run() (*report.Report, error) {
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[pixgrid] found %d images\n", len(sources))
	}

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[pixgrid] processing: %s\n", s.Key)
			}

			results[idx] = processImage(s, p.cfg, p.registry)
		}(i, src)
	}
	wg.Wait()

	r := report.New(p.cfg.Op.Name)
	r.BuildInfo = &report.BuildInfo{
		Workers:    p.cfg.Workers,
		RowWorkers: p.cfg.RowWorkers,
	}

	var errs []error
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		r.Images[res.key] = res.entry
	}

	// Partial failures are reported but do not fail the run.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[pixgrid] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[pixgrid] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	r.Stats.Failed = len(errs)
	r.ComputeStats()
	return r, nil
}
