package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/pixgrid/internal/encoder"
	"github.com/AnyUserName/pixgrid/internal/hasher"
	"github.com/AnyUserName/pixgrid/internal/imgconv"
	"github.com/AnyUserName/pixgrid/internal/report"
	"github.com/AnyUserName/pixgrid/pixbuf"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	entry report.Entry
	err   error
}

// processImage handles one source: decode, optional resize, row
// processing, fingerprinting, encode, write.
func processImage(src Source, cfg Config, registry *encoder.Registry) processResult {
	result := processResult{key: src.Key}

	img, _, err := imgconv.DecodeFile(src.AbsPath)
	if err != nil {
		result.err = err
		return result
	}

	// Resize before buffer conversion so the row pass touches only the
	// pixels that end up in the output.
	if cfg.Width > 0 && img.Bounds().Dx() > cfg.Width {
		img = imaging.Resize(img, cfg.Width, 0, imaging.Lanczos)
	}

	buf, err := imgconv.FromImage(img)
	if err != nil {
		result.err = fmt.Errorf("convert %s: %w", src.RelPath, err)
		return result
	}

	if err := pixbuf.ProcessRowsAsVector4(buf, cfg.Op.Row, pixbuf.WithWorkers(cfg.RowWorkers)); err != nil {
		result.err = fmt.Errorf("process %s: %w", src.RelPath, err)
		return result
	}

	hasAlpha, err := imgconv.HasAlpha(buf)
	if err != nil {
		result.err = fmt.Errorf("inspect %s: %w", src.RelPath, err)
		return result
	}
	avg, err := imgconv.AvgColor(buf)
	if err != nil {
		result.err = fmt.Errorf("inspect %s: %w", src.RelPath, err)
		return result
	}
	pixHash, err := hasher.PixelHash(buf, 16)
	if err != nil {
		result.err = fmt.Errorf("fingerprint %s: %w", src.RelPath, err)
		return result
	}

	format := registry.ResolveFormat(cfg.Format, hasAlpha)
	enc, err := registry.Get(format)
	if err != nil {
		result.err = err
		return result
	}
	data, err := enc.Encode(buf, cfg.Quality)
	if err != nil {
		result.err = fmt.Errorf("encode %s as %s: %w", src.RelPath, format, err)
		return result
	}

	contentHash := hasher.ContentHash(data, 16)

	// Output name: key.op.hash.ext, content-addressed like the inputs
	// of a cache-friendly asset pipeline.
	keyDir := filepath.Dir(src.Key)
	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, keyDir), 0o755); err != nil {
			result.err = fmt.Errorf("create output dir: %w", err)
			return result
		}
	}
	fileName := fmt.Sprintf("%s.%s.%s.%s",
		filepath.Base(src.Key), cfg.Op.Name, contentHash[:8], enc.Extension())
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	outPath := filepath.Join(cfg.OutputDir, relPath)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	result.entry = report.Entry{
		Width:     buf.Width(),
		Height:    buf.Height(),
		Format:    src.Format,
		InputSize: src.Size,
		HasAlpha:  hasAlpha,
		AvgColor:  &avg,
		PixelHash: pixHash,
		Output: report.Output{
			Format: format,
			Size:   int64(len(data)),
			Hash:   contentHash,
			Path:   relPath,
		},
	}
	return result
}
