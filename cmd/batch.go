package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/pixgrid/internal/ops"
	"github.com/AnyUserName/pixgrid/internal/pipeline"
	"github.com/AnyUserName/pixgrid/internal/report"
)

var (
	batchOutDir     string
	batchOp         string
	batchFormat     string
	batchQuality    int
	batchWidth      int
	batchWorkers    int
	batchRowWorkers int
	batchBrightness float64
	batchContrast   float64
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Process a directory of images and write a run report",
	Long: `Scans the input directory for images (png, jpg, jpeg, webp, gif, bmp,
tiff), applies the selected row operation to each, encodes the results
with content-addressed filenames, and writes pixgrid.report.json.

Images are processed in parallel; per-image row parallelism defaults to
serial so the two levels do not compete for cores.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./pixgrid_out", "output directory")
	batchCmd.Flags().StringVar(&batchOp, "op", "identity",
		fmt.Sprintf("row operation (%s)", strings.Join(ops.Names(), ", ")))
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "", "output format (png, jpeg, raw; default by alpha)")
	batchCmd.Flags().IntVarP(&batchQuality, "quality", "q", 85, "encoding quality 1-100")
	batchCmd.Flags().IntVar(&batchWidth, "width", 0, "resize to width before processing (0 = keep)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel images (0 = NumCPU)")
	batchCmd.Flags().IntVar(&batchRowWorkers, "row-workers", 1, "per-image row parallelism")
	batchCmd.Flags().Float64Var(&batchBrightness, "brightness", 1, "brightness factor (1 = unchanged)")
	batchCmd.Flags().Float64Var(&batchContrast, "contrast", 1, "contrast factor (1 = unchanged)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	op, err := resolveOp(batchOp, batchBrightness, batchContrast)
	if err != nil {
		return err
	}

	logVerbose("input:  %s", absInput)
	logVerbose("output: %s", absOutput)
	logVerbose("op:     %s", op.Name)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:   absInput,
		OutputDir:  absOutput,
		Op:         op,
		Format:     batchFormat,
		Quality:    batchQuality,
		Width:      batchWidth,
		Workers:    batchWorkers,
		RowWorkers: batchRowWorkers,
		Verbose:    verbose,
	})

	r, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	reportPath := filepath.Join(absOutput, "pixgrid.report.json")
	if err := report.WriteJSON(r, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printBatchReport(r, time.Since(start))
	return nil
}

func printBatchReport(r *report.Report, elapsed time.Duration) {
	fmt.Println()
	fmt.Printf("  Run:         %s\n", r.RunID)
	fmt.Printf("  Operation:   %s\n", r.Op)
	fmt.Printf("  Images:      %d\n", r.Stats.TotalImages)
	if r.Stats.Failed > 0 {
		fmt.Printf("  Failed:      %d\n", r.Stats.Failed)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(r.Stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(r.Stats.TotalOutputBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if r.BuildInfo != nil {
		fmt.Printf("  Workers:     %d images × %d rows\n", r.BuildInfo.Workers, r.BuildInfo.RowWorkers)
	}
	fmt.Println()

	// Top 10 heaviest inputs.
	if len(r.Images) > 0 {
		type imgSize struct {
			key string
			in  int64
			out int64
		}
		var items []imgSize
		for key, e := range r.Images {
			items = append(items, imgSize{key, e.InputSize, e.Output.Size})
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].in > items[j].in
		})
		n := len(items)
		if n > 10 {
			n = 10
		}
		fmt.Printf("  Top %d heaviest (input → output):\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %8s → %8s\n",
				truncKey(it.key, 40), formatBytes(it.in), formatBytes(it.out))
		}
		fmt.Println()
	}

	fmt.Printf("  Report:      pixgrid.report.json\n")
	fmt.Println()
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
