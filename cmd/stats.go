package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/pixgrid/internal/hasher"
	"github.com/AnyUserName/pixgrid/internal/imgconv"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats <input_image>",
	Short: "Display pixel-level statistics for an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "emit JSON instead of text")
	rootCmd.AddCommand(statsCmd)
}

// imageStats is the machine-readable form of the stats output.
type imageStats struct {
	Path      string   `json:"path"`
	Format    string   `json:"format"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	FileSize  int64    `json:"file_size"`
	HasAlpha  bool     `json:"has_alpha"`
	AvgColor  [3]uint8 `json:"avg_color"`
	PixelHash string   `json:"pixel_hash"`
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	img, format, err := imgconv.DecodeFile(path)
	if err != nil {
		return err
	}

	buf, err := imgconv.FromImage(img)
	if err != nil {
		return fmt.Errorf("convert to buffer: %w", err)
	}

	hasAlpha, err := imgconv.HasAlpha(buf)
	if err != nil {
		return err
	}
	avg, err := imgconv.AvgColor(buf)
	if err != nil {
		return err
	}
	pixHash, err := hasher.PixelHash(buf, 16)
	if err != nil {
		return err
	}

	s := imageStats{
		Path:      path,
		Format:    format,
		Width:     buf.Width(),
		Height:    buf.Height(),
		FileSize:  info.Size(),
		HasAlpha:  hasAlpha,
		AvgColor:  avg,
		PixelHash: pixHash,
	}

	if statsJSON {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println()
	fmt.Printf("  Path:        %s\n", s.Path)
	fmt.Printf("  Format:      %s\n", s.Format)
	fmt.Printf("  Dimensions:  %dx%d\n", s.Width, s.Height)
	fmt.Printf("  File size:   %s\n", formatBytes(s.FileSize))
	fmt.Printf("  Has alpha:   %v\n", s.HasAlpha)
	fmt.Printf("  Avg color:   #%02x%02x%02x\n", s.AvgColor[0], s.AvgColor[1], s.AvgColor[2])
	fmt.Printf("  Pixel hash:  %s\n", s.PixelHash)
	fmt.Println()
	return nil
}
