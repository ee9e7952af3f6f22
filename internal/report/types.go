package report

// Report is the top-level output of a pixgrid batch run.
type Report struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	RunID       string           `json:"run_id"`
	Op          string           `json:"op"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Images      map[string]Entry `json:"images"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures run-time parameters for diagnostics.
type BuildInfo struct {
	Workers    int `json:"workers"`     // parallel images in flight
	RowWorkers int `json:"row_workers"` // per-image row parallelism
}

// Entry describes one processed source image.
type Entry struct {
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Format    string    `json:"format"` // source format (png, jpeg, ...)
	InputSize int64     `json:"input_size"`
	HasAlpha  bool      `json:"has_alpha"`
	AvgColor  *[3]uint8 `json:"avg_color,omitempty"` // [R,G,B] after processing
	PixelHash string    `json:"pixel_hash"`          // xxhash64 of processed pixel data
	Output    Output    `json:"output"`
}

// Output is the encoded result written for an entry.
type Output struct {
	Format string `json:"format"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"` // xxhash64 of encoded bytes
	Path   string `json:"path"` // relative to the output directory
}

// Stats aggregates run metrics.
type Stats struct {
	TotalImages      int   `json:"total_images"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	Failed           int   `json:"failed,omitempty"`
}

// SupportedReportVersion is the current schema version.
const SupportedReportVersion = 1
