package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
)

// New creates an empty report for a run of the named operation.
func New(op string) *Report {
	return &Report{
		Version:     SupportedReportVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		RunID:       uuid.NewString(),
		Op:          op,
		Images:      make(map[string]Entry),
	}
}

// ComputeStats recalculates aggregate statistics from the entries.
// Failed is not derivable from entries and is left untouched.
func (r *Report) ComputeStats() {
	failed := r.Stats.Failed
	var s Stats
	s.TotalImages = len(r.Images)
	for _, e := range r.Images {
		s.TotalInputBytes += e.InputSize
		s.TotalOutputBytes += e.Output.Size
	}
	s.Failed = failed
	r.Stats = s
}

// WriteJSON serializes the report to a JSON file with stable ordering.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
