package model

// Status classifies how processing of one source file ended.
type Status string

const (
	StatusConverted Status = "converted" // artifact written
	StatusSkipped   Status = "skipped"   // named non-fatal condition, no artifact
	StatusFailed    Status = "failed"    // I/O or parse error, no artifact
)

// Outcome is the per-file result collected by the batch driver. Failures
// carry their named reason instead of being interleaved into console
// output, so callers can inspect why a file produced no artifact.
type Outcome struct {
	Source       string   `json:"source"`
	Status       Status   `json:"status"`
	Reason       error    `json:"-"`
	Warnings     []string `json:"warnings,omitempty"`
	ArtifactPath string   `json:"artifact_path,omitempty"`
	Rows         int      `json:"rows,omitempty"`
}

// Converted reports whether an artifact was written for this source.
func (o *Outcome) Converted() bool {
	return o.Status == StatusConverted
}
