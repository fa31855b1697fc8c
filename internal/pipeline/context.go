package pipeline

import (
	"subweave/internal/acquire"
	"subweave/internal/catalog"
)

// Context carries the state of one run between stages. Every asset path
// lives under WorkDir until the muxer publishes the final container.
type Context struct {
	RunID     string
	URL       string
	Title     string
	WorkDir   string
	Selection *catalog.StreamDescriptor
	Media     acquire.Result
	// SubtitlePath is the normalized SRT adopted for muxing; empty when the
	// run degraded to a bare video deliverable.
	SubtitlePath string
	FinalPath    string
}
