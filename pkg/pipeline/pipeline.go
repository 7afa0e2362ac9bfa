// Package pipeline runs the complete alignment pipeline with caching.
//
// This package implements the load → align → export flow shared by the
// CLI and the HTTP server. By centralizing this logic, both entry points
// behave identically: same cache keys, same artifacts, same logging.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Materialize input datasets (inline or from a TOML manifest)
//  2. Align: Classify cross-references and build alias groups
//  3. Export: Serialize the result into the requested artifact formats
//
// Alignment is deterministic, so its output is cached under a digest of
// the input datasets: re-running on unchanged inputs is a cache lookup.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Manifest: "datasets.toml",
//	    Formats:  []string{"json"},
//	}
//	run, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := run.Artifacts["json"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/omicalign/omicalign/pkg/align"
	"github.com/omicalign/omicalign/pkg/dataset"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input: either inline datasets or a manifest path.
	Datasets []dataset.Dataset `json:"datasets,omitempty"`
	Manifest string            `json:"manifest,omitempty"`

	// Refresh bypasses the cache and forces re-alignment.
	Refresh bool `json:"refresh,omitempty"`

	// Export options.
	Formats         []string `json:"formats,omitempty"`
	Detailed        bool     `json:"detailed,omitempty"`
	IncludeIsolated bool     `json:"include_isolated,omitempty"`

	// Runtime options (not serialized).
	Policy *align.Policy `json:"-"`
	Logger *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Run contains the outputs of a pipeline run.
type Run struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Result is the alignment result.
	Result *align.Result

	// Digest is the content digest of the input datasets.
	Digest string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the alignment came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Datasets   int
	Groups     int
	Members    int
	Relations  int
	AlignTime  time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	AlignHit bool // Whether the alignment result came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Datasets) == 0 && o.Manifest == "" {
		return fmt.Errorf("datasets or manifest is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Policy == nil {
		p := align.DefaultPolicy()
		o.Policy = &p
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
