package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/omicalign/omicalign/pkg/align"
	"github.com/omicalign/omicalign/pkg/cache"
	"github.com/omicalign/omicalign/pkg/dataset"
	"github.com/omicalign/omicalign/pkg/observability"
	"github.com/omicalign/omicalign/pkg/render"
	"github.com/omicalign/omicalign/pkg/resultio"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → align → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Run, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	run := &Run{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	datasets, err := r.loadDatasets(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	run.Stats.Datasets = len(datasets)

	// Stage 2: Align
	alignStart := time.Now()
	res, hit, err := r.AlignWithCacheInfo(ctx, datasets, opts)
	if err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}
	run.Result = res
	run.Digest = cache.DigestDatasets(datasets...)
	run.Stats.AlignTime = time.Since(alignStart)
	run.Stats.Groups = res.GroupCount()
	run.Stats.Members = res.MemberCount()
	run.Stats.Relations = res.RelationCount()
	run.CacheInfo.AlignHit = hit

	r.Logger.Info("aligned identifiers",
		"datasets", len(datasets),
		"groups", res.GroupCount(),
		"members", res.MemberCount(),
		"relations", res.RelationCount(),
		"cached", hit,
		"duration", run.Stats.AlignTime)

	if n := len(res.Unclassified()); n > 0 {
		observability.Align().OnUnclassified(ctx, n)
		r.Logger.Warn("unclassified cross-references retained", "count", n)
	}

	// Stage 3: Export
	exportStart := time.Now()
	artifacts, err := Export(res, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	run.Artifacts = artifacts
	run.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Info("exported artifacts",
		"formats", opts.Formats,
		"duration", run.Stats.ExportTime)

	return run, nil
}

// AlignWithCacheInfo aligns datasets with caching and returns cache hit info.
func (r *Runner) AlignWithCacheInfo(ctx context.Context, datasets []dataset.Dataset, opts Options) (*align.Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	digest := cache.DigestDatasets(datasets...)
	cacheKey := r.Keyer.ResultKey(digest)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			res, err := resultio.Unmarshal(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "result")
				return res, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	// Align
	observability.Align().OnAlignStart(ctx, len(datasets))
	start := time.Now()
	res := align.New(*opts.Policy).Align(datasets...)
	observability.Align().OnAlignComplete(ctx, res.GroupCount(), res.RelationCount(), time.Since(start), nil)

	// Cache the result
	if data, err := resultio.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLResult); err == nil {
			observability.Cache().OnCacheSet(ctx, "result", len(data))
		}
	}

	return res, false, nil // Cache miss
}

// Align is a convenience wrapper that calls AlignWithCacheInfo and discards the cache hit info.
func (r *Runner) Align(ctx context.Context, datasets []dataset.Dataset, opts Options) (*align.Result, error) {
	res, _, err := r.AlignWithCacheInfo(ctx, datasets, opts)
	return res, err
}

// Export serializes a result into the requested artifact formats.
func Export(res *align.Result, opts Options) (map[string][]byte, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatJSON}
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	renderOpts := render.Options{
		Detailed:        opts.Detailed,
		IncludeIsolated: opts.IncludeIsolated,
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := resultio.Marshal(res)
			if err != nil {
				return nil, fmt.Errorf("marshal result: %w", err)
			}
			artifacts[format] = data
		case FormatDOT:
			artifacts[format] = []byte(render.ToDOT(res, renderOpts))
		case FormatSVG:
			svg, err := render.RenderSVG(render.ToDOT(res, renderOpts))
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = svg
		case FormatPNG:
			png, err := render.RenderPNG(render.ToDOT(res, renderOpts), 2.0)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = png
		case FormatPDF:
			pdf, err := render.RenderPDF(render.ToDOT(res, renderOpts))
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			artifacts[format] = pdf
		default:
			return nil, ValidateFormat(format)
		}
	}
	return artifacts, nil
}

// loadDatasets materializes the pipeline inputs.
func (r *Runner) loadDatasets(opts Options) ([]dataset.Dataset, error) {
	datasets := opts.Datasets
	if opts.Manifest != "" {
		loaded, err := dataset.LoadManifest(opts.Manifest)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, loaded...)
	}
	return datasets, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
