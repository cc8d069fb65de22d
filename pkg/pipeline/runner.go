package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tokenlens/tokenlens/pkg/cache"
	"github.com/tokenlens/tokenlens/pkg/errors"
	"github.com/tokenlens/tokenlens/pkg/layout"
	"github.com/tokenlens/tokenlens/pkg/observability"
	"github.com/tokenlens/tokenlens/pkg/trace"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
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

// Execute runs the layout → render pipeline over the trace with caching.
func (r *Runner) Execute(ctx context.Context, t *trace.ContextTrace, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	if err := t.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.ComponentCount = len(t.Components)

	traceData, err := trace.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to hash trace")
	}
	result.TraceHash = cache.Hash(traceData)

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, t, result.TraceHash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.BlockCount = len(l.Rects)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"kind", l.Kind,
		"blocks", len(l.Rects),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo computes a layout with caching and returns
// whether it came from the cache.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, t *trace.ContextTrace, traceHash string, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(traceHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Fall through to recompute on deserialization failure.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	items := len(t.Components)
	observability.Pipeline().OnLayoutStart(ctx, opts.Kind, items)

	l, err := GenerateLayout(t, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Kind, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if data, err := MarshalLayout(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil
}

// GenerateLayout is a convenience wrapper that hashes the trace itself
// and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, t *trace.ContextTrace, opts Options) (layout.Layout, error) {
	traceData, err := trace.Marshal(t)
	if err != nil {
		return layout.Layout{}, errors.Wrap(errors.ErrCodeInternal, err, "failed to hash trace")
	}
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, t, cache.Hash(traceData), opts)
	return l, err
}

// RenderWithCacheInfo renders artifacts with caching and returns whether
// every requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := MarshalLayout(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "failed to serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	rendered, err := RenderFromLayout(l, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
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
