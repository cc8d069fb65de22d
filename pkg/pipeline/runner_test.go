package pipeline

import (
	"context"
	"testing"

	"github.com/tokenlens/tokenlens/pkg/cache"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(c, nil, nil)
}

func TestRunnerExecute(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	opts := Options{Formats: []string{"svg", "json"}}
	result, err := r.Execute(context.Background(), testTrace(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.TraceHash == "" {
		t.Error("missing trace hash")
	}
	if result.Stats.ComponentCount != 5 {
		t.Errorf("expected 5 components, got %d", result.Stats.ComponentCount)
	}
	if result.Stats.BlockCount != 6 {
		t.Errorf("expected 6 blocks, got %d", result.Stats.BlockCount)
	}
	if len(result.Artifacts["svg"]) == 0 || len(result.Artifacts["json"]) == 0 {
		t.Error("missing artifacts")
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}
}

func TestRunnerExecuteCaching(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	tr := testTrace()
	opts := Options{Formats: []string{"svg"}}

	if _, err := r.Execute(context.Background(), tr, opts); err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	second, err := r.Execute(context.Background(), tr, Options{Formats: []string{"svg"}})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}

	// Refresh bypasses the cache.
	third, err := r.Execute(context.Background(), tr, Options{Formats: []string{"svg"}, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should bypass the cache")
	}
}

func TestRunnerExecuteInvalidTrace(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	bad := testTrace()
	bad.Components[0].ID = ""
	if _, err := r.Execute(context.Background(), bad, Options{}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRunnerNilDependencies(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	l, err := r.GenerateLayout(context.Background(), testTrace(), Options{Kind: "flex"})
	if err != nil {
		t.Fatalf("GenerateLayout: %v", err)
	}
	if len(l.Rects) == 0 {
		t.Error("expected blocks from null-cache runner")
	}

	artifacts, err := r.Render(context.Background(), l, Options{Formats: []string{"json"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(artifacts["json"]) == 0 {
		t.Error("missing json artifact")
	}
}

// Different layout options must produce different cache entries for the
// same trace.
func TestRunnerCacheKeySeparation(t *testing.T) {
	r := newTestRunner(t)
	defer r.Close()

	tr := testTrace()
	ctx := context.Background()

	if _, err := r.Execute(ctx, tr, Options{Kind: "treemap", Formats: []string{"json"}}); err != nil {
		t.Fatalf("Execute treemap: %v", err)
	}

	flex, err := r.Execute(ctx, tr, Options{Kind: "flex", Formats: []string{"json"}})
	if err != nil {
		t.Fatalf("Execute flex: %v", err)
	}
	if flex.CacheInfo.LayoutHit {
		t.Error("different kind must not reuse the treemap layout cache entry")
	}
}
