package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingPipelineHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingPipelineHooks) OnLoadStart(context.Context, string) { h.record("load-start") }
func (h *recordingPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {
	h.record("load-complete")
}
func (h *recordingPipelineHooks) OnLayoutStart(context.Context, string, int) {
	h.record("layout-start")
}
func (h *recordingPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {
	h.record("layout-complete")
}
func (h *recordingPipelineHooks) OnRenderStart(context.Context, []string) { h.record("render-start") }
func (h *recordingPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render-complete")
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Must not panic
	ctx := context.Background()
	Pipeline().OnLoadStart(ctx, "trace.json")
	Pipeline().OnLayoutStart(ctx, "treemap", 5)
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheSet(ctx, "artifact", 1024)
	Watch().OnChange(ctx, "trace.json")
}

func TestSetPipelineHooks(t *testing.T) {
	Reset()
	defer Reset()

	h := &recordingPipelineHooks{}
	SetPipelineHooks(h)

	ctx := context.Background()
	Pipeline().OnLayoutStart(ctx, "treemap", 3)
	Pipeline().OnLayoutComplete(ctx, "treemap", time.Millisecond, nil)

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.events) != 2 {
		t.Fatalf("recorded %d events, want 2", len(h.events))
	}
	if h.events[0] != "layout-start" || h.events[1] != "layout-complete" {
		t.Errorf("events = %v", h.events)
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	Reset()
	defer Reset()

	SetPipelineHooks(nil)
	SetCacheHooks(nil)
	SetWatchHooks(nil)

	// Registry should still return usable no-op hooks
	Pipeline().OnLoadStart(context.Background(), "x")
	Cache().OnCacheMiss(context.Background(), "layout")
	Watch().OnWatchStart(context.Background(), ".")
}

func TestReset(t *testing.T) {
	h := &recordingPipelineHooks{}
	SetPipelineHooks(h)
	Reset()

	Pipeline().OnLoadStart(context.Background(), "x")

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.events) != 0 {
		t.Errorf("hooks still registered after Reset: %v", h.events)
	}
}
