package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tokenlens/tokenlens/pkg/errors"
	"github.com/tokenlens/tokenlens/pkg/layout"
	"github.com/tokenlens/tokenlens/pkg/observability"
	"github.com/tokenlens/tokenlens/pkg/trace"
)

// LoadTrace reads and validates a trace file, emitting load events to the
// registered observability hooks.
func LoadTrace(ctx context.Context, path string) (*trace.ContextTrace, error) {
	observability.Pipeline().OnLoadStart(ctx, path)
	start := time.Now()

	t, err := trace.ImportFile(path)

	components := 0
	if t != nil {
		components = len(t.Components)
	}
	observability.Pipeline().OnLoadComplete(ctx, path, components, time.Since(start), err)
	return t, err
}

// GenerateLayout computes block positions for the trace using the
// algorithm selected by opts.Kind.
func GenerateLayout(t *trace.ContextTrace, opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, err
	}

	items := layout.ItemsFromTrace(t)

	switch layout.Kind(opts.Kind) {
	case layout.KindTreemap:
		return layout.Treemap(items, opts.Width, opts.Height), nil
	case layout.KindFlex:
		return layout.FlexRow(items, opts.Width, opts.Height), nil
	case layout.KindBanded:
		return layout.BandedColumn(items, t.ContextLimit, opts.Width), nil
	default:
		return layout.Layout{}, errors.ValidateLayoutKind(opts.Kind)
	}
}

// MarshalLayout serializes a layout for caching and interchange.
func MarshalLayout(l layout.Layout) ([]byte, error) {
	return json.Marshal(l)
}

// UnmarshalLayout deserializes a cached layout.
func UnmarshalLayout(data []byte) (layout.Layout, error) {
	var l layout.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return layout.Layout{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "failed to decode cached layout")
	}
	return l, nil
}
