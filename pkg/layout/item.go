// Package layout computes visual layouts for context-window traces.
//
// The central algorithm is the squarified treemap (see treemap.go), which
// partitions a container rectangle into one block per weighted item while
// keeping block aspect ratios close to square. Two simpler companions,
// [Flex] and [Banded], provide one-dimensional proportional layouts.
//
// All layout functions are pure: they read their inputs, allocate fresh
// output, and hold no state, so they are safe to call concurrently.
package layout

import (
	"github.com/tokenlens/tokenlens/pkg/trace"
)

// Item is a weighted input to the layout algorithms.
// The weight is a token count; items are never mutated by layout.
type Item struct {
	ID     string
	Type   trace.ComponentType // empty for the unused-capacity item
	Weight float64
	Unused bool
}

// Rect is a positioned block produced by a layout.
// It carries the originating item's identity so callers can map blocks
// back to trace components.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	ID     string              `json:"id"`
	Type   trace.ComponentType `json:"type,omitempty"`
	Weight float64             `json:"weight"`
	Unused bool                `json:"unused,omitempty"`
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.Width * r.Height }

// AspectRatio returns max(w/h, h/w), the elongation of the rectangle.
// Degenerate rectangles (zero width or height) return 0.
func (r Rect) AspectRatio() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	if r.Width > r.Height {
		return r.Width / r.Height
	}
	return r.Height / r.Width
}

// ItemsFromTrace converts a trace into layout items: one item per
// component in trace order, plus a synthetic unused-capacity item when
// the window has headroom.
func ItemsFromTrace(t *trace.ContextTrace) []Item {
	items := make([]Item, 0, len(t.Components)+1)
	for _, c := range t.Components {
		items = append(items, Item{
			ID:     c.ID,
			Type:   c.Type,
			Weight: float64(c.TokenCount),
		})
	}

	if unused := t.UnusedTokens(); unused > 0 {
		items = append(items, Item{
			ID:     trace.UnusedID,
			Weight: float64(unused),
			Unused: true,
		})
	}

	return items
}
