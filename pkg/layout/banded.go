package layout

import "math"

// Band sizing constants, in pixels. Each component's band height is its
// share of the context limit scaled into BandTotalHeight, clamped so
// every band stays visible without dominating the column.
const (
	BandMinHeight   = 40
	BandMaxHeight   = 200
	BandTotalHeight = 400
)

// Band is an item with a fixed pixel height for a stacked vertical layout.
type Band struct {
	Item
	Height float64
}

// Banded assigns each item a band height proportional to its share of
// limit, clamped to [BandMinHeight, BandMaxHeight] and rounded to one
// decimal. Items keep their input order. A non-positive limit is treated
// as 1 so the ratio stays defined.
func Banded(items []Item, limit int) []Band {
	total := float64(limit)
	if total <= 0 {
		total = 1
	}

	out := make([]Band, len(items))
	for i, it := range items {
		h := it.Weight / total * BandTotalHeight
		h = math.Max(BandMinHeight, math.Min(BandMaxHeight, h))
		out[i] = Band{Item: it, Height: round1(h)}
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
