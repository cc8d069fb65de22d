package layout

import "math"

// DefaultFlexMin is the smallest flex factor an item can receive, so
// tiny components stay visible when rendered proportionally.
const DefaultFlexMin = 0.3

// FlexItem is an item with a one-dimensional proportional size factor.
type FlexItem struct {
	Item
	Flex float64
}

// Flex assigns each item a flex factor of one unit per thousand tokens,
// floored at [DefaultFlexMin] and rounded to two decimals. Items keep
// their input order.
func Flex(items []Item) []FlexItem {
	out := make([]FlexItem, len(items))
	for i, it := range items {
		out[i] = FlexItem{
			Item: it,
			Flex: round2(math.Max(it.Weight/1000, DefaultFlexMin)),
		}
	}
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
