package layout

// Kind identifies a layout algorithm.
type Kind string

const (
	KindTreemap Kind = "treemap"
	KindFlex    Kind = "flex"
	KindBanded  Kind = "banded"
)

// Layout is a computed arrangement of blocks inside a frame. It is the
// unit handed to the render sinks and the artifact stored in the cache.
type Layout struct {
	Kind   Kind    `json:"kind"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rects  []Rect  `json:"rects"`
}

// Treemap lays the items out as a squarified treemap filling the frame.
func Treemap(items []Item, w, h float64) Layout {
	return Layout{Kind: KindTreemap, Width: w, Height: h, Rects: Squarify(items, w, h)}
}

// FlexRow lays the items out side by side along the width, each taking a
// share proportional to its flex factor, spanning the full height.
func FlexRow(items []Item, w, h float64) Layout {
	flexed := Flex(items)

	var total float64
	for _, f := range flexed {
		total += f.Flex
	}

	rects := make([]Rect, len(flexed))
	var x float64
	for i, f := range flexed {
		var fw float64
		if total > 0 {
			fw = f.Flex / total * w
		}
		rects[i] = Rect{
			X: x, Y: 0, Width: fw, Height: h,
			ID: f.ID, Type: f.Type, Weight: f.Weight, Unused: f.Unused,
		}
		x += fw
	}

	return Layout{Kind: KindFlex, Width: w, Height: h, Rects: rects}
}

// BandedColumn stacks the items top to bottom as full-width bands whose
// heights come from [Banded]. The frame height is the sum of the band
// heights, so it grows with the item count rather than being fixed.
func BandedColumn(items []Item, limit int, w float64) Layout {
	bands := Banded(items, limit)

	rects := make([]Rect, len(bands))
	var y float64
	for i, b := range bands {
		rects[i] = Rect{
			X: 0, Y: y, Width: w, Height: b.Height,
			ID: b.ID, Type: b.Type, Weight: b.Weight, Unused: b.Unused,
		}
		y += b.Height
	}

	return Layout{Kind: KindBanded, Width: w, Height: y, Rects: rects}
}
