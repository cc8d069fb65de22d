package layout

import (
	"math"
	"sort"
)

// Squarify computes a squarified treemap layout (Bruls, Huizing, van Wijk)
// for the given items inside a w×h container anchored at the origin.
//
// Each item receives exactly one rectangle, returned in the same order as
// the input. Rectangle areas are proportional to item weights, rectangles
// never overlap, and together they cover the container (up to
// floating-point rounding). Placement order is decided by descending
// weight, which is what keeps aspect ratios close to square; identity is
// tracked through the sort so the output order is unaffected.
//
// Degenerate inputs are handled without error: an empty item list yields
// nil, a zero total weight or zero-area container yields zero-size
// rectangles for every item, and a single item covers the container
// exactly. Negative weights are not validated; callers must not pass them.
func Squarify(items []Item, w, h float64) []Rect {
	rects := make([]Rect, len(items))
	for i, it := range items {
		rects[i] = Rect{ID: it.ID, Type: it.Type, Weight: it.Weight, Unused: it.Unused}
	}

	switch len(items) {
	case 0:
		return nil
	case 1:
		// Short-circuit: exact coverage without touching the recursion.
		rects[0].Width = w
		rects[0].Height = h
		return rects
	}

	var total float64
	for _, it := range items {
		total += it.Weight
	}
	if total <= 0 {
		return rects
	}

	// Place heaviest first. The stable sort keeps equal weights in input
	// order so layouts are deterministic.
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].Weight > items[order[b]].Weight
	})

	areas := make([]float64, len(items))
	for i, it := range items {
		areas[i] = it.Weight / total * w * h
	}

	squarify(areas, order, 0, 0, w, h, rects)
	return rects
}

// squarify recursively partitions the region (x, y, w, h) among the items
// listed in indices (positions into areas/rects, heaviest first), writing
// each item's rectangle into rects.
func squarify(areas []float64, indices []int, x, y, w, h float64, rects []Rect) {
	if len(indices) == 0 {
		return
	}

	if len(indices) == 1 {
		i := indices[0]
		rects[i].X, rects[i].Y = x, y
		rects[i].Width, rects[i].Height = w, h
		return
	}

	var totalArea float64
	for _, i := range indices {
		totalArea += areas[i]
	}
	if totalArea <= 0 {
		zeroRects(indices, x, y, rects)
		return
	}

	// Lay the next row along the shorter side of the region.
	if w >= h {
		layoutRowVertical(areas, indices, x, y, w, h, rects)
	} else {
		layoutRowHorizontal(areas, indices, x, y, w, h, rects)
	}
}

// layoutRowVertical builds a vertical strip on the left edge (used when
// the region is wider than tall, so the strip spans the full height).
func layoutRowVertical(areas []float64, indices []int, x, y, w, h float64, rects []Rect) {
	if h <= 0 {
		zeroRects(indices, x, y, rects)
		return
	}

	row, rest := growRow(areas, indices, h)

	var rowTotal float64
	for _, i := range row {
		rowTotal += areas[i]
	}
	rowWidth := rowTotal / h

	cy := y
	for _, i := range row {
		var itemH float64
		if rowWidth > 0 {
			itemH = areas[i] / rowWidth
		}
		rects[i].X, rects[i].Y = x, cy
		rects[i].Width, rects[i].Height = rowWidth, itemH
		cy += itemH
	}

	squarify(areas, rest, x+rowWidth, y, w-rowWidth, h, rects)
}

// layoutRowHorizontal builds a horizontal strip on the top edge (used when
// the region is taller than wide, so the strip spans the full width).
func layoutRowHorizontal(areas []float64, indices []int, x, y, w, h float64, rects []Rect) {
	if w <= 0 {
		zeroRects(indices, x, y, rects)
		return
	}

	row, rest := growRow(areas, indices, w)

	var rowTotal float64
	for _, i := range row {
		rowTotal += areas[i]
	}
	rowHeight := rowTotal / w

	cx := x
	for _, i := range row {
		var itemW float64
		if rowHeight > 0 {
			itemW = areas[i] / rowHeight
		}
		rects[i].X, rects[i].Y = cx, y
		rects[i].Width, rects[i].Height = itemW, rowHeight
		cx += itemW
	}

	squarify(areas, rest, x, y+rowHeight, w, h-rowHeight, rects)
}

// growRow takes items off the front of indices while adding the next item
// does not worsen the row's worst aspect ratio at the given side length.
// The worst ratio is recomputed over the whole row on each candidate; this
// is the standard squarified formulation and deviating from it changes the
// produced layouts.
func growRow(areas []float64, indices []int, side float64) (row, rest []int) {
	row = indices[:1]
	rest = indices[1:]

	rowAreas := []float64{areas[indices[0]]}
	for len(rest) > 0 {
		candidate := append(rowAreas[:len(rowAreas):len(rowAreas)], areas[rest[0]])
		if worstRatio(candidate, side) > worstRatio(rowAreas, side) {
			break
		}
		rowAreas = candidate
		row = indices[:len(row)+1]
		rest = rest[1:]
	}

	return row, rest
}

// worstRatio computes the worst aspect ratio over a row of areas laid out
// as a strip with the given fixed side length. Rows that cannot be laid
// out (empty, zero total, zero side) rank as infinitely bad so they never
// win a comparison.
func worstRatio(rowAreas []float64, side float64) float64 {
	var sum float64
	for _, a := range rowAreas {
		sum += a
	}
	if sum <= 0 || side <= 0 {
		return math.Inf(1)
	}

	thickness := sum / side
	worst := math.Inf(-1)
	found := false
	for _, a := range rowAreas {
		if a <= 0 {
			continue
		}
		length := a / thickness
		ratio := math.Max(thickness/length, length/thickness)
		if ratio > worst {
			worst = ratio
		}
		found = true
	}
	if !found {
		return math.Inf(1)
	}
	return worst
}

// zeroRects positions every listed item at (x, y) with zero size.
// Used when a region or row has no usable area left.
func zeroRects(indices []int, x, y float64, rects []Rect) {
	for _, i := range indices {
		rects[i].X, rects[i].Y = x, y
		rects[i].Width, rects[i].Height = 0, 0
	}
}
