package layout

import (
	"math"
	"testing"

	"github.com/tokenlens/tokenlens/pkg/trace"
)

const epsilon = 1e-6

// scenarioItems mirrors a realistic trace: five components plus the
// unused-capacity remainder of a 128k window.
func scenarioItems() []Item {
	return []Item{
		{ID: "sys", Type: trace.ComponentSystemPrompt, Weight: 2000},
		{ID: "rag1", Type: trace.ComponentRAG, Weight: 8000},
		{ID: "rag2", Type: trace.ComponentRAG, Weight: 3000},
		{ID: "hist", Type: trace.ComponentChatHistory, Weight: 1000},
		{ID: "user", Type: trace.ComponentUserMessage, Weight: 350},
		{ID: trace.UnusedID, Weight: 113650, Unused: true},
	}
}

func totalArea(rects []Rect) float64 {
	var sum float64
	for _, r := range rects {
		sum += r.Area()
	}
	return sum
}

func checkWithinContainer(t *testing.T, rects []Rect, w, h float64) {
	t.Helper()
	for _, r := range rects {
		if r.X < -epsilon || r.Y < -epsilon ||
			r.X+r.Width > w+epsilon || r.Y+r.Height > h+epsilon {
			t.Errorf("rect %q (%g,%g %gx%g) escapes container %gx%g",
				r.ID, r.X, r.Y, r.Width, r.Height, w, h)
		}
	}
}

func checkNoOverlap(t *testing.T, rects []Rect) {
	t.Helper()
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			ox := math.Min(a.X+a.Width, b.X+b.Width) - math.Max(a.X, b.X)
			oy := math.Min(a.Y+a.Height, b.Y+b.Height) - math.Max(a.Y, b.Y)
			if ox > epsilon && oy > epsilon {
				t.Errorf("rects %q and %q overlap by %gx%g", a.ID, b.ID, ox, oy)
			}
		}
	}
}

func TestSquarifyEmptyInput(t *testing.T) {
	if got := Squarify(nil, 100, 268); len(got) != 0 {
		t.Fatalf("expected no rects, got %d", len(got))
	}
}

func TestSquarifySingleItem(t *testing.T) {
	rects := Squarify([]Item{{ID: "only", Weight: 42}}, 100, 268)
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(rects))
	}
	r := rects[0]
	if r.X != 0 || r.Y != 0 || r.Width != 100 || r.Height != 268 {
		t.Errorf("single item should cover container exactly, got (%g,%g %gx%g)",
			r.X, r.Y, r.Width, r.Height)
	}
	if r.ID != "only" {
		t.Errorf("identity lost: got %q", r.ID)
	}
}

func TestSquarifyScenario(t *testing.T) {
	items := scenarioItems()
	const w, h = 100.0, 268.0

	rects := Squarify(items, w, h)
	if len(rects) != len(items) {
		t.Fatalf("expected %d rects, got %d", len(items), len(rects))
	}

	// Identity preserved in input order.
	for i, r := range rects {
		if r.ID != items[i].ID {
			t.Errorf("rect %d: expected ID %q, got %q", i, items[i].ID, r.ID)
		}
		if r.Type != items[i].Type || r.Weight != items[i].Weight || r.Unused != items[i].Unused {
			t.Errorf("rect %d (%q): item fields not carried through", i, r.ID)
		}
	}

	// Area conservation within 1%.
	container := w * h
	if got := totalArea(rects); math.Abs(got-container)/container > 0.01 {
		t.Errorf("total area %g differs from container %g by more than 1%%", got, container)
	}

	checkWithinContainer(t, rects, w, h)
	checkNoOverlap(t, rects)

	// The unused block dominates by weight, so it must dominate by area.
	byID := make(map[string]Rect, len(rects))
	for _, r := range rects {
		byID[r.ID] = r
	}
	unused := byID[trace.UnusedID]
	for _, r := range rects {
		if r.ID != trace.UnusedID && r.Area() >= unused.Area() {
			t.Errorf("%q area %g should be smaller than unused area %g", r.ID, r.Area(), unused.Area())
		}
	}

	// The row-growth heuristic should prevent gross slivers.
	for _, r := range rects {
		if ratio := r.AspectRatio(); ratio > 50 {
			t.Errorf("rect %q aspect ratio %g exceeds 50", r.ID, ratio)
		}
	}
}

func TestSquarifyMonotonicWeights(t *testing.T) {
	items := []Item{
		{ID: "a", Weight: 100},
		{ID: "b", Weight: 400},
		{ID: "c", Weight: 250},
	}
	rects := Squarify(items, 200, 120)

	areas := make(map[string]float64, len(rects))
	for _, r := range rects {
		areas[r.ID] = r.Area()
	}
	if !(areas["b"] > areas["c"] && areas["c"] > areas["a"]) {
		t.Errorf("areas should follow weights: a=%g b=%g c=%g", areas["a"], areas["b"], areas["c"])
	}

	// Equal weights get equal areas.
	eq := Squarify([]Item{{ID: "x", Weight: 5}, {ID: "y", Weight: 5}}, 100, 100)
	if math.Abs(eq[0].Area()-eq[1].Area()) > epsilon {
		t.Errorf("equal weights should yield equal areas: %g vs %g", eq[0].Area(), eq[1].Area())
	}
}

func TestSquarifyZeroWeights(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
	}{
		{"all zero", []Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}},
		{"mixed", []Item{{ID: "a", Weight: 10}, {ID: "b"}, {ID: "c", Weight: 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rects := Squarify(tt.items, 100, 268)
			if len(rects) != len(tt.items) {
				t.Fatalf("expected %d rects, got %d", len(tt.items), len(rects))
			}
			for i, r := range rects {
				if tt.items[i].Weight == 0 && r.Area() > epsilon {
					t.Errorf("zero-weight item %q got positive area %g", r.ID, r.Area())
				}
			}
			checkWithinContainer(t, rects, 100, 268)
			checkNoOverlap(t, rects)
		})
	}
}

func TestSquarifyDegenerateContainer(t *testing.T) {
	items := scenarioItems()

	for _, dims := range [][2]float64{{0, 268}, {100, 0}, {0, 0}} {
		rects := Squarify(items, dims[0], dims[1])
		if len(rects) != len(items) {
			t.Fatalf("container %gx%g: expected %d rects, got %d",
				dims[0], dims[1], len(items), len(rects))
		}
		for _, r := range rects {
			if r.Area() > epsilon {
				t.Errorf("container %gx%g: rect %q has positive area %g",
					dims[0], dims[1], r.ID, r.Area())
			}
			if math.IsNaN(r.X) || math.IsNaN(r.Y) || math.IsNaN(r.Width) || math.IsNaN(r.Height) {
				t.Errorf("container %gx%g: rect %q has NaN fields", dims[0], dims[1], r.ID)
			}
		}
	}
}

func TestSquarifyManyItems(t *testing.T) {
	items := make([]Item, 40)
	for i := range items {
		items[i] = Item{ID: string(rune('a' + i%26)), Weight: float64((i*37)%500 + 1)}
	}

	const w, h = 320.0, 180.0
	rects := Squarify(items, w, h)

	container := w * h
	if got := totalArea(rects); math.Abs(got-container)/container > 0.01 {
		t.Errorf("total area %g differs from container %g by more than 1%%", got, container)
	}
	checkWithinContainer(t, rects, w, h)
	checkNoOverlap(t, rects)
}

func TestItemsFromTrace(t *testing.T) {
	tr := &trace.ContextTrace{
		ContextLimit: 128000,
		TotalTokens:  14350,
		Components: []trace.Component{
			{ID: "sys", Type: trace.ComponentSystemPrompt, TokenCount: 2000},
			{ID: "rag1", Type: trace.ComponentRAG, TokenCount: 8000},
			{ID: "rag2", Type: trace.ComponentRAG, TokenCount: 3000},
			{ID: "hist", Type: trace.ComponentChatHistory, TokenCount: 1000},
			{ID: "user", Type: trace.ComponentUserMessage, TokenCount: 350},
		},
	}

	items := ItemsFromTrace(tr)
	if len(items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(items))
	}
	last := items[5]
	if last.ID != trace.UnusedID || !last.Unused || last.Weight != 113650 {
		t.Errorf("unexpected unused item: %+v", last)
	}

	// A full window gets no unused item.
	tr.TotalTokens = tr.ContextLimit
	if items := ItemsFromTrace(tr); len(items) != 5 {
		t.Errorf("full window should yield 5 items, got %d", len(items))
	}
}
