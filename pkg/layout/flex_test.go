package layout

import (
	"testing"

	"github.com/tokenlens/tokenlens/pkg/trace"
)

func TestFlex(t *testing.T) {
	items := []Item{
		{ID: "sys", Type: trace.ComponentSystemPrompt, Weight: 2000},
		{ID: "user", Type: trace.ComponentUserMessage, Weight: 350},
		{ID: "tiny", Type: trace.ComponentTool, Weight: 12},
		{ID: trace.UnusedID, Weight: 113650, Unused: true},
	}

	out := Flex(items)
	if len(out) != len(items) {
		t.Fatalf("expected %d flex items, got %d", len(items), len(out))
	}

	want := []float64{2.0, 0.35, 0.3, 113.65}
	for i, f := range out {
		if f.ID != items[i].ID {
			t.Errorf("item %d: order not preserved, got %q", i, f.ID)
		}
		if f.Flex != want[i] {
			t.Errorf("item %q: expected flex %g, got %g", f.ID, want[i], f.Flex)
		}
	}
}

func TestFlexMinimumFloor(t *testing.T) {
	out := Flex([]Item{{ID: "zero"}})
	if out[0].Flex != DefaultFlexMin {
		t.Errorf("zero-weight item should floor at %g, got %g", DefaultFlexMin, out[0].Flex)
	}
}

func TestFlexEmpty(t *testing.T) {
	if out := Flex(nil); len(out) != 0 {
		t.Errorf("expected no flex items, got %d", len(out))
	}
}
