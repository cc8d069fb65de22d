package sink

import (
	"strings"
	"testing"

	"github.com/tokenlens/tokenlens/pkg/errors"
)

func TestRenderJSONRoundTrip(t *testing.T) {
	l := testLayout()

	data, err := RenderJSON(l, WithJSONStyle("brutalist"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	got, style, err := ReadLayout(data)
	if err != nil {
		t.Fatalf("ReadLayout: %v", err)
	}
	if style != "brutalist" {
		t.Errorf("expected style brutalist, got %q", style)
	}
	if got.Kind != l.Kind || got.Width != l.Width || got.Height != l.Height {
		t.Errorf("frame not preserved: %+v", got)
	}
	if len(got.Rects) != len(l.Rects) {
		t.Fatalf("expected %d blocks, got %d", len(l.Rects), len(got.Rects))
	}
	for i := range l.Rects {
		if got.Rects[i] != l.Rects[i] {
			t.Errorf("block %d changed in round trip:\n  want %+v\n  got  %+v", i, l.Rects[i], got.Rects[i])
		}
	}
}

func TestRenderJSONOmitsEmptyStyle(t *testing.T) {
	data, err := RenderJSON(testLayout())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if strings.Contains(string(data), `"style"`) {
		t.Error("style field should be omitted when unset")
	}
}

func TestReadLayoutRejectsMalformed(t *testing.T) {
	_, _, err := ReadLayout([]byte("{broken"))
	if err == nil {
		t.Fatal("expected error for malformed document")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidLayout {
		t.Errorf("expected invalid_layout code, got %q", errors.GetCode(err))
	}

	_, _, err = ReadLayout([]byte(`{"kind":"treemap","width":-10,"height":5,"blocks":[]}`))
	if err == nil {
		t.Fatal("expected error for negative dimensions")
	}
}
