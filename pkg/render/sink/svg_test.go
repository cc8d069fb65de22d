package sink

import (
	"strings"
	"testing"

	"github.com/tokenlens/tokenlens/pkg/layout"
	"github.com/tokenlens/tokenlens/pkg/render/styles"
	"github.com/tokenlens/tokenlens/pkg/trace"
)

func testLayout() layout.Layout {
	items := []layout.Item{
		{ID: "sys", Type: trace.ComponentSystemPrompt, Weight: 2000},
		{ID: "rag1", Type: trace.ComponentRAG, Weight: 8000},
		{ID: trace.UnusedID, Weight: 113650, Unused: true},
	}
	return layout.Treemap(items, 100, 268)
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="0 0 100.0 268.0"`,
		`id="block-sys"`,
		`id="block-rag1"`,
		`id="block-_unused"`,
		`id="hard-shadow"`,
		`</svg>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGPlainStyle(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithStyle(styles.Plain{})))

	if strings.Contains(svg, "hard-shadow") {
		t.Error("plain style should not emit the shadow filter")
	}
	if !strings.Contains(svg, `stroke="#333"`) {
		t.Error("plain style strokes missing")
	}
}

func TestRenderSVGTitle(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithTitle("Context <map>")))

	if !strings.Contains(svg, "Context &lt;map&gt;") {
		t.Error("title missing or unescaped")
	}
	// Title bar adds height to the frame.
	if !strings.Contains(svg, `viewBox="0 0 100.0 296.0"`) {
		t.Errorf("title bar height not reflected in viewBox:\n%s", svg[:200])
	}
}

func TestRenderSVGScale(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithSVGScale(4)))

	if !strings.Contains(svg, `width="400" height="1072"`) {
		t.Errorf("scaled dimensions missing:\n%s", svg[:200])
	}
	if !strings.Contains(svg, `viewBox="0 0 100.0 268.0"`) {
		t.Error("viewBox should be unscaled")
	}
}

func TestRenderSVGUnusedLabel(t *testing.T) {
	l := layout.Treemap([]layout.Item{{ID: trace.UnusedID, Weight: 1000, Unused: true}}, 300, 200)
	svg := string(RenderSVG(l))
	if !strings.Contains(svg, ">Unused<") {
		t.Error("unused block should be labeled Unused")
	}
}
