// Package sink provides output format renderers for context maps.
//
// A sink transforms a computed [layout.Layout] into a final output
// format: SVG for interactive viewing, JSON for data interchange, and
// PDF/PNG via rsvg-convert for documents and slides.
package sink

import (
	"bytes"
	"fmt"

	"github.com/tokenlens/tokenlens/pkg/layout"
	"github.com/tokenlens/tokenlens/pkg/render/styles"
)

const blockInteractionCSS = `
    .block { transition: stroke-width 0.15s ease; }
    .block:hover { stroke-width: 6; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style styles.Style
	title string
	scale float64
}

// WithStyle sets the visual style. Defaults to [styles.Brutalist].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithTitle adds a title bar above the map.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithSVGScale multiplies the output width/height attributes while keeping
// the viewBox, producing a larger on-screen rendering.
func WithSVGScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

const titleBarHeight = 28.0

// RenderSVG renders the layout as a standalone SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Brutalist{}, scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}

	offsetY := 0.0
	totalHeight := l.Height
	if r.title != "" {
		offsetY = titleBarHeight
		totalHeight += titleBarHeight
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, totalHeight, l.Width*r.scale, totalHeight*r.scale)

	r.style.RenderDefs(&buf)

	if r.title != "" {
		fmt.Fprintf(&buf,
			`  <text x="%.2f" y="%.2f" font-family="monospace" font-size="16" font-weight="bold" fill="#000000" text-anchor="middle">%s</text>`+"\n",
			l.Width/2, titleBarHeight*0.7, styles.EscapeXML(r.title))
	}

	blocks := buildBlocks(l, offsetY)
	for _, b := range blocks {
		r.style.RenderBlock(&buf, b)
	}
	for _, b := range blocks {
		r.style.RenderText(&buf, b)
	}

	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", blockInteractionCSS)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// buildBlocks converts layout rects into style blocks, shifting them down
// by offsetY to leave room for the title bar.
func buildBlocks(l layout.Layout, offsetY float64) []styles.Block {
	blocks := make([]styles.Block, 0, len(l.Rects))
	for _, rect := range l.Rects {
		blocks = append(blocks, styles.Block{
			ID:     rect.ID,
			Label:  blockLabel(rect),
			Type:   rect.Type,
			X:      rect.X,
			Y:      rect.Y + offsetY,
			W:      rect.Width,
			H:      rect.Height,
			CX:     rect.X + rect.Width/2,
			CY:     rect.Y + offsetY + rect.Height/2,
			Tokens: int(rect.Weight),
			Unused: rect.Unused,
		})
	}
	return blocks
}

func blockLabel(r layout.Rect) string {
	if r.Unused {
		return "Unused"
	}
	return r.Type.Label()
}
