package styles

import (
	"bytes"
	"fmt"
)

// Plain is a minimal style with thin strokes and no effects, suitable for
// embedding in documents.
type Plain struct{}

func (Plain) Name() string { return "plain" }

// RenderDefs writes nothing; the plain style needs no defs.
func (Plain) RenderDefs(*bytes.Buffer) {}

func (Plain) RenderBlock(buf *bytes.Buffer, b Block) {
	fmt.Fprintf(buf,
		`  <rect id="block-%s" class="block" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#333" stroke-width="1"/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H, FillColor(b.Type, b.Unused))
}

func (Plain) RenderText(buf *bytes.Buffer, b Block) {
	if !FitsLabel(b) {
		return
	}
	fmt.Fprintf(buf,
		`  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		b.CX, b.CY, FontSize(b), TextColor(b.Type, b.Unused), EscapeXML(TruncateLabel(b)))
}
