package styles

import (
	"bytes"
	"fmt"
)

// Brutalist is the default style: saturated component fills, heavy black
// strokes, and a hard offset shadow under every block.
type Brutalist struct{}

const (
	brutalistStroke = 4.0
	brutalistShadow = 3.0
)

func (Brutalist) Name() string { return "brutalist" }

// RenderDefs writes the shadow filter shared by all blocks.
func (Brutalist) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <filter id="hard-shadow" x="-20%" y="-20%" width="150%" height="150%">` + "\n")
	fmt.Fprintf(buf, `      <feDropShadow dx="%.0f" dy="%.0f" stdDeviation="0" flood-color="#000000"/>`+"\n",
		brutalistShadow, brutalistShadow)
	buf.WriteString("    </filter>\n")
	buf.WriteString("  </defs>\n")
}

func (Brutalist) RenderBlock(buf *bytes.Buffer, b Block) {
	fmt.Fprintf(buf,
		`  <rect id="block-%s" class="block" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#000000" stroke-width="%.1f" filter="url(#hard-shadow)"/>`+"\n",
		EscapeXML(b.ID), b.X, b.Y, b.W, b.H, FillColor(b.Type, b.Unused), brutalistStroke)
}

func (Brutalist) RenderText(buf *bytes.Buffer, b Block) {
	if !FitsLabel(b) {
		return
	}

	size := FontSize(b)
	color := TextColor(b.Type, b.Unused)
	label := TruncateLabel(b)

	// Two lines when there is room for a token count under the label.
	if b.H >= size*2.6 {
		fmt.Fprintf(buf,
			`  <text x="%.2f" y="%.2f" font-family="monospace" font-size="%.1f" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`+"\n",
			b.CX, b.CY-size*0.3, size, color, EscapeXML(label))
		fmt.Fprintf(buf,
			`  <text x="%.2f" y="%.2f" font-family="monospace" font-size="%.1f" fill="%s" text-anchor="middle">%s</text>`+"\n",
			b.CX, b.CY+size*0.9, size*0.8, color, FormatTokens(b.Tokens))
		return
	}

	fmt.Fprintf(buf,
		`  <text x="%.2f" y="%.2f" font-family="monospace" font-size="%.1f" font-weight="bold" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		b.CX, b.CY, size, color, EscapeXML(label))
}
