package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 7.0
	fontSizeMax     = 22.0

	// Blocks smaller than this in either dimension get no label at all.
	minLabelWidth  = 24.0
	minLabelHeight = 12.0
)

// FontSize picks a label font size that fits the block.
func FontSize(b Block) float64 {
	n := max(1, len(b.Label))
	byHeight := b.H * fontHeightRatio
	byWidth := (b.W * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// FitsLabel reports whether the block is large enough to carry text.
func FitsLabel(b Block) bool {
	return b.W >= minLabelWidth && b.H >= minLabelHeight
}

// TruncateLabel shortens the label to what fits at the computed font size.
func TruncateLabel(b Block) string {
	charWidth := FontSize(b) * fontCharWidth
	maxChars := int(b.W * fontWidthRatio / charWidth)
	if maxChars < 3 {
		maxChars = 3
	}
	if len(b.Label) <= maxChars {
		return b.Label
	}
	return b.Label[:maxChars-2] + ".."
}

// FormatTokens renders a token count compactly (e.g. "113.7k").
func FormatTokens(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}

// EscapeXML escapes a string for embedding in SVG attributes and text.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
