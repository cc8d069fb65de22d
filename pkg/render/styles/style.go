// Package styles defines the visual appearance of rendered context maps.
package styles

import (
	"bytes"

	"github.com/tokenlens/tokenlens/pkg/errors"
	"github.com/tokenlens/tokenlens/pkg/trace"
)

// Style defines the visual appearance for context-map rendering.
// Implementations control how blocks and their labels are drawn.
type Style interface {
	// Name returns the style's registry name.
	Name() string
	// RenderDefs writes SVG <defs> content (filters, patterns, fonts).
	RenderDefs(buf *bytes.Buffer)
	// RenderBlock writes the SVG for a single block shape.
	RenderBlock(buf *bytes.Buffer, b Block)
	// RenderText writes the SVG for a block's label and token count.
	RenderText(buf *bytes.Buffer, b Block)
}

// Block contains all data needed to render a single context block.
type Block struct {
	ID         string              // Component identifier
	Label      string              // Display text (component type label)
	Type       trace.ComponentType // Component type, empty for unused capacity
	X, Y, W, H float64             // Position and dimensions
	CX, CY     float64             // Center coordinates (for text)
	Tokens     int                 // Token count
	Unused     bool                // Unused-capacity block styling
}

// New returns the style registered under name.
func New(name string) (Style, error) {
	switch name {
	case "brutalist":
		return Brutalist{}, nil
	case "plain":
		return Plain{}, nil
	default:
		return nil, errors.ValidateStyle(name)
	}
}

// Component fills, neo-brutalist palette. Unknown types fall back to the
// unused grey so nothing renders invisible.
var componentColors = map[trace.ComponentType]string{
	trace.ComponentSystemPrompt: "#FF6B00",
	trace.ComponentUserMessage:  "#0066FF",
	trace.ComponentChatHistory:  "#00BFFF",
	trace.ComponentRAG:          "#00AA55",
	trace.ComponentTool:         "#FFCC00",
	trace.ComponentExample:      "#AA44FF",
	trace.ComponentScratchpad:   "#00CCAA",
}

var textColors = map[trace.ComponentType]string{
	trace.ComponentSystemPrompt: "#000000",
	trace.ComponentUserMessage:  "#FFFFFF",
	trace.ComponentChatHistory:  "#000000",
	trace.ComponentRAG:          "#FFFFFF",
	trace.ComponentTool:         "#000000",
	trace.ComponentExample:      "#FFFFFF",
	trace.ComponentScratchpad:   "#000000",
}

const (
	unusedColor     = "#E0E0E0"
	unusedTextColor = "#888888"
)

// FillColor returns the block fill for a component type.
func FillColor(t trace.ComponentType, unused bool) string {
	if unused {
		return unusedColor
	}
	if c, ok := componentColors[t]; ok {
		return c
	}
	return unusedColor
}

// TextColor returns the label color for a component type.
func TextColor(t trace.ComponentType, unused bool) string {
	if unused {
		return unusedTextColor
	}
	if c, ok := textColors[t]; ok {
		return c
	}
	return unusedTextColor
}
