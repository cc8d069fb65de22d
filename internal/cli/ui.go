package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tokenlens/tokenlens/pkg/trace"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// componentStyles maps component types to terminal colors, roughly
// matching the SVG palette.
var componentStyles = map[trace.ComponentType]lipgloss.Style{
	trace.ComponentSystemPrompt: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	trace.ComponentUserMessage:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	trace.ComponentChatHistory:  lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	trace.ComponentRAG:          lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
	trace.ComponentTool:         lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	trace.ComponentExample:      lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	trace.ComponentScratchpad:   lipgloss.NewStyle().Foreground(lipgloss.Color("43")),
}

// componentStyle returns the terminal style for a component type.
func componentStyle(t trace.ComponentType) lipgloss.Style {
	if s, ok := componentStyles[t]; ok {
		return s
	}
	return StyleDim
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints trace statistics on a single line.
func printStats(componentCount, blockCount int, cached bool) {
	var parts []string
	if componentCount > 0 {
		parts = append(parts, fmt.Sprintf("%d components", componentCount))
	}
	if blockCount > 0 {
		parts = append(parts, fmt.Sprintf("%d blocks", blockCount))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// printUtilization prints a one-line utilization bar for a trace.
func printUtilization(t *trace.ContextTrace) {
	const width = 30
	pct := t.Utilization()
	filled := int(pct / 100 * width)
	if filled > width {
		filled = width
	}

	bar := StyleNumber.Render(repeatRune('█', filled)) + StyleDim.Render(repeatRune('░', width-filled))
	fmt.Printf("  %s %s\n", bar,
		StyleDim.Render(fmt.Sprintf("%.1f%% of %d tokens", pct, t.ContextLimit)))
}

func repeatRune(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
