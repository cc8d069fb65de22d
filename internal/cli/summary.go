package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tokenlens/tokenlens/pkg/trace"
)

// summaryCommand creates the summary command for inspecting a trace.
func (c *CLI) summaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [trace.json]",
		Short: "Print a per-type token breakdown of a trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := trace.ImportFile(args[0])
			if err != nil {
				return fmt.Errorf("load trace %s: %w", args[0], err)
			}
			printSummary(t)
			return nil
		},
	}
}

// typeTotal pairs a component type with its aggregated token count.
type typeTotal struct {
	Type   trace.ComponentType
	Tokens int
	Count  int
}

// summarizeByType aggregates the trace's components per type, sorted by
// descending token count.
func summarizeByType(t *trace.ContextTrace) []typeTotal {
	totals := make(map[trace.ComponentType]*typeTotal)
	for _, comp := range t.Components {
		tt, ok := totals[comp.Type]
		if !ok {
			tt = &typeTotal{Type: comp.Type}
			totals[comp.Type] = tt
		}
		tt.Tokens += comp.TokenCount
		tt.Count++
	}

	out := make([]typeTotal, 0, len(totals))
	for _, tt := range totals {
		out = append(out, *tt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tokens != out[j].Tokens {
			return out[i].Tokens > out[j].Tokens
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// printSummary renders the breakdown table and utilization bar.
func printSummary(t *trace.ContextTrace) {
	title := "Context window"
	if t.Call != nil && t.Call.Model != "" {
		title = t.Call.Model
	}
	fmt.Println(StyleTitle.Render(title))
	printNewline()

	for _, tt := range summarizeByType(t) {
		label := componentStyle(tt.Type).Render(fmt.Sprintf("%-12s", tt.Type.Label()))
		count := ""
		if tt.Count > 1 {
			count = StyleDim.Render(fmt.Sprintf(" (%d components)", tt.Count))
		}
		pct := 0.0
		if t.ContextLimit > 0 {
			pct = float64(tt.Tokens) / float64(t.ContextLimit) * 100
		}
		fmt.Printf("  %s %s %s%s\n",
			label,
			StyleNumber.Render(fmt.Sprintf("%8d", tt.Tokens)),
			StyleDim.Render(fmt.Sprintf("%5.1f%%", pct)),
			count)
	}

	if unused := t.UnusedTokens(); unused > 0 {
		pct := float64(unused) / float64(t.ContextLimit) * 100
		fmt.Printf("  %s %s %s\n",
			StyleDim.Render(fmt.Sprintf("%-12s", "Unused")),
			StyleNumber.Render(fmt.Sprintf("%8d", unused)),
			StyleDim.Render(fmt.Sprintf("%5.1f%%", pct)))
	}

	printNewline()
	printUtilization(t)
}
