package trace

import (
	"fmt"
	"sort"
	"strings"
)

// Diff compares two context traces, typically before and after a
// compaction or editing pass.
type Diff struct {
	Before *ContextTrace
	After  *ContextTrace

	BeforeLabel string
	AfterLabel  string
}

// NewDiff creates a diff with the default "Before"/"After" labels.
func NewDiff(before, after *ContextTrace) *Diff {
	return &Diff{
		Before:      before,
		After:       after,
		BeforeLabel: "Before",
		AfterLabel:  "After",
	}
}

// TypeDelta is the token change for a single component type.
type TypeDelta struct {
	Type   ComponentType
	Before int
	After  int
}

// Change returns the token delta (after minus before).
func (d TypeDelta) Change() int { return d.After - d.Before }

// Deltas returns per-type token changes, sorted by type name.
// Types absent from one side appear with a zero count for that side.
func (d *Diff) Deltas() []TypeDelta {
	before := groupByType(d.Before)
	after := groupByType(d.After)

	types := make(map[ComponentType]struct{})
	for ct := range before {
		types[ct] = struct{}{}
	}
	for ct := range after {
		types[ct] = struct{}{}
	}

	out := make([]TypeDelta, 0, len(types))
	for ct := range types {
		out = append(out, TypeDelta{Type: ct, Before: before[ct], After: after[ct]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Saved returns the total tokens saved (positive when the after trace is
// smaller).
func (d *Diff) Saved() int {
	return d.Before.TotalTokens - d.After.TotalTokens
}

// Summary renders a plain-text comparison table of per-type token counts
// with a totals row and, when tokens were saved, a reduction line.
func (d *Diff) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-20s %10s %10s %10s\n", "Component", d.BeforeLabel, d.AfterLabel, "Change")
	b.WriteString(strings.Repeat("-", 52))
	b.WriteString("\n")

	for _, delta := range d.Deltas() {
		var pct string
		switch {
		case delta.Before > 0:
			pct = fmt.Sprintf("%+.0f%%", float64(delta.Change())/float64(delta.Before)*100)
		case delta.After > 0:
			pct = "new"
		default:
			pct = "-"
		}
		fmt.Fprintf(&b, "%-20s %10d %10d %10s\n", delta.Type.Label(), delta.Before, delta.After, pct)
	}

	b.WriteString(strings.Repeat("-", 52))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-20s %10d %10d %+10d\n",
		"Total", d.Before.TotalTokens, d.After.TotalTokens, -d.Saved())

	if saved := d.Saved(); saved > 0 && d.Before.TotalTokens > 0 {
		fmt.Fprintf(&b, "\nSaved %d tokens (%.1f%% reduction)\n",
			saved, float64(saved)/float64(d.Before.TotalTokens)*100)
	}

	return b.String()
}

// groupByType sums token counts per component type.
func groupByType(t *ContextTrace) map[ComponentType]int {
	groups := make(map[ComponentType]int)
	for _, c := range t.Components {
		groups[c.Type] += c.TokenCount
	}
	return groups
}
