package analyze

import (
	"fmt"
	"sort"
)

// Apply rewrites text by splicing every correction's replacement into its
// span. Corrections are applied back-to-front (sorted by Start descending) so
// earlier offsets stay valid while later ones are rewritten.
//
// Corrections must not overlap — that is an invariant of [Analyzer.Analyze]
// output. Passing overlapping spans is a programmer error and panics.
func Apply(text string, corrections []Correction) string {
	if len(corrections) == 0 {
		return text
	}

	sorted := make([]Correction, len(corrections))
	copy(sorted, corrections)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start > sorted[j].Start
	})

	result := text
	prevStart := len(text) + 1
	for _, c := range sorted {
		if c.Start < 0 || c.End > len(text) || c.Start >= c.End {
			panic(fmt.Sprintf("analyze: correction span [%d,%d) out of range for text of length %d", c.Start, c.End, len(text)))
		}
		if c.End > prevStart {
			panic(fmt.Sprintf("analyze: overlapping correction spans at [%d,%d)", c.Start, c.End))
		}
		prevStart = c.Start

		result = result[:c.Start] + c.Replacement + result[c.End:]
	}
	return result
}
