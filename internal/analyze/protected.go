package analyze

import (
	"strings"

	"github.com/ashishact/ramblefix/internal/entity"
)

// Region is a half-open span [Start, End) of the source text that already
// contains a correct entity name or alias. The analyzer never proposes a
// correction overlapping a protected region.
type Region struct {
	Start int
	End   int
}

// Overlaps reports whether [start, end) intersects the region.
func (r Region) Overlaps(start, end int) bool {
	return start < r.End && end > r.Start
}

// protectedRegions finds every case-insensitive literal occurrence of any
// entity name or alias in text.
//
// Occurrences are scanned left to right; after a hit the scan resumes
// immediately past the match's end. Overlapping shorter matches of a
// different alias starting inside a found span are not re-examined — a known
// limitation kept for compatibility with the original behaviour, which can
// under-protect adversarial catalogs with overlapping aliases.
func protectedRegions(text string, entities []entity.Record) []Region {
	var regions []Region

	for _, rec := range entities {
		for _, needle := range append([]string{rec.Name}, rec.Aliases...) {
			if needle == "" {
				continue
			}
			pos := 0
			for {
				idx := indexFold(text, needle, pos)
				if idx < 0 {
					break
				}
				regions = append(regions, Region{Start: idx, End: idx + len(needle)})
				pos = idx + len(needle)
			}
		}
	}
	return regions
}

// indexFold returns the byte offset of the first case-insensitive occurrence
// of needle in text at or after pos, or -1. Offsets are taken against the
// original text, never a lowered copy, because case folding can change byte
// length for some characters. Only occurrences of the same byte length as
// needle are found.
func indexFold(text, needle string, pos int) int {
	n := len(needle)
	for i := pos; i+n <= len(text); i++ {
		if strings.EqualFold(text[i:i+n], needle) {
			return i
		}
	}
	return -1
}

// overlapsAny reports whether [start, end) intersects any region.
func overlapsAny(regions []Region, start, end int) bool {
	for _, r := range regions {
		if r.Overlaps(start, end) {
			return true
		}
	}
	return false
}
