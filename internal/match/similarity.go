// Package match scores and ranks catalog entities against misheard words and
// phrases from speech-to-text output.
//
// Scoring combines two signals: phonetic compatibility (package phonetic) and
// normalized Levenshtein edit distance. Phonetic agreement is weighted above
// spelling closeness because transcripts come from a speech recognizer —
// spelling is unreliable, sound is the more trustworthy signal.
package match

import (
	"strings"
	"unicode/utf8"

	"github.com/ashishact/ramblefix/internal/phonetic"
)

// EditDistance returns the classic Levenshtein distance between a and b with
// unit costs for insert, delete, and substitute. The comparison is
// case-insensitive and operates on runes.
func EditDistance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	m, n := len(ra), len(rb)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// Full (m+1)×(n+1) table. Transcript words are short, so the quadratic
	// cost is negligible and the table keeps the backing code obvious.
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			dp[i][j] = minOf(
				dp[i-1][j]+1,      // delete
				dp[i][j-1]+1,      // insert
				dp[i-1][j-1]+cost, // substitute or match
			)
		}
	}
	return dp[m][n]
}

// WordSimilarity scores how likely a and b are the same spoken word, in
// [0, 1]. Exact case-insensitive equality scores 1.0. Otherwise the phonetic
// and edit-distance signals are combined in tiers:
//
//	phonetic match and edit score > 0.5 → 0.9 + 0.1·edit
//	phonetic match                      → 0.7 + 0.2·edit
//	edit score > 0.7                    → 0.8·edit
//	otherwise                           → 0.5·edit
func WordSimilarity(a, b string) float64 {
	if strings.EqualFold(a, b) {
		return 1.0
	}

	phoneticMatch := phonetic.Encode(a).CompatibleWith(phonetic.Encode(b))

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	editScore := 0.0
	if maxLen > 0 {
		editScore = 1 - float64(EditDistance(a, b))/float64(maxLen)
	}

	switch {
	case phoneticMatch && editScore > 0.5:
		return 0.9 + 0.1*editScore
	case phoneticMatch:
		return 0.7 + 0.2*editScore
	case editScore > 0.7:
		return 0.8 * editScore
	default:
		return 0.5 * editScore
	}
}

// PhraseSimilarity scores two whitespace-delimited phrases. Phrases with
// different word counts score zero; otherwise the result is the mean of the
// per-position [WordSimilarity].
func PhraseSimilarity(a, b string) float64 {
	wa := strings.Fields(a)
	wb := strings.Fields(b)
	if len(wa) != len(wb) || len(wa) == 0 {
		return 0
	}

	total := 0.0
	for i := range wa {
		total += WordSimilarity(wa[i], wb[i])
	}
	return total / float64(len(wa))
}

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
