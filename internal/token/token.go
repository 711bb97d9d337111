// Package token extracts word tokens with byte offsets from transcript text.
//
// Both the entity analyzer and the word-level diff engine operate on the same
// notion of a "word": a run of letters optionally containing a single interior
// apostrophe (so "don't" is one token but a trailing apostrophe is not
// consumed). Keeping the tokenizer in its own package guarantees the two
// consumers never drift apart.
package token

import "regexp"

// wordPattern matches one or more ASCII letters, optionally followed by a
// single apostrophe and more letters. The transcript correction engine is
// tuned for English orthography, so ASCII letter classes are intentional.
var wordPattern = regexp.MustCompile(`[A-Za-z]+(?:'[A-Za-z]+)?`)

// Word is a single tokenized word with its location in the source text.
type Word struct {
	// Text is the word exactly as it appears in the source, case preserved.
	Text string

	// Start and End are byte offsets into the source text such that
	// source[Start:End] == Text.
	Start int
	End   int

	// Index is the word's ordinal position among all tokens of the text,
	// starting at 0.
	Index int
}

// Words tokenizes text and returns every word with its offsets in order of
// appearance. Empty or letterless input yields an empty slice.
func Words(text string) []Word {
	locs := wordPattern.FindAllStringIndex(text, -1)
	words := make([]Word, 0, len(locs))
	for i, loc := range locs {
		words = append(words, Word{
			Text:  text[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
			Index: i,
		})
	}
	return words
}

// Texts returns just the word strings of ws, in order. Convenience for the
// diff engine, which aligns on words without offsets.
func Texts(ws []Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Text
	}
	return out
}
