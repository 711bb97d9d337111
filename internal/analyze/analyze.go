// Package analyze turns a transcript buffer and an entity catalog into a list
// of position-anchored corrections.
//
// The analyzer runs two passes over the tokenized text: a multi-word pass
// that slides phrase windows (longest entities first) and a single-word pass
// for the remaining tokens. Spans that already contain a correct entity name
// or alias are protected from both passes. Each call is pure — the analyzer
// holds only its configured thresholds and is safe for concurrent use.
package analyze

import (
	"sort"
	"strings"

	"github.com/ashishact/ramblefix/internal/entity"
	"github.com/ashishact/ramblefix/internal/match"
	"github.com/ashishact/ramblefix/internal/token"
)

const (
	defaultMinSimilarity = 0.65
	defaultMinWordLength = 3
)

// Correction is a single proposed replacement anchored to the source text.
// Invariants: 0 <= Start < End <= len(source), and corrections produced by
// one [Analyzer.Analyze] call never overlap.
type Correction struct {
	// Original is the source substring to be replaced, source[Start:End].
	Original string

	// Replacement is the canonical entity name to insert.
	Replacement string

	// MatchedAs is the entity name or alias that produced the match.
	MatchedAs string

	// Start and End are byte offsets into the source text.
	Start int
	End   int

	// EntityType is the catalog type of the matched entity.
	EntityType entity.Type

	// Similarity is the match score in [0, 1].
	Similarity float64
}

// Option is a functional option for configuring an [Analyzer].
type Option func(*Analyzer)

// WithMinSimilarity sets the minimum similarity a candidate must reach to be
// proposed as a correction. Default: 0.65. A value of 1.0 effectively
// disables fuzzy matching.
func WithMinSimilarity(min float64) Option {
	return func(a *Analyzer) {
		a.minSimilarity = min
	}
}

// WithMinWordLength sets the minimum token length considered by the
// single-word pass. Default: 3. Shorter tokens ("a", "is") produce too many
// false positives to be worth matching.
func WithMinWordLength(min int) Option {
	return func(a *Analyzer) {
		a.minWordLength = min
	}
}

// Analyzer proposes entity corrections for transcript text.
// All methods are safe for concurrent use — the Analyzer is read-only after
// construction.
type Analyzer struct {
	minSimilarity float64
	minWordLength int
}

// New returns an [Analyzer] configured with the supplied options.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		minSimilarity: defaultMinSimilarity,
		minWordLength: defaultMinWordLength,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze proposes corrections for text against the given catalog snapshot.
// The result is ordered by Start ascending and never contains overlapping
// spans. Empty text or an empty catalog yields an empty result.
func (a *Analyzer) Analyze(text string, entities []entity.Record) []Correction {
	if text == "" || len(entities) == 0 {
		return nil
	}

	protected := protectedRegions(text, entities)
	words := token.Words(text)
	if len(words) == 0 {
		return nil
	}

	single, multi := partition(entities)

	var corrections []Correction
	consumed := make(map[int]bool, len(words))

	corrections = append(corrections, a.multiWordPass(text, words, multi, protected, consumed)...)
	corrections = append(corrections, a.singleWordPass(words, single, protected, consumed)...)

	sort.Slice(corrections, func(i, j int) bool {
		return corrections[i].Start < corrections[j].Start
	})
	return corrections
}

// multiWordPass slides phrase windows over the token stream, longest phrase
// length first so that "Charan Tandi" wins over a shorter "Charan" match on
// the same tokens. Matched token indices are recorded in consumed.
func (a *Analyzer) multiWordPass(
	text string,
	words []token.Word,
	multi []entity.Record,
	protected []Region,
	consumed map[int]bool,
) []Correction {
	byCount := groupByWordCount(multi)

	// Descending window width.
	var widths []int
	for n := range byCount {
		widths = append(widths, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(widths)))

	var corrections []Correction
	for _, width := range widths {
		group := byCount[width]
		for i := 0; i+width <= len(words); i++ {
			window := words[i : i+width]
			if anyConsumed(consumed, i, width) {
				continue
			}
			start, end := window[0].Start, window[width-1].End
			if overlapsAny(protected, start, end) {
				continue
			}

			phrase := joinWords(window)
			matches := match.FindPhraseMatches(phrase, group, a.minSimilarity)
			if len(matches) == 0 {
				continue
			}

			best := matches[0]
			corrections = append(corrections, Correction{
				Original:    text[start:end],
				Replacement: best.EntityName,
				MatchedAs:   best.MatchedAs,
				Start:       start,
				End:         end,
				EntityType:  best.EntityType,
				Similarity:  best.Similarity,
			})
			for j := i; j < i+width; j++ {
				consumed[j] = true
			}
		}
	}
	return corrections
}

// singleWordPass matches every remaining token of sufficient length against
// the single-word entities.
func (a *Analyzer) singleWordPass(
	words []token.Word,
	single []entity.Record,
	protected []Region,
	consumed map[int]bool,
) []Correction {
	var corrections []Correction
	for _, w := range words {
		if consumed[w.Index] {
			continue
		}
		if len(w.Text) < a.minWordLength {
			continue
		}
		if overlapsAny(protected, w.Start, w.End) {
			continue
		}

		matches := match.FindEntityMatches(w.Text, single, a.minSimilarity)
		if len(matches) == 0 {
			continue
		}

		best := matches[0]
		corrections = append(corrections, Correction{
			Original:    w.Text,
			Replacement: best.EntityName,
			MatchedAs:   best.MatchedAs,
			Start:       w.Start,
			End:         w.End,
			EntityType:  best.EntityType,
			Similarity:  best.Similarity,
		})
	}
	return corrections
}

// partition splits the catalog into single-word and multi-word entities by
// their canonical name, filtering each record's aliases to the same class so
// a single-word entity never gets credit for a multi-word alias and vice
// versa.
func partition(entities []entity.Record) (single, multi []entity.Record) {
	for _, rec := range entities {
		filtered := rec
		filtered.Aliases = filterAliases(rec.Aliases, rec.MultiWord())
		if rec.MultiWord() {
			multi = append(multi, filtered)
		} else {
			single = append(single, filtered)
		}
	}
	return single, multi
}

// filterAliases keeps only aliases in the same word-count class as the
// canonical name.
func filterAliases(aliases []string, multiWord bool) []string {
	var kept []string
	for _, a := range aliases {
		if (len(strings.Fields(a)) > 1) == multiWord {
			kept = append(kept, a)
		}
	}
	return kept
}

// groupByWordCount buckets multi-word entities by the word count of their
// canonical name.
func groupByWordCount(multi []entity.Record) map[int][]entity.Record {
	groups := make(map[int][]entity.Record)
	for _, rec := range multi {
		n := len(strings.Fields(rec.Name))
		groups[n] = append(groups[n], rec)
	}
	return groups
}

// anyConsumed reports whether any token index in [start, start+width) was
// already claimed by an earlier phrase match.
func anyConsumed(consumed map[int]bool, start, width int) bool {
	for j := start; j < start+width; j++ {
		if consumed[j] {
			return true
		}
	}
	return false
}

// joinWords renders a token window as a space-joined phrase for scoring.
func joinWords(window []token.Word) string {
	parts := make([]string, len(window))
	for i, w := range window {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}
