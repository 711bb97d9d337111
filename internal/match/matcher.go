package match

import (
	"sort"
	"strings"

	"github.com/ashishact/ramblefix/internal/entity"
)

// EntityMatch is one ranked candidate for replacing a misheard word or phrase.
type EntityMatch struct {
	// EntityName is the canonical name that a correction would insert.
	EntityName string

	// EntityType is the catalog type of the matched entity.
	EntityType entity.Type

	// MatchedAs is the name or alias whose similarity won; it may differ
	// from EntityName when an alias matched.
	MatchedAs string

	// Similarity is the [WordSimilarity] or [PhraseSimilarity] score in [0, 1].
	Similarity float64
}

// FindEntityMatches ranks all catalog entries against a single word.
//
// Every entity contributes one candidate per name or alias whose similarity
// reaches minSimilarity. Candidates that are case-insensitive-identical to
// word are skipped — proposing a "fix" that changes nothing but case or
// whitespace is never useful. Results are sorted by descending similarity.
func FindEntityMatches(word string, entities []entity.Record, minSimilarity float64) []EntityMatch {
	return findMatches(word, entities, minSimilarity, WordSimilarity)
}

// FindPhraseMatches is the multi-word counterpart of [FindEntityMatches],
// scoring with [PhraseSimilarity]. Candidates whose word count differs from
// the phrase score zero and drop out naturally.
func FindPhraseMatches(phrase string, entities []entity.Record, minSimilarity float64) []EntityMatch {
	return findMatches(phrase, entities, minSimilarity, PhraseSimilarity)
}

func findMatches(text string, entities []entity.Record, minSimilarity float64, score func(a, b string) float64) []EntityMatch {
	var matches []EntityMatch

	for _, rec := range entities {
		for _, candidate := range append([]string{rec.Name}, rec.Aliases...) {
			if strings.EqualFold(text, candidate) {
				// Already correct; nothing to fix.
				continue
			}
			s := score(text, candidate)
			if s < minSimilarity {
				continue
			}
			matches = append(matches, EntityMatch{
				EntityName: rec.Name,
				EntityType: rec.Type,
				MatchedAs:  candidate,
				Similarity: s,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}
