package learn

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ashishact/ramblefix/internal/token"
)

// Match is one place in a text buffer where a stored correction applies.
type Match struct {
	// Correction is the stored mapping that matched.
	Correction Correction

	// Start and End are byte offsets of the matched original word.
	Start int
	End   int

	// ContextScore is the fraction of stored context words found around the
	// match, in [0, 1]. Corrections stored without context score 1.
	ContextScore float64

	// Score combines the stored confidence with how well the surrounding
	// words agree with the context captured when the correction was learned.
	Score float64
}

// Matcher finds stored corrections in new text.
type Matcher struct {
	store    Store
	minScore float64
}

// MatcherOption configures a [Matcher].
type MatcherOption func(*Matcher)

// WithMinScore sets the score below which matches are dropped.
// The default is 0.6.
func WithMinScore(min float64) MatcherOption {
	return func(m *Matcher) { m.minScore = min }
}

// NewMatcher creates a Matcher that reads corrections from store.
func NewMatcher(store Store, opts ...MatcherOption) *Matcher {
	m := &Matcher{store: store, minScore: 0.6}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// contextWeight is how much of the score depends on context agreement; the
// rest comes from the stored confidence alone, so a correction still fires in
// an unfamiliar sentence once it has been confirmed enough times.
const contextWeight = 0.4

// MatchText scans text for words that equal a stored original
// (case-insensitive) and scores each occurrence. Matches are returned in
// text order and never overlap.
func (m *Matcher) MatchText(ctx context.Context, text string) ([]Match, error) {
	stored, err := m.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("learn: match text: %w", err)
	}
	if len(stored) == 0 {
		return nil, nil
	}

	words := token.Words(text)
	var matches []Match
	for i, w := range words {
		best, ok := m.bestFor(stored, words, i)
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Correction:   best.c,
			Start:        w.Start,
			End:          w.End,
			ContextScore: best.contextScore,
			Score:        best.score,
		})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Start < matches[j].Start })
	return matches, nil
}

type scored struct {
	c            Correction
	contextScore float64
	score        float64
}

// bestFor returns the highest-scoring stored correction for the word at
// index i, if any clears the minimum score.
func (m *Matcher) bestFor(stored []Correction, words []token.Word, i int) (scored, bool) {
	var best scored
	found := false
	for _, c := range stored {
		if !strings.EqualFold(words[i].Text, c.Original) {
			continue
		}
		cs := contextScore(c, words, i)
		score := c.Confidence * ((1 - contextWeight) + contextWeight*cs)
		if score < m.minScore {
			continue
		}
		if !found || score > best.score {
			best = scored{c: c, contextScore: cs, score: score}
			found = true
		}
	}
	return best, found
}

// contextScore measures agreement between the stored context and the words
// actually surrounding position i, as the fraction of stored context words
// present on the matching side. A correction stored without context scores a
// neutral 1.
func contextScore(c Correction, words []token.Word, i int) float64 {
	total := len(c.LeftContext) + len(c.RightContext)
	if total == 0 {
		return 1
	}

	hits := 0
	for _, want := range c.LeftContext {
		for j := max(0, i-len(c.LeftContext)); j < i; j++ {
			if strings.EqualFold(words[j].Text, want) {
				hits++
				break
			}
		}
	}
	for _, want := range c.RightContext {
		for j := i + 1; j < min(len(words), i+1+len(c.RightContext)); j++ {
			if strings.EqualFold(words[j].Text, want) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(total)
}
