// Package review drives the correction workflow around a human in the loop:
// it proposes corrections for a transcript buffer and learns from what the
// user actually submits.
//
// Learned corrections take priority. A span covered by a stored correction is
// never re-offered from the entity catalog, so a user who has confirmed
// "jon" -> "John" once stops seeing competing catalog guesses for it.
package review

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ashishact/ramblefix/internal/analyze"
	"github.com/ashishact/ramblefix/internal/entity"
	"github.com/ashishact/ramblefix/internal/learn"
	"github.com/ashishact/ramblefix/internal/observe"
	"github.com/ashishact/ramblefix/internal/worddiff"
)

// Source identifies where a suggestion came from.
type Source string

const (
	// SourceLearned marks suggestions replayed from the learn store.
	SourceLearned Source = "learned"

	// SourceEntity marks fresh matches against the entity catalog.
	SourceEntity Source = "entity"
)

// Suggestion is one proposed correction presented for review.
type Suggestion struct {
	Correction analyze.Correction

	// Source tells the caller whether this came from the learn store or
	// from catalog matching.
	Source Source

	// ContextScore is the learned-context agreement in [0, 1]; always 1 for
	// catalog suggestions, which carry no stored context.
	ContextScore float64

	// Confidence is the stored confidence for learned suggestions and the
	// match similarity for catalog suggestions.
	Confidence float64
}

// Reviewer combines the analyzer, the differ, and the learn store into the
// two operations a front end needs: Suggest and Accept. All collaborators are
// injected; the Reviewer itself holds no mutable state and is safe for
// concurrent use.
type Reviewer struct {
	analyzer *analyze.Analyzer
	differ   *worddiff.Differ
	matcher  *learn.Matcher
	store    learn.Store
	metrics  *observe.Metrics

	matcherOpts []learn.MatcherOption
}

// Option configures a [Reviewer].
type Option func(*Reviewer)

// WithMinScore sets the score floor below which stored corrections are not
// replayed by Suggest.
func WithMinScore(min float64) Option {
	return func(r *Reviewer) {
		r.matcherOpts = append(r.matcherOpts, learn.WithMinScore(min))
	}
}

// New creates a Reviewer. A nil metrics falls back to
// [observe.DefaultMetrics].
func New(analyzer *analyze.Analyzer, differ *worddiff.Differ, store learn.Store, metrics *observe.Metrics, opts ...Option) *Reviewer {
	if metrics == nil {
		metrics = observe.DefaultMetrics()
	}
	r := &Reviewer{
		analyzer: analyzer,
		differ:   differ,
		store:    store,
		metrics:  metrics,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.matcher = learn.NewMatcher(store, r.matcherOpts...)
	return r
}

// Suggest proposes corrections for text. Stored corrections are matched
// first; catalog analysis then fills in only the spans the learn store did
// not claim. The result is ordered by start offset and never overlaps.
func (r *Reviewer) Suggest(ctx context.Context, text string, entities []entity.Record) ([]Suggestion, error) {
	start := time.Now()
	defer func() {
		r.metrics.AnalyzeDuration.Record(ctx, time.Since(start).Seconds())
	}()

	learned, err := r.matcher.MatchText(ctx, text)
	if err != nil {
		return nil, err
	}

	var suggestions []Suggestion
	for _, m := range learned {
		suggestions = append(suggestions, Suggestion{
			Correction: analyze.Correction{
				Original:    text[m.Start:m.End],
				Replacement: m.Correction.Corrected,
				MatchedAs:   m.Correction.Original,
				Start:       m.Start,
				End:         m.End,
				Similarity:  m.Score,
			},
			Source:       SourceLearned,
			ContextScore: m.ContextScore,
			Confidence:   m.Correction.Confidence,
		})
		r.metrics.RecordSuggestion(ctx, string(SourceLearned))
	}

	for _, c := range r.analyzer.Analyze(text, entities) {
		if coveredByLearned(c, learned) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Correction:   c,
			Source:       SourceEntity,
			ContextScore: 1,
			Confidence:   c.Similarity,
		})
		r.metrics.RecordSuggestion(ctx, string(SourceEntity))
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Correction.Start < suggestions[j].Correction.Start
	})
	return suggestions, nil
}

// Apply splices the suggestions into text and returns the corrected result.
// The number of applied corrections is counted for observability.
func (r *Reviewer) Apply(ctx context.Context, text string, suggestions []Suggestion) string {
	if len(suggestions) == 0 {
		return text
	}
	corrections := make([]analyze.Correction, len(suggestions))
	for i, s := range suggestions {
		corrections[i] = s.Correction
	}
	out := analyze.Apply(text, corrections)
	r.metrics.CorrectionsApplied.Add(ctx, int64(len(corrections)))
	return out
}

// Accept diffs what the user submitted against what was shown and persists
// every detected change. It returns the changes alongside any save errors so
// the caller can still display what was learned when a backend write fails.
func (r *Reviewer) Accept(ctx context.Context, shownText, submittedText string) ([]worddiff.Change, error) {
	start := time.Now()
	changes := r.differ.Compare(shownText, submittedText)
	r.metrics.DiffDuration.Record(ctx, time.Since(start).Seconds())

	var errs []error
	for _, ch := range changes {
		err := r.store.Save(ctx, learn.Correction{
			Original:     ch.Original,
			Corrected:    ch.Corrected,
			LeftContext:  ch.LeftContext,
			RightContext: ch.RightContext,
		})
		if err != nil {
			r.metrics.RecordLearnedSave(ctx, "error")
			errs = append(errs, err)
			continue
		}
		r.metrics.RecordLearnedSave(ctx, "ok")
	}
	return changes, errors.Join(errs...)
}

// coveredByLearned reports whether a catalog correction overlaps any learned
// match span.
func coveredByLearned(c analyze.Correction, learned []learn.Match) bool {
	for _, m := range learned {
		if c.Start < m.End && m.Start < c.End {
			return true
		}
	}
	return false
}
