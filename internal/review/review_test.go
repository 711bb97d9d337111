package review_test

import (
	"context"
	"path/filepath"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/ashishact/ramblefix/internal/analyze"
	"github.com/ashishact/ramblefix/internal/entity"
	"github.com/ashishact/ramblefix/internal/learn"
	"github.com/ashishact/ramblefix/internal/observe"
	"github.com/ashishact/ramblefix/internal/review"
	"github.com/ashishact/ramblefix/internal/worddiff"
)

func newReviewer(t *testing.T) (*review.Reviewer, *learn.FileStore) {
	t.Helper()

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	store := learn.NewFileStore(filepath.Join(t.TempDir(), "corrections.jsonl"))
	return review.New(analyze.New(), worddiff.New(), store, metrics), store
}

func TestSuggest_EntityOnly(t *testing.T) {
	t.Parallel()

	r, _ := newReviewer(t)
	catalog := []entity.Record{{Name: "John", Type: entity.TypePerson}}

	got, err := r.Suggest(context.Background(), "I saw jon yesterday", catalog)
	if err != nil {
		t.Fatalf("Suggest() unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Suggest() = %+v, want one suggestion", got)
	}
	s := got[0]
	if s.Source != review.SourceEntity {
		t.Errorf("Source = %q, want entity", s.Source)
	}
	if s.Correction.Original != "jon" || s.Correction.Replacement != "John" {
		t.Errorf("correction = %q -> %q, want jon -> John", s.Correction.Original, s.Correction.Replacement)
	}
	if s.Confidence != s.Correction.Similarity {
		t.Errorf("Confidence = %g, want match similarity %g", s.Confidence, s.Correction.Similarity)
	}
}

func TestSuggest_LearnedTakesPriority(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r, store := newReviewer(t)
	catalog := []entity.Record{{Name: "John", Type: entity.TypePerson}}

	// The user previously confirmed a different expansion of "jon". The
	// catalog match for the same span must be suppressed.
	if err := store.Save(ctx, learn.Correction{Original: "jon", Corrected: "Jonathan"}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, err := r.Suggest(ctx, "I saw jon yesterday", catalog)
	if err != nil {
		t.Fatalf("Suggest() unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Suggest() = %+v, want one suggestion", got)
	}
	s := got[0]
	if s.Source != review.SourceLearned {
		t.Errorf("Source = %q, want learned", s.Source)
	}
	if s.Correction.Replacement != "Jonathan" {
		t.Errorf("Replacement = %q, want Jonathan", s.Correction.Replacement)
	}
	if s.Correction.Start != 6 || s.Correction.End != 9 {
		t.Errorf("span = [%d, %d), want [6, 9)", s.Correction.Start, s.Correction.End)
	}
}

func TestSuggest_MergesDisjointSpansInOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r, store := newReviewer(t)
	catalog := []entity.Record{{Name: "Charan", Type: entity.TypePerson}}

	if err := store.Save(ctx, learn.Correction{Original: "jon", Corrected: "John"}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, err := r.Suggest(ctx, "jon spoke with sharan", catalog)
	if err != nil {
		t.Fatalf("Suggest() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Suggest() = %+v, want two suggestions", got)
	}
	if got[0].Source != review.SourceLearned || got[0].Correction.Original != "jon" {
		t.Errorf("first suggestion = %+v, want learned jon", got[0])
	}
	if got[1].Source != review.SourceEntity || got[1].Correction.Original != "sharan" {
		t.Errorf("second suggestion = %+v, want entity sharan", got[1])
	}
	if got[0].Correction.Start >= got[1].Correction.Start {
		t.Errorf("suggestions out of order: %+v", got)
	}
}

func TestSuggest_MinScoreFiltersLearnedReplay(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewManualReader()))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	store := learn.NewFileStore(filepath.Join(t.TempDir(), "corrections.jsonl"))
	r := review.New(analyze.New(), worddiff.New(), store, metrics, review.WithMinScore(0.9))

	// A freshly learned correction without context replays at its initial
	// confidence of 0.8, which a floor of 0.9 must reject.
	if err := store.Save(ctx, learn.Correction{Original: "jon", Corrected: "John"}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	got, err := r.Suggest(ctx, "I saw jon yesterday", nil)
	if err != nil {
		t.Fatalf("Suggest() unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Suggest() with raised floor = %+v, want none", got)
	}
}

func TestApply_SplicesAndCounts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	store := learn.NewFileStore(filepath.Join(t.TempDir(), "corrections.jsonl"))
	r := review.New(analyze.New(), worddiff.New(), store, metrics)

	catalog := []entity.Record{{Name: "John", Type: entity.TypePerson}}
	text := "I saw jon yesterday"
	suggestions, err := r.Suggest(ctx, text, catalog)
	if err != nil {
		t.Fatalf("Suggest() unexpected error: %v", err)
	}

	if got := r.Apply(ctx, text, suggestions); got != "I saw John yesterday" {
		t.Errorf("Apply() = %q, want corrected text", got)
	}
	if got := r.Apply(ctx, text, nil); got != text {
		t.Errorf("Apply() with no suggestions = %q, want input unchanged", got)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var total int64
	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "ramblefix.corrections.applied" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("corrections.applied data = %T, want Sum[int64]", m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			found = true
		}
	}
	if !found {
		t.Fatal("corrections.applied metric not collected")
	}
	if total != int64(len(suggestions)) {
		t.Errorf("corrections.applied = %d, want %d", total, len(suggestions))
	}
}

func TestAccept_PersistsDetectedChanges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r, store := newReviewer(t)

	changes, err := r.Accept(ctx, "I saw jon yesterday", "I saw John yesterday")
	if err != nil {
		t.Fatalf("Accept() unexpected error: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("Accept() = %+v, want one change", changes)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("store = %+v, want one learned correction", all)
	}
	c := all[0]
	if c.Original != "jon" || c.Corrected != "John" {
		t.Errorf("stored = %q -> %q, want jon -> John", c.Original, c.Corrected)
	}
	if len(c.LeftContext) != 2 || c.LeftContext[0] != "i" || c.LeftContext[1] != "saw" {
		t.Errorf("LeftContext = %v, want [i saw]", c.LeftContext)
	}

	// Accepting the same edit again bumps the existing entry.
	if _, err := r.Accept(ctx, "I saw jon yesterday", "I saw John yesterday"); err != nil {
		t.Fatalf("second Accept() unexpected error: %v", err)
	}
	all, err = store.All(ctx)
	if err != nil {
		t.Fatalf("All() unexpected error: %v", err)
	}
	if len(all) != 1 || all[0].TimesApplied != 2 {
		t.Errorf("store after repeat = %+v, want one entry applied twice", all)
	}
}

func TestAccept_SplitStoredAsOneCorrection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r, store := newReviewer(t)

	changes, err := r.Accept(ctx, "we met Charantandi today", "we met Charan Tandi today")
	if err != nil {
		t.Fatalf("Accept() unexpected error: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("Accept() = %+v, want one change", changes)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("store = %+v, want one learned correction", all)
	}
	if all[0].Original != "Charantandi" || all[0].Corrected != "Charan Tandi" {
		t.Errorf("stored = %q -> %q, want Charantandi -> Charan Tandi", all[0].Original, all[0].Corrected)
	}
}

func TestAccept_NoEditsLearnsNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r, store := newReviewer(t)

	changes, err := r.Accept(ctx, "nothing changed here", "nothing changed here")
	if err != nil {
		t.Fatalf("Accept() unexpected error: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("Accept() = %+v, want none", changes)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() unexpected error: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("store = %+v, want empty", all)
	}
}
