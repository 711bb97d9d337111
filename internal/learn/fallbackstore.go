package learn

import (
	"context"
	"errors"

	"github.com/ashishact/ramblefix/internal/resilience"
)

// Compile-time interface check.
var _ Store = (*FallbackStore)(nil)

// FallbackStore is a [Store] that writes to a primary backend and falls back
// to a secondary one when the primary is unreachable. Each backend sits
// behind its own circuit breaker, so a database outage degrades to local
// file persistence instead of losing confirmed corrections.
//
// The stores are not synchronised with each other; corrections written to
// the fallback stay there until re-confirmed while the primary is healthy.
type FallbackStore struct {
	group *resilience.FallbackGroup[Store]
}

// NewFallbackStore wires primary and fallback into a [FallbackStore].
func NewFallbackStore(primary Store, fallback Store, cfg resilience.FallbackConfig) *FallbackStore {
	g := resilience.NewFallbackGroup[Store](primary, "primary", cfg)
	g.AddFallback("fallback", fallback)
	return &FallbackStore{group: g}
}

// Save implements [Store.Save].
func (fs *FallbackStore) Save(ctx context.Context, c Correction) error {
	return fs.group.Execute(ctx, func(ctx context.Context, s Store) error {
		return s.Save(ctx, c)
	})
}

// All implements [Store.All].
func (fs *FallbackStore) All(ctx context.Context) ([]Correction, error) {
	return resilience.ExecuteWithResult(ctx, fs.group, func(ctx context.Context, s Store) ([]Correction, error) {
		return s.All(ctx)
	})
}

// Remove implements [Store.Remove]. A missing correction is a definitive
// answer, not a backend failure, so [ErrNotFound] neither trips the breaker
// nor triggers failover.
func (fs *FallbackStore) Remove(ctx context.Context, original, corrected string) error {
	var notFound bool
	err := fs.group.Execute(ctx, func(ctx context.Context, s Store) error {
		err := s.Remove(ctx, original, corrected)
		if errors.Is(err, ErrNotFound) {
			notFound = true
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}
	if notFound {
		return ErrNotFound
	}
	return nil
}
