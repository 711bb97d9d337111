// Package learn persists corrections confirmed by users so they can be
// reapplied automatically the next time the same mis-transcription occurs.
//
// A learned correction is the durable form of a [worddiff.Change]: an
// original→corrected mapping with up to three words of surrounding context.
// Two [Store] implementations are provided: an append-friendly JSON-lines
// file store for single-user setups and a PostgreSQL store for shared
// deployments.
package learn

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Remove when no matching correction exists.
var ErrNotFound = errors.New("learned correction not found")

// Correction is one user-confirmed original→corrected mapping.
type Correction struct {
	// Original is the misheard word exactly as the recognizer produced it.
	Original string `json:"original"`

	// Corrected is the replacement text; it may contain several words.
	Corrected string `json:"corrected"`

	// LeftContext and RightContext hold up to three lower-cased words that
	// surrounded Original when the correction was learned.
	LeftContext  []string `json:"left_context,omitempty"`
	RightContext []string `json:"right_context,omitempty"`

	// Confidence is the store's trust in this correction, in [0, 1]. It
	// grows as the same correction is confirmed repeatedly.
	Confidence float64 `json:"confidence"`

	// TimesApplied counts how often this correction has been confirmed.
	TimesApplied int `json:"times_applied"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists learned corrections.
//
// All implementations must be safe for concurrent use.
type Store interface {
	// Save records a confirmed correction. Saving an (original, corrected)
	// pair that already exists updates its context, bumps TimesApplied, and
	// raises Confidence instead of inserting a duplicate.
	Save(ctx context.Context, c Correction) error

	// All returns every stored correction. Order is not guaranteed.
	All(ctx context.Context) ([]Correction, error)

	// Remove deletes the correction for the given (original, corrected)
	// pair. Returns [ErrNotFound] when no such correction exists.
	Remove(ctx context.Context, original, corrected string) error
}

// initialConfidence is assigned to a correction on first confirmation.
const initialConfidence = 0.8

// confidenceStep is added per repeat confirmation, capped at 1.0.
const confidenceStep = 0.05

// bumpConfidence returns the confidence after one more confirmation.
func bumpConfidence(current float64) float64 {
	next := current + confidenceStep
	if next > 1 {
		return 1
	}
	return next
}
