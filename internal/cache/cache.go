// Package cache provides the profile cache store. Entries are invalidated
// by explicit caller action when new assessment data lands; there is no
// TTL-driven staleness detection (a TTL may still bound redis memory).
package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carelinkhq/carebundle/internal/domain/profile"
)

const keyPrefix = "carebundle:profile"

// ProfileCache stores built needs profiles keyed by patient and build
// options. Implementations are safe for concurrent use; absent a
// single-flight wrapper, concurrent builders race and the last writer wins.
type ProfileCache interface {
	// Get returns the cached profile and whether it was present.
	Get(ctx context.Context, key string) (*profile.NeedsProfile, bool, error)

	// Set stores a profile under the key, replacing any previous entry.
	Set(ctx context.Context, key string, p *profile.NeedsProfile) error

	// Invalidate removes every cached profile for the patient, across all
	// option combinations.
	Invalidate(ctx context.Context, patientID uuid.UUID) error
}

// Key builds the cache key for one (patient, cutoff window, include-referral)
// combination. All keys for a patient share a prefix so Invalidate can sweep
// them together.
func Key(patientID uuid.UUID, cutoffDays int, includeReferral bool) string {
	return fmt.Sprintf("%s:%s:%d:%t", keyPrefix, patientID, cutoffDays, includeReferral)
}

func patientKeyPattern(patientID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:*", keyPrefix, patientID)
}

func patientKeyPrefix(patientID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:", keyPrefix, patientID)
}
