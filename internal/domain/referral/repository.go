package referral

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new referral record.
	Create(ctx context.Context, r *Referral) error

	// Latest returns the most recent referral for a patient dated on or after
	// the cutoff. Returns (nil, nil) when none qualifies.
	Latest(ctx context.Context, patientID uuid.UUID, cutoff time.Time) (*Referral, error)

	// ListByPatient returns all referrals for a patient, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Referral, error)
}
