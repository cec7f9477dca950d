package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new assessment record.
	Create(ctx context.Context, a *Assessment) error

	// GetByID retrieves an assessment by primary key. Returns ErrAssessmentNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)

	// LatestByType returns the most recent assessment of the given type for a
	// patient, assessed on or after the cutoff. Returns (nil, nil) when none
	// qualifies: an absent source is not an error.
	LatestByType(ctx context.Context, patientID uuid.UUID, t Type, cutoff time.Time) (*Assessment, error)

	// ListByPatient returns all assessments for a patient, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Assessment, error)
}
