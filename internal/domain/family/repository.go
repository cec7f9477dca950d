package family

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new family input record.
	Create(ctx context.Context, in *Input) error

	// Latest returns the most recent family input for a patient received on or
	// after the cutoff. Returns (nil, nil) when none qualifies.
	Latest(ctx context.Context, patientID uuid.UUID, cutoff time.Time) (*Input, error)
}
