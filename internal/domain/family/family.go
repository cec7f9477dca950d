package family

import (
	"time"

	"github.com/google/uuid"
)

// Input records structured feedback from a family member or caregiver. It
// never contributes to the scored functional dimensions; it supplies the
// caregiver and readiness signals used by scenario axis selection.
type Input struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	PatientID  uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	ReceivedAt time.Time `gorm:"column:received_at;not null;index"`

	Relationship string `gorm:"column:relationship;type:varchar(50)"`

	CaregiverStress    bool `gorm:"column:caregiver_stress"`
	CaregiverAvailable bool `gorm:"column:caregiver_available"`
	TechComfortable    bool `gorm:"column:tech_comfortable"`
	PrefersVirtual     bool `gorm:"column:prefers_virtual"`

	Comments string `gorm:"column:comments;type:text"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Input) TableName() string {
	return "clinical.family_inputs"
}

type CreateInputCommand struct {
	PatientID          uuid.UUID
	ReceivedAt         time.Time
	Relationship       string
	CaregiverStress    bool
	CaregiverAvailable bool
	TechComfortable    bool
	PrefersVirtual     bool
	Comments           string
	CreatedBy          uuid.UUID
}
