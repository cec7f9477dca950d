package referral

import (
	"time"

	"github.com/google/uuid"
)

// Referral captures an intake referral. Free-text fields (Reason, Notes) are
// scanned by the derivers against versioned keyword lists.
type Referral struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	PatientID    uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	ReferralDate time.Time `gorm:"column:referral_date;not null;index"`

	ReferralType string `gorm:"column:referral_type;type:varchar(50)"`
	Source       string `gorm:"column:source;type:varchar(100)"`
	Program      string `gorm:"column:program;type:varchar(100)"`

	HospitalDischargeDate    *time.Time `gorm:"column:hospital_discharge_date"`
	SurgeryType              string     `gorm:"column:surgery_type;type:varchar(100)"`
	ExpectedLengthOfStayDays *int       `gorm:"column:expected_los_days"`

	Reason string `gorm:"column:reason;type:text"`
	Notes  string `gorm:"column:notes;type:text"`

	ReferringProvider string `gorm:"column:referring_provider;type:varchar(200)"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Referral) TableName() string {
	return "clinical.referrals"
}

// DaysSinceDischarge returns whole days between the hospital discharge date
// and now, or -1 when no discharge date is recorded.
func (r *Referral) DaysSinceDischarge(now time.Time) int {
	if r.HospitalDischargeDate == nil {
		return -1
	}
	d := int(now.Sub(*r.HospitalDischargeDate).Hours() / 24)
	if d < 0 {
		return -1
	}
	return d
}

// IsPostSurgical reports whether the referral carries a surgery or procedure type.
func (r *Referral) IsPostSurgical() bool {
	return r.SurgeryType != ""
}

type CreateReferralCommand struct {
	PatientID                uuid.UUID
	ReferralDate             time.Time
	ReferralType             string
	Source                   string
	Program                  string
	HospitalDischargeDate    *time.Time
	SurgeryType              string
	ExpectedLengthOfStayDays *int
	Reason                   string
	Notes                    string
	ReferringProvider        string
	CreatedBy                uuid.UUID
}
