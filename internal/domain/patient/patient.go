package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a patient record.
type Status string

const (
	StatusActive     Status = "active"
	StatusDischarged Status = "discharged"
	StatusDeceased   Status = "deceased"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusDischarged, StatusDeceased:
		return true
	}
	return false
}

type LivingArrangement string

const (
	LivesAlone      LivingArrangement = "alone"
	LivesWithFamily LivingArrangement = "with_family"
	LivesWithOther  LivingArrangement = "with_other"
	LivingUnknown   LivingArrangement = "unknown"
)

type ContactInfo struct {
	Phone   string `gorm:"column:phone;type:varchar(20)"`
	Email   string `gorm:"column:email;type:varchar(255)"`
	Address string `gorm:"column:address;type:text"`
	City    string `gorm:"column:city;type:varchar(100)"`
	ZipCode string `gorm:"column:zip_code;type:varchar(20)"`
}

type PrimaryCaregiver struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	LivesWith    bool   `json:"lives_with"`
}

type Patient struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"` // Soft Delete

	FirstName        string    `gorm:"column:first_name;type:varchar(100);not null"`
	LastName         string    `gorm:"column:last_name;type:varchar(100);not null"`
	DateOfBirth      time.Time `gorm:"column:date_of_birth;not null"`
	HealthCardNumber string    `gorm:"column:health_card_number;type:varchar(50);uniqueIndex"`

	ContactInfo

	LivingArrangement LivingArrangement `gorm:"column:living_arrangement;type:varchar(20);default:'unknown'"`
	PrimaryCaregiver  *PrimaryCaregiver `gorm:"column:primary_caregiver;serializer:json"`

	ChronicConditions []string `gorm:"column:chronic_conditions;serializer:json"`

	Status Status `gorm:"column:status;type:varchar(20);default:'active';index"`
	Notes  string `gorm:"column:notes;type:text"` // PHI

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p *Patient) Age() int {
	now := time.Now()
	years := now.Year() - p.DateOfBirth.Year()
	if now.Month() < p.DateOfBirth.Month() ||
		(now.Month() == p.DateOfBirth.Month() && now.Day() < p.DateOfBirth.Day()) {
		years--
	}
	return years
}

func (p *Patient) IsActive() bool {
	return p.Status == StatusActive && p.DeletedAt == nil
}

// IsAlone reports whether the patient has no co-resident caregiver.
func (p *Patient) IsAlone() bool {
	if p.PrimaryCaregiver != nil && p.PrimaryCaregiver.LivesWith {
		return false
	}
	return p.LivingArrangement == LivesAlone
}

type CreatePatientCommand struct {
	FirstName         string
	LastName          string
	DateOfBirth       time.Time
	HealthCardNumber  string
	Phone             string
	Email             string
	Address           string
	City              string
	ZipCode           string
	LivingArrangement LivingArrangement
	PrimaryCaregiver  *PrimaryCaregiver
	ChronicConditions []string
	Notes             string
	CreatedBy         uuid.UUID
}

type ListPatientsQuery struct {
	Search   string // Full-text search on name
	Status   *Status
	Page     int
	PageSize int
}

type PagedPatients struct {
	Patients   []*Patient
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
