package assessment

import (
	"time"

	"github.com/google/uuid"
)

// Type discriminates which clinical instrument produced an assessment record.
type Type string

const (
	TypeFull     Type = "full"                 // comprehensive in-home assessment, 0-6 native scales
	TypeContact  Type = "contact"              // intake phone screener, coarse 0-3 scales
	TypeScreener Type = "behavioural_screener" // behavioural/cognitive screener
)

func (t Type) IsValid() bool {
	switch t {
	case TypeFull, TypeContact, TypeScreener:
		return true
	}
	return false
}

// FullRecord is the payload of a comprehensive assessment. Scale fields use
// the instrument's native ranges; out-of-range values are clamped by the
// mapper, never rejected.
type FullRecord struct {
	ADLHierarchy         int `json:"adl_hierarchy"`          // 0-6
	IADLInvolvement      int `json:"iadl_involvement"`       // 0-6
	MobilityScore        int `json:"mobility_score"`         // 0-6
	CognitivePerformance int `json:"cognitive_performance"`  // 0-6
	BehaviourScale       int `json:"behaviour_scale"`        // 0-4
	HealthInstability    int `json:"health_instability"`     // 0-5
	FallsInLast90Days    int `json:"falls_in_last_90_days"`  // raw count
	WeeklyTherapyMinutes int `json:"weekly_therapy_minutes"`

	// Prognosis is 0-5, lower is poorer. Nil when the clinician did not
	// record one; 0 is a meaningful terminal rating, not a default.
	Prognosis *int `json:"prognosis,omitempty"`

	ActiveDiagnoses []string `json:"active_diagnoses"`

	EndStageDisease           bool `json:"end_stage_disease"`
	HospiceEnrolled           bool `json:"hospice_enrolled"`
	AcuteChange               bool `json:"acute_change"`
	ConditionFlare            bool `json:"condition_flare"`
	RecentDecline             bool `json:"recent_decline"`
	AtBaseline                bool `json:"at_baseline"`
	ImprovementNoted          bool `json:"improvement_noted"`
	PatientMotivated          bool `json:"patient_motivated"`
	TherapyRecommended        bool `json:"therapy_recommended"`
	RehabPotentialFlagged     bool `json:"rehab_potential_flagged"`
	RequiresExtensiveServices bool `json:"requires_extensive_services"`
	LongTermDecline           bool `json:"long_term_decline"`
}

// ContactRecord is the payload of an intake contact assessment. Its 0-3
// scales are coarser than the full instrument and are translated up to the
// 0-6 profile space by the contact mapper.
type ContactRecord struct {
	SelfCareScore        int `json:"self_care_score"`  // 0-3
	IADLScore            int `json:"iadl_score"`       // 0-3
	MobilityScore        int `json:"mobility_score"`   // 0-3
	CognitiveScreen      int `json:"cognitive_screen"` // 0-3
	UrgencyScore         int `json:"urgency_score"`    // 0-3
	FallsReported        int `json:"falls_reported"`   // raw count
	WeeklyTherapyMinutes int `json:"weekly_therapy_minutes"`

	ReportedConditions []string `json:"reported_conditions"`

	RecentDecline bool `json:"recent_decline"`
	AcuteChange   bool `json:"acute_change"`
}

// ScreenerRecord is the payload of a behavioural screener.
type ScreenerRecord struct {
	BehaviourFrequency int  `json:"behaviour_frequency"` // 0-4
	CognitiveConcern   int  `json:"cognitive_concern"`   // 0-3
	WanderingRisk      bool `json:"wandering_risk"`
}

// Assessment stores one administered instrument. Exactly one payload field
// is populated, matching Type.
type Assessment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	PatientID  uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	Type       Type      `gorm:"column:type;type:varchar(30);not null;index"`
	AssessedAt time.Time `gorm:"column:assessed_at;not null;index"`
	AssessorID uuid.UUID `gorm:"column:assessor_id;type:uuid"`

	Full     *FullRecord     `gorm:"column:full_record;serializer:json"`
	Contact  *ContactRecord  `gorm:"column:contact_record;serializer:json"`
	Screener *ScreenerRecord `gorm:"column:screener_record;serializer:json"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
}

func (Assessment) TableName() string {
	return "clinical.assessments"
}

// HasPayload reports whether the payload matching Type is present.
func (a *Assessment) HasPayload() bool {
	switch a.Type {
	case TypeFull:
		return a.Full != nil
	case TypeContact:
		return a.Contact != nil
	case TypeScreener:
		return a.Screener != nil
	}
	return false
}

type CreateAssessmentCommand struct {
	PatientID  uuid.UUID
	Type       Type
	AssessedAt time.Time
	AssessorID uuid.UUID
	Full       *FullRecord
	Contact    *ContactRecord
	Screener   *ScreenerRecord
	CreatedBy  uuid.UUID
}
