package mapper

import (
	"strings"

	"github.com/carelinkhq/carebundle/internal/domain/referral"
)

// referralConfidenceWeight is the trust weight of referral-derived defaults.
// Referral data is administrative, not clinical, so it sits below every
// assessment instrument.
const referralConfidenceWeight = 0.3

// ReferralMapper derives crude profile defaults from a referral record. It
// sits at the bottom of the merge order: any assessment value overrides it.
type ReferralMapper struct{}

func NewReferralMapper() *ReferralMapper { return &ReferralMapper{} }

func (m *ReferralMapper) ConfidenceWeight() float64 { return referralConfidenceWeight }

func (m *ReferralMapper) PopulatableFields() []string {
	return []string{"weekly_therapy_minutes", "active_conditions", "end_stage_disease", "hospice_enrolled"}
}

// MapToProfileFields extracts the few signals a referral can responsibly
// populate. Functional scales are never guessed from a referral.
func (m *ReferralMapper) MapToProfileFields(r *referral.Referral) Fields {
	if r == nil {
		return Fields{}
	}
	f := Fields{}

	text := strings.ToLower(r.ReferralType + " " + r.Program + " " + r.Reason)
	if strings.Contains(text, "hospice") {
		f.HospiceEnrolled = boolPtr(true)
	}
	if strings.Contains(text, "end-stage") || strings.Contains(text, "end stage") {
		f.EndStageDisease = boolPtr(true)
	}

	// A post-surgical referral implies at least a therapy evaluation block.
	if r.IsPostSurgical() {
		f.WeeklyTherapyMinutes = intPtr(30)
	}

	if r.Reason != "" {
		f.ActiveConditions = []string{r.Reason}
	}

	return f
}
