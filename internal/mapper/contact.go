package mapper

import (
	"github.com/carelinkhq/carebundle/internal/domain/assessment"
)

// coarseToSixPoint translates the contact instrument's 0-3 scales into the
// 0-6 profile space. The table is deliberately conservative at the top end:
// a screener "3" means "severe" without distinguishing 5 from 6.
//
//	screener 0 -> 0 (independent)
//	screener 1 -> 2 (some assistance)
//	screener 2 -> 4 (extensive assistance)
//	screener 3 -> 6 (dependent)
var coarseToSixPoint = [4]int{0, 2, 4, 6}

// coarseToInstability maps the contact urgency score into the 0-5 health
// instability scale. Urgency is a blunter signal, so the top maps to 5 but
// the middle stays low.
//
//	urgency 0 -> 0, 1 -> 2, 2 -> 3, 3 -> 5
var coarseToInstability = [4]int{0, 2, 3, 5}

// ContactMapper maps intake contact assessments.
type ContactMapper struct{}

func NewContactMapper() *ContactMapper { return &ContactMapper{} }

func (m *ContactMapper) Type() assessment.Type           { return assessment.TypeContact }
func (m *ContactMapper) ConfidenceWeight() float64       { return 0.7 }
func (m *ContactMapper) SupportsRUGClassification() bool { return false }

func (m *ContactMapper) PopulatableFields() []string {
	return []string{
		"adl_support_level", "iadl_support_level", "mobility_complexity",
		"cognitive_complexity", "health_instability", "falls_risk_level",
		"weekly_therapy_minutes", "active_conditions", "recent_decline",
		"acute_change",
	}
}

func (m *ContactMapper) MapToProfileFields(a *assessment.Assessment) Fields {
	r := a.Contact
	if r == nil {
		return Fields{}
	}
	return Fields{
		ADLSupportLevel:      intPtr(m.ExtractADL(r)),
		IADLSupportLevel:     intPtr(m.ExtractIADL(r)),
		MobilityComplexity:   intPtr(m.ExtractMobility(r)),
		CognitiveComplexity:  intPtr(m.ExtractCognitive(r)),
		HealthInstability:    intPtr(m.ExtractHealthInstability(r)),
		FallsRiskLevel:       intPtr(m.ExtractFallsRisk(r)),
		WeeklyTherapyMinutes: intPtr(maxInt(r.WeeklyTherapyMinutes, 0)),
		ActiveConditions:     r.ReportedConditions,

		RecentDecline: boolPtr(r.RecentDecline),
		AcuteChange:   boolPtr(r.AcuteChange),
	}
}

func (m *ContactMapper) ExtractADL(r *assessment.ContactRecord) int {
	return coarseToSixPoint[clampInt(r.SelfCareScore, 0, 3)]
}

func (m *ContactMapper) ExtractIADL(r *assessment.ContactRecord) int {
	return coarseToSixPoint[clampInt(r.IADLScore, 0, 3)]
}

func (m *ContactMapper) ExtractMobility(r *assessment.ContactRecord) int {
	return coarseToSixPoint[clampInt(r.MobilityScore, 0, 3)]
}

func (m *ContactMapper) ExtractCognitive(r *assessment.ContactRecord) int {
	return coarseToSixPoint[clampInt(r.CognitiveScreen, 0, 3)]
}

func (m *ContactMapper) ExtractHealthInstability(r *assessment.ContactRecord) int {
	return coarseToInstability[clampInt(r.UrgencyScore, 0, 3)]
}

func (m *ContactMapper) ExtractFallsRisk(r *assessment.ContactRecord) int {
	switch {
	case r.FallsReported <= 0:
		return 0
	case r.FallsReported == 1:
		return 1
	default:
		return 2
	}
}
