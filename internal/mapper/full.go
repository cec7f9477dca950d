package mapper

import (
	"github.com/carelinkhq/carebundle/internal/domain/assessment"
)

// FullMapper maps comprehensive assessment records. The instrument's native
// scales already match the profile space, so extraction is clamping plus a
// falls-count translation.
type FullMapper struct{}

func NewFullMapper() *FullMapper { return &FullMapper{} }

func (m *FullMapper) Type() assessment.Type           { return assessment.TypeFull }
func (m *FullMapper) ConfidenceWeight() float64       { return 1.0 }
func (m *FullMapper) SupportsRUGClassification() bool { return true }

func (m *FullMapper) PopulatableFields() []string {
	return []string{
		"adl_support_level", "iadl_support_level", "mobility_complexity",
		"cognitive_complexity", "behavioural_complexity", "health_instability",
		"falls_risk_level", "weekly_therapy_minutes", "prognosis",
		"active_conditions", "recent_decline", "at_baseline",
		"improvement_noted", "patient_motivated", "therapy_recommended",
		"rehab_potential_flagged", "acute_change", "condition_flare",
		"end_stage_disease", "hospice_enrolled", "requires_extensive_services",
		"long_term_decline",
	}
}

func (m *FullMapper) MapToProfileFields(a *assessment.Assessment) Fields {
	r := a.Full
	if r == nil {
		return Fields{}
	}
	return Fields{
		ADLSupportLevel:       intPtr(m.ExtractADL(r)),
		IADLSupportLevel:      intPtr(m.ExtractIADL(r)),
		MobilityComplexity:    intPtr(m.ExtractMobility(r)),
		CognitiveComplexity:   intPtr(m.ExtractCognitive(r)),
		BehaviouralComplexity: intPtr(m.ExtractBehavioural(r)),
		HealthInstability:     intPtr(m.ExtractHealthInstability(r)),
		FallsRiskLevel:        intPtr(m.ExtractFallsRisk(r)),
		WeeklyTherapyMinutes:  intPtr(maxInt(r.WeeklyTherapyMinutes, 0)),
		Prognosis:             clampIntPtr(r.Prognosis, 0, 5),
		ActiveConditions:      r.ActiveDiagnoses,

		RecentDecline:             boolPtr(r.RecentDecline),
		AtBaseline:                boolPtr(r.AtBaseline),
		ImprovementNoted:          boolPtr(r.ImprovementNoted),
		PatientMotivated:          boolPtr(r.PatientMotivated),
		TherapyRecommended:        boolPtr(r.TherapyRecommended),
		RehabPotentialFlagged:     boolPtr(r.RehabPotentialFlagged),
		AcuteChange:               boolPtr(r.AcuteChange),
		ConditionFlare:            boolPtr(r.ConditionFlare),
		EndStageDisease:           boolPtr(r.EndStageDisease),
		HospiceEnrolled:           boolPtr(r.HospiceEnrolled),
		RequiresExtensiveServices: boolPtr(r.RequiresExtensiveServices),
		LongTermDecline:           boolPtr(r.LongTermDecline),
	}
}

func (m *FullMapper) ExtractADL(r *assessment.FullRecord) int {
	return clampInt(r.ADLHierarchy, 0, 6)
}

func (m *FullMapper) ExtractIADL(r *assessment.FullRecord) int {
	return clampInt(r.IADLInvolvement, 0, 6)
}

func (m *FullMapper) ExtractMobility(r *assessment.FullRecord) int {
	return clampInt(r.MobilityScore, 0, 6)
}

func (m *FullMapper) ExtractCognitive(r *assessment.FullRecord) int {
	return clampInt(r.CognitivePerformance, 0, 6)
}

func (m *FullMapper) ExtractBehavioural(r *assessment.FullRecord) int {
	return clampInt(r.BehaviourScale, 0, 4)
}

func (m *FullMapper) ExtractHealthInstability(r *assessment.FullRecord) int {
	return clampInt(r.HealthInstability, 0, 5)
}

// ExtractFallsRisk translates a raw falls count to the 0-2 risk level:
// no falls 0, one fall 1, two or more 2.
func (m *FullMapper) ExtractFallsRisk(r *assessment.FullRecord) int {
	switch {
	case r.FallsInLast90Days <= 0:
		return 0
	case r.FallsInLast90Days == 1:
		return 1
	default:
		return 2
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
