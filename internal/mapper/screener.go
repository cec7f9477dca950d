package mapper

import (
	"github.com/carelinkhq/carebundle/internal/domain/assessment"
)

// ScreenerMapper maps behavioural screener records. The screener covers the
// behavioural and cognitive dimensions only.
type ScreenerMapper struct{}

func NewScreenerMapper() *ScreenerMapper { return &ScreenerMapper{} }

func (m *ScreenerMapper) Type() assessment.Type           { return assessment.TypeScreener }
func (m *ScreenerMapper) ConfidenceWeight() float64       { return 0.5 }
func (m *ScreenerMapper) SupportsRUGClassification() bool { return false }

func (m *ScreenerMapper) PopulatableFields() []string {
	return []string{"behavioural_complexity", "cognitive_complexity", "wandering_risk"}
}

func (m *ScreenerMapper) MapToProfileFields(a *assessment.Assessment) Fields {
	r := a.Screener
	if r == nil {
		return Fields{}
	}
	return Fields{
		BehaviouralComplexity: intPtr(m.ExtractBehavioural(r)),
		CognitiveComplexity:   intPtr(m.ExtractCognitive(r)),
		WanderingRisk:         boolPtr(r.WanderingRisk),
	}
}

func (m *ScreenerMapper) ExtractBehavioural(r *assessment.ScreenerRecord) int {
	return clampInt(r.BehaviourFrequency, 0, 4)
}

// ExtractCognitive up-maps the screener's 0-3 cognitive concern scale into
// the 0-6 profile space with the shared coarse table.
func (m *ScreenerMapper) ExtractCognitive(r *assessment.ScreenerRecord) int {
	return coarseToSixPoint[clampInt(r.CognitiveConcern, 0, 3)]
}
