package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelinkhq/carebundle/internal/domain/assessment"
	"github.com/carelinkhq/carebundle/internal/domain/referral"
	"github.com/carelinkhq/carebundle/internal/mapper"
)

func intRef(v int) *int { return &v }

func TestContactMapper_CoarseScaleUpMapping(t *testing.T) {
	m := mapper.NewContactMapper()

	cases := []struct {
		coarse int
		want   int
	}{
		{0, 0},
		{1, 2},
		{2, 4},
		{3, 6},
	}
	for _, tc := range cases {
		r := &assessment.ContactRecord{SelfCareScore: tc.coarse}
		assert.Equal(t, tc.want, m.ExtractADL(r), "coarse %d", tc.coarse)
	}

	// Out-of-range raw values are clamped into the table, not rejected.
	assert.Equal(t, 6, m.ExtractADL(&assessment.ContactRecord{SelfCareScore: 9}))
	assert.Equal(t, 0, m.ExtractADL(&assessment.ContactRecord{SelfCareScore: -1}))
}

func TestContactMapper_UrgencyToInstability(t *testing.T) {
	m := mapper.NewContactMapper()

	cases := []struct {
		urgency int
		want    int
	}{
		{0, 0},
		{1, 2},
		{2, 3},
		{3, 5},
	}
	for _, tc := range cases {
		r := &assessment.ContactRecord{UrgencyScore: tc.urgency}
		assert.Equal(t, tc.want, m.ExtractHealthInstability(r), "urgency %d", tc.urgency)
	}
}

func TestFallsCountToRiskLevel(t *testing.T) {
	full := mapper.NewFullMapper()
	contact := mapper.NewContactMapper()

	assert.Equal(t, 0, full.ExtractFallsRisk(&assessment.FullRecord{FallsInLast90Days: 0}))
	assert.Equal(t, 1, full.ExtractFallsRisk(&assessment.FullRecord{FallsInLast90Days: 1}))
	assert.Equal(t, 2, full.ExtractFallsRisk(&assessment.FullRecord{FallsInLast90Days: 4}))

	assert.Equal(t, 0, contact.ExtractFallsRisk(&assessment.ContactRecord{FallsReported: 0}))
	assert.Equal(t, 1, contact.ExtractFallsRisk(&assessment.ContactRecord{FallsReported: 1}))
	assert.Equal(t, 2, contact.ExtractFallsRisk(&assessment.ContactRecord{FallsReported: 2}))
}

func TestFullMapper_ClampsNativeScales(t *testing.T) {
	m := mapper.NewFullMapper()
	a := &assessment.Assessment{
		Type: assessment.TypeFull,
		Full: &assessment.FullRecord{
			ADLHierarchy:         9,
			CognitivePerformance: -2,
			BehaviourScale:       7,
			HealthInstability:    8,
			WeeklyTherapyMinutes: -30,
			Prognosis:            intRef(11),
		},
	}

	f := m.MapToProfileFields(a)
	assert.Equal(t, 6, mapper.IntOr(f.ADLSupportLevel, -1))
	assert.Equal(t, 0, mapper.IntOr(f.CognitiveComplexity, -1))
	assert.Equal(t, 4, mapper.IntOr(f.BehaviouralComplexity, -1))
	assert.Equal(t, 5, mapper.IntOr(f.HealthInstability, -1))
	assert.Equal(t, 0, mapper.IntOr(f.WeeklyTherapyMinutes, -1))
	assert.Equal(t, 5, mapper.IntOr(f.Prognosis, -1))
}

func TestFullMapper_UnrecordedPrognosisStaysUnpopulated(t *testing.T) {
	m := mapper.NewFullMapper()

	unset := m.MapToProfileFields(&assessment.Assessment{
		Type: assessment.TypeFull,
		Full: &assessment.FullRecord{ADLHierarchy: 3},
	})
	assert.Nil(t, unset.Prognosis, "no recorded prognosis must not become a rating of 0")

	// An explicit 0 is a real terminal rating and survives the mapping.
	terminal := m.MapToProfileFields(&assessment.Assessment{
		Type: assessment.TypeFull,
		Full: &assessment.FullRecord{Prognosis: intRef(0)},
	})
	require.NotNil(t, terminal.Prognosis)
	assert.Equal(t, 0, *terminal.Prognosis)
}

func TestFullMapper_MissingPayloadYieldsNothing(t *testing.T) {
	m := mapper.NewFullMapper()
	f := m.MapToProfileFields(&assessment.Assessment{Type: assessment.TypeFull})
	assert.Equal(t, 0, f.CountPopulated())
}

func TestScreenerMapper_PopulatesOnlyItsDimensions(t *testing.T) {
	m := mapper.NewScreenerMapper()
	a := &assessment.Assessment{
		Type: assessment.TypeScreener,
		Screener: &assessment.ScreenerRecord{
			BehaviourFrequency: 3,
			CognitiveConcern:   2,
			WanderingRisk:      true,
		},
	}

	f := m.MapToProfileFields(a)
	assert.Equal(t, 3, mapper.IntOr(f.BehaviouralComplexity, -1))
	assert.Equal(t, 4, mapper.IntOr(f.CognitiveComplexity, -1), "cognitive concern up-maps to 0-6")
	assert.True(t, mapper.BoolOr(f.WanderingRisk, false))

	assert.Nil(t, f.ADLSupportLevel)
	assert.Nil(t, f.HealthInstability)
}

func TestReferralMapper_DerivesCrudeDefaults(t *testing.T) {
	m := mapper.NewReferralMapper()

	f := m.MapToProfileFields(&referral.Referral{
		ReferralType: "Hospice Transfer",
		Reason:       "end-stage COPD",
		SurgeryType:  "hip replacement",
	})

	assert.True(t, mapper.BoolOr(f.HospiceEnrolled, false))
	assert.True(t, mapper.BoolOr(f.EndStageDisease, false))
	assert.Equal(t, 30, mapper.IntOr(f.WeeklyTherapyMinutes, 0), "post-surgical implies a therapy block")
	assert.Equal(t, []string{"end-stage COPD"}, f.ActiveConditions)

	// Functional scales are never guessed from a referral.
	assert.Nil(t, f.ADLSupportLevel)
	assert.Nil(t, f.MobilityComplexity)
}

func TestMergeFields_HigherPrioritySourceWins(t *testing.T) {
	full := mapper.NewFullMapper()
	contact := mapper.NewContactMapper()

	fromFull := full.MapToProfileFields(&assessment.Assessment{
		Type: assessment.TypeFull,
		Full: &assessment.FullRecord{ADLHierarchy: 1, WeeklyTherapyMinutes: 45},
	})
	fromContact := contact.MapToProfileFields(&assessment.Assessment{
		Type:    assessment.TypeContact,
		Contact: &assessment.ContactRecord{SelfCareScore: 3, FallsReported: 2},
	})

	merged := mapper.MergeFields(fromFull, fromContact)

	// Full assessment's ADL value wins over the contact's up-mapped 6.
	assert.Equal(t, 1, mapper.IntOr(merged.ADLSupportLevel, -1))
	assert.Equal(t, 45, mapper.IntOr(merged.WeeklyTherapyMinutes, -1))
	// Fields the full source populated with zero still block lower sources.
	assert.Equal(t, 0, mapper.IntOr(merged.FallsRiskLevel, -1))
}

func TestMergeFields_LowerSourceFillsGaps(t *testing.T) {
	screener := mapper.NewScreenerMapper()
	contact := mapper.NewContactMapper()

	fromContact := contact.MapToProfileFields(&assessment.Assessment{
		Type:    assessment.TypeContact,
		Contact: &assessment.ContactRecord{SelfCareScore: 2},
	})
	fromScreener := screener.MapToProfileFields(&assessment.Assessment{
		Type:     assessment.TypeScreener,
		Screener: &assessment.ScreenerRecord{BehaviourFrequency: 4},
	})

	merged := mapper.MergeFields(fromContact, fromScreener)

	require.NotNil(t, merged.BehaviouralComplexity, "screener fills the behaviour gap")
	assert.Equal(t, 4, *merged.BehaviouralComplexity)
	assert.Equal(t, 4, mapper.IntOr(merged.ADLSupportLevel, -1))
}

func TestMergeFields_OrderIndependentOfFetchOrder(t *testing.T) {
	a := mapper.Fields{}
	b := mapper.NewContactMapper().MapToProfileFields(&assessment.Assessment{
		Type:    assessment.TypeContact,
		Contact: &assessment.ContactRecord{SelfCareScore: 1},
	})

	// An empty higher-priority source never masks a populated lower one.
	merged := mapper.MergeFields(a, b)
	assert.Equal(t, 2, mapper.IntOr(merged.ADLSupportLevel, -1))
}
