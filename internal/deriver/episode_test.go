package deriver_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carelinkhq/carebundle/internal/deriver"
	"github.com/carelinkhq/carebundle/internal/domain/assessment"
	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/referral"
	"github.com/carelinkhq/carebundle/internal/mapper"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func TestDeriveEpisodeType_ExplicitReferralWinsOverEverything(t *testing.T) {
	// Assessment data screams post-acute, but the explicit palliative
	// referral type settles it.
	e, method := deriver.DeriveEpisodeType(deriver.EpisodeInput{
		Fields: mapper.Fields{
			WeeklyTherapyMinutes:  intp(120),
			RehabPotentialFlagged: boolp(true),
		},
		Referral: &referral.Referral{ReferralType: "Palliative"},
		Now:      now,
	})

	assert.Equal(t, profile.EpisodePalliative, e)
	assert.Equal(t, profile.DerivedFromReferralType, method)
	assert.Equal(t, profile.ConfidenceHigh, method.Confidence())
}

func TestDeriveEpisodeType_SourceKeywordMatch(t *testing.T) {
	e, method := deriver.DeriveEpisodeType(deriver.EpisodeInput{
		Referral: &referral.Referral{
			ReferralType: "standard intake",
			Source:       "St. Mary's Orthopedic Surgery",
		},
		Now: now,
	})

	assert.Equal(t, profile.EpisodePostAcute, e)
	assert.Equal(t, profile.DerivedFromReferralType, method)
}

func TestDeriveEpisodeType_RecentDischarge(t *testing.T) {
	discharge := now.AddDate(0, 0, -14)
	e, method := deriver.DeriveEpisodeType(deriver.EpisodeInput{
		Referral: &referral.Referral{
			ReferralType:          "standard intake",
			HospitalDischargeDate: &discharge,
		},
		Now: now,
	})

	assert.Equal(t, profile.EpisodePostAcute, e)
	assert.Equal(t, profile.DerivedFromDischargeData, method)
}

func TestDeriveEpisodeType_StaleDischargeFallsThrough(t *testing.T) {
	discharge := now.AddDate(0, 0, -45)
	e, method := deriver.DeriveEpisodeType(deriver.EpisodeInput{
		Referral: &referral.Referral{
			ReferralType:          "standard intake",
			HospitalDischargeDate: &discharge,
		},
		Now: now,
	})

	assert.Equal(t, profile.EpisodeChronic, e)
	assert.Equal(t, profile.DerivedByDefault, method)
}

func TestDeriveEpisodeType_PostSurgicalReferral(t *testing.T) {
	e, method := deriver.DeriveEpisodeType(deriver.EpisodeInput{
		Referral: &referral.Referral{
			ReferralType: "standard intake",
			SurgeryType:  "knee replacement",
		},
		Now: now,
	})

	assert.Equal(t, profile.EpisodePostAcute, e)
	assert.Equal(t, profile.DerivedFromDischargeData, method)
}

func TestDeriveEpisodeType_AssessmentPatternOrder(t *testing.T) {
	cases := []struct {
		name   string
		fields mapper.Fields
		rug    string
		want   profile.EpisodeType
	}{
		{
			name:   "poor prognosis is palliative",
			fields: mapper.Fields{Prognosis: intp(1)},
			want:   profile.EpisodePalliative,
		},
		{
			name:   "hospice enrollment is palliative",
			fields: mapper.Fields{HospiceEnrolled: boolp(true)},
			want:   profile.EpisodePalliative,
		},
		{
			name: "palliative outranks acute signals",
			fields: mapper.Fields{
				EndStageDisease:   boolp(true),
				HealthInstability: intp(5),
			},
			want: profile.EpisodePalliative,
		},
		{
			name:   "high instability is acute exacerbation",
			fields: mapper.Fields{HealthInstability: intp(4)},
			want:   profile.EpisodeAcuteExacerbation,
		},
		{
			name: "acute outranks therapy signals",
			fields: mapper.Fields{
				ConditionFlare:       boolp(true),
				WeeklyTherapyMinutes: intp(90),
			},
			want: profile.EpisodeAcuteExacerbation,
		},
		{
			name:   "high therapy minutes is post-acute",
			fields: mapper.Fields{WeeklyTherapyMinutes: intp(60)},
			want:   profile.EpisodePostAcute,
		},
		{
			name: "rehab flag needs some therapy",
			fields: mapper.Fields{
				RehabPotentialFlagged: boolp(true),
				WeeklyTherapyMinutes:  intp(15),
			},
			want: profile.EpisodePostAcute,
		},
		{
			name: "special rehab RUG is post-acute",
			rug:  "Special Rehabilitation",
			fields: mapper.Fields{
				ADLSupportLevel: intp(1),
			},
			want: profile.EpisodePostAcute,
		},
		{
			name: "combined ADL and cognitive burden is complex",
			fields: mapper.Fields{
				ADLSupportLevel:     intp(4),
				CognitiveComplexity: intp(3),
			},
			want: profile.EpisodeComplexContinuing,
		},
		{
			name:   "severe behaviour is complex",
			fields: mapper.Fields{BehaviouralComplexity: intp(3)},
			want:   profile.EpisodeComplexContinuing,
		},
		{
			name: "four active conditions is complex",
			fields: mapper.Fields{
				ActiveConditions: []string{"CHF", "COPD", "diabetes", "CKD"},
			},
			want: profile.EpisodeComplexContinuing,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, method := deriver.DeriveEpisodeType(deriver.EpisodeInput{
				Fields:      tc.fields,
				RUGCategory: tc.rug,
				Now:         now,
			})
			assert.Equal(t, tc.want, e)
			assert.Equal(t, profile.DerivedFromAssessment, method)
			assert.Equal(t, profile.ConfidenceMedium, method.Confidence())
		})
	}
}

func TestDeriveEpisodeType_RehabFlagWithoutTherapyFallsThrough(t *testing.T) {
	e, method := deriver.DeriveEpisodeType(deriver.EpisodeInput{
		Fields: mapper.Fields{RehabPotentialFlagged: boolp(true)},
		Now:    now,
	})

	assert.Equal(t, profile.EpisodeChronic, e)
	assert.Equal(t, profile.DerivedByDefault, method)
}

func TestDeriveEpisodeType_DefaultFallback(t *testing.T) {
	// Nothing at all: chronic with low confidence.
	e, method := deriver.DeriveEpisodeType(deriver.EpisodeInput{Now: now})
	assert.Equal(t, profile.EpisodeChronic, e)
	assert.Equal(t, profile.DerivedByDefault, method)
	assert.Equal(t, profile.ConfidenceLow, method.Confidence())

	// Heavy ADL burden alone defaults to complex continuing.
	e, method = deriver.DeriveEpisodeType(deriver.EpisodeInput{
		Fields: mapper.Fields{ADLSupportLevel: intp(5)},
		Now:    now,
	})
	assert.Equal(t, profile.EpisodeComplexContinuing, e)
	assert.Equal(t, profile.DerivedByDefault, method)
}

func TestDeriveEpisodeType_UnrecordedPrognosisIsNotPalliative(t *testing.T) {
	// A rehab candidate whose clinician skipped the prognosis field: the
	// mapper leaves it unpopulated and the palliative check must not fire.
	fields := mapper.NewFullMapper().MapToProfileFields(&assessment.Assessment{
		Type: assessment.TypeFull,
		Full: &assessment.FullRecord{
			ADLHierarchy:          3,
			WeeklyTherapyMinutes:  90,
			TherapyRecommended:    true,
			RehabPotentialFlagged: true,
		},
	})

	e, method := deriver.DeriveEpisodeType(deriver.EpisodeInput{Fields: fields, Now: now})

	assert.Equal(t, profile.EpisodePostAcute, e)
	assert.Equal(t, profile.DerivedFromAssessment, method)
}
