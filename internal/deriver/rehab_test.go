package deriver_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carelinkhq/carebundle/internal/deriver"
	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/referral"
	"github.com/carelinkhq/carebundle/internal/mapper"
)

func TestDeriveRehabPotential_PostAcuteWithTherapy(t *testing.T) {
	res := deriver.DeriveRehabPotential(deriver.RehabInput{
		Episode:       profile.EpisodePostAcute,
		EpisodeMethod: profile.DerivedFromAssessment,
		Fields:        mapper.Fields{WeeklyTherapyMinutes: intp(60)},
	})

	// base 30 + therapy 15 + full cognitive capacity 10.
	assert.Equal(t, 55, res.Score)
	assert.True(t, res.HasPotential)
	assert.NotEmpty(t, res.Factors)
}

func TestDeriveRehabPotential_DefaultDerivationEarnsNoBasePoints(t *testing.T) {
	fields := mapper.Fields{WeeklyTherapyMinutes: intp(60)}

	derived := deriver.DeriveRehabPotential(deriver.RehabInput{
		Episode:       profile.EpisodePostAcute,
		EpisodeMethod: profile.DerivedFromAssessment,
		Fields:        fields,
	})
	defaulted := deriver.DeriveRehabPotential(deriver.RehabInput{
		Episode:       profile.EpisodePostAcute,
		EpisodeMethod: profile.DerivedByDefault,
		Fields:        fields,
	})

	assert.Equal(t, 30, derived.Score-defaulted.Score,
		"only a genuinely derived episode type seeds base points")
}

func TestDeriveRehabPotential_ClampsToZero(t *testing.T) {
	res := deriver.DeriveRehabPotential(deriver.RehabInput{
		Episode:       profile.EpisodeChronic,
		EpisodeMethod: profile.DerivedByDefault,
		Fields: mapper.Fields{
			CognitiveComplexity: intp(5),
			HealthInstability:   intp(4),
			Prognosis:           intp(1),
			ADLSupportLevel:     intp(6),
			LongTermDecline:     boolp(true),
		},
	})

	assert.Equal(t, 0, res.Score)
	assert.False(t, res.HasPotential)
}

func TestDeriveRehabPotential_ClampsToHundred(t *testing.T) {
	short := 30
	res := deriver.DeriveRehabPotential(deriver.RehabInput{
		Episode:       profile.EpisodePostAcute,
		EpisodeMethod: profile.DerivedFromAssessment,
		Fields: mapper.Fields{
			WeeklyTherapyMinutes: intp(120),
			TherapyRecommended:   boolp(true),
			RecentDecline:        boolp(true),
			AtBaseline:           boolp(false),
			ImprovementNoted:     boolp(true),
			PatientMotivated:     boolp(true),
			ADLSupportLevel:      intp(3),
			MobilityComplexity:   intp(3),
		},
		Referral: &referral.Referral{
			Reason:                   "post-op rehabilitation and strengthening",
			SurgeryType:              "hip replacement",
			ExpectedLengthOfStayDays: &short,
		},
	})

	assert.Equal(t, 100, res.Score)
	assert.True(t, res.HasPotential)
}

func TestDeriveRehabPotential_FactorCapsApply(t *testing.T) {
	res := deriver.DeriveRehabPotential(deriver.RehabInput{
		Episode:       profile.EpisodeChronic,
		EpisodeMethod: profile.DerivedByDefault,
		Fields: mapper.Fields{
			RecentDecline:    boolp(true),
			AtBaseline:       boolp(false),
			ImprovementNoted: boolp(true),
			PatientMotivated: boolp(true),
		},
	})

	// 35 raw functional points capped at 20, plus full cognitive capacity 10.
	assert.Equal(t, 30, res.Score)

	capNoted := false
	for _, f := range res.Factors {
		if strings.Contains(f.Reason, "capped") {
			capNoted = true
		}
	}
	assert.True(t, capNoted, "a capping note must appear in the factor list")
}

func TestDeriveRehabPotential_ThresholdBoundary(t *testing.T) {
	base := deriver.RehabInput{
		Episode:       profile.EpisodeChronic,
		EpisodeMethod: profile.DerivedFromReferralType,
		Fields: mapper.Fields{
			WeeklyTherapyMinutes: intp(30),
			RecentDecline:        boolp(true),
			CognitiveComplexity:  intp(1),
		},
	}

	// base 10 + therapy 10 + decline 10 + cognitive 10 = 40: at the threshold.
	at := deriver.DeriveRehabPotential(base)
	assert.Equal(t, 40, at.Score)
	assert.True(t, at.HasPotential)

	// Dropping cognitive capacity to 7 lands just below it.
	below := base
	below.Fields.CognitiveComplexity = intp(2)
	res := deriver.DeriveRehabPotential(below)
	assert.Equal(t, 37, res.Score)
	assert.False(t, res.HasPotential)
}

func TestDeriveRehabPotential_ADLScoresPeakAtModerateImpairment(t *testing.T) {
	score := func(adl int) int {
		return deriver.DeriveRehabPotential(deriver.RehabInput{
			Episode:       profile.EpisodeChronic,
			EpisodeMethod: profile.DerivedByDefault,
			Fields:        mapper.Fields{ADLSupportLevel: intp(adl)},
		}).Score
	}

	moderate := score(3)
	independent := score(0)
	severe := score(5)
	total := score(6)

	assert.Greater(t, moderate, independent)
	assert.Greater(t, moderate, severe)
	assert.Greater(t, severe, total, "total dependence draws the negative modifier")
}

func TestDeriveRehabPotential_ScoreAlwaysBounded(t *testing.T) {
	extremes := []deriver.RehabInput{
		{Episode: profile.EpisodePalliative, EpisodeMethod: profile.DerivedFromReferralType},
		{
			Episode:       profile.EpisodeComplexContinuing,
			EpisodeMethod: profile.DerivedFromAssessment,
			Fields: mapper.Fields{
				CognitiveComplexity: intp(6),
				Prognosis:           intp(0),
				ADLSupportLevel:     intp(6),
				HealthInstability:   intp(5),
				LongTermDecline:     boolp(true),
			},
		},
	}

	for _, in := range extremes {
		res := deriver.DeriveRehabPotential(in)
		assert.GreaterOrEqual(t, res.Score, 0)
		assert.LessOrEqual(t, res.Score, 100)
	}
}
