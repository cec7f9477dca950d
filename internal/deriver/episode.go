// Package deriver holds the policy-laden classification logic: the episode
// type cascade, the rehab potential scorer, and the RUG and needs cluster
// classifiers. All functions are pure; policy constants are named and kept
// here rather than inferred.
package deriver

import (
	"time"

	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/referral"
	"github.com/carelinkhq/carebundle/internal/mapper"
)

// postAcuteDischargeDays is the discharge-recency window for the stage-2
// heuristic. Policy value; do not tune without clinical sign-off.
const postAcuteDischargeDays = 30

// therapy-minute thresholds shared by the episode and rehab derivers.
const (
	highTherapyMinutes     = 60
	moderateTherapyMinutes = 30
)

const rugSpecialRehab = "Special Rehabilitation"

// EpisodeInput bundles everything the cascade may consult.
type EpisodeInput struct {
	Fields      mapper.Fields
	Referral    *referral.Referral
	RUGCategory string
	Now         time.Time
}

// DeriveEpisodeType classifies the care episode through a strict priority
// cascade. Each stage short-circuits on first match; the output is never
// empty. The returned method identifies which stage fired, and maps to a
// qualitative confidence via DerivationMethod.Confidence.
func DeriveEpisodeType(in EpisodeInput) (profile.EpisodeType, profile.DerivationMethod) {
	// Stage 1: explicit referral type or keyword match on source/program.
	if in.Referral != nil {
		if e, ok := matchEpisodeAlias(in.Referral.ReferralType); ok {
			return e, profile.DerivedFromReferralType
		}
		if e, ok := scanEpisodeKeywords(in.Referral.Source + " " + in.Referral.Program); ok {
			return e, profile.DerivedFromReferralType
		}
	}

	// Stage 2: discharge-data heuristic.
	if in.Referral != nil {
		if d := in.Referral.DaysSinceDischarge(in.Now); d >= 0 && d <= postAcuteDischargeDays {
			return profile.EpisodePostAcute, profile.DerivedFromDischargeData
		}
		if in.Referral.IsPostSurgical() {
			return profile.EpisodePostAcute, profile.DerivedFromDischargeData
		}
	}

	// Stage 3: assessment-pattern heuristics, in fixed order.
	if e, ok := matchAssessmentPattern(in); ok {
		return e, profile.DerivedFromAssessment
	}

	// Stage 4: default fallback.
	adl := mapper.IntOr(in.Fields.ADLSupportLevel, 0)
	cog := mapper.IntOr(in.Fields.CognitiveComplexity, 0)
	instability := mapper.IntOr(in.Fields.HealthInstability, 0)
	if adl >= 4 || cog >= 4 || instability >= 4 {
		return profile.EpisodeComplexContinuing, profile.DerivedByDefault
	}
	return profile.EpisodeChronic, profile.DerivedByDefault
}

// matchAssessmentPattern tests the stage-3 heuristics in their fixed order:
// palliative, acute exacerbation, post-acute, complex continuing.
func matchAssessmentPattern(in EpisodeInput) (profile.EpisodeType, bool) {
	f := in.Fields

	prognosis := mapper.IntOr(f.Prognosis, 5)
	if prognosis <= 2 || mapper.BoolOr(f.EndStageDisease, false) || mapper.BoolOr(f.HospiceEnrolled, false) {
		return profile.EpisodePalliative, true
	}

	instability := mapper.IntOr(f.HealthInstability, 0)
	if instability >= 4 || mapper.BoolOr(f.AcuteChange, false) || mapper.BoolOr(f.ConditionFlare, false) {
		return profile.EpisodeAcuteExacerbation, true
	}

	therapy := mapper.IntOr(f.WeeklyTherapyMinutes, 0)
	if therapy >= highTherapyMinutes ||
		(mapper.BoolOr(f.RehabPotentialFlagged, false) && therapy > 0) ||
		in.RUGCategory == rugSpecialRehab {
		return profile.EpisodePostAcute, true
	}

	adl := mapper.IntOr(f.ADLSupportLevel, 0)
	cog := mapper.IntOr(f.CognitiveComplexity, 0)
	behaviour := mapper.IntOr(f.BehaviouralComplexity, 0)
	if (adl >= 4 && cog >= 3) || behaviour >= 3 ||
		mapper.BoolOr(f.RequiresExtensiveServices, false) ||
		len(f.ActiveConditions) >= 4 {
		return profile.EpisodeComplexContinuing, true
	}

	return "", false
}
