package deriver

import (
	"fmt"

	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/referral"
	"github.com/carelinkhq/carebundle/internal/mapper"
)

// RehabPotentialThreshold is the single documented cut-off: a score at or
// above it sets HasRehabPotential. Policy value.
const RehabPotentialThreshold = 40

// Per-factor caps. Each factor is summed internally, capped, then
// accumulated; the final score is clamped to [0, 100].
const (
	therapyFactorCap    = 20
	functionalFactorCap = 20
	adlMobilityCap      = 15
	cognitiveCap        = 10
	referralFactorCap   = 15
)

const expectedShortStayDays = 90

// RehabInput bundles the scorer's inputs. EpisodeMethod matters: an episode
// type reached only by default fallback earns no base points.
type RehabInput struct {
	Episode       profile.EpisodeType
	EpisodeMethod profile.DerivationMethod
	Fields        mapper.Fields
	Referral      *referral.Referral
}

// RehabResult is the scorer's output. Factors exist for explainability only
// and are never re-summed downstream.
type RehabResult struct {
	Score        int
	HasPotential bool
	Factors      []profile.RehabFactor
}

// DeriveRehabPotential computes the bounded rehab potential score. Each
// factor is an independent pure function returning points and reasons; the
// orchestrator applies per-factor caps before accumulation and the final
// clamp after.
func DeriveRehabPotential(in RehabInput) RehabResult {
	total := 0
	var factors []profile.RehabFactor

	accumulate := func(points int, reasons []profile.RehabFactor) {
		total += points
		factors = append(factors, reasons...)
	}

	accumulateCapped := func(points int, reasons []profile.RehabFactor, limit int, label string) {
		points, reasons = capped(points, reasons, limit, label)
		accumulate(points, reasons)
	}

	accumulate(episodeBaseScore(in))
	pts, reasons := therapyIntensityScore(in.Fields)
	accumulateCapped(pts, reasons, therapyFactorCap, "therapy intensity")
	pts, reasons = functionalImprovementScore(in.Fields)
	accumulateCapped(pts, reasons, functionalFactorCap, "functional improvement potential")
	pts, reasons = adlMobilityScore(in.Fields)
	accumulateCapped(pts, reasons, adlMobilityCap, "ADL/mobility range")
	pts, reasons = cognitiveCapacityScore(in.Fields)
	accumulateCapped(pts, reasons, cognitiveCap, "cognitive capacity")
	if in.Referral != nil {
		pts, reasons = referralIndicatorScore(in.Referral)
		accumulateCapped(pts, reasons, referralFactorCap, "referral indicators")
	}
	accumulate(negativeModifiers(in.Fields))

	score := clampScore(total)
	return RehabResult{
		Score:        score,
		HasPotential: score >= RehabPotentialThreshold,
		Factors:      factors,
	}
}

// capped applies a factor's documented cap. When the cap bites, the reasons
// keep their individual deltas and a capping note is appended.
func capped(points int, reasons []profile.RehabFactor, limit int, label string) (int, []profile.RehabFactor) {
	if points <= limit {
		return points, reasons
	}
	reasons = append(reasons, profile.RehabFactor{
		Points: limit - points,
		Reason: fmt.Sprintf("%s capped at %d", label, limit),
	})
	return limit, reasons
}

func episodeBaseScore(in RehabInput) (int, []profile.RehabFactor) {
	// A default-fallback classification is too weak to seed points.
	if in.EpisodeMethod == profile.DerivedByDefault {
		return 0, nil
	}
	pts := in.Episode.Config().RehabBasePoints
	if pts == 0 {
		return 0, nil
	}
	return pts, []profile.RehabFactor{{
		Points: pts,
		Reason: fmt.Sprintf("episode type %s", in.Episode),
	}}
}

func therapyIntensityScore(f mapper.Fields) (int, []profile.RehabFactor) {
	pts := 0
	var reasons []profile.RehabFactor
	therapy := mapper.IntOr(f.WeeklyTherapyMinutes, 0)
	switch {
	case therapy >= highTherapyMinutes:
		pts += 15
		reasons = append(reasons, profile.RehabFactor{Points: 15, Reason: "therapy >= 60 min/week"})
	case therapy >= moderateTherapyMinutes:
		pts += 10
		reasons = append(reasons, profile.RehabFactor{Points: 10, Reason: "therapy 30-59 min/week"})
	case therapy > 0:
		pts += 5
		reasons = append(reasons, profile.RehabFactor{Points: 5, Reason: "some weekly therapy"})
	}
	if mapper.BoolOr(f.TherapyRecommended, false) {
		pts += 5
		reasons = append(reasons, profile.RehabFactor{Points: 5, Reason: "therapy recommended"})
	}
	return pts, reasons
}

func functionalImprovementScore(f mapper.Fields) (int, []profile.RehabFactor) {
	pts := 0
	var reasons []profile.RehabFactor
	if mapper.BoolOr(f.RecentDecline, false) {
		pts += 10
		reasons = append(reasons, profile.RehabFactor{Points: 10, Reason: "recent functional decline"})
	}
	// Only an explicit "not at baseline" counts; unknown baseline status earns nothing.
	if f.AtBaseline != nil && !*f.AtBaseline {
		pts += 10
		reasons = append(reasons, profile.RehabFactor{Points: 10, Reason: "not at functional baseline"})
	}
	if mapper.BoolOr(f.ImprovementNoted, false) {
		pts += 10
		reasons = append(reasons, profile.RehabFactor{Points: 10, Reason: "improvement already noted"})
	}
	if mapper.BoolOr(f.PatientMotivated, false) {
		pts += 5
		reasons = append(reasons, profile.RehabFactor{Points: 5, Reason: "patient motivated"})
	}
	return pts, reasons
}

// adlMobilityScore is non-monotonic in ADL: moderate impairment
// (2-4) scores highest, near-independence and total dependence score low.
func adlMobilityScore(f mapper.Fields) (int, []profile.RehabFactor) {
	pts := 0
	var reasons []profile.RehabFactor
	adl := mapper.IntOr(f.ADLSupportLevel, 0)
	switch {
	case adl >= 2 && adl <= 4:
		pts += 15
		reasons = append(reasons, profile.RehabFactor{Points: 15, Reason: "moderate ADL impairment (2-4)"})
	case adl >= 5:
		pts += 5
		reasons = append(reasons, profile.RehabFactor{Points: 5, Reason: "severe ADL impairment"})
	}
	mobility := mapper.IntOr(f.MobilityComplexity, 0)
	if mobility >= 2 && mobility <= 4 {
		pts += 5
		reasons = append(reasons, profile.RehabFactor{Points: 5, Reason: "moderate mobility impairment (2-4)"})
	}
	return pts, reasons
}

// cognitiveCapacityScore decreases monotonically with impairment:
// participation capacity shrinks as cognition declines.
func cognitiveCapacityScore(f mapper.Fields) (int, []profile.RehabFactor) {
	cog := mapper.IntOr(f.CognitiveComplexity, 0)
	var pts int
	switch {
	case cog <= 1:
		pts = 10
	case cog <= 2:
		pts = 7
	case cog <= 3:
		pts = 4
	default:
		return 0, nil
	}
	return pts, []profile.RehabFactor{{
		Points: pts,
		Reason: fmt.Sprintf("cognitive capacity (level %d)", cog),
	}}
}

func referralIndicatorScore(r *referral.Referral) (int, []profile.RehabFactor) {
	pts := 0
	var reasons []profile.RehabFactor
	if containsRehabKeyword(r.Reason + " " + r.Notes) {
		pts += 10
		reasons = append(reasons, profile.RehabFactor{Points: 10, Reason: "rehab keywords in referral"})
	}
	if r.IsPostSurgical() {
		pts += 10
		reasons = append(reasons, profile.RehabFactor{Points: 10, Reason: "post-surgical referral"})
	}
	if r.ExpectedLengthOfStayDays != nil && *r.ExpectedLengthOfStayDays <= expectedShortStayDays {
		pts += 5
		reasons = append(reasons, profile.RehabFactor{Points: 5, Reason: "expected short stay"})
	}
	return pts, reasons
}

// negativeModifiers are strictly subtractive; only the final clamp floors
// the total.
func negativeModifiers(f mapper.Fields) (int, []profile.RehabFactor) {
	pts := 0
	var reasons []profile.RehabFactor
	if mapper.IntOr(f.CognitiveComplexity, 0) >= 5 {
		pts -= 15
		reasons = append(reasons, profile.RehabFactor{Points: -15, Reason: "severe cognitive impairment"})
	}
	if mapper.IntOr(f.HealthInstability, 0) >= 4 {
		pts -= 10
		reasons = append(reasons, profile.RehabFactor{Points: -10, Reason: "high health instability"})
	}
	if f.Prognosis != nil && *f.Prognosis <= 2 {
		pts -= 20
		reasons = append(reasons, profile.RehabFactor{Points: -20, Reason: "poor prognosis"})
	}
	if mapper.IntOr(f.ADLSupportLevel, 0) == 6 {
		pts -= 10
		reasons = append(reasons, profile.RehabFactor{Points: -10, Reason: "total ADL dependence"})
	}
	if mapper.BoolOr(f.LongTermDecline, false) {
		pts -= 10
		reasons = append(reasons, profile.RehabFactor{Points: -10, Reason: "long-term decline trajectory"})
	}
	return pts, reasons
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
