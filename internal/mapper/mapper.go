// Package mapper translates raw assessment and referral records into the
// normalized profile field space. Every mapper is a pure function of one
// source record: missing raw fields produce documented defaults, never
// errors, so incomplete data degrades confidence rather than correctness.
package mapper

import (
	"github.com/carelinkhq/carebundle/internal/domain/assessment"
)

// Fields holds normalized profile field values extracted from one source.
// Nil means the source did not populate the field, which is what the
// priority merge keys on.
type Fields struct {
	ADLSupportLevel       *int
	IADLSupportLevel      *int
	MobilityComplexity    *int
	CognitiveComplexity   *int
	BehaviouralComplexity *int
	HealthInstability     *int
	FallsRiskLevel        *int

	WeeklyTherapyMinutes *int
	Prognosis            *int
	ActiveConditions     []string

	RecentDecline             *bool
	AtBaseline                *bool
	ImprovementNoted          *bool
	PatientMotivated          *bool
	TherapyRecommended        *bool
	RehabPotentialFlagged     *bool
	AcuteChange               *bool
	ConditionFlare            *bool
	EndStageDisease           *bool
	HospiceEnrolled           *bool
	RequiresExtensiveServices *bool
	LongTermDecline           *bool
	WanderingRisk             *bool
}

// Mapper extracts normalized profile fields from one assessment type.
type Mapper interface {
	Type() assessment.Type

	// MapToProfileFields extracts every field the instrument can populate.
	MapToProfileFields(a *assessment.Assessment) Fields

	// ConfidenceWeight is the trust weight this source contributes to the
	// profile confidence average.
	ConfidenceWeight() float64

	// SupportsRUGClassification reports whether the instrument carries enough
	// detail to derive a RUG category.
	SupportsRUGClassification() bool

	// PopulatableFields lists the profile field names this instrument can
	// populate; the denominator of the completeness metric.
	PopulatableFields() []string
}

// MergeFields folds sources ordered highest priority first: the first
// non-nil value for each field wins, regardless of the order sources were
// fetched in.
func MergeFields(ordered ...Fields) Fields {
	var out Fields
	for _, f := range ordered {
		mergeInts(&out, f)
		mergeBools(&out, f)
		if out.ActiveConditions == nil && f.ActiveConditions != nil {
			out.ActiveConditions = f.ActiveConditions
		}
	}
	return out
}

func mergeInts(dst *Fields, src Fields) {
	pairs := []struct {
		d **int
		s *int
	}{
		{&dst.ADLSupportLevel, src.ADLSupportLevel},
		{&dst.IADLSupportLevel, src.IADLSupportLevel},
		{&dst.MobilityComplexity, src.MobilityComplexity},
		{&dst.CognitiveComplexity, src.CognitiveComplexity},
		{&dst.BehaviouralComplexity, src.BehaviouralComplexity},
		{&dst.HealthInstability, src.HealthInstability},
		{&dst.FallsRiskLevel, src.FallsRiskLevel},
		{&dst.WeeklyTherapyMinutes, src.WeeklyTherapyMinutes},
		{&dst.Prognosis, src.Prognosis},
	}
	for _, p := range pairs {
		if *p.d == nil && p.s != nil {
			*p.d = p.s
		}
	}
}

func mergeBools(dst *Fields, src Fields) {
	pairs := []struct {
		d **bool
		s *bool
	}{
		{&dst.RecentDecline, src.RecentDecline},
		{&dst.AtBaseline, src.AtBaseline},
		{&dst.ImprovementNoted, src.ImprovementNoted},
		{&dst.PatientMotivated, src.PatientMotivated},
		{&dst.TherapyRecommended, src.TherapyRecommended},
		{&dst.RehabPotentialFlagged, src.RehabPotentialFlagged},
		{&dst.AcuteChange, src.AcuteChange},
		{&dst.ConditionFlare, src.ConditionFlare},
		{&dst.EndStageDisease, src.EndStageDisease},
		{&dst.HospiceEnrolled, src.HospiceEnrolled},
		{&dst.RequiresExtensiveServices, src.RequiresExtensiveServices},
		{&dst.LongTermDecline, src.LongTermDecline},
		{&dst.WanderingRisk, src.WanderingRisk},
	}
	for _, p := range pairs {
		if *p.d == nil && p.s != nil {
			*p.d = p.s
		}
	}
}

// CountPopulated returns how many of the named profile fields carry a value.
func (f Fields) CountPopulated() int {
	n := 0
	for _, p := range []*int{
		f.ADLSupportLevel, f.IADLSupportLevel, f.MobilityComplexity,
		f.CognitiveComplexity, f.BehaviouralComplexity, f.HealthInstability,
		f.FallsRiskLevel, f.WeeklyTherapyMinutes, f.Prognosis,
	} {
		if p != nil {
			n++
		}
	}
	for _, p := range []*bool{
		f.RecentDecline, f.AtBaseline, f.ImprovementNoted, f.PatientMotivated,
		f.TherapyRecommended, f.RehabPotentialFlagged, f.AcuteChange,
		f.ConditionFlare, f.EndStageDisease, f.HospiceEnrolled,
		f.RequiresExtensiveServices, f.LongTermDecline, f.WanderingRisk,
	} {
		if p != nil {
			n++
		}
	}
	if f.ActiveConditions != nil {
		n++
	}
	return n
}

// IntOr dereferences p or returns def when the field was never populated.
func IntOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// BoolOr dereferences p or returns def when the field was never populated.
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// clampIntPtr clamps an optional raw value; an absent value stays absent so
// the merge and derivers never see a fabricated zero.
func clampIntPtr(p *int, lo, hi int) *int {
	if p == nil {
		return nil
	}
	return intPtr(clampInt(*p, lo, hi))
}

// clampInt bounds v to [lo, hi]; out-of-range raw values are coerced, not
// rejected.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
