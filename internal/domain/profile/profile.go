package profile

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies where a profile field came from. Listed in merge
// priority order: a higher-priority source's value always wins.
type Source string

const (
	SourceFullAssessment    Source = "full_assessment"
	SourceContactAssessment Source = "contact_assessment"
	SourceScreener          Source = "behavioural_screener"
	SourceReferral          Source = "referral"
	SourceFamilyInput       Source = "family_input"
)

// SourceAvailability records, per source, whether it contributed and when
// the underlying record was taken.
type SourceAvailability struct {
	Available  bool       `json:"available"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

// RehabFactor is one explainability entry from the rehab potential scorer.
type RehabFactor struct {
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

// NeedsProfile is the fused, normalized representation of a patient's
// functional and clinical status. It is an immutable value object: a rebuild
// replaces the whole profile, nothing mutates one in place.
type NeedsProfile struct {
	PatientID        uuid.UUID `json:"patient_id"`
	BuiltAt          time.Time `json:"built_at"`
	CutoffWindowDays int       `json:"cutoff_window_days"`

	// Functional dimensions, each independently sourced.
	ADLSupportLevel       int `json:"adl_support_level"`      // 0-6
	IADLSupportLevel      int `json:"iadl_support_level"`     // 0-6
	MobilityComplexity    int `json:"mobility_complexity"`    // 0-6
	CognitiveComplexity   int `json:"cognitive_complexity"`   // 0-6
	BehaviouralComplexity int `json:"behavioural_complexity"` // 0-4
	HealthInstability     int `json:"health_instability"`     // 0-5
	FallsRiskLevel        int `json:"falls_risk_level"`       // 0-2

	// Derived classifications.
	EpisodeType         EpisodeType          `json:"episode_type"`
	EpisodeDerivedBy    DerivationMethod     `json:"episode_derived_by"`
	EpisodeConfidence   DerivationConfidence `json:"episode_confidence"`
	RehabPotentialScore int                  `json:"rehab_potential_score"` // 0-100
	HasRehabPotential   bool                 `json:"has_rehab_potential"`
	RehabFactors        []RehabFactor        `json:"rehab_factors,omitempty"`
	RUGCategory         string               `json:"rug_category,omitempty"` // only with a full assessment
	NeedsCluster        NeedsCluster         `json:"needs_cluster"`

	// Therapy and medical signals.
	WeeklyTherapyMinutes int      `json:"weekly_therapy_minutes"`
	ActiveConditions     []string `json:"active_conditions,omitempty"`
	RecentDecline        bool     `json:"recent_decline"`
	HospiceEnrolled      bool     `json:"hospice_enrolled"`

	// Caregiver and readiness signals (family input / patient record).
	CaregiverStress    bool `json:"caregiver_stress"`
	CaregiverAvailable bool `json:"caregiver_available"`
	TechReady          bool `json:"tech_ready"`
	LivesAlone         bool `json:"lives_alone"`

	// Provenance.
	Sources      map[Source]SourceAvailability `json:"sources"`
	Confidence   float64                       `json:"confidence"`   // 0-1, weighted by contributing sources
	Completeness float64                       `json:"completeness"` // populated fields / populatable fields
	Minimal      bool                          `json:"minimal"`      // built without an anchor source
}

// HasSource reports whether the given source contributed to this profile.
func (p *NeedsProfile) HasSource(s Source) bool {
	av, ok := p.Sources[s]
	return ok && av.Available
}

// DominantDimension returns the highest-scoring functional dimension name,
// used for narrative summaries.
func (p *NeedsProfile) DominantDimension() string {
	dims := []struct {
		name  string
		value int
		max   int
	}{
		{"adl", p.ADLSupportLevel, 6},
		{"iadl", p.IADLSupportLevel, 6},
		{"mobility", p.MobilityComplexity, 6},
		{"cognition", p.CognitiveComplexity, 6},
		{"behaviour", p.BehaviouralComplexity, 4},
		{"health_instability", p.HealthInstability, 5},
	}
	best, bestRatio := "adl", 0.0
	for _, d := range dims {
		r := float64(d.value) / float64(d.max)
		if r > bestRatio {
			best, bestRatio = d.name, r
		}
	}
	return best
}
