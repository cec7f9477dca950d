package profile

// EpisodeType classifies the clinical trajectory of the current care episode.
type EpisodeType string

const (
	EpisodePostAcute         EpisodeType = "post_acute"
	EpisodeChronic           EpisodeType = "chronic"
	EpisodeComplexContinuing EpisodeType = "complex_continuing"
	EpisodeAcuteExacerbation EpisodeType = "acute_exacerbation"
	EpisodePalliative        EpisodeType = "palliative"
)

func (e EpisodeType) IsValid() bool {
	switch e {
	case EpisodePostAcute, EpisodeChronic, EpisodeComplexContinuing,
		EpisodeAcuteExacerbation, EpisodePalliative:
		return true
	}
	return false
}

// EpisodeConfig is the static configuration attached to each episode type.
type EpisodeConfig struct {
	Label string
	// RehabBasePoints seeds the rehab potential score for this trajectory.
	RehabBasePoints int
	// MinWeeklyCoreHours is the safety floor for combined nursing and
	// personal support coverage; scenarios below it fail validation.
	MinWeeklyCoreHours float64
}

var episodeConfigs = map[EpisodeType]EpisodeConfig{
	EpisodePostAcute:         {Label: "Post-Acute Recovery", RehabBasePoints: 30, MinWeeklyCoreHours: 3},
	EpisodeChronic:           {Label: "Chronic Care", RehabBasePoints: 10, MinWeeklyCoreHours: 2},
	EpisodeComplexContinuing: {Label: "Complex Continuing Care", RehabBasePoints: 5, MinWeeklyCoreHours: 6},
	EpisodeAcuteExacerbation: {Label: "Acute Exacerbation", RehabBasePoints: 20, MinWeeklyCoreHours: 4},
	EpisodePalliative:        {Label: "Palliative Care", RehabBasePoints: 0, MinWeeklyCoreHours: 7},
}

func (e EpisodeType) Config() EpisodeConfig {
	return episodeConfigs[e]
}

// DerivationMethod records which cascade stage produced the episode type.
type DerivationMethod string

const (
	DerivedFromReferralType  DerivationMethod = "explicit_referral"
	DerivedFromDischargeData DerivationMethod = "discharge_data"
	DerivedFromAssessment    DerivationMethod = "assessment_pattern"
	DerivedByDefault         DerivationMethod = "default_fallback"
)

// DerivationConfidence is a qualitative trust level for a derivation stage.
type DerivationConfidence string

const (
	ConfidenceHigh   DerivationConfidence = "high"
	ConfidenceMedium DerivationConfidence = "medium"
	ConfidenceLow    DerivationConfidence = "low"
)

func (m DerivationMethod) Confidence() DerivationConfidence {
	switch m {
	case DerivedFromReferralType, DerivedFromDischargeData:
		return ConfidenceHigh
	case DerivedFromAssessment:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
