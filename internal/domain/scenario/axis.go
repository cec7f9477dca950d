package scenario

// Axis is a named patient-experience emphasis used to differentiate
// alternative care bundle scenarios.
type Axis string

const (
	AxisRecoveryRehab       Axis = "recovery_rehab"
	AxisSafetyStability     Axis = "safety_stability"
	AxisTechEnabled         Axis = "tech_enabled"
	AxisCaregiverRelief     Axis = "caregiver_relief"
	AxisMedicalIntensive    Axis = "medical_intensive"
	AxisCognitiveSupport    Axis = "cognitive_support"
	AxisCommunityIntegrated Axis = "community_integrated"
	AxisBalanced            Axis = "balanced"
)

func (a Axis) IsValid() bool {
	switch a {
	case AxisRecoveryRehab, AxisSafetyStability, AxisTechEnabled, AxisCaregiverRelief,
		AxisMedicalIntensive, AxisCognitiveSupport, AxisCommunityIntegrated, AxisBalanced:
		return true
	}
	return false
}

// AllAxes lists every axis in static priority order. Primaries come before
// secondaries; ties between applicable axes are broken by this ordering.
var AllAxes = []Axis{
	AxisRecoveryRehab,
	AxisSafetyStability,
	AxisCaregiverRelief,
	AxisTechEnabled,
	AxisMedicalIntensive,
	AxisCognitiveSupport,
	AxisCommunityIntegrated,
	AxisBalanced,
}

// CategoryModifier reweights one service category when an axis is applied.
type CategoryModifier struct {
	FrequencyMultiplier float64
	Priority            PriorityTag
	// DeliveryMode, when set, overrides the template's delivery mode.
	DeliveryMode DeliveryMode
}

// AxisConfig is the static configuration carried by each axis. Generation
// and annotation read these tables; adding an axis is a table edit plus the
// selector rule.
type AxisConfig struct {
	Label       string
	Description string
	Primary     bool
	Priority    int // lower selects first among applicable axes
	Modifiers   map[Category]CategoryModifier
	Goals       []string
	TradeOff    string
}

var axisConfigs = map[Axis]AxisConfig{
	AxisRecoveryRehab: {
		Label:       "Recovery & Rehabilitation",
		Description: "Front-loads therapy services to rebuild strength and independence.",
		Primary:     true,
		Priority:    1,
		Modifiers: map[Category]CategoryModifier{
			CategoryPhysiotherapy:       {FrequencyMultiplier: 1.5, Priority: PriorityCore},
			CategoryOccupationalTherapy: {FrequencyMultiplier: 1.5, Priority: PriorityCore},
			CategorySpeechTherapy:       {FrequencyMultiplier: 1.25, Priority: PriorityRecommended},
			CategoryPersonalSupport:     {FrequencyMultiplier: 0.85, Priority: PriorityRecommended},
		},
		Goals:    []string{"regain mobility", "return to daily routines", "reduce long-term support needs"},
		TradeOff: "More therapy appointments per week in exchange for a faster path back to independence.",
	},
	AxisSafetyStability: {
		Label:       "Safety & Stability",
		Description: "Prioritizes supervision, fall prevention, and clinical monitoring.",
		Primary:     true,
		Priority:    2,
		Modifiers: map[Category]CategoryModifier{
			CategoryNursing:             {FrequencyMultiplier: 1.25, Priority: PriorityCore},
			CategoryPersonalSupport:     {FrequencyMultiplier: 1.5, Priority: PriorityCore},
			CategoryOccupationalTherapy: {FrequencyMultiplier: 1.25, Priority: PriorityRecommended},
			CategoryRemoteMonitoring:    {FrequencyMultiplier: 1.0, Priority: PriorityRecommended},
		},
		Goals:    []string{"prevent falls", "catch changes early", "stay safely at home"},
		TradeOff: "More in-home presence and check-ins, with less emphasis on intensive therapy.",
	},
	AxisCaregiverRelief: {
		Label:       "Caregiver Relief",
		Description: "Builds in respite and shared care so family caregivers can sustain their role.",
		Primary:     true,
		Priority:    3,
		Modifiers: map[Category]CategoryModifier{
			CategoryRespite:         {FrequencyMultiplier: 2.0, Priority: PriorityCore},
			CategoryPersonalSupport: {FrequencyMultiplier: 1.25, Priority: PriorityCore},
			CategoryHomemaking:      {FrequencyMultiplier: 1.5, Priority: PriorityRecommended},
			CategorySocialWork:      {FrequencyMultiplier: 1.0, Priority: PriorityRecommended},
		},
		Goals:    []string{"sustain family caregiving", "scheduled respite", "share the daily load"},
		TradeOff: "Visit times planned around the caregiver's week rather than purely clinical cadence.",
	},
	AxisTechEnabled: {
		Label:       "Technology-Enabled Care",
		Description: "Substitutes virtual visits and remote monitoring where clinically stable.",
		Primary:     true,
		Priority:    4,
		Modifiers: map[Category]CategoryModifier{
			CategoryRemoteMonitoring: {FrequencyMultiplier: 2.0, Priority: PriorityCore},
			CategoryNursing:          {FrequencyMultiplier: 0.75, Priority: PriorityRecommended, DeliveryMode: DeliveryVirtual},
			CategorySocialWork:       {FrequencyMultiplier: 1.0, Priority: PriorityOptional, DeliveryMode: DeliveryVirtual},
		},
		Goals:    []string{"fewer disruptive visits", "continuous monitoring", "quick virtual access to the team"},
		TradeOff: "Fewer in-person touchpoints, offset by daily remote monitoring and virtual check-ins.",
	},
	AxisMedicalIntensive: {
		Label:       "Medical Intensive",
		Description: "Concentrates skilled nursing for unstable or highly complex conditions.",
		Priority:    5,
		Modifiers: map[Category]CategoryModifier{
			CategoryNursing:       {FrequencyMultiplier: 2.0, Priority: PriorityCore},
			CategoryNutrition:     {FrequencyMultiplier: 1.25, Priority: PriorityRecommended},
			CategoryPhysiotherapy: {FrequencyMultiplier: 0.75, Priority: PriorityOptional},
		},
		Goals:    []string{"stabilize symptoms", "avoid hospital readmission", "tight clinical oversight"},
		TradeOff: "Clinical visits dominate the week; comfort and social services take a back seat.",
	},
	AxisCognitiveSupport: {
		Label:       "Cognitive & Behavioural Support",
		Description: "Structures the week around cognitive engagement and behavioural stability.",
		Priority:    6,
		Modifiers: map[Category]CategoryModifier{
			CategoryPersonalSupport:     {FrequencyMultiplier: 1.5, Priority: PriorityCore},
			CategoryOccupationalTherapy: {FrequencyMultiplier: 1.25, Priority: PriorityCore},
			CategorySocialWork:          {FrequencyMultiplier: 1.25, Priority: PriorityRecommended},
			CategoryDayProgram:          {FrequencyMultiplier: 1.5, Priority: PriorityRecommended},
		},
		Goals:    []string{"consistent routines", "meaningful engagement", "reduce behavioural escalations"},
		TradeOff: "Consistent familiar workers and routine over maximum clinical intensity.",
	},
	AxisCommunityIntegrated: {
		Label:       "Community Integrated",
		Description: "Leans on community programs and social connection alongside in-home care.",
		Priority:    7,
		Modifiers: map[Category]CategoryModifier{
			CategoryDayProgram:      {FrequencyMultiplier: 2.0, Priority: PriorityCore},
			CategorySocialWork:      {FrequencyMultiplier: 1.5, Priority: PriorityRecommended},
			CategoryPersonalSupport: {FrequencyMultiplier: 0.85, Priority: PriorityRecommended},
		},
		Goals:    []string{"stay connected", "get out of the house", "build a local support circle"},
		TradeOff: "Part of the support happens outside the home, which asks more of transport and energy.",
	},
	AxisBalanced: {
		Label:       "Balanced Baseline",
		Description: "Template-faithful mix across all service categories.",
		Priority:    8,
		Modifiers:   map[Category]CategoryModifier{},
		Goals:       []string{"steady broad coverage", "no single trade-off dominates"},
		TradeOff:    "No single emphasis; every need gets moderate, even coverage.",
	},
}

func (a Axis) Config() AxisConfig {
	return axisConfigs[a]
}

func (a Axis) Label() string {
	return axisConfigs[a].Label
}

func (a Axis) IsPrimary() bool {
	return axisConfigs[a].Primary
}
