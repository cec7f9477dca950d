package scenario

import (
	"time"

	"github.com/google/uuid"
)

// Category names a service line's category.
type Category string

const (
	CategoryNursing             Category = "nursing"
	CategoryPersonalSupport     Category = "personal_support"
	CategoryPhysiotherapy       Category = "physiotherapy"
	CategoryOccupationalTherapy Category = "occupational_therapy"
	CategorySpeechTherapy       Category = "speech_therapy"
	CategorySocialWork          Category = "social_work"
	CategoryNutrition           Category = "nutrition"
	CategoryRemoteMonitoring    Category = "remote_monitoring"
	CategoryRespite             Category = "respite"
	CategoryHomemaking          Category = "homemaking"
	CategoryDayProgram          Category = "day_program"
)

// TherapyCategories are the categories counted as therapy for validation
// and narrative purposes.
var TherapyCategories = map[Category]bool{
	CategoryPhysiotherapy:       true,
	CategoryOccupationalTherapy: true,
	CategorySpeechTherapy:       true,
}

// CoreCoverageCategories count toward the per-episode minimum weekly
// nursing/personal-support floor.
var CoreCoverageCategories = map[Category]bool{
	CategoryNursing:         true,
	CategoryPersonalSupport: true,
}

// Discipline identifies the provider type delivering a service line.
type Discipline string

const (
	DisciplineRN   Discipline = "registered_nurse"
	DisciplineRPN  Discipline = "practical_nurse"
	DisciplinePSW  Discipline = "personal_support_worker"
	DisciplinePT   Discipline = "physiotherapist"
	DisciplineOT   Discipline = "occupational_therapist"
	DisciplineSLP  Discipline = "speech_language_pathologist"
	DisciplineSW   Discipline = "social_worker"
	DisciplineRD   Discipline = "dietitian"
	DisciplineTech Discipline = "monitoring_technician"
)

type PriorityTag string

const (
	PriorityCore        PriorityTag = "core"
	PriorityRecommended PriorityTag = "recommended"
	PriorityOptional    PriorityTag = "optional"
)

type DeliveryMode string

const (
	DeliveryInPerson DeliveryMode = "in_person"
	DeliveryVirtual  DeliveryMode = "virtual"
)

// ServiceLine is one scheduled service within a scenario.
type ServiceLine struct {
	Category            Category     `json:"category"`
	Discipline          Discipline   `json:"discipline"`
	WeeklyFrequency     float64      `json:"weekly_frequency"` // visits per week
	UnitDurationMinutes int          `json:"unit_duration_minutes"`
	Priority            PriorityTag  `json:"priority"`
	DeliveryMode        DeliveryMode `json:"delivery_mode"`
}

// WeeklyMinutes returns the total scheduled minutes per week for the line.
func (l ServiceLine) WeeklyMinutes() float64 {
	return l.WeeklyFrequency * float64(l.UnitDurationMinutes)
}

type CostStatus string

const (
	CostWithinCap CostStatus = "within_cap"
	CostNearCap   CostStatus = "near_cap"
	CostOverCap   CostStatus = "over_cap"
)

// OperationalMetrics summarizes a scenario's weekly delivery footprint.
type OperationalMetrics struct {
	TotalWeeklyHours  float64  `json:"total_weekly_hours"`
	TotalWeeklyVisits float64  `json:"total_weekly_visits"`
	InPersonPercent   float64  `json:"in_person_percent"`
	VirtualPercent    float64  `json:"virtual_percent"`
	DisciplineCount   int      `json:"discipline_count"`
	Disciplines       []string `json:"disciplines"`
}

// CostAnnotation carries the cost and operational view of a scenario. The
// reference cap is a benchmark, never a constraint: generation does not
// reject over-cap scenarios.
type CostAnnotation struct {
	WeeklyCost   float64            `json:"weekly_cost"`
	ReferenceCap float64            `json:"reference_cap"`
	Status       CostStatus         `json:"status"`
	Note         string             `json:"note"`
	Metrics      OperationalMetrics `json:"metrics"`
}

// Meta carries validity and selection flags for a generated scenario.
type Meta struct {
	Valid         bool     `json:"valid"`
	Warnings      []string `json:"warnings,omitempty"`
	Errors        []string `json:"errors,omitempty"`
	IsRecommended bool     `json:"is_recommended"`
}

// Bundle is one complete, costed, validated alternative care plan generated
// along an axis. Bundles are generated fresh per call and never persisted by
// this subsystem.
type Bundle struct {
	ID            uuid.UUID       `json:"id"`
	Axis          Axis            `json:"axis"`
	SecondaryAxes []Axis          `json:"secondary_axes,omitempty"`
	ServiceLines  []ServiceLine   `json:"service_lines"`
	Cost          *CostAnnotation `json:"cost,omitempty"`
	Meta          Meta            `json:"meta"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// LineDiff is one per-category row in a scenario comparison.
type LineDiff struct {
	Category       Category `json:"category"`
	InA            bool     `json:"in_a"`
	InB            bool     `json:"in_b"`
	FrequencyDelta float64  `json:"frequency_delta"` // B minus A, visits/week
}

// Diff is a structural comparison between two scenarios.
type Diff struct {
	AxisA           Axis       `json:"axis_a"`
	AxisB           Axis       `json:"axis_b"`
	ServicesAdded   []Category `json:"services_added"`   // present only in B
	ServicesRemoved []Category `json:"services_removed"` // present only in A
	LineDiffs       []LineDiff `json:"line_diffs"`
	CostDelta       float64    `json:"cost_delta"`  // B minus A, weekly
	HoursDelta      float64    `json:"hours_delta"` // B minus A, weekly
	EmphasisShift   string     `json:"emphasis_shift"`
}
