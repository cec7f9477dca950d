// Package cost annotates scenarios with weekly cost, cap status, and
// operational metrics. The reference cap is a benchmark only: nothing here
// rejects a scenario, and cost notes speak to patient experience, never to a
// budget-versus-care trade-off.
package cost

import (
	"sort"

	"github.com/carelinkhq/carebundle/internal/domain/scenario"
)

// DefaultReferenceCap is the default weekly cost benchmark. Policy value.
const DefaultReferenceCap = 5000.0

// Cap status thresholds as a fraction of the reference cap. Policy values:
// below 0.85 is within, 0.85 through 1.00 inclusive is near, above is over.
const (
	nearCapRatio = 0.85
	overCapRatio = 1.00
)

// hourlyRates per discipline, dollars per delivered hour.
var hourlyRates = map[scenario.Discipline]float64{
	scenario.DisciplineRN:   85,
	scenario.DisciplineRPN:  65,
	scenario.DisciplinePSW:  38,
	scenario.DisciplinePT:   95,
	scenario.DisciplineOT:   95,
	scenario.DisciplineSLP:  98,
	scenario.DisciplineSW:   80,
	scenario.DisciplineRD:   75,
	scenario.DisciplineTech: 25,
}

// virtualRateFactor discounts virtual delivery (no travel component).
const virtualRateFactor = 0.8

// Annotator computes cost annotations. Stateless; all methods are pure.
type Annotator struct{}

func NewAnnotator() *Annotator { return &Annotator{} }

// AnnotateScenario returns a copy of the bundle with a fresh cost annotation
// attached. The input bundle is not modified.
func (a *Annotator) AnnotateScenario(b *scenario.Bundle, referenceCap float64) *scenario.Bundle {
	if referenceCap <= 0 {
		referenceCap = DefaultReferenceCap
	}
	weekly := a.CalculateTotalWeeklyCost(b.ServiceLines)
	status := a.DetermineCostStatus(weekly, referenceCap)
	out := *b
	out.Cost = &scenario.CostAnnotation{
		WeeklyCost:   weekly,
		ReferenceCap: referenceCap,
		Status:       status,
		Note:         a.GenerateCostNote(b.Axis, status),
		Metrics:      a.CalculateOperationalMetrics(b.ServiceLines),
	}
	return &out
}

// CalculateServiceLineCost prices one line for a week.
func (a *Annotator) CalculateServiceLineCost(l scenario.ServiceLine) float64 {
	rate := hourlyRates[l.Discipline]
	hours := l.WeeklyMinutes() / 60
	cost := hours * rate
	if l.DeliveryMode == scenario.DeliveryVirtual {
		cost *= virtualRateFactor
	}
	return cost
}

func (a *Annotator) CalculateTotalWeeklyCost(lines []scenario.ServiceLine) float64 {
	total := 0.0
	for _, l := range lines {
		total += a.CalculateServiceLineCost(l)
	}
	return total
}

// DetermineCostStatus classifies weekly cost against the cap. The 85% and
// 100% boundaries both land in near_cap.
func (a *Annotator) DetermineCostStatus(weeklyCost, referenceCap float64) scenario.CostStatus {
	ratio := weeklyCost / referenceCap
	switch {
	case ratio < nearCapRatio:
		return scenario.CostWithinCap
	case ratio <= overCapRatio:
		return scenario.CostNearCap
	default:
		return scenario.CostOverCap
	}
}

// costNotes are patient-experience framings selected by axis and status.
// Wording never pits budget against care.
var costNotes = map[scenario.Axis]map[scenario.CostStatus]string{
	scenario.AxisRecoveryRehab: {
		scenario.CostWithinCap: "Front-loads therapy to accelerate recovery while keeping the weekly schedule manageable.",
		scenario.CostNearCap:   "Front-loads therapy to accelerate recovery; this is an intensive week of appointments.",
		scenario.CostOverCap:   "Maximizes early therapy intensity for the fastest path back to independence; this is the most service-heavy option.",
	},
	scenario.AxisSafetyStability: {
		scenario.CostWithinCap: "Builds steady in-home presence and monitoring so changes are caught early.",
		scenario.CostNearCap:   "Provides near-daily in-home presence focused on preventing falls and catching changes early.",
		scenario.CostOverCap:   "Wraps the week in supervision and monitoring for maximum safety at home.",
	},
	scenario.AxisTechEnabled: {
		scenario.CostWithinCap: "Replaces some in-person visits with daily remote monitoring and virtual check-ins.",
		scenario.CostNearCap:   "Combines remote monitoring with a full visit schedule for continuous oversight.",
		scenario.CostOverCap:   "Layers continuous remote monitoring on top of a full in-person schedule.",
	},
	scenario.AxisCaregiverRelief: {
		scenario.CostWithinCap: "Schedules regular respite so family caregiving stays sustainable.",
		scenario.CostNearCap:   "Builds substantial respite and shared care into every week.",
		scenario.CostOverCap:   "Provides extensive respite coverage, taking most of the weekly load off family caregivers.",
	},
	scenario.AxisMedicalIntensive: {
		scenario.CostWithinCap: "Concentrates skilled nursing where the clinical picture needs it most.",
		scenario.CostNearCap:   "Delivers intensive skilled nursing to stabilize symptoms at home.",
		scenario.CostOverCap:   "Provides hospital-level nursing frequency at home to avoid readmission.",
	},
	scenario.AxisCognitiveSupport: {
		scenario.CostWithinCap: "Keeps routines consistent with familiar workers and structured engagement.",
		scenario.CostNearCap:   "Structures most days around familiar routines and cognitive engagement.",
		scenario.CostOverCap:   "Surrounds the week with structured, familiar support to minimize distressing changes.",
	},
	scenario.AxisCommunityIntegrated: {
		scenario.CostWithinCap: "Blends in-home care with community programs to stay connected.",
		scenario.CostNearCap:   "Pairs a full in-home schedule with regular community participation.",
		scenario.CostOverCap:   "Combines extensive in-home support with community programming throughout the week.",
	},
	scenario.AxisBalanced: {
		scenario.CostWithinCap: "Covers every identified need with a moderate, even weekly schedule.",
		scenario.CostNearCap:   "Covers every identified need; the combined schedule fills most of the week.",
		scenario.CostOverCap:   "Covers every identified need at full intensity across all service types.",
	},
}

// GenerateCostNote picks the patient-centered note for an axis and status.
func (a *Annotator) GenerateCostNote(axis scenario.Axis, status scenario.CostStatus) string {
	if byStatus, ok := costNotes[axis]; ok {
		if note, ok := byStatus[status]; ok {
			return note
		}
	}
	return costNotes[scenario.AxisBalanced][status]
}

// CalculateOperationalMetrics summarizes weekly hours, visits, delivery mix,
// and disciplines. Percentages are visit-weighted.
func (a *Annotator) CalculateOperationalMetrics(lines []scenario.ServiceLine) scenario.OperationalMetrics {
	var hours, visits, inPerson float64
	seen := make(map[scenario.Discipline]bool)
	for _, l := range lines {
		hours += l.WeeklyMinutes() / 60
		visits += l.WeeklyFrequency
		if l.DeliveryMode != scenario.DeliveryVirtual {
			inPerson += l.WeeklyFrequency
		}
		seen[l.Discipline] = true
	}

	disciplines := make([]string, 0, len(seen))
	for d := range seen {
		disciplines = append(disciplines, string(d))
	}
	sort.Strings(disciplines)

	m := scenario.OperationalMetrics{
		TotalWeeklyHours:  round1(hours),
		TotalWeeklyVisits: round1(visits),
		DisciplineCount:   len(disciplines),
		Disciplines:       disciplines,
	}
	if visits > 0 {
		m.InPersonPercent = round1(inPerson / visits * 100)
		m.VirtualPercent = round1(100 - m.InPersonPercent)
	}
	return m
}

// GetCostBreakdownByCategory sums weekly cost per service category.
func (a *Annotator) GetCostBreakdownByCategory(lines []scenario.ServiceLine) map[scenario.Category]float64 {
	out := make(map[scenario.Category]float64)
	for _, l := range lines {
		out[l.Category] += a.CalculateServiceLineCost(l)
	}
	return out
}

// GetCostBreakdownByDiscipline sums weekly cost per discipline.
func (a *Annotator) GetCostBreakdownByDiscipline(lines []scenario.ServiceLine) map[scenario.Discipline]float64 {
	out := make(map[scenario.Discipline]float64)
	for _, l := range lines {
		out[l.Discipline] += a.CalculateServiceLineCost(l)
	}
	return out
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
