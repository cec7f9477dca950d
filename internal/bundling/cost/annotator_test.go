package cost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelinkhq/carebundle/internal/bundling/cost"
	"github.com/carelinkhq/carebundle/internal/domain/scenario"
)

func TestDetermineCostStatus_Boundaries(t *testing.T) {
	a := cost.NewAnnotator()
	const refCap = 1000.0

	cases := []struct {
		weekly float64
		want   scenario.CostStatus
	}{
		{0, scenario.CostWithinCap},
		{849.99, scenario.CostWithinCap},
		{850, scenario.CostNearCap},  // 85% boundary lands in near_cap
		{999, scenario.CostNearCap},
		{1000, scenario.CostNearCap}, // 100% boundary still near_cap
		{1000.01, scenario.CostOverCap},
		{2500, scenario.CostOverCap},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, a.DetermineCostStatus(tc.weekly, refCap), "weekly %.2f", tc.weekly)
	}
}

func TestCalculateServiceLineCost(t *testing.T) {
	a := cost.NewAnnotator()

	// RN at $85/h, two 30-minute visits = one hour per week.
	rn := scenario.ServiceLine{
		Category:            scenario.CategoryNursing,
		Discipline:          scenario.DisciplineRN,
		WeeklyFrequency:     2,
		UnitDurationMinutes: 30,
		DeliveryMode:        scenario.DeliveryInPerson,
	}
	assert.InDelta(t, 85.0, a.CalculateServiceLineCost(rn), 0.001)

	// Virtual delivery discounts the rate.
	rn.DeliveryMode = scenario.DeliveryVirtual
	assert.InDelta(t, 68.0, a.CalculateServiceLineCost(rn), 0.001)
}

func TestAnnotateScenario(t *testing.T) {
	a := cost.NewAnnotator()

	b := &scenario.Bundle{
		Axis: scenario.AxisSafetyStability,
		ServiceLines: []scenario.ServiceLine{
			{Category: scenario.CategoryNursing, Discipline: scenario.DisciplineRN, WeeklyFrequency: 2, UnitDurationMinutes: 60, DeliveryMode: scenario.DeliveryInPerson},
			{Category: scenario.CategoryPersonalSupport, Discipline: scenario.DisciplinePSW, WeeklyFrequency: 5, UnitDurationMinutes: 60, DeliveryMode: scenario.DeliveryInPerson},
			{Category: scenario.CategoryRemoteMonitoring, Discipline: scenario.DisciplineTech, WeeklyFrequency: 7, UnitDurationMinutes: 10, DeliveryMode: scenario.DeliveryVirtual},
		},
	}

	out := a.AnnotateScenario(b, 1000)

	require.NotNil(t, out.Cost)
	// RN 2h*85 + PSW 5h*38 + tech 7/6h*25*0.8
	assert.InDelta(t, 170+190+23.33, out.Cost.WeeklyCost, 0.01)
	assert.Equal(t, scenario.CostWithinCap, out.Cost.Status)
	assert.NotEmpty(t, out.Cost.Note)

	m := out.Cost.Metrics
	assert.InDelta(t, 8.2, m.TotalWeeklyHours, 0.01)
	assert.InDelta(t, 14.0, m.TotalWeeklyVisits, 0.001)
	assert.InDelta(t, 50.0, m.InPersonPercent, 0.001)
	assert.InDelta(t, 50.0, m.VirtualPercent, 0.001)
	assert.Equal(t, 3, m.DisciplineCount)
}

func TestAnnotateScenario_ZeroCapUsesDefault(t *testing.T) {
	a := cost.NewAnnotator()
	b := &scenario.Bundle{Axis: scenario.AxisBalanced}

	out := a.AnnotateScenario(b, 0)

	require.NotNil(t, out.Cost)
	assert.Equal(t, cost.DefaultReferenceCap, out.Cost.ReferenceCap)
}

func TestAnnotateScenario_LeavesInputBundleUntouched(t *testing.T) {
	a := cost.NewAnnotator()
	b := &scenario.Bundle{
		Axis: scenario.AxisSafetyStability,
		ServiceLines: []scenario.ServiceLine{
			{Discipline: scenario.DisciplinePSW, WeeklyFrequency: 5, UnitDurationMinutes: 60, DeliveryMode: scenario.DeliveryInPerson},
		},
	}

	out := a.AnnotateScenario(b, 5000)

	require.NotNil(t, out.Cost)
	assert.Nil(t, b.Cost, "annotation goes on the returned copy, not the input")
	assert.Equal(t, b.ServiceLines, out.ServiceLines)
}

func TestGenerateCostNote_FallsBackToBalanced(t *testing.T) {
	a := cost.NewAnnotator()

	known := a.GenerateCostNote(scenario.AxisRecoveryRehab, scenario.CostNearCap)
	fallback := a.GenerateCostNote(scenario.Axis("unknown"), scenario.CostNearCap)
	balanced := a.GenerateCostNote(scenario.AxisBalanced, scenario.CostNearCap)

	assert.NotEmpty(t, known)
	assert.Equal(t, balanced, fallback)
}

func TestCostBreakdowns(t *testing.T) {
	a := cost.NewAnnotator()
	lines := []scenario.ServiceLine{
		{Category: scenario.CategoryNursing, Discipline: scenario.DisciplineRN, WeeklyFrequency: 1, UnitDurationMinutes: 60, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryNursing, Discipline: scenario.DisciplineRPN, WeeklyFrequency: 1, UnitDurationMinutes: 60, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryPhysiotherapy, Discipline: scenario.DisciplinePT, WeeklyFrequency: 1, UnitDurationMinutes: 60, DeliveryMode: scenario.DeliveryInPerson},
	}

	byCategory := a.GetCostBreakdownByCategory(lines)
	assert.InDelta(t, 150.0, byCategory[scenario.CategoryNursing], 0.001)
	assert.InDelta(t, 95.0, byCategory[scenario.CategoryPhysiotherapy], 0.001)

	byDiscipline := a.GetCostBreakdownByDiscipline(lines)
	assert.InDelta(t, 85.0, byDiscipline[scenario.DisciplineRN], 0.001)

	total := a.CalculateTotalWeeklyCost(lines)
	assert.InDelta(t, 245.0, total, 0.001)
}
