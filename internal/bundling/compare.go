package bundling

import (
	"fmt"
	"sort"

	"github.com/carelinkhq/carebundle/internal/domain/scenario"
)

// CompareScenarios builds a structural diff between two bundles: services
// added and removed, per-category frequency deltas, cost and hours deltas,
// and an emphasis-shift narrative.
func CompareScenarios(a, b *scenario.Bundle) *scenario.Diff {
	freqA := frequencyByCategory(a.ServiceLines)
	freqB := frequencyByCategory(b.ServiceLines)

	categories := make(map[scenario.Category]bool, len(freqA)+len(freqB))
	for c := range freqA {
		categories[c] = true
	}
	for c := range freqB {
		categories[c] = true
	}
	ordered := make([]scenario.Category, 0, len(categories))
	for c := range categories {
		ordered = append(ordered, c)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	diff := &scenario.Diff{AxisA: a.Axis, AxisB: b.Axis}
	for _, c := range ordered {
		fa, inA := freqA[c]
		fb, inB := freqB[c]
		switch {
		case inB && !inA:
			diff.ServicesAdded = append(diff.ServicesAdded, c)
		case inA && !inB:
			diff.ServicesRemoved = append(diff.ServicesRemoved, c)
		}
		diff.LineDiffs = append(diff.LineDiffs, scenario.LineDiff{
			Category:       c,
			InA:            inA,
			InB:            inB,
			FrequencyDelta: fb - fa,
		})
	}

	if a.Cost != nil && b.Cost != nil {
		diff.CostDelta = b.Cost.WeeklyCost - a.Cost.WeeklyCost
		diff.HoursDelta = b.Cost.Metrics.TotalWeeklyHours - a.Cost.Metrics.TotalWeeklyHours
	}

	diff.EmphasisShift = emphasisShift(a.Axis, b.Axis)
	return diff
}

func frequencyByCategory(lines []scenario.ServiceLine) map[scenario.Category]float64 {
	out := make(map[scenario.Category]float64, len(lines))
	for _, l := range lines {
		out[l.Category] += l.WeeklyFrequency
	}
	return out
}

func emphasisShift(from, to scenario.Axis) string {
	if from == to {
		return fmt.Sprintf("Both scenarios share the %s emphasis.", from.Label())
	}
	return fmt.Sprintf("Moving from %s to %s: %s", from.Label(), to.Label(), to.Config().TradeOff)
}
