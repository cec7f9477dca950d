// Package bundling generates, validates, and compares care bundle scenarios
// from a built needs profile.
package bundling

import (
	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/scenario"
)

// DefaultMaxAxes bounds automatic axis selection.
const DefaultMaxAxes = 4

// SelectOptions override automatic axis selection.
type SelectOptions struct {
	MaxAxes  int
	Required []scenario.Axis
	Excluded []scenario.Axis
}

// axisApplies holds the profile-driven applicability rule per axis.
// BALANCED is handled outside the table: it is always eligible as the
// guaranteed baseline unless explicitly excluded.
var axisApplies = map[scenario.Axis]func(p *profile.NeedsProfile) bool{
	scenario.AxisRecoveryRehab: func(p *profile.NeedsProfile) bool {
		return p.HasRehabPotential
	},
	scenario.AxisSafetyStability: func(p *profile.NeedsProfile) bool {
		return p.FallsRiskLevel >= 1 || p.HealthInstability >= 3
	},
	scenario.AxisCaregiverRelief: func(p *profile.NeedsProfile) bool {
		return p.CaregiverStress || (p.CaregiverAvailable && p.ADLSupportLevel >= 4)
	},
	scenario.AxisTechEnabled: func(p *profile.NeedsProfile) bool {
		return p.TechReady && p.HealthInstability <= 2
	},
	scenario.AxisMedicalIntensive: func(p *profile.NeedsProfile) bool {
		return p.HealthInstability >= 4 || len(p.ActiveConditions) >= 4
	},
	scenario.AxisCognitiveSupport: func(p *profile.NeedsProfile) bool {
		return p.CognitiveComplexity >= 3 || p.BehaviouralComplexity >= 2
	},
	scenario.AxisCommunityIntegrated: func(p *profile.NeedsProfile) bool {
		return p.LivesAlone && p.CognitiveComplexity <= 2 && p.EpisodeType != profile.EpisodePalliative
	},
}

// SelectAxes picks up to MaxAxes applicable axes in static priority order,
// primaries before secondaries. Required axes are seeded first in their
// given order; excluded axes never appear.
func SelectAxes(p *profile.NeedsProfile, opts SelectOptions) []scenario.Axis {
	maxAxes := opts.MaxAxes
	if maxAxes <= 0 {
		maxAxes = DefaultMaxAxes
	}

	excluded := make(map[scenario.Axis]bool, len(opts.Excluded))
	for _, a := range opts.Excluded {
		excluded[a] = true
	}

	var selected []scenario.Axis
	chosen := make(map[scenario.Axis]bool)
	add := func(a scenario.Axis) {
		if !chosen[a] && !excluded[a] && len(selected) < maxAxes {
			selected = append(selected, a)
			chosen[a] = true
		}
	}

	for _, a := range opts.Required {
		if a.IsValid() {
			add(a)
		}
	}

	// AllAxes is ordered by declared priority, primaries first. The balanced
	// baseline keeps a reserved slot so applicable axes cannot crowd it out.
	for _, a := range scenario.AllAxes {
		if a == scenario.AxisBalanced {
			continue
		}
		rule := axisApplies[a]
		if rule != nil && rule(p) && len(selected) < maxAxes-1 {
			add(a)
		}
	}
	add(scenario.AxisBalanced)

	// Degenerate option sets (everything excluded) still yield a baseline:
	// the pipeline never returns zero axes.
	if len(selected) == 0 {
		selected = append(selected, scenario.AxisBalanced)
	}
	return selected
}

// DominantAxis names the axis that best matches the profile's dominant
// derived characteristic, or BALANCED when nothing clearly dominates. Used
// to flag the recommended scenario.
func DominantAxis(p *profile.NeedsProfile) scenario.Axis {
	switch {
	case p.HasRehabPotential:
		return scenario.AxisRecoveryRehab
	case p.HealthInstability >= 4:
		return scenario.AxisMedicalIntensive
	case p.FallsRiskLevel >= 1 || p.HealthInstability >= 3:
		return scenario.AxisSafetyStability
	case p.CognitiveComplexity >= 4 || p.BehaviouralComplexity >= 3:
		return scenario.AxisCognitiveSupport
	case p.CaregiverStress:
		return scenario.AxisCaregiverRelief
	default:
		return scenario.AxisBalanced
	}
}
