package bundling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelinkhq/carebundle/internal/bundling"
	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/scenario"
)

func TestSelectAxes_BalancedAlwaysPresent(t *testing.T) {
	// A profile matching every applicability rule still cannot crowd out the
	// balanced baseline.
	p := &profile.NeedsProfile{
		HasRehabPotential:     true,
		FallsRiskLevel:        2,
		HealthInstability:     5,
		CognitiveComplexity:   4,
		BehaviouralComplexity: 3,
		CaregiverStress:       true,
		ActiveConditions:      []string{"a", "b", "c", "d"},
	}

	axes := bundling.SelectAxes(p, bundling.SelectOptions{MaxAxes: 4})

	require.Len(t, axes, 4)
	assert.Contains(t, axes, scenario.AxisBalanced)
	assert.Equal(t, scenario.AxisBalanced, axes[len(axes)-1])
}

func TestSelectAxes_PriorityOrder(t *testing.T) {
	p := &profile.NeedsProfile{
		HasRehabPotential: true,
		FallsRiskLevel:    1,
		CaregiverStress:   true,
	}

	axes := bundling.SelectAxes(p, bundling.SelectOptions{MaxAxes: 4})

	require.Len(t, axes, 4)
	assert.Equal(t, scenario.AxisRecoveryRehab, axes[0])
	assert.Equal(t, scenario.AxisSafetyStability, axes[1])
	assert.Equal(t, scenario.AxisCaregiverRelief, axes[2])
	assert.Equal(t, scenario.AxisBalanced, axes[3])
}

func TestSelectAxes_EmptyProfileYieldsBalancedOnly(t *testing.T) {
	axes := bundling.SelectAxes(&profile.NeedsProfile{}, bundling.SelectOptions{})
	assert.Equal(t, []scenario.Axis{scenario.AxisBalanced}, axes)
}

func TestSelectAxes_RequiredSeededFirst(t *testing.T) {
	p := &profile.NeedsProfile{HasRehabPotential: true}

	axes := bundling.SelectAxes(p, bundling.SelectOptions{
		MaxAxes:  3,
		Required: []scenario.Axis{scenario.AxisTechEnabled},
	})

	require.NotEmpty(t, axes)
	assert.Equal(t, scenario.AxisTechEnabled, axes[0])
	assert.Contains(t, axes, scenario.AxisBalanced)
}

func TestSelectAxes_ExcludedNeverAppears(t *testing.T) {
	p := &profile.NeedsProfile{
		HasRehabPotential: true,
		FallsRiskLevel:    1,
	}

	axes := bundling.SelectAxes(p, bundling.SelectOptions{
		MaxAxes:  4,
		Excluded: []scenario.Axis{scenario.AxisRecoveryRehab},
	})

	assert.NotContains(t, axes, scenario.AxisRecoveryRehab)
	assert.Contains(t, axes, scenario.AxisSafetyStability)
}

func TestSelectAxes_TechRequiresStability(t *testing.T) {
	ready := &profile.NeedsProfile{TechReady: true, HealthInstability: 2}
	unstable := &profile.NeedsProfile{TechReady: true, HealthInstability: 3}

	assert.Contains(t, bundling.SelectAxes(ready, bundling.SelectOptions{}), scenario.AxisTechEnabled)
	assert.NotContains(t, bundling.SelectAxes(unstable, bundling.SelectOptions{}), scenario.AxisTechEnabled)
}

func TestDominantAxis(t *testing.T) {
	cases := []struct {
		name string
		p    *profile.NeedsProfile
		want scenario.Axis
	}{
		{
			name: "rehab potential dominates",
			p:    &profile.NeedsProfile{HasRehabPotential: true, HealthInstability: 5},
			want: scenario.AxisRecoveryRehab,
		},
		{
			name: "high instability is medical intensive",
			p:    &profile.NeedsProfile{HealthInstability: 4},
			want: scenario.AxisMedicalIntensive,
		},
		{
			name: "falls risk is safety",
			p:    &profile.NeedsProfile{FallsRiskLevel: 1},
			want: scenario.AxisSafetyStability,
		},
		{
			name: "cognition is cognitive support",
			p:    &profile.NeedsProfile{CognitiveComplexity: 4},
			want: scenario.AxisCognitiveSupport,
		},
		{
			name: "caregiver stress",
			p:    &profile.NeedsProfile{CaregiverStress: true},
			want: scenario.AxisCaregiverRelief,
		},
		{
			name: "nothing dominates",
			p:    &profile.NeedsProfile{},
			want: scenario.AxisBalanced,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, bundling.DominantAxis(tc.p))
		})
	}
}
