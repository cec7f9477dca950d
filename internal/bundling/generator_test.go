package bundling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelinkhq/carebundle/internal/bundling"
	"github.com/carelinkhq/carebundle/internal/bundling/cost"
	"github.com/carelinkhq/carebundle/internal/bundling/template"
	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/scenario"
)

func newGenerator() *bundling.Generator {
	return bundling.NewGenerator(template.NewStaticResolver(), cost.NewAnnotator())
}

func postAcuteProfile() *profile.NeedsProfile {
	return &profile.NeedsProfile{
		EpisodeType:         profile.EpisodePostAcute,
		EpisodeDerivedBy:    profile.DerivedFromAssessment,
		NeedsCluster:        profile.ClusterRehabFocused,
		HasRehabPotential:   true,
		RehabPotentialScore: 60,
		ADLSupportLevel:     3,
	}
}

func TestGenerateScenarios_CountWithinBounds(t *testing.T) {
	g := newGenerator()

	profiles := []*profile.NeedsProfile{
		postAcuteProfile(),
		{EpisodeType: profile.EpisodeChronic, NeedsCluster: profile.ClusterMinimalSupport},
		{
			EpisodeType:           profile.EpisodePalliative,
			NeedsCluster:          profile.ClusterPalliativeComfort,
			HealthInstability:     5,
			CognitiveComplexity:   4,
			BehaviouralComplexity: 3,
			FallsRiskLevel:        2,
			CaregiverStress:       true,
		},
	}

	for _, p := range profiles {
		bundles := g.GenerateScenarios(p, bundling.GenerateOptions{})
		assert.GreaterOrEqual(t, len(bundles), bundling.DefaultMinScenarios)
		assert.LessOrEqual(t, len(bundles), bundling.DefaultMaxScenarios)
	}
}

func TestGenerateScenarios_ThinProfileIsPaddedToMinimum(t *testing.T) {
	g := newGenerator()

	// Nothing applies except the balanced baseline; padding walks the
	// priority order to reach the minimum comparison set.
	bundles := g.GenerateScenarios(&profile.NeedsProfile{
		EpisodeType:  profile.EpisodeChronic,
		NeedsCluster: profile.ClusterMinimalSupport,
	}, bundling.GenerateOptions{})

	require.Len(t, bundles, bundling.DefaultMinScenarios)

	seen := make(map[scenario.Axis]bool)
	for _, b := range bundles {
		assert.False(t, seen[b.Axis], "axes must be distinct")
		seen[b.Axis] = true
	}
	assert.True(t, seen[scenario.AxisBalanced])
}

func TestGenerateScenarios_ExactlyOneRecommended(t *testing.T) {
	g := newGenerator()

	for _, p := range []*profile.NeedsProfile{
		postAcuteProfile(),
		{EpisodeType: profile.EpisodeChronic, NeedsCluster: profile.ClusterMinimalSupport},
	} {
		bundles := g.GenerateScenarios(p, bundling.GenerateOptions{})

		recommended := 0
		for _, b := range bundles {
			if b.Meta.IsRecommended {
				recommended++
			}
		}
		assert.Equal(t, 1, recommended)
	}
}

func TestGenerateScenarios_RecommendedFollowsDominantAxis(t *testing.T) {
	g := newGenerator()

	bundles := g.GenerateScenarios(postAcuteProfile(), bundling.GenerateOptions{})

	for _, b := range bundles {
		if b.Meta.IsRecommended {
			assert.Equal(t, scenario.AxisRecoveryRehab, b.Axis)
			return
		}
	}
	t.Fatal("no recommended bundle")
}

func TestGenerateSingleScenario_RecoveryAxisBoostsTherapy(t *testing.T) {
	g := newGenerator()
	p := postAcuteProfile()

	recovery := g.GenerateSingleScenario(p, scenario.AxisRecoveryRehab, nil, bundling.GenerateOptions{})
	balanced := g.GenerateSingleScenario(p, scenario.AxisBalanced, nil, bundling.GenerateOptions{})

	freq := func(b *scenario.Bundle, cat scenario.Category) float64 {
		for _, l := range b.ServiceLines {
			if l.Category == cat {
				return l.WeeklyFrequency
			}
		}
		t.Fatalf("category %s missing", cat)
		return 0
	}

	assert.InDelta(t, freq(balanced, scenario.CategoryPhysiotherapy)*1.5,
		freq(recovery, scenario.CategoryPhysiotherapy), 0.001)
	assert.InDelta(t, freq(balanced, scenario.CategoryOccupationalTherapy)*1.5,
		freq(recovery, scenario.CategoryOccupationalTherapy), 0.001)
}

func TestGenerateSingleScenario_AlwaysAnnotated(t *testing.T) {
	g := newGenerator()

	b := g.GenerateSingleScenario(postAcuteProfile(), scenario.AxisBalanced, nil, bundling.GenerateOptions{})

	require.NotNil(t, b.Cost)
	assert.Greater(t, b.Cost.WeeklyCost, 0.0)
	assert.Equal(t, cost.DefaultReferenceCap, b.Cost.ReferenceCap)
	assert.NotEmpty(t, b.Cost.Note)
	assert.NotZero(t, b.GeneratedAt)
}

func TestGenerateScenarios_InvalidScenarioReturnedWithErrors(t *testing.T) {
	g := newGenerator()

	// Chronic template has no therapy lines; the recovery axis demotes
	// personal support from core, leaving the falls risk uncovered.
	p := &profile.NeedsProfile{
		EpisodeType:       profile.EpisodeChronic,
		NeedsCluster:      profile.ClusterHealthMonitoring,
		HasRehabPotential: true,
		FallsRiskLevel:    1,
	}

	bundles := g.GenerateScenarios(p, bundling.GenerateOptions{})

	var recovery *scenario.Bundle
	for _, b := range bundles {
		if b.Axis == scenario.AxisRecoveryRehab {
			recovery = b
		}
	}
	require.NotNil(t, recovery, "failing scenarios are returned, not dropped")
	assert.False(t, recovery.Meta.Valid)
	assert.NotEmpty(t, recovery.Meta.Errors)
}

func TestGenerateScenarios_DeterministicForSameInputs(t *testing.T) {
	g := newGenerator()
	p := postAcuteProfile()

	a := g.GenerateScenarios(p, bundling.GenerateOptions{})
	b := g.GenerateScenarios(p, bundling.GenerateOptions{})

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Axis, b[i].Axis)
		assert.Equal(t, a[i].ServiceLines, b[i].ServiceLines)
		assert.Equal(t, a[i].Meta.Valid, b[i].Meta.Valid)
		assert.InDelta(t, a[i].Cost.WeeklyCost, b[i].Cost.WeeklyCost, 0.001)
	}
}

func TestCompareScenarios(t *testing.T) {
	g := newGenerator()
	p := postAcuteProfile()

	recovery := g.GenerateSingleScenario(p, scenario.AxisRecoveryRehab, nil, bundling.GenerateOptions{})
	balanced := g.GenerateSingleScenario(p, scenario.AxisBalanced, nil, bundling.GenerateOptions{})

	diff := bundling.CompareScenarios(balanced, recovery)

	require.NotNil(t, diff)
	assert.Equal(t, scenario.AxisBalanced, diff.AxisA)
	assert.Equal(t, scenario.AxisRecoveryRehab, diff.AxisB)
	assert.Greater(t, diff.CostDelta, 0.0, "more therapy costs more")
	assert.NotEmpty(t, diff.LineDiffs)

	var physio *scenario.LineDiff
	for i := range diff.LineDiffs {
		if diff.LineDiffs[i].Category == scenario.CategoryPhysiotherapy {
			physio = &diff.LineDiffs[i]
		}
	}
	require.NotNil(t, physio)
	assert.Greater(t, physio.FrequencyDelta, 0.0)
}
