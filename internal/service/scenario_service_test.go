package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carelinkhq/carebundle/internal/bundling"
	"github.com/carelinkhq/carebundle/internal/bundling/cost"
	"github.com/carelinkhq/carebundle/internal/bundling/template"
	"github.com/carelinkhq/carebundle/internal/config"
	"github.com/carelinkhq/carebundle/internal/domain/assessment"
	"github.com/carelinkhq/carebundle/internal/domain/scenario"
	"github.com/carelinkhq/carebundle/internal/service"
)

func newScenarioService(f *serviceFixture) *service.ScenarioService {
	cfg := config.BundlingConfig{
		AssessmentCutoffDays: 365,
		MinScenarios:         3,
		MaxScenarios:         5,
		MaxAxes:              4,
		ReferenceCap:         5000,
	}
	gen := bundling.NewGenerator(template.NewStaticResolver(), cost.NewAnnotator())
	return service.NewScenarioService(f.svc, gen, testCollector, zap.NewNop(), cfg)
}

func TestGenerateScenarios_AxisValidation(t *testing.T) {
	f := newFixture(t)
	svc := newScenarioService(f)
	ctx := context.Background()

	cases := []struct {
		name string
		req  service.GenerateRequest
	}{
		{
			name: "unknown required axis",
			req:  service.GenerateRequest{Required: []scenario.Axis{"speed"}},
		},
		{
			name: "unknown excluded axis",
			req:  service.GenerateRequest{Excluded: []scenario.Axis{"speed"}},
		},
		{
			name: "axis both required and excluded",
			req: service.GenerateRequest{
				Required: []scenario.Axis{scenario.AxisBalanced},
				Excluded: []scenario.Axis{scenario.AxisBalanced},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.GenerateScenarios(ctx, f.patientID, tc.req)

			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestGenerateScenarios_ReturnsProfileWithBundles(t *testing.T) {
	f := newFixture(t)
	svc := newScenarioService(f)
	ctx := context.Background()

	f.addFull(&assessment.FullRecord{
		ADLHierarchy:          3,
		WeeklyTherapyMinutes:  60,
		TherapyRecommended:    true,
		RehabPotentialFlagged: true,
	}, time.Now().AddDate(0, 0, -7))

	res, err := svc.GenerateScenarios(ctx, f.patientID, service.GenerateRequest{})
	require.NoError(t, err)

	require.NotNil(t, res.Profile)
	assert.True(t, res.Profile.HasRehabPotential)

	require.GreaterOrEqual(t, len(res.Bundles), 3)
	recommended := 0
	for _, b := range res.Bundles {
		if b.Meta.IsRecommended {
			recommended++
		}
		require.NotNil(t, b.Cost)
	}
	assert.Equal(t, 1, recommended)
}

func TestGenerateScenarios_ExclusionFlowsThrough(t *testing.T) {
	f := newFixture(t)
	svc := newScenarioService(f)
	ctx := context.Background()

	f.addFull(&assessment.FullRecord{
		ADLHierarchy:          3,
		WeeklyTherapyMinutes:  60,
		RehabPotentialFlagged: true,
	}, time.Now().AddDate(0, 0, -7))

	res, err := svc.GenerateScenarios(ctx, f.patientID, service.GenerateRequest{
		Excluded: []scenario.Axis{scenario.AxisRecoveryRehab},
	})
	require.NoError(t, err)

	for _, b := range res.Bundles {
		assert.NotEqual(t, scenario.AxisRecoveryRehab, b.Axis)
	}
}

func TestAxes_MinimalProfileGetsBalancedOnly(t *testing.T) {
	f := newFixture(t)
	svc := newScenarioService(f)

	axes, err := svc.Axes(context.Background(), f.patientID, service.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, []scenario.Axis{scenario.AxisBalanced}, axes)
}
