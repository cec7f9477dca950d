package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carelinkhq/carebundle/internal/bundling/template"
	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/scenario"
)

func categories(lines []scenario.ServiceLine) []scenario.Category {
	out := make([]scenario.Category, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Category)
	}
	return out
}

func TestResolve_RehabClusterAddsTherapyAnchor(t *testing.T) {
	r := template.NewStaticResolver()

	// The chronic template carries no physiotherapy; a rehab-leaning cluster
	// approximates the Special Rehabilitation RUG and pulls it in.
	lines := r.Resolve(profile.EpisodeChronic, profile.ClusterRehabFocused)
	assert.Contains(t, categories(lines), scenario.CategoryPhysiotherapy)

	// Post-acute already has physiotherapy: no duplicate line.
	postAcute := r.Resolve(profile.EpisodePostAcute, profile.ClusterRehabFocused)
	count := 0
	for _, c := range categories(postAcute) {
		if c == scenario.CategoryPhysiotherapy {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestResolve_CognitiveClusterAddsDayProgram(t *testing.T) {
	r := template.NewStaticResolver()

	lines := r.Resolve(profile.EpisodeChronic, profile.ClusterCognitiveBehavioural)
	assert.Contains(t, categories(lines), scenario.CategoryDayProgram)
}

func TestResolve_SocialSupportAdditions(t *testing.T) {
	r := template.NewStaticResolver()

	lines := r.Resolve(profile.EpisodePostAcute, profile.ClusterSocialSupport)
	cats := categories(lines)
	assert.Contains(t, cats, scenario.CategoryDayProgram)
	assert.Contains(t, cats, scenario.CategorySocialWork)
}

func TestResolve_UnknownEpisodeFallsBackToChronic(t *testing.T) {
	r := template.NewStaticResolver()

	fallback := r.Resolve(profile.EpisodeType("unknown"), profile.ClusterMinimalSupport)
	chronic := r.Resolve(profile.EpisodeChronic, profile.ClusterMinimalSupport)
	assert.Equal(t, chronic, fallback)
}
