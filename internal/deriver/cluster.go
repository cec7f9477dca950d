package deriver

import (
	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/mapper"
)

// DeriveNeedsCluster assigns the coarse fallback grouping used for template
// selection when no RUG category is available. Rules run most-specific
// first; every profile lands in exactly one cluster.
func DeriveNeedsCluster(f mapper.Fields, episode profile.EpisodeType, hasRehabPotential bool) profile.NeedsCluster {
	adl := mapper.IntOr(f.ADLSupportLevel, 0)
	cog := mapper.IntOr(f.CognitiveComplexity, 0)
	behaviour := mapper.IntOr(f.BehaviouralComplexity, 0)
	instability := mapper.IntOr(f.HealthInstability, 0)

	switch {
	case episode == profile.EpisodePalliative:
		return profile.ClusterPalliativeComfort
	case hasRehabPotential:
		return profile.ClusterRehabFocused
	case instability >= 4 || len(f.ActiveConditions) >= 4:
		return profile.ClusterMedicallyComplex
	case cog >= 4 || behaviour >= 3:
		return profile.ClusterCognitiveBehavioural
	case adl >= 5:
		return profile.ClusterPhysicalAssistHigh
	case adl >= 3:
		return profile.ClusterPhysicalAssistModerate
	case instability >= 2:
		return profile.ClusterHealthMonitoring
	case adl == 0 && cog == 0 && instability == 0:
		return profile.ClusterMinimalSupport
	default:
		return profile.ClusterSocialSupport
	}
}
