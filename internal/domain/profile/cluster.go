package profile

// NeedsCluster is the coarse fallback grouping used for template selection
// when no full assessment (and therefore no RUG category) is available.
type NeedsCluster string

const (
	ClusterRehabFocused           NeedsCluster = "rehab_focused"
	ClusterMedicallyComplex       NeedsCluster = "medically_complex"
	ClusterCognitiveBehavioural   NeedsCluster = "cognitive_behavioural"
	ClusterPhysicalAssistHigh     NeedsCluster = "physical_assist_high"
	ClusterPhysicalAssistModerate NeedsCluster = "physical_assist_moderate"
	ClusterHealthMonitoring       NeedsCluster = "health_monitoring"
	ClusterSocialSupport          NeedsCluster = "social_support"
	ClusterPalliativeComfort      NeedsCluster = "palliative_comfort"
	ClusterMinimalSupport         NeedsCluster = "minimal_support"
)

// approxRUG maps each cluster to the RUG category its template most
// resembles. These are approximations for template selection only, never
// surfaced as clinical classifications.
var approxRUG = map[NeedsCluster]string{
	ClusterRehabFocused:           "Special Rehabilitation",
	ClusterMedicallyComplex:       "Clinically Complex",
	ClusterCognitiveBehavioural:   "Impaired Cognition",
	ClusterPhysicalAssistHigh:     "Reduced Physical Function",
	ClusterPhysicalAssistModerate: "Reduced Physical Function",
	ClusterHealthMonitoring:       "Clinically Complex",
	ClusterSocialSupport:          "Reduced Physical Function",
	ClusterPalliativeComfort:      "Extensive Services",
	ClusterMinimalSupport:         "Reduced Physical Function",
}

func (c NeedsCluster) ApproxRUGCategory() string {
	return approxRUG[c]
}
