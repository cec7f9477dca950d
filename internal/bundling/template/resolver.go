// Package template resolves the base service lines a scenario starts from,
// before any axis reweighting. Templates are static policy tables keyed by
// episode type with needs-cluster additions.
package template

import (
	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/scenario"
)

// Resolver supplies the default service lines for a patient's episode type
// and needs cluster. The generator depends on this interface so template
// ownership can move without touching generation.
type Resolver interface {
	Resolve(episode profile.EpisodeType, cluster profile.NeedsCluster) []scenario.ServiceLine
}

// StaticResolver serves the built-in policy tables.
type StaticResolver struct{}

func NewStaticResolver() *StaticResolver { return &StaticResolver{} }

var episodeTemplates = map[profile.EpisodeType][]scenario.ServiceLine{
	profile.EpisodePostAcute: {
		{Category: scenario.CategoryNursing, Discipline: scenario.DisciplineRN, WeeklyFrequency: 2, UnitDurationMinutes: 45, Priority: scenario.PriorityCore, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryPersonalSupport, Discipline: scenario.DisciplinePSW, WeeklyFrequency: 5, UnitDurationMinutes: 60, Priority: scenario.PriorityCore, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryPhysiotherapy, Discipline: scenario.DisciplinePT, WeeklyFrequency: 2, UnitDurationMinutes: 45, Priority: scenario.PriorityCore, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryOccupationalTherapy, Discipline: scenario.DisciplineOT, WeeklyFrequency: 1, UnitDurationMinutes: 45, Priority: scenario.PriorityRecommended, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryRemoteMonitoring, Discipline: scenario.DisciplineTech, WeeklyFrequency: 1, UnitDurationMinutes: 15, Priority: scenario.PriorityOptional, DeliveryMode: scenario.DeliveryVirtual},
	},
	profile.EpisodeChronic: {
		{Category: scenario.CategoryNursing, Discipline: scenario.DisciplineRPN, WeeklyFrequency: 1, UnitDurationMinutes: 30, Priority: scenario.PriorityCore, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryPersonalSupport, Discipline: scenario.DisciplinePSW, WeeklyFrequency: 3, UnitDurationMinutes: 45, Priority: scenario.PriorityCore, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryHomemaking, Discipline: scenario.DisciplinePSW, WeeklyFrequency: 1, UnitDurationMinutes: 60, Priority: scenario.PriorityRecommended, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategorySocialWork, Discipline: scenario.DisciplineSW, WeeklyFrequency: 0.5, UnitDurationMinutes: 60, Priority: scenario.PriorityOptional, DeliveryMode: scenario.DeliveryInPerson},
	},
	profile.EpisodeComplexContinuing: {
		{Category: scenario.CategoryNursing, Discipline: scenario.DisciplineRN, WeeklyFrequency: 3, UnitDurationMinutes: 60, Priority: scenario.PriorityCore, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryPersonalSupport, Discipline: scenario.DisciplinePSW, WeeklyFrequency: 7, UnitDurationMinutes: 60, Priority: scenario.PriorityCore, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryOccupationalTherapy, Discipline: scenario.DisciplineOT, WeeklyFrequency: 1, UnitDurationMinutes: 45, Priority: scenario.PriorityRecommended, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryNutrition, Discipline: scenario.DisciplineRD, WeeklyFrequency: 0.5, UnitDurationMinutes: 45, Priority: scenario.PriorityRecommended, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryRespite, Discipline: scenario.DisciplinePSW, WeeklyFrequency: 1, UnitDurationMinutes: 180, Priority: scenario.PriorityOptional, DeliveryMode: scenario.DeliveryInPerson},
	},
	profile.EpisodeAcuteExacerbation: {
		{Category: scenario.CategoryNursing, Discipline: scenario.DisciplineRN, WeeklyFrequency: 4, UnitDurationMinutes: 45, Priority: scenario.PriorityCore, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryPersonalSupport, Discipline: scenario.DisciplinePSW, WeeklyFrequency: 4, UnitDurationMinutes: 45, Priority: scenario.PriorityCore, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryRemoteMonitoring, Discipline: scenario.DisciplineTech, WeeklyFrequency: 7, UnitDurationMinutes: 10, Priority: scenario.PriorityRecommended, DeliveryMode: scenario.DeliveryVirtual},
		{Category: scenario.CategoryNutrition, Discipline: scenario.DisciplineRD, WeeklyFrequency: 0.5, UnitDurationMinutes: 45, Priority: scenario.PriorityOptional, DeliveryMode: scenario.DeliveryInPerson},
	},
	profile.EpisodePalliative: {
		{Category: scenario.CategoryNursing, Discipline: scenario.DisciplineRN, WeeklyFrequency: 5, UnitDurationMinutes: 60, Priority: scenario.PriorityCore, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryPersonalSupport, Discipline: scenario.DisciplinePSW, WeeklyFrequency: 7, UnitDurationMinutes: 90, Priority: scenario.PriorityCore, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategorySocialWork, Discipline: scenario.DisciplineSW, WeeklyFrequency: 1, UnitDurationMinutes: 60, Priority: scenario.PriorityRecommended, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategoryRespite, Discipline: scenario.DisciplinePSW, WeeklyFrequency: 2, UnitDurationMinutes: 180, Priority: scenario.PriorityRecommended, DeliveryMode: scenario.DeliveryInPerson},
	},
}

// clusterAdditions extend the episode template for clusters whose needs the
// base mix under-serves. Additions only apply when the category is absent.
var clusterAdditions = map[profile.NeedsCluster][]scenario.ServiceLine{
	profile.ClusterSocialSupport: {
		{Category: scenario.CategoryDayProgram, Discipline: scenario.DisciplineSW, WeeklyFrequency: 1, UnitDurationMinutes: 240, Priority: scenario.PriorityOptional, DeliveryMode: scenario.DeliveryInPerson},
		{Category: scenario.CategorySocialWork, Discipline: scenario.DisciplineSW, WeeklyFrequency: 1, UnitDurationMinutes: 60, Priority: scenario.PriorityRecommended, DeliveryMode: scenario.DeliveryInPerson},
	},
}

// rugAdditions extend the template based on the RUG category the cluster
// approximates, so rehab- and cognition-leaning profiles get their anchor
// service even when the episode template omits it.
var rugAdditions = map[string][]scenario.ServiceLine{
	"Special Rehabilitation": {
		{Category: scenario.CategoryPhysiotherapy, Discipline: scenario.DisciplinePT, WeeklyFrequency: 2, UnitDurationMinutes: 45, Priority: scenario.PriorityCore, DeliveryMode: scenario.DeliveryInPerson},
	},
	"Impaired Cognition": {
		{Category: scenario.CategoryDayProgram, Discipline: scenario.DisciplineSW, WeeklyFrequency: 1, UnitDurationMinutes: 240, Priority: scenario.PriorityRecommended, DeliveryMode: scenario.DeliveryInPerson},
	},
}

// Resolve returns a fresh copy; callers mutate their copy freely.
func (r *StaticResolver) Resolve(episode profile.EpisodeType, cluster profile.NeedsCluster) []scenario.ServiceLine {
	base := episodeTemplates[episode]
	if base == nil {
		base = episodeTemplates[profile.EpisodeChronic]
	}
	out := make([]scenario.ServiceLine, len(base))
	copy(out, base)

	have := make(map[scenario.Category]bool, len(out))
	for _, l := range out {
		have[l.Category] = true
	}
	for _, add := range rugAdditions[cluster.ApproxRUGCategory()] {
		if !have[add.Category] {
			out = append(out, add)
			have[add.Category] = true
		}
	}
	for _, add := range clusterAdditions[cluster] {
		if !have[add.Category] {
			out = append(out, add)
			have[add.Category] = true
		}
	}
	return out
}
