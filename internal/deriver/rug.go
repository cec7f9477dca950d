package deriver

import (
	"github.com/carelinkhq/carebundle/internal/domain/assessment"
)

// Coarse RUG-III style categories, checked in hierarchy order. Only a full
// assessment carries enough detail to classify; other sources fall back to
// the needs cluster approximation.
const (
	rugExtensiveServices = "Extensive Services"
	rugSpecialCare       = "Special Care"
	rugClinicallyComplex = "Clinically Complex"
	rugImpairedCognition = "Impaired Cognition"
	rugBehaviourProblems = "Behaviour Problems"
	rugReducedPhysical   = "Reduced Physical Function"
)

const rugRehabTherapyMinutes = 120

// DeriveRUGCategory classifies a full assessment into a coarse RUG category.
// The hierarchy mirrors RUG-III: rehabilitation first, then clinical
// complexity, then cognition/behaviour, then physical function.
func DeriveRUGCategory(r *assessment.FullRecord) string {
	if r == nil {
		return ""
	}

	switch {
	case r.WeeklyTherapyMinutes >= rugRehabTherapyMinutes && r.ADLHierarchy >= 1:
		return rugSpecialRehab
	case r.RequiresExtensiveServices:
		return rugExtensiveServices
	case r.HealthInstability >= 4 || r.EndStageDisease:
		return rugSpecialCare
	case r.HealthInstability >= 3 || r.AcuteChange || r.ConditionFlare:
		return rugClinicallyComplex
	case r.CognitivePerformance >= 4:
		return rugImpairedCognition
	case r.BehaviourScale >= 3:
		return rugBehaviourProblems
	default:
		return rugReducedPhysical
	}
}
