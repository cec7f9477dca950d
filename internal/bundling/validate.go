package bundling

import (
	"fmt"

	"github.com/carelinkhq/carebundle/internal/domain/profile"
	"github.com/carelinkhq/carebundle/internal/domain/scenario"
)

// riskCoverage maps each clinically-flagged risk to the categories that can
// address it. Validation requires at least one such line in the core tier.
var riskCoverage = []struct {
	Name       string
	Flagged    func(p *profile.NeedsProfile) bool
	Categories map[scenario.Category]bool
}{
	{
		Name: "falls risk",
		Flagged: func(p *profile.NeedsProfile) bool {
			return p.FallsRiskLevel >= 1
		},
		Categories: map[scenario.Category]bool{
			scenario.CategoryPhysiotherapy:       true,
			scenario.CategoryOccupationalTherapy: true,
			scenario.CategoryPersonalSupport:     true,
		},
	},
	{
		Name: "behavioural risk",
		Flagged: func(p *profile.NeedsProfile) bool {
			return p.BehaviouralComplexity >= 3
		},
		Categories: map[scenario.Category]bool{
			scenario.CategoryPersonalSupport: true,
			scenario.CategoryNursing:         true,
			scenario.CategorySocialWork:      true,
		},
	},
	{
		Name: "health instability",
		Flagged: func(p *profile.NeedsProfile) bool {
			return p.HealthInstability >= 4
		},
		Categories: map[scenario.Category]bool{
			scenario.CategoryNursing: true,
		},
	},
}

const heavyVisitWarningThreshold = 25.0

// ValidationResult carries the soft outcome of scenario validation. A
// failing scenario is returned to the caller with the errors attached, never
// silently dropped.
type ValidationResult struct {
	Valid    bool
	Warnings []string
	Errors   []string
}

// ValidateScenario enforces minimum safety coverage: every flagged risk must
// be addressed by a core-tier line, and combined nursing/personal-support
// hours must meet the episode type's floor.
func ValidateScenario(b *scenario.Bundle, p *profile.NeedsProfile) ValidationResult {
	res := ValidationResult{Valid: true}

	for _, risk := range riskCoverage {
		if !risk.Flagged(p) {
			continue
		}
		if !hasCoreCoverage(b.ServiceLines, risk.Categories) {
			res.Valid = false
			res.Errors = append(res.Errors,
				fmt.Sprintf("%s is not addressed by any core service line", risk.Name))
		}
	}

	floor := p.EpisodeType.Config().MinWeeklyCoreHours
	coreHours := 0.0
	for _, l := range b.ServiceLines {
		if scenario.CoreCoverageCategories[l.Category] {
			coreHours += l.WeeklyMinutes() / 60
		}
	}
	if coreHours < floor {
		res.Valid = false
		res.Errors = append(res.Errors,
			fmt.Sprintf("weekly nursing/personal support coverage %.1fh is below the %.1fh floor for %s", coreHours, floor, p.EpisodeType))
	}

	totalVisits := 0.0
	hasTherapy := false
	for _, l := range b.ServiceLines {
		totalVisits += l.WeeklyFrequency
		if scenario.TherapyCategories[l.Category] {
			hasTherapy = true
		}
	}
	if totalVisits > heavyVisitWarningThreshold {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%.0f visits per week is a heavy in-home schedule", totalVisits))
	}
	if p.HasRehabPotential && !hasTherapy {
		res.Warnings = append(res.Warnings,
			"profile shows rehab potential but the scenario carries no therapy services")
	}

	return res
}

func hasCoreCoverage(lines []scenario.ServiceLine, categories map[scenario.Category]bool) bool {
	for _, l := range lines {
		if l.Priority == scenario.PriorityCore && categories[l.Category] {
			return true
		}
	}
	return false
}
