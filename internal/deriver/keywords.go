package deriver

import (
	"strings"

	"github.com/carelinkhq/carebundle/internal/domain/profile"
)

// Versioned keyword tables for free-text scanning. The derivation logic
// never embeds literals; extending a rule set is an edit here.

// episodeAliasesV1 maps explicit referral type strings to episode types.
// Matching is case-insensitive on the normalized referral type.
var episodeAliasesV1 = map[string]profile.EpisodeType{
	"post-acute":         profile.EpisodePostAcute,
	"post_acute":         profile.EpisodePostAcute,
	"postacute":          profile.EpisodePostAcute,
	"hospital_discharge": profile.EpisodePostAcute,
	"hospital discharge": profile.EpisodePostAcute,
	"rehab":              profile.EpisodePostAcute,
	"rehabilitation":     profile.EpisodePostAcute,
	"palliative":         profile.EpisodePalliative,
	"hospice":            profile.EpisodePalliative,
	"end_of_life":        profile.EpisodePalliative,
	"end of life":        profile.EpisodePalliative,
	"chronic":            profile.EpisodeChronic,
	"chronic_care":       profile.EpisodeChronic,
	"complex":            profile.EpisodeComplexContinuing,
	"complex_continuing": profile.EpisodeComplexContinuing,
	"exacerbation":       profile.EpisodeAcuteExacerbation,
	"acute_exacerbation": profile.EpisodeAcuteExacerbation,
}

// episodeSourceKeywordsV1 is scanned against the referral source and program
// fields when the referral type itself does not match an alias.
var episodeSourceKeywordsV1 = []struct {
	Keyword string
	Episode profile.EpisodeType
}{
	{"hospice", profile.EpisodePalliative},
	{"palliative", profile.EpisodePalliative},
	{"discharge", profile.EpisodePostAcute},
	{"surgical", profile.EpisodePostAcute},
	{"orthopedic", profile.EpisodePostAcute},
	{"stroke", profile.EpisodePostAcute},
}

// rehabKeywordsV1 is scanned against referral free text (reason and notes)
// by the rehab potential scorer.
var rehabKeywordsV1 = []string{
	"rehab",
	"rehabilitation",
	"physiotherapy",
	"physical therapy",
	"restore",
	"recovery",
	"strengthening",
	"mobility training",
	"regain",
}

func matchEpisodeAlias(referralType string) (profile.EpisodeType, bool) {
	key := strings.ToLower(strings.TrimSpace(referralType))
	e, ok := episodeAliasesV1[key]
	return e, ok
}

func scanEpisodeKeywords(text string) (profile.EpisodeType, bool) {
	lower := strings.ToLower(text)
	for _, kw := range episodeSourceKeywordsV1 {
		if strings.Contains(lower, kw.Keyword) {
			return kw.Episode, true
		}
	}
	return "", false
}

func containsRehabKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range rehabKeywordsV1 {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
