package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carelinkhq/carebundle/internal/service"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile builds (or serves from cache) the patient's needs profile.
//
//	GET /api/v1/patients/:id/profile?refresh=true&cutoff_days=180&exclude_referral=true
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	opts := service.BuildOptions{
		ForceRefresh:       parseQueryBool(c, "refresh"),
		CutoffDays:         parseQueryInt(c, "cutoff_days", 0),
		ExcludeReferral:    parseQueryBool(c, "exclude_referral"),
		ExcludeFamilyInput: parseQueryBool(c, "exclude_family_input"),
	}

	p, err := h.profiles.BuildProfile(c.Request.Context(), id, opts)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{
		"profile":            p,
		"dominant_dimension": p.DominantDimension(),
	})
}

// GetSources reports which profile sources exist for the patient without
// triggering a build.
//
//	GET /api/v1/patients/:id/profile/sources
func (h *ProfileHandler) GetSources(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	sources, err := h.profiles.AvailableSources(c.Request.Context(), id, parseQueryInt(c, "cutoff_days", 0))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sufficient, err := h.profiles.HasSufficientData(c.Request.Context(), id, parseQueryInt(c, "cutoff_days", 0))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{
		"sources":         sources,
		"sufficient_data": sufficient,
	})
}

// InvalidateProfile drops the patient's cached profiles.
//
//	POST /api/v1/patients/:id/profile/invalidate
func (h *ProfileHandler) InvalidateProfile(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.profiles.InvalidateCache(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse[any]{Message: "profile cache invalidated"})
}
