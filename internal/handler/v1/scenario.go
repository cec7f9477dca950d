package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carelinkhq/carebundle/internal/domain/scenario"
	"github.com/carelinkhq/carebundle/internal/service"
)

type ScenarioHandler struct {
	scenarios *service.ScenarioService
}

func NewScenarioHandler(scenarios *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarios: scenarios}
}

// GetAxes returns the scenario axes applicable to the patient's current
// profile, in selection priority order.
//
//	GET /api/v1/patients/:id/axes
func (h *ScenarioHandler) GetAxes(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	axes, err := h.scenarios.Axes(c.Request.Context(), id, service.BuildOptions{
		CutoffDays: parseQueryInt(c, "cutoff_days", 0),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	type axisView struct {
		Axis        scenario.Axis `json:"axis"`
		Label       string        `json:"label"`
		Description string        `json:"description"`
		TradeOff    string        `json:"trade_off"`
	}
	views := make([]axisView, 0, len(axes))
	for _, a := range axes {
		cfg := a.Config()
		views = append(views, axisView{
			Axis:        a,
			Label:       cfg.Label,
			Description: cfg.Description,
			TradeOff:    cfg.TradeOff,
		})
	}

	respondOK(c, views)
}

type generateScenariosRequest struct {
	MaxScenarios int             `json:"max_scenarios"`
	ReferenceCap float64         `json:"reference_cap"`
	Required     []scenario.Axis `json:"required_axes"`
	Excluded     []scenario.Axis `json:"excluded_axes"`
	ForceRefresh bool            `json:"force_refresh"`
	CutoffDays   int             `json:"cutoff_days"`
}

// GenerateScenarios produces the comparison set of care bundles for a
// patient. The body is optional; an empty body uses configured defaults.
//
//	POST /api/v1/patients/:id/scenarios
func (h *ScenarioHandler) GenerateScenarios(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req generateScenariosRequest
	if c.Request.ContentLength > 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	result, err := h.scenarios.GenerateScenarios(c.Request.Context(), id, service.GenerateRequest{
		Build: service.BuildOptions{
			ForceRefresh: req.ForceRefresh,
			CutoffDays:   req.CutoffDays,
		},
		MaxScenarios: req.MaxScenarios,
		ReferenceCap: req.ReferenceCap,
		Required:     req.Required,
		Excluded:     req.Excluded,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, result)
}

type compareScenariosRequest struct {
	ScenarioA *scenario.Bundle `json:"scenario_a" binding:"required"`
	ScenarioB *scenario.Bundle `json:"scenario_b" binding:"required"`
}

// CompareScenarios diffs two previously generated bundles.
//
//	POST /api/v1/scenarios/compare
func (h *ScenarioHandler) CompareScenarios(c *gin.Context) {
	var req compareScenariosRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ScenarioA == nil || req.ScenarioB == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "both scenario_a and scenario_b are required"})
		return
	}

	respondOK(c, h.scenarios.Compare(req.ScenarioA, req.ScenarioB))
}
