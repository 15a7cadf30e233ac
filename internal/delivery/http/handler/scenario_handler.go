package handler

import (
	"net/http"

	"fleetops/internal/usecase/scenario"
	"fleetops/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScenarioHandler struct {
	service *scenario.Service
}

func NewScenarioHandler(service *scenario.Service) *ScenarioHandler {
	return &ScenarioHandler{service: service}
}

func (h *ScenarioHandler) RegisterRoutes(router *gin.RouterGroup) {
	configs := router.Group("/cenario-config")
	{
		configs.GET("", h.LoadConfig)
		configs.PUT("", h.SaveConfig)
	}
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("userID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}

	return userID, true
}

// LoadConfig never fails outward: the service resolves through primary,
// replica and generated default.
func (h *ScenarioHandler) LoadConfig(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result := h.service.Load(c.Request.Context(), userID)
	utils.SuccessResponse(c, http.StatusOK, "Scenario config loaded", result)
}

func (h *ScenarioHandler) SaveConfig(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req scenario.SaveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Save(c.Request.Context(), userID, &req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	message := "Scenario config saved"
	switch {
	case result.Source == scenario.SourceReplica:
		message = "Scenario config saved to replica only"
	case result.Degraded:
		message = "Scenario config could not be persisted"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}
