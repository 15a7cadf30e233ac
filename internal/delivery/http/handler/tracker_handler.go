package handler

import (
	"errors"
	"net/http"
	"time"

	"fleetops/internal/domain/fleet"
	"fleetops/internal/domain/stoppage"
	"fleetops/internal/usecase/tracker"
	"fleetops/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TrackerHandler struct {
	service *tracker.Service
}

func NewTrackerHandler(service *tracker.Service) *TrackerHandler {
	return &TrackerHandler{service: service}
}

func (h *TrackerHandler) RegisterRoutes(router *gin.RouterGroup) {
	paradas := router.Group("/paradas")
	{
		paradas.GET("/cenario", h.GetSnapshot)
		paradas.GET("/hierarquia", h.GetHierarchy)
		paradas.POST("/hierarquia/reload", h.ReloadHierarchy)
		paradas.POST("/registrar", h.RegisterStoppage)
		paradas.GET("/frotas/:frotaId/atual", h.GetCurrentStoppage)
		paradas.POST("/frotas/:frotaId/liberar", h.CloseStoppage)
		paradas.PUT("/:id", h.EditStoppage)
		paradas.GET("/frotas/:frotaId/historico", h.GetHistory)
	}
}

// parseDateParam reads the optional "data" query parameter (YYYY-MM-DD) and
// defaults to the current instant when absent. The value is interpreted in
// the operational timezone, not UTC.
func (h *TrackerHandler) parseDateParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("data")
	if raw == "" {
		return time.Now(), true
	}

	date, err := h.service.ParseDate(raw)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func (h *TrackerHandler) GetSnapshot(c *gin.Context) {
	date, ok := h.parseDateParam(c)
	if !ok {
		return
	}

	snap, err := h.service.RefreshSnapshot(c.Request.Context(), date)
	if err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Failed to refresh scenario")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scenario refreshed", tracker.ToSnapshotResponse(snap, time.Now()))
}

func (h *TrackerHandler) GetHierarchy(c *gin.Context) {
	units, err := h.service.LoadUnitsAndFleets(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Failed to load units")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Hierarchy loaded", tracker.ToUnitInfos(units))
}

func (h *TrackerHandler) ReloadHierarchy(c *gin.Context) {
	units, err := h.service.ReloadHierarchy(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Failed to reload units")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Hierarchy reloaded", tracker.ToUnitInfos(units))
}

func (h *TrackerHandler) RegisterStoppage(c *gin.Context) {
	var req tracker.RegisterStoppageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.RegisterStoppage(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrFleetNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, stoppage.ErrAlreadyOpen):
			utils.ErrorResponse(c, http.StatusConflict, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Stoppage registered", result)
}

func (h *TrackerHandler) GetCurrentStoppage(c *gin.Context) {
	fleetID, err := uuid.Parse(c.Param("frotaId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid fleet ID")
		return
	}

	result, err := h.service.CurrentStoppage(c.Request.Context(), fleetID)
	if err != nil {
		if errors.Is(err, stoppage.ErrNoOpenStoppage) {
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Failed to load current stoppage")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Current stoppage loaded", result)
}

func (h *TrackerHandler) CloseStoppage(c *gin.Context) {
	fleetID, err := uuid.Parse(c.Param("frotaId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid fleet ID")
		return
	}

	result, err := h.service.CloseStoppage(c.Request.Context(), fleetID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if result == nil {
		// Already closed by a concurrent actor; last write wins.
		utils.SuccessResponse(c, http.StatusOK, "No open stoppage for fleet", nil)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stoppage closed", result)
}

func (h *TrackerHandler) EditStoppage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid stoppage ID")
		return
	}

	var req tracker.EditStoppageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.EditHistoricalStoppage(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, stoppage.ErrNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		case errors.Is(err, stoppage.ErrInvalidInterval):
			utils.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, stoppage.ErrAlreadyOpen):
			utils.ErrorResponse(c, http.StatusConflict, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stoppage updated", result)
}

func (h *TrackerHandler) GetHistory(c *gin.Context) {
	fleetID, err := uuid.Parse(c.Param("frotaId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid fleet ID")
		return
	}

	date, ok := h.parseDateParam(c)
	if !ok {
		return
	}

	result, err := h.service.History(c.Request.Context(), fleetID, date)
	if err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Failed to load history")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "History loaded", result)
}
