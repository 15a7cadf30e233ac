package handler

import (
	"errors"
	"net/http"

	"fleetops/internal/domain/fleet"
	"fleetops/internal/usecase/catalog"
	"fleetops/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	service *catalog.Service
}

func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/unidades", h.ListUnits)
	router.GET("/tipos-parada", h.ListStoppageTypes)
}

func (h *CatalogHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	unidades := router.Group("/unidades")
	{
		unidades.POST("", h.CreateUnit)
		unidades.PUT("/:id", h.UpdateUnit)
		unidades.DELETE("/:id", h.DeactivateUnit)
	}

	frotas := router.Group("/frotas")
	{
		frotas.POST("", h.CreateFleet)
		frotas.PUT("/:id", h.UpdateFleet)
		frotas.DELETE("/:id", h.DeactivateFleet)
	}

	tipos := router.Group("/tipos-parada")
	{
		tipos.POST("", h.CreateStoppageType)
		tipos.PUT("/:id", h.UpdateStoppageType)
		tipos.DELETE("/:id", h.DeactivateStoppageType)
	}
}

func catalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fleet.ErrUnitNotFound),
		errors.Is(err, fleet.ErrFleetNotFound),
		errors.Is(err, fleet.ErrStoppageTypeNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, fleet.ErrCodeAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	}
}

func (h *CatalogHandler) ListUnits(c *gin.Context) {
	activeOnly := c.DefaultQuery("ativo", "true") == "true"

	result, err := h.service.ListUnits(c.Request.Context(), activeOnly)
	if err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Failed to list units")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Units listed", result)
}

func (h *CatalogHandler) CreateUnit(c *gin.Context) {
	var req catalog.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CreateUnit(c.Request.Context(), &req)
	if err != nil {
		catalogError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Unit created", result)
}

func (h *CatalogHandler) UpdateUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid unit ID")
		return
	}

	var req catalog.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateUnit(c.Request.Context(), id, &req)
	if err != nil {
		catalogError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Unit updated", result)
}

func (h *CatalogHandler) DeactivateUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid unit ID")
		return
	}

	if err := h.service.DeactivateUnit(c.Request.Context(), id); err != nil {
		catalogError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Unit deactivated", nil)
}

func (h *CatalogHandler) CreateFleet(c *gin.Context) {
	var req catalog.CreateFleetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CreateFleet(c.Request.Context(), &req)
	if err != nil {
		catalogError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Fleet created", result)
}

func (h *CatalogHandler) UpdateFleet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid fleet ID")
		return
	}

	var req catalog.UpdateFleetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateFleet(c.Request.Context(), id, &req)
	if err != nil {
		catalogError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fleet updated", result)
}

func (h *CatalogHandler) DeactivateFleet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid fleet ID")
		return
	}

	if err := h.service.DeactivateFleet(c.Request.Context(), id); err != nil {
		catalogError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Fleet deactivated", nil)
}

func (h *CatalogHandler) ListStoppageTypes(c *gin.Context) {
	activeOnly := c.DefaultQuery("ativo", "true") == "true"

	result, err := h.service.ListStoppageTypes(c.Request.Context(), activeOnly)
	if err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Failed to list stoppage types")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stoppage types listed", result)
}

func (h *CatalogHandler) CreateStoppageType(c *gin.Context) {
	var req catalog.CreateStoppageTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CreateStoppageType(c.Request.Context(), &req)
	if err != nil {
		catalogError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Stoppage type created", result)
}

func (h *CatalogHandler) UpdateStoppageType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid stoppage type ID")
		return
	}

	var req catalog.UpdateStoppageTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateStoppageType(c.Request.Context(), id, &req)
	if err != nil {
		catalogError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stoppage type updated", result)
}

func (h *CatalogHandler) DeactivateStoppageType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid stoppage type ID")
		return
	}

	if err := h.service.DeactivateStoppageType(c.Request.Context(), id); err != nil {
		catalogError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stoppage type deactivated", nil)
}
