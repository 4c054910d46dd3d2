package handler

import (
	"net/http"

	"cargo-dispatch/internal/usecase/warehouse"
	"cargo-dispatch/pkg/utils"

	"github.com/gin-gonic/gin"
)

type WarehouseHandler struct {
	service *warehouse.Service
}

func NewWarehouseHandler(service *warehouse.Service) *WarehouseHandler {
	return &WarehouseHandler{service: service}
}

func (h *WarehouseHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	warehouses := router.Group("/warehouses")
	{
		warehouses.POST("", h.CreateWarehouse)
		warehouses.GET("", h.ListWarehouses)
		warehouses.GET("/:id", h.GetWarehouse)
		warehouses.PATCH("/:id", h.UpdateWarehouse)
		warehouses.DELETE("/:id", h.DeleteWarehouse)
	}
}

func (h *WarehouseHandler) CreateWarehouse(c *gin.Context) {
	var req warehouse.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CreateWarehouse(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Warehouse created successfully", result)
}

func (h *WarehouseHandler) GetWarehouse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.service.GetWarehouse(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Warehouse retrieved successfully", result)
}

func (h *WarehouseHandler) ListWarehouses(c *gin.Context) {
	result, err := h.service.ListWarehouses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Warehouses retrieved successfully", result)
}

func (h *WarehouseHandler) UpdateWarehouse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req warehouse.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateWarehouse(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Warehouse updated successfully", result)
}

func (h *WarehouseHandler) DeleteWarehouse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteWarehouse(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Warehouse deleted successfully", nil)
}
