package handler

import (
	"net/http"

	"cargo-dispatch/internal/usecase/shipment"
	"cargo-dispatch/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ShipmentHandler struct {
	service *shipment.Service
}

func NewShipmentHandler(service *shipment.Service) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

func (h *ShipmentHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	shipments := router.Group("/shipments")
	{
		shipments.POST("", h.CreateShipment)
		shipments.GET("", h.ListShipments)
		shipments.GET("/:id", h.GetShipment)
		shipments.PATCH("/:id", h.UpdateShipment)
		shipments.DELETE("/:id", h.DeleteShipment)
		shipments.GET("/:id/updates", h.ListStatusUpdates)
	}
}

func (h *ShipmentHandler) RegisterDriverRoutes(router *gin.RouterGroup) {
	driver := router.Group("/driver")
	{
		driver.GET("/shipments", h.ListMyShipments)
		driver.POST("/shipments/:id/updates", h.PostStatusUpdate)
	}
}

func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var req shipment.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CreateShipment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Shipment created successfully", result)
}

func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.service.GetShipment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment retrieved successfully", result)
}

func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	var req shipment.ShipmentFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.ListShipments(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipments retrieved successfully", result)
}

func (h *ShipmentHandler) UpdateShipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req shipment.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateShipment(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment updated successfully", result)
}

func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteShipment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment deleted successfully", nil)
}

func (h *ShipmentHandler) ListStatusUpdates(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.service.ListStatusUpdates(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status updates retrieved successfully", result)
}

func (h *ShipmentHandler) ListMyShipments(c *gin.Context) {
	driverID, ok := contextUserID(c)
	if !ok {
		return
	}

	result, err := h.service.ListDriverShipments(c.Request.Context(), driverID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipments retrieved successfully", result)
}

func (h *ShipmentHandler) PostStatusUpdate(c *gin.Context) {
	driverID, ok := contextUserID(c)
	if !ok {
		return
	}

	shipmentID, ok := pathID(c)
	if !ok {
		return
	}

	var req shipment.PostStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.PostStatusUpdate(c.Request.Context(), driverID, shipmentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Status update recorded successfully", result)
}
