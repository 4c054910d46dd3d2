package handler

import (
	"net/http"

	"cargo-dispatch/internal/usecase/driver"
	"cargo-dispatch/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DriverHandler struct {
	service *driver.Service
}

func NewDriverHandler(service *driver.Service) *DriverHandler {
	return &DriverHandler{service: service}
}

func (h *DriverHandler) RegisterManagerRoutes(router *gin.RouterGroup) {
	drivers := router.Group("/drivers")
	{
		drivers.POST("", h.CreateDriver)
		drivers.GET("", h.ListDrivers)
		drivers.GET("/board", h.Board)
		drivers.GET("/:id", h.GetDriver)
		drivers.PATCH("/:id", h.UpdateDriver)
		drivers.DELETE("/:id", h.DeleteDriver)
	}
}

func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req driver.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CreateDriver(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Driver created successfully", result)
}

func (h *DriverHandler) GetDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.service.GetDriver(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Driver retrieved successfully", result)
}

func (h *DriverHandler) ListDrivers(c *gin.Context) {
	result, err := h.service.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Drivers retrieved successfully", result)
}

// Board returns the dispatch board with availability derived from active
// shipments.
func (h *DriverHandler) Board(c *gin.Context) {
	result, err := h.service.Board(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dispatch board retrieved successfully", result)
}

func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req driver.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateDriver(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Driver updated successfully", result)
}

func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteDriver(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Driver deleted successfully", nil)
}
