package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/services"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

type DeviceHandler struct {
	log           *logger.Logger
	deviceService services.DeviceService
}

func NewDeviceHandler(baseLog *logger.Logger, dsvc services.DeviceService) *DeviceHandler {
	return &DeviceHandler{
		log:           baseLog.With("handler", "DeviceHandler"),
		deviceService: dsvc,
	}
}

type createDeviceRequest struct {
	Name         string `json:"name" binding:"required"`
	DeviceType   string `json:"device_type" binding:"required"`
	Manufacturer string `json:"manufacturer"`
	ModelNumber  string `json:"model_number"`
	Location     string `json:"location"`
}

type recordReadingsRequest struct {
	Readings []services.ReadingInput `json:"readings" binding:"required"`
}

// GET /api/devices
func (h *DeviceHandler) ListDevices(c *gin.Context) {
	res, err := h.deviceService.ListDevices(c.Request.Context(), types.DeviceType(c.Query("device_type")))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"devices": res.Data, "is_mock": res.Mock})
}

// GET /api/devices/:id
func (h *DeviceHandler) GetDevice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	res, err := h.deviceService.GetDevice(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if res.Data == nil {
		RespondError(c, http.StatusNotFound, "device_not_found", fmt.Errorf("device %s not found", id))
		return
	}
	RespondOK(c, gin.H{"device": res.Data, "is_mock": res.Mock})
}

// POST /api/devices
func (h *DeviceHandler) CreateDevice(c *gin.Context) {
	var req createDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	row := &types.Device{
		Name:         req.Name,
		DeviceType:   types.DeviceType(req.DeviceType),
		Manufacturer: req.Manufacturer,
		ModelNumber:  req.ModelNumber,
		Location:     req.Location,
	}
	res, err := h.deviceService.CreateDevice(c.Request.Context(), row)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"device": res.Data, "is_mock": res.Mock})
}

// PATCH /api/devices/:id
func (h *DeviceHandler) UpdateDevice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.DeviceUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res, err := h.deviceService.UpdateDevice(c.Request.Context(), id, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": res.Data, "is_mock": res.Mock})
}

// DELETE /api/devices/:id
func (h *DeviceHandler) DeleteDevice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	res, err := h.deviceService.DeleteDevice(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": res.Data, "is_mock": res.Mock})
}

// POST /api/devices/:id/readings
func (h *DeviceHandler) RecordReadings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req recordReadingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res, err := h.deviceService.RecordReadings(c.Request.Context(), id, req.Readings)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"readings": res.Data, "is_mock": res.Mock})
}

// GET /api/devices/:id/readings/latest
func (h *DeviceHandler) GetLatestReading(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	res, err := h.deviceService.GetLatestReading(c.Request.Context(), id, c.Query("metric_name"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if res.Data == nil {
		RespondError(c, http.StatusNotFound, "reading_not_found", fmt.Errorf("no readings for device %s", id))
		return
	}
	RespondOK(c, gin.H{"reading": res.Data, "is_mock": res.Mock})
}

// GET /api/devices/:id/readings
func (h *DeviceHandler) GetReadingHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	from, to := time.Time{}, time.Time{}
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_from", err)
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_to", err)
			return
		}
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	res, err := h.deviceService.GetReadingHistory(c.Request.Context(), id, c.Query("metric_name"), from, to, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"readings": res.Data, "is_mock": res.Mock})
}
