package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/services"
)

type MonitoringHandler struct {
	log               *logger.Logger
	monitoringService services.MonitoringService
}

func NewMonitoringHandler(baseLog *logger.Logger, msvc services.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{
		log:               baseLog.With("handler", "MonitoringHandler"),
		monitoringService: msvc,
	}
}

type recordMetricsRequest struct {
	ModelVersion string             `json:"model_version"`
	Metrics      map[string]float64 `json:"metrics" binding:"required"`
}

// POST /api/models/:id/metrics
// Records a batch of metric values and sweeps active alert rules against it.
func (h *MonitoringHandler) RecordMetrics(c *gin.Context) {
	var req recordMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res, err := h.monitoringService.RecordModelMetrics(c.Request.Context(), c.Param("id"), req.ModelVersion, req.Metrics)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, res)
}

// GET /api/models/:id/metrics/history
func (h *MonitoringHandler) GetMetricsHistory(c *gin.Context) {
	since := time.Time{}
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_since", err)
			return
		}
		since = parsed
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	res, err := h.monitoringService.GetMetricsHistory(c.Request.Context(),
		c.Param("id"), c.Query("model_version"), c.Query("metric_name"), since, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"metrics": res.Data, "is_mock": res.Mock})
}

// GET /api/models/:id/metrics/latest
// The newest value per (version, metric) for one model.
func (h *MonitoringHandler) GetLatestMetrics(c *gin.Context) {
	res, err := h.monitoringService.GetLatestMetrics(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"metrics": res.Data, "is_mock": res.Mock})
}

// GET /api/alerts/triggered
func (h *MonitoringHandler) GetTriggeredAlerts(c *gin.Context) {
	includeResolved := c.Query("include_resolved") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	res, err := h.monitoringService.GetTriggeredAlerts(c.Request.Context(), c.Query("model_id"), includeResolved, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"alerts": res.Data, "is_mock": res.Mock})
}

// POST /api/alerts/events/:id/resolve
func (h *MonitoringHandler) ResolveAlertEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	res, err := h.monitoringService.ResolveAlertEvent(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"resolved": res.Data, "is_mock": res.Mock})
}
