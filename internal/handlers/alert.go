package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/services"
)

type AlertHandler struct {
	log          *logger.Logger
	alertService services.AlertService
}

func NewAlertHandler(baseLog *logger.Logger, asvc services.AlertService) *AlertHandler {
	return &AlertHandler{
		log:          baseLog.With("handler", "AlertHandler"),
		alertService: asvc,
	}
}

// GET /api/alerts/rules
func (h *AlertHandler) ListRules(c *gin.Context) {
	res, err := h.alertService.ListRules(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"rules": res.Data, "is_mock": res.Mock})
}

// GET /api/alerts/rules/:id
func (h *AlertHandler) GetRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	res, err := h.alertService.GetRule(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if res.Data == nil {
		RespondError(c, http.StatusNotFound, "rule_not_found", fmt.Errorf("alert rule %s not found", id))
		return
	}
	RespondOK(c, gin.H{"rule": res.Data, "is_mock": res.Mock})
}

// POST /api/alerts/rules
func (h *AlertHandler) CreateRule(c *gin.Context) {
	var in services.AlertRuleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res, err := h.alertService.CreateRule(c.Request.Context(), in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"rule": res.Data, "is_mock": res.Mock})
}

// PUT /api/alerts/rules/:id
func (h *AlertHandler) UpdateRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var in services.AlertRuleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res, err := h.alertService.UpdateRule(c.Request.Context(), id, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"rule": res.Data, "is_mock": res.Mock})
}

// DELETE /api/alerts/rules/:id
func (h *AlertHandler) DeleteRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	res, err := h.alertService.DeleteRule(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": res.Data, "is_mock": res.Mock})
}
