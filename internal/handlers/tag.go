package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/services"
)

type TagHandler struct {
	log        *logger.Logger
	tagService services.TagService
}

func NewTagHandler(baseLog *logger.Logger, tsvc services.TagService) *TagHandler {
	return &TagHandler{
		log:        baseLog.With("handler", "TagHandler"),
		tagService: tsvc,
	}
}

type createTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type tagAssignmentRequest struct {
	ModelID string    `json:"model_id" binding:"required"`
	TagID   uuid.UUID `json:"tag_id" binding:"required"`
}

// GET /api/tags
func (h *TagHandler) ListTags(c *gin.Context) {
	res, err := h.tagService.ListTags(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"tags": res.Data, "is_mock": res.Mock})
}

// POST /api/tags
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res, err := h.tagService.CreateTag(c.Request.Context(), req.Name, req.Color)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"tag": res.Data, "is_mock": res.Mock})
}

// DELETE /api/tags/:id
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	res, err := h.tagService.DeleteTag(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": res.Data, "is_mock": res.Mock})
}

// POST /api/tags/assign
func (h *TagHandler) AssignTag(c *gin.Context) {
	var req tagAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res, err := h.tagService.AssignToModel(c.Request.Context(), req.ModelID, req.TagID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"assigned": res.Data, "is_mock": res.Mock})
}

// POST /api/tags/unassign
func (h *TagHandler) UnassignTag(c *gin.Context) {
	var req tagAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res, err := h.tagService.UnassignFromModel(c.Request.Context(), req.ModelID, req.TagID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"unassigned": res.Data, "is_mock": res.Mock})
}
