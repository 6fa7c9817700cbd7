package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/services"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

type ModelHandler struct {
	log          *logger.Logger
	modelService services.ModelService
	tagService   services.TagService
}

func NewModelHandler(baseLog *logger.Logger, msvc services.ModelService, tsvc services.TagService) *ModelHandler {
	return &ModelHandler{
		log:          baseLog.With("handler", "ModelHandler"),
		modelService: msvc,
		tagService:   tsvc,
	}
}

type createModelRequest struct {
	ID             string `json:"id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	InitialVersion string `json:"initial_version"`
}

// GET /api/models
func (h *ModelHandler) ListModels(c *gin.Context) {
	includeArchived := c.Query("include_archived") == "true"
	res, err := h.modelService.ListModels(c.Request.Context(), includeArchived)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"models": res.Data, "is_mock": res.Mock})
}

// GET /api/models/:id
func (h *ModelHandler) GetModel(c *gin.Context) {
	res, err := h.modelService.GetModel(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if res.Data == nil {
		RespondError(c, http.StatusNotFound, "model_not_found", fmt.Errorf("model %q not found", c.Param("id")))
		return
	}
	RespondOK(c, gin.H{"model": res.Data, "is_mock": res.Mock})
}

// POST /api/models
func (h *ModelHandler) CreateModel(c *gin.Context) {
	var req createModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	row := &types.Model{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	res, err := h.modelService.CreateModel(c.Request.Context(), row, req.InitialVersion)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"model": res.Data, "is_mock": res.Mock})
}

// POST /api/models/:id/archive
func (h *ModelHandler) ArchiveModel(c *gin.Context) {
	h.setArchived(c, true)
}

// POST /api/models/:id/unarchive
func (h *ModelHandler) UnarchiveModel(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *ModelHandler) setArchived(c *gin.Context, archived bool) {
	res, err := h.modelService.SetArchived(c.Request.Context(), c.Param("id"), archived)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"archived": archived, "is_mock": res.Mock})
}

// GET /api/models/:id/versions
func (h *ModelHandler) ListVersions(c *gin.Context) {
	res, err := h.modelService.ListVersions(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"versions": res.Data, "is_mock": res.Mock})
}

// GET /api/models/:id/tags
func (h *ModelHandler) ListModelTags(c *gin.Context) {
	res, err := h.tagService.ListForModel(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"tags": res.Data, "is_mock": res.Mock})
}
