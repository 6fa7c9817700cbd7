package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/datasource"
	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/normalization"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

type TagService interface {
	ListTags(ctx context.Context) (datasource.Sourced[[]*types.Tag], error)
	CreateTag(ctx context.Context, name, color string) (datasource.Sourced[*types.Tag], error)
	DeleteTag(ctx context.Context, id uuid.UUID) (datasource.Sourced[bool], error)
	AssignToModel(ctx context.Context, modelID string, tagID uuid.UUID) (datasource.Sourced[bool], error)
	UnassignFromModel(ctx context.Context, modelID string, tagID uuid.UUID) (datasource.Sourced[bool], error)
	ListForModel(ctx context.Context, modelID string) (datasource.Sourced[[]*types.Tag], error)
}

type tagService struct {
	log  *logger.Logger
	data *datasource.Facade
}

func NewTagService(baseLog *logger.Logger, data *datasource.Facade) TagService {
	return &tagService{
		log:  baseLog.With("service", "TagService"),
		data: data,
	}
}

func (s *tagService) ListTags(ctx context.Context) (datasource.Sourced[[]*types.Tag], error) {
	return s.data.GetTags(ctx)
}

func (s *tagService) CreateTag(ctx context.Context, name, color string) (datasource.Sourced[*types.Tag], error) {
	name = normalization.Slug(name)
	if name == "" {
		return datasource.Sourced[*types.Tag]{}, fmt.Errorf("missing tag name")
	}
	return s.data.CreateTag(ctx, &types.Tag{Name: name, Color: color})
}

func (s *tagService) DeleteTag(ctx context.Context, id uuid.UUID) (datasource.Sourced[bool], error) {
	if id == uuid.Nil {
		return datasource.Sourced[bool]{}, fmt.Errorf("missing tag id")
	}
	return s.data.DeleteTag(ctx, id)
}

func (s *tagService) AssignToModel(ctx context.Context, modelID string, tagID uuid.UUID) (datasource.Sourced[bool], error) {
	if modelID == "" || tagID == uuid.Nil {
		return datasource.Sourced[bool]{}, fmt.Errorf("missing model id or tag id")
	}
	return s.data.AssignTag(ctx, modelID, tagID)
}

func (s *tagService) UnassignFromModel(ctx context.Context, modelID string, tagID uuid.UUID) (datasource.Sourced[bool], error) {
	if modelID == "" || tagID == uuid.Nil {
		return datasource.Sourced[bool]{}, fmt.Errorf("missing model id or tag id")
	}
	return s.data.UnassignTag(ctx, modelID, tagID)
}

func (s *tagService) ListForModel(ctx context.Context, modelID string) (datasource.Sourced[[]*types.Tag], error) {
	if modelID == "" {
		return datasource.Sourced[[]*types.Tag]{}, fmt.Errorf("missing model id")
	}
	return s.data.GetTagsForModel(ctx, modelID)
}
