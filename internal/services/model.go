package services

import (
	"context"
	"fmt"

	"github.com/iotsphere/iotsphere-backend/internal/datasource"
	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/normalization"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

type ModelService interface {
	ListModels(ctx context.Context, includeArchived bool) (datasource.Sourced[[]*types.Model], error)
	GetModel(ctx context.Context, id string) (datasource.Sourced[*types.Model], error)
	CreateModel(ctx context.Context, row *types.Model, initialVersion string) (datasource.Sourced[*types.Model], error)
	SetArchived(ctx context.Context, id string, archived bool) (datasource.Sourced[bool], error)
	ListVersions(ctx context.Context, modelID string) (datasource.Sourced[[]*types.ModelVersion], error)
}

type modelService struct {
	log  *logger.Logger
	data *datasource.Facade
}

func NewModelService(baseLog *logger.Logger, data *datasource.Facade) ModelService {
	return &modelService{
		log:  baseLog.With("service", "ModelService"),
		data: data,
	}
}

func (s *modelService) ListModels(ctx context.Context, includeArchived bool) (datasource.Sourced[[]*types.Model], error) {
	return s.data.GetModels(ctx, includeArchived)
}

func (s *modelService) GetModel(ctx context.Context, id string) (datasource.Sourced[*types.Model], error) {
	if id == "" {
		return datasource.Sourced[*types.Model]{}, fmt.Errorf("missing model id")
	}
	return s.data.GetModel(ctx, id)
}

func (s *modelService) CreateModel(ctx context.Context, row *types.Model, initialVersion string) (datasource.Sourced[*types.Model], error) {
	if row == nil {
		return datasource.Sourced[*types.Model]{}, fmt.Errorf("missing model")
	}
	row.ID = normalization.Slug(row.ID)
	if row.ID == "" {
		return datasource.Sourced[*types.Model]{}, fmt.Errorf("missing model id")
	}
	if row.Name == "" {
		return datasource.Sourced[*types.Model]{}, fmt.Errorf("missing model name")
	}
	created, err := s.data.CreateModel(ctx, row)
	if err != nil {
		return created, err
	}
	if initialVersion != "" {
		version := &types.ModelVersion{ModelID: row.ID, Version: initialVersion}
		if _, verErr := s.data.CreateModelVersion(ctx, version); verErr != nil {
			s.log.Warn("Failed to register initial model version", "error", verErr, "model_id", row.ID, "version", initialVersion)
		}
	}
	return created, nil
}

func (s *modelService) SetArchived(ctx context.Context, id string, archived bool) (datasource.Sourced[bool], error) {
	if id == "" {
		return datasource.Sourced[bool]{}, fmt.Errorf("missing model id")
	}
	return s.data.SetModelArchived(ctx, id, archived)
}

func (s *modelService) ListVersions(ctx context.Context, modelID string) (datasource.Sourced[[]*types.ModelVersion], error) {
	if modelID == "" {
		return datasource.Sourced[[]*types.ModelVersion]{}, fmt.Errorf("missing model id")
	}
	return s.data.GetModelVersions(ctx, modelID)
}
