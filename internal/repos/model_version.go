package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

type ModelVersionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.ModelVersion) (*types.ModelVersion, error)
	GetByModelID(ctx context.Context, tx *gorm.DB, modelID string) ([]*types.ModelVersion, error)
	GetByModelAndVersion(ctx context.Context, tx *gorm.DB, modelID, version string) (*types.ModelVersion, error)
}

type modelVersionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModelVersionRepo(db *gorm.DB, baseLog *logger.Logger) ModelVersionRepo {
	return &modelVersionRepo{db: db, log: baseLog.With("repo", "ModelVersionRepo")}
}

func (r *modelVersionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ModelVersion) (*types.ModelVersion, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *modelVersionRepo) GetByModelID(ctx context.Context, tx *gorm.DB, modelID string) ([]*types.ModelVersion, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.ModelVersion{}
	if modelID == "" {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("model_id = ?", modelID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *modelVersionRepo) GetByModelAndVersion(ctx context.Context, tx *gorm.DB, modelID, version string) (*types.ModelVersion, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if modelID == "" || version == "" {
		return nil, nil
	}
	var out []*types.ModelVersion
	if err := t.WithContext(ctx).
		Where("model_id = ? AND version = ?", modelID, version).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
