package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

type ModelRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Model) (*types.Model, error)
	GetAll(ctx context.Context, tx *gorm.DB, includeArchived bool) ([]*types.Model, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Model, error)
	SetArchived(ctx context.Context, tx *gorm.DB, id string, archived bool) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
}

type modelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModelRepo(db *gorm.DB, baseLog *logger.Logger) ModelRepo {
	return &modelRepo{db: db, log: baseLog.With("repo", "ModelRepo")}
}

func (r *modelRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Model) (*types.Model, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *modelRepo) GetAll(ctx context.Context, tx *gorm.DB, includeArchived bool) ([]*types.Model, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.Model{}
	q := t.WithContext(ctx).Order("name ASC")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *modelRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Model, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == "" {
		return nil, nil
	}
	var out []*types.Model
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *modelRepo) SetArchived(ctx context.Context, tx *gorm.DB, id string, archived bool) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).
		Model(&types.Model{}).
		Where("id = ?", id).
		Update("archived", archived).Error
}

func (r *modelRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Where("id = ?", id).Delete(&types.Model{}).Error
}
