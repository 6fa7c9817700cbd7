package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

type AlertEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.AlertEvent) (*types.AlertEvent, error)
	GetTriggered(ctx context.Context, tx *gorm.DB, modelID string, includeResolved bool, limit int) ([]*types.AlertEvent, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AlertEvent, error)
	Resolve(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error
}

type alertEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlertEventRepo(db *gorm.DB, baseLog *logger.Logger) AlertEventRepo {
	return &alertEventRepo{db: db, log: baseLog.With("repo", "AlertEventRepo")}
}

func (r *alertEventRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AlertEvent) (*types.AlertEvent, error) {
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

func (r *alertEventRepo) GetTriggered(ctx context.Context, tx *gorm.DB, modelID string, includeResolved bool, limit int) ([]*types.AlertEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.AlertEvent{}
	q := t.WithContext(ctx).Order("created_at DESC")
	if modelID != "" {
		q = q.Where("model_id = ?", modelID)
	}
	if !includeResolved {
		q = q.Where("resolved = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *alertEventRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AlertEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.AlertEvent
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *alertEventRepo) Resolve(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.AlertEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"resolved": true, "resolved_at": at}).Error
}
