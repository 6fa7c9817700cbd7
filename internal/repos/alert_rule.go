package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

type AlertRuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.AlertRule) (*types.AlertRule, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.AlertRule, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AlertRule, error)
	GetActiveForModel(ctx context.Context, tx *gorm.DB, modelID string) ([]*types.AlertRule, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.AlertRule) error
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type alertRuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlertRuleRepo(db *gorm.DB, baseLog *logger.Logger) AlertRuleRepo {
	return &alertRuleRepo{db: db, log: baseLog.With("repo", "AlertRuleRepo")}
}

func (r *alertRuleRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AlertRule) (*types.AlertRule, error) {
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

func (r *alertRuleRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.AlertRule, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.AlertRule{}
	if err := t.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *alertRuleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AlertRule, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.AlertRule
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// GetActiveForModel returns active rules scoped to the model plus the
// global rules (model_id IS NULL applies to every model).
func (r *alertRuleRepo) GetActiveForModel(ctx context.Context, tx *gorm.DB, modelID string) ([]*types.AlertRule, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.AlertRule{}
	if err := t.WithContext(ctx).
		Where("is_active = ?", true).
		Where("model_id IS NULL OR model_id = ?", modelID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *alertRuleRepo) Update(ctx context.Context, tx *gorm.DB, row *types.AlertRule) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Save(row).Error
}

func (r *alertRuleRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.AlertRule{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *alertRuleRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("id = ?", id).Delete(&types.AlertRule{}).Error
}
