package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

type DeviceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Device) (*types.Device, error)
	GetAll(ctx context.Context, tx *gorm.DB, deviceType types.DeviceType) ([]*types.Device, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Device, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type deviceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeviceRepo(db *gorm.DB, baseLog *logger.Logger) DeviceRepo {
	return &deviceRepo{db: db, log: baseLog.With("repo", "DeviceRepo")}
}

func (r *deviceRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Device) (*types.Device, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.Status == "" {
		row.Status = types.DeviceStatusOffline
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *deviceRepo) GetAll(ctx context.Context, tx *gorm.DB, deviceType types.DeviceType) ([]*types.Device, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.Device{}
	q := t.WithContext(ctx).Order("name ASC")
	if deviceType != "" {
		q = q.Where("device_type = ?", deviceType)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *deviceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Device, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Device
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *deviceRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&types.Device{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *deviceRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).Where("id = ?", id).Delete(&types.Device{}).Error
}
