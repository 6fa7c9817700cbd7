package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

// DeviceReadingRepo is append-only, mirroring ModelMetricRepo.
type DeviceReadingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.DeviceReading) ([]*types.DeviceReading, error)
	GetHistory(ctx context.Context, tx *gorm.DB, deviceID uuid.UUID, metricName string, from, to time.Time, limit int) ([]*types.DeviceReading, error)
	GetLatest(ctx context.Context, tx *gorm.DB, deviceID uuid.UUID, metricName string) (*types.DeviceReading, error)
}

type deviceReadingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeviceReadingRepo(db *gorm.DB, baseLog *logger.Logger) DeviceReadingRepo {
	return &deviceReadingRepo{db: db, log: baseLog.With("repo", "DeviceReadingRepo")}
}

func (r *deviceReadingRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.DeviceReading) ([]*types.DeviceReading, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.DeviceReading{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *deviceReadingRepo) GetHistory(ctx context.Context, tx *gorm.DB, deviceID uuid.UUID, metricName string, from, to time.Time, limit int) ([]*types.DeviceReading, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.DeviceReading{}
	if deviceID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(ctx).Where("device_id = ?", deviceID)
	if metricName != "" {
		q = q.Where("metric_name = ?", metricName)
	}
	if !from.IsZero() {
		q = q.Where("timestamp >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("timestamp <= ?", to)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Order("timestamp DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *deviceReadingRepo) GetLatest(ctx context.Context, tx *gorm.DB, deviceID uuid.UUID, metricName string) (*types.DeviceReading, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if deviceID == uuid.Nil || metricName == "" {
		return nil, nil
	}
	var out []*types.DeviceReading
	if err := t.WithContext(ctx).
		Where("device_id = ? AND metric_name = ?", deviceID, metricName).
		Order("timestamp DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
