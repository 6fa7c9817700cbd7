package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

// ModelMetricRepo is append-only: there is deliberately no update or delete
// on metric rows, only the model cascade removes them.
type ModelMetricRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ModelMetric) ([]*types.ModelMetric, error)
	GetHistory(ctx context.Context, tx *gorm.DB, modelID, version, metricName string, since time.Time, limit int) ([]*types.ModelMetric, error)
	GetLatestByModel(ctx context.Context, tx *gorm.DB, modelID string) ([]*types.ModelMetric, error)
}

type modelMetricRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModelMetricRepo(db *gorm.DB, baseLog *logger.Logger) ModelMetricRepo {
	return &modelMetricRepo{db: db, log: baseLog.With("repo", "ModelMetricRepo")}
}

func (r *modelMetricRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ModelMetric) ([]*types.ModelMetric, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ModelMetric{}, nil
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

func (r *modelMetricRepo) GetHistory(ctx context.Context, tx *gorm.DB, modelID, version, metricName string, since time.Time, limit int) ([]*types.ModelMetric, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.ModelMetric{}
	if modelID == "" {
		return out, nil
	}
	q := t.WithContext(ctx).Where("model_id = ?", modelID)
	if version != "" {
		q = q.Where("model_version = ?", version)
	}
	if metricName != "" {
		q = q.Where("metric_name = ?", metricName)
	}
	if !since.IsZero() {
		q = q.Where("timestamp >= ?", since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Order("timestamp DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetLatestByModel returns the newest row per (model_version, metric_name).
func (r *modelMetricRepo) GetLatestByModel(ctx context.Context, tx *gorm.DB, modelID string) ([]*types.ModelMetric, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	out := []*types.ModelMetric{}
	if modelID == "" {
		return out, nil
	}
	sub := t.WithContext(ctx).
		Model(&types.ModelMetric{}).
		Select("model_version, metric_name, MAX(timestamp) AS max_ts").
		Where("model_id = ?", modelID).
		Group("model_version, metric_name")
	if err := t.WithContext(ctx).
		Joins("JOIN (?) latest ON model_metrics.model_version = latest.model_version AND model_metrics.metric_name = latest.metric_name AND model_metrics.timestamp = latest.max_ts", sub).
		Where("model_metrics.model_id = ?", modelID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
