package types

import (
	"time"

	"github.com/google/uuid"
)

// ModelMetric is one recorded observation. Rows are append-only: nothing
// in the system updates or deletes them outside of a model cascade.
type ModelMetric struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ModelID      string    `gorm:"column:model_id;not null;index" json:"model_id"`
	Model        *Model    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModelID;references:ID" json:"model,omitempty"`
	ModelVersion string    `gorm:"column:model_version;not null" json:"model_version"`
	MetricName   string    `gorm:"column:metric_name;not null;index" json:"metric_name"`
	MetricValue  float64   `gorm:"column:metric_value;not null" json:"metric_value"`
	Timestamp    time.Time `gorm:"column:timestamp;not null;index;autoCreateTime" json:"timestamp"`
}

func (ModelMetric) TableName() string { return "model_metrics" }
