package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DeviceReading is one telemetry sample from a device. Append-only, same
// lifecycle as ModelMetric.
type DeviceReading struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	DeviceID   uuid.UUID      `gorm:"column:device_id;type:uuid;not null;index" json:"device_id"`
	Device     *Device        `gorm:"constraint:OnDelete:CASCADE;foreignKey:DeviceID;references:ID" json:"device,omitempty"`
	MetricName string         `gorm:"column:metric_name;not null;index" json:"metric_name"`
	Value      float64        `gorm:"column:value;not null" json:"value"`
	Unit       string         `gorm:"column:unit" json:"unit"`
	Labels     datatypes.JSON `gorm:"column:labels" json:"labels,omitempty"`
	Timestamp  time.Time      `gorm:"column:timestamp;not null;index;autoCreateTime" json:"timestamp"`
}

func (DeviceReading) TableName() string { return "device_readings" }
