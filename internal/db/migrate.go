package db

import (
	"gorm.io/gorm"

	"github.com/iotsphere/iotsphere-backend/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Device registry + telemetry
		// =========================
		&types.Device{},
		&types.DeviceReading{},

		// =========================
		// Model performance monitoring
		// =========================
		&types.Model{},
		&types.ModelVersion{},
		&types.ModelMetric{},
		&types.AlertRule{},
		&types.AlertEvent{},

		// =========================
		// Tagging
		// =========================
		&types.Tag{},
		&types.ModelTagAssignment{},
	)
}
