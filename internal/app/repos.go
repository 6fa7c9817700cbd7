package app

import (
	"gorm.io/gorm"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/repos"
)

type Repos struct {
	Model         repos.ModelRepo
	ModelVersion  repos.ModelVersionRepo
	ModelMetric   repos.ModelMetricRepo
	AlertRule     repos.AlertRuleRepo
	AlertEvent    repos.AlertEventRepo
	Device        repos.DeviceRepo
	DeviceReading repos.DeviceReadingRepo
	Tag           repos.TagRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Model:         repos.NewModelRepo(db, log),
		ModelVersion:  repos.NewModelVersionRepo(db, log),
		ModelMetric:   repos.NewModelMetricRepo(db, log),
		AlertRule:     repos.NewAlertRuleRepo(db, log),
		AlertEvent:    repos.NewAlertEventRepo(db, log),
		Device:        repos.NewDeviceRepo(db, log),
		DeviceReading: repos.NewDeviceReadingRepo(db, log),
		Tag:           repos.NewTagRepo(db, log),
	}
}
