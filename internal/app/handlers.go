package app

import (
	"github.com/iotsphere/iotsphere-backend/internal/datasource"
	"github.com/iotsphere/iotsphere-backend/internal/handlers"
	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/sse"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Model      *handlers.ModelHandler
	Monitoring *handlers.MonitoringHandler
	Alert      *handlers.AlertHandler
	Device     *handlers.DeviceHandler
	Tag        *handlers.TagHandler
	Stream     *handlers.StreamHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, hub *sse.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     handlers.NewHealthHandler(datasource.EnvFlags{}, serviceset.ReadingCache),
		Model:      handlers.NewModelHandler(log, serviceset.Model, serviceset.Tag),
		Monitoring: handlers.NewMonitoringHandler(log, serviceset.Monitoring),
		Alert:      handlers.NewAlertHandler(log, serviceset.Alert),
		Device:     handlers.NewDeviceHandler(log, serviceset.Device),
		Tag:        handlers.NewTagHandler(log, serviceset.Tag),
		Stream:     handlers.NewStreamHandler(log, hub),
	}
}
