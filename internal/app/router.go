package app

import (
	"github.com/gin-gonic/gin"

	"github.com/iotsphere/iotsphere-backend/internal/server"
)

func wireRouter(handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		HealthHandler:     handlerset.Health,
		ModelHandler:      handlerset.Model,
		MonitoringHandler: handlerset.Monitoring,
		AlertHandler:      handlerset.Alert,
		DeviceHandler:     handlerset.Device,
		TagHandler:        handlerset.Tag,
		StreamHandler:     handlerset.Stream,
	})
}
