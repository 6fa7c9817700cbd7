package app

import (
	"github.com/iotsphere/iotsphere-backend/internal/cache"
	redisclient "github.com/iotsphere/iotsphere-backend/internal/clients/redis"
	"github.com/iotsphere/iotsphere-backend/internal/datasource"
	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/mockdata"
	"github.com/iotsphere/iotsphere-backend/internal/services"
	"github.com/iotsphere/iotsphere-backend/internal/sse"
)

type Services struct {
	Facade     *datasource.Facade
	Model      services.ModelService
	Monitoring services.MonitoringService
	Alert      services.AlertService
	Device     services.DeviceService
	Tag        services.TagService
	Notifier   services.Notifier

	ReadingCache *cache.ReadingCache
	AlertBus     redisclient.AlertBus
}

// wireServices builds the facade and everything above it. Redis is
// optional: a missing or unreachable Redis downgrades to local-only SSE
// and uncached reads with a warning, it never blocks startup.
func wireServices(log *logger.Logger, cfg Config, reposet Repos, hub *sse.Hub) Services {
	log.Info("Wiring services...")

	facade := datasource.NewFacade(log, datasource.EnvFlags{}, mockdata.New(),
		reposet.Model,
		reposet.ModelVersion,
		reposet.ModelMetric,
		reposet.AlertRule,
		reposet.AlertEvent,
		reposet.Device,
		reposet.DeviceReading,
		reposet.Tag,
	)

	var readingCache *cache.ReadingCache
	var alertBus redisclient.AlertBus
	if cfg.RedisAddr != "" {
		var err error
		readingCache, err = cache.NewReadingCache(log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB, cfg.ReadingCacheTTL)
		if err != nil {
			log.Warn("Reading cache unavailable, serving uncached", "error", err)
			readingCache = nil
		}
		alertBus, err = redisclient.NewAlertBus(log)
		if err != nil {
			log.Warn("Alert bus unavailable, SSE is local-only", "error", err)
			alertBus = nil
		}
	}

	notifier := services.NewAlertNotifier(log, hub, busOrNil(alertBus))

	return Services{
		Facade:       facade,
		Model:        services.NewModelService(log, facade),
		Monitoring:   services.NewMonitoringService(log, facade, notifier),
		Alert:        services.NewAlertService(log, facade),
		Device:       services.NewDeviceService(log, facade, cacheOrNil(readingCache), notifier),
		Tag:          services.NewTagService(log, facade),
		Notifier:     notifier,
		ReadingCache: readingCache,
		AlertBus:     alertBus,
	}
}

// busOrNil avoids handing the notifier a non-nil interface wrapping a nil
// concrete bus.
func busOrNil(bus redisclient.AlertBus) services.AlertPublisher {
	if bus == nil {
		return nil
	}
	return bus
}

// cacheOrNil, same deal for the reading cache.
func cacheOrNil(c *cache.ReadingCache) services.ReadingCacheStore {
	if c == nil {
		return nil
	}
	return c
}
