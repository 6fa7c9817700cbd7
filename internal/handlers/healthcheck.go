package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iotsphere/iotsphere-backend/internal/cache"
	"github.com/iotsphere/iotsphere-backend/internal/datasource"
)

type HealthHandler struct {
	flags datasource.Flags
	cache *cache.ReadingCache
}

func NewHealthHandler(flags datasource.Flags, readings *cache.ReadingCache) *HealthHandler {
	return &HealthHandler{flags: flags, cache: readings}
}

// GET /healthcheck
// Reports liveness plus which data source requests are currently served from.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	source := "database"
	if h.flags.UseMockData() {
		source = "mock"
	}
	body := gin.H{
		"status":           "ok",
		"data_source":      source,
		"fallback_enabled": h.flags.FallbackEnabled(),
	}
	if h.cache != nil {
		cacheStatus := "ok"
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			cacheStatus = "unavailable"
		}
		body["reading_cache"] = cacheStatus
	}
	c.JSON(http.StatusOK, body)
}
