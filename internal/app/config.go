package app

import (
	"time"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/utils"
)

type Config struct {
	Port            string
	RedisAddr       string
	RedisPassword   string
	RedisCacheDB    int
	ReadingCacheTTL time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)
	redisCacheDB := utils.GetEnvAsInt("REDIS_CACHE_DB", 0, log)
	cacheTTLSeconds := utils.GetEnvAsInt("READING_CACHE_TTL", 300, log)
	return Config{
		Port:            port,
		RedisAddr:       redisAddr,
		RedisPassword:   redisPassword,
		RedisCacheDB:    redisCacheDB,
		ReadingCacheTTL: time.Duration(cacheTTLSeconds) * time.Second,
	}
}
