package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/metrics"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

// ReadingCache keeps the latest telemetry sample per (device, metric) in
// Redis so dashboard polls skip the store. Purely an accelerator: callers
// fall back to the facade on a miss or error.
type ReadingCache struct {
	log    *logger.Logger
	client *goredis.Client
	ttl    time.Duration
}

func NewReadingCache(log *logger.Logger, addr, password string, db int, ttl time.Duration) (*ReadingCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ReadingCache{
		log:    log.With("component", "ReadingCache"),
		client: client,
		ttl:    ttl,
	}, nil
}

func readingKey(deviceID uuid.UUID, metricName string) string {
	return fmt.Sprintf("reading:latest:%s:%s", deviceID, metricName)
}

func (c *ReadingCache) StoreLatest(ctx context.Context, reading *types.DeviceReading) error {
	raw, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}
	if err := c.client.Set(ctx, readingKey(reading.DeviceID, reading.MetricName), raw, c.ttl).Err(); err != nil {
		metrics.CacheOperations.WithLabelValues("set", "error").Inc()
		return err
	}
	metrics.CacheOperations.WithLabelValues("set", "ok").Inc()
	return nil
}

// GetLatest returns (nil, nil) on a cache miss.
func (c *ReadingCache) GetLatest(ctx context.Context, deviceID uuid.UUID, metricName string) (*types.DeviceReading, error) {
	raw, err := c.client.Get(ctx, readingKey(deviceID, metricName)).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.CacheOperations.WithLabelValues("get", "miss").Inc()
		return nil, nil
	}
	if err != nil {
		metrics.CacheOperations.WithLabelValues("get", "error").Inc()
		return nil, err
	}
	var reading types.DeviceReading
	if err := json.Unmarshal(raw, &reading); err != nil {
		metrics.CacheOperations.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("failed to unmarshal cached reading: %w", err)
	}
	metrics.CacheOperations.WithLabelValues("get", "hit").Inc()
	return &reading, nil
}

func (c *ReadingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ReadingCache) Close() error {
	return c.client.Close()
}
