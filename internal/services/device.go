package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/iotsphere/iotsphere-backend/internal/datasource"
	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/metrics"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

// ReadingInput is one telemetry sample as submitted by a device.
type ReadingInput struct {
	MetricName string  `json:"metric_name" binding:"required"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
}

// DeviceUpdateInput carries the client-mutable device columns for PATCH.
// Nil fields are left untouched; identity columns (id, device_type) are
// not updatable at all.
type DeviceUpdateInput struct {
	Name         *string        `json:"name"`
	Location     *string        `json:"location"`
	Manufacturer *string        `json:"manufacturer"`
	ModelNumber  *string        `json:"model_number"`
	Status       *string        `json:"status"`
	Metadata     datatypes.JSON `json:"metadata"`
}

// columns translates the set fields into the column-keyed map both store
// and mock update paths consume.
func (in DeviceUpdateInput) columns() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if in.Manufacturer != nil {
		updates["manufacturer"] = *in.Manufacturer
	}
	if in.ModelNumber != nil {
		updates["model_number"] = *in.ModelNumber
	}
	if in.Status != nil {
		switch status := types.DeviceStatus(*in.Status); status {
		case types.DeviceStatusOnline, types.DeviceStatusOffline, types.DeviceStatusMaintenance:
			updates["status"] = status
		default:
			return nil, fmt.Errorf("unknown device status %q", *in.Status)
		}
	}
	if len(in.Metadata) > 0 {
		updates["metadata"] = in.Metadata
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no updates supplied")
	}
	return updates, nil
}

// ReadingCacheStore is the latest-reading cache surface the service
// depends on; internal/cache implements it over Redis.
type ReadingCacheStore interface {
	StoreLatest(ctx context.Context, reading *types.DeviceReading) error
	GetLatest(ctx context.Context, deviceID uuid.UUID, metricName string) (*types.DeviceReading, error)
}

type DeviceService interface {
	ListDevices(ctx context.Context, deviceType types.DeviceType) (datasource.Sourced[[]*types.Device], error)
	GetDevice(ctx context.Context, id uuid.UUID) (datasource.Sourced[*types.Device], error)
	CreateDevice(ctx context.Context, row *types.Device) (datasource.Sourced[*types.Device], error)
	UpdateDevice(ctx context.Context, id uuid.UUID, in DeviceUpdateInput) (datasource.Sourced[bool], error)
	DeleteDevice(ctx context.Context, id uuid.UUID) (datasource.Sourced[bool], error)

	RecordReadings(ctx context.Context, deviceID uuid.UUID, inputs []ReadingInput) (datasource.Sourced[[]*types.DeviceReading], error)
	GetLatestReading(ctx context.Context, deviceID uuid.UUID, metricName string) (datasource.Sourced[*types.DeviceReading], error)
	GetReadingHistory(ctx context.Context, deviceID uuid.UUID, metricName string, from, to time.Time, limit int) (datasource.Sourced[[]*types.DeviceReading], error)
}

type deviceService struct {
	log      *logger.Logger
	data     *datasource.Facade
	readings ReadingCacheStore
	notifier Notifier
}

// NewDeviceService wires the device registry. The reading cache is
// optional; without it every latest-reading lookup goes to the facade.
func NewDeviceService(baseLog *logger.Logger, data *datasource.Facade, readings ReadingCacheStore, notifier Notifier) DeviceService {
	return &deviceService{
		log:      baseLog.With("service", "DeviceService"),
		data:     data,
		readings: readings,
		notifier: notifier,
	}
}

func (s *deviceService) ListDevices(ctx context.Context, deviceType types.DeviceType) (datasource.Sourced[[]*types.Device], error) {
	return s.data.GetDevices(ctx, deviceType)
}

func (s *deviceService) GetDevice(ctx context.Context, id uuid.UUID) (datasource.Sourced[*types.Device], error) {
	if id == uuid.Nil {
		return datasource.Sourced[*types.Device]{}, fmt.Errorf("missing device id")
	}
	return s.data.GetDevice(ctx, id)
}

func (s *deviceService) CreateDevice(ctx context.Context, row *types.Device) (datasource.Sourced[*types.Device], error) {
	if row == nil || row.Name == "" {
		return datasource.Sourced[*types.Device]{}, fmt.Errorf("missing device name")
	}
	switch row.DeviceType {
	case types.DeviceTypeWaterHeater, types.DeviceTypeVendingMachine:
	default:
		return datasource.Sourced[*types.Device]{}, fmt.Errorf("unknown device type %q", row.DeviceType)
	}
	return s.data.CreateDevice(ctx, row)
}

func (s *deviceService) UpdateDevice(ctx context.Context, id uuid.UUID, in DeviceUpdateInput) (datasource.Sourced[bool], error) {
	if id == uuid.Nil {
		return datasource.Sourced[bool]{}, fmt.Errorf("missing device id")
	}
	updates, err := in.columns()
	if err != nil {
		return datasource.Sourced[bool]{}, err
	}
	res, err := s.data.UpdateDevice(ctx, id, updates)
	if err != nil {
		return res, err
	}
	if in.Status != nil && s.notifier != nil {
		if notifyErr := s.notifier.NotifyDeviceStatus(ctx, id, types.DeviceStatus(*in.Status)); notifyErr != nil {
			metrics.NotificationFailures.Inc()
			s.log.Warn("Device status notification failed", "error", notifyErr, "device_id", id)
		}
	}
	return res, nil
}

func (s *deviceService) DeleteDevice(ctx context.Context, id uuid.UUID) (datasource.Sourced[bool], error) {
	if id == uuid.Nil {
		return datasource.Sourced[bool]{}, fmt.Errorf("missing device id")
	}
	return s.data.DeleteDevice(ctx, id)
}

func (s *deviceService) RecordReadings(ctx context.Context, deviceID uuid.UUID, inputs []ReadingInput) (datasource.Sourced[[]*types.DeviceReading], error) {
	if deviceID == uuid.Nil {
		return datasource.Sourced[[]*types.DeviceReading]{}, fmt.Errorf("missing device id")
	}
	if len(inputs) == 0 {
		return datasource.Sourced[[]*types.DeviceReading]{}, fmt.Errorf("no readings supplied")
	}

	rows := make([]*types.DeviceReading, 0, len(inputs))
	for _, in := range inputs {
		if in.MetricName == "" {
			return datasource.Sourced[[]*types.DeviceReading]{}, fmt.Errorf("reading missing metric name")
		}
		rows = append(rows, &types.DeviceReading{
			DeviceID:   deviceID,
			MetricName: in.MetricName,
			Value:      in.Value,
			Unit:       in.Unit,
		})
	}

	stored, err := s.data.RecordDeviceReadings(ctx, rows)
	if err != nil {
		return stored, err
	}

	// cache refresh is best-effort; mock-served rows stay out so a
	// cache hit is always store-backed and can report Mock=false
	if s.readings != nil && !stored.Mock {
		for _, row := range stored.Data {
			if cacheErr := s.readings.StoreLatest(ctx, row); cacheErr != nil {
				s.log.Warn("Failed to cache latest reading", "error", cacheErr, "device_id", deviceID, "metric", row.MetricName)
			}
		}
	}
	return stored, nil
}

func (s *deviceService) GetLatestReading(ctx context.Context, deviceID uuid.UUID, metricName string) (datasource.Sourced[*types.DeviceReading], error) {
	if deviceID == uuid.Nil || metricName == "" {
		return datasource.Sourced[*types.DeviceReading]{}, fmt.Errorf("missing device id or metric name")
	}
	if s.readings != nil {
		cached, err := s.readings.GetLatest(ctx, deviceID, metricName)
		if err != nil {
			s.log.Warn("Reading cache lookup failed", "error", err, "device_id", deviceID, "metric", metricName)
		} else if cached != nil {
			// only store-backed rows enter the cache, so a hit is real data
			return datasource.Sourced[*types.DeviceReading]{Data: cached}, nil
		}
	}
	return s.data.GetLatestDeviceReading(ctx, deviceID, metricName)
}

func (s *deviceService) GetReadingHistory(ctx context.Context, deviceID uuid.UUID, metricName string, from, to time.Time, limit int) (datasource.Sourced[[]*types.DeviceReading], error) {
	if deviceID == uuid.Nil {
		return datasource.Sourced[[]*types.DeviceReading]{}, fmt.Errorf("missing device id")
	}
	return s.data.GetDeviceReadingHistory(ctx, deviceID, metricName, from, to, limit)
}
