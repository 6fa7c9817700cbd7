package datasource

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/metrics"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

func (f *Facade) GetDevices(ctx context.Context, deviceType types.DeviceType) (Sourced[[]*types.Device], error) {
	const op = "get_devices"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.Devices(deviceType))
	}
	rows, err := f.devices.GetAll(ctx, nil, deviceType)
	if err != nil {
		return failedRead(f, op, err, false, func() []*types.Device { return f.mock.Devices(deviceType) })
	}
	return real(rows)
}

func (f *Facade) GetDevice(ctx context.Context, id uuid.UUID) (Sourced[*types.Device], error) {
	const op = "get_device"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.Device(id))
	}
	row, err := f.devices.GetByID(ctx, nil, id)
	if err != nil {
		return failedRead(f, op, err, false, func() *types.Device { return f.mock.Device(id) })
	}
	return real(row)
}

func (f *Facade) CreateDevice(ctx context.Context, row *types.Device) (Sourced[*types.Device], error) {
	const op = "create_device"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.AddDevice(row))
	}
	created, err := f.devices.Create(ctx, nil, row)
	if err != nil {
		return failedWrite(f, op, err, func() *types.Device { return f.mock.AddDevice(row) })
	}
	return real(created)
}

func (f *Facade) UpdateDevice(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (Sourced[bool], error) {
	const op = "update_device"
	if f.flags.UseMockData() {
		f.mock.UpdateDeviceFields(id, updates)
		return mocked(op, true)
	}
	if err := f.devices.UpdateFields(ctx, nil, id, updates); err != nil {
		return failedWrite(f, op, err, func() bool {
			f.mock.UpdateDeviceFields(id, updates)
			return true
		})
	}
	return real(true)
}

func (f *Facade) DeleteDevice(ctx context.Context, id uuid.UUID) (Sourced[bool], error) {
	const op = "delete_device"
	if f.flags.UseMockData() {
		f.mock.DeleteDevice(id)
		return mocked(op, true)
	}
	if err := f.devices.Delete(ctx, nil, id); err != nil {
		return failedWrite(f, op, err, func() bool {
			f.mock.DeleteDevice(id)
			return true
		})
	}
	return real(true)
}

func (f *Facade) RecordDeviceReadings(ctx context.Context, rows []*types.DeviceReading) (Sourced[[]*types.DeviceReading], error) {
	const op = "record_device_readings"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.AddReadings(rows))
	}
	created, err := f.readings.Create(ctx, nil, rows)
	if err != nil {
		return failedWrite(f, op, err, func() []*types.DeviceReading { return f.mock.AddReadings(rows) })
	}
	metrics.ReadingsRecorded.Add(float64(len(created)))
	return real(created)
}

// GetDeviceReadingHistory is a degrading read (dashboard path).
func (f *Facade) GetDeviceReadingHistory(ctx context.Context, deviceID uuid.UUID, metricName string, from, to time.Time, limit int) (Sourced[[]*types.DeviceReading], error) {
	const op = "get_device_reading_history"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.ReadingHistory(deviceID, metricName, from, to, limit))
	}
	rows, err := f.readings.GetHistory(ctx, nil, deviceID, metricName, from, to, limit)
	if err != nil {
		return failedRead(f, op, err, true, func() []*types.DeviceReading {
			return f.mock.ReadingHistory(deviceID, metricName, from, to, limit)
		})
	}
	return real(rows)
}

func (f *Facade) GetLatestDeviceReading(ctx context.Context, deviceID uuid.UUID, metricName string) (Sourced[*types.DeviceReading], error) {
	const op = "get_latest_device_reading"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.LatestReading(deviceID, metricName))
	}
	row, err := f.readings.GetLatest(ctx, nil, deviceID, metricName)
	if err != nil {
		return failedRead(f, op, err, false, func() *types.DeviceReading { return f.mock.LatestReading(deviceID, metricName) })
	}
	return real(row)
}
