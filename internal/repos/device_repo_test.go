package repos

import (
	"context"
	"testing"
	"time"

	"github.com/iotsphere/iotsphere-backend/internal/repos/testutil"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

func TestDeviceRepoTypeFiltering(t *testing.T) {
	conn := testutil.DB(t)
	devices := NewDeviceRepo(conn, testutil.Logger(t))
	ctx := context.Background()

	fixtures := []*types.Device{
		{Name: "Heater A", DeviceType: types.DeviceTypeWaterHeater, Status: types.DeviceStatusOnline},
		{Name: "Heater B", DeviceType: types.DeviceTypeWaterHeater, Status: types.DeviceStatusOffline},
		{Name: "Vending L-1", DeviceType: types.DeviceTypeVendingMachine, Status: types.DeviceStatusOnline},
	}
	for _, d := range fixtures {
		if _, err := devices.Create(ctx, nil, d); err != nil {
			t.Fatalf("Create(%s): %v", d.Name, err)
		}
	}

	heaters, err := devices.GetAll(ctx, nil, types.DeviceTypeWaterHeater)
	if err != nil {
		t.Fatalf("GetAll(water_heater): %v", err)
	}
	if len(heaters) != 2 {
		t.Fatalf("heater listing = %d devices, want 2", len(heaters))
	}

	all, err := devices.GetAll(ctx, nil, "")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("full listing = %d devices, want 3", len(all))
	}
}

func TestDeviceRepoUpdateFields(t *testing.T) {
	conn := testutil.DB(t)
	devices := NewDeviceRepo(conn, testutil.Logger(t))
	ctx := context.Background()

	created, err := devices.Create(ctx, nil, &types.Device{
		Name: "Heater A", DeviceType: types.DeviceTypeWaterHeater, Status: types.DeviceStatusOnline,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := devices.UpdateFields(ctx, nil, created.ID, map[string]interface{}{
		"status":   string(types.DeviceStatusMaintenance),
		"location": "Basement / Rack 3",
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	got, err := devices.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != types.DeviceStatusMaintenance || got.Location != "Basement / Rack 3" {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestDeviceReadingRepoLatestAndHistory(t *testing.T) {
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	devices := NewDeviceRepo(conn, log)
	readings := NewDeviceReadingRepo(conn, log)
	ctx := context.Background()

	device, err := devices.Create(ctx, nil, &types.Device{
		Name: "Heater A", DeviceType: types.DeviceTypeWaterHeater, Status: types.DeviceStatusOnline,
	})
	if err != nil {
		t.Fatalf("Create device: %v", err)
	}

	now := time.Now().UTC()
	rows := []*types.DeviceReading{
		{DeviceID: device.ID, MetricName: "temperature", Value: 52.0, Unit: "C", Timestamp: now.Add(-3 * time.Hour)},
		{DeviceID: device.ID, MetricName: "temperature", Value: 54.5, Unit: "C", Timestamp: now.Add(-1 * time.Hour)},
		{DeviceID: device.ID, MetricName: "pressure", Value: 2.1, Unit: "bar", Timestamp: now.Add(-1 * time.Hour)},
	}
	if _, err := readings.Create(ctx, nil, rows); err != nil {
		t.Fatalf("Create readings: %v", err)
	}

	latest, err := readings.GetLatest(ctx, nil, device.ID, "temperature")
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if latest == nil || latest.Value != 54.5 {
		t.Fatalf("latest temperature = %+v, want 54.5", latest)
	}

	hist, err := readings.GetHistory(ctx, nil, device.ID, "temperature", now.Add(-2*time.Hour), now, 0)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(hist) != 1 || hist[0].Value != 54.5 {
		t.Fatalf("ranged history = %+v, want the single recent sample", hist)
	}
}

func TestDeviceRepoDeleteCascadesReadings(t *testing.T) {
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	devices := NewDeviceRepo(conn, log)
	readings := NewDeviceReadingRepo(conn, log)
	ctx := context.Background()

	device, err := devices.Create(ctx, nil, &types.Device{
		Name: "Heater A", DeviceType: types.DeviceTypeWaterHeater, Status: types.DeviceStatusOnline,
	})
	if err != nil {
		t.Fatalf("Create device: %v", err)
	}
	if _, err := readings.Create(ctx, nil, []*types.DeviceReading{
		{DeviceID: device.ID, MetricName: "temperature", Value: 52.0, Unit: "C"},
	}); err != nil {
		t.Fatalf("Create readings: %v", err)
	}

	if err := devices.Delete(ctx, nil, device.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int64
	if err := conn.Model(&types.DeviceReading{}).Where("device_id = ?", device.ID).Count(&count).Error; err != nil {
		t.Fatalf("count readings: %v", err)
	}
	if count != 0 {
		t.Fatalf("%d orphaned readings after device delete", count)
	}
}
