package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/iotsphere/iotsphere-backend/internal/datasource"
	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/mockdata"
	"github.com/iotsphere/iotsphere-backend/internal/repos"
	"github.com/iotsphere/iotsphere-backend/internal/repos/testutil"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

type stubReadingCache struct {
	entries map[string]*types.DeviceReading
	stores  int
}

func newStubReadingCache() *stubReadingCache {
	return &stubReadingCache{entries: map[string]*types.DeviceReading{}}
}

func (c *stubReadingCache) StoreLatest(ctx context.Context, reading *types.DeviceReading) error {
	c.stores++
	c.entries[reading.DeviceID.String()+"/"+reading.MetricName] = reading
	return nil
}

func (c *stubReadingCache) GetLatest(ctx context.Context, deviceID uuid.UUID, metricName string) (*types.DeviceReading, error) {
	return c.entries[deviceID.String()+"/"+metricName], nil
}

// testDeviceMock serves everything from the snapshot, no database.
func testDeviceMock(t *testing.T, readings ReadingCacheStore) DeviceService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	facade := datasource.NewFacade(log, datasource.StaticFlags{Mock: true, Fallback: true}, mockdata.New(),
		nil, nil, nil, nil, nil, nil, nil, nil)
	return NewDeviceService(log, facade, readings, nil)
}

// testDeviceStore runs against a real migrated SQLite store.
func testDeviceStore(t *testing.T, readings ReadingCacheStore) DeviceService {
	t.Helper()
	log := testutil.Logger(t)
	conn := testutil.DB(t)
	facade := datasource.NewFacade(log, datasource.StaticFlags{}, mockdata.New(),
		nil, nil, nil, nil, nil,
		repos.NewDeviceRepo(conn, log),
		repos.NewDeviceReadingRepo(conn, log),
		nil)
	return NewDeviceService(log, facade, readings, nil)
}

func strPtr(s string) *string { return &s }

func TestMockReadingsNeverEnterCache(t *testing.T) {
	cache := newStubReadingCache()
	svc := testDeviceMock(t, cache)
	ctx := context.Background()
	deviceID := uuid.New()

	res, err := svc.RecordReadings(ctx, deviceID, []ReadingInput{
		{MetricName: "temperature", Value: 54.5, Unit: "celsius"},
	})
	if err != nil {
		t.Fatalf("RecordReadings: %v", err)
	}
	if !res.Mock {
		t.Fatalf("mock-mode write not labeled mock")
	}
	if cache.stores != 0 {
		t.Fatalf("mock readings cached %d times, want 0", cache.stores)
	}

	latest, err := svc.GetLatestReading(ctx, deviceID, "temperature")
	if err != nil {
		t.Fatalf("GetLatestReading: %v", err)
	}
	if latest.Data == nil || latest.Data.Value != 54.5 {
		t.Fatalf("latest reading = %+v, want value 54.5", latest.Data)
	}
	if !latest.Mock {
		t.Fatalf("snapshot-sourced reading lost its mock label")
	}
}

func TestStoreReadingsPopulateCache(t *testing.T) {
	cache := newStubReadingCache()
	svc := testDeviceStore(t, cache)
	ctx := context.Background()

	created, err := svc.CreateDevice(ctx, &types.Device{Name: "basement heater", DeviceType: types.DeviceTypeWaterHeater})
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}

	res, err := svc.RecordReadings(ctx, created.Data.ID, []ReadingInput{
		{MetricName: "temperature", Value: 61.0, Unit: "celsius"},
		{MetricName: "pressure", Value: 2.1, Unit: "bar"},
	})
	if err != nil {
		t.Fatalf("RecordReadings: %v", err)
	}
	if res.Mock {
		t.Fatalf("store-backed write labeled mock")
	}
	if cache.stores != 2 {
		t.Fatalf("cached %d readings, want 2", cache.stores)
	}

	latest, err := svc.GetLatestReading(ctx, created.Data.ID, "temperature")
	if err != nil {
		t.Fatalf("GetLatestReading: %v", err)
	}
	if latest.Data == nil || latest.Data.Value != 61.0 {
		t.Fatalf("latest reading = %+v, want value 61.0", latest.Data)
	}
	if latest.Mock {
		t.Fatalf("cache hit of a store-backed reading labeled mock")
	}
}

func TestDeviceUpdateAppliesOnlyMutableColumns(t *testing.T) {
	svc := testDeviceStore(t, nil)
	ctx := context.Background()

	created, err := svc.CreateDevice(ctx, &types.Device{Name: "lobby vending", DeviceType: types.DeviceTypeVendingMachine})
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}

	if _, err := svc.UpdateDevice(ctx, created.Data.ID, DeviceUpdateInput{
		Name:     strPtr("lobby vending 2"),
		Location: strPtr("building B"),
		Status:   strPtr("MAINTENANCE"),
		Metadata: datatypes.JSON(`{"firmware":"1.2.3"}`),
	}); err != nil {
		t.Fatalf("UpdateDevice: %v", err)
	}

	got, err := svc.GetDevice(ctx, created.Data.ID)
	if err != nil {
		t.Fatalf("GetDevice: %v", err)
	}
	if got.Data.Name != "lobby vending 2" || got.Data.Location != "building B" {
		t.Fatalf("update not applied: %+v", got.Data)
	}
	if got.Data.Status != types.DeviceStatusMaintenance {
		t.Fatalf("status = %q, want MAINTENANCE", got.Data.Status)
	}
	if len(got.Data.Metadata) == 0 {
		t.Fatalf("metadata not stored")
	}
	if got.Data.ID != created.Data.ID || got.Data.DeviceType != types.DeviceTypeVendingMachine {
		t.Fatalf("identity columns changed: %+v", got.Data)
	}
}

func TestDeviceUpdateRejectsUnknownStatus(t *testing.T) {
	svc := testDeviceMock(t, nil)

	if _, err := svc.UpdateDevice(context.Background(), uuid.New(), DeviceUpdateInput{
		Status: strPtr("EXPLODED"),
	}); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestDeviceUpdateRequiresAField(t *testing.T) {
	svc := testDeviceMock(t, nil)

	if _, err := svc.UpdateDevice(context.Background(), uuid.New(), DeviceUpdateInput{}); err == nil {
		t.Fatalf("expected error for empty update")
	}
}
