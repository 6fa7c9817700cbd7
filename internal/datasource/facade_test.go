package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/mockdata"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

// stubModelRepo counts calls and optionally fails, so tests can assert the
// store was or wasn't touched.
type stubModelRepo struct {
	rows  []*types.Model
	err   error
	calls int
}

func (s *stubModelRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Model) (*types.Model, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	s.rows = append(s.rows, row)
	return row, nil
}

func (s *stubModelRepo) GetAll(ctx context.Context, tx *gorm.DB, includeArchived bool) ([]*types.Model, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *stubModelRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Model, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	for _, m := range s.rows {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (s *stubModelRepo) SetArchived(ctx context.Context, tx *gorm.DB, id string, archived bool) error {
	s.calls++
	return s.err
}

func (s *stubModelRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	s.calls++
	return s.err
}

type stubMetricRepo struct {
	rows  []*types.ModelMetric
	err   error
	calls int
}

func (s *stubMetricRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ModelMetric) ([]*types.ModelMetric, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	s.rows = append(s.rows, rows...)
	return rows, nil
}

func (s *stubMetricRepo) GetHistory(ctx context.Context, tx *gorm.DB, modelID, version, metricName string, since time.Time, limit int) ([]*types.ModelMetric, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func (s *stubMetricRepo) GetLatestByModel(ctx context.Context, tx *gorm.DB, modelID string) ([]*types.ModelMetric, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func testFacade(t *testing.T, flags Flags, models *stubModelRepo, metricsRepo *stubMetricRepo) *Facade {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return NewFacade(log, flags, mockdata.New(), models, nil, metricsRepo, nil, nil, nil, nil, nil)
}

func TestGetModelsStoreSuccessIsNotMock(t *testing.T) {
	store := &stubModelRepo{rows: []*types.Model{}}
	f := testFacade(t, StaticFlags{Fallback: true}, store, nil)

	res, err := f.GetModels(context.Background(), false)
	if err != nil {
		t.Fatalf("GetModels: %v", err)
	}
	if res.Mock {
		t.Fatalf("successful store read labeled mock")
	}
	// emptiness is not failure
	if len(res.Data) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(res.Data))
	}
}

func TestGetModelsForceMockSkipsStore(t *testing.T) {
	store := &stubModelRepo{rows: []*types.Model{{ID: "real-model", Name: "Real"}}}
	f := testFacade(t, StaticFlags{Mock: true, Fallback: true}, store, nil)

	res, err := f.GetModels(context.Background(), false)
	if err != nil {
		t.Fatalf("GetModels: %v", err)
	}
	if !res.Mock {
		t.Fatalf("forced mock read not labeled mock")
	}
	if len(res.Data) == 0 {
		t.Fatalf("mock snapshot returned no models")
	}
	if store.calls != 0 {
		t.Fatalf("store touched %d times under force-mock", store.calls)
	}
}

func TestGetModelsFallbackOnStoreError(t *testing.T) {
	store := &stubModelRepo{err: errors.New("disk I/O error")}
	f := testFacade(t, StaticFlags{Fallback: true}, store, nil)

	res, err := f.GetModels(context.Background(), false)
	if err != nil {
		t.Fatalf("GetModels with fallback: %v", err)
	}
	if !res.Mock {
		t.Fatalf("fallback read not labeled mock")
	}
	if len(res.Data) == 0 {
		t.Fatalf("fallback returned no mock models")
	}
}

func TestGetModelsRaisesWhenFallbackDisabled(t *testing.T) {
	store := &stubModelRepo{err: errors.New("disk I/O error")}
	f := testFacade(t, StaticFlags{Fallback: false}, store, nil)

	_, err := f.GetModels(context.Background(), false)
	if err == nil {
		t.Fatalf("expected StorageError with fallback disabled")
	}
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("got %T, want *StorageError", err)
	}
	if !errors.Is(err, store.err) {
		t.Fatalf("StorageError does not wrap the original store error")
	}
}

func TestRecordModelMetricsWriteRaisesWhenFallbackDisabled(t *testing.T) {
	metricsRepo := &stubMetricRepo{err: errors.New("constraint violation")}
	f := testFacade(t, StaticFlags{Fallback: false}, nil, metricsRepo)

	rows := []*types.ModelMetric{{ModelID: "water-heater-thermal-model", ModelVersion: "1.1.0", MetricName: "accuracy", MetricValue: 0.8}}
	_, err := f.RecordModelMetrics(context.Background(), rows)
	if err == nil {
		t.Fatalf("expected write to raise with fallback disabled")
	}
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("got %T, want *StorageError", err)
	}
}

func TestRecordModelMetricsFallsBackToSnapshot(t *testing.T) {
	metricsRepo := &stubMetricRepo{err: errors.New("database is locked")}
	f := testFacade(t, StaticFlags{Fallback: true}, nil, metricsRepo)

	rows := []*types.ModelMetric{{ModelID: "water-heater-thermal-model", ModelVersion: "1.1.0", MetricName: "accuracy", MetricValue: 0.8}}
	res, err := f.RecordModelMetrics(context.Background(), rows)
	if err != nil {
		t.Fatalf("RecordModelMetrics with fallback: %v", err)
	}
	if !res.Mock {
		t.Fatalf("fallback write not labeled mock")
	}
	if len(res.Data) != 1 || res.Data[0].ID == uuid.Nil {
		t.Fatalf("fallback write did not assign IDs: %+v", res.Data)
	}

	// the mock write is visible to subsequent mock reads
	hist, err := f.GetModelMetricsHistory(context.Background(), "water-heater-thermal-model", "1.1.0", "accuracy", time.Time{}, 0)
	if err != nil {
		t.Fatalf("GetModelMetricsHistory: %v", err)
	}
	if !hist.Mock {
		t.Fatalf("history after store failure not labeled mock")
	}
	found := false
	for _, m := range hist.Data {
		if m.MetricValue == 0.8 {
			found = true
		}
	}
	if !found {
		t.Fatalf("mock write not visible in mock history")
	}
}

func TestDegradingReadReturnsEmptyMockWhenFallbackDisabled(t *testing.T) {
	metricsRepo := &stubMetricRepo{err: errors.New("disk I/O error")}
	f := testFacade(t, StaticFlags{Fallback: false}, nil, metricsRepo)

	res, err := f.GetModelMetricsHistory(context.Background(), "water-heater-thermal-model", "", "", time.Time{}, 0)
	if err != nil {
		t.Fatalf("degrading read should not raise: %v", err)
	}
	if !res.Mock {
		t.Fatalf("degraded read not labeled mock")
	}
	if len(res.Data) != 0 {
		t.Fatalf("degraded read should be empty, got %d rows", len(res.Data))
	}
}

func TestReadsAreIdempotent(t *testing.T) {
	f := testFacade(t, StaticFlags{Mock: true, Fallback: true}, nil, nil)

	first, err := f.GetModels(context.Background(), true)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := f.GetModels(context.Background(), true)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if first.Mock != second.Mock {
		t.Fatalf("mock flag changed between idempotent reads")
	}
	if len(first.Data) != len(second.Data) {
		t.Fatalf("data changed between idempotent reads: %d vs %d", len(first.Data), len(second.Data))
	}
	for i := range first.Data {
		if first.Data[i].ID != second.Data[i].ID {
			t.Fatalf("row %d differs between idempotent reads", i)
		}
	}
}

func TestFlagsAreReadPerCall(t *testing.T) {
	store := &stubModelRepo{rows: []*types.Model{{ID: "real-model", Name: "Real"}}}
	flags := &flipFlags{}
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	f := NewFacade(log, flags, mockdata.New(), store, nil, nil, nil, nil, nil, nil, nil)

	res, err := f.GetModels(context.Background(), false)
	if err != nil {
		t.Fatalf("GetModels: %v", err)
	}
	if res.Mock {
		t.Fatalf("first call should hit the store")
	}

	flags.mock = true
	res, err = f.GetModels(context.Background(), false)
	if err != nil {
		t.Fatalf("GetModels after flip: %v", err)
	}
	if !res.Mock {
		t.Fatalf("flag flip between calls was not observed")
	}
	if store.calls != 1 {
		t.Fatalf("store touched %d times, want 1", store.calls)
	}
}

type flipFlags struct {
	mock     bool
	fallback bool
}

func (f *flipFlags) UseMockData() bool     { return f.mock }
func (f *flipFlags) FallbackEnabled() bool { return f.fallback }
