package datasource

import (
	"context"
	"time"

	"github.com/iotsphere/iotsphere-backend/internal/metrics"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

func (f *Facade) RecordModelMetrics(ctx context.Context, rows []*types.ModelMetric) (Sourced[[]*types.ModelMetric], error) {
	const op = "record_model_metrics"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.AddMetrics(rows))
	}
	created, err := f.modelMetrics.Create(ctx, nil, rows)
	if err != nil {
		return failedWrite(f, op, err, func() []*types.ModelMetric { return f.mock.AddMetrics(rows) })
	}
	metrics.MetricsRecorded.Add(float64(len(created)))
	return real(created)
}

// GetModelMetricsHistory is a degrading read: with fallback disabled it
// answers empty+mock instead of raising, since dashboards poll it.
func (f *Facade) GetModelMetricsHistory(ctx context.Context, modelID, version, metricName string, since time.Time, limit int) (Sourced[[]*types.ModelMetric], error) {
	const op = "get_model_metrics_history"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.MetricsHistory(modelID, version, metricName, since, limit))
	}
	rows, err := f.modelMetrics.GetHistory(ctx, nil, modelID, version, metricName, since, limit)
	if err != nil {
		return failedRead(f, op, err, true, func() []*types.ModelMetric {
			return f.mock.MetricsHistory(modelID, version, metricName, since, limit)
		})
	}
	return real(rows)
}

func (f *Facade) GetLatestModelMetrics(ctx context.Context, modelID string) (Sourced[[]*types.ModelMetric], error) {
	const op = "get_latest_model_metrics"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.LatestMetrics(modelID))
	}
	rows, err := f.modelMetrics.GetLatestByModel(ctx, nil, modelID)
	if err != nil {
		return failedRead(f, op, err, false, func() []*types.ModelMetric { return f.mock.LatestMetrics(modelID) })
	}
	return real(rows)
}
