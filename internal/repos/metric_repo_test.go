package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/repos/testutil"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

func TestModelMetricRepoBatchCreateAssignsIDs(t *testing.T) {
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	models := NewModelRepo(conn, log)
	metrics := NewModelMetricRepo(conn, log)
	ctx := context.Background()

	seedModel(t, models, "m1")
	rows := []*types.ModelMetric{
		{ModelID: "m1", ModelVersion: "1.0.0", MetricName: "accuracy", MetricValue: 0.91},
		{ModelID: "m1", ModelVersion: "1.0.0", MetricName: "drift_score", MetricValue: 0.12},
	}
	created, err := metrics.Create(ctx, nil, rows)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for i, row := range created {
		if row.ID == uuid.Nil {
			t.Fatalf("row %d has no ID", i)
		}
	}
}

func TestModelMetricRepoHistoryFilters(t *testing.T) {
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	models := NewModelRepo(conn, log)
	metrics := NewModelMetricRepo(conn, log)
	ctx := context.Background()

	seedModel(t, models, "m1")
	now := time.Now().UTC()
	rows := []*types.ModelMetric{
		{ModelID: "m1", ModelVersion: "1.0.0", MetricName: "accuracy", MetricValue: 0.90, Timestamp: now.Add(-3 * time.Hour)},
		{ModelID: "m1", ModelVersion: "1.0.0", MetricName: "accuracy", MetricValue: 0.92, Timestamp: now.Add(-2 * time.Hour)},
		{ModelID: "m1", ModelVersion: "1.1.0", MetricName: "accuracy", MetricValue: 0.95, Timestamp: now.Add(-1 * time.Hour)},
		{ModelID: "m1", ModelVersion: "1.0.0", MetricName: "drift_score", MetricValue: 0.10, Timestamp: now.Add(-1 * time.Hour)},
	}
	if _, err := metrics.Create(ctx, nil, rows); err != nil {
		t.Fatalf("Create: %v", err)
	}

	hist, err := metrics.GetHistory(ctx, nil, "m1", "1.0.0", "accuracy", time.Time{}, 0)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("filtered history = %d rows, want 2", len(hist))
	}
	if hist[0].MetricValue != 0.92 {
		t.Fatalf("history not newest-first: %+v", hist)
	}

	recent, err := metrics.GetHistory(ctx, nil, "m1", "", "accuracy", now.Add(-90*time.Minute), 0)
	if err != nil {
		t.Fatalf("GetHistory(since): %v", err)
	}
	if len(recent) != 1 || recent[0].ModelVersion != "1.1.0" {
		t.Fatalf("since filter returned %+v", recent)
	}

	limited, err := metrics.GetHistory(ctx, nil, "m1", "", "", time.Time{}, 2)
	if err != nil {
		t.Fatalf("GetHistory(limit): %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limit ignored, got %d rows", len(limited))
	}
}

func TestModelMetricRepoLatestByModel(t *testing.T) {
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	models := NewModelRepo(conn, log)
	metrics := NewModelMetricRepo(conn, log)
	ctx := context.Background()

	seedModel(t, models, "m1")
	now := time.Now().UTC()
	rows := []*types.ModelMetric{
		{ModelID: "m1", ModelVersion: "1.0.0", MetricName: "accuracy", MetricValue: 0.90, Timestamp: now.Add(-2 * time.Hour)},
		{ModelID: "m1", ModelVersion: "1.0.0", MetricName: "accuracy", MetricValue: 0.93, Timestamp: now.Add(-1 * time.Hour)},
		{ModelID: "m1", ModelVersion: "1.0.0", MetricName: "drift_score", MetricValue: 0.11, Timestamp: now.Add(-1 * time.Hour)},
	}
	if _, err := metrics.Create(ctx, nil, rows); err != nil {
		t.Fatalf("Create: %v", err)
	}

	latest, err := metrics.GetLatestByModel(ctx, nil, "m1")
	if err != nil {
		t.Fatalf("GetLatestByModel: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("latest = %d rows, want one per metric name", len(latest))
	}
	for _, row := range latest {
		if row.MetricName == "accuracy" && row.MetricValue != 0.93 {
			t.Fatalf("stale accuracy row returned: %+v", row)
		}
	}
}
