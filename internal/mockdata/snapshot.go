package mockdata

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/types"
)

// Snapshot is the fixed in-memory dataset served when the store is mocked
// or unreachable. Writes while mocking mutate only this process's copy and
// do not survive a restart. All accessors return copies so callers can't
// reach back into the snapshot.
type Snapshot struct {
	mu sync.RWMutex

	models      []*types.Model
	versions    []*types.ModelVersion
	metrics     []*types.ModelMetric
	rules       []*types.AlertRule
	events      []*types.AlertEvent
	devices     []*types.Device
	readings    []*types.DeviceReading
	tags        []*types.Tag
	assignments []*types.ModelTagAssignment
}

var (
	mockRuleAccuracyID  = uuid.MustParse("5f3c1a9e-0d27-4bb0-9a85-6f1f1d2a9c01")
	mockRuleDriftID     = uuid.MustParse("5f3c1a9e-0d27-4bb0-9a85-6f1f1d2a9c02")
	mockRuleLatencyID   = uuid.MustParse("5f3c1a9e-0d27-4bb0-9a85-6f1f1d2a9c03")
	mockEventDriftID    = uuid.MustParse("7a81d2c4-33f5-46e8-8e11-0b9c4d5e6f01")
	mockHeaterDeviceID  = uuid.MustParse("9c54e7b2-1a6d-4f30-b2c8-3d4e5f6a7b01")
	mockVendingDeviceID = uuid.MustParse("9c54e7b2-1a6d-4f30-b2c8-3d4e5f6a7b02")
	mockTagProductionID = uuid.MustParse("b1e2f3a4-5c6d-4e7f-8a9b-0c1d2e3f4a01")
	mockTagCanaryID     = uuid.MustParse("b1e2f3a4-5c6d-4e7f-8a9b-0c1d2e3f4a02")
)

// New builds the snapshot: two monitored models with version history and a
// week of daily metric points, three alert rules, one unresolved event, two
// devices with recent readings, and two tags.
func New() *Snapshot {
	now := time.Now().UTC()
	heaterScope := "water-heater-thermal-model"

	s := &Snapshot{
		models: []*types.Model{
			{
				ID:          "water-heater-thermal-model",
				Name:        "Water Heater Thermal Model",
				Description: "Predicts heating element efficiency loss from temperature telemetry",
				CreatedAt:   now.AddDate(0, -3, 0),
				UpdatedAt:   now.AddDate(0, -3, 0),
			},
			{
				ID:          "vending-demand-forecast",
				Name:        "Vending Demand Forecast",
				Description: "Forecasts per-slot restock demand for vending machines",
				CreatedAt:   now.AddDate(0, -2, 0),
				UpdatedAt:   now.AddDate(0, -2, 0),
			},
			{
				ID:          "anomaly-detector-legacy",
				Name:        "Legacy Anomaly Detector",
				Description: "Retired rule-based anomaly detector",
				Archived:    true,
				CreatedAt:   now.AddDate(-1, 0, 0),
				UpdatedAt:   now.AddDate(0, -4, 0),
			},
		},
		versions: []*types.ModelVersion{
			{ID: uuid.MustParse("1d2c3b4a-0001-4000-8000-000000000001"), ModelID: "water-heater-thermal-model", Version: "1.0.0", FilePath: "models/water-heater-thermal/1.0.0/model.pkl", CreatedAt: now.AddDate(0, -3, 0)},
			{ID: uuid.MustParse("1d2c3b4a-0001-4000-8000-000000000002"), ModelID: "water-heater-thermal-model", Version: "1.1.0", FilePath: "models/water-heater-thermal/1.1.0/model.pkl", CreatedAt: now.AddDate(0, -1, 0)},
			{ID: uuid.MustParse("1d2c3b4a-0001-4000-8000-000000000003"), ModelID: "vending-demand-forecast", Version: "2.3.1", FilePath: "models/vending-demand/2.3.1/model.pkl", CreatedAt: now.AddDate(0, -2, 0)},
		},
		rules: []*types.AlertRule{
			{
				ID: mockRuleAccuracyID, ModelID: &heaterScope, RuleName: "accuracy floor",
				MetricName: "accuracy", Threshold: 0.9, Operator: "BELOW",
				Severity: types.SeverityHigh, Description: "Model accuracy dropped below the serving floor",
				IsActive: true, CreatedAt: now.AddDate(0, -3, 0),
			},
			{
				ID: mockRuleDriftID, RuleName: "drift ceiling",
				MetricName: "drift_score", Threshold: 0.25, Operator: "ABOVE",
				Severity: types.SeverityCritical, Description: "Feature drift exceeded the retraining trigger",
				IsActive: true, CreatedAt: now.AddDate(0, -2, 0),
			},
			{
				ID: mockRuleLatencyID, RuleName: "inference latency",
				MetricName: "latency_ms", Threshold: 250, Operator: "ABOVE_OR_EQUAL",
				Severity: types.SeverityMedium, Description: "P95 inference latency budget",
				IsActive: false, CreatedAt: now.AddDate(0, -1, 0),
			},
		},
		events: []*types.AlertEvent{
			{
				ID: mockEventDriftID, RuleID: mockRuleDriftID, ModelID: "vending-demand-forecast",
				MetricName: "drift_score", MetricValue: 0.31, Severity: types.SeverityCritical,
				CreatedAt: now.Add(-36 * time.Hour),
			},
		},
		devices: []*types.Device{
			{
				ID: mockHeaterDeviceID, Name: "Water Heater B-204",
				DeviceType: types.DeviceTypeWaterHeater, Manufacturer: "Rheem", ModelNumber: "XE50T10H45U0",
				Location: "Building B / Floor 2", Status: types.DeviceStatusOnline,
				CreatedAt: now.AddDate(0, -3, 0), UpdatedAt: now.Add(-2 * time.Hour),
			},
			{
				ID: mockVendingDeviceID, Name: "Vending Machine L-17",
				DeviceType: types.DeviceTypeVendingMachine, Manufacturer: "Crane", ModelNumber: "Merchant 6",
				Location: "Lobby / East Wing", Status: types.DeviceStatusOnline,
				CreatedAt: now.AddDate(0, -2, 0), UpdatedAt: now.Add(-1 * time.Hour),
			},
		},
		tags: []*types.Tag{
			{ID: mockTagProductionID, Name: "production", Color: "#2e7d32", CreatedAt: now.AddDate(0, -3, 0)},
			{ID: mockTagCanaryID, Name: "canary", Color: "#f9a825", CreatedAt: now.AddDate(0, -1, 0)},
		},
		assignments: []*types.ModelTagAssignment{
			{ModelID: "water-heater-thermal-model", TagID: mockTagProductionID},
			{ModelID: "vending-demand-forecast", TagID: mockTagProductionID},
		},
	}

	// A week of daily points per model so history endpoints have a curve.
	for day := 7; day >= 1; day-- {
		ts := now.AddDate(0, 0, -day)
		s.metrics = append(s.metrics,
			&types.ModelMetric{ID: uuid.New(), ModelID: "water-heater-thermal-model", ModelVersion: "1.1.0", MetricName: "accuracy", MetricValue: 0.94 - float64(day)*0.004, Timestamp: ts},
			&types.ModelMetric{ID: uuid.New(), ModelID: "water-heater-thermal-model", ModelVersion: "1.1.0", MetricName: "drift_score", MetricValue: 0.08 + float64(day)*0.01, Timestamp: ts},
			&types.ModelMetric{ID: uuid.New(), ModelID: "vending-demand-forecast", ModelVersion: "2.3.1", MetricName: "accuracy", MetricValue: 0.89 + float64(day)*0.002, Timestamp: ts},
		)
	}

	for hour := 6; hour >= 1; hour-- {
		ts := now.Add(-time.Duration(hour) * time.Hour)
		s.readings = append(s.readings,
			&types.DeviceReading{ID: uuid.New(), DeviceID: mockHeaterDeviceID, MetricName: "temperature", Value: 54.0 + float64(hour)*0.5, Unit: "C", Timestamp: ts},
			&types.DeviceReading{ID: uuid.New(), DeviceID: mockVendingDeviceID, MetricName: "compressor_power", Value: 118 - float64(hour), Unit: "W", Timestamp: ts},
		)
	}

	return s
}
