package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/alerting"
	"github.com/iotsphere/iotsphere-backend/internal/datasource"
	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/metrics"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

// RecordMetricsResult is what a metric write reports back: the stored rows,
// the events the sweep fired, and whether any step was served from mock data.
type RecordMetricsResult struct {
	Metrics []*types.ModelMetric `json:"metrics"`
	Fired   []*types.AlertEvent  `json:"fired_alerts"`
	IsMock  bool                 `json:"is_mock"`
}

type MonitoringService interface {
	// RecordModelMetrics persists the metrics map, sweeps active rules
	// against it, persists triggered events and notifies. The metric write
	// is the primary effect: its failure propagates, sweep failures don't.
	RecordModelMetrics(ctx context.Context, modelID, version string, values map[string]float64) (*RecordMetricsResult, error)
	GetMetricsHistory(ctx context.Context, modelID, version, metricName string, since time.Time, limit int) (datasource.Sourced[[]*types.ModelMetric], error)
	GetLatestMetrics(ctx context.Context, modelID string) (datasource.Sourced[[]*types.ModelMetric], error)
	GetTriggeredAlerts(ctx context.Context, modelID string, includeResolved bool, limit int) (datasource.Sourced[[]*types.AlertEvent], error)
	ResolveAlertEvent(ctx context.Context, id uuid.UUID) (datasource.Sourced[bool], error)
}

type monitoringService struct {
	log      *logger.Logger
	data     *datasource.Facade
	notifier Notifier
}

func NewMonitoringService(baseLog *logger.Logger, data *datasource.Facade, notifier Notifier) MonitoringService {
	return &monitoringService{
		log:      baseLog.With("service", "MonitoringService"),
		data:     data,
		notifier: notifier,
	}
}

func (s *monitoringService) RecordModelMetrics(ctx context.Context, modelID, version string, values map[string]float64) (*RecordMetricsResult, error) {
	if modelID == "" {
		return nil, fmt.Errorf("missing model id")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no metrics supplied")
	}

	rows := make([]*types.ModelMetric, 0, len(values))
	for name, value := range values {
		rows = append(rows, &types.ModelMetric{
			ModelID:      modelID,
			ModelVersion: version,
			MetricName:   name,
			MetricValue:  value,
		})
	}

	written, err := s.data.RecordModelMetrics(ctx, rows)
	if err != nil {
		return nil, err
	}

	result := &RecordMetricsResult{
		Metrics: written.Data,
		Fired:   []*types.AlertEvent{},
		IsMock:  written.Mock,
	}

	rules, err := s.data.GetActiveAlertRules(ctx, modelID)
	if err != nil {
		// the sweep never blocks the primary write
		s.log.Error("Alert rule lookup failed, skipping sweep", "error", err, "model_id", modelID)
		return result, nil
	}
	result.IsMock = result.IsMock || rules.Mock

	for _, rule := range rules.Data {
		value, ok := values[rule.MetricName]
		if !ok {
			continue
		}
		if rule.ModelVersion != nil && version != "" && *rule.ModelVersion != version {
			continue
		}
		triggered, evalErr := alerting.Evaluate(value, rule.Threshold, rule.Operator)
		if evalErr != nil {
			metrics.AlertEvalFailures.WithLabelValues(rule.ID.String()).Inc()
			var unsupported *alerting.UnsupportedOperatorError
			if errors.As(evalErr, &unsupported) {
				s.log.Error("Alert rule has unsupported operator, rule is misconfigured",
					"rule_id", rule.ID, "rule_name", rule.RuleName, "operator", unsupported.Op)
			} else {
				s.log.Error("Alert rule evaluation failed", "rule_id", rule.ID, "error", evalErr)
			}
			continue
		}
		if !triggered {
			continue
		}

		event := &types.AlertEvent{
			RuleID:      rule.ID,
			ModelID:     modelID,
			MetricName:  rule.MetricName,
			MetricValue: value,
			Severity:    rule.Severity,
		}
		stored, eventErr := s.data.RecordAlertEvent(ctx, event)
		if eventErr != nil {
			s.log.Error("Failed to persist alert event", "error", eventErr, "rule_id", rule.ID, "model_id", modelID)
			continue
		}
		result.IsMock = result.IsMock || stored.Mock
		result.Fired = append(result.Fired, stored.Data)
		metrics.AlertsFired.WithLabelValues(modelID, string(rule.Severity)).Inc()

		if s.notifier != nil {
			if notifyErr := s.notifier.NotifyAlert(ctx, stored.Data, rule); notifyErr != nil {
				metrics.NotificationFailures.Inc()
				s.log.Warn("Alert notification failed", "error", notifyErr, "event_id", stored.Data.ID)
			}
		}
	}

	return result, nil
}

func (s *monitoringService) GetMetricsHistory(ctx context.Context, modelID, version, metricName string, since time.Time, limit int) (datasource.Sourced[[]*types.ModelMetric], error) {
	return s.data.GetModelMetricsHistory(ctx, modelID, version, metricName, since, limit)
}

func (s *monitoringService) GetLatestMetrics(ctx context.Context, modelID string) (datasource.Sourced[[]*types.ModelMetric], error) {
	if modelID == "" {
		return datasource.Sourced[[]*types.ModelMetric]{}, fmt.Errorf("missing model id")
	}
	return s.data.GetLatestModelMetrics(ctx, modelID)
}

func (s *monitoringService) GetTriggeredAlerts(ctx context.Context, modelID string, includeResolved bool, limit int) (datasource.Sourced[[]*types.AlertEvent], error) {
	return s.data.GetTriggeredAlerts(ctx, modelID, includeResolved, limit)
}

func (s *monitoringService) ResolveAlertEvent(ctx context.Context, id uuid.UUID) (datasource.Sourced[bool], error) {
	if id == uuid.Nil {
		return datasource.Sourced[bool]{}, fmt.Errorf("missing event id")
	}
	res, err := s.data.ResolveAlertEvent(ctx, id)
	if err != nil {
		return res, err
	}
	if s.notifier != nil {
		if notifyErr := s.notifier.NotifyAlertResolved(ctx, id); notifyErr != nil {
			metrics.NotificationFailures.Inc()
			s.log.Warn("Resolve notification failed", "error", notifyErr, "event_id", id)
		}
	}
	return res, nil
}
