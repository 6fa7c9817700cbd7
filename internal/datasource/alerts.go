package datasource

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/types"
)

func (f *Facade) GetAlertRules(ctx context.Context) (Sourced[[]*types.AlertRule], error) {
	const op = "get_alert_rules"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.Rules())
	}
	rows, err := f.alertRules.GetAll(ctx, nil)
	if err != nil {
		return failedRead(f, op, err, false, func() []*types.AlertRule { return f.mock.Rules() })
	}
	return real(rows)
}

func (f *Facade) GetAlertRule(ctx context.Context, id uuid.UUID) (Sourced[*types.AlertRule], error) {
	const op = "get_alert_rule"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.Rule(id))
	}
	row, err := f.alertRules.GetByID(ctx, nil, id)
	if err != nil {
		return failedRead(f, op, err, false, func() *types.AlertRule { return f.mock.Rule(id) })
	}
	return real(row)
}

func (f *Facade) GetActiveAlertRules(ctx context.Context, modelID string) (Sourced[[]*types.AlertRule], error) {
	const op = "get_active_alert_rules"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.ActiveRulesForModel(modelID))
	}
	rows, err := f.alertRules.GetActiveForModel(ctx, nil, modelID)
	if err != nil {
		return failedRead(f, op, err, false, func() []*types.AlertRule { return f.mock.ActiveRulesForModel(modelID) })
	}
	return real(rows)
}

func (f *Facade) CreateAlertRule(ctx context.Context, row *types.AlertRule) (Sourced[*types.AlertRule], error) {
	const op = "create_alert_rule"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.AddRule(row))
	}
	created, err := f.alertRules.Create(ctx, nil, row)
	if err != nil {
		return failedWrite(f, op, err, func() *types.AlertRule { return f.mock.AddRule(row) })
	}
	return real(created)
}

func (f *Facade) UpdateAlertRule(ctx context.Context, row *types.AlertRule) (Sourced[*types.AlertRule], error) {
	const op = "update_alert_rule"
	if f.flags.UseMockData() {
		if err := f.mock.UpdateRule(row); err != nil {
			return Sourced[*types.AlertRule]{Mock: true}, err
		}
		return mocked(op, row)
	}
	if err := f.alertRules.Update(ctx, nil, row); err != nil {
		return failedWrite(f, op, err, func() *types.AlertRule {
			_ = f.mock.UpdateRule(row)
			return row
		})
	}
	return real(row)
}

func (f *Facade) DeleteAlertRule(ctx context.Context, id uuid.UUID) (Sourced[bool], error) {
	const op = "delete_alert_rule"
	if f.flags.UseMockData() {
		f.mock.DeleteRule(id)
		return mocked(op, true)
	}
	if err := f.alertRules.Delete(ctx, nil, id); err != nil {
		return failedWrite(f, op, err, func() bool {
			f.mock.DeleteRule(id)
			return true
		})
	}
	return real(true)
}

func (f *Facade) RecordAlertEvent(ctx context.Context, row *types.AlertEvent) (Sourced[*types.AlertEvent], error) {
	const op = "record_alert_event"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.AddEvent(row))
	}
	created, err := f.alertEvents.Create(ctx, nil, row)
	if err != nil {
		return failedWrite(f, op, err, func() *types.AlertEvent { return f.mock.AddEvent(row) })
	}
	return real(created)
}

// GetTriggeredAlerts is a degrading read, like GetModelMetricsHistory.
func (f *Facade) GetTriggeredAlerts(ctx context.Context, modelID string, includeResolved bool, limit int) (Sourced[[]*types.AlertEvent], error) {
	const op = "get_triggered_alerts"
	if f.flags.UseMockData() {
		return mocked(op, f.mock.TriggeredEvents(modelID, includeResolved, limit))
	}
	rows, err := f.alertEvents.GetTriggered(ctx, nil, modelID, includeResolved, limit)
	if err != nil {
		return failedRead(f, op, err, true, func() []*types.AlertEvent {
			return f.mock.TriggeredEvents(modelID, includeResolved, limit)
		})
	}
	return real(rows)
}

func (f *Facade) ResolveAlertEvent(ctx context.Context, id uuid.UUID) (Sourced[bool], error) {
	const op = "resolve_alert_event"
	now := time.Now().UTC()
	if f.flags.UseMockData() {
		f.mock.ResolveEvent(id, now)
		return mocked(op, true)
	}
	if err := f.alertEvents.Resolve(ctx, nil, id, now); err != nil {
		return failedWrite(f, op, err, func() bool {
			f.mock.ResolveEvent(id, now)
			return true
		})
	}
	return real(true)
}
