package repos

import (
	"context"
	"testing"
	"time"

	"github.com/iotsphere/iotsphere-backend/internal/repos/testutil"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

func seedModel(t *testing.T, repo ModelRepo, id string) {
	t.Helper()
	if _, err := repo.Create(context.Background(), nil, &types.Model{ID: id, Name: id}); err != nil {
		t.Fatalf("seed model %s: %v", id, err)
	}
}

func TestAlertRuleRepoActiveScoping(t *testing.T) {
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	models := NewModelRepo(conn, log)
	rules := NewAlertRuleRepo(conn, log)
	ctx := context.Background()

	seedModel(t, models, "scoped-model")
	seedModel(t, models, "other-model")

	scoped := "scoped-model"
	fixtures := []*types.AlertRule{
		{ModelID: &scoped, RuleName: "scoped active", MetricName: "accuracy", Threshold: 0.9, Operator: "BELOW", Severity: types.SeverityHigh, IsActive: true},
		{RuleName: "global active", MetricName: "drift_score", Threshold: 0.25, Operator: "ABOVE", Severity: types.SeverityCritical, IsActive: true},
		{ModelID: &scoped, RuleName: "scoped inactive", MetricName: "latency_ms", Threshold: 250, Operator: "ABOVE", Severity: types.SeverityMedium, IsActive: false},
	}
	for _, r := range fixtures {
		if _, err := rules.Create(ctx, nil, r); err != nil {
			t.Fatalf("Create(%s): %v", r.RuleName, err)
		}
	}

	forScoped, err := rules.GetActiveForModel(ctx, nil, "scoped-model")
	if err != nil {
		t.Fatalf("GetActiveForModel: %v", err)
	}
	if len(forScoped) != 2 {
		t.Fatalf("scoped-model sees %d rules, want 2 (scoped + global)", len(forScoped))
	}

	forOther, err := rules.GetActiveForModel(ctx, nil, "other-model")
	if err != nil {
		t.Fatalf("GetActiveForModel: %v", err)
	}
	if len(forOther) != 1 || forOther[0].RuleName != "global active" {
		t.Fatalf("other-model sees %+v, want only the global rule", forOther)
	}
}

func TestAlertRuleRepoUpdateFields(t *testing.T) {
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	rules := NewAlertRuleRepo(conn, log)
	ctx := context.Background()

	created, err := rules.Create(ctx, nil, &types.AlertRule{
		RuleName: "threshold tuning", MetricName: "accuracy", Threshold: 0.9,
		Operator: "BELOW", Severity: types.SeverityHigh, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := rules.UpdateFields(ctx, nil, created.ID, map[string]interface{}{"threshold": 0.85, "is_active": false}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	got, err := rules.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Threshold != 0.85 || got.IsActive {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestAlertRuleRepoDeleteCascadesEvents(t *testing.T) {
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	models := NewModelRepo(conn, log)
	rules := NewAlertRuleRepo(conn, log)
	events := NewAlertEventRepo(conn, log)
	ctx := context.Background()

	seedModel(t, models, "m1")
	rule, err := rules.Create(ctx, nil, &types.AlertRule{
		RuleName: "floor", MetricName: "accuracy", Threshold: 0.9,
		Operator: "BELOW", Severity: types.SeverityHigh, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create rule: %v", err)
	}
	for _, value := range []float64{0.8, 0.7} {
		if _, err := events.Create(ctx, nil, &types.AlertEvent{
			RuleID: rule.ID, ModelID: "m1", MetricName: "accuracy", MetricValue: value, Severity: types.SeverityHigh,
		}); err != nil {
			t.Fatalf("Create event: %v", err)
		}
	}

	if err := rules.Delete(ctx, nil, rule.ID); err != nil {
		t.Fatalf("Delete rule: %v", err)
	}

	remaining, err := events.GetTriggered(ctx, nil, "m1", true, 0)
	if err != nil {
		t.Fatalf("GetTriggered: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("rule delete left %d events behind", len(remaining))
	}
}

func TestAlertEventRepoTriggeredAndResolve(t *testing.T) {
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	models := NewModelRepo(conn, log)
	rules := NewAlertRuleRepo(conn, log)
	events := NewAlertEventRepo(conn, log)
	ctx := context.Background()

	seedModel(t, models, "m1")
	rule, err := rules.Create(ctx, nil, &types.AlertRule{
		RuleName: "floor", MetricName: "accuracy", Threshold: 0.9,
		Operator: "BELOW", Severity: types.SeverityHigh, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create rule: %v", err)
	}

	first, err := events.Create(ctx, nil, &types.AlertEvent{
		RuleID: rule.ID, ModelID: "m1", MetricName: "accuracy", MetricValue: 0.8, Severity: types.SeverityHigh,
	})
	if err != nil {
		t.Fatalf("Create event: %v", err)
	}
	if _, err := events.Create(ctx, nil, &types.AlertEvent{
		RuleID: rule.ID, ModelID: "m1", MetricName: "accuracy", MetricValue: 0.7, Severity: types.SeverityHigh,
	}); err != nil {
		t.Fatalf("Create event: %v", err)
	}

	if err := events.Resolve(ctx, nil, first.ID, time.Now().UTC()); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	open, err := events.GetTriggered(ctx, nil, "m1", false, 0)
	if err != nil {
		t.Fatalf("GetTriggered: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("open events = %d, want 1", len(open))
	}

	all, err := events.GetTriggered(ctx, nil, "m1", true, 0)
	if err != nil {
		t.Fatalf("GetTriggered(includeResolved): %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all events = %d, want 2", len(all))
	}

	resolved, err := events.GetByID(ctx, nil, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !resolved.Resolved || resolved.ResolvedAt == nil {
		t.Fatalf("event not marked resolved: %+v", resolved)
	}
}
