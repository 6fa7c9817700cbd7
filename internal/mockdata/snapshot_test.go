package mockdata

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/types"
)

func TestSnapshotSeedsConsistentDataset(t *testing.T) {
	s := New()

	models := s.Models(true)
	if len(models) == 0 {
		t.Fatalf("snapshot has no models")
	}

	// every rule with a model scope must point at a seeded model
	for _, rule := range s.Rules() {
		if rule.ModelID == nil {
			continue
		}
		if s.Model(*rule.ModelID) == nil {
			t.Fatalf("rule %q references missing model %q", rule.RuleName, *rule.ModelID)
		}
	}

	// every event must point at a seeded rule
	for _, event := range s.TriggeredEvents("", true, 0) {
		if s.Rule(event.RuleID) == nil {
			t.Fatalf("event %s references missing rule %s", event.ID, event.RuleID)
		}
	}
}

func TestSnapshotWriteThenReadVisibility(t *testing.T) {
	s := New()

	added := s.AddModel(&types.Model{ID: "pump-efficiency", Name: "Pump Efficiency"})
	if added.ID != "pump-efficiency" {
		t.Fatalf("AddModel returned %+v", added)
	}
	if s.Model("pump-efficiency") == nil {
		t.Fatalf("added model not visible to reads")
	}

	before := len(s.MetricsHistory("pump-efficiency", "", "", time.Time{}, 0))
	s.AddMetrics([]*types.ModelMetric{
		{ModelID: "pump-efficiency", ModelVersion: "1.0.0", MetricName: "accuracy", MetricValue: 0.88},
	})
	after := s.MetricsHistory("pump-efficiency", "", "", time.Time{}, 0)
	if len(after) != before+1 {
		t.Fatalf("metric write not visible: %d -> %d", before, len(after))
	}
}

func TestSnapshotReturnsCopies(t *testing.T) {
	s := New()

	first := s.Models(true)[0]
	originalName := first.Name
	first.Name = "mutated"

	again := s.Model(first.ID)
	if again.Name != originalName {
		t.Fatalf("caller mutation leaked into the snapshot: %q", again.Name)
	}
}

func TestSnapshotDeleteRuleCascadesEvents(t *testing.T) {
	s := New()

	rule := s.AddRule(&types.AlertRule{
		RuleName: "temp ceiling", MetricName: "temperature", Threshold: 80,
		Operator: "ABOVE", Severity: types.SeverityHigh, IsActive: true,
	})
	s.AddEvent(&types.AlertEvent{
		RuleID: rule.ID, ModelID: "water-heater-thermal-model",
		MetricName: "temperature", MetricValue: 91, Severity: types.SeverityHigh,
	})

	s.DeleteRule(rule.ID)

	for _, event := range s.TriggeredEvents("", true, 0) {
		if event.RuleID == rule.ID {
			t.Fatalf("event survived rule delete: %+v", event)
		}
	}
}

func TestSnapshotResolveEvent(t *testing.T) {
	s := New()

	event := s.AddEvent(&types.AlertEvent{
		RuleID: s.Rules()[0].ID, ModelID: "water-heater-thermal-model",
		MetricName: "accuracy", MetricValue: 0.7, Severity: types.SeverityHigh,
	})
	if event.ID == uuid.Nil {
		t.Fatalf("AddEvent did not assign an ID")
	}

	at := time.Now().UTC()
	s.ResolveEvent(event.ID, at)

	open := s.TriggeredEvents("water-heater-thermal-model", false, 0)
	for _, e := range open {
		if e.ID == event.ID {
			t.Fatalf("resolved event still listed as open")
		}
	}
}
