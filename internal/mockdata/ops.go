package mockdata

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/iotsphere/iotsphere-backend/internal/types"
)

func copyModel(m *types.Model) *types.Model {
	c := *m
	c.Versions, c.Tags = nil, nil
	return &c
}

func copyVersion(v *types.ModelVersion) *types.ModelVersion {
	c := *v
	c.Model = nil
	return &c
}

func copyMetric(m *types.ModelMetric) *types.ModelMetric {
	c := *m
	c.Model = nil
	return &c
}

func copyRule(r *types.AlertRule) *types.AlertRule {
	c := *r
	c.Model = nil
	return &c
}

func copyEvent(e *types.AlertEvent) *types.AlertEvent {
	c := *e
	c.Rule, c.Model = nil, nil
	return &c
}

func copyDevice(d *types.Device) *types.Device {
	c := *d
	c.Readings = nil
	return &c
}

func copyReading(r *types.DeviceReading) *types.DeviceReading {
	c := *r
	c.Device = nil
	return &c
}

func copyTag(t *types.Tag) *types.Tag {
	c := *t
	return &c
}

func (s *Snapshot) Models(includeArchived bool) []*types.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*types.Model{}
	for _, m := range s.models {
		if !includeArchived && m.Archived {
			continue
		}
		out = append(out, copyModel(m))
	}
	return out
}

func (s *Snapshot) Model(id string) *types.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.models {
		if m.ID == id {
			return copyModel(m)
		}
	}
	return nil
}

func (s *Snapshot) AddModel(row *types.Model) *types.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := copyModel(row)
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	s.models = append(s.models, c)
	return copyModel(c)
}

func (s *Snapshot) SetModelArchived(id string, archived bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.models {
		if m.ID == id {
			m.Archived = archived
			m.UpdatedAt = time.Now().UTC()
		}
	}
}

func (s *Snapshot) Versions(modelID string) []*types.ModelVersion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*types.ModelVersion{}
	for _, v := range s.versions {
		if v.ModelID == modelID {
			out = append(out, copyVersion(v))
		}
	}
	return out
}

func (s *Snapshot) AddVersion(row *types.ModelVersion) *types.ModelVersion {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := copyVersion(row)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.versions = append(s.versions, c)
	return copyVersion(c)
}

// AddMetrics appends recorded metrics to the in-memory fact table and
// returns the stored copies with IDs assigned.
func (s *Snapshot) AddMetrics(rows []*types.ModelMetric) []*types.ModelMetric {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*types.ModelMetric, 0, len(rows))
	now := time.Now().UTC()
	for _, row := range rows {
		c := copyMetric(row)
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		if c.Timestamp.IsZero() {
			c.Timestamp = now
		}
		s.metrics = append(s.metrics, c)
		out = append(out, copyMetric(c))
	}
	return out
}

func (s *Snapshot) MetricsHistory(modelID, version, metricName string, since time.Time, limit int) []*types.ModelMetric {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*types.ModelMetric{}
	for i := len(s.metrics) - 1; i >= 0; i-- {
		m := s.metrics[i]
		if m.ModelID != modelID {
			continue
		}
		if version != "" && m.ModelVersion != version {
			continue
		}
		if metricName != "" && m.MetricName != metricName {
			continue
		}
		if !since.IsZero() && m.Timestamp.Before(since) {
			continue
		}
		out = append(out, copyMetric(m))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// LatestMetrics returns the newest recorded value per (version, metric).
func (s *Snapshot) LatestMetrics(modelID string) []*types.ModelMetric {
	s.mu.RLock()
	defer s.mu.RUnlock()
	newest := map[string]*types.ModelMetric{}
	for _, m := range s.metrics {
		if m.ModelID != modelID {
			continue
		}
		key := m.ModelVersion + "\x00" + m.MetricName
		if cur, ok := newest[key]; !ok || m.Timestamp.After(cur.Timestamp) {
			newest[key] = m
		}
	}
	out := make([]*types.ModelMetric, 0, len(newest))
	for _, m := range newest {
		out = append(out, copyMetric(m))
	}
	return out
}

func (s *Snapshot) Rules() []*types.AlertRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*types.AlertRule{}
	for _, r := range s.rules {
		out = append(out, copyRule(r))
	}
	return out
}

func (s *Snapshot) Rule(id uuid.UUID) *types.AlertRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rules {
		if r.ID == id {
			return copyRule(r)
		}
	}
	return nil
}

func (s *Snapshot) ActiveRulesForModel(modelID string) []*types.AlertRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*types.AlertRule{}
	for _, r := range s.rules {
		if !r.IsActive {
			continue
		}
		if r.ModelID != nil && *r.ModelID != modelID {
			continue
		}
		out = append(out, copyRule(r))
	}
	return out
}

func (s *Snapshot) AddRule(row *types.AlertRule) *types.AlertRule {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := copyRule(row)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.rules = append(s.rules, c)
	return copyRule(c)
}

func (s *Snapshot) UpdateRule(row *types.AlertRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.rules {
		if r.ID == row.ID {
			s.rules[i] = copyRule(row)
			return nil
		}
	}
	return fmt.Errorf("mock rule %s not found", row.ID)
}

func (s *Snapshot) DeleteRule(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rules := s.rules[:0]
	for _, r := range s.rules {
		if r.ID != id {
			rules = append(rules, r)
		}
	}
	s.rules = rules
	// rule_id cascade
	events := s.events[:0]
	for _, e := range s.events {
		if e.RuleID != id {
			events = append(events, e)
		}
	}
	s.events = events
}

func (s *Snapshot) AddEvent(row *types.AlertEvent) *types.AlertEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := copyEvent(row)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.events = append(s.events, c)
	return copyEvent(c)
}

func (s *Snapshot) TriggeredEvents(modelID string, includeResolved bool, limit int) []*types.AlertEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*types.AlertEvent{}
	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		if modelID != "" && e.ModelID != modelID {
			continue
		}
		if !includeResolved && e.Resolved {
			continue
		}
		out = append(out, copyEvent(e))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func (s *Snapshot) ResolveEvent(id uuid.UUID, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			e.Resolved = true
			resolvedAt := at
			e.ResolvedAt = &resolvedAt
		}
	}
}

func (s *Snapshot) Devices(deviceType types.DeviceType) []*types.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*types.Device{}
	for _, d := range s.devices {
		if deviceType != "" && d.DeviceType != deviceType {
			continue
		}
		out = append(out, copyDevice(d))
	}
	return out
}

func (s *Snapshot) Device(id uuid.UUID) *types.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.devices {
		if d.ID == id {
			return copyDevice(d)
		}
	}
	return nil
}

func (s *Snapshot) AddDevice(row *types.Device) *types.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := copyDevice(row)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = types.DeviceStatusOffline
	}
	s.devices = append(s.devices, c)
	return copyDevice(c)
}

// UpdateDeviceFields applies the same column-keyed update map the store
// path uses, for the mutable device columns.
func (s *Snapshot) UpdateDeviceFields(id uuid.UUID, updates map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.devices {
		if d.ID != id {
			continue
		}
		for col, val := range updates {
			switch col {
			case "name":
				if v, ok := val.(string); ok {
					d.Name = v
				}
			case "location":
				if v, ok := val.(string); ok {
					d.Location = v
				}
			case "manufacturer":
				if v, ok := val.(string); ok {
					d.Manufacturer = v
				}
			case "model_number":
				if v, ok := val.(string); ok {
					d.ModelNumber = v
				}
			case "status":
				switch v := val.(type) {
				case types.DeviceStatus:
					d.Status = v
				case string:
					d.Status = types.DeviceStatus(v)
				}
			case "metadata":
				if v, ok := val.(datatypes.JSON); ok {
					d.Metadata = v
				}
			}
		}
		d.UpdatedAt = time.Now().UTC()
	}
}

func (s *Snapshot) DeleteDevice(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	devices := s.devices[:0]
	for _, d := range s.devices {
		if d.ID != id {
			devices = append(devices, d)
		}
	}
	s.devices = devices
	readings := s.readings[:0]
	for _, r := range s.readings {
		if r.DeviceID != id {
			readings = append(readings, r)
		}
	}
	s.readings = readings
}

func (s *Snapshot) AddReadings(rows []*types.DeviceReading) []*types.DeviceReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*types.DeviceReading, 0, len(rows))
	now := time.Now().UTC()
	for _, row := range rows {
		c := copyReading(row)
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		if c.Timestamp.IsZero() {
			c.Timestamp = now
		}
		s.readings = append(s.readings, c)
		out = append(out, copyReading(c))
	}
	return out
}

func (s *Snapshot) LatestReading(deviceID uuid.UUID, metricName string) *types.DeviceReading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *types.DeviceReading
	for _, r := range s.readings {
		if r.DeviceID != deviceID || r.MetricName != metricName {
			continue
		}
		if latest == nil || r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	if latest == nil {
		return nil
	}
	return copyReading(latest)
}

func (s *Snapshot) ReadingHistory(deviceID uuid.UUID, metricName string, from, to time.Time, limit int) []*types.DeviceReading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*types.DeviceReading{}
	for i := len(s.readings) - 1; i >= 0; i-- {
		r := s.readings[i]
		if r.DeviceID != deviceID {
			continue
		}
		if metricName != "" && r.MetricName != metricName {
			continue
		}
		if !from.IsZero() && r.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && r.Timestamp.After(to) {
			continue
		}
		out = append(out, copyReading(r))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func (s *Snapshot) Tags() []*types.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*types.Tag{}
	for _, t := range s.tags {
		out = append(out, copyTag(t))
	}
	return out
}

func (s *Snapshot) AddTag(row *types.Tag) *types.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := copyTag(row)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.tags = append(s.tags, c)
	return copyTag(c)
}

func (s *Snapshot) DeleteTag(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tags := s.tags[:0]
	for _, t := range s.tags {
		if t.ID != id {
			tags = append(tags, t)
		}
	}
	s.tags = tags
	assignments := s.assignments[:0]
	for _, a := range s.assignments {
		if a.TagID != id {
			assignments = append(assignments, a)
		}
	}
	s.assignments = assignments
}

func (s *Snapshot) AssignTag(modelID string, tagID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.assignments {
		if a.ModelID == modelID && a.TagID == tagID {
			return
		}
	}
	s.assignments = append(s.assignments, &types.ModelTagAssignment{ModelID: modelID, TagID: tagID})
}

func (s *Snapshot) UnassignTag(modelID string, tagID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignments := s.assignments[:0]
	for _, a := range s.assignments {
		if a.ModelID != modelID || a.TagID != tagID {
			assignments = append(assignments, a)
		}
	}
	s.assignments = assignments
}

func (s *Snapshot) TagsForModel(modelID string) []*types.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := map[uuid.UUID]bool{}
	for _, a := range s.assignments {
		if a.ModelID == modelID {
			want[a.TagID] = true
		}
	}
	out := []*types.Tag{}
	for _, t := range s.tags {
		if want[t.ID] {
			out = append(out, copyTag(t))
		}
	}
	return out
}
