package types

import (
	"time"

	"github.com/google/uuid"
)

// AlertEvent is one firing of an AlertRule. Events are created by the
// monitoring sweep and only ever mutated to flip the resolved flag.
type AlertEvent struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RuleID      uuid.UUID  `gorm:"column:rule_id;type:uuid;not null;index" json:"rule_id"`
	Rule        *AlertRule `gorm:"constraint:OnDelete:CASCADE;foreignKey:RuleID;references:ID" json:"rule,omitempty"`
	ModelID     string     `gorm:"column:model_id;not null;index" json:"model_id"`
	Model       *Model     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModelID;references:ID" json:"model,omitempty"`
	MetricName  string     `gorm:"column:metric_name;not null" json:"metric_name"`
	MetricValue float64    `gorm:"column:metric_value;not null" json:"metric_value"`
	Severity    Severity   `gorm:"column:severity;not null" json:"severity"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;autoCreateTime;index" json:"created_at"`
	Resolved    bool       `gorm:"column:resolved;not null;default:false;index" json:"resolved"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
}

func (AlertEvent) TableName() string { return "alert_events" }
