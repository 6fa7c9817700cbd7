package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Severity is the canonical alert severity taxonomy. "WARNING" survives in
// historical rows and older clients as an alias of MEDIUM; ParseSeverity is
// the single place that mapping lives.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return SeverityLow, nil
	case "MEDIUM", "WARNING":
		return SeverityMedium, nil
	case "HIGH":
		return SeverityHigh, nil
	case "CRITICAL":
		return SeverityCritical, nil
	default:
		return "", fmt.Errorf("unknown severity %q", s)
	}
}

// AlertRule matches recorded metrics against a threshold. A nil ModelID
// means the rule applies to every model; a nil ModelVersion means every
// version of the matched model.
type AlertRule struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ModelID      *string   `gorm:"column:model_id;index" json:"model_id,omitempty"`
	Model        *Model    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModelID;references:ID" json:"model,omitempty"`
	ModelVersion *string   `gorm:"column:model_version" json:"model_version,omitempty"`
	RuleName     string    `gorm:"column:rule_name;not null" json:"rule_name"`
	MetricName   string    `gorm:"column:metric_name;not null;index" json:"metric_name"`
	Threshold    float64   `gorm:"column:threshold;not null" json:"threshold"`
	Operator     string    `gorm:"column:operator;not null" json:"operator"`
	Severity     Severity  `gorm:"column:severity;not null" json:"severity"`
	Description  string    `gorm:"column:description" json:"description"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (AlertRule) TableName() string { return "alert_rules" }
