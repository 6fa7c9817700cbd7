package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/alerting"
	"github.com/iotsphere/iotsphere-backend/internal/datasource"
	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/normalization"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

// AlertRuleInput is a rule as submitted by a client. Operator and severity
// arrive in whatever surface form the caller uses; canonicalization happens
// here, once, before anything is stored.
type AlertRuleInput struct {
	ModelID      *string  `json:"model_id"`
	ModelVersion *string  `json:"model_version"`
	RuleName     string   `json:"rule_name" binding:"required"`
	MetricName   string   `json:"metric_name" binding:"required"`
	Threshold    float64  `json:"threshold"`
	Operator     string   `json:"operator" binding:"required"`
	Severity     string   `json:"severity" binding:"required"`
	Description  string   `json:"description"`
	IsActive     *bool    `json:"is_active"`
}

type AlertService interface {
	ListRules(ctx context.Context) (datasource.Sourced[[]*types.AlertRule], error)
	GetRule(ctx context.Context, id uuid.UUID) (datasource.Sourced[*types.AlertRule], error)
	CreateRule(ctx context.Context, in AlertRuleInput) (datasource.Sourced[*types.AlertRule], error)
	UpdateRule(ctx context.Context, id uuid.UUID, in AlertRuleInput) (datasource.Sourced[*types.AlertRule], error)
	DeleteRule(ctx context.Context, id uuid.UUID) (datasource.Sourced[bool], error)
}

type alertService struct {
	log  *logger.Logger
	data *datasource.Facade
}

func NewAlertService(baseLog *logger.Logger, data *datasource.Facade) AlertService {
	return &alertService{
		log:  baseLog.With("service", "AlertService"),
		data: data,
	}
}

func (s *alertService) ListRules(ctx context.Context) (datasource.Sourced[[]*types.AlertRule], error) {
	return s.data.GetAlertRules(ctx)
}

func (s *alertService) GetRule(ctx context.Context, id uuid.UUID) (datasource.Sourced[*types.AlertRule], error) {
	if id == uuid.Nil {
		return datasource.Sourced[*types.AlertRule]{}, fmt.Errorf("missing rule id")
	}
	return s.data.GetAlertRule(ctx, id)
}

func (s *alertService) buildRule(in AlertRuleInput) (*types.AlertRule, error) {
	op, err := alerting.ParseOperator(in.Operator)
	if err != nil {
		return nil, err
	}
	severity, err := types.ParseSeverity(in.Severity)
	if err != nil {
		return nil, err
	}
	if in.RuleName == "" || in.MetricName == "" {
		return nil, fmt.Errorf("rule name and metric name are required")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return &types.AlertRule{
		// model ids are slugs everywhere else, keep rule scoping consistent
		ModelID:      normalization.SlugPtr(in.ModelID),
		ModelVersion: in.ModelVersion,
		RuleName:     in.RuleName,
		MetricName:   in.MetricName,
		Threshold:    in.Threshold,
		Operator:     string(op),
		Severity:     severity,
		Description:  in.Description,
		IsActive:     active,
	}, nil
}

func (s *alertService) CreateRule(ctx context.Context, in AlertRuleInput) (datasource.Sourced[*types.AlertRule], error) {
	rule, err := s.buildRule(in)
	if err != nil {
		return datasource.Sourced[*types.AlertRule]{}, err
	}
	return s.data.CreateAlertRule(ctx, rule)
}

func (s *alertService) UpdateRule(ctx context.Context, id uuid.UUID, in AlertRuleInput) (datasource.Sourced[*types.AlertRule], error) {
	if id == uuid.Nil {
		return datasource.Sourced[*types.AlertRule]{}, fmt.Errorf("missing rule id")
	}
	existing, err := s.data.GetAlertRule(ctx, id)
	if err != nil {
		return datasource.Sourced[*types.AlertRule]{}, err
	}
	if existing.Data == nil {
		return datasource.Sourced[*types.AlertRule]{Mock: existing.Mock}, fmt.Errorf("rule %s not found", id)
	}
	rule, err := s.buildRule(in)
	if err != nil {
		return datasource.Sourced[*types.AlertRule]{}, err
	}
	rule.ID = id
	rule.CreatedAt = existing.Data.CreatedAt
	return s.data.UpdateAlertRule(ctx, rule)
}

func (s *alertService) DeleteRule(ctx context.Context, id uuid.UUID) (datasource.Sourced[bool], error) {
	if id == uuid.Nil {
		return datasource.Sourced[bool]{}, fmt.Errorf("missing rule id")
	}
	return s.data.DeleteAlertRule(ctx, id)
}
