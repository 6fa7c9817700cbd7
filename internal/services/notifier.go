package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/sse"
	"github.com/iotsphere/iotsphere-backend/internal/types"
)

// NotificationError marks a failed best-effort alert notification. The
// monitoring sweep logs and swallows these: a broken notifier must never
// fail the metric write that triggered it.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("alert notification failed: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

type Notifier interface {
	NotifyAlert(ctx context.Context, event *types.AlertEvent, rule *types.AlertRule) error
	NotifyAlertResolved(ctx context.Context, eventID uuid.UUID) error
	NotifyDeviceStatus(ctx context.Context, deviceID uuid.UUID, status types.DeviceStatus) error
}

// AlertPublisher forwards a message to subscribers beyond this process;
// the Redis bus implements it.
type AlertPublisher interface {
	Publish(ctx context.Context, msg sse.Message) error
}

type alertNotifier struct {
	log *logger.Logger
	hub *sse.Hub
	bus AlertPublisher
}

// NewAlertNotifier fans triggered alerts out to local SSE subscribers and,
// when a bus is configured, to other instances over Redis.
func NewAlertNotifier(baseLog *logger.Logger, hub *sse.Hub, bus AlertPublisher) Notifier {
	return &alertNotifier{
		log: baseLog.With("service", "AlertNotifier"),
		hub: hub,
		bus: bus,
	}
}

func (n *alertNotifier) NotifyAlert(ctx context.Context, event *types.AlertEvent, rule *types.AlertRule) error {
	return n.send(ctx, sse.Message{
		Channel: sse.ChannelAlerts,
		Event:   sse.EventAlertFired,
		Data: map[string]interface{}{
			"event":     event,
			"rule_name": rule.RuleName,
		},
	})
}

func (n *alertNotifier) NotifyAlertResolved(ctx context.Context, eventID uuid.UUID) error {
	return n.send(ctx, sse.Message{
		Channel: sse.ChannelAlerts,
		Event:   sse.EventAlertResolved,
		Data:    map[string]interface{}{"event_id": eventID},
	})
}

func (n *alertNotifier) NotifyDeviceStatus(ctx context.Context, deviceID uuid.UUID, status types.DeviceStatus) error {
	return n.send(ctx, sse.Message{
		Channel: sse.ChannelDevices,
		Event:   sse.EventDeviceStatus,
		Data: map[string]interface{}{
			"device_id": deviceID,
			"status":    status,
		},
	})
}

func (n *alertNotifier) send(ctx context.Context, msg sse.Message) error {
	if n.hub != nil {
		n.hub.Broadcast(msg)
	}
	if n.bus != nil {
		if err := n.bus.Publish(ctx, msg); err != nil {
			return &NotificationError{Err: err}
		}
	}
	return nil
}
