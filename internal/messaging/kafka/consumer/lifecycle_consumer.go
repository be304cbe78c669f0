package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kamepallinandini997/leave-management-poc/internal/bootstrap"
	"github.com/kamepallinandini997/leave-management-poc/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Topics read by ConsumeLifecycle.
func Topics() []string {
	return []string{events.EmployeeCreatedTopic, events.LeaveLifecycleTopic}
}

// ConsumeLifecycle writes one audit entry per employee or leave event until
// ctx is cancelled. Messages that cannot be decoded are committed and
// skipped.
func ConsumeLifecycle(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.lifecycle")
	log.Info("lifecycle consumer started")

	delay := time.Duration(0)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle consumer stopped")
				return
			}
			delay = nextFetchDelay(delay)
			log.Error("fetch lifecycle message failed", zap.Duration("retry_in", delay), zap.Error(err))
			select {
			case <-ctx.Done():
				log.Info("lifecycle consumer stopped")
				return
			case <-time.After(delay):
			}
			continue
		}
		delay = 0

		entry, err := AuditEntryFor(msg)
		switch {
		case err != nil:
			log.Error("decode lifecycle event failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		case entry == nil:
			log.Debug("lifecycle event ignored", zap.String("event_type", eventType(msg)))
		default:
			audit.Log(ctx, *entry)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
		}
	}
}

// AuditEntryFor maps a lifecycle message to its audit entry. Unknown event
// types return nil without error.
func AuditEntryFor(msg kafkago.Message) (*bootstrap.AuditLog, error) {
	switch eventType(msg) {
	case events.EmployeeCreatedEventType:
		var ev events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			return nil, err
		}
		return &bootstrap.AuditLog{
			Action:  "EMPLOYEE_CREATED",
			Message: fmt.Sprintf("Employee %s created", ev.EmployeeID),
			Meta: map[string]any{
				"employee_id": ev.EmployeeID,
				"department":  ev.Department,
				"request_id":  ev.RequestID,
			},
		}, nil

	case events.LeaveAppliedEventType:
		var ev events.LeaveAppliedEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			return nil, err
		}
		return &bootstrap.AuditLog{
			Action:  "LEAVE_APPLIED",
			Message: fmt.Sprintf("Leave %s applied by %s", ev.LeaveID, ev.EmployeeID),
			Meta: map[string]any{
				"leave_id":    ev.LeaveID,
				"employee_id": ev.EmployeeID,
				"leave_type":  ev.LeaveType,
				"from_date":   ev.FromDate,
				"to_date":     ev.ToDate,
				"request_id":  ev.RequestID,
			},
		}, nil

	case events.LeaveStatusUpdatedEventType:
		var ev events.LeaveStatusUpdatedEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			return nil, err
		}
		return &bootstrap.AuditLog{
			Action:  "LEAVE_STATUS_UPDATED",
			Message: fmt.Sprintf("Leave %s %s -> %s", ev.LeaveID, ev.PreviousStatus, ev.Status),
			Meta: map[string]any{
				"leave_id":        ev.LeaveID,
				"employee_id":     ev.EmployeeID,
				"previous_status": ev.PreviousStatus,
				"status":          ev.Status,
				"request_id":      ev.RequestID,
			},
		}, nil
	}

	return nil, nil
}

const (
	minFetchDelay = 200 * time.Millisecond
	maxFetchDelay = 10 * time.Second
)

// nextFetchDelay doubles the wait after each consecutive fetch failure.
func nextFetchDelay(prev time.Duration) time.Duration {
	if prev < minFetchDelay {
		return minFetchDelay
	}
	if next := prev * 2; next < maxFetchDelay {
		return next
	}
	return maxFetchDelay
}

func eventType(msg kafkago.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return ""
}
