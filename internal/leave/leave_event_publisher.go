package leave

import (
	"context"

	"github.com/kamepallinandini997/leave-management-poc/internal/events"
	"github.com/kamepallinandini997/leave-management-poc/internal/messaging/kafka/producer"
)

//go:generate mockgen -source=leave_event_publisher.go -destination=mock/leave_event_publisher_mock.go -package=mock
type EventPublisher interface {
	PublishLeaveApplied(ctx context.Context, event events.LeaveAppliedEvent) error
	PublishLeaveStatusUpdated(ctx context.Context, event events.LeaveStatusUpdatedEvent) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishLeaveApplied(context.Context, events.LeaveAppliedEvent) error {
	return nil
}

func (noopEventPublisher) PublishLeaveStatusUpdated(context.Context, events.LeaveStatusUpdatedEvent) error {
	return nil
}

type kafkaEventPublisher struct {
	writer producer.MessageWriter
}

func NewKafkaEventPublisher(writer producer.MessageWriter) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) PublishLeaveApplied(ctx context.Context, event events.LeaveAppliedEvent) error {
	return producer.WriteEvent(ctx, p.writer,
		events.LeaveLifecycleTopic, "leave", event.LeaveID, event.EventType, event)
}

func (p *kafkaEventPublisher) PublishLeaveStatusUpdated(ctx context.Context, event events.LeaveStatusUpdatedEvent) error {
	return producer.WriteEvent(ctx, p.writer,
		events.LeaveLifecycleTopic, "leave", event.LeaveID, event.EventType, event)
}
