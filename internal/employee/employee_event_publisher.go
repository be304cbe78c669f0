package employee

import (
	"context"

	"github.com/kamepallinandini997/leave-management-poc/internal/events"
	"github.com/kamepallinandini997/leave-management-poc/internal/messaging/kafka/producer"
)

//go:generate mockgen -source=employee_event_publisher.go -destination=mock/employee_event_publisher_mock.go -package=mock
type EventPublisher interface {
	PublishEmployeeCreated(ctx context.Context, event events.EmployeeCreatedEvent) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishEmployeeCreated(context.Context, events.EmployeeCreatedEvent) error {
	return nil
}

type kafkaEventPublisher struct {
	writer producer.MessageWriter
}

func NewKafkaEventPublisher(writer producer.MessageWriter) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) PublishEmployeeCreated(
	ctx context.Context,
	event events.EmployeeCreatedEvent,
) error {
	return producer.WriteEvent(ctx, p.writer,
		events.EmployeeCreatedTopic,
		"employee",
		event.EmployeeID,
		event.EventType,
		event,
	)
}
