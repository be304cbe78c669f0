package producer

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafkago.Writer the publishers use.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// BuildMessage encodes event as JSON, keyed by aggregateID so every event of
// one record lands on the same partition.
func BuildMessage(topic, aggregateType, aggregateID, eventType string, event any) (kafkago.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("producer: encode %s: %w", eventType, err)
	}

	return kafkago.Message{
		Topic: topic,
		Key:   []byte(aggregateID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(eventType)},
			{Key: "aggregate_type", Value: []byte(aggregateType)},
		},
	}, nil
}

func WriteEvent(
	ctx context.Context,
	writer MessageWriter,
	topic, aggregateType, aggregateID, eventType string,
	event any,
) error {
	msg, err := BuildMessage(topic, aggregateType, aggregateID, eventType, event)
	if err != nil {
		return err
	}
	return writer.WriteMessages(ctx, msg)
}
