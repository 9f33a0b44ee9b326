package producer

import (
	"context"

	"go-payhr/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// publishEvent menulis satu outbox row ke topic-nya. Key = aggregate id
// supaya semua perubahan satu baris mendarat di partisi yang sama dan
// read model melihat urutan yang konsisten per key.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		// Jejak request asal ikut ke consumer untuk korelasi log.
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	return writer.WriteMessages(ctx, kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	})
}
