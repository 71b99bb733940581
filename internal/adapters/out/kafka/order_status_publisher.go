// Package kafka publishes order lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"tracking/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// OrderStatusPublisher implements OrderEventPublisher on top of a kafka-go writer.
type OrderStatusPublisher struct {
	writer *kafka.Writer
}

// NewOrderStatusPublisher creates a publisher writing to the given topic.
func NewOrderStatusPublisher(brokers []string, topic string) *OrderStatusPublisher {
	return &OrderStatusPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
		},
	}
}

// PublishStatusChanged sends a status change event keyed by order ID, so all
// events of one order land on the same partition in transition order.
func (p *OrderStatusPublisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	})
}

// Close flushes pending messages and releases the writer.
func (p *OrderStatusPublisher) Close() error {
	return p.writer.Close()
}
