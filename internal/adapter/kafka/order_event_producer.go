package kafka

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/tn0901/shop-api/internal/usecase"
)

// OrderEventProducer publishes order lifecycle events keyed by order id so
// consumers see per-order messages in order.
type OrderEventProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewOrderEventProducer(producer sarama.SyncProducer, topic string) *OrderEventProducer {
	return &OrderEventProducer{producer: producer, topic: topic}
}

func (p *OrderEventProducer) PublishValidated(_ context.Context, msg usecase.OrderValidatedMsg) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.OrderID),
		Value: sarama.ByteEncoder(payload),
	})
	return err
}

func (p *OrderEventProducer) Close() error { return p.producer.Close() }

var _ usecase.OrderEvents = (*OrderEventProducer)(nil)
