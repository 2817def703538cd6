package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"storefront-service/models"
)

// Producer publishes order.placed events for downstream consumers. It is an
// optional side channel next to the Telegram webhook; checkout succeeds even
// when publishing fails.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

func (p *Producer) SendOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderToken),
		Value: data,
	}

	err = p.writer.WriteMessages(ctx, msg)
	if err != nil {
		zap.L().Error("Failed to send Kafka message", zap.Error(err),
			zap.String("topic", p.topic))
	}
	return err
}

func (p *Producer) Close() {
	_ = p.writer.Close()
}
