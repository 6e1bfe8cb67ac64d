package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"mesaYaCore/internal/modules/realtime/domain"
)

// KafkaPublisher writes lifecycle events to kafka, one topic per event kind
// (reservations.created, reservations.cancelled, reviews.created). Publishing is
// best effort: a broker outage must never fail a booking.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
		},
	}
}

func (p *KafkaPublisher) Broadcast(ctx context.Context, msg *domain.Message) {
	if msg == nil || msg.Topic == "" {
		return
	}
	value, err := json.Marshal(msg)
	if err != nil {
		slog.Error("kafka event marshal error", slog.Any("error", err))
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: msg.Topic,
		Key:   []byte(msg.ResourceID),
		Value: value,
	})
	if err != nil {
		slog.Warn("kafka event write error", slog.String("topic", msg.Topic), slog.Any("error", err))
		return
	}
	slog.Info("kafka event published",
		slog.String("topic", msg.Topic),
		slog.String("entity", msg.Entity),
		slog.String("action", msg.Action),
		slog.String("resourceId", msg.ResourceID),
	)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
