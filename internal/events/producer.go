package events

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes order events to a Kafka topic keyed by order id.
type Publisher struct {
	writer messageWriter
	topic  string
	log    *zap.Logger
}

func NewPublisher(brokers []string, topic string, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	log.Info("kafka publisher initialized", zap.String("topic", topic), zap.Strings("brokers", brokers))
	return &Publisher{writer: w, topic: topic, log: log.Named("order_events")}
}

func (p *Publisher) OrderCreated(ctx context.Context, o domain.Order) error {
	data, err := json.Marshal(newOrderEvent(o))
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	msg := kafka.Message{Key: []byte(o.ID), Value: data}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("publish order_created", zap.String("order_id", o.ID), zap.Error(err))
		return err
	}
	p.log.Info("order_created published", zap.String("order_id", o.ID), zap.Int64("total", o.TotalAmount))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
