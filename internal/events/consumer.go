package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront/internal/domain"
	"storefront/internal/gateway"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const maxApplyAttempts = 3

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type StatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (gateway.Result[*domain.Order], error)
}

// StatusConsumer applies fulfillment status updates to orders.
type StatusConsumer struct {
	reader  messageReader
	updater StatusUpdater
	log     *zap.Logger
	backoff time.Duration
}

func NewStatusConsumer(brokers []string, topic, groupID string, updater StatusUpdater, log *zap.Logger) *StatusConsumer {
	if log == nil {
		log = zap.NewNop()
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	log.Info("kafka status consumer initialized", zap.String("topic", topic), zap.String("group", groupID))
	return &StatusConsumer{reader: r, updater: updater, log: log.Named("order_status"), backoff: time.Second}
}

// Run consumes until ctx is cancelled. Each message is committed once it is
// applied or found to be unusable.
func (c *StatusConsumer) Run(ctx context.Context) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error("fetch status message", zap.Error(err))
			if !sleep(ctx, c.backoff) {
				return nil
			}
			continue
		}
		c.handle(ctx, m)
		if err := c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			c.log.Error("commit status message", zap.Int64("offset", m.Offset), zap.Error(err))
		}
	}
}

func (c *StatusConsumer) handle(ctx context.Context, m kafka.Message) {
	var upd StatusUpdate
	if err := json.Unmarshal(m.Value, &upd); err != nil {
		c.log.Warn("invalid status payload", zap.ByteString("payload", m.Value), zap.Error(err))
		return
	}
	for attempt := 1; ; attempt++ {
		res, err := c.updater.UpdateOrderStatus(ctx, upd.OrderID, upd.Status)
		if err == nil {
			c.log.Info("order status applied",
				zap.String("order_id", upd.OrderID),
				zap.String("status", string(upd.Status)),
				zap.String("source", string(res.Source)),
			)
			return
		}
		if !gateway.IsRemote(err) || attempt >= maxApplyAttempts {
			c.log.Warn("drop status update",
				zap.String("order_id", upd.OrderID),
				zap.String("status", string(upd.Status)),
				zap.Bool("invalid_transition", errors.Is(err, domain.ErrInvalidTransition)),
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
			return
		}
		if !sleep(ctx, c.backoff*time.Duration(attempt)) {
			return
		}
	}
}

func (c *StatusConsumer) Close() error {
	return c.reader.Close()
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
