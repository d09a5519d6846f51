package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/drew2323/v3trading/internal/ledger"
	"github.com/drew2323/v3trading/internal/models"
)

// TradeCreator is the ledger entry point for new trades.
type TradeCreator interface {
	Create(ctx context.Context, req models.TradeRequest) (models.Trade, error)
}

type Consumer struct {
	Reader *kafka.Reader
	Trades TradeCreator
	Logger *zap.Logger
}

func NewConsumer(brokers []string, topic, groupID string, trades TradeCreator, logger *zap.Logger) *Consumer {
	return &Consumer{
		Reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1e3,
			MaxBytes: 1e6,
			MaxWait:  500 * time.Millisecond,
		}),
		Trades: trades,
		Logger: logger,
	}
}

// Run reads until ctx is cancelled. A cancelled context is a clean stop.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.Reader.Close()
	for {
		m, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		c.Handle(ctx, m.Value)
	}
}

// Handle runs one message through trade creation. Bad messages are logged
// and dropped; there is no retry.
func (c *Consumer) Handle(ctx context.Context, value []byte) {
	var req models.TradeRequest
	if err := json.Unmarshal(value, &req); err != nil {
		c.Logger.Warn("bad message", zap.Error(err))
		return
	}
	t, err := c.Trades.Create(ctx, req)
	switch {
	case errors.Is(err, ledger.ErrValidation):
		c.Logger.Warn("rejected trade request", zap.String("symbol", req.Symbol), zap.Error(err))
	case err != nil:
		c.Logger.Error("create trade", zap.Error(err))
	default:
		c.Logger.Debug("trade accepted", zap.String("trade_id", t.ID))
	}
}
