package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter is the part of kafka.Writer the loop uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

func runProducerLoop(ctx context.Context, cfg Config, w messageWriter, logger *zap.Logger) {
	rate := cfg.Rate
	if rate <= 0 {
		rate = 1
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				logger.Info("producer: TTL reached; exiting")
			} else {
				logger.Info("producer: shutting down (signal)")
			}
			return
		case <-ticker.C:
			// jitter
			time.Sleep(time.Duration(rng.Intn(150)) * time.Millisecond)
			if err := publishOne(ctx, w); err != nil {
				logger.Warn("write error", zap.Error(err))
			}
		}
	}
}

// publishOne keys by symbol so requests for one symbol stay ordered.
func publishOne(ctx context.Context, w messageWriter) error {
	req := genRequest(rng)
	b, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return w.WriteMessages(ctx, kafka.Message{Key: []byte(req.Symbol), Value: b, Time: time.Now().UTC()})
}
