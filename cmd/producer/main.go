package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/drew2323/v3trading/internal/logging"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New("info")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// Base context canceled by SIGINT/SIGTERM
	baseCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Apply TTL unless stay-alive requested or TTL <= 0
	ctx := baseCtx
	if !cfg.ProducerStayAlive && cfg.ProducerTTL > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(baseCtx, cfg.ProducerTTL)
		defer cancel()
	}

	if cfg.ProducerEnsureTopic {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		EnsureTopic(c, logger, cfg.Brokers[0], cfg.Topic)
		cancel()
	}

	writer := NewKafkaWriter(cfg.Brokers, cfg.Topic)
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Warn("writer close", zap.Error(err))
		}
	}()

	logger.Info("producer started",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
		zap.Int("rate", cfg.Rate),
		zap.Bool("stay_alive", cfg.ProducerStayAlive),
		zap.Duration("ttl", cfg.ProducerTTL),
	)

	runProducerLoop(ctx, cfg, writer, logger)
}
