package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/drew2323/v3trading/internal/auth"
	"github.com/drew2323/v3trading/internal/cache"
	"github.com/drew2323/v3trading/internal/config"
	"github.com/drew2323/v3trading/internal/events"
	httpserver "github.com/drew2323/v3trading/internal/http"
	"github.com/drew2323/v3trading/internal/journal"
	kafkaconsumer "github.com/drew2323/v3trading/internal/kafka"
	"github.com/drew2323/v3trading/internal/ledger"
	"github.com/drew2323/v3trading/internal/logging"
	"github.com/drew2323/v3trading/internal/positions"
	"github.com/drew2323/v3trading/internal/seed"
	"github.com/drew2323/v3trading/internal/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := stream.NewHub(logger)
	sinks := events.Fanout{hub}

	if cfg.JournalEnabled() {
		pool, err := journal.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db", zap.Error(err))
		}
		defer pool.Close()
		j := journal.New(pool, logger)
		if err := j.EnsureSchema(ctx); err != nil {
			logger.Fatal("journal schema", zap.Error(err))
		}
		sinks = append(sinks, j)
		logger.Info("journal enabled")
	}

	tradeStore, positionStore := ledger.NewStore(), positions.NewStore()
	seed.New(cfg.Seed, nil).Populate(tradeStore, positionStore, cfg.SeedTrades, cfg.SeedPosition)
	logger.Info("seeded", zap.Int("trades", tradeStore.Len()), zap.Int("positions", len(positionStore.All())))

	trades := ledger.New(tradeStore, ledger.WithPublisher(sinks), ledger.WithLogger(logger))
	posSvc := positions.New(positionStore, sinks, logger)

	pages, err := cache.New(cfg.CacheMaxCost, cfg.CacheTTL)
	if err != nil {
		logger.Fatal("cache", zap.Error(err))
	}
	defer pages.Close()

	s := httpserver.NewServer(httpserver.Deps{
		Ledger:       trades,
		Positions:    posSvc,
		Auth:         auth.NewService(cfg.JWTSecret, cfg.SessionTTL, nil),
		Hub:          hub,
		Pages:        pages,
		Logger:       logger,
		CookieSecure: cfg.CookieSecure,
	})
	server := &http.Server{Addr: ":" + cfg.Port, Handler: s.Handler(cfg.CORSOrigins)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(gctx) })

	if cfg.KafkaEnabled() {
		cons := kafkaconsumer.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, trades, logger)
		g.Go(func() error {
			logger.Info("kafka intake", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
			return cons.Run(gctx)
		})
	}

	g.Go(func() error {
		logger.Info("http listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		ctxShut, cancelShut := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShut()
		return server.Shutdown(ctxShut)
	})

	if err := g.Wait(); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
