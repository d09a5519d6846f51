package main

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Brokers             []string      `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic               string        `env:"KAFKA_TOPIC" envDefault:"trade-requests"`
	Rate                int           `env:"TRADES_PER_SEC" envDefault:"1"`
	ProducerStayAlive   bool          `env:"PRODUCER_STAY_ALIVE" envDefault:"false"`
	ProducerTTL         time.Duration `env:"PRODUCER_TTL" envDefault:"2m"`
	ProducerEnsureTopic bool          `env:"PRODUCER_ENSURE_TOPIC" envDefault:"true"`
}

// LoadConfig clamps the rate to 1..50 trades per second.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Rate <= 0 || cfg.Rate > 50 {
		cfg.Rate = 1
	}
	return cfg, nil
}
